// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aplu147/interia/models"
)

type menuItem struct {
	title string
	next  func() tea.Msg
}

type MenuModel struct {
	items []menuItem
	idx   int
}

func NewMenuModel() *MenuModel {
	items := make([]menuItem, 0, len(models.ResourceTypes)+4)
	for _, rt := range models.ResourceTypes {
		items = append(items, menuItem{
			title: resourceTitle(rt),
			next:  func() tea.Msg { return NavigateTo{Page: pageList, Payload: openList{resource: rt}} },
		})
	}
	items = append(items,
		menuItem{title: "Site settings", next: func() tea.Msg { return NavigateTo{Page: pageSettings} }},
		menuItem{title: "Color scheme", next: func() tea.Msg { return NavigateTo{Page: pageColors} }},
		menuItem{title: "Dashboard", next: func() tea.Msg { return NavigateTo{Page: pageDashboard} }},
		menuItem{title: "Log out", next: func() tea.Msg { return LogoutRequested{} }},
	)
	return &MenuModel{items: items}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		return m, m.items[m.idx].next
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	idColWidth := lipgloss.Width(fmt.Sprintf("%d", len(m.items))) + 2
	actionColWidth := lipgloss.Width("Section")
	for _, item := range m.items {
		actionColWidth = max(actionColWidth, lipgloss.Width(item.title))
	}

	b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, "#", actionColWidth, "Section"))
	b.WriteString(strings.Repeat("─", idColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", actionColWidth))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		title := item.title
		if i == m.idx {
			cursor = ">"
			title = selectedStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %-*d │ %s\n", cursor, idColWidth-2, i+1, title))
	}

	return renderPage("INTERIA ADMIN", strings.TrimRight(b.String(), "\n"), "enter: open │ ↑/↓: move │ v: version")
}

func resourceTitle(rt models.ResourceType) string {
	s := rt.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
