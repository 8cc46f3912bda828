// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplu147/interia/models"
)

type DashboardModel struct {
	app *appContext

	dashboard models.Dashboard
	loading   bool
	errMsg    string
}

func NewDashboardModel(app *appContext) *DashboardModel {
	return &DashboardModel{app: app}
}

func (m *DashboardModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return m.app.cmdLoadDashboard()
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.dashboard = msg.dashboard
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.reload):
			return m, m.Init()
		case key.Matches(msg, keys.esc):
			return m, emit(NavigateTo{Page: pageMenu})
		}
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading...")
		return renderPage("DASHBOARD", b.String(), "r: reload │ esc: menu")
	}

	for _, rt := range models.ResourceTypes {
		b.WriteString(fmt.Sprintf("%-14s %d\n", resourceTitle(rt), m.dashboard.Counts[rt]))
	}

	b.WriteString("\nRecent activity\n")
	if len(m.dashboard.Activity) == 0 {
		b.WriteString("  -")
	}
	for i, a := range m.dashboard.Activity {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("  %-40s %s", fitText(a.Message, 40), helpStyle.Render(a.Age)))
	}

	renderFooter(&b, "", m.errMsg)

	return renderPage("DASHBOARD", b.String(), "r: reload │ esc: menu")
}
