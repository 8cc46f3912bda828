// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplu147/interia/models"
)

// ListModel shows the records of one resource type.
type ListModel struct {
	app *appContext

	resource models.ResourceType
	records  []models.Record
	idx      int
	loading  bool
	spinner  spinner.Model
	status   string
	errMsg   string
}

func NewListModel(app *appContext) *ListModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &ListModel{app: app, spinner: s}
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func (m *ListModel) current() (models.Record, bool) {
	if len(m.records) == 0 || m.idx < 0 || m.idx >= len(m.records) {
		return models.Record{}, false
	}
	return m.records[m.idx], true
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openList:
		if msg.resource != m.resource {
			m.records = nil
			m.idx = 0
		}
		m.resource = msg.resource
		m.status = msg.status
		return m, m.reload()
	case recordsLoadedMsg:
		if msg.resource != m.resource {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.records = msg.records
		m.idx = min(max(m.idx, 0), max(len(m.records)-1, 0))
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *ListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.records)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if record, ok := m.current(); ok {
			return emit(NavigateTo{Page: pageDetail, Payload: openRecord{resource: m.resource, record: record}})
		}
	case key.Matches(msg, keys.newItem):
		return emit(NavigateTo{Page: pageForm, Payload: openForm{resource: m.resource, template: fieldTemplate(m.records)}})
	case key.Matches(msg, keys.reload):
		m.status = ""
		return m.reload()
	case key.Matches(msg, keys.esc):
		return emit(NavigateTo{Page: pageMenu})
	}
	return nil
}

func (m *ListModel) reload() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return tea.Batch(m.spinner.Tick, m.app.cmdLoadRecords(m.resource))
}

func (m *ListModel) View() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.records) == 0:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...")
	case len(m.records) == 0:
		b.WriteString("No records")
	default:
		b.WriteString(fmt.Sprintf("  %-6s │ %s\n", "ID", "Title"))
		b.WriteString("  ───────┼──────────────────────────────────────────────")
		for i, record := range m.records {
			cursor := " "
			label := fitText(recordLabel(record), 48)
			if i == m.idx {
				cursor = ">"
				label = selectedStyle.Render(label)
			}
			b.WriteString(fmt.Sprintf("\n%s %-6d │ %s", cursor, record.ID, label))
		}
		if m.loading {
			b.WriteString("\n\n")
			b.WriteString(m.spinner.View())
		}
	}

	renderFooter(&b, m.status, m.errMsg)

	title := strings.ToUpper(m.resource.String())
	return renderPage(title, b.String(), "enter: open │ n: new │ r: reload │ esc: menu")
}
