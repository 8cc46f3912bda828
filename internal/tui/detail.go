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

// DetailModel shows one record with edit, delete and copy actions.
type DetailModel struct {
	app *appContext

	resource   models.ResourceType
	record     models.Record
	confirming bool
	deleting   bool
	status     string
	errMsg     string
}

func NewDetailModel(app *appContext) *DetailModel {
	return &DetailModel{app: app}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openRecord:
		m.resource = msg.resource
		m.record = msg.record
		m.status = msg.status
		m.errMsg = ""
		m.confirming = false
		m.deleting = false
		return m, nil
	case recordDeleteDoneMsg:
		m.deleting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		status := fmt.Sprintf("Deleted %s #%d", msg.resource, msg.id)
		return m, emit(NavigateTo{Page: pageList, Payload: openList{resource: m.resource, status: status}})
	case copiedMsg:
		if msg.err != nil {
			m.status = ""
			m.errMsg = "Clipboard is unavailable: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = "Copied to clipboard"
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *DetailModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.deleting {
		return nil
	}

	if m.confirming {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirming = false
			m.deleting = true
			return emit(RecordDeleted{Resource: m.resource, ID: m.record.ID})
		case key.Matches(msg, keys.no):
			m.confirming = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.edit):
		record := m.record.Clone()
		return emit(NavigateTo{Page: pageForm, Payload: openForm{resource: m.resource, record: &record}})
	case key.Matches(msg, keys.delete):
		m.confirming = true
		m.status = ""
	case key.Matches(msg, keys.copy):
		return m.app.cmdCopyRecord(m.record)
	case key.Matches(msg, keys.esc):
		return emit(NavigateTo{Page: pageList, Payload: openList{resource: m.resource}})
	}
	return nil
}

func (m *DetailModel) View() string {
	var b strings.Builder

	fieldKeys := sortedKeys(m.record.Fields)
	width := len("id")
	for _, k := range fieldKeys {
		width = max(width, len(k))
	}

	b.WriteString(fmt.Sprintf("%-*s │ %d", width, "id", m.record.ID))
	for _, k := range fieldKeys {
		b.WriteString(fmt.Sprintf("\n%-*s │ %s", width, k, fitText(m.record.Text(k), 80)))
	}

	if m.confirming {
		b.WriteString("\n\n")
		b.WriteString(confirmModel{message: recordLabel(m.record)}.View())
	}
	if m.deleting {
		b.WriteString("\n\nDeleting...")
	}

	renderFooter(&b, m.status, m.errMsg)

	title := fmt.Sprintf("%s #%d", strings.ToUpper(m.resource.String()), m.record.ID)
	return renderPage(title, b.String(), "e: edit │ d: delete │ c: copy JSON │ esc: back")
}
