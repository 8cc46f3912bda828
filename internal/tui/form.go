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

// FormModel creates a record or edits the text fields of an existing one.
// Fields holding numbers, booleans or nested values are left untouched:
// an edit sends only the changed text fields as a patch.
type FormModel struct {
	resource   models.ResourceType
	record     *models.Record
	editor     fieldEditor
	submitting bool
	errMsg     string
}

func NewFormModel() *FormModel {
	return &FormModel{}
}

func (m *FormModel) Init() tea.Cmd {
	return nil
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openForm:
		m.open(msg)
		return m, nil
	case recordSaveDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		status := "Saved"
		if msg.created {
			status = "Created"
		}
		return m, emit(NavigateTo{Page: pageDetail, Payload: openRecord{resource: msg.resource, record: msg.record, status: status}})
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if cmd, ok := m.editor.handleKey(msg); ok {
			return m, cmd
		}
		switch {
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		case key.Matches(msg, keys.esc):
			return m, m.back()
		}
	}

	return m, m.editor.updateInput(msg)
}

func (m *FormModel) open(msg openForm) {
	m.resource = msg.resource
	m.record = msg.record
	m.submitting = false
	m.errMsg = ""

	if msg.record == nil {
		m.editor = newFieldEditor(msg.template, nil)
		return
	}

	fieldKeys := stringFieldKeys(msg.record.Fields)
	values := make(map[string]string, len(fieldKeys))
	for _, k := range fieldKeys {
		values[k] = msg.record.Text(k)
	}
	m.editor = newFieldEditor(fieldKeys, values)
}

func (m *FormModel) submit() tea.Cmd {
	if m.record == nil {
		fields := m.editor.values()
		if !hasValue(fields) {
			m.errMsg = "Fill in at least one field"
			return nil
		}
		m.submitting = true
		m.errMsg = ""
		return emit(RecordSaved{Resource: m.resource, Fields: fields})
	}

	patch := m.editor.changed()
	if len(patch) == 0 {
		return emit(NavigateTo{Page: pageDetail, Payload: openRecord{resource: m.resource, record: *m.record, status: "Nothing changed"}})
	}
	m.submitting = true
	m.errMsg = ""
	return emit(RecordSaved{Resource: m.resource, ID: m.record.ID, Fields: patch})
}

func (m *FormModel) back() tea.Cmd {
	if m.record == nil {
		return emit(NavigateTo{Page: pageList, Payload: openList{resource: m.resource}})
	}
	return emit(NavigateTo{Page: pageDetail, Payload: openRecord{resource: m.resource, record: *m.record}})
}

func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(m.editor.view())
	if m.submitting {
		b.WriteString("\n\nSaving...")
	}
	renderFooter(&b, "", m.errMsg)

	title := "NEW " + strings.ToUpper(m.resource.String())
	if m.record != nil {
		title = fmt.Sprintf("EDIT %s #%d", strings.ToUpper(m.resource.String()), m.record.ID)
	}
	return renderPage(title, b.String(), "tab: next field │ ctrl+n: add field │ enter: save │ esc: cancel")
}

func hasValue(fields map[string]any) bool {
	for _, v := range fields {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
