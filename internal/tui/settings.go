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

// SettingsModel edits the text entries of the site settings. Other entries
// are shown read-only.
type SettingsModel struct {
	app *appContext

	doc     models.SettingsDocument
	editor  fieldEditor
	loading bool
	saving  bool
	status  string
	errMsg  string
}

func NewSettingsModel(app *appContext) *SettingsModel {
	return &SettingsModel{app: app}
}

func (m *SettingsModel) Init() tea.Cmd {
	m.loading = true
	m.status = ""
	m.errMsg = ""
	return m.app.cmdLoadSettings()
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.load(msg.doc)
		return m, nil
	case settingsSaveDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.load(msg.doc)
		m.status = "Settings saved"
		return m, nil
	case tea.KeyMsg:
		if m.loading || m.saving {
			return m, nil
		}
		if cmd, ok := m.editor.handleKey(msg); ok {
			return m, cmd
		}
		switch {
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		case key.Matches(msg, keys.esc):
			return m, emit(NavigateTo{Page: pageMenu})
		}
	}

	return m, m.editor.updateInput(msg)
}

func (m *SettingsModel) load(doc models.SettingsDocument) {
	m.doc = doc
	m.errMsg = ""

	fieldKeys := stringFieldKeys(doc.Settings)
	values := make(map[string]string, len(fieldKeys))
	for _, k := range fieldKeys {
		if s, ok := doc.Settings[k].(string); ok {
			values[k] = s
		}
	}
	m.editor = newFieldEditor(fieldKeys, values)
}

func (m *SettingsModel) submit() tea.Cmd {
	patch := m.editor.changed()
	if len(patch) == 0 {
		m.status = "Nothing changed"
		return nil
	}
	m.saving = true
	m.status = ""
	m.errMsg = ""
	return emit(SettingsSaved{Patch: patch})
}

func (m *SettingsModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading...")
	} else {
		b.WriteString(m.editor.view())

		readOnly := make([]string, 0)
		for _, k := range sortedKeys(m.doc.Settings) {
			switch m.doc.Settings[k].(type) {
			case string, nil:
			default:
				readOnly = append(readOnly, fmt.Sprintf("%s: %v", k, m.doc.Settings[k]))
			}
		}
		if len(readOnly) > 0 {
			b.WriteString("\n\nRead-only:\n")
			b.WriteString(strings.Join(readOnly, "\n"))
		}
	}
	if m.saving {
		b.WriteString("\n\nSaving...")
	}

	renderFooter(&b, m.status, m.errMsg)

	return renderPage("SITE SETTINGS", b.String(), "tab: next field │ ctrl+n: add field │ enter: save │ esc: menu")
}
