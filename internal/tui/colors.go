// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplu147/interia/models"
)

var colorNames = []string{"primary", "secondary", "accent", "background", "text"}

// ColorsModel edits the site color scheme and previews every color.
type ColorsModel struct {
	app *appContext

	inputs  []textinput.Model
	focus   int
	loading bool
	saving  bool
	status  string
	errMsg  string
}

func NewColorsModel(app *appContext) *ColorsModel {
	inputs := make([]textinput.Model, len(colorNames))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = "#RRGGBB"
		inputs[i].CharLimit = 7
		inputs[i].Width = 10
	}
	m := &ColorsModel{app: app, inputs: inputs}
	m.setColors(models.DefaultColorSettings())
	return m
}

func (m *ColorsModel) Init() tea.Cmd {
	m.loading = true
	m.status = ""
	m.errMsg = ""
	return m.app.cmdLoadSettings()
}

func (m *ColorsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.setColors(msg.doc.Colors)
		return m, nil
	case colorsSaveDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.setColors(msg.doc.Colors)
		m.status = "Color scheme saved"
		return m, nil
	case tea.KeyMsg:
		if m.loading || m.saving {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.tab):
			m.setFocus(m.focus + 1)
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.setFocus(m.focus - 1)
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		case key.Matches(msg, keys.esc):
			return m, emit(NavigateTo{Page: pageMenu})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setColors fills the inputs, falling back to the default of every color the
// document leaves empty.
func (m *ColorsModel) setColors(c models.ColorSettings) {
	defaults := models.DefaultColorSettings()
	values := []string{
		orDefault(c.Primary, defaults.Primary),
		orDefault(c.Secondary, defaults.Secondary),
		orDefault(c.Accent, defaults.Accent),
		orDefault(c.Background, defaults.Background),
		orDefault(c.Text, defaults.Text),
	}
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	m.setFocus(0)
}

func (m *ColorsModel) colors() models.ColorSettings {
	v := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }
	return models.ColorSettings{
		Primary:    v(0),
		Secondary:  v(1),
		Accent:     v(2),
		Background: v(3),
		Text:       v(4),
	}
}

func (m *ColorsModel) submit() tea.Cmd {
	for i, name := range colorNames {
		if !isHexColor(m.inputs[i].Value()) {
			m.errMsg = fmt.Sprintf("%s must be a hex color like #0C4B62", name)
			m.setFocus(i)
			return nil
		}
	}

	m.saving = true
	m.status = ""
	m.errMsg = ""
	return emit(ColorsSaved{Colors: m.colors()})
}

func (m *ColorsModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *ColorsModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading...")
	} else {
		for i, name := range colorNames {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(fmt.Sprintf("%-10s │ [%s] %s", name, m.inputs[i].View(), swatch(strings.TrimSpace(m.inputs[i].Value()))))
		}
	}
	if m.saving {
		b.WriteString("\n\nSaving...")
	}

	renderFooter(&b, m.status, m.errMsg)

	return renderPage("COLOR SCHEME", b.String(), "tab: next color │ enter: save │ esc: menu")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
