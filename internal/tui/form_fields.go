// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldEditor is a column of named text inputs shared by the record form and
// the settings page. Ctrl+N prompts for the name of an extra field.
type fieldEditor struct {
	keys     []string
	inputs   []textinput.Model
	original map[string]string
	focus    int

	adding    bool
	nameInput textinput.Model
	err       string
}

func newFieldEditor(keys []string, values map[string]string) fieldEditor {
	e := fieldEditor{original: make(map[string]string, len(keys))}

	nameInput := textinput.New()
	nameInput.Placeholder = "field name"
	nameInput.CharLimit = 64
	nameInput.Width = 30
	e.nameInput = nameInput

	for _, k := range keys {
		e.original[k] = values[k]
		e.append(k, values[k])
	}
	if len(e.inputs) > 0 {
		e.inputs[0].Focus()
	}
	return e
}

func (e *fieldEditor) append(name, value string) {
	input := textinput.New()
	input.Width = 50
	input.CharLimit = 4096
	input.SetValue(value)

	e.keys = append(e.keys, name)
	e.inputs = append(e.inputs, input)
}

// handleKey processes focus keys and the add-field prompt. It reports false
// for keys the owning page should handle itself.
func (e *fieldEditor) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if e.adding {
		switch {
		case key.Matches(msg, keys.enter):
			e.addField(e.nameInput.Value())
			return nil, true
		case key.Matches(msg, keys.esc):
			e.stopAdding()
			return nil, true
		}
		var cmd tea.Cmd
		e.nameInput, cmd = e.nameInput.Update(msg)
		return cmd, true
	}

	switch {
	case key.Matches(msg, keys.tab):
		e.setFocus(e.focus + 1)
		return nil, true
	case key.Matches(msg, keys.backtab):
		e.setFocus(e.focus - 1)
		return nil, true
	case key.Matches(msg, keys.addField):
		e.err = ""
		e.adding = true
		e.nameInput.SetValue("")
		if len(e.inputs) > 0 {
			e.inputs[e.focus].Blur()
		}
		return e.nameInput.Focus(), true
	}
	return nil, false
}

func (e *fieldEditor) updateInput(msg tea.Msg) tea.Cmd {
	if len(e.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return cmd
}

func (e *fieldEditor) addField(name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		e.err = "Field name is required"
		return
	case name == "id":
		e.err = "The id field is managed by the server"
		return
	case slices.Contains(e.keys, name):
		e.err = fmt.Sprintf("Field %q already exists", name)
		return
	}

	e.append(name, "")
	e.stopAdding()
	e.setFocus(len(e.inputs) - 1)
}

func (e *fieldEditor) stopAdding() {
	e.adding = false
	e.nameInput.Blur()
	if len(e.inputs) > 0 {
		e.inputs[e.focus].Focus()
	}
}

func (e *fieldEditor) setFocus(i int) {
	if len(e.inputs) == 0 {
		return
	}
	e.inputs[e.focus].Blur()
	e.focus = (i + len(e.inputs)) % len(e.inputs)
	e.inputs[e.focus].Focus()
}

// values returns every field.
func (e *fieldEditor) values() map[string]any {
	out := make(map[string]any, len(e.keys))
	for i, k := range e.keys {
		out[k] = e.inputs[i].Value()
	}
	return out
}

// changed returns the fields whose value differs from the initial one,
// including added fields that were filled in.
func (e *fieldEditor) changed() map[string]any {
	out := make(map[string]any)
	for i, k := range e.keys {
		v := e.inputs[i].Value()
		orig, existed := e.original[k]
		if (existed && v != orig) || (!existed && v != "") {
			out[k] = v
		}
	}
	return out
}

func (e *fieldEditor) view() string {
	var b strings.Builder

	width := 5
	for _, k := range e.keys {
		width = max(width, len(k))
	}

	for i, k := range e.keys {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%-*s │ [%s]", width, k, e.inputs[i].View()))
	}
	if len(e.keys) == 0 {
		b.WriteString("No text fields")
	}

	if e.adding {
		b.WriteString("\n\nNew field: [")
		b.WriteString(e.nameInput.View())
		b.WriteString("]  enter: add │ esc: cancel")
	}
	if e.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(e.err))
	}
	return b.String()
}
