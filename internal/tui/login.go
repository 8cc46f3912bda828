// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the login screen. On enter it emits [LoginRequested]; the
// outcome arrives as a loginDoneMsg only when the login failed, since
// [RootModel] handles the successful one. A failed attempt clears the
// password input.
type LoginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	notice     string
}

func NewLoginModel() *LoginModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"
	usernameInput.CharLimit = 64
	usernameInput.Width = 40
	usernameInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{inputs: []textinput.Model{usernameInput, passwordInput}}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionExpiredNotice:
		m.reset(msgSessionExpired)
		return m, textinput.Blink
	case loggedOutNotice:
		m.reset("Logged out")
		return m, textinput.Blink
	case loginDoneMsg:
		m.submitting = false
		m.errMsg = loginErrorMessage(msg.err)
		m.inputs[1].SetValue("")
		m.setFocus(1)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.tab):
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n\n")
	}

	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	b.WriteString("Username  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Logging in...]")
	} else {
		b.WriteString("\n[Log in]")
	}

	renderFooter(&b, "", m.errMsg)

	return renderPage("LOGIN", b.String(), "tab: next field │ enter: log in")
}

func (m *LoginModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	username := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	if username == "" || password == "" {
		m.errMsg = "Username and password are required"
		return nil
	}

	m.errMsg = ""
	m.notice = ""
	m.submitting = true
	return emit(LoginRequested{Username: username, Password: password})
}

// reset clears the form. The username is kept so that re-login after an
// expired session needs only the password.
func (m *LoginModel) reset(notice string) {
	m.submitting = false
	m.errMsg = ""
	m.notice = notice
	m.inputs[1].SetValue("")
	if m.inputs[0].Value() == "" {
		m.setFocus(0)
		return
	}
	m.setFocus(1)
}

func (m *LoginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}
