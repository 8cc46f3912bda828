// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplu147/interia/models"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to the
// new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// User intents. Pages emit them and RootModel turns them into commands that
// call the server.

type LoginRequested struct {
	Username string
	Password string
}

type LogoutRequested struct{}

// RecordSaved asks to persist the form fields. A zero ID creates a record.
type RecordSaved struct {
	Resource models.ResourceType
	ID       int64
	Fields   map[string]any
}

type RecordDeleted struct {
	Resource models.ResourceType
	ID       int64
}

type SettingsSaved struct {
	Patch map[string]any
}

type ColorsSaved struct {
	Colors models.ColorSettings
}

// Page payloads.

type openList struct {
	resource models.ResourceType
	status   string
}

type openRecord struct {
	resource models.ResourceType
	record   models.Record
	status   string
}

type openForm struct {
	resource models.ResourceType
	record   *models.Record
	template []string
}

type sessionExpiredNotice struct{}

type loggedOutNotice struct{}

// Server call results.

// resultMsg is implemented by results of authenticated calls so that
// RootModel can catch a rejected session in one place.
type resultMsg interface {
	result() error
}

type loginDoneMsg struct {
	session models.SessionResponse
	err     error
}

type logoutDoneMsg struct {
	err error
}

type touchDoneMsg struct {
	session models.SessionResponse
	err     error
}

type recordsLoadedMsg struct {
	resource models.ResourceType
	records  []models.Record
	err      error
}

type recordSaveDoneMsg struct {
	resource models.ResourceType
	record   models.Record
	created  bool
	err      error
}

type recordDeleteDoneMsg struct {
	resource models.ResourceType
	id       int64
	err      error
}

type settingsLoadedMsg struct {
	doc models.SettingsDocument
	err error
}

type settingsSaveDoneMsg struct {
	doc models.SettingsDocument
	err error
}

type colorsSaveDoneMsg struct {
	doc models.SettingsDocument
	err error
}

type dashboardLoadedMsg struct {
	dashboard models.Dashboard
	err       error
}

type versionLoadedMsg struct {
	info models.BuildInfoResponse
	err  error
}

type copiedMsg struct {
	err error
}

func (m touchDoneMsg) result() error        { return m.err }
func (m recordsLoadedMsg) result() error    { return m.err }
func (m recordSaveDoneMsg) result() error   { return m.err }
func (m recordDeleteDoneMsg) result() error { return m.err }
func (m settingsLoadedMsg) result() error   { return m.err }
func (m settingsSaveDoneMsg) result() error { return m.err }
func (m colorsSaveDoneMsg) result() error   { return m.err }
func (m dashboardLoadedMsg) result() error  { return m.err }
