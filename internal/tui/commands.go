// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

// appContext is shared by every page of the console.
type appContext struct {
	ctx      context.Context
	server   adapter.ServerAdapter
	sessions store.LocalSessionStore
	logger   *logger.Logger
	now      func() time.Time

	// writeClipboard is swapped in tests.
	writeClipboard func(string) error
}

func newAppContext(ctx context.Context, opts Options, log *logger.Logger) *appContext {
	if log == nil {
		log = logger.Nop()
	}
	return &appContext{
		ctx:            ctx,
		server:         opts.Server,
		sessions:       opts.Sessions,
		logger:         log,
		now:            time.Now,
		writeClipboard: clipboard.WriteAll,
	}
}

func (a *appContext) cmdLogin(req LoginRequested) tea.Cmd {
	return func() tea.Msg {
		session, err := a.server.Login(a.ctx, models.Credentials{
			Username: req.Username,
			Password: req.Password,
		})
		return loginDoneMsg{session: session, err: err}
	}
}

func (a *appContext) cmdLogout() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: a.server.Logout(a.ctx)}
	}
}

func (a *appContext) cmdTouch() tea.Cmd {
	return func() tea.Msg {
		session, err := a.server.Touch(a.ctx)
		return touchDoneMsg{session: session, err: err}
	}
}

func (a *appContext) cmdLoadRecords(rt models.ResourceType) tea.Cmd {
	return func() tea.Msg {
		records, err := a.server.ListRecords(a.ctx, rt)
		return recordsLoadedMsg{resource: rt, records: records, err: err}
	}
}

func (a *appContext) cmdSaveRecord(req RecordSaved) tea.Cmd {
	return func() tea.Msg {
		if req.ID == 0 {
			record, err := a.server.CreateRecord(a.ctx, req.Resource, req.Fields)
			return recordSaveDoneMsg{resource: req.Resource, record: record, created: true, err: err}
		}
		record, err := a.server.UpdateRecord(a.ctx, req.Resource, req.ID, req.Fields)
		return recordSaveDoneMsg{resource: req.Resource, record: record, err: err}
	}
}

func (a *appContext) cmdDeleteRecord(req RecordDeleted) tea.Cmd {
	return func() tea.Msg {
		err := a.server.DeleteRecord(a.ctx, req.Resource, req.ID)
		return recordDeleteDoneMsg{resource: req.Resource, id: req.ID, err: err}
	}
}

func (a *appContext) cmdLoadSettings() tea.Cmd {
	return func() tea.Msg {
		doc, err := a.server.GetSettings(a.ctx)
		return settingsLoadedMsg{doc: doc, err: err}
	}
}

func (a *appContext) cmdSaveSettings(req SettingsSaved) tea.Cmd {
	return func() tea.Msg {
		doc, err := a.server.SaveSettings(a.ctx, req.Patch)
		return settingsSaveDoneMsg{doc: doc, err: err}
	}
}

func (a *appContext) cmdSaveColors(req ColorsSaved) tea.Cmd {
	return func() tea.Msg {
		doc, err := a.server.SaveColors(a.ctx, req.Colors)
		return colorsSaveDoneMsg{doc: doc, err: err}
	}
}

func (a *appContext) cmdLoadDashboard() tea.Cmd {
	return func() tea.Msg {
		dashboard, err := a.server.Dashboard(a.ctx)
		return dashboardLoadedMsg{dashboard: dashboard, err: err}
	}
}

func (a *appContext) cmdVersion() tea.Cmd {
	return func() tea.Msg {
		info, err := a.server.Version(a.ctx)
		return versionLoadedMsg{info: info, err: err}
	}
}

// cmdCopyRecord puts the record JSON on the system clipboard.
func (a *appContext) cmdCopyRecord(record models.Record) tea.Cmd {
	return func() tea.Msg {
		payload, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return copiedMsg{err: fmt.Errorf("encode record: %w", err)}
		}
		return copiedMsg{err: a.writeClipboard(string(payload))}
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
