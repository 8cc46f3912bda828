// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/models"
)

const (
	pageLogin     = "login"
	pageMenu      = "menu"
	pageList      = "list"
	pageDetail    = "detail"
	pageForm      = "form"
	pageSettings  = "settings"
	pageColors    = "colors"
	pageDashboard = "dashboard"
)

// RootModel is the console router:
// 1) keeps the active page and the session
// 2) handles global Ctrl+C quit and the build info window
// 3) turns user intents into server calls
// 4) sends the user back to login whenever the session is gone
// 5) delegates everything else to the active page
type RootModel struct {
	app   *appContext
	pages map[string]tea.Model

	current string

	session       *models.Session
	expiresAt     time.Time
	lastTouch     time.Time
	touchInterval time.Duration

	buildInfo     models.AppBuildInfo
	showBuildInfo bool
	serverInfo    *models.BuildInfoResponse
	serverInfoErr error

	quitByUser bool
}

// NewRootModel registers all pages. With a restored session the console
// opens on the main menu, otherwise on the login screen.
func NewRootModel(ctx context.Context, opts Options, restored *models.SessionResponse, log *logger.Logger) *RootModel {
	return newRootModelWithApp(newAppContext(ctx, opts, log), opts, restored)
}

func newRootModelWithApp(app *appContext, opts Options, restored *models.SessionResponse) *RootModel {
	r := &RootModel{
		app: app,
		pages: map[string]tea.Model{
			pageLogin:     NewLoginModel(),
			pageMenu:      NewMenuModel(),
			pageList:      NewListModel(app),
			pageDetail:    NewDetailModel(app),
			pageForm:      NewFormModel(),
			pageSettings:  NewSettingsModel(app),
			pageColors:    NewColorsModel(app),
			pageDashboard: NewDashboardModel(app),
		},
		current:       pageLogin,
		buildInfo:     opts.BuildInfo,
		touchInterval: opts.TouchInterval,
	}

	if restored != nil && restored.Token != "" {
		r.startSession(*restored)
		r.current = pageMenu
	}
	return r
}

func (r *RootModel) Init() tea.Cmd {
	return r.pages[r.current].Init()
}

func (r *RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(resultMsg); ok && errors.Is(res.result(), adapter.ErrUnauthorized) {
		r.app.logger.Info().Str("func", "*RootModel.Update").Msg("session rejected by server")
		return r, r.expire()
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return r, r.handleKey(msg)
	case NavigateTo:
		return r, r.navigate(msg)

	case LoginRequested:
		return r, r.app.cmdLogin(msg)
	case loginDoneMsg:
		if msg.err != nil {
			return r, r.delegate(msg)
		}
		r.startSession(msg.session)
		return r, r.navigate(NavigateTo{Page: pageMenu})

	case LogoutRequested:
		return r, r.app.cmdLogout()
	case logoutDoneMsg:
		if msg.err != nil {
			r.app.logger.Err(msg.err).Str("func", "*RootModel.Update").Msg("logout request failed")
		}
		r.endSession()
		return r, r.navigate(NavigateTo{Page: pageLogin, Payload: loggedOutNotice{}})

	case touchDoneMsg:
		if msg.err != nil {
			r.app.logger.Err(msg.err).Str("func", "*RootModel.Update").Msg("activity ping failed")
			return r, nil
		}
		r.refreshSession(msg.session)
		return r, nil

	case RecordSaved:
		return r, r.app.cmdSaveRecord(msg)
	case RecordDeleted:
		return r, r.app.cmdDeleteRecord(msg)
	case SettingsSaved:
		return r, r.app.cmdSaveSettings(msg)
	case ColorsSaved:
		return r, r.app.cmdSaveColors(msg)

	case versionLoadedMsg:
		if msg.err != nil {
			r.serverInfo, r.serverInfoErr = nil, msg.err
			return r, nil
		}
		info := msg.info
		r.serverInfo, r.serverInfoErr = &info, nil
		return r, nil
	}

	return r, r.delegate(msg)
}

func (r *RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo, r.serverInfo, r.serverInfoErr)
	}
	page, ok := r.pages[r.current]
	if !ok {
		return renderPage("INTERIA", "", "")
	}
	return page.View()
}

// handleKey counts every key press as user activity: an expired session
// ends right here, a live one is refreshed on the server at most once per
// touchInterval.
func (r *RootModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.quit) {
		r.quitByUser = true
		return tea.Quit
	}

	if r.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			r.showBuildInfo = false
		}
		return nil
	}

	if r.session != nil && r.sessionExpired() {
		return r.expire()
	}

	if r.current == pageMenu && key.Matches(msg, keys.version) {
		r.showBuildInfo = true
		return r.app.cmdVersion()
	}

	return tea.Batch(r.maybeTouch(), r.delegate(msg))
}

func (r *RootModel) navigate(nav NavigateTo) tea.Cmd {
	next, ok := r.pages[nav.Page]
	if !ok {
		return nil
	}

	r.showBuildInfo = false
	r.current = nav.Page

	if nav.Payload != nil {
		return emit(nav.Payload)
	}
	return next.Init()
}

func (r *RootModel) delegate(msg tea.Msg) tea.Cmd {
	page, ok := r.pages[r.current]
	if !ok {
		return nil
	}
	updated, cmd := page.Update(msg)
	r.pages[r.current] = updated
	return cmd
}

func (r *RootModel) maybeTouch() tea.Cmd {
	if r.session == nil {
		return nil
	}
	now := r.app.now()
	if now.Sub(r.lastTouch) < r.touchInterval {
		return nil
	}
	r.lastTouch = now
	return r.app.cmdTouch()
}

func (r *RootModel) sessionExpired() bool {
	return !r.expiresAt.IsZero() && !r.app.now().Before(r.expiresAt)
}

func (r *RootModel) expire() tea.Cmd {
	r.endSession()
	return r.navigate(NavigateTo{Page: pageLogin, Payload: sessionExpiredNotice{}})
}

func (r *RootModel) startSession(resp models.SessionResponse) {
	now := r.app.now()
	r.app.server.SetToken(resp.Token)

	r.session = &models.Session{
		Token:        resp.Token,
		Username:     resp.Username,
		LastActivity: now.UnixMilli(),
		CreatedAt:    now.UnixMilli(),
	}
	r.expiresAt = resp.ExpiresAt
	r.lastTouch = now
	r.persistSession()
}

func (r *RootModel) refreshSession(resp models.SessionResponse) {
	if r.session == nil {
		return
	}
	r.session.LastActivity = r.app.now().UnixMilli()
	if !resp.ExpiresAt.IsZero() {
		r.expiresAt = resp.ExpiresAt
	}
	r.persistSession()
}

func (r *RootModel) endSession() {
	r.session = nil
	r.expiresAt = time.Time{}
	r.app.server.SetToken("")

	if err := r.app.sessions.Clear(); err != nil {
		r.app.logger.Err(err).Str("func", "*RootModel.endSession").Msg("error clearing local session")
	}
}

func (r *RootModel) persistSession() {
	if err := r.app.sessions.Save(*r.session); err != nil {
		r.app.logger.Err(err).Str("func", "*RootModel.persistSession").Msg("error saving local session")
	}
}
