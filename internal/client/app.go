// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

// App restores the previous session from the local session file and hands
// control to the UI.
type App struct {
	server         adapter.ServerAdapter
	sessions       store.LocalSessionStore
	ui             UI
	sessionTimeout time.Duration
	logger         *logger.Logger

	now func() time.Time
}

func NewApp(server adapter.ServerAdapter, sessions store.LocalSessionStore, ui UI, sessionTimeout time.Duration, logger *logger.Logger) (*App, error) {
	if server == nil || sessions == nil || ui == nil {
		return nil, ErrMissingDependency
	}

	app := &App{
		server:         server,
		sessions:       sessions,
		ui:             ui,
		sessionTimeout: sessionTimeout,
		logger:         logger,
		now:            time.Now,
	}

	server.OnUnauthorized(func() {
		if err := sessions.Clear(); err != nil {
			logger.Err(err).Str("func", "App.OnUnauthorized").Msg("error clearing local session")
		}
	})

	return app, nil
}

func (a *App) Run() error {
	ctx := a.logger.WithContext(context.Background())

	restored, err := a.restoreSession(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "*App.Run").Msg("previous session was not restored")
	}

	return a.ui.Run(ctx, restored)
}

// restoreSession reinstates the locally saved session when it has not
// expired locally and the server still accepts it.
func (a *App) restoreSession(ctx context.Context) (*models.SessionResponse, error) {
	local, err := a.sessions.Load()
	if err != nil {
		if errors.Is(err, store.ErrLocalSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load local session: %w", err)
	}

	if !local.IsValid(a.now(), a.sessionTimeout) {
		a.logger.Info().Str("func", "*App.restoreSession").Msg("local session expired")
		return nil, a.sessions.Clear()
	}

	a.server.SetToken(local.Token)
	resp, err := a.server.Session(ctx)
	if err != nil {
		a.server.SetToken("")
		if errors.Is(err, adapter.ErrUnauthorized) {
			return nil, nil
		}
		return nil, fmt.Errorf("check session on server: %w", err)
	}

	resp.Token = local.Token
	if resp.Username == "" {
		resp.Username = local.Username
	}
	return &resp, nil
}
