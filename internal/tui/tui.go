// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the interia admin console: a Bubble Tea program that edits
// the site content through the server HTTP API.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

// DefaultTouchInterval is the minimal gap between two activity pings sent
// while the user is typing.
const DefaultTouchInterval = 30 * time.Second

var (
	ErrUserQuit          = errors.New("user quit the program")
	ErrMissingDependency = errors.New("tui: server adapter and session store are required")
)

// Options holds the collaborators of the console.
type Options struct {
	Server    adapter.ServerAdapter
	Sessions  store.LocalSessionStore
	BuildInfo models.AppBuildInfo
	// TouchInterval throttles the activity pings sent on key presses.
	TouchInterval time.Duration
}

type TUI struct {
	opts   Options
	logger *logger.Logger
}

func New(opts Options, logger *logger.Logger) (*TUI, error) {
	if opts.Server == nil || opts.Sessions == nil {
		return nil, ErrMissingDependency
	}
	if opts.TouchInterval <= 0 {
		opts.TouchInterval = DefaultTouchInterval
	}
	return &TUI{opts: opts, logger: logger}, nil
}

// Run blocks until the user quits. A non-nil restored session opens the
// console on the main menu, otherwise it starts on the login screen.
func (t *TUI) Run(ctx context.Context, restored *models.SessionResponse) error {
	root := NewRootModel(ctx, t.opts, restored, t.logger)

	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(*RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
