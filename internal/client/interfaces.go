// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/aplu147/interia/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the interactive part of the console.
type UI interface {
	// Run blocks until the user quits. restored is nil when the user has to
	// log in first.
	Run(ctx context.Context, restored *models.SessionResponse) error
}
