// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled or the worker fails. Returning a non-nil
// error stops every other worker of the same [Workers] group.
type Worker interface {
	Run(ctx context.Context) error
}

// ExpiredSessionSweeper removes sessions whose inactivity window elapsed.
// It is implemented by the session guard.
type ExpiredSessionSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}
