// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repositories. Callers match them with [errors.Is].
var (
	// ErrCollectionNotFound is returned when nothing is cached under a key.
	ErrCollectionNotFound = errors.New("collection is not cached")

	// ErrRevisionConflict is returned when a write carries a revision that
	// no longer matches the stored one: another writer got there first.
	ErrRevisionConflict = errors.New("collection revision conflict")

	// ErrSessionNotFound is returned when no session exists for a token.
	ErrSessionNotFound = errors.New("session not found")

	// ErrLocalSessionNotFound is returned when the admin console has no
	// saved session file.
	ErrLocalSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors, wrapped with the driver error.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to execute statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
)
