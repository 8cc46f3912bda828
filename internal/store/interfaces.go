// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/aplu147/interia/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CollectionRepository is the persistent cache: whole documents stored as
// JSON text under a string key, guarded by a revision counter.
type CollectionRepository interface {
	// Get returns the document cached under key or [ErrCollectionNotFound].
	Get(ctx context.Context, key string) (models.CachedDocument, error)
	// Put replaces the document under key. expectedRevision is the revision
	// the caller last read, 0 when it has never seen one. The new revision is
	// returned; a mismatch yields [ErrRevisionConflict].
	Put(ctx context.Context, key string, payload []byte, expectedRevision int64) (int64, error)
}

// SessionRepository persists admin sessions so that they survive restarts.
type SessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	Get(ctx context.Context, token string) (models.Session, error)
	Touch(ctx context.Context, token string, lastActivity int64) error
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes sessions whose last activity is before cutoff
	// (epoch millis) and returns how many were removed.
	DeleteExpired(ctx context.Context, cutoff int64) (int64, error)
}

// ActivityRepository stores the dashboard activity log.
type ActivityRepository interface {
	Append(ctx context.Context, entry models.ActivityEntry) error
	Latest(ctx context.Context, limit int) ([]models.ActivityEntry, error)
}

// LocalSessionStore keeps the admin console session between runs.
type LocalSessionStore interface {
	Load() (models.Session, error)
	Save(session models.Session) error
	Clear() error
}

// ErrorClassificator maps driver errors to retry decisions.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
