// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/aplu147/interia/models"
)

// CredentialVerifier checks a submitted username and password pair.
type CredentialVerifier interface {
	// Verify returns nil on a match and ErrInvalidCredentials otherwise.
	Verify(ctx context.Context, username, password string) error
}

// SessionGuard owns the admin session. The session is identified by the
// token stored in the context with utils.WithSessionToken.
type SessionGuard interface {
	// IsAuthenticated reports whether the context session exists and has not
	// expired. It never modifies the session.
	IsAuthenticated(ctx context.Context) bool

	// Authenticate verifies the credentials and starts a new session.
	Authenticate(ctx context.Context, username, password string) (models.Session, error)

	// TouchActivity moves the context session's last activity to now. It
	// fails with ErrUnauthenticated when the session is not valid.
	TouchActivity(ctx context.Context) error

	// Logout destroys the context session. Calling it without a session is
	// not an error.
	Logout(ctx context.Context) error

	// Guard runs action when the context session is valid. Otherwise the
	// session is destroyed and ErrUnauthenticated returned without running
	// action. Guard does not refresh the session.
	Guard(ctx context.Context, action func(ctx context.Context) error) error

	// Session returns the valid context session.
	Session(ctx context.Context) (models.Session, error)

	// SweepExpired deletes every stored session that has expired.
	SweepExpired(ctx context.Context) (int64, error)

	Timeout() time.Duration
}

// RecordStore provides CRUD over the collection of one resource type.
// Absent records are reported through the ok result, never as an error.
type RecordStore interface {
	ResourceType() models.ResourceType

	LoadAll(ctx context.Context) (models.Collection, error)
	GetByID(ctx context.Context, id int64) (record models.Record, ok bool, err error)
	// Create stores fields as a new record with the next free id. Any "id"
	// in fields is ignored.
	Create(ctx context.Context, fields map[string]any) (models.Record, error)
	// Update merges patch into the record, patch values winning. The id is
	// preserved.
	Update(ctx context.Context, id int64, patch map[string]any) (record models.Record, ok bool, err error)
	Delete(ctx context.Context, id int64) (ok bool, err error)
	// Save writes the current collection to the persistent cache.
	Save(ctx context.Context) error
}

// RecordStoreWrapper decorates a RecordStore with a cross-cutting concern.
type RecordStoreWrapper interface {
	Wrap(RecordStore) RecordStore
}

// SettingsStore owns the singleton settings document.
type SettingsStore interface {
	Load(ctx context.Context) (models.SettingsDocument, error)
	// SaveSettings merges patch into the free-form settings.
	SaveSettings(ctx context.Context, patch map[string]any) (models.SettingsDocument, error)
	// SaveColors merges the non-empty colors of patch into the scheme and
	// publishes events.ColorsChanged.
	SaveColors(ctx context.Context, patch models.ColorSettings) (models.SettingsDocument, error)
}

// ActivityRecorder appends entries to the dashboard activity log.
type ActivityRecorder interface {
	Record(ctx context.Context, entry models.ActivityEntry)
}

// DashboardService builds the admin dashboard.
type DashboardService interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

// ThemeService renders the site color scheme as a stylesheet.
type ThemeService interface {
	CSS() string
}

// AppInfoService exposes the build information of the running binary.
type AppInfoService interface {
	BuildInfo(ctx context.Context) models.BuildInfoResponse
}
