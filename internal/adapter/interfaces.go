// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound integrations of interia: the bootstrap
// sources that provide seed content on a cold cache, and the HTTP client the
// admin console uses to talk to the server.
//
// Transport failures are mapped to the sentinel errors in errors.go so
// callers can match them with [errors.Is].
package adapter

import (
	"context"

	"github.com/aplu147/interia/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// BootstrapSource returns the read-only seed document for a name: a resource
// type such as "projects", or "settings".
type BootstrapSource interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// ServerAdapter is the admin console's view of the interia HTTP API. Every
// call except Login and Version carries the bearer token; a 401 response
// clears it and fires the unauthorized hook.
type ServerAdapter interface {
	SetToken(token string)
	Token() string
	// OnUnauthorized registers fn to run whenever the server rejects the token.
	OnUnauthorized(fn func())

	Login(ctx context.Context, creds models.Credentials) (models.SessionResponse, error)
	Logout(ctx context.Context) error
	Touch(ctx context.Context) (models.SessionResponse, error)
	Session(ctx context.Context) (models.SessionResponse, error)

	ListRecords(ctx context.Context, rt models.ResourceType) ([]models.Record, error)
	GetRecord(ctx context.Context, rt models.ResourceType, id int64) (models.Record, error)
	CreateRecord(ctx context.Context, rt models.ResourceType, fields map[string]any) (models.Record, error)
	UpdateRecord(ctx context.Context, rt models.ResourceType, id int64, patch map[string]any) (models.Record, error)
	DeleteRecord(ctx context.Context, rt models.ResourceType, id int64) error

	GetSettings(ctx context.Context) (models.SettingsDocument, error)
	SaveSettings(ctx context.Context, patch map[string]any) (models.SettingsDocument, error)
	SaveColors(ctx context.Context, patch models.ColorSettings) (models.SettingsDocument, error)

	Dashboard(ctx context.Context) (models.Dashboard, error)
	Version(ctx context.Context) (models.BuildInfoResponse, error)
}
