// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/service"
	"github.com/aplu147/interia/models"
)

// ---- Fake: SessionGuard ----

type fakeGuard struct {
	AuthenticateFunc func(ctx context.Context, username, password string) (models.Session, error)
	TouchFunc        func(ctx context.Context) error
	LogoutFunc       func(ctx context.Context) error
	SessionFunc      func(ctx context.Context) (models.Session, error)
}

func (f *fakeGuard) IsAuthenticated(ctx context.Context) bool {
	_, err := f.Session(ctx)
	return err == nil
}

func (f *fakeGuard) Authenticate(ctx context.Context, username, password string) (models.Session, error) {
	if f.AuthenticateFunc == nil {
		return models.Session{}, service.ErrInvalidCredentials
	}
	return f.AuthenticateFunc(ctx, username, password)
}

func (f *fakeGuard) TouchActivity(ctx context.Context) error {
	if f.TouchFunc == nil {
		return nil
	}
	return f.TouchFunc(ctx)
}

func (f *fakeGuard) Logout(ctx context.Context) error {
	if f.LogoutFunc == nil {
		return nil
	}
	return f.LogoutFunc(ctx)
}

func (f *fakeGuard) Guard(ctx context.Context, action func(ctx context.Context) error) error {
	if !f.IsAuthenticated(ctx) {
		return service.ErrUnauthenticated
	}
	return action(ctx)
}

func (f *fakeGuard) Session(ctx context.Context) (models.Session, error) {
	if f.SessionFunc == nil {
		return models.Session{}, service.ErrUnauthenticated
	}
	return f.SessionFunc(ctx)
}

func (f *fakeGuard) SweepExpired(context.Context) (int64, error) { return 0, nil }

func (f *fakeGuard) Timeout() time.Duration { return 30 * time.Minute }

// ---- Fake: RecordStore ----

type fakeRecordStore struct {
	rt          models.ResourceType
	LoadAllFunc func(ctx context.Context) (models.Collection, error)
	GetByIDFunc func(ctx context.Context, id int64) (models.Record, bool, error)
	CreateFunc  func(ctx context.Context, fields map[string]any) (models.Record, error)
	UpdateFunc  func(ctx context.Context, id int64, patch map[string]any) (models.Record, bool, error)
	DeleteFunc  func(ctx context.Context, id int64) (bool, error)
	SaveFunc    func(ctx context.Context) error
}

func (f *fakeRecordStore) ResourceType() models.ResourceType { return f.rt }

func (f *fakeRecordStore) LoadAll(ctx context.Context) (models.Collection, error) {
	return f.LoadAllFunc(ctx)
}

func (f *fakeRecordStore) GetByID(ctx context.Context, id int64) (models.Record, bool, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeRecordStore) Create(ctx context.Context, fields map[string]any) (models.Record, error) {
	return f.CreateFunc(ctx, fields)
}

func (f *fakeRecordStore) Update(ctx context.Context, id int64, patch map[string]any) (models.Record, bool, error) {
	return f.UpdateFunc(ctx, id, patch)
}

func (f *fakeRecordStore) Delete(ctx context.Context, id int64) (bool, error) {
	return f.DeleteFunc(ctx, id)
}

func (f *fakeRecordStore) Save(ctx context.Context) error {
	return f.SaveFunc(ctx)
}

// ---- Fake: SettingsStore ----

type fakeSettings struct {
	LoadFunc         func(ctx context.Context) (models.SettingsDocument, error)
	SaveSettingsFunc func(ctx context.Context, patch map[string]any) (models.SettingsDocument, error)
	SaveColorsFunc   func(ctx context.Context, colors models.ColorSettings) (models.SettingsDocument, error)
}

func (f *fakeSettings) Load(ctx context.Context) (models.SettingsDocument, error) {
	return f.LoadFunc(ctx)
}

func (f *fakeSettings) SaveSettings(ctx context.Context, patch map[string]any) (models.SettingsDocument, error) {
	return f.SaveSettingsFunc(ctx, patch)
}

func (f *fakeSettings) SaveColors(ctx context.Context, colors models.ColorSettings) (models.SettingsDocument, error) {
	return f.SaveColorsFunc(ctx, colors)
}

// ---- Fakes: read-only services ----

type fakeDashboard struct {
	DashboardFunc func(ctx context.Context) (models.Dashboard, error)
}

func (f *fakeDashboard) Dashboard(ctx context.Context) (models.Dashboard, error) {
	return f.DashboardFunc(ctx)
}

type fakeTheme struct{ css string }

func (f *fakeTheme) CSS() string { return f.css }

type fakeAppInfo struct{ info models.BuildInfoResponse }

func (f *fakeAppInfo) BuildInfo(context.Context) models.BuildInfoResponse { return f.info }

// ---- Helpers ----

// newTestServices returns services whose every dependency is a harmless fake.
// Tests replace the parts they exercise.
func newTestServices() *service.Services {
	return &service.Services{
		Guard:     &fakeGuard{},
		Records:   map[models.ResourceType]service.RecordStore{},
		Settings:  &fakeSettings{},
		Dashboard: &fakeDashboard{},
		Theme:     &fakeTheme{css: ":root {\n}\n"},
		AppInfo:   &fakeAppInfo{info: models.BuildInfoResponse{Version: "test-version", Date: "N/A", Commit: "N/A"}},
	}
}

func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		services:     services,
		loginLimiter: newLoginLimiter(0.001, 3),
		logger:       logger.Nop(),
	}
}

// serve runs one request through the full router.
func serve(h *Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	return serveRouter(h.Init(), method, path, body, header)
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// serveRouter is serve for a router built once and reused across requests.
func serveRouter(router http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
