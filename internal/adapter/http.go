// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// Returns an error if adapterCfg.HTTPAddress is empty or not a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) OnUnauthorized(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnauthorized = fn
}

// Login posts the credentials and stores the returned token.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.SessionResponse, error) {
	var session models.SessionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&session).
		Post("/api/auth/login")
	if err != nil {
		return models.SessionResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionResponse{}, err
	}

	token := session.Token
	if header := resp.Header().Get("Authorization"); header != "" {
		if parsed, parseErr := utils.ParseBearerToken(header); parseErr == nil {
			token = parsed
		}
	}
	if token == "" {
		return models.SessionResponse{}, errors.New("login response carries no token")
	}

	h.SetToken(token)
	session.Token = token
	return session, nil
}

// Logout ends the server session. The local token is dropped even when the
// request fails.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	defer h.SetToken("")

	return h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Post("/api/auth/logout")
	})
}

func (h *httpServerAdapter) Touch(ctx context.Context) (models.SessionResponse, error) {
	var session models.SessionResponse
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&session).Post("/api/auth/activity")
	})
	return session, err
}

func (h *httpServerAdapter) Session(ctx context.Context) (models.SessionResponse, error) {
	var session models.SessionResponse
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&session).Get("/api/auth/session")
	})
	return session, err
}

func (h *httpServerAdapter) ListRecords(ctx context.Context, rt models.ResourceType) ([]models.Record, error) {
	var records []models.Record
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&records).Get(recordsPath(rt))
	})
	return records, err
}

func (h *httpServerAdapter) GetRecord(ctx context.Context, rt models.ResourceType, id int64) (models.Record, error) {
	var record models.Record
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&record).Get(recordPath(rt, id))
	})
	return record, err
}

func (h *httpServerAdapter) CreateRecord(ctx context.Context, rt models.ResourceType, fields map[string]any) (models.Record, error) {
	var record models.Record
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(fields).SetResult(&record).Post(recordsPath(rt))
	})
	return record, err
}

func (h *httpServerAdapter) UpdateRecord(ctx context.Context, rt models.ResourceType, id int64, patch map[string]any) (models.Record, error) {
	var record models.Record
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(patch).SetResult(&record).Patch(recordPath(rt, id))
	})
	return record, err
}

func (h *httpServerAdapter) DeleteRecord(ctx context.Context, rt models.ResourceType, id int64) error {
	return h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Delete(recordPath(rt, id))
	})
}

func (h *httpServerAdapter) GetSettings(ctx context.Context) (models.SettingsDocument, error) {
	var doc models.SettingsDocument
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&doc).Get("/api/settings")
	})
	return doc, err
}

func (h *httpServerAdapter) SaveSettings(ctx context.Context, patch map[string]any) (models.SettingsDocument, error) {
	var doc models.SettingsDocument
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(patch).SetResult(&doc).Patch("/api/settings")
	})
	return doc, err
}

func (h *httpServerAdapter) SaveColors(ctx context.Context, patch models.ColorSettings) (models.SettingsDocument, error) {
	var doc models.SettingsDocument
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(patch).SetResult(&doc).Put("/api/settings/colors")
	})
	return doc, err
}

func (h *httpServerAdapter) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var dashboard models.Dashboard
	err := h.doAuthed(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&dashboard).Get("/api/dashboard")
	})
	return dashboard, err
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.BuildInfoResponse, error) {
	var info models.BuildInfoResponse

	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/api/version")
	if err != nil {
		return models.BuildInfoResponse{}, fmt.Errorf("version request: %w", err)
	}
	return info, mapHTTPError(resp)
}

// doAuthed sends an authenticated request built by send. A 401 answer is
// treated exactly like a locally expired session: the token is dropped and
// the unauthorized hook runs.
func (h *httpServerAdapter) doAuthed(ctx context.Context, send func(r *resty.Request) (*resty.Response, error)) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}

	resp, err := send(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}

	err = mapHTTPError(resp)
	if errors.Is(err, ErrUnauthorized) {
		h.logger.Info().Str("func", "*httpServerAdapter.doAuthed").Str("url", req.URL).Msg("session rejected by server")
		h.SetToken("")

		h.mu.RLock()
		hook := h.onUnauthorized
		h.mu.RUnlock()
		if hook != nil {
			hook()
		}
	}
	return err
}

func recordsPath(rt models.ResourceType) string {
	return "/api/records/" + url.PathEscape(string(rt))
}

func recordPath(rt models.ResourceType, id int64) string {
	return recordsPath(rt) + "/" + strconv.FormatInt(id, 10)
}
