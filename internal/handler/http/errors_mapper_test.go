// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/service"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

func TestStatusFromError_TableTest(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "unauthenticated", err: fmt.Errorf("guard: %w", service.ErrUnauthenticated), want: http.StatusUnauthorized},
		{name: "seed rejected session", err: adapter.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "unknown resource", err: service.ErrUnknownResourceType, want: http.StatusNotFound},
		{name: "record not found", err: ErrRecordNotFound, want: http.StatusNotFound},
		{name: "conflict", err: fmt.Errorf("persisting projects: %w", store.ErrRevisionConflict), want: http.StatusConflict},
		{name: "too many logins", err: ErrTooManyLoginAttempts, want: http.StatusTooManyRequests},
		{name: "bootstrap unavailable", err: adapter.ErrBootstrapUnavailable, want: http.StatusBadGateway},
		{name: "bootstrap timeout", err: adapter.ErrFetchTimeout, want: http.StatusGatewayTimeout},
		{name: "request deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{name: "bad id", err: fmt.Errorf("%w: %q", models.ErrInvalidRecordID, "x"), want: http.StatusBadRequest},
		{name: "bad json", err: ErrInvalidJSON, want: http.StatusBadRequest},
		{name: "sql", err: store.ErrExecutingQuery, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteError_Body(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantBody string
	}{
		{name: "client error keeps message", err: ErrRecordNotFound, wantBody: `{"error":"record not found"}`},
		{name: "server error is generic", err: errors.New("dial tcp: refused"), wantBody: `{"error":"Internal Server Error"}`},
		{name: "gateway error keeps message", err: adapter.ErrFetchTimeout, wantBody: `{"error":"bootstrap fetch timed out"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, "test")

			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
