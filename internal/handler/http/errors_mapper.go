// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/service"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:          http.StatusBadRequest,
	ErrTooManyLoginAttempts: http.StatusTooManyRequests,
	ErrRecordNotFound:       http.StatusNotFound,

	models.ErrInvalidRecordID: http.StatusBadRequest,

	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrUnauthenticated:     http.StatusUnauthorized,
	service.ErrUnknownResourceType: http.StatusNotFound,

	adapter.ErrUnauthorized:         http.StatusUnauthorized,
	adapter.ErrBootstrapUnavailable: http.StatusBadGateway,
	adapter.ErrFetchTimeout:         http.StatusGatewayTimeout,

	store.ErrRevisionConflict:   http.StatusConflict,
	store.ErrCollectionNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,

	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the mapped status. Server-side
// failures are reported with the generic status text only.
func writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway && status != http.StatusGatewayTimeout {
		log.Err(err).Str("func", fn).Int("status", status).Msg("request failed")
		message = http.StatusText(status)
	} else {
		log.Info().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, message, status)
}
