// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/aplu147/interia/internal/adapter"
)

const (
	msgServerUnavailable  = "Network is down or the server is unavailable"
	msgInvalidCredentials = "Invalid username or password"
	msgTooManyAttempts    = "Too many failed attempts, try again later"
	msgRevisionConflict   = "The content was changed elsewhere, reload and try again"
	msgBootstrapFailed    = "Seed content is unavailable, try again later"
	msgSessionExpired     = "Session expired, please log in again"
)

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return msgServerUnavailable
	}

	return err.Error()
}

// humanizeError maps a server call error to the line shown to the user.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrConflict):
		return msgRevisionConflict
	case errors.Is(err, adapter.ErrBadGateway), errors.Is(err, adapter.ErrGatewayTimeout):
		return msgBootstrapFailed
	case errors.Is(err, adapter.ErrTooManyRequests):
		return msgTooManyAttempts
	}
	return humanizeServerUnavailableError(err)
}

func loginErrorMessage(err error) string {
	if errors.Is(err, adapter.ErrUnauthorized) {
		return msgInvalidCredentials
	}
	return humanizeError(err)
}
