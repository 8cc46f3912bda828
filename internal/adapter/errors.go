// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Bootstrap source errors.
var (
	// ErrBootstrapUnavailable is returned when the seed document for a
	// resource cannot be read or decoded.
	ErrBootstrapUnavailable = errors.New("bootstrap source unavailable")

	// ErrFetchTimeout is returned when a bootstrap fetch does not finish
	// within the configured timeout.
	ErrFetchTimeout = errors.New("bootstrap fetch timed out")
)

// Errors mapped from HTTP responses by mapHTTPError.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrGatewayTimeout      = errors.New("gateway timeout")
)
