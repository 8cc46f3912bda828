// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoHTTPHandler is returned when the admin API router is missing.
	errNoHTTPHandler = errors.New("admin API handler is not configured")

	// errNoListenAddress is returned when no listen address is configured.
	errNoListenAddress = errors.New("admin API listen address is empty")
)
