// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST API of the admin panel.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as bearer token extraction, request tracing, access logging,
// CORS and login rate limiting are handled in this package before requests
// are delegated to the service layer. Session validity itself is decided by
// the services: every store is wrapped with the session guard.
package http
