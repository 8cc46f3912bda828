// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/aplu147/interia/internal/logger"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A request whose method has no handler on a known path is answered like an
// unknown path (404), so the admin API does not advertise which methods a
// resource accepts.
func CheckHTTPMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Debug().
			Str("func", "CheckHTTPMethod").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("method not served on path")

		http.NotFound(w, r)
	}
}
