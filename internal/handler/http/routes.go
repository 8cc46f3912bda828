// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.corsMiddleware())

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.With(h.limitFailedLogins).Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/theme.css", h.themeCSS)
	})

	// routes carrying a session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Post("/api/auth/activity", h.touchActivity)
		r.Get("/api/auth/session", h.session)

		r.Route("/api/records/{resource}", func(r chi.Router) {
			r.Use(h.withRecordStore)

			r.Get("/", h.listRecords)
			r.Post("/", h.createRecord)
			r.Post("/save", h.saveRecords)
			r.Get("/{id}", h.getRecord)
			r.Patch("/{id}", h.updateRecord)
			r.Delete("/{id}", h.deleteRecord)
		})

		r.Get("/api/settings", h.getSettings)
		r.Patch("/api/settings", h.saveSettings)
		r.Put("/api/settings/colors", h.saveColors)

		r.Get("/api/dashboard", h.dashboard)
	})

	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}

// corsMiddleware lets the public site's admin scripts call the API. With no
// configured origins every origin is reflected.
func (h *Handler) corsMiddleware() func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if len(h.corsOrigins) == 0 || (len(h.corsOrigins) == 1 && h.corsOrigins[0] == "*") {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool {
			return true
		}
	} else {
		opts.AllowedOrigins = h.corsOrigins
	}

	return cors.Handler(opts)
}
