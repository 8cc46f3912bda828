// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/service"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	session, err := h.services.Guard.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.loginLimiter.Failed(h.clientIP(r))
		}
		writeError(w, r, err, "*Handler.login")
		return
	}

	logger.FromRequest(r).Info().Str("username", session.Username).Msg("admin logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", session.Token))
	utils.WriteJSON(w, h.sessionResponse(session, true), http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Guard.Logout(r.Context()); err != nil {
		writeError(w, r, err, "*Handler.logout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// touchActivity slides the session window. It is called by the admin
// console on user interaction.
func (h *Handler) touchActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.services.Guard.TouchActivity(ctx); err != nil {
		writeError(w, r, err, "*Handler.touchActivity")
		return
	}

	session, err := h.services.Guard.Session(ctx)
	if err != nil {
		writeError(w, r, err, "*Handler.touchActivity")
		return
	}

	utils.WriteJSON(w, h.sessionResponse(session, false), http.StatusOK)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	session, err := h.services.Guard.Session(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.session")
		return
	}

	utils.WriteJSON(w, h.sessionResponse(session, false), http.StatusOK)
}

func (h *Handler) sessionResponse(session models.Session, withToken bool) models.SessionResponse {
	resp := models.SessionResponse{
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt(h.services.Guard.Timeout()).UTC(),
	}
	if withToken {
		resp.Token = session.Token
	}
	return resp
}
