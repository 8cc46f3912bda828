// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	doc, err := h.services.Settings.Load(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.getSettings")
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err, "*Handler.saveSettings")
		return
	}

	doc, err := h.services.Settings.SaveSettings(r.Context(), patch)
	if err != nil {
		writeError(w, r, err, "*Handler.saveSettings")
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) saveColors(w http.ResponseWriter, r *http.Request) {
	var colors models.ColorSettings
	if err := decodeJSON(r, &colors); err != nil {
		writeError(w, r, err, "*Handler.saveColors")
		return
	}

	doc, err := h.services.Settings.SaveColors(r.Context(), colors)
	if err != nil {
		writeError(w, r, err, "*Handler.saveColors")
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.services.Dashboard.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.dashboard")
		return
	}

	utils.WriteJSON(w, dashboard, http.StatusOK)
}
