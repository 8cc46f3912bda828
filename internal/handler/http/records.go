// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aplu147/interia/internal/service"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

type recordStoreCtxKey struct{}

// withRecordStore resolves the {resource} URL parameter to its store.
// Unknown resource types answer 404.
func (h *Handler) withRecordStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := h.services.RecordStore(chi.URLParam(r, "resource"))
		if err != nil {
			writeError(w, r, err, "*Handler.withRecordStore")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), recordStoreCtxKey{}, s)))
	})
}

func recordStoreFromRequest(r *http.Request) service.RecordStore {
	return r.Context().Value(recordStoreCtxKey{}).(service.RecordStore)
}

func recordIDFromRequest(r *http.Request) (int64, error) {
	return models.ParseID(chi.URLParam(r, "id"))
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	items, err := recordStoreFromRequest(r).LoadAll(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.listRecords")
		return
	}
	if items == nil {
		items = models.Collection{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "*Handler.getRecord")
		return
	}

	record, ok, err := recordStoreFromRequest(r).GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "*Handler.getRecord")
		return
	}
	if !ok {
		writeError(w, r, ErrRecordNotFound, "*Handler.getRecord")
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, r, err, "*Handler.createRecord")
		return
	}

	record, err := recordStoreFromRequest(r).Create(r.Context(), fields)
	if err != nil {
		writeError(w, r, err, "*Handler.createRecord")
		return
	}

	utils.WriteJSON(w, record, http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "*Handler.updateRecord")
		return
	}

	var patch map[string]any
	if err = decodeJSON(r, &patch); err != nil {
		writeError(w, r, err, "*Handler.updateRecord")
		return
	}

	record, ok, err := recordStoreFromRequest(r).Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err, "*Handler.updateRecord")
		return
	}
	if !ok {
		writeError(w, r, ErrRecordNotFound, "*Handler.updateRecord")
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "*Handler.deleteRecord")
		return
	}

	removed, err := recordStoreFromRequest(r).Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "*Handler.deleteRecord")
		return
	}
	if !removed {
		writeError(w, r, ErrRecordNotFound, "*Handler.deleteRecord")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// saveRecords flushes the in-memory collection to the cache.
func (h *Handler) saveRecords(w http.ResponseWriter, r *http.Request) {
	if err := recordStoreFromRequest(r).Save(r.Context()); err != nil {
		writeError(w, r, err, "*Handler.saveRecords")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
