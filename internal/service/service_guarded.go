// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/models"
)

// guarded runs fn under guard. A bootstrap source rejecting the session is
// handled like local expiry: the session is destroyed and
// ErrUnauthenticated returned.
func guarded[T any](ctx context.Context, guard SessionGuard, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := guard.Guard(ctx, func(ctx context.Context) error {
		var fnErr error
		out, fnErr = fn(ctx)
		return fnErr
	})

	if errors.Is(err, adapter.ErrUnauthorized) {
		if logoutErr := guard.Logout(ctx); logoutErr != nil {
			logger.FromContext(ctx).Warn().Err(logoutErr).Str("func", "guarded").Msg("error dropping rejected session")
		}
		var zero T
		return zero, ErrUnauthenticated
	}
	return out, err
}

type guardedRecordStore struct {
	inner RecordStore
	guard SessionGuard
}

// NewGuardedRecordStore returns the wrapper that makes every RecordStore
// operation require a valid session.
func NewGuardedRecordStore(guard SessionGuard) RecordStoreWrapper {
	return &guardedRecordStore{guard: guard}
}

func (g *guardedRecordStore) Wrap(inner RecordStore) RecordStore {
	return &guardedRecordStore{inner: inner, guard: g.guard}
}

func (g *guardedRecordStore) ResourceType() models.ResourceType {
	return g.inner.ResourceType()
}

func (g *guardedRecordStore) LoadAll(ctx context.Context) (models.Collection, error) {
	return guarded(ctx, g.guard, g.inner.LoadAll)
}

type lookup struct {
	record models.Record
	ok     bool
}

func (g *guardedRecordStore) GetByID(ctx context.Context, id int64) (models.Record, bool, error) {
	res, err := guarded(ctx, g.guard, func(ctx context.Context) (lookup, error) {
		record, ok, err := g.inner.GetByID(ctx, id)
		return lookup{record: record, ok: ok}, err
	})
	return res.record, res.ok, err
}

func (g *guardedRecordStore) Create(ctx context.Context, fields map[string]any) (models.Record, error) {
	return guarded(ctx, g.guard, func(ctx context.Context) (models.Record, error) {
		return g.inner.Create(ctx, fields)
	})
}

func (g *guardedRecordStore) Update(ctx context.Context, id int64, patch map[string]any) (models.Record, bool, error) {
	res, err := guarded(ctx, g.guard, func(ctx context.Context) (lookup, error) {
		record, ok, err := g.inner.Update(ctx, id, patch)
		return lookup{record: record, ok: ok}, err
	})
	return res.record, res.ok, err
}

func (g *guardedRecordStore) Delete(ctx context.Context, id int64) (bool, error) {
	return guarded(ctx, g.guard, func(ctx context.Context) (bool, error) {
		return g.inner.Delete(ctx, id)
	})
}

func (g *guardedRecordStore) Save(ctx context.Context) error {
	_, err := guarded(ctx, g.guard, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.inner.Save(ctx)
	})
	return err
}

type guardedSettingsStore struct {
	inner SettingsStore
	guard SessionGuard
}

// NewGuardedSettingsStore makes every SettingsStore operation require a
// valid session.
func NewGuardedSettingsStore(inner SettingsStore, guard SessionGuard) SettingsStore {
	return &guardedSettingsStore{inner: inner, guard: guard}
}

func (g *guardedSettingsStore) Load(ctx context.Context) (models.SettingsDocument, error) {
	return guarded(ctx, g.guard, g.inner.Load)
}

func (g *guardedSettingsStore) SaveSettings(ctx context.Context, patch map[string]any) (models.SettingsDocument, error) {
	return guarded(ctx, g.guard, func(ctx context.Context) (models.SettingsDocument, error) {
		return g.inner.SaveSettings(ctx, patch)
	})
}

func (g *guardedSettingsStore) SaveColors(ctx context.Context, patch models.ColorSettings) (models.SettingsDocument, error) {
	return guarded(ctx, g.guard, func(ctx context.Context) (models.SettingsDocument, error) {
		return g.inner.SaveColors(ctx, patch)
	})
}
