// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"

	"dario.cat/mergo"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/events"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

// settingsStore follows the record store's persistence pattern for the
// singleton settings document cached under models.SettingsCacheKey.
type settingsStore struct {
	collections store.CollectionRepository
	bootstrap   adapter.BootstrapSource
	colors      *events.Broadcaster[events.ColorsChanged]
	activity    ActivityRecorder

	mu       sync.Mutex
	loaded   bool
	doc      models.SettingsDocument
	revision int64

	logger *logger.Logger
}

// NewSettingsStore builds the settings store. colors and activity may be nil.
func NewSettingsStore(
	collections store.CollectionRepository,
	bootstrap adapter.BootstrapSource,
	colors *events.Broadcaster[events.ColorsChanged],
	activity ActivityRecorder,
	logger *logger.Logger,
) SettingsStore {
	return &settingsStore{
		collections: collections,
		bootstrap:   bootstrap,
		colors:      colors,
		activity:    activity,
		logger:      logger,
	}
}

func (s *settingsStore) Load(ctx context.Context) (models.SettingsDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return models.SettingsDocument{}, err
	}
	return cloneSettings(s.doc), nil
}

func (s *settingsStore) SaveSettings(ctx context.Context, patch map[string]any) (models.SettingsDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return models.SettingsDocument{}, err
	}

	next := cloneSettings(s.doc)
	maps.Copy(next.Settings, patch)

	if err := s.commit(ctx, next); err != nil {
		return models.SettingsDocument{}, err
	}

	s.record(ctx, models.ActionSaveSettings)
	return cloneSettings(next), nil
}

func (s *settingsStore) SaveColors(ctx context.Context, patch models.ColorSettings) (models.SettingsDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return models.SettingsDocument{}, err
	}

	next := cloneSettings(s.doc)
	if err := mergo.Merge(&next.Colors, patch, mergo.WithOverride); err != nil {
		return models.SettingsDocument{}, fmt.Errorf("merging colors: %w", err)
	}

	if err := s.commit(ctx, next); err != nil {
		return models.SettingsDocument{}, err
	}

	s.record(ctx, models.ActionSaveColors)
	if s.colors != nil {
		username, _ := utils.GetUsernameFromContext(ctx)
		s.colors.Publish(events.ColorsChanged{Colors: next.Colors, Username: username})
	}
	return cloneSettings(next), nil
}

// load materializes the document. Callers hold s.mu.
func (s *settingsStore) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	log := logger.FromContext(ctx)

	found, err := s.loadCached(ctx)
	if err != nil || found {
		return err
	}

	data, err := s.bootstrap.Fetch(ctx, models.SettingsCacheKey)
	if err == nil {
		s.doc, err = decodeSettings(data)
	}
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, context.Canceled) {
			return err
		}
		log.Warn().Err(err).Str("func", "*settingsStore.load").Msg("seed settings unavailable, using defaults")
		s.doc, s.revision = models.DefaultSettingsDocument(), 0
		return nil
	}

	revision, err := s.persist(ctx, s.doc, 0)
	if errors.Is(err, store.ErrRevisionConflict) {
		if found, cacheErr := s.loadCached(ctx); cacheErr != nil || found {
			return cacheErr
		}
	}
	if err != nil {
		log.Err(err).Str("func", "*settingsStore.load").Msg("error caching seed settings")
		return nil
	}

	s.revision, s.loaded = revision, true
	return nil
}

func (s *settingsStore) loadCached(ctx context.Context) (bool, error) {
	doc, err := s.collections.Get(ctx, models.SettingsCacheKey)
	if errors.Is(err, store.ErrCollectionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cached settings: %w", err)
	}

	parsed, err := decodeSettings(doc.Payload)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingsStore.loadCached").Msg("cached settings are not valid json")
		return false, fmt.Errorf("decoding cached settings: %w", err)
	}

	s.doc, s.revision, s.loaded = parsed, doc.Revision, true
	return true, nil
}

func (s *settingsStore) persist(ctx context.Context, doc models.SettingsDocument, expectedRevision int64) (int64, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encoding settings: %w", err)
	}
	return s.collections.Put(ctx, models.SettingsCacheKey, payload, expectedRevision)
}

func (s *settingsStore) commit(ctx context.Context, next models.SettingsDocument) error {
	revision, err := s.persist(ctx, next, s.revision)
	if err == nil {
		s.doc, s.revision, s.loaded = next, revision, true
		return nil
	}

	logger.FromContext(ctx).Err(err).Str("func", "*settingsStore.commit").Msg("error persisting settings")
	if errors.Is(err, store.ErrRevisionConflict) {
		s.loaded = false
		return err
	}
	return fmt.Errorf("persisting settings: %w", err)
}

func (s *settingsStore) record(ctx context.Context, action models.ActivityAction) {
	if s.activity != nil {
		s.activity.Record(ctx, models.ActivityEntry{Action: action})
	}
}

// decodeSettings parses a settings document, filling colors the document
// leaves out with the defaults.
func decodeSettings(data []byte) (models.SettingsDocument, error) {
	var doc models.SettingsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.SettingsDocument{}, err
	}
	if doc.Settings == nil {
		doc.Settings = map[string]any{}
	}
	if err := mergo.Merge(&doc.Colors, models.DefaultColorSettings()); err != nil {
		return models.SettingsDocument{}, err
	}
	return doc, nil
}

func cloneSettings(doc models.SettingsDocument) models.SettingsDocument {
	out := doc
	out.Settings = maps.Clone(doc.Settings)
	if out.Settings == nil {
		out.Settings = map[string]any{}
	}
	return out
}
