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

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

// recordStore keeps one resource type's collection in memory and writes the
// whole collection to the persistent cache after every mutation.
//
// The collection is materialized on first use: from the cache when it holds
// one, otherwise from the bootstrap source with missing ids assigned, after
// which that result becomes the cached baseline. Mutations are applied to a
// copy that replaces the in-memory collection only once the write succeeded.
type recordStore struct {
	resourceType models.ResourceType
	collections  store.CollectionRepository
	bootstrap    adapter.BootstrapSource
	activity     ActivityRecorder

	mu       sync.Mutex
	loaded   bool
	items    models.Collection
	revision int64

	logger *logger.Logger
}

// NewRecordStore builds the store of one resource type. activity may be nil.
// The result does not check the session; wrap it with NewGuardedRecordStore.
func NewRecordStore(
	resourceType models.ResourceType,
	collections store.CollectionRepository,
	bootstrap adapter.BootstrapSource,
	activity ActivityRecorder,
	logger *logger.Logger,
) RecordStore {
	return &recordStore{
		resourceType: resourceType,
		collections:  collections,
		bootstrap:    bootstrap,
		activity:     activity,
		logger:       logger,
	}
}

func (s *recordStore) ResourceType() models.ResourceType {
	return s.resourceType
}

func (s *recordStore) LoadAll(ctx context.Context) (models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.items.Clone(), nil
}

func (s *recordStore) GetByID(ctx context.Context, id int64) (models.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return models.Record{}, false, err
	}

	idx := s.items.IndexOf(id)
	if idx < 0 {
		return models.Record{}, false, nil
	}
	return s.items[idx].Clone(), true, nil
}

func (s *recordStore) Create(ctx context.Context, fields map[string]any) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return models.Record{}, err
	}

	record := models.NewRecord(fields)
	record.ID = s.items.NextID()

	next := append(s.items.Clone(), record)
	if err := s.commit(ctx, next); err != nil {
		return models.Record{}, err
	}

	s.record(ctx, models.ActionCreate, record.ID)
	return record.Clone(), nil
}

func (s *recordStore) Update(ctx context.Context, id int64, patch map[string]any) (models.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return models.Record{}, false, err
	}

	idx := s.items.IndexOf(id)
	if idx < 0 {
		return models.Record{}, false, nil
	}

	next := s.items.Clone()
	next[idx] = models.Record{ID: id, Fields: mergePatch(next[idx].Fields, patch)}

	if err := s.commit(ctx, next); err != nil {
		return models.Record{}, false, err
	}

	s.record(ctx, models.ActionUpdate, id)
	return next[idx].Clone(), true, nil
}

func (s *recordStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return false, err
	}

	idx := s.items.IndexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make(models.Collection, 0, len(s.items)-1)
	next = append(next, s.items[:idx].Clone()...)
	next = append(next, s.items[idx+1:].Clone()...)

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.record(ctx, models.ActionDelete, id)
	return true, nil
}

func (s *recordStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}
	return s.commit(ctx, s.items.Clone())
}

// load materializes the collection. Callers hold s.mu.
func (s *recordStore) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	found, err := s.loadCached(ctx)
	if err != nil || found {
		return err
	}

	items, err := s.fetchSeed(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, context.Canceled) {
			return err
		}
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*recordStore.load").
			Str("resource_type", s.resourceType.String()).
			Msg("seed data unavailable, serving an empty collection")
		s.items, s.revision = models.Collection{}, 0
		return nil
	}

	items.AssignMissingIDs()

	revision, err := s.persist(ctx, items, 0)
	if errors.Is(err, store.ErrRevisionConflict) {
		// another writer stored the baseline first
		if found, cacheErr := s.loadCached(ctx); cacheErr != nil || found {
			return cacheErr
		}
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*recordStore.load").
			Str("resource_type", s.resourceType.String()).
			Msg("error caching seed baseline")
		s.items, s.revision = items, 0
		return nil
	}

	s.items, s.revision, s.loaded = items, revision, true
	return nil
}

func (s *recordStore) loadCached(ctx context.Context) (bool, error) {
	doc, err := s.collections.Get(ctx, s.resourceType.CacheKey())
	if errors.Is(err, store.ErrCollectionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cached %s: %w", s.resourceType, err)
	}

	var items models.Collection
	if err = json.Unmarshal(doc.Payload, &items); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*recordStore.loadCached").
			Str("resource_type", s.resourceType.String()).
			Msg("cached collection is not valid json")
		return false, fmt.Errorf("decoding cached %s: %w", s.resourceType, err)
	}
	if items == nil {
		items = models.Collection{}
	}

	s.items, s.revision, s.loaded = items, doc.Revision, true
	return true, nil
}

func (s *recordStore) fetchSeed(ctx context.Context) (models.Collection, error) {
	data, err := s.bootstrap.Fetch(ctx, s.resourceType.String())
	if err != nil {
		return nil, err
	}

	var items models.Collection
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: decoding %s seed: %w", adapter.ErrBootstrapUnavailable, s.resourceType, err)
	}
	if items == nil {
		items = models.Collection{}
	}
	return items, nil
}

func (s *recordStore) persist(ctx context.Context, items models.Collection, expectedRevision int64) (int64, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("encoding %s: %w", s.resourceType, err)
	}
	return s.collections.Put(ctx, s.resourceType.CacheKey(), payload, expectedRevision)
}

// commit persists next and makes it the current collection. On a revision
// conflict the in-memory copy is dropped and reloaded from the cache.
func (s *recordStore) commit(ctx context.Context, next models.Collection) error {
	revision, err := s.persist(ctx, next, s.revision)
	if err == nil {
		s.items, s.revision, s.loaded = next, revision, true
		return nil
	}

	log := logger.FromContext(ctx)
	if errors.Is(err, store.ErrRevisionConflict) {
		log.Warn().Str("func", "*recordStore.commit").
			Str("resource_type", s.resourceType.String()).
			Msg("collection changed underneath, reloading")
		s.items, s.revision, s.loaded = nil, 0, false
		if _, reloadErr := s.loadCached(ctx); reloadErr != nil {
			log.Err(reloadErr).Str("func", "*recordStore.commit").Msg("error reloading collection")
		}
		return err
	}

	log.Err(err).Str("func", "*recordStore.commit").
		Str("resource_type", s.resourceType.String()).
		Msg("error persisting collection")
	return fmt.Errorf("persisting %s: %w", s.resourceType, err)
}

func (s *recordStore) record(ctx context.Context, action models.ActivityAction, id int64) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, models.ActivityEntry{
		Action:       action,
		ResourceType: s.resourceType,
		RecordID:     id,
	})
}

// mergePatch returns a new field map where every top-level key of patch
// replaces the current value. Nested objects are replaced whole, and the
// id key is never taken from the patch.
func mergePatch(current, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(current)+len(patch))
	maps.Copy(merged, current)
	maps.Copy(merged, patch)
	delete(merged, "id")
	return merged
}
