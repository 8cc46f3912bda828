// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/mock"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

func rec(id int64, fields map[string]any) models.Record {
	return models.Record{ID: id, Fields: fields}
}

func newMemoryRecordStore(collections *memoryCollections, bootstrap adapter.BootstrapSource) *recordStore {
	return NewRecordStore(models.ResourceProjects, collections, bootstrap, nil, logger.Nop()).(*recordStore)
}

// ─── scenarios ───────────────────────────────────────────────────────────────

func TestRecordStore_CreateUpdateDeleteScenario(t *testing.T) {
	ctx := context.Background()
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A"}]`)
	bootstrap := newCountingBootstrap(nil)
	activity := &recordingActivity{}

	s := NewRecordStore(models.ResourceProjects, collections, bootstrap, activity, logger.Nop())

	created, err := s.Create(ctx, map[string]any{"title": "B"})
	require.NoError(t, err)
	assert.Equal(t, rec(2, map[string]any{"title": "B"}), created)

	updated, ok, err := s.Update(ctx, 1, map[string]any{"title": "A2"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec(1, map[string]any{"title": "A2"}), updated)

	deleted, err := s.Delete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, deleted)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Collection{rec(1, map[string]any{"title": "A2"})}, all)

	assert.JSONEq(t, `[{"id":1,"title":"A2"}]`, collections.payload("crud_projects"))
	assert.Zero(t, bootstrap.Calls("projects"), "a cached collection is never re-seeded")
	assert.Equal(t,
		[]models.ActivityAction{models.ActionCreate, models.ActionUpdate, models.ActionDelete},
		activity.Actions())
}

func TestRecordStore_SeedWithoutIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	collections := mock.NewMockCollectionRepository(ctrl)
	bootstrap := mock.NewMockBootstrapSource(ctrl)

	gomock.InOrder(
		collections.EXPECT().Get(gomock.Any(), "crud_projects").Return(models.CachedDocument{}, store.ErrCollectionNotFound),
		bootstrap.EXPECT().Fetch(gomock.Any(), "projects").Return([]byte(`[{"title":"X"},{"title":"Y"}]`), nil),
		collections.EXPECT().Put(gomock.Any(), "crud_projects", gomock.Any(), int64(0)).DoAndReturn(
			func(_ context.Context, _ string, payload []byte, _ int64) (int64, error) {
				assert.JSONEq(t, `[{"id":1,"title":"X"},{"id":2,"title":"Y"}]`, string(payload))
				return 1, nil
			}),
	)

	s := NewRecordStore(models.ResourceProjects, collections, bootstrap, nil, logger.Nop())

	first, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Collection{
		rec(1, map[string]any{"title": "X"}),
		rec(2, map[string]any{"title": "Y"}),
	}, first)

	second, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecordStore_SeedKeepsExistingIDs(t *testing.T) {
	collections := newMemoryCollections()
	bootstrap := newCountingBootstrap(map[string]string{
		"projects": `[{"id":7,"title":"X"},{"title":"Y"},{"id":"3","title":"Z"}]`,
	})
	s := newMemoryRecordStore(collections, bootstrap)

	all, err := s.LoadAll(context.Background())
	require.NoError(t, err)

	ids := make([]int64, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{7, 2, 3}, ids)
}

// ─── properties ──────────────────────────────────────────────────────────────

func TestRecordStore_SeedIDsStayUnique(t *testing.T) {
	collections := newMemoryCollections()
	bootstrap := newCountingBootstrap(map[string]string{
		"projects": `[{"id":2,"title":"X"},{"title":"Y"}]`,
	})
	s := newMemoryRecordStore(collections, bootstrap)
	ctx := context.Background()

	updated, ok, err := s.Update(ctx, 3, map[string]any{"title": "Y2"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec(3, map[string]any{"title": "Y2"}), updated)

	x, ok, err := s.GetByID(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "X", x.Text("title"))
}

func TestRecordStore_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newMemoryRecordStore(newMemoryCollections(), newCountingBootstrap(map[string]string{
		"projects": `[{"title":"X"},{"title":"Y"}]`,
	}))

	fields := map[string]any{"title": "Loft", "category": "residential", "id": 99}
	created, err := s.Create(ctx, fields)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID, "caller-supplied ids are ignored")

	got, ok, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec(3, map[string]any{"title": "Loft", "category": "residential"}), got)
}

func TestRecordStore_CreateIntoEmpty(t *testing.T) {
	s := newMemoryRecordStore(newMemoryCollections(), newCountingBootstrap(map[string]string{"projects": `[]`}))

	created, err := s.Create(context.Background(), map[string]any{"title": "First"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestRecordStore_LoadAllIsIdempotent(t *testing.T) {
	bootstrap := newCountingBootstrap(map[string]string{"projects": `[{"title":"X"},{"title":"Y"}]`})
	s := newMemoryRecordStore(newMemoryCollections(), bootstrap)

	first, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	second, err := s.LoadAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, bootstrap.Calls("projects"))
}

func TestRecordStore_SeedReadOncePerStorage(t *testing.T) {
	collections := newMemoryCollections()
	bootstrap := newCountingBootstrap(map[string]string{"projects": `[{"title":"X"}]`})

	_, err := newMemoryRecordStore(collections, bootstrap).LoadAll(context.Background())
	require.NoError(t, err)

	// a fresh store over the same cache, as after a restart
	all, err := newMemoryRecordStore(collections, bootstrap).LoadAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, all, 1)
	assert.Equal(t, 1, bootstrap.Calls("projects"))
}

func TestRecordStore_LoadAllReturnsCopy(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A"}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))

	all, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	all[0].Fields["title"] = "mutated"

	got, _, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Text("title"))
}

func TestRecordStore_UpdateMissing(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A"}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))

	got, ok, err := s.Update(context.Background(), 42, map[string]any{"title": "nope"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, models.Record{}, got)

	all, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Collection{rec(1, map[string]any{"title": "A"})}, all)
	assert.Zero(t, collections.puts)
}

func TestRecordStore_UpdateMergesAndKeepsID(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A","category":"office","year":"2024"}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))

	got, ok, err := s.Update(context.Background(), 1, map[string]any{"id": 5, "title": "A2", "year": ""})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, rec(1, map[string]any{"title": "A2", "category": "office", "year": ""}), got)
}

func TestRecordStore_UpdateReplacesNestedObjects(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A","meta":{"a":1,"b":2}}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))

	updated, ok, err := s.Update(context.Background(), 1, map[string]any{"meta": map[string]any{"a": 3}})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, rec(1, map[string]any{"title": "A", "meta": map[string]any{"a": 3}}), updated)
	assert.JSONEq(t, `[{"id":1,"title":"A","meta":{"a":3}}]`, collections.payload("crud_projects"))
}

func TestRecordStore_Delete(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A"},{"id":2,"title":"B"},{"id":3,"title":"C"}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))
	ctx := context.Background()

	ok, err := s.Delete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(3), all[1].ID)
}

func TestRecordStore_Save(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A"}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))

	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, int64(2), collections.docs["crud_projects"].Revision)
	assert.JSONEq(t, `[{"id":1,"title":"A"}]`, collections.payload("crud_projects"))
}

// ─── failures ────────────────────────────────────────────────────────────────

func TestRecordStore_FailedWriteLeavesStateUntouched(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A"}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))
	ctx := context.Background()

	_, err := s.LoadAll(ctx)
	require.NoError(t, err)

	collections.putErr = errors.New("disk full")

	_, err = s.Create(ctx, map[string]any{"title": "B"})
	assert.Error(t, err)
	_, _, err = s.Update(ctx, 1, map[string]any{"title": "A2"})
	assert.Error(t, err)
	_, err = s.Delete(ctx, 1)
	assert.Error(t, err)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Collection{rec(1, map[string]any{"title": "A"})}, all)
}

func TestRecordStore_FailedNestedUpdateLeavesStateUntouched(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"meta":{"a":1,"b":2}}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))
	ctx := context.Background()

	_, err := s.LoadAll(ctx)
	require.NoError(t, err)

	collections.putErr = errors.New("disk full")
	_, _, err = s.Update(ctx, 1, map[string]any{"meta": map[string]any{"a": 99}})
	require.Error(t, err)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Collection{
		rec(1, map[string]any{"meta": map[string]any{"a": float64(1), "b": float64(2)}}),
	}, all)
}

func TestRecordStore_RevisionConflictReloads(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1,"title":"A"}]`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))
	ctx := context.Background()

	_, err := s.LoadAll(ctx)
	require.NoError(t, err)

	// another process writes first
	_, err = collections.Put(ctx, "crud_projects", []byte(`[{"id":1,"title":"A"},{"id":2,"title":"Other"}]`), 1)
	require.NoError(t, err)

	_, err = s.Create(ctx, map[string]any{"title": "Mine"})
	assert.ErrorIs(t, err, store.ErrRevisionConflict)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Other", all[1].Text("title"))

	created, err := s.Create(ctx, map[string]any{"title": "Mine"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}

func TestRecordStore_BootstrapFailureServesEmpty(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unavailable", err: adapter.ErrBootstrapUnavailable},
		{name: "timeout", err: adapter.ErrFetchTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collections := newMemoryCollections()
			bootstrap := newCountingBootstrap(nil)
			bootstrap.err = tt.err
			s := newMemoryRecordStore(collections, bootstrap)

			all, err := s.LoadAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
			assert.False(t, collections.has("crud_projects"), "an empty fallback is not persisted")

			_, err = s.LoadAll(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 2, bootstrap.Calls("projects"), "the seed is retried after a failure")
		})
	}
}

func TestRecordStore_CreateAfterBootstrapFailure(t *testing.T) {
	collections := newMemoryCollections()
	bootstrap := newCountingBootstrap(nil)
	bootstrap.err = adapter.ErrBootstrapUnavailable
	s := newMemoryRecordStore(collections, bootstrap)

	created, err := s.Create(context.Background(), map[string]any{"title": "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.JSONEq(t, `[{"id":1,"title":"New"}]`, collections.payload("crud_projects"))
}

func TestRecordStore_MalformedSeed(t *testing.T) {
	collections := newMemoryCollections()
	s := newMemoryRecordStore(collections, newCountingBootstrap(map[string]string{"projects": `{"not":"a list"}`}))

	all, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.False(t, collections.has("crud_projects"))
}

func TestRecordStore_BootstrapUnauthorizedPropagates(t *testing.T) {
	bootstrap := newCountingBootstrap(nil)
	bootstrap.err = adapter.ErrUnauthorized
	s := newMemoryRecordStore(newMemoryCollections(), bootstrap)

	_, err := s.LoadAll(context.Background())
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestRecordStore_CacheReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	collections := mock.NewMockCollectionRepository(ctrl)
	bootstrap := mock.NewMockBootstrapSource(ctrl)

	collections.EXPECT().Get(gomock.Any(), "crud_team").Return(models.CachedDocument{}, store.ErrExecutingQuery)

	s := NewRecordStore(models.ResourceTeam, collections, bootstrap, nil, logger.Nop())

	_, err := s.LoadAll(context.Background())
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestRecordStore_CorruptCache(t *testing.T) {
	collections := newMemoryCollections()
	collections.seed("crud_projects", `not json`)
	s := newMemoryRecordStore(collections, newCountingBootstrap(nil))

	_, err := s.LoadAll(context.Background())
	assert.Error(t, err)
}

func TestRecordStore_ConcurrentBaselineWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	collections := mock.NewMockCollectionRepository(ctrl)
	bootstrap := mock.NewMockBootstrapSource(ctrl)

	gomock.InOrder(
		collections.EXPECT().Get(gomock.Any(), "crud_posts").Return(models.CachedDocument{}, store.ErrCollectionNotFound),
		bootstrap.EXPECT().Fetch(gomock.Any(), "posts").Return([]byte(`[{"title":"Seed"}]`), nil),
		collections.EXPECT().Put(gomock.Any(), "crud_posts", gomock.Any(), int64(0)).Return(int64(0), store.ErrRevisionConflict),
		collections.EXPECT().Get(gomock.Any(), "crud_posts").Return(models.CachedDocument{
			Key:      "crud_posts",
			Payload:  []byte(`[{"id":1,"title":"Theirs"}]`),
			Revision: 1,
		}, nil),
	)

	s := NewRecordStore(models.ResourcePosts, collections, bootstrap, nil, logger.Nop())

	all, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Collection{rec(1, map[string]any{"title": "Theirs"})}, all)
}
