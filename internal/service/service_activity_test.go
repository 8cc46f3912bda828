// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/mock"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

// ─── ActivityRecorder ────────────────────────────────────────────────────────

func TestActivityRecorder_FillsEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockActivityRepository(ctrl)
	clock := newFakeClock()

	r := NewActivityRecorder(repo).(*activityService)
	r.now = clock.Now

	repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.ActivityEntry) error {
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, models.ActionCreate, e.Action)
			assert.Equal(t, models.ResourceTeam, e.ResourceType)
			assert.Equal(t, int64(4), e.RecordID)
			assert.Equal(t, "admin", e.Username)
			assert.Equal(t, clock.Now().UnixMilli(), e.CreatedAt)
			return nil
		})

	ctx := utils.WithUsername(context.Background(), "admin")
	r.Record(ctx, models.ActivityEntry{Action: models.ActionCreate, ResourceType: models.ResourceTeam, RecordID: 4})
}

func TestActivityRecorder_SwallowsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockActivityRepository(ctrl)
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		NewActivityRecorder(repo).Record(context.Background(), models.ActivityEntry{Action: models.ActionLogin})
	})
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

func TestDashboardService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	activityRepo := mock.NewMockActivityRepository(ctrl)

	guard, clock := newTestGuard(t, newMemorySessions(), nil)
	ctx := login(t, guard)

	collections := newMemoryCollections()
	collections.seed("crud_projects", `[{"id":1},{"id":2},{"id":3}]`)
	collections.seed("crud_team", `[{"id":1}]`)
	wrap := NewGuardedRecordStore(guard)
	stores := []RecordStore{
		wrap.Wrap(NewRecordStore(models.ResourceProjects, collections, newCountingBootstrap(nil), nil, logger.Nop())),
		wrap.Wrap(NewRecordStore(models.ResourceTeam, collections, newCountingBootstrap(nil), nil, logger.Nop())),
	}

	now := clock.Now()
	activityRepo.EXPECT().Latest(gomock.Any(), DefaultActivityLimit).Return([]models.ActivityEntry{
		{ID: "b", Action: models.ActionUpdate, ResourceType: models.ResourceProjects, RecordID: 2, CreatedAt: now.Add(-5 * time.Minute).UnixMilli()},
		{ID: "a", Action: models.ActionSaveColors, CreatedAt: now.Add(-3 * time.Hour).UnixMilli()},
	}, nil)

	d := NewDashboardService(guard, stores, activityRepo).(*dashboardService)
	d.now = clock.Now

	dashboard, err := d.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[models.ResourceType]int{models.ResourceProjects: 3, models.ResourceTeam: 1}, dashboard.Counts)
	require.Len(t, dashboard.Activity, 2)
	assert.Equal(t, "Updated projects #2", dashboard.Activity[0].Message)
	assert.Equal(t, "5 minutes ago", dashboard.Activity[0].Age)
	assert.Equal(t, "Saved color scheme", dashboard.Activity[1].Message)
	assert.Equal(t, "3 hours ago", dashboard.Activity[1].Age)
}

func TestDashboardService_ActivityUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	activityRepo := mock.NewMockActivityRepository(ctrl)
	activityRepo.EXPECT().Latest(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	guard, _ := newTestGuard(t, newMemorySessions(), nil)
	ctx := login(t, guard)

	dashboard, err := NewDashboardService(guard, nil, activityRepo).Dashboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, dashboard.Activity)
}

func TestDashboardService_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	activityRepo := mock.NewMockActivityRepository(ctrl)

	guard, _ := newTestGuard(t, newMemorySessions(), nil)

	_, err := NewDashboardService(guard, nil, activityRepo).Dashboard(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
