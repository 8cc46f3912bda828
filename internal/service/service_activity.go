// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

// DefaultActivityLimit is the number of activity entries the dashboard shows.
const DefaultActivityLimit = 10

type activityService struct {
	activity store.ActivityRepository
	ids      *utils.UUIDGenerator
	now      func() time.Time
}

// NewActivityRecorder returns the recorder that appends to the activity log.
// Failures are logged, never returned: the mutation being recorded has
// already been persisted.
func NewActivityRecorder(activity store.ActivityRepository) ActivityRecorder {
	return &activityService{
		activity: activity,
		ids:      utils.NewUUIDGenerator(),
		now:      time.Now,
	}
}

func (a *activityService) Record(ctx context.Context, entry models.ActivityEntry) {
	if entry.ID == "" {
		entry.ID = a.ids.Generate()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = a.now().UnixMilli()
	}
	if entry.Username == "" {
		entry.Username, _ = utils.GetUsernameFromContext(ctx)
	}

	if err := a.activity.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*activityService.Record").
			Str("action", string(entry.Action)).
			Msg("error appending activity entry")
	}
}

type dashboardService struct {
	guard    SessionGuard
	stores   []RecordStore
	activity store.ActivityRepository
	limit    int
	now      func() time.Time
}

// NewDashboardService builds the dashboard over the given stores, counted in
// the order passed.
func NewDashboardService(guard SessionGuard, stores []RecordStore, activity store.ActivityRepository) DashboardService {
	return &dashboardService{
		guard:    guard,
		stores:   stores,
		activity: activity,
		limit:    DefaultActivityLimit,
		now:      time.Now,
	}
}

func (d *dashboardService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	return guarded(ctx, d.guard, func(ctx context.Context) (models.Dashboard, error) {
		dashboard := models.Dashboard{
			Counts:   make(map[models.ResourceType]int, len(d.stores)),
			Activity: []models.ActivityView{},
		}

		for _, s := range d.stores {
			items, err := s.LoadAll(ctx)
			if err != nil {
				return models.Dashboard{}, err
			}
			dashboard.Counts[s.ResourceType()] = len(items)
		}

		entries, err := d.activity.Latest(ctx, d.limit)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "*dashboardService.Dashboard").Msg("activity log unavailable")
			return dashboard, nil
		}

		now := d.now()
		for _, e := range entries {
			dashboard.Activity = append(dashboard.Activity, models.ActivityView{
				ActivityEntry: e,
				Message:       e.Message(),
				Age:           models.HumanizeAge(time.UnixMilli(e.CreatedAt), now),
			})
		}
		return dashboard, nil
	})
}
