// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/events"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

// Services is the set of services the HTTP layer works with. Every record
// store and the settings store are wrapped with the session guard.
type Services struct {
	Guard     SessionGuard
	Records   map[models.ResourceType]RecordStore
	Settings  SettingsStore
	Dashboard DashboardService
	Theme     ThemeService
	AppInfo   AppInfoService
}

func NewServices(
	ctx context.Context,
	storages *store.Storages,
	bootstrap adapter.BootstrapSource,
	cfg config.App,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	verifier, err := NewBcryptVerifier(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("credential verifier: %w", err)
	}

	appInfo, err := NewAppInfoService(buildInfo)
	if err != nil {
		return nil, err
	}

	activity := NewActivityRecorder(storages.Activity)
	guard := NewSessionGuard(storages.Sessions, verifier, activity, cfg, logger)
	colors := events.NewBroadcaster[events.ColorsChanged]()

	guardWrapper := NewGuardedRecordStore(guard)
	records := make(map[models.ResourceType]RecordStore, len(models.ResourceTypes))
	ordered := make([]RecordStore, 0, len(models.ResourceTypes))
	for _, rt := range models.ResourceTypes {
		s := guardWrapper.Wrap(NewRecordStore(rt, storages.Collections, bootstrap, activity, logger))
		records[rt] = s
		ordered = append(ordered, s)
	}

	settings := NewGuardedSettingsStore(
		NewSettingsStore(storages.Collections, bootstrap, colors, activity, logger),
		guard,
	)

	return &Services{
		Guard:     guard,
		Records:   records,
		Settings:  settings,
		Dashboard: NewDashboardService(guard, ordered, storages.Activity),
		Theme:     NewThemeService(ctx, storages.Collections, colors),
		AppInfo:   appInfo,
	}, nil
}

// RecordStore returns the store of the named resource type.
func (s *Services) RecordStore(name string) (RecordStore, error) {
	rt, ok := models.ParseResourceType(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResourceType, name)
	}
	return s.Records[rt], nil
}
