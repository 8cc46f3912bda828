// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/mock"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

func newTestStorages(t *testing.T) *store.Storages {
	t.Helper()

	ctrl := gomock.NewController(t)
	activity := mock.NewMockActivityRepository(ctrl)
	activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return &store.Storages{
		Collections: newMemoryCollections(),
		Sessions:    newMemorySessions(),
		Activity:    activity,
	}
}

func TestNewServices(t *testing.T) {
	cfg := testAppConfig()
	cfg.AdminPassword = testPassword

	services, err := NewServices(context.Background(), newTestStorages(t), adapter.NewEmbeddedBootstrapSource(), cfg,
		models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.Len(t, services.Records, len(models.ResourceTypes))
	assert.NotEmpty(t, services.Theme.CSS())

	_, err = services.Records[models.ResourceServices].LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated, "stores are guarded")

	session, err := services.Guard.Authenticate(context.Background(), testAdmin, testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestServices_RecordStore(t *testing.T) {
	cfg := testAppConfig()
	cfg.AdminPassword = testPassword

	services, err := NewServices(context.Background(), newTestStorages(t), adapter.NewEmbeddedBootstrapSource(), cfg,
		models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	s, err := services.RecordStore("testimonials")
	require.NoError(t, err)
	assert.Equal(t, models.ResourceTestimonials, s.ResourceType())

	_, err = services.RecordStore("users")
	assert.ErrorIs(t, err, ErrUnknownResourceType)
}

func TestNewServices_InvalidCredentials(t *testing.T) {
	_, err := NewServices(context.Background(), newTestStorages(t), adapter.NewEmbeddedBootstrapSource(),
		config.App{AdminUsername: "admin"}, models.NewAppBuildInfo("", "", ""), logger.Nop())
	assert.Error(t, err)
}
