// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aplu147/interia/internal/service"
	"github.com/aplu147/interia/models"
)

func TestGetSettings(t *testing.T) {
	services := newTestServices()
	services.Settings = &fakeSettings{
		LoadFunc: func(context.Context) (models.SettingsDocument, error) {
			return models.DefaultSettingsDocument(), nil
		},
	}

	rec := serve(newTestHandler(services), http.MethodGet, "/api/settings", "", bearer("t"))

	require.Equal(t, http.StatusOK, rec.Code)

	var doc models.SettingsDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, models.DefaultColorSettings(), doc.Colors)
}

func TestGetSettings_Unauthenticated(t *testing.T) {
	services := newTestServices()
	services.Settings = &fakeSettings{
		LoadFunc: func(context.Context) (models.SettingsDocument, error) {
			return models.SettingsDocument{}, service.ErrUnauthenticated
		},
	}

	rec := serve(newTestHandler(services), http.MethodGet, "/api/settings", "", bearer("t"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaveSettings(t *testing.T) {
	services := newTestServices()
	services.Settings = &fakeSettings{
		SaveSettingsFunc: func(_ context.Context, patch map[string]any) (models.SettingsDocument, error) {
			assert.Equal(t, map[string]any{"siteName": "Interia"}, patch)
			return models.SettingsDocument{Settings: patch, Colors: models.DefaultColorSettings()}, nil
		},
	}

	rec := serve(newTestHandler(services), http.MethodPatch, "/api/settings", `{"siteName":"Interia"}`, bearer("t"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"siteName":"Interia"`)
}

func TestSaveColors(t *testing.T) {
	services := newTestServices()
	services.Settings = &fakeSettings{
		SaveColorsFunc: func(_ context.Context, colors models.ColorSettings) (models.SettingsDocument, error) {
			assert.Equal(t, models.ColorSettings{Primary: "#000000"}, colors)
			doc := models.DefaultSettingsDocument()
			doc.Colors.Primary = colors.Primary
			return doc, nil
		},
	}

	rec := serve(newTestHandler(services), http.MethodPut, "/api/settings/colors", `{"primary":"#000000"}`, bearer("t"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"primary":"#000000"`)
}

func TestSaveColors_InvalidJSON(t *testing.T) {
	rec := serve(newTestHandler(newTestServices()), http.MethodPut, "/api/settings/colors", `{"primary":1}`, bearer("t"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	services := newTestServices()
	services.Dashboard = &fakeDashboard{
		DashboardFunc: func(context.Context) (models.Dashboard, error) {
			return models.Dashboard{
				Counts:   map[models.ResourceType]int{models.ResourceProjects: 2},
				Activity: []models.ActivityView{},
			}, nil
		},
	}

	rec := serve(newTestHandler(services), http.MethodGet, "/api/dashboard", "", bearer("t"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"counts":{"projects":2},"activity":[]}`, rec.Body.String())
}
