// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"sync"

	"github.com/aplu147/interia/internal/events"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/models"
)

// themeService keeps the rendered stylesheet of the current color scheme and
// re-renders it on every events.ColorsChanged.
type themeService struct {
	mu  sync.RWMutex
	css string
}

// NewThemeService renders the scheme found in the persistent cache, or the
// default one, and subscribes to color changes. The seed is never read here:
// the stylesheet is public and bootstrap reads require a session.
func NewThemeService(ctx context.Context, collections store.CollectionRepository, colors *events.Broadcaster[events.ColorsChanged]) ThemeService {
	t := &themeService{}

	scheme := models.DefaultColorSettings()
	doc, err := collections.Get(ctx, models.SettingsCacheKey)
	switch {
	case err == nil:
		if parsed, decodeErr := decodeSettings(doc.Payload); decodeErr == nil {
			scheme = parsed.Colors
		} else {
			logger.FromContext(ctx).Warn().Err(decodeErr).Str("func", "NewThemeService").Msg("cached settings are not valid json")
		}
	default:
		logger.FromContext(ctx).Debug().Err(err).Str("func", "NewThemeService").Msg("no cached color scheme, using defaults")
	}
	t.apply(scheme)

	if colors != nil {
		colors.Subscribe(func(ev events.ColorsChanged) {
			t.apply(ev.Colors)
		})
	}
	return t
}

func (t *themeService) CSS() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.css
}

func (t *themeService) apply(colors models.ColorSettings) {
	css := RenderThemeCSS(colors)

	t.mu.Lock()
	t.css = css
	t.mu.Unlock()
}

// RenderThemeCSS renders colors as CSS custom properties on :root, one
// "--<name>-color" per non-empty color. Values that could escape the
// declaration are skipped.
func RenderThemeCSS(colors models.ColorSettings) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range colors.Vars() {
		if strings.ContainsAny(v.Value, ";{}<>\\\"'\n\r") {
			continue
		}
		b.WriteString("  --")
		b.WriteString(v.Name)
		b.WriteString("-color: ")
		b.WriteString(strings.TrimSpace(v.Value))
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
