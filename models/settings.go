// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SettingsCacheKey is the cache key of the singleton settings document.
const SettingsCacheKey = "settings"

// ColorSettings is the site color scheme. Each value is a CSS color string.
type ColorSettings struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

// DefaultColorSettings returns the color scheme used when none has been saved.
func DefaultColorSettings() ColorSettings {
	return ColorSettings{
		Primary:    "#0C4B62",
		Secondary:  "#529A44",
		Accent:     "#E77624",
		Background: "#D5EEEF",
		Text:       "#333333",
	}
}

// ColorVar is one named color of the scheme.
type ColorVar struct {
	Name  string
	Value string
}

// Vars returns the non-empty colors in a fixed order.
func (c ColorSettings) Vars() []ColorVar {
	all := []ColorVar{
		{Name: "primary", Value: c.Primary},
		{Name: "secondary", Value: c.Secondary},
		{Name: "accent", Value: c.Accent},
		{Name: "background", Value: c.Background},
		{Name: "text", Value: c.Text},
	}

	out := all[:0]
	for _, v := range all {
		if v.Value != "" {
			out = append(out, v)
		}
	}
	return out
}

// SettingsDocument is the singleton site settings record: free-form settings
// and the color scheme.
type SettingsDocument struct {
	Settings map[string]any `json:"settings"`
	Colors   ColorSettings  `json:"colors"`
}

// DefaultSettingsDocument returns an empty settings map with the default colors.
func DefaultSettingsDocument() SettingsDocument {
	return SettingsDocument{
		Settings: map[string]any{},
		Colors:   DefaultColorSettings(),
	}
}
