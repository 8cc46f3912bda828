// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/aplu147/interia/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

// labelFields are tried in order to find a human readable record title.
var labelFields = []string{"title", "name", "author", "heading", "slug"}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: quit"))

	return appStyle.Render(b.String())
}

// renderFooter appends the status and error lines shared by every page.
func renderFooter(b *strings.Builder, status, errMsg string) {
	if status != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render("OK: " + status))
	}
	if errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + errMsg))
	}
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// recordLabel returns the first well-known text field of the record, or the
// first non-empty string field in key order.
func recordLabel(r models.Record) string {
	for _, f := range labelFields {
		if v := r.Text(f); v != "" {
			return v
		}
	}
	for _, k := range sortedKeys(r.Fields) {
		if s, ok := r.Fields[k].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("#%d", r.ID)
}

// stringFieldKeys lists the keys whose values the console can edit as text.
func stringFieldKeys(fields map[string]any) []string {
	out := make([]string, 0, len(fields))
	for _, k := range sortedKeys(fields) {
		switch fields[k].(type) {
		case string, nil:
			out = append(out, k)
		}
	}
	return out
}

// fieldTemplate collects the text fields used by existing records so that a
// new record starts with the same shape.
func fieldTemplate(records []models.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, k := range stringFieldKeys(r.Fields) {
			seen[k] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return []string{"title"}
	}
	return slices.Sorted(maps.Keys(seen))
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func isHexColor(v string) bool {
	return hexColorRe.MatchString(strings.TrimSpace(v))
}
