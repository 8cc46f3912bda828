// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E77624"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#529A44"))
	selectedStyle   = lipgloss.NewStyle().Bold(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// swatch renders a small block filled with the given CSS hex color.
func swatch(color string) string {
	if !isHexColor(color) {
		return "    "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("    ")
}
