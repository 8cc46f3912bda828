// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/aplu147/interia/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, server *models.BuildInfoResponse, serverErr error) string {
	var b strings.Builder

	b.WriteString("Application: interia admin\n")
	b.WriteString("Version: ")
	b.WriteString(valueOrNA(info.BuildVersion()))
	b.WriteString("\n")
	b.WriteString("Date: ")
	b.WriteString(valueOrNA(info.BuildDate()))
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(valueOrNA(info.BuildCommit()))
	b.WriteString("\n\n")

	switch {
	case serverErr != nil:
		b.WriteString("Server: ")
		b.WriteString(humanizeError(serverErr))
	case server == nil:
		b.WriteString("Server: loading...")
	default:
		b.WriteString("Server version: ")
		b.WriteString(valueOrNA(server.Version))
		b.WriteString("\n")
		b.WriteString("Server date: ")
		b.WriteString(valueOrNA(server.Date))
		b.WriteString("\n")
		b.WriteString("Server commit: ")
		b.WriteString(valueOrNA(server.Commit))
	}

	return renderPage("ABOUT", b.String(), "esc: back")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
