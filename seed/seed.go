// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package seed embeds the bootstrap content shipped with the server: one
// <resource>.json document per resource type plus settings.json.
package seed

import "embed"

//go:embed *.json
var FS embed.FS
