// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a config of type T from the environment. Variable names
// come from the env and envPrefix tags, so the server config reads APP_*,
// STORAGE_*, SERVER_*, ADAPTER_* and WORKERS_*. Unset values stay zero and
// are filled by the other sources during the merge.
func parseEnv[T any]() (*T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	return &cfg, nil
}
