// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds the admin console transport settings.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the interia server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientStorage holds the admin console local state.
type ClientStorage struct {
	// SessionFile keeps the token and last activity between runs.
	SessionFile string
}

// ClientConfig is the admin console view of [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	// SessionTimeout is used to decide locally whether a stored session
	// is still worth reinstating.
	SessionTimeout time.Duration
	// LogFile is where the console writes its logs. Empty means next to
	// the executable.
	LogFile string
}

// GetClientConfig builds the admin console configuration from the same
// sources as the server without requiring server-only settings.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			SessionFile: cfg.Storage.SessionFile,
		},
		SessionTimeout: cfg.App.SessionTimeout,
	}

	return clientCfg, clientCfg.validate()
}
