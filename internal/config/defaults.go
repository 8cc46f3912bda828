// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DefaultSessionTimeout = 30 * time.Minute
	DefaultAdminUsername  = "admin"
	DefaultTokenIssuer    = "interia"
)

// Defaults returns the values used for every field no source has set.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AdminUsername:  DefaultAdminUsername,
			SessionTimeout: DefaultSessionTimeout,
			TokenIssuer:    DefaultTokenIssuer,
			LogLevel:       "info",
		},
		Storage: Storage{
			DB:          DB{DSN: "file:interia.db?_foreign_keys=on"},
			SessionFile: ".interia-session.json",
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			LoginRate:      0.2,
			LoginBurst:     5,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
			FetchTimeout:   10 * time.Second,
		},
		Workers: Workers{
			SessionSweepInterval: time.Minute,
		},
	}
}
