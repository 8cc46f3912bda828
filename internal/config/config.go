// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// StructuredConfig is the top-level configuration of the interia server and
// admin console. It is merged from environment variables, command-line
// flags, an optional JSON file and finally the built-in defaults.
type StructuredConfig struct {
	// App holds the admin credential and session token settings.
	App App `envPrefix:"APP_"`

	// Storage holds the cache database and seed data locations.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the inbound HTTP settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds outbound HTTP settings: the remote seed source used by
	// the server and the server address used by the admin console.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the single admin credential and the session parameters.
type App struct {
	// AdminUsername is compared exactly and case-sensitively on login.
	// Env: APP_ADMIN_USERNAME
	AdminUsername string `env:"ADMIN_USERNAME"`

	// AdminPassword is a plain password hashed with bcrypt at startup.
	// Ignored when AdminPasswordHash is set.
	// Env: APP_ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// AdminPasswordHash is a bcrypt hash of the admin password.
	// Env: APP_ADMIN_PASSWORD_HASH
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// SessionTimeout is the inactivity window after which a session expires.
	// Env: APP_SESSION_TIMEOUT
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT"`

	// TokenSignKey signs the session JWT.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every session token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// LogLevel is a zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB holds the cache database connection settings.
	DB DB `envPrefix:"DB_"`

	// Seed holds the bootstrap data location.
	Seed Seed `envPrefix:"SEED_"`

	// SessionFile is where the admin console keeps its session between runs.
	// Env: STORAGE_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// DB holds the cache database connection settings.
type DB struct {
	// DSN selects the backend: "postgres://…" opens PostgreSQL, anything
	// else is treated as a SQLite file name or URI.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Seed holds the bootstrap data location.
type Seed struct {
	// Dir is a directory of <resource>.json files. When empty the seed data
	// compiled into the binary is used.
	// Env: STORAGE_SEED_DIR
	Dir string `env:"DIR"`
}

// Server holds the inbound HTTP settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LoginRate is the number of login attempts per second allowed for one
	// client IP.
	// Env: SERVER_LOGIN_RATE
	LoginRate float64 `env:"LOGIN_RATE"`

	// LoginBurst is the login attempt burst allowed for one client IP.
	// Env: SERVER_LOGIN_BURST
	LoginBurst int `env:"LOGIN_BURST"`

	// CORSOrigins lists the origins allowed to call the API from a browser.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// TrustedProxies lists the proxy addresses or CIDR ranges whose
	// X-Forwarded-For header is believed when identifying a client. Empty
	// means the socket peer address is always used.
	// Env: SERVER_TRUSTED_PROXIES (comma separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Adapter holds outbound HTTP settings.
type Adapter struct {
	// HTTPAddress is the base URL of the interia server used by the admin
	// console (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// BootstrapURL is the base URL of a remote seed source. When set, the
	// server fetches <BootstrapURL>/<resource>.json instead of local seeds.
	// Env: ADAPTER_BOOTSTRAP_URL
	BootstrapURL string `env:"BOOTSTRAP_URL"`

	// RequestTimeout bounds every outbound request of the admin console.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// FetchTimeout bounds a single bootstrap fetch.
	// Env: ADAPTER_FETCH_TIMEOUT
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// SessionSweepInterval is how often expired sessions are deleted.
	// Env: WORKERS_SESSION_SWEEP_INTERVAL
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads the server configuration. Sources are merged in
// the order env, flags, JSON file, defaults: the first non-zero value wins.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	return cfg, nil
}
