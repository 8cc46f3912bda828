// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		AdminUsername     string   `json:"admin_username"`
		AdminPassword     string   `json:"admin_password"`
		AdminPasswordHash string   `json:"admin_password_hash"`
		SessionTimeout    Duration `json:"session_timeout"`
		TokenSignKey      string   `json:"token_sign_key"`
		TokenIssuer       string   `json:"token_issuer"`
		LogLevel          string   `json:"log_level"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
		Seed struct {
			Dir string `json:"dir"`
		} `json:"seed"`
		SessionFile string `json:"session_file"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		LoginRate      float64  `json:"login_rate"`
		LoginBurst     int      `json:"login_burst"`
		CORSOrigins    []string `json:"cors_origins"`
		TrustedProxies []string `json:"trusted_proxies"`
	} `json:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		BootstrapURL   string   `json:"bootstrap_url"`
		RequestTimeout Duration `json:"request_timeout"`
		FetchTimeout   Duration `json:"fetch_timeout"`
	} `json:"adapter"`

	Workers struct {
		SessionSweepInterval Duration `json:"session_sweep_interval"`
	} `json:"workers"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AdminUsername:     j.App.AdminUsername,
			AdminPassword:     j.App.AdminPassword,
			AdminPasswordHash: j.App.AdminPasswordHash,
			SessionTimeout:    time.Duration(j.App.SessionTimeout),
			TokenSignKey:      j.App.TokenSignKey,
			TokenIssuer:       j.App.TokenIssuer,
			LogLevel:          j.App.LogLevel,
		},
		Storage: Storage{
			DB:          DB{DSN: j.Storage.DB.DSN},
			Seed:        Seed{Dir: j.Storage.Seed.Dir},
			SessionFile: j.Storage.SessionFile,
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			LoginRate:      j.Server.LoginRate,
			LoginBurst:     j.Server.LoginBurst,
			CORSOrigins:    j.Server.CORSOrigins,
			TrustedProxies: j.Server.TrustedProxies,
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			BootstrapURL:   j.Adapter.BootstrapURL,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
			FetchTimeout:   time.Duration(j.Adapter.FetchTimeout),
		},
		Workers: Workers{
			SessionSweepInterval: time.Duration(j.Workers.SessionSweepInterval),
		},
	}, nil
}

// Duration accepts both "1h30m" strings and integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
