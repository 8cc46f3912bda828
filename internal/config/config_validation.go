// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// validate checks the merged server configuration before startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AdminUsername == "" {
		return fmt.Errorf("%w: admin username is empty", ErrInvalidAppConfigs)
	}
	if cfg.App.AdminPassword == "" && cfg.App.AdminPasswordHash == "" {
		return fmt.Errorf("%w: admin password or password hash is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.SessionTimeout <= 0 {
		return fmt.Errorf("%w: session timeout must be positive", ErrInvalidAppConfigs)
	}

	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.LoginRate <= 0 || cfg.Server.LoginBurst <= 0 {
		return ErrInvalidServerConfigs
	}

	for _, proxy := range cfg.Server.TrustedProxies {
		if _, err := ParseTrustedProxy(proxy); err != nil {
			return fmt.Errorf("%w: trusted proxy %q: %w", ErrInvalidServerConfigs, proxy, err)
		}
	}

	if cfg.Adapter.FetchTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SessionSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.SessionFile == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}

// ParseTrustedProxy accepts a single address ("10.0.0.1") or a CIDR range
// ("10.0.0.0/8") and returns it as a prefix.
func ParseTrustedProxy(value string) (netip.Prefix, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "/") {
		prefix, err := netip.ParsePrefix(value)
		if err != nil {
			return netip.Prefix{}, err
		}
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(value)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
