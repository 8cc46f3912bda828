// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port parsed from "host:port".
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses args (without the program name).
//
// Flags:
//
//	-a              server listen address in format [host]:[port]
//	-d              cache database DSN
//	-seed-dir       directory with <resource>.json seed files
//	-c / -config    JSON config file path
//	-admin-user     admin username
//	-admin-password admin password (hashed at startup)
//	-token-sign-key session token signing key
//	-session-timeout inactivity window (e.g. "30m")
//	-server         server base URL used by the admin console
//	-bootstrap-url  remote seed source base URL
//	-log-level      zerolog level name
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("interia", flag.ContinueOnError)

	var serverAddress NetAddress
	var (
		databaseDSN    string
		seedDir        string
		jsonConfigPath string
		adminUsername  string
		adminPassword  string
		tokenSignKey   string
		sessionTimeout time.Duration
		serverURL      string
		bootstrapURL   string
		logLevel       string
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Cache database DSN")
	fs.StringVar(&seedDir, "seed-dir", "", "Seed data directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&adminUsername, "admin-user", "", "Admin username")
	fs.StringVar(&adminPassword, "admin-password", "", "Admin password")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.DurationVar(&sessionTimeout, "session-timeout", 0, "Session inactivity timeout (e.g., 30m)")
	fs.StringVar(&serverURL, "server", "", "Server base URL for the admin console")
	fs.StringVar(&bootstrapURL, "bootstrap-url", "", "Remote seed source base URL")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AdminUsername:  adminUsername,
			AdminPassword:  adminPassword,
			SessionTimeout: sessionTimeout,
			TokenSignKey:   tokenSignKey,
			LogLevel:       logLevel,
		},
		Storage: Storage{
			DB:   DB{DSN: databaseDSN},
			Seed: Seed{Dir: seedDir},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:  serverURL,
			BootstrapURL: bootstrapURL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns host:port, or an empty string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost", empty or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(strings.Trim(host, "[]")) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
