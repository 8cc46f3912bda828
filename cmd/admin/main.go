// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/client"
	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/internal/tui"
	"github.com/aplu147/interia/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("interia-admin", cfg.LogFile)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	sessions := store.NewFileSessionStore(cfg.Storage.SessionFile)

	ui, err := tui.New(tui.Options{
		Server:        serverAdapter,
		Sessions:      sessions,
		BuildInfo:     buildInfo,
		TouchInterval: touchInterval(cfg.SessionTimeout),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	var app client.Client
	app, err = client.NewApp(serverAdapter, sessions, ui, cfg.SessionTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		log.Fatal().Err(err).Msg("client run error")
	}
}

// touchInterval keeps activity pings well inside the session window.
func touchInterval(sessionTimeout time.Duration) time.Duration {
	if sessionTimeout <= 0 {
		return tui.DefaultTouchInterval
	}
	return min(tui.DefaultTouchInterval, sessionTimeout/10)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
