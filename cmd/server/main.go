// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aplu147/interia/internal/adapter"
	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/handler"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/server"
	"github.com/aplu147/interia/internal/service"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/internal/workers"
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

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("interia-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("interia-server", cfg.App.LogLevel)
	ctx := log.WithContext(context.Background())

	db, err := store.NewConnectDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to the cache database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	bootstrap, err := newBootstrapSource(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating bootstrap source")
	}

	services, err := service.NewServices(ctx, store.NewStorages(db, log), bootstrap, cfg.App, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewWorkers(
		workers.NewSessionSweeper(services.Guard, cfg.Workers.SessionSweepInterval, log),
	)

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newBootstrapSource picks the seed source: a remote host when a bootstrap
// URL is configured, a directory of JSON files when a seed dir is, and the
// compiled-in seed otherwise.
func newBootstrapSource(cfg *config.StructuredConfig, log *logger.Logger) (adapter.BootstrapSource, error) {
	var source adapter.BootstrapSource

	switch {
	case cfg.Adapter.BootstrapURL != "":
		remote, err := adapter.NewHTTPBootstrapSource(cfg.Adapter.BootstrapURL, cfg.Adapter.FetchTimeout)
		if err != nil {
			return nil, err
		}
		log.Info().Str("url", cfg.Adapter.BootstrapURL).Msg("using remote seed source")
		source = remote
	case cfg.Storage.Seed.Dir != "":
		log.Info().Str("dir", cfg.Storage.Seed.Dir).Msg("using seed directory")
		source = adapter.NewDirBootstrapSource(cfg.Storage.Seed.Dir)
	default:
		log.Info().Msg("using embedded seed")
		source = adapter.NewEmbeddedBootstrapSource()
	}

	return adapter.WithFetchTimeout(source, cfg.Adapter.FetchTimeout), nil
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
