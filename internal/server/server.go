// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/handler"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer wires the HTTP server and the background workers. bg may be nil.
func NewServer(handlers *handler.Handlers, bg *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoHTTPHandler
	}
	if cfg.HTTPAddress == "" {
		return nil, errNoListenAddress
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    bg,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx, s.httpServer.RunServer)
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

// run starts serve and the workers and blocks until ctx is done or serve
// returns on its own, then shuts the HTTP server down and waits for the
// workers to return.
func (s *server) run(ctx context.Context, serve func()) {
	workersCtx, cancelWorkers := context.WithCancel(ctx)
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		if s.workers == nil {
			return
		}
		if err := s.workers.Run(workersCtx); err != nil {
			s.logger.Err(err).Str("func", "*server.run").Msg("background worker failed")
		}
	}()

	serveDone := make(chan struct{})
	go func() {
		defer close(serveDone)
		s.logger.Info().Msg("Launching HTTP server")
		serve()
	}()

	select {
	case <-ctx.Done():
	case <-serveDone:
		s.logger.Warn().Str("func", "*server.run").Msg("HTTP server stopped unexpectedly")
	}

	s.Shutdown()
	<-serveDone

	cancelWorkers()
	<-workersDone

	s.logger.Info().Msg("server Shutdown gracefully")
}
