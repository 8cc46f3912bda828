// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/aplu147/interia/internal/logger"
)

// SessionSweeper periodically deletes expired sessions so that abandoned
// logins do not accumulate in the sessions table.
type SessionSweeper struct {
	sweeper  ExpiredSessionSweeper
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionSweeper(sweeper ExpiredSessionSweeper, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
// Sweep failures are logged and retried on the next tick.
func (s *SessionSweeper) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Warn().Str("func", "*SessionSweeper.Run").Msg("session sweeper disabled: no interval")
		return nil
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Str("func", "*SessionSweeper.Run").Msg("session sweeper stopped")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	removed, err := s.sweeper.SweepExpired(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "*SessionSweeper.sweep").Msg("error deleting expired sessions")
		return
	}
	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("expired sessions deleted")
	}
}
