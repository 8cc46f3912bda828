// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

// sessionGuard is the concrete SessionGuard. Sessions live in the
// SessionRepository so a session that has not expired survives a restart.
// The token handed to the client is an HS256 JWT whose jti is a random UUID;
// the signature is checked before the repository is consulted.
type sessionGuard struct {
	sessions store.SessionRepository
	verifier CredentialVerifier
	activity ActivityRecorder

	timeout      time.Duration
	tokenSignKey string
	tokenIssuer  string

	now     func() time.Time
	tokenID func() string

	logger *logger.Logger
}

// NewSessionGuard builds the guard. activity may be nil.
func NewSessionGuard(
	sessions store.SessionRepository,
	verifier CredentialVerifier,
	activity ActivityRecorder,
	cfg config.App,
	logger *logger.Logger,
) SessionGuard {
	timeout := cfg.SessionTimeout
	if timeout <= 0 {
		timeout = config.DefaultSessionTimeout
	}

	return &sessionGuard{
		sessions:     sessions,
		verifier:     verifier,
		activity:     activity,
		timeout:      timeout,
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		now:          time.Now,
		tokenID:      utils.NewTokenID,
		logger:       logger,
	}
}

func (g *sessionGuard) Timeout() time.Duration {
	return g.timeout
}

func (g *sessionGuard) IsAuthenticated(ctx context.Context) bool {
	_, err := g.current(ctx)
	return err == nil
}

func (g *sessionGuard) Authenticate(ctx context.Context, username, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if err := g.verifier.Verify(ctx, username, password); err != nil {
		return models.Session{}, err
	}

	now := g.now()
	token, err := utils.GenerateSessionToken(g.tokenIssuer, username, g.tokenID(), g.tokenSignKey, now)
	if err != nil {
		log.Err(err).Str("func", "*sessionGuard.Authenticate").Msg("error signing session token")
		return models.Session{}, fmt.Errorf("signing session token: %w", err)
	}

	session := models.Session{
		Token:        token,
		Username:     username,
		LastActivity: now.UnixMilli(),
		CreatedAt:    now.UnixMilli(),
	}
	if err = g.sessions.Save(ctx, session); err != nil {
		log.Err(err).Str("func", "*sessionGuard.Authenticate").Msg("error saving session")
		return models.Session{}, fmt.Errorf("saving session: %w", err)
	}

	log.Info().Str("func", "*sessionGuard.Authenticate").Str("username", username).Msg("session started")
	g.record(ctx, models.ActivityEntry{Action: models.ActionLogin, Username: username})

	return session, nil
}

func (g *sessionGuard) TouchActivity(ctx context.Context) error {
	session, err := g.current(ctx)
	if err != nil {
		return err
	}

	if err = g.sessions.Touch(ctx, session.Token, g.now().UnixMilli()); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return ErrUnauthenticated
		}
		logger.FromContext(ctx).Err(err).Str("func", "*sessionGuard.TouchActivity").Msg("error refreshing session")
		return fmt.Errorf("refreshing session: %w", err)
	}
	return nil
}

func (g *sessionGuard) Logout(ctx context.Context) error {
	token, ok := utils.GetSessionTokenFromContext(ctx)
	if !ok {
		return nil
	}

	var username string
	if session, err := g.sessions.Get(ctx, token); err == nil {
		username = session.Username
	}

	err := g.sessions.Delete(ctx, token)
	if err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionGuard.Logout").Msg("error deleting session")
		return fmt.Errorf("deleting session: %w", err)
	}

	if username != "" {
		g.record(ctx, models.ActivityEntry{Action: models.ActionLogout, Username: username})
	}
	return nil
}

func (g *sessionGuard) Guard(ctx context.Context, action func(ctx context.Context) error) error {
	session, err := g.current(ctx)
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			return err
		}
		if logoutErr := g.Logout(ctx); logoutErr != nil {
			logger.FromContext(ctx).Warn().Err(logoutErr).Str("func", "*sessionGuard.Guard").Msg("error dropping expired session")
		}
		return ErrUnauthenticated
	}

	return action(utils.WithUsername(ctx, session.Username))
}

func (g *sessionGuard) Session(ctx context.Context) (models.Session, error) {
	return g.current(ctx)
}

func (g *sessionGuard) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := g.now().Add(-g.timeout).UnixMilli()
	return g.sessions.DeleteExpired(ctx, cutoff)
}

// current loads the context session. A missing, forged, unknown or expired
// session yields ErrUnauthenticated; repository failures are returned as is.
func (g *sessionGuard) current(ctx context.Context) (models.Session, error) {
	token, ok := utils.GetSessionTokenFromContext(ctx)
	if !ok {
		return models.Session{}, ErrUnauthenticated
	}

	if _, err := utils.ValidateSessionToken(token, g.tokenSignKey, g.tokenIssuer); err != nil {
		return models.Session{}, ErrUnauthenticated
	}

	session, err := g.sessions.Get(ctx, token)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, ErrUnauthenticated
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionGuard.current").Msg("error reading session")
		return models.Session{}, fmt.Errorf("reading session: %w", err)
	}

	if !session.IsValid(g.now(), g.timeout) {
		return models.Session{}, ErrUnauthenticated
	}
	return session, nil
}

func (g *sessionGuard) record(ctx context.Context, entry models.ActivityEntry) {
	if g.activity != nil {
		g.activity.Record(ctx, entry)
	}
}
