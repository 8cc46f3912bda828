// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared across layers: typed context
// keys, session token signing, id generation, JSON responses and the HTTP
// client wrapper.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so that they cannot collide
// with string keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// SessionTokenCtxKey holds the bearer token of the current request.
	SessionTokenCtxKey = contextKey("sessionToken")

	// UsernameCtxKey holds the username of the authenticated session.
	UsernameCtxKey = contextKey("username")
)

// WithSessionToken returns a copy of ctx carrying token.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, SessionTokenCtxKey, token)
}

// GetSessionTokenFromContext returns the session token stored in ctx.
// ok is false when it is missing, empty or of an unexpected type.
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenCtxKey).(string)
	return token, ok && token != ""
}

// WithUsername returns a copy of ctx carrying username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameCtxKey, username)
}

// GetUsernameFromContext returns the username stored in ctx.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok && username != ""
}
