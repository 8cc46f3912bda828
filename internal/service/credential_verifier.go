// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/aplu147/interia/internal/logger"
)

// bcryptVerifier checks credentials against a single configured admin
// account whose password is kept as a bcrypt hash.
type bcryptVerifier struct {
	username     string
	passwordHash []byte
}

// NewBcryptVerifier builds a verifier for the admin account. When
// passwordHash is empty the plain password is hashed once here.
func NewBcryptVerifier(username, password, passwordHash string) (CredentialVerifier, error) {
	if username == "" {
		return nil, errors.New("admin username is empty")
	}

	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, errors.New("admin password is empty")
		}
		generated, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing admin password: %w", err)
		}
		hash = generated
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}

	return &bcryptVerifier{username: username, passwordHash: hash}, nil
}

func (v *bcryptVerifier) Verify(ctx context.Context, username, password string) error {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password))

	if !userMatch || passErr != nil {
		logger.FromContext(ctx).Info().
			Str("func", "*bcryptVerifier.Verify").
			Str("username", username).
			Msg("credential mismatch")
		return ErrInvalidCredentials
	}
	return nil
}
