// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken signs an HS256 JWT that names the session by its
// random tokenID (the "jti" claim). Expiry is not encoded in the token: the
// sliding window lives server-side with the session record.
//
//	token, err := utils.GenerateSessionToken("interia", "admin", uuid.NewString(), "secret", time.Now())
func GenerateSessionToken(issuer, username, tokenID, signKey string, issuedAt time.Time) (string, error) {
	if issuer == "" || username == "" || tokenID == "" || signKey == "" {
		return "", errors.New("invalid params for generating session token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  username,
		ID:       tokenID,
		IssuedAt: jwt.NewNumericDate(issuedAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return signed, nil
}

// ValidateSessionToken verifies the signature and issuer of tokenString and
// returns its claims. Tokens without a subject or id are rejected.
func ValidateSessionToken(tokenString, signKey, issuer string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("error occurred validating session token: %w", err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("session token lacks subject or id")
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
