// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrInvalidCredentials is returned by Authenticate on a username or
	// password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned by every guarded operation attempted
	// without a valid session.
	ErrUnauthenticated = errors.New("not authenticated")

	ErrUnknownResourceType   = errors.New("unknown resource type")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
