// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is a time-bounded proof of a prior successful login. It expires
// after a period of inactivity measured from LastActivity.
type Session struct {
	Token        string `json:"token"`
	Username     string `json:"username"`
	LastActivity int64  `json:"last_activity"` // epoch millis
	CreatedAt    int64  `json:"created_at"`    // epoch millis
}

// IsValid reports whether the session is present and its sliding window of
// length timeout has not elapsed at now.
func (s Session) IsValid(now time.Time, timeout time.Duration) bool {
	if s.Token == "" || s.LastActivity == 0 {
		return false
	}
	return now.UnixMilli()-s.LastActivity < timeout.Milliseconds()
}

// ExpiresAt returns the instant the session expires unless refreshed.
func (s Session) ExpiresAt(timeout time.Duration) time.Time {
	return time.UnixMilli(s.LastActivity).Add(timeout)
}

// Credentials is a single username and password pair submitted for login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse is returned by the login and session endpoints.
type SessionResponse struct {
	Token     string    `json:"token,omitempty"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
