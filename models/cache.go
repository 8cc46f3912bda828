// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CachedDocument is one entry of the persistent cache.
type CachedDocument struct {
	Key       string
	Payload   []byte
	Revision  int64
	UpdatedAt int64 // epoch millis
}
