// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/aplu147/interia/internal/logger"

// Storages bundles the repositories built on one database handle.
type Storages struct {
	Collections CollectionRepository
	Sessions    SessionRepository
	Activity    ActivityRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Collections: NewCollectionRepository(db, log),
		Sessions:    NewSessionRepository(db, log),
		Activity:    NewActivityRepository(db, log),
	}
}
