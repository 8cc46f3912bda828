// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/models"
)

// collectionRepository is the SQL implementation of [CollectionRepository]
// over the "collections" table.
type collectionRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

func NewCollectionRepository(db *DB, logger *logger.Logger) CollectionRepository {
	logger.Debug().Msg("creating collection repository")
	return &collectionRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *collectionRepository) Get(ctx context.Context, key string) (models.CachedDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCollectionQuery(r.db.builder(), key)
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.Get").Msg("error building query")
		return models.CachedDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		doc     models.CachedDocument
		payload string
	)
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&doc.Key, &payload, &doc.Revision, &doc.UpdatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.CachedDocument{}, ErrCollectionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.Get").Str("key", key).Msg("error reading cached collection")
		return models.CachedDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	doc.Payload = []byte(payload)
	return doc, nil
}

func (r *collectionRepository) Put(ctx context.Context, key string, payload []byte, expectedRevision int64) (int64, error) {
	if expectedRevision == 0 {
		return r.insert(ctx, key, payload)
	}
	return r.update(ctx, key, payload, expectedRevision)
}

func (r *collectionRepository) insert(ctx context.Context, key string, payload []byte) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertCollectionQuery(r.db.builder(), key, payload, r.now().UnixMilli())
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.insert").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		if r.db.isUniqueViolation(err) {
			log.Warn().Str("func", "*collectionRepository.insert").Str("key", key).Msg("collection was created concurrently")
			return 0, ErrRevisionConflict
		}
		log.Err(err).Str("func", "*collectionRepository.insert").Str("key", key).Msg("error inserting collection")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return 1, nil
}

func (r *collectionRepository) update(ctx context.Context, key string, payload []byte, expectedRevision int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCollectionQuery(r.db.builder(), key, payload, expectedRevision, r.now().UnixMilli())
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.update").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func() error {
		res, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.update").Str("key", key).Msg("error updating collection")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		log.Warn().Str("func", "*collectionRepository.update").
			Str("key", key).
			Int64("expected_revision", expectedRevision).
			Msg("stale collection write rejected")
		return 0, ErrRevisionConflict
	}

	return expectedRevision + 1, nil
}
