// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/models"
)

type activityRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	logger.Debug().Msg("creating activity repository")
	return &activityRepository{
		db:     db,
		logger: logger,
	}
}

func (r *activityRepository) Append(ctx context.Context, entry models.ActivityEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertActivityQuery(r.db.builder(), entry)
	if err != nil {
		log.Err(err).Str("func", "*activityRepository.Append").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*activityRepository.Append").Msg("error appending activity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Latest returns up to limit entries, newest first.
func (r *activityRepository) Latest(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLatestActivityQuery(r.db.builder(), limit)
	if err != nil {
		log.Err(err).Str("func", "*activityRepository.Latest").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*activityRepository.Latest").Msg("error querying activity")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ActivityEntry, 0, limit)
	for rows.Next() {
		var (
			e            models.ActivityEntry
			action       string
			resourceType string
		)
		if err = rows.Scan(&e.ID, &action, &resourceType, &e.RecordID, &e.Username, &e.CreatedAt); err != nil {
			log.Err(err).Str("func", "*activityRepository.Latest").Msg("error scanning activity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		e.Action = models.ActivityAction(action)
		e.ResourceType = models.ResourceType(resourceType)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*activityRepository.Latest").Msg("error iterating activity rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
