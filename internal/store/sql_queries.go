// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/aplu147/interia/models"
)

const (
	collectionsTable = "collections"
	sessionsTable    = "sessions"
	activityTable    = "activity_log"
)

var (
	collectionColumns = []string{"cache_key", "payload", "revision", "updated_at"}
	sessionColumns    = []string{"token", "username", "last_activity", "created_at"}
	activityColumns   = []string{"id", "action", "resource_type", "record_id", "username", "created_at"}
)

func buildSelectCollectionQuery(b sq.StatementBuilderType, key string) (string, []any, error) {
	return b.Select(collectionColumns...).
		From(collectionsTable).
		Where(sq.Eq{"cache_key": key}).
		ToSql()
}

func buildInsertCollectionQuery(b sq.StatementBuilderType, key string, payload []byte, updatedAt int64) (string, []any, error) {
	return b.Insert(collectionsTable).
		Columns(collectionColumns...).
		Values(key, string(payload), 1, updatedAt).
		ToSql()
}

// buildUpdateCollectionQuery bumps the revision only when the stored one
// still equals expectedRevision.
func buildUpdateCollectionQuery(b sq.StatementBuilderType, key string, payload []byte, expectedRevision, updatedAt int64) (string, []any, error) {
	return b.Update(collectionsTable).
		Set("payload", string(payload)).
		Set("revision", sq.Expr("revision + 1")).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"cache_key": key}).
		Where(sq.Eq{"revision": expectedRevision}).
		ToSql()
}

func buildUpsertSessionQuery(b sq.StatementBuilderType, s models.Session) (string, []any, error) {
	return b.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(s.Token, s.Username, s.LastActivity, s.CreatedAt).
		Suffix("ON CONFLICT (token) DO UPDATE SET last_activity = excluded.last_activity").
		ToSql()
}

func buildSelectSessionQuery(b sq.StatementBuilderType, token string) (string, []any, error) {
	return b.Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildTouchSessionQuery(b sq.StatementBuilderType, token string, lastActivity int64) (string, []any, error) {
	return b.Update(sessionsTable).
		Set("last_activity", lastActivity).
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildDeleteSessionQuery(b sq.StatementBuilderType, token string) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, cutoff int64) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.Lt{"last_activity": cutoff}).
		ToSql()
}

func buildInsertActivityQuery(b sq.StatementBuilderType, e models.ActivityEntry) (string, []any, error) {
	return b.Insert(activityTable).
		Columns(activityColumns...).
		Values(e.ID, string(e.Action), string(e.ResourceType), e.RecordID, e.Username, e.CreatedAt).
		ToSql()
}

func buildSelectLatestActivityQuery(b sq.StatementBuilderType, limit int) (string, []any, error) {
	return b.Select(activityColumns...).
		From(activityTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
}
