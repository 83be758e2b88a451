// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the duckdb driver
)

// DuckDBStore implements Store on an embedded DuckDB database. The schema
// mirrors the collaborator contract: an activity_log table plus a learners
// table carrying group membership.
type DuckDBStore struct {
	db *sql.DB
}

const duckdbSchema = `
CREATE TABLE IF NOT EXISTS learners (
	learner_id VARCHAR PRIMARY KEY,
	group_id   VARCHAR NOT NULL
);

CREATE TABLE IF NOT EXISTS activity_log (
	learner_id                VARCHAR NOT NULL,
	content_id                VARCHAR NOT NULL,
	kind                      VARCHAR NOT NULL,
	complete                  BOOLEAN NOT NULL DEFAULT FALSE,
	struggling                BOOLEAN NOT NULL DEFAULT FALSE,
	latest_activity_timestamp TIMESTAMP,
	completion_timestamp      TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_learner_kind
	ON activity_log (learner_id, kind);
`

// OpenDuckDB opens (creating if necessary) the activity database at path.
// Use ":memory:" for an ephemeral database.
func OpenDuckDB(ctx context.Context, path string) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, duckdbSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: init schema: %w", ErrUnavailable, err)
	}

	return &DuckDBStore{db: db}, nil
}

// Close releases the database handle.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}

// Ping reports store reachability.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// RecordsByLearner implements Store.
func (s *DuckDBStore) RecordsByLearner(ctx context.Context, learnerID string, kind ContentKind) ([]Record, error) {
	const query = `
		SELECT learner_id, content_id, kind, complete, struggling,
		       latest_activity_timestamp, completion_timestamp
		FROM activity_log
		WHERE learner_id = ? AND kind = ?
		ORDER BY latest_activity_timestamp DESC NULLS LAST`

	rows, err := s.db.QueryContext(ctx, query, learnerID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: records by learner: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// MostRecentIncomplete implements Store.
func (s *DuckDBStore) MostRecentIncomplete(ctx context.Context, learnerID string, kind ContentKind) (*Record, error) {
	const query = `
		SELECT learner_id, content_id, kind, complete, struggling,
		       latest_activity_timestamp, completion_timestamp
		FROM activity_log
		WHERE learner_id = ? AND kind = ? AND NOT complete
		ORDER BY latest_activity_timestamp DESC NULLS LAST
		LIMIT 1`

	rows, err := s.db.QueryContext(ctx, query, learnerID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: most recent incomplete: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// GroupMembers implements Store. A learner without a learners row is alone
// in an implicit group of one.
func (s *DuckDBStore) GroupMembers(ctx context.Context, learnerID string) ([]string, error) {
	const query = `
		SELECT m.learner_id
		FROM learners l
		JOIN learners m ON m.group_id = l.group_id
		WHERE l.learner_id = ?
		ORDER BY m.learner_id`

	rows, err := s.db.QueryContext(ctx, query, learnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: group members: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan member: %w", ErrUnavailable, err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: group members: %w", ErrUnavailable, err)
	}

	if len(members) == 0 {
		return []string{learnerID}, nil
	}
	return members, nil
}

// ExerciseCounts implements Store.
func (s *DuckDBStore) ExerciseCounts(ctx context.Context, learnerIDs []string) (map[string]int, error) {
	if len(learnerIDs) == 0 {
		return map[string]int{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(learnerIDs)), ",")
	query := fmt.Sprintf(`
		SELECT content_id, COUNT(*)
		FROM activity_log
		WHERE kind = 'Exercise' AND learner_id IN (%s)
		GROUP BY content_id`, placeholders)

	args := make([]any, len(learnerIDs))
	for i, id := range learnerIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: exercise counts: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("%w: scan count: %w", ErrUnavailable, err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: exercise counts: %w", ErrUnavailable, err)
	}

	return counts, nil
}

// Seed bulk-inserts learners and records. Used by seed mode and tests.
func (s *DuckDBStore) Seed(ctx context.Context, groups map[string]string, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin seed: %w", ErrUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	for learner, group := range groups {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO learners (learner_id, group_id) VALUES (?, ?)`,
			learner, group); err != nil {
			return fmt.Errorf("%w: seed learner: %w", ErrUnavailable, err)
		}
	}

	for _, r := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO activity_log
			 (learner_id, content_id, kind, complete, struggling,
			  latest_activity_timestamp, completion_timestamp)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.LearnerID, r.ContentID, string(r.Kind), r.Complete, r.Struggling,
			nullableTime(r.LatestActivity), nullableTime(r.CompletedAt)); err != nil {
			return fmt.Errorf("%w: seed record: %w", ErrUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit seed: %w", ErrUnavailable, err)
	}
	return nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var kind string
		var latest, completed sql.NullTime
		if err := rows.Scan(&r.LearnerID, &r.ContentID, &kind, &r.Complete,
			&r.Struggling, &latest, &completed); err != nil {
			return nil, fmt.Errorf("%w: scan record: %w", ErrUnavailable, err)
		}
		r.Kind = ContentKind(kind)
		if latest.Valid {
			t := latest.Time
			r.LatestActivity = &t
		}
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate records: %w", ErrUnavailable, err)
	}
	return records, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
