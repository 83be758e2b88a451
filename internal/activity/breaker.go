// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/wayfinder-learn/wayfinder/internal/metrics"
)

// BreakerStore wraps a Store with a circuit breaker. When the underlying
// store fails repeatedly the breaker opens and calls fail fast with
// ErrUnavailable instead of piling onto a sick database.
type BreakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps the given store.
func NewBreakerStore(inner Store) *BreakerStore {
	settings := gobreaker.Settings{
		Name:    "activity-store",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &BreakerStore{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (b *BreakerStore) execute(operation string, op func() (any, error)) (any, error) {
	result, err := b.cb.Execute(op)
	if err != nil {
		metrics.RecordStoreError(operation)
		if errors.Is(err, ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return result, nil
}

// RecordsByLearner implements Store.
func (b *BreakerStore) RecordsByLearner(ctx context.Context, learnerID string, kind ContentKind) ([]Record, error) {
	result, err := b.execute("records_by_learner", func() (any, error) {
		return b.inner.RecordsByLearner(ctx, learnerID, kind)
	})
	if err != nil {
		return nil, err
	}
	records, _ := result.([]Record)
	return records, nil
}

// MostRecentIncomplete implements Store.
func (b *BreakerStore) MostRecentIncomplete(ctx context.Context, learnerID string, kind ContentKind) (*Record, error) {
	result, err := b.execute("most_recent_incomplete", func() (any, error) {
		return b.inner.MostRecentIncomplete(ctx, learnerID, kind)
	})
	if err != nil {
		return nil, err
	}
	record, _ := result.(*Record)
	return record, nil
}

// GroupMembers implements Store.
func (b *BreakerStore) GroupMembers(ctx context.Context, learnerID string) ([]string, error) {
	result, err := b.execute("group_members", func() (any, error) {
		return b.inner.GroupMembers(ctx, learnerID)
	})
	if err != nil {
		return nil, err
	}
	members, _ := result.([]string)
	return members, nil
}

// ExerciseCounts implements Store.
func (b *BreakerStore) ExerciseCounts(ctx context.Context, learnerIDs []string) (map[string]int, error) {
	result, err := b.execute("exercise_counts", func() (any, error) {
		return b.inner.ExerciseCounts(ctx, learnerIDs)
	})
	if err != nil {
		return nil, err
	}
	counts, _ := result.(map[string]int)
	return counts, nil
}
