// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

// Package activity provides the learner activity log collaborator: the
// storage contract, a DuckDB-backed implementation, an in-memory
// implementation for tests and seed mode, and the Signals aggregator the
// recommendation strategies consume.
package activity

import (
	"context"
	"errors"
	"time"
)

// ContentKind classifies a logged content interaction.
type ContentKind string

const (
	// KindExercise is an exercise attempt log.
	KindExercise ContentKind = "Exercise"
	// KindVideo is a video watch log.
	KindVideo ContentKind = "Video"
	// KindContent is any other content interaction log.
	KindContent ContentKind = "Content"
)

// Record is one learner-content interaction as stored by the log
// collaborator. Wayfinder only reads records; the collaborator owns all
// mutation.
type Record struct {
	// LearnerID identifies the learner.
	LearnerID string `json:"learner_id"`

	// ContentID identifies the exercise/video/content item.
	ContentID string `json:"content_id"`

	// Kind classifies the record.
	Kind ContentKind `json:"kind"`

	// Complete is true once the item was finished.
	Complete bool `json:"complete"`

	// Struggling marks persistent difficulty. Exercises only.
	Struggling bool `json:"struggling"`

	// LatestActivity is the most recent interaction time. Nil when the
	// collaborator never recorded one; treated as minimally recent.
	LatestActivity *time.Time `json:"latest_activity_timestamp,omitempty"`

	// CompletedAt is when the item was completed. Nil while incomplete.
	CompletedAt *time.Time `json:"completion_timestamp,omitempty"`
}

// ErrUnavailable is returned when the activity log store cannot be reached.
// Not retried internally; retry policy belongs to the calling layer.
var ErrUnavailable = errors.New("activity store unavailable")

// Store is the query contract of the activity log collaborator. All result
// orderings are part of the contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// RecordsByLearner returns the learner's records of one kind ordered
	// by latest activity, most recent first. Records without a timestamp
	// sort last.
	RecordsByLearner(ctx context.Context, learnerID string, kind ContentKind) ([]Record, error)

	// MostRecentIncomplete returns the learner's most recently active
	// incomplete record of one kind, or nil when there is none.
	MostRecentIncomplete(ctx context.Context, learnerID string, kind ContentKind) (*Record, error)

	// GroupMembers returns the IDs of all learners sharing the given
	// learner's facility group, including the learner.
	GroupMembers(ctx context.Context, learnerID string) ([]string, error)

	// ExerciseCounts returns, per exercise ID, how many exercise records
	// exist across the given learners.
	ExerciseCounts(ctx context.Context, learnerIDs []string) (map[string]int, error)
}
