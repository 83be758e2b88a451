// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package activity

import (
	"context"
	"sort"
	"time"
)

// Signals computes per-learner aggregates from the activity log. Everything
// is derived fresh per call; nothing is persisted.
type Signals struct {
	store Store
}

// NewSignals creates a Signals aggregator over the given store.
func NewSignals(store Store) *Signals {
	return &Signals{store: store}
}

// ExerciseCount is one (exercise, count) pair of the group frequency table.
type ExerciseCount struct {
	ExerciseID string `json:"exercise_id"`
	Count      int    `json:"count"`
}

// MostRecentIncompleteItem returns the learner's single most recently
// active incomplete record across exercise, video, and content logs, or nil
// when every log is empty or complete. A record without a timestamp is
// treated as minimally recent.
func (s *Signals) MostRecentIncompleteItem(ctx context.Context, learnerID string) (*Record, error) {
	var best *Record

	for _, kind := range []ContentKind{KindExercise, KindVideo, KindContent} {
		record, err := s.store.MostRecentIncomplete(ctx, learnerID, kind)
		if err != nil {
			return nil, err
		}
		if record == nil {
			continue
		}
		if best == nil || timeOrMin(record.LatestActivity).After(timeOrMin(best.LatestActivity)) {
			best = record
		}
	}

	return best, nil
}

// RecentExercises returns the learner's exercise IDs, complete and
// incomplete, most recently active first.
func (s *Signals) RecentExercises(ctx context.Context, learnerID string) ([]string, error) {
	records, err := s.store.RecordsByLearner(ctx, learnerID, KindExercise)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ContentID)
	}
	return ids, nil
}

// StrugglingExercises returns the exercise IDs the learner is struggling
// on, most recently completed first.
func (s *Signals) StrugglingExercises(ctx context.Context, learnerID string) ([]string, error) {
	records, err := s.store.RecordsByLearner(ctx, learnerID, KindExercise)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return timeOrMin(records[i].CompletedAt).After(timeOrMin(records[j].CompletedAt))
	})

	var struggles []string
	for _, r := range records {
		if r.Struggling {
			struggles = append(struggles, r.ContentID)
		}
	}
	return struggles, nil
}

// GroupNextExercises returns the peer next-exercise frequency table for the
// learner's group, sorted ascending by count.
//
// With recent history: for every peer, peer logs are ordered incomplete
// first, then by completion recency; whenever a peer log matches one of the
// learner's recent exercises, the exercise immediately preceding it in the
// peer's sequence is counted. Without history, the raw per-exercise record
// frequency across the group is used instead.
//
// The ascending sort is long-standing consumer-visible behavior and is kept
// as-is. Cost is O(peers x each peer's log length); callers bound it for
// large groups.
func (s *Signals) GroupNextExercises(ctx context.Context, learnerID string, recentExercises []string) ([]ExerciseCount, error) {
	members, err := s.store.GroupMembers(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)

	if len(recentExercises) > 0 {
		recent := make(map[string]struct{}, len(recentExercises))
		for _, id := range recentExercises {
			recent[id] = struct{}{}
		}

		for _, member := range members {
			logs, err := s.store.RecordsByLearner(ctx, member, KindExercise)
			if err != nil {
				return nil, err
			}
			orderIncompleteFirst(logs)

			for i := 1; i < len(logs); i++ {
				if _, ok := recent[logs[i].ContentID]; ok {
					counts[logs[i-1].ContentID]++
				}
			}
		}
	} else {
		counts, err = s.store.ExerciseCounts(ctx, members)
		if err != nil {
			return nil, err
		}
	}

	return sortCountsAscending(counts), nil
}

// orderIncompleteFirst sorts records so incomplete ones come first, then by
// completion timestamp, most recent first.
func orderIncompleteFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ii, ij := records[i].CompletedAt == nil, records[j].CompletedAt == nil
		if ii != ij {
			return ii
		}
		return timeOrMin(records[i].CompletedAt).After(timeOrMin(records[j].CompletedAt))
	})
}

// sortCountsAscending flattens the count map, ordered by count ascending
// with exercise ID as a deterministic tie-break.
func sortCountsAscending(counts map[string]int) []ExerciseCount {
	out := make([]ExerciseCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, ExerciseCount{ExerciseID: id, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].ExerciseID < out[j].ExerciseID
	})

	return out
}

// timeOrMin dereferences a nullable timestamp, substituting the zero time
// so missing timestamps sort as minimally recent.
func timeOrMin(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
