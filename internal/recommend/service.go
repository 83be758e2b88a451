// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

// Package recommend composes the three recommendation strategies (Resume,
// Next, Explore) from the topic catalog and the learner activity signals.
package recommend

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wayfinder-learn/wayfinder/internal/activity"
	"github.com/wayfinder-learn/wayfinder/internal/topics"
)

// Service answers recommendation queries for one deployment. Safe for
// concurrent use; the only mutable state is the sampling RNG.
type Service struct {
	catalog *topics.Catalog
	signals *activity.Signals
	logger  zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService creates a recommendation service. The seed drives Explore
// sampling only; a fixed seed makes Explore reproducible across restarts.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(catalog *topics.Catalog, signals *activity.Signals, logger zerolog.Logger, seed int64) *Service {
	return &Service{
		catalog: catalog,
		signals: signals,
		logger:  logger.With().Str("component", "recommend").Logger(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// SubtopicExercises returns the proximity-ordered candidate exercises for a
// subtopic. Empty for an unknown subtopic or when no catalog is built;
// callers cannot distinguish the two and are not meant to.
func (s *Service) SubtopicExercises(subtopicID string) []string {
	snapshot, err := s.catalog.Snapshot()
	if err != nil {
		return nil
	}
	return snapshot.RecommendedExercises(subtopicID)
}

// sampleIDs picks k distinct entries from ids in random order. Callers hold
// no lock; the RNG is guarded here.
func (s *Service) sampleIDs(ids []string, k int) []string {
	if k <= 0 {
		return nil
	}
	if k > len(ids) {
		k = len(ids)
	}

	s.rngMu.Lock()
	perm := s.rng.Perm(len(ids))
	s.rngMu.Unlock()

	sampled := make([]string, 0, k)
	for _, i := range perm[:k] {
		sampled = append(sampled, ids[i])
	}
	return sampled
}

// resolveItem looks up a content ID's display metadata through the catalog
// ancestry. ok is false for IDs the current tree does not know.
func resolveItem(snapshot *topics.Snapshot, contentID string) (Item, bool) {
	ancestry, ok := snapshot.Index.Ancestry[contentID]
	if !ok {
		return Item{}, false
	}

	return Item{
		ID:            contentID,
		Title:         ancestry.Title,
		Kind:          string(ancestry.Kind),
		SubtopicID:    ancestry.SubtopicID,
		SubtopicTitle: ancestry.SubtopicTitle,
		TopicID:       ancestry.TopicID,
		TopicTitle:    ancestry.TopicTitle,
	}, true
}

// rankingWindow slices a proximity ranking to [lo, hi), clamping both ends
// to the ranking's length.
func rankingWindow(ranking topics.Ranking, lo, hi int) topics.Ranking {
	if lo > len(ranking) {
		lo = len(ranking)
	}
	if hi > len(ranking) {
		hi = len(ranking)
	}
	return ranking[lo:hi]
}

// firstN returns up to n leading entries of ids without copying.
func firstN(ids []string, n int) []string {
	if n > len(ids) {
		n = len(ids)
	}
	return ids[:n]
}
