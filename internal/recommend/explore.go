// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package recommend

import (
	"context"

	"github.com/wayfinder-learn/wayfinder/internal/topics"
)

// Explore returns unvisited subtopics worth branching into, derived from a
// random sample of the learner's recent exercises. Each sampled exercise's
// subtopic yields at most one suggestion, taken from the middle band of its
// proximity ranking; a subtopic whose band is fully visited still emits an
// empty suggestion. Two sampled exercises from the same subtopic collapse
// into one entry.
func (s *Service) Explore(ctx context.Context, learnerID string) ([]Suggestion, error) {
	snapshot, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	recent, err := s.signals.RecentExercises(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	visited := visitedSubtopics(snapshot, recent)
	sampled := s.sampleIDs(recent, exploreSampleSize(len(recent)))

	suggestions := []Suggestion{}
	emitted := make(map[string]struct{})

	for _, exerciseID := range sampled {
		ancestry, ok := snapshot.Index.Ancestry[exerciseID]
		if !ok {
			continue
		}
		if _, done := emitted[ancestry.SubtopicID]; done {
			continue
		}
		emitted[ancestry.SubtopicID] = struct{}{}

		suggestion := Suggestion{}
		if summary := s.suggestFrom(snapshot, ancestry.SubtopicID, visited); summary != nil {
			suggestion.SuggestedTopic = summary
			suggestion.InterestTopic = &InterestTopic{
				ID:    ancestry.SubtopicID,
				Title: ancestry.SubtopicTitle,
			}
		}
		suggestions = append(suggestions, suggestion)
	}

	s.logger.Debug().
		Str("learner_id", learnerID).
		Int("sampled", len(sampled)).
		Int("returned", len(suggestions)).
		Msg("explore recommendations computed")

	return suggestions, nil
}

// suggestFrom picks the first subtopic in the interest subtopic's middle
// proximity band (positions 2 through 6) the learner has not visited, or nil
// when the whole band is visited or unknown.
func (s *Service) suggestFrom(snapshot *topics.Snapshot, subtopicID string, visited map[string]struct{}) *TopicSummary {
	band := rankingWindow(snapshot.Rankings[subtopicID], 2, 7)

	for _, sub := range band {
		if _, seen := visited[sub.ID]; seen {
			continue
		}
		meta, ok := snapshot.Index.Nodes[sub.ID]
		if !ok {
			continue
		}
		return &TopicSummary{
			ID:          meta.ID,
			Title:       meta.Title,
			Path:        meta.Path,
			Description: meta.Description,
		}
	}
	return nil
}

// visitedSubtopics collects the subtopic IDs of the learner's recent
// exercises, skipping exercises unknown to the tree.
func visitedSubtopics(snapshot *topics.Snapshot, recent []string) map[string]struct{} {
	visited := make(map[string]struct{})
	for _, exerciseID := range recent {
		if ancestry, ok := snapshot.Index.Ancestry[exerciseID]; ok {
			visited[ancestry.SubtopicID] = struct{}{}
		}
	}
	return visited
}

// exploreSampleSize maps recent-history length to sample size. The only
// sizes ever produced are 0, 1, and 3; a history of exactly two exercises
// samples one, not two. Consumers style their layout around these sizes, so
// the mapping is kept as-is.
func exploreSampleSize(n int) int {
	switch {
	case n == 0:
		return 0
	case n > 2:
		return 3
	default:
		return 1
	}
}
