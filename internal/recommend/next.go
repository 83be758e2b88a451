// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package recommend

import (
	"context"

	"github.com/wayfinder-learn/wayfinder/internal/topics"
)

// exercisesPerSubtopic caps how many exercises each related subtopic
// contributes to the topic-structure candidate list.
const exercisesPerSubtopic = 5

// Next returns exercises the learner should consider next, merged from
// three sources in fixed order: up to two group-pattern picks, up to two
// prerequisites of struggling exercises, and up to one topic-structure pick.
// Sources are not deduplicated against each other; an exercise surfaced by
// both the group and the struggling signal appears twice. IDs unknown to the
// current tree are dropped during resolution.
func (s *Service) Next(ctx context.Context, learnerID string) ([]Item, error) {
	snapshot, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	recent, err := s.signals.RecentExercises(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	topicBased := s.topicCandidates(snapshot, recent)

	struggling, err := s.strugglingPrereqs(ctx, snapshot, learnerID)
	if err != nil {
		return nil, err
	}

	group, err := s.groupCandidates(ctx, learnerID, recent)
	if err != nil {
		return nil, err
	}

	var merged []string
	merged = append(merged, firstN(group, 2)...)
	merged = append(merged, firstN(struggling, 2)...)
	merged = append(merged, firstN(topicBased, 1)...)

	items := make([]Item, 0, len(merged))
	for _, exerciseID := range merged {
		if item, ok := resolveItem(snapshot, exerciseID); ok {
			items = append(items, item)
		}
	}

	s.logger.Debug().
		Str("learner_id", learnerID).
		Int("group", len(group)).
		Int("struggling", len(struggling)).
		Int("topic_based", len(topicBased)).
		Int("returned", len(items)).
		Msg("next recommendations computed")

	return items, nil
}

// topicCandidates derives candidates from the proximity ranking of the
// subtopic the learner most recently exercised in: the three nearest related
// subtopics beyond the subtopic itself each contribute their leading
// exercises, and anything already in the learner's history is filtered out.
func (s *Service) topicCandidates(snapshot *topics.Snapshot, recent []string) []string {
	if len(recent) == 0 {
		return nil
	}
	ancestry, ok := snapshot.Index.Ancestry[recent[0]]
	if !ok {
		return nil
	}

	ranking := snapshot.Rankings[ancestry.SubtopicID]
	related := rankingWindow(ranking, 1, 4)

	seen := make(map[string]struct{}, len(recent))
	for _, id := range recent {
		seen[id] = struct{}{}
	}

	var candidates []string
	for _, sub := range related {
		for _, exerciseID := range snapshot.Index.FirstExercises(sub.ID, exercisesPerSubtopic) {
			if _, done := seen[exerciseID]; !done {
				candidates = append(candidates, exerciseID)
			}
		}
	}
	return candidates
}

// strugglingPrereqs flattens the prerequisite lists of the learner's
// struggling exercises, most recently completed first. Struggling exercises
// unknown to the tree contribute nothing.
func (s *Service) strugglingPrereqs(ctx context.Context, snapshot *topics.Snapshot, learnerID string) ([]string, error) {
	struggling, err := s.signals.StrugglingExercises(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	var prereqs []string
	for _, exerciseID := range struggling {
		if ancestry, ok := snapshot.Index.Ancestry[exerciseID]; ok {
			prereqs = append(prereqs, ancestry.Prerequisites...)
		}
	}
	return prereqs, nil
}

// groupCandidates flattens the group next-exercise frequency table into a
// bare ID list, keeping the table's ascending-count order.
func (s *Service) groupCandidates(ctx context.Context, learnerID string, recent []string) ([]string, error) {
	counts, err := s.signals.GroupNextExercises(ctx, learnerID, recent)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.ExerciseID)
	}
	return ids, nil
}
