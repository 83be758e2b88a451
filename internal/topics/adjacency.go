// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

import "fmt"

// BuildAdjacency computes, for every subtopic, its immediate left and right
// structural neighbors in the global topic sequence.
//
// A neighbor is local when it is a sibling subtopic within the same topic.
// When no sibling exists on a side, the neighbor is the boundary subtopic of
// the adjacent topic: the last subtopic of the previous topic on the left,
// the first subtopic of the next topic on the right. At the ends of the
// global sequence there is no neighbor at all.
func BuildAdjacency(idx *Index) (map[string]AdjacencyEntry, error) {
	if idx == nil {
		return nil, fmt.Errorf("%w: nil index", ErrMalformedTree)
	}

	adjacency := make(map[string]AdjacencyEntry)

	for t, topicID := range idx.TopicOrder {
		subtopics := idx.SubtopicOrder[topicID]

		for s, subtopicID := range subtopics {
			var entry AdjacencyEntry

			if s > 0 {
				entry.Left = &SubtopicRef{ID: subtopics[s-1], Tier: TierLocal}
			} else if prev := lastSubtopic(idx, t-1); prev != "" {
				entry.Left = &SubtopicRef{ID: prev, Tier: TierBoundary}
			}

			if s+1 < len(subtopics) {
				entry.Right = &SubtopicRef{ID: subtopics[s+1], Tier: TierLocal}
			} else if next := firstSubtopic(idx, t+1); next != "" {
				entry.Right = &SubtopicRef{ID: next, Tier: TierBoundary}
			}

			adjacency[subtopicID] = entry
		}
	}

	return adjacency, nil
}

// lastSubtopic returns the last subtopic of the topic at position t, or ""
// when the position is out of range or the topic has no subtopics.
func lastSubtopic(idx *Index, t int) string {
	if t < 0 || t >= len(idx.TopicOrder) {
		return ""
	}
	subtopics := idx.SubtopicOrder[idx.TopicOrder[t]]
	if len(subtopics) == 0 {
		return ""
	}
	return subtopics[len(subtopics)-1]
}

// firstSubtopic returns the first subtopic of the topic at position t, or ""
// when the position is out of range or the topic has no subtopics.
func firstSubtopic(idx *Index, t int) string {
	if t < 0 || t >= len(idx.TopicOrder) {
		return ""
	}
	subtopics := idx.SubtopicOrder[idx.TopicOrder[t]]
	if len(subtopics) == 0 {
		return ""
	}
	return subtopics[0]
}
