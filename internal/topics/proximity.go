// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

// ExpandProximity turns the two-pointer adjacency into a full ranking of all
// other subtopics for every subtopic, ordered by non-decreasing structural
// distance.
//
// For a subject subtopic the expansion seeds with the subject itself and its
// immediate left/right neighbors, then follows each side's neighbor chain
// outward until it ends. Classification is monotonic per direction: entries
// are near until the walk crosses its first topic boundary on that side;
// from then on every subtopic reached in that direction is far, even when
// the individual hop is a sibling hop within its own topic. Discovery
// alternates left/right, and the final ranking is the stable partition of
// the discovery order with all near entries before all far entries, the
// subject always first. A subtopic reachable from both directions keeps its
// first (nearer) classification.
func ExpandProximity(adjacency map[string]AdjacencyEntry) map[string]Ranking {
	rankings := make(map[string]Ranking, len(adjacency))

	for subtopicID := range adjacency {
		rankings[subtopicID] = expandFrom(subtopicID, adjacency)
	}

	return rankings
}

func expandFrom(subject string, adjacency map[string]AdjacencyEntry) Ranking {
	entry := adjacency[subject]

	discovered := []RankedSubtopic{{ID: subject, Tier: TierNear}}
	seen := map[string]struct{}{subject: {}}

	add := func(id string, tier ProximityTier) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		discovered = append(discovered, RankedSubtopic{ID: id, Tier: tier})
	}

	// Seed with the immediate neighbors; a boundary hop is already far.
	left, right := entry.Left, entry.Right
	leftFar, rightFar := false, false

	if left != nil {
		leftFar = left.Tier == TierBoundary
		add(left.ID, tierFor(leftFar))
	}
	if right != nil {
		rightFar = right.Tier == TierBoundary
		add(right.ID, tierFor(rightFar))
	}

	// Walk both chains outward, alternating sides, until both end.
	for left != nil || right != nil {
		if left != nil {
			next := adjacency[left.ID].Left
			if next != nil {
				if next.Tier == TierBoundary {
					leftFar = true
				}
				add(next.ID, tierFor(leftFar))
			}
			left = next
		}

		if right != nil {
			next := adjacency[right.ID].Right
			if next != nil {
				if next.Tier == TierBoundary {
					rightFar = true
				}
				add(next.ID, tierFor(rightFar))
			}
			right = next
		}
	}

	return partitionNearFirst(discovered)
}

func tierFor(far bool) ProximityTier {
	if far {
		return TierFar
	}
	return TierNear
}

// partitionNearFirst stably moves all near entries before all far entries,
// preserving discovery order within each tier.
func partitionNearFirst(entries []RankedSubtopic) Ranking {
	ranking := make(Ranking, 0, len(entries))
	for _, e := range entries {
		if e.Tier == TierNear {
			ranking = append(ranking, e)
		}
	}
	for _, e := range entries {
		if e.Tier == TierFar {
			ranking = append(ranking, e)
		}
	}
	return ranking
}
