// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

// BuildCandidates maps every subtopic to its candidate exercise list: the
// concatenation, in proximity-ranking order, of each related subtopic's
// exercises in tree order. Related subtopics without exercises contribute
// nothing. Exercise IDs are not de-duplicated across related subtopics;
// strategies de-duplicate against the learner's own history instead.
func BuildCandidates(idx *Index, rankings map[string]Ranking) map[string][]string {
	candidates := make(map[string][]string, len(rankings))

	for subtopicID, ranking := range rankings {
		var list []string
		for _, related := range ranking {
			list = append(list, idx.Exercises[related.ID]...)
		}
		candidates[subtopicID] = list
	}

	return candidates
}
