// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

import "testing"

func TestBuildCandidates_ConcatenationOrder(t *testing.T) {
	idx := mustBuildIndex(t)
	rankings := ExpandProximity(mustBuildAdjacency(t))

	candidates := BuildCandidates(idx, rankings)

	// early-math's ranking is early-math, arithmetic, algebra, biology,
	// physics; the candidate list is each subtopic's exercises in tree
	// order, concatenated in that ranking order.
	want := []string{
		"addition_1", "addition_2",
		"subtraction_1", "borrowing_1", "multiplication_0.5",
		"linear_equations_1",
		"cells_1",
		"motion_1",
	}
	got := candidates["early-math"]
	if len(got) != len(want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildCandidates_NoDeduplication(t *testing.T) {
	// The concatenation keeps duplicates across related subtopics;
	// strategies filter against learner history instead.
	idx := &Index{
		Exercises: map[string][]string{
			"a": {"shared", "a_only"},
			"b": {"shared"},
		},
	}
	rankings := map[string]Ranking{
		"a": {{ID: "a", Tier: TierNear}, {ID: "b", Tier: TierNear}},
	}

	got := BuildCandidates(idx, rankings)["a"]
	want := []string{"shared", "a_only", "shared"}
	if len(got) != len(want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildCandidates_EmptySubtopicsContributeNothing(t *testing.T) {
	idx := &Index{
		Exercises: map[string][]string{
			"full": {"e1"},
		},
	}
	rankings := map[string]Ranking{
		"empty": {{ID: "empty", Tier: TierNear}, {ID: "full", Tier: TierNear}},
	}

	got := BuildCandidates(idx, rankings)["empty"]
	if len(got) != 1 || got[0] != "e1" {
		t.Errorf("Candidates = %v, want [e1]", got)
	}
}
