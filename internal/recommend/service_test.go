// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package recommend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wayfinder-learn/wayfinder/internal/activity"
	"github.com/wayfinder-learn/wayfinder/internal/topics"
)

// curriculumTree mirrors a small two-topic deployment: three math
// subtopics, two science subtopics, one video, one prerequisite chain.
func curriculumTree() *topics.Node {
	return &topics.Node{
		ID:   "root",
		Kind: topics.KindTopic,
		Children: []topics.Node{
			{
				ID: "math", Title: "Math", Kind: topics.KindTopic, Path: "/math/",
				Children: []topics.Node{
					{
						ID: "early-math", Title: "Early math", Kind: topics.KindSubtopic, Path: "/math/early-math/", Parent: "math",
						Description: "Counting and addition",
						Children: []topics.Node{
							{ID: "addition_1", Title: "Addition 1", Kind: topics.KindExercise, Parent: "early-math"},
							{ID: "addition_2", Title: "Addition 2", Kind: topics.KindExercise, Parent: "early-math"},
							{ID: "basic-addition", Title: "Basic addition", Kind: topics.KindVideo, Parent: "early-math"},
						},
					},
					{
						ID: "arithmetic", Title: "Arithmetic", Kind: topics.KindSubtopic, Path: "/math/arithmetic/", Parent: "math",
						Children: []topics.Node{
							{
								ID: "subtraction_1", Title: "Subtraction 1", Kind: topics.KindExercise, Parent: "arithmetic",
								Prerequisites: []string{"addition_1", "addition_2"},
							},
							{ID: "multiplication_0.5", Title: "Multiplication 0.5", Kind: topics.KindExercise, Parent: "arithmetic"},
						},
					},
					{
						ID: "algebra", Title: "Algebra", Kind: topics.KindSubtopic, Path: "/math/algebra/", Parent: "math",
						Children: []topics.Node{
							{ID: "linear_equations_1", Title: "Linear equations 1", Kind: topics.KindExercise, Parent: "algebra"},
						},
					},
				},
			},
			{
				ID: "science", Title: "Science", Kind: topics.KindTopic, Path: "/science/",
				Children: []topics.Node{
					{
						ID: "biology", Title: "Biology", Kind: topics.KindSubtopic, Path: "/science/biology/", Parent: "science",
						Children: []topics.Node{
							{ID: "cells_1", Title: "Cells 1", Kind: topics.KindExercise, Parent: "biology"},
						},
					},
					{
						ID: "physics", Title: "Physics", Kind: topics.KindSubtopic, Path: "/science/physics/", Parent: "science",
						Children: []topics.Node{
							{ID: "motion_1", Title: "Motion 1", Kind: topics.KindExercise, Parent: "physics"},
						},
					},
				},
			},
		},
	}
}

// newTestService builds a service over the curriculum tree and the given
// store, with a fixed sampling seed.
func newTestService(t *testing.T, store activity.Store) (*Service, *topics.Catalog) {
	t.Helper()

	catalog := topics.NewCatalog(topics.StaticSource{Root: curriculumTree()}, zerolog.Nop())
	if err := catalog.Build(context.Background()); err != nil {
		t.Fatalf("Catalog build failed: %v", err)
	}

	service := NewService(catalog, activity.NewSignals(store), zerolog.Nop(), 42)
	return service, catalog
}

func TestSubtopicExercises(t *testing.T) {
	service, _ := newTestService(t, activity.NewMemoryStore())

	got := service.SubtopicExercises("early-math")
	want := []string{
		"addition_1", "addition_2",
		"subtraction_1", "multiplication_0.5",
		"linear_equations_1",
		"cells_1",
		"motion_1",
	}
	if len(got) != len(want) {
		t.Fatalf("SubtopicExercises = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSubtopicExercises_UnknownOrUnbuilt(t *testing.T) {
	service, catalog := newTestService(t, activity.NewMemoryStore())

	if got := service.SubtopicExercises("nope"); got != nil {
		t.Errorf("Expected nil for unknown subtopic, got %v", got)
	}

	catalog.Invalidate()
	if got := service.SubtopicExercises("early-math"); got != nil {
		t.Errorf("Expected nil with no catalog built, got %v", got)
	}
}

func TestSampleIDs(t *testing.T) {
	service, _ := newTestService(t, activity.NewMemoryStore())
	ids := []string{"a", "b", "c", "d"}

	sampled := service.sampleIDs(ids, 3)
	if len(sampled) != 3 {
		t.Fatalf("Expected 3 sampled IDs, got %d", len(sampled))
	}
	seen := make(map[string]struct{})
	for _, id := range sampled {
		if _, dup := seen[id]; dup {
			t.Errorf("Duplicate sampled ID %q", id)
		}
		seen[id] = struct{}{}
	}

	if got := service.sampleIDs(ids, 0); got != nil {
		t.Errorf("Expected nil for k=0, got %v", got)
	}
	if got := service.sampleIDs([]string{"x"}, 5); len(got) != 1 {
		t.Errorf("Expected clamp to population size, got %v", got)
	}
}

func TestFirstN(t *testing.T) {
	ids := []string{"a", "b", "c"}

	if got := firstN(ids, 2); len(got) != 2 || got[1] != "b" {
		t.Errorf("firstN(2) = %v", got)
	}
	if got := firstN(ids, 10); len(got) != 3 {
		t.Errorf("firstN(10) = %v", got)
	}
	if got := firstN(nil, 2); len(got) != 0 {
		t.Errorf("firstN(nil) = %v", got)
	}
}

func TestRankingWindow(t *testing.T) {
	ranking := topics.Ranking{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}

	if got := rankingWindow(ranking, 1, 4); len(got) != 2 || got[0].ID != "b" {
		t.Errorf("rankingWindow(1,4) = %v", got)
	}
	if got := rankingWindow(ranking, 2, 7); len(got) != 1 || got[0].ID != "c" {
		t.Errorf("rankingWindow(2,7) = %v", got)
	}
	if got := rankingWindow(ranking, 5, 7); len(got) != 0 {
		t.Errorf("rankingWindow(5,7) = %v", got)
	}
}
