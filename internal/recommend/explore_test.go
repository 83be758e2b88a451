// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wayfinder-learn/wayfinder/internal/activity"
	"github.com/wayfinder-learn/wayfinder/internal/topics"
)

func TestExplore_NoHistory(t *testing.T) {
	service, _ := newTestService(t, activity.NewMemoryStore())

	suggestions, err := service.Explore(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Explore failed: %v", err)
	}
	if suggestions == nil || len(suggestions) != 0 {
		t.Errorf("Expected empty non-nil suggestions, got %v", suggestions)
	}
}

func TestExplore_SingleInterest(t *testing.T) {
	store := activity.NewMemoryStore()
	store.Add(
		activity.Record{LearnerID: "amira", ContentID: "addition_1", Kind: activity.KindExercise, LatestActivity: at(1)},
	)
	service, _ := newTestService(t, store)

	suggestions, err := service.Explore(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Explore failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}

	s := suggestions[0]
	if s.SuggestedTopic == nil {
		t.Fatal("Expected a suggested topic")
	}
	// early-math's proximity band at positions 2+ starts with algebra.
	if s.SuggestedTopic.ID != "algebra" {
		t.Errorf("Suggested %q, want algebra", s.SuggestedTopic.ID)
	}
	if s.SuggestedTopic.Path != "/math/algebra/" || s.SuggestedTopic.Title != "Algebra" {
		t.Errorf("Suggested topic metadata = %+v", s.SuggestedTopic)
	}
	if s.InterestTopic == nil || s.InterestTopic.ID != "early-math" || s.InterestTopic.Title != "Early math" {
		t.Errorf("Interest topic = %+v, want early-math", s.InterestTopic)
	}
}

func TestExplore_NeverSuggestsVisited(t *testing.T) {
	store := activity.NewMemoryStore()
	store.Add(
		activity.Record{LearnerID: "amira", ContentID: "addition_1", Kind: activity.KindExercise, LatestActivity: at(1)},
		activity.Record{LearnerID: "amira", ContentID: "linear_equations_1", Kind: activity.KindExercise, LatestActivity: at(2)},
		activity.Record{LearnerID: "amira", ContentID: "cells_1", Kind: activity.KindExercise, LatestActivity: at(3)},
	)
	service, _ := newTestService(t, store)

	suggestions, err := service.Explore(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Explore failed: %v", err)
	}

	// Three recent exercises in three different subtopics: all of them are
	// sampled, each yields one suggestion.
	if len(suggestions) != 3 {
		t.Fatalf("Expected 3 suggestions, got %d", len(suggestions))
	}

	visited := map[string]struct{}{"early-math": {}, "algebra": {}, "biology": {}}
	for _, s := range suggestions {
		if s.SuggestedTopic == nil {
			t.Error("Expected every interest to find an unvisited suggestion")
			continue
		}
		if _, seen := visited[s.SuggestedTopic.ID]; seen {
			t.Errorf("Suggested already-visited subtopic %q", s.SuggestedTopic.ID)
		}
	}
}

func TestExplore_EmptySuggestionAndSubtopicDedupe(t *testing.T) {
	// Two topics, three subtopics: a's middle band holds only c, and c's
	// band is empty. The learner visited both a and c.
	small := &topics.Node{
		ID:   "root",
		Kind: topics.KindTopic,
		Children: []topics.Node{
			{
				ID: "t1", Kind: topics.KindTopic,
				Children: []topics.Node{
					{ID: "a", Kind: topics.KindSubtopic, Children: []topics.Node{
						{ID: "a1", Kind: topics.KindExercise},
						{ID: "a2", Kind: topics.KindExercise},
					}},
					{ID: "b", Kind: topics.KindSubtopic, Children: []topics.Node{
						{ID: "b1", Kind: topics.KindExercise},
					}},
				},
			},
			{
				ID: "t2", Kind: topics.KindTopic,
				Children: []topics.Node{
					{ID: "c", Kind: topics.KindSubtopic, Children: []topics.Node{
						{ID: "c1", Kind: topics.KindExercise},
					}},
				},
			},
		},
	}

	catalog := topics.NewCatalog(topics.StaticSource{Root: small}, zerolog.Nop())
	if err := catalog.Build(context.Background()); err != nil {
		t.Fatalf("Catalog build failed: %v", err)
	}

	store := activity.NewMemoryStore()
	store.Add(
		activity.Record{LearnerID: "amira", ContentID: "a1", Kind: activity.KindExercise, LatestActivity: at(1)},
		activity.Record{LearnerID: "amira", ContentID: "a2", Kind: activity.KindExercise, LatestActivity: at(2)},
		activity.Record{LearnerID: "amira", ContentID: "c1", Kind: activity.KindExercise, LatestActivity: at(3)},
	)
	service := NewService(catalog, activity.NewSignals(store), zerolog.Nop(), 7)

	suggestions, err := service.Explore(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Explore failed: %v", err)
	}

	// a1 and a2 collapse into one interest; both interests have exhausted
	// bands, and each still emits an empty suggestion so consumers see
	// which interests went dry.
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(suggestions))
	}
	for i, s := range suggestions {
		if s.SuggestedTopic != nil || s.InterestTopic != nil {
			t.Errorf("suggestions[%d] = %+v, want empty", i, s)
		}
	}
}

func TestExplore_CatalogNotBuilt(t *testing.T) {
	service, catalog := newTestService(t, activity.NewMemoryStore())
	catalog.Invalidate()

	_, err := service.Explore(context.Background(), "amira")
	if !errors.Is(err, topics.ErrNotBuilt) {
		t.Errorf("Expected ErrNotBuilt, got %v", err)
	}
}

func TestExplore_StoreFailure(t *testing.T) {
	service, _ := newTestService(t, failingStore{})

	_, err := service.Explore(context.Background(), "amira")
	if !errors.Is(err, activity.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestExploreSampleSize(t *testing.T) {
	tests := []struct {
		history int
		want    int
	}{
		{0, 0},
		{1, 1},
		{2, 1}, // two recent exercises sample one, not two
		{3, 3},
		{10, 3},
	}

	for _, tt := range tests {
		if got := exploreSampleSize(tt.history); got != tt.want {
			t.Errorf("exploreSampleSize(%d) = %d, want %d", tt.history, got, tt.want)
		}
	}
}
