// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wayfinder-learn/wayfinder/internal/activity"
	"github.com/wayfinder-learn/wayfinder/internal/topics"
)

func itemIDs(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func assertIDs(t *testing.T, got []Item, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Items = %v, want %v", itemIDs(got), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("items[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestNext_NoHistory(t *testing.T) {
	service, _ := newTestService(t, activity.NewMemoryStore())

	items, err := service.Next(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items without history, got %v", itemIDs(items))
	}
}

func TestNext_TopicStructurePick(t *testing.T) {
	store := activity.NewMemoryStore()
	store.Add(
		activity.Record{LearnerID: "amira", ContentID: "addition_1", Kind: activity.KindExercise, LatestActivity: at(1)},
	)
	service, _ := newTestService(t, store)

	items, err := service.Next(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	// With no group signal and no struggling signal, the single item is the
	// first exercise of the nearest related subtopic.
	assertIDs(t, items, []string{"subtraction_1"})
	if items[0].SubtopicID != "arithmetic" || items[0].TopicTitle != "Math" {
		t.Errorf("Unexpected metadata: %+v", items[0])
	}
}

func TestNext_MergeOrderAndNoCrossSourceDedupe(t *testing.T) {
	store := activity.NewMemoryStore()
	store.Add(
		activity.Record{LearnerID: "amira", ContentID: "subtraction_1", Kind: activity.KindExercise, Struggling: true, Complete: true, LatestActivity: at(3), CompletedAt: at(3)},
	)
	service, _ := newTestService(t, store)

	items, err := service.Next(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	// Struggling prerequisites come before the topic-structure pick, and
	// addition_1 appears twice because sources are not deduplicated against
	// each other.
	assertIDs(t, items, []string{"addition_1", "addition_2", "addition_1"})
}

func TestNext_GroupPicksLeadMerge(t *testing.T) {
	store := activity.NewMemoryStore()
	store.SetGroup("amira", "g1")
	store.SetGroup("bashir", "g1")
	store.Add(
		activity.Record{LearnerID: "amira", ContentID: "addition_1", Kind: activity.KindExercise, LatestActivity: at(1)},
		// bashir did addition_1 then moved to addition_2, so addition_2 is
		// the group's next-exercise pattern for amira's history.
		activity.Record{LearnerID: "bashir", ContentID: "addition_2", Kind: activity.KindExercise, Complete: true, CompletedAt: at(5)},
		activity.Record{LearnerID: "bashir", ContentID: "addition_1", Kind: activity.KindExercise, Complete: true, CompletedAt: at(2)},
	)
	service, _ := newTestService(t, store)

	items, err := service.Next(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	assertIDs(t, items, []string{"addition_2", "subtraction_1"})
}

func TestNext_DropsIDsUnknownToTree(t *testing.T) {
	store := activity.NewMemoryStore()
	store.SetGroup("amira", "g1")
	store.SetGroup("bashir", "g1")
	store.Add(
		activity.Record{LearnerID: "amira", ContentID: "addition_1", Kind: activity.KindExercise, LatestActivity: at(1)},
		activity.Record{LearnerID: "bashir", ContentID: "retired_exercise", Kind: activity.KindExercise, Complete: true, CompletedAt: at(5)},
		activity.Record{LearnerID: "bashir", ContentID: "addition_1", Kind: activity.KindExercise, Complete: true, CompletedAt: at(2)},
	)
	service, _ := newTestService(t, store)

	items, err := service.Next(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	// The group pattern points at an exercise the current tree no longer
	// carries; it is dropped at resolution, not replaced.
	assertIDs(t, items, []string{"subtraction_1"})
}

func TestNext_FiltersLearnerHistoryFromTopicPicks(t *testing.T) {
	store := activity.NewMemoryStore()
	store.Add(
		activity.Record{LearnerID: "amira", ContentID: "addition_1", Kind: activity.KindExercise, LatestActivity: at(9)},
		activity.Record{LearnerID: "amira", ContentID: "subtraction_1", Kind: activity.KindExercise, Complete: true, LatestActivity: at(1), CompletedAt: at(1)},
	)
	service, _ := newTestService(t, store)

	items, err := service.Next(context.Background(), "amira")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	// subtraction_1 is already in amira's history, so the topic pick moves
	// on to arithmetic's next exercise. The leading addition_1 comes from
	// the group signal: amira's own log sequence counts toward the group
	// pattern, and her incomplete addition_1 precedes subtraction_1 there.
	assertIDs(t, items, []string{"addition_1", "multiplication_0.5"})
}

func TestNext_PerSubtopicCap(t *testing.T) {
	// One related subtopic with seven exercises contributes at most five
	// candidates.
	wide := &topics.Node{
		ID:   "root",
		Kind: topics.KindTopic,
		Children: []topics.Node{
			{
				ID: "t", Kind: topics.KindTopic,
				Children: []topics.Node{
					{ID: "home", Kind: topics.KindSubtopic, Children: []topics.Node{
						{ID: "h1", Kind: topics.KindExercise},
					}},
					{ID: "wide", Kind: topics.KindSubtopic, Children: func() []topics.Node {
						var kids []topics.Node
						for i := 1; i <= 7; i++ {
							kids = append(kids, topics.Node{ID: fmt.Sprintf("w%d", i), Kind: topics.KindExercise})
						}
						return kids
					}()},
				},
			},
		},
	}

	catalog := topics.NewCatalog(topics.StaticSource{Root: wide}, zerolog.Nop())
	if err := catalog.Build(context.Background()); err != nil {
		t.Fatalf("Catalog build failed: %v", err)
	}
	snapshot, err := catalog.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	service := NewService(catalog, activity.NewSignals(activity.NewMemoryStore()), zerolog.Nop(), 1)

	candidates := service.topicCandidates(snapshot, []string{"h1"})
	if len(candidates) != 5 {
		t.Fatalf("Expected 5 capped candidates, got %v", candidates)
	}
	for i, id := range []string{"w1", "w2", "w3", "w4", "w5"} {
		if candidates[i] != id {
			t.Errorf("candidates[%d] = %q, want %q", i, candidates[i], id)
		}
	}
}

func TestNext_CatalogNotBuilt(t *testing.T) {
	service, catalog := newTestService(t, activity.NewMemoryStore())
	catalog.Invalidate()

	_, err := service.Next(context.Background(), "amira")
	if !errors.Is(err, topics.ErrNotBuilt) {
		t.Errorf("Expected ErrNotBuilt, got %v", err)
	}
}

func TestNext_StoreFailure(t *testing.T) {
	service, _ := newTestService(t, failingStore{})

	_, err := service.Next(context.Background(), "amira")
	if !errors.Is(err, activity.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}
