// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package activity

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and by seed mode. It
// implements the same ordering contract as the DuckDB store.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	groups  map[string]string // learner ID -> group ID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{groups: make(map[string]string)}
}

// Add appends records to the store.
func (m *MemoryStore) Add(records ...Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
}

// SetGroup assigns a learner to a facility group.
func (m *MemoryStore) SetGroup(learnerID, groupID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[learnerID] = groupID
}

// RecordsByLearner implements Store.
func (m *MemoryStore) RecordsByLearner(_ context.Context, learnerID string, kind ContentKind) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for _, r := range m.records {
		if r.LearnerID == learnerID && r.Kind == kind {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return timeOrMin(out[i].LatestActivity).After(timeOrMin(out[j].LatestActivity))
	})

	return out, nil
}

// MostRecentIncomplete implements Store.
func (m *MemoryStore) MostRecentIncomplete(ctx context.Context, learnerID string, kind ContentKind) (*Record, error) {
	records, err := m.RecordsByLearner(ctx, learnerID, kind)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if !records[i].Complete {
			r := records[i]
			return &r, nil
		}
	}
	return nil, nil
}

// GroupMembers implements Store.
func (m *MemoryStore) GroupMembers(_ context.Context, learnerID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	group, ok := m.groups[learnerID]
	if !ok {
		return []string{learnerID}, nil
	}

	var members []string
	for id, g := range m.groups {
		if g == group {
			members = append(members, id)
		}
	}
	sort.Strings(members)

	return members, nil
}

// ExerciseCounts implements Store.
func (m *MemoryStore) ExerciseCounts(_ context.Context, learnerIDs []string) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[string]struct{}, len(learnerIDs))
	for _, id := range learnerIDs {
		wanted[id] = struct{}{}
	}

	counts := make(map[string]int)
	for _, r := range m.records {
		if r.Kind != KindExercise {
			continue
		}
		if _, ok := wanted[r.LearnerID]; ok {
			counts[r.ContentID]++
		}
	}

	return counts, nil
}
