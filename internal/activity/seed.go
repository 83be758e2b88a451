// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package activity

import "time"

// MockData returns a small fixture of demonstration learners: one facility
// group of three learners with a mix of complete, incomplete, and
// struggling records. Content IDs follow the common arithmetic slugs so
// they resolve against typical demo topic trees.
func MockData() (groups map[string]string, records []Record) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	at := func(h int) *time.Time {
		t := base.Add(time.Duration(h) * time.Hour)
		return &t
	}

	groups = map[string]string{
		"demo-learner-1": "demo-group",
		"demo-learner-2": "demo-group",
		"demo-learner-3": "demo-group",
	}

	records = []Record{
		{LearnerID: "demo-learner-1", ContentID: "addition_1", Kind: KindExercise, Complete: true, LatestActivity: at(0), CompletedAt: at(0)},
		{LearnerID: "demo-learner-1", ContentID: "addition_2", Kind: KindExercise, Complete: true, LatestActivity: at(2), CompletedAt: at(2)},
		{LearnerID: "demo-learner-1", ContentID: "subtraction_1", Kind: KindExercise, Complete: false, Struggling: true, LatestActivity: at(5)},
		{LearnerID: "demo-learner-1", ContentID: "basic-addition", Kind: KindVideo, Complete: false, LatestActivity: at(6)},

		{LearnerID: "demo-learner-2", ContentID: "addition_1", Kind: KindExercise, Complete: true, LatestActivity: at(1), CompletedAt: at(1)},
		{LearnerID: "demo-learner-2", ContentID: "multiplication_0.5", Kind: KindExercise, Complete: false, LatestActivity: at(4)},

		{LearnerID: "demo-learner-3", ContentID: "addition_1", Kind: KindExercise, Complete: false, LatestActivity: at(3)},
		{LearnerID: "demo-learner-3", ContentID: "telling_time", Kind: KindExercise, Complete: false, Struggling: true, LatestActivity: at(7)},
	}

	return groups, records
}

// SeedMock loads MockData into the in-memory store.
func (m *MemoryStore) SeedMock() {
	groups, records := MockData()
	for learnerID, groupID := range groups {
		m.SetGroup(learnerID, groupID)
	}
	m.Add(records...)
}
