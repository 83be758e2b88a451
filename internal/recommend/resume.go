// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package recommend

import "context"

// Resume returns the learner's single most recently active started-but-
// incomplete item across exercise, video, and content logs, resolved to
// display metadata. Empty when the learner has no incomplete activity or
// when the logged content ID is unknown to the current tree.
func (s *Service) Resume(ctx context.Context, learnerID string) ([]Item, error) {
	snapshot, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	record, err := s.signals.MostRecentIncompleteItem(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []Item{}, nil
	}

	item, ok := resolveItem(snapshot, record.ContentID)
	if !ok {
		s.logger.Debug().
			Str("learner_id", learnerID).
			Str("content_id", record.ContentID).
			Msg("resume item not in current tree, skipping")
		return []Item{}, nil
	}

	return []Item{item}, nil
}
