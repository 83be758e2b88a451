// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Snapshot bundles every tree-derived structure for one tree version. All
// fields are read-only after Build publishes the snapshot, so concurrent
// requests share it without locking.
type Snapshot struct {
	// Index is the flattened tree projection.
	Index *Index

	// Adjacency maps subtopic ID to its immediate neighbors.
	Adjacency map[string]AdjacencyEntry

	// Rankings maps subtopic ID to its full proximity ranking.
	Rankings map[string]Ranking

	// Candidates maps subtopic ID to its candidate exercise list.
	Candidates map[string][]string

	// Version increments on every successful build.
	Version int

	// BuiltAt is when the snapshot was derived.
	BuiltAt time.Time
}

// RecommendedExercises returns the candidate exercise list for a subtopic.
// Empty (never an error) for an empty or unknown ID.
func (s *Snapshot) RecommendedExercises(subtopicID string) []string {
	if subtopicID == "" {
		return nil
	}
	return s.Candidates[subtopicID]
}

// Catalog owns the derived tree structures and their rebuild lifecycle.
//
// Build derives a fresh snapshot from the source and publishes it under the
// write lock; readers take the read lock only long enough to copy the
// snapshot pointer. Invalidate drops the snapshot until the next Build.
// It replaces ambient module-global caching with an injected service object.
type Catalog struct {
	source Source
	logger zerolog.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
	version  int
}

// NewCatalog creates a catalog reading from the given source.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalog(source Source, logger zerolog.Logger) *Catalog {
	return &Catalog{
		source: source,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Build loads the tree and derives index, adjacency, rankings, and
// candidates, then atomically publishes the new snapshot. Concurrent Build
// calls serialize; the last successful one wins.
func (c *Catalog) Build(ctx context.Context) error {
	start := time.Now()

	root, err := c.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}

	idx, err := BuildIndex(root)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	adjacency, err := BuildAdjacency(idx)
	if err != nil {
		return fmt.Errorf("build adjacency: %w", err)
	}

	rankings := ExpandProximity(adjacency)
	candidates := BuildCandidates(idx, rankings)

	c.mu.Lock()
	c.version++
	c.snapshot = &Snapshot{
		Index:      idx,
		Adjacency:  adjacency,
		Rankings:   rankings,
		Candidates: candidates,
		Version:    c.version,
		BuiltAt:    time.Now(),
	}
	version := c.version
	c.mu.Unlock()

	c.logger.Info().
		Int("version", version).
		Int("topics", len(idx.TopicOrder)).
		Int("subtopics", len(adjacency)).
		Int("exercises", len(idx.Ancestry)).
		Dur("elapsed", time.Since(start)).
		Msg("catalog built")

	return nil
}

// Invalidate drops the current snapshot. Subsequent Snapshot calls fail
// with ErrNotBuilt until Build succeeds again.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()

	c.logger.Info().Msg("catalog invalidated")
}

// Snapshot returns the current snapshot, or ErrNotBuilt when none is
// published.
func (c *Catalog) Snapshot() (*Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return nil, ErrNotBuilt
	}
	return c.snapshot, nil
}

// Version returns the published snapshot version, 0 when none is built.
func (c *Catalog) Version() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return 0
	}
	return c.snapshot.Version
}
