// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Source provides topic tree snapshots. Implemented by FileSource for the
// on-disk topics.json and by StaticSource in tests.
type Source interface {
	// Load reads and parses one tree snapshot.
	Load(ctx context.Context) (*Node, error)
}

// FileSource loads the topic tree from a JSON file.
type FileSource struct {
	// Path is the location of the topics JSON file.
	Path string
}

// Load implements Source. Read failures are reported as ErrUnavailable;
// parse failures and shape violations as ErrMalformedTree.
func (s FileSource) Load(ctx context.Context) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, s.Path, err)
	}

	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrMalformedTree, s.Path, err)
	}

	if err := validateNode(&root, true); err != nil {
		return nil, err
	}

	return &root, nil
}

// StaticSource serves a fixed in-memory tree. Used by tests and seed mode.
type StaticSource struct {
	Root *Node
}

// Load implements Source.
func (s StaticSource) Load(ctx context.Context) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Root == nil {
		return nil, fmt.Errorf("%w: static source has no tree", ErrUnavailable)
	}
	if err := validateNode(s.Root, true); err != nil {
		return nil, err
	}
	return s.Root, nil
}

// validateNode checks the tagged-variant shape contract recursively:
// container kinds carry children, leaf kinds do not, and every node has an
// ID and a known kind. The root is exempt from the kind check (tree sources
// commonly use a synthetic root kind).
func validateNode(n *Node, isRoot bool) error {
	if n.ID == "" && !isRoot {
		return fmt.Errorf("%w: node with empty id (parent %q)", ErrMalformedTree, n.Parent)
	}

	if !isRoot && !n.Kind.Valid() {
		return fmt.Errorf("%w: node %q has unknown kind %q", ErrMalformedTree, n.ID, n.Kind)
	}

	if !isRoot && n.Kind.Container() && n.Children == nil {
		return fmt.Errorf("%w: %s %q is missing children", ErrMalformedTree, n.Kind, n.ID)
	}

	for i := range n.Children {
		if err := validateNode(&n.Children[i], false); err != nil {
			return err
		}
	}

	return nil
}
