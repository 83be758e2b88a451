// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

import "errors"

var (
	// ErrMalformedTree is returned when the topic tree violates the shape
	// contract (a container node without children, an unknown kind, a
	// missing ID). Fatal for the tree snapshot; never absorbed silently.
	ErrMalformedTree = errors.New("malformed topic tree")

	// ErrUnavailable is returned when the tree source cannot be read.
	// Retry policy belongs to the caller.
	ErrUnavailable = errors.New("topic tree source unavailable")

	// ErrNotBuilt is returned when a snapshot is requested before Build
	// or after Invalidate.
	ErrNotBuilt = errors.New("topic catalog not built")
)
