// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

// NodeKind classifies a node in the topic tree.
type NodeKind string

const (
	// KindTopic is a top-level subject area (e.g. "math").
	KindTopic NodeKind = "Topic"
	// KindSubtopic is a course inside a topic (e.g. "early-math").
	KindSubtopic NodeKind = "Subtopic"
	// KindExercise is leaf exercise content.
	KindExercise NodeKind = "Exercise"
	// KindVideo is leaf video content.
	KindVideo NodeKind = "Video"
	// KindContent is other leaf content (articles, documents).
	KindContent NodeKind = "Content"
)

// Container reports whether nodes of this kind carry children.
func (k NodeKind) Container() bool {
	return k == KindTopic || k == KindSubtopic
}

// Valid reports whether the kind is one of the known node kinds.
func (k NodeKind) Valid() bool {
	switch k {
	case KindTopic, KindSubtopic, KindExercise, KindVideo, KindContent:
		return true
	default:
		return false
	}
}

// Node is a node of the topic tree as provided by the tree source.
//
// The tree is three levels deep for subject content (topic -> subtopic ->
// exercise); deeper nested exercise levels are tolerated and attributed to
// the nearest enclosing subtopic. Children is present iff the kind is a
// container kind.
type Node struct {
	// ID is the unique node identifier (e.g. "early-math").
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Kind classifies the node.
	Kind NodeKind `json:"kind"`

	// Path is the canonical slug path from the root.
	Path string `json:"path"`

	// Description is the display description.
	Description string `json:"description"`

	// Parent is the parent node ID (empty for the root).
	Parent string `json:"parent"`

	// Prerequisites lists exercise IDs that should be mastered first.
	// Only set on exercise nodes.
	Prerequisites []string `json:"prerequisites,omitempty"`

	// Children is the ordered child sequence. Present iff Kind is a
	// container kind.
	Children []Node `json:"children,omitempty"`
}

// Metadata is the flattened per-node projection kept in the index.
type Metadata struct {
	// ID is the node identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Kind classifies the node.
	Kind NodeKind `json:"kind"`

	// Path is the canonical slug path.
	Path string `json:"path"`

	// Description is the display description.
	Description string `json:"description"`

	// Parent is the parent node ID.
	Parent string `json:"parent"`

	// ChildIDs lists child node IDs in tree order. Only set for
	// container kinds.
	ChildIDs []string `json:"child_ids,omitempty"`
}

// Ancestry records the enclosing subtopic and topic for one exercise.
// Built once from the tree; immutable for the snapshot's lifetime.
type Ancestry struct {
	// SubtopicID is the nearest enclosing subtopic.
	SubtopicID string `json:"subtopic_id"`

	// TopicID is the enclosing topic.
	TopicID string `json:"topic_id"`

	// SubtopicTitle is the enclosing subtopic's display title.
	SubtopicTitle string `json:"subtopic_title"`

	// TopicTitle is the enclosing topic's display title.
	TopicTitle string `json:"topic_title"`

	// Kind is the exercise node's kind.
	Kind NodeKind `json:"kind"`

	// Title is the exercise's display title.
	Title string `json:"title"`

	// Description is the exercise's display description.
	Description string `json:"description"`

	// Prerequisites lists exercise IDs declared as prerequisites.
	Prerequisites []string `json:"prerequisites,omitempty"`
}

// NeighborTier classifies a structural neighbor of a subtopic.
type NeighborTier int

const (
	// TierLocal marks a sibling subtopic within the same topic.
	TierLocal NeighborTier = iota
	// TierBoundary marks the first/last subtopic of an adjacent topic.
	TierBoundary
)

// String returns a human-readable tier name.
func (t NeighborTier) String() string {
	switch t {
	case TierLocal:
		return "local"
	case TierBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// SubtopicRef points at a neighboring subtopic together with the tier of
// the hop that reaches it.
type SubtopicRef struct {
	// ID is the neighbor subtopic's node ID.
	ID string `json:"id"`

	// Tier is local for a sibling hop, boundary for a topic-crossing hop.
	Tier NeighborTier `json:"tier"`
}

// AdjacencyEntry holds the immediate left/right structural neighbors of a
// subtopic. Either side is nil at the ends of the global topic sequence.
type AdjacencyEntry struct {
	Left  *SubtopicRef `json:"left,omitempty"`
	Right *SubtopicRef `json:"right,omitempty"`
}

// ProximityTier classifies how close a ranked subtopic is to the subject
// subtopic.
type ProximityTier int

const (
	// TierNear covers the subtopic itself and everything reached without
	// crossing a topic boundary.
	TierNear ProximityTier = iota
	// TierFar covers everything reached only after crossing into another
	// topic; once a walk goes far it stays far.
	TierFar
)

// String returns a human-readable tier name.
func (t ProximityTier) String() string {
	switch t {
	case TierNear:
		return "near"
	case TierFar:
		return "far"
	default:
		return "unknown"
	}
}

// RankedSubtopic is one entry of a proximity ranking.
type RankedSubtopic struct {
	// ID is the related subtopic's node ID.
	ID string `json:"id"`

	// Tier is the proximity classification relative to the subject.
	Tier ProximityTier `json:"tier"`
}

// Ranking is the full ordering of subtopics by non-decreasing structural
// distance from one subject subtopic. The subject itself is always at
// position 0; all near entries precede all far entries.
type Ranking []RankedSubtopic
