// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

import "fmt"

// Index is the flattened, read-only projection of one topic tree snapshot.
//
// It answers two lookups the strategies need constantly: exercise ID to
// ancestry (which subtopic/topic encloses it) and node ID to display
// metadata. It also keeps the structural order of topics and subtopics,
// which the adjacency builder walks.
type Index struct {
	// Ancestry maps exercise ID to its enclosing subtopic/topic metadata.
	Ancestry map[string]Ancestry

	// Nodes maps every node ID to its flattened metadata.
	Nodes map[string]Metadata

	// TopicOrder lists topic IDs in tree order.
	TopicOrder []string

	// SubtopicOrder maps topic ID to its subtopic IDs in tree order.
	SubtopicOrder map[string][]string

	// Exercises maps subtopic ID to its exercise IDs in tree order,
	// including exercises nested below other exercises.
	Exercises map[string][]string
}

// BuildIndex flattens a validated tree into lookup structures.
// A container node without children fails fast with ErrMalformedTree.
func BuildIndex(root *Node) (*Index, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrMalformedTree)
	}

	idx := &Index{
		Ancestry:      make(map[string]Ancestry),
		Nodes:         make(map[string]Metadata),
		SubtopicOrder: make(map[string][]string),
		Exercises:     make(map[string][]string),
	}

	for t := range root.Children {
		topic := &root.Children[t]
		if topic.Kind.Container() && topic.Children == nil {
			return nil, fmt.Errorf("%w: topic %q is missing children", ErrMalformedTree, topic.ID)
		}

		idx.TopicOrder = append(idx.TopicOrder, topic.ID)
		idx.addNode(topic)

		for s := range topic.Children {
			subtopic := &topic.Children[s]
			if subtopic.Kind.Container() && subtopic.Children == nil {
				return nil, fmt.Errorf("%w: subtopic %q is missing children", ErrMalformedTree, subtopic.ID)
			}

			idx.SubtopicOrder[topic.ID] = append(idx.SubtopicOrder[topic.ID], subtopic.ID)
			idx.addNode(subtopic)

			for c := range subtopic.Children {
				idx.addContent(&subtopic.Children[c], topic, subtopic)
			}
		}
	}

	return idx, nil
}

// addContent records a leaf content node under its enclosing subtopic and
// recurses into nested exercise levels, attributing every descendant to the
// same subtopic and topic.
func (idx *Index) addContent(n, topic, subtopic *Node) {
	idx.addNode(n)

	idx.Ancestry[n.ID] = Ancestry{
		SubtopicID:    subtopic.ID,
		TopicID:       topic.ID,
		SubtopicTitle: subtopic.Title,
		TopicTitle:    topic.Title,
		Kind:          n.Kind,
		Title:         n.Title,
		Description:   n.Description,
		Prerequisites: n.Prerequisites,
	}

	if n.Kind == KindExercise {
		idx.Exercises[subtopic.ID] = append(idx.Exercises[subtopic.ID], n.ID)
	}

	for c := range n.Children {
		idx.addContent(&n.Children[c], topic, subtopic)
	}
}

func (idx *Index) addNode(n *Node) {
	meta := Metadata{
		ID:          n.ID,
		Title:       n.Title,
		Kind:        n.Kind,
		Path:        n.Path,
		Description: n.Description,
		Parent:      n.Parent,
	}

	if n.Kind.Container() {
		meta.ChildIDs = make([]string, 0, len(n.Children))
		for i := range n.Children {
			meta.ChildIDs = append(meta.ChildIDs, n.Children[i].ID)
		}
	}

	idx.Nodes[n.ID] = meta
}

// FirstExercises returns up to n exercise IDs of the given subtopic in tree
// order. Returns all of them when n is negative.
func (idx *Index) FirstExercises(subtopicID string, n int) []string {
	exercises := idx.Exercises[subtopicID]
	if n < 0 || n >= len(exercises) {
		return exercises
	}
	return exercises[:n]
}
