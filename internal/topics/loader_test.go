// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package topics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTreeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write tree file: %v", err)
	}
	return path
}

func TestFileSource_Load(t *testing.T) {
	path := writeTreeFile(t, `{
		"id": "root",
		"kind": "Topic",
		"children": [
			{
				"id": "math", "title": "Math", "kind": "Topic",
				"children": [
					{
						"id": "early-math", "title": "Early math", "kind": "Subtopic", "parent": "math",
						"children": [
							{"id": "addition_1", "title": "Addition 1", "kind": "Exercise", "parent": "early-math"}
						]
					}
				]
			}
		]
	}`)

	root, err := FileSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].ID != "math" {
		t.Errorf("Unexpected root children: %+v", root.Children)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	source := FileSource{Path: filepath.Join(t.TempDir(), "absent.json")}

	_, err := source.Load(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable for missing file, got %v", err)
	}
}

func TestFileSource_InvalidJSON(t *testing.T) {
	path := writeTreeFile(t, `{"id": "root", "children": [`)

	_, err := FileSource{Path: path}.Load(context.Background())
	if !errors.Is(err, ErrMalformedTree) {
		t.Errorf("Expected ErrMalformedTree for invalid JSON, got %v", err)
	}
}

func TestFileSource_ShapeViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			"container without children",
			`{"id": "root", "kind": "Topic", "children": [{"id": "math", "kind": "Topic"}]}`,
		},
		{
			"unknown kind",
			`{"id": "root", "kind": "Topic", "children": [{"id": "x", "kind": "Mystery"}]}`,
		},
		{
			"empty id",
			`{"id": "root", "kind": "Topic", "children": [{"kind": "Exercise"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTreeFile(t, tt.body)
			_, err := FileSource{Path: path}.Load(context.Background())
			if !errors.Is(err, ErrMalformedTree) {
				t.Errorf("Expected ErrMalformedTree, got %v", err)
			}
		})
	}
}

func TestFileSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FileSource{Path: "irrelevant.json"}.Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestStaticSource(t *testing.T) {
	root, err := StaticSource{Root: mathScienceTree()}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if root.ID != "root" {
		t.Errorf("Unexpected root ID %q", root.ID)
	}

	_, err = StaticSource{}.Load(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable for empty static source, got %v", err)
	}
}
