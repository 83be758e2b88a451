// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package recommend

// Item is one Resume or Next recommendation resolved to display metadata.
type Item struct {
	// ID is the recommended content node's ID.
	ID string `json:"id"`

	// Title is the content's display title.
	Title string `json:"title"`

	// Kind is the content kind (Exercise, Video, Content).
	Kind string `json:"kind"`

	// SubtopicID is the enclosing subtopic.
	SubtopicID string `json:"subtopic_id"`

	// SubtopicTitle is the enclosing subtopic's display title.
	SubtopicTitle string `json:"subtopic_title"`

	// TopicID is the enclosing top-level topic.
	TopicID string `json:"topic_id"`

	// TopicTitle is the enclosing topic's display title.
	TopicTitle string `json:"topic_title"`
}

// TopicSummary is the display shape of a suggested subtopic.
type TopicSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// InterestTopic names the already-visited subtopic a suggestion stems from.
type InterestTopic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Suggestion is one Explore recommendation. Both fields are nil when the
// sampled interest subtopic produced no unvisited candidate; the empty
// suggestion is still emitted so consumers see which interests went dry.
type Suggestion struct {
	// SuggestedTopic is the unvisited subtopic worth exploring.
	SuggestedTopic *TopicSummary `json:"suggested_topic,omitempty"`

	// InterestTopic is the visited subtopic the suggestion was derived from.
	InterestTopic *InterestTopic `json:"interest_topic,omitempty"`
}
