// Package model defines core types for keyscout: bindings (key-to-action
// mappings from the host window manager), failed searches, and insights
// (mined candidate dictionary edits).
package model

import (
	"strings"
	"time"
)

// Binding is one key-combination-to-action mapping supplied by the host
// config collaborator. It is read-only to the search core.
type Binding struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Command     string `json:"command"`
	SearchText  string `json:"search_text,omitempty"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

// ID returns the stable identifier used for usage tracking and selection
// correlation: "key:description".
func (b Binding) ID() string {
	return b.Key + ":" + b.Description
}

// FullText returns the lowercase concatenation of description, command, and
// key. This is the tier-1 match target for the scorer.
func (b Binding) FullText() string {
	return strings.ToLower(b.Description + " " + b.Command + " " + b.Key)
}

// PatternType classifies a mined insight. It is a closed set: typo
// corrections, synonym mappings, and intent patterns.
type PatternType string

const (
	PatternTypo    PatternType = "typo"
	PatternSynonym PatternType = "synonym"
	PatternIntent  PatternType = "intent"
)

// PatternTypes lists all valid pattern types in display order.
var PatternTypes = []PatternType{PatternTypo, PatternSynonym, PatternIntent}

// Valid reports whether p is one of the known pattern types.
func (p PatternType) Valid() bool {
	switch p {
	case PatternTypo, PatternSynonym, PatternIntent:
		return true
	}
	return false
}

// Feedback is the user's verdict on the suggestions shown for a search.
type Feedback string

const (
	FeedbackHelpful    Feedback = "helpful"
	FeedbackNotHelpful Feedback = "not_helpful"
	FeedbackIgnore     Feedback = "ignore"
)

// Valid reports whether f is one of the known feedback values.
func (f Feedback) Valid() bool {
	switch f {
	case FeedbackHelpful, FeedbackNotHelpful, FeedbackIgnore:
		return true
	}
	return false
}

// FailedSearch records one search event that returned zero or few results.
// UserSelected and UserFeedback are filled in later if a follow-up event
// correlates to the same normalized query within the selection window.
type FailedSearch struct {
	Query            string    `json:"query"`
	Timestamp        time.Time `json:"timestamp"`
	ResultCount      int       `json:"result_count"`
	SuggestedMatches []string  `json:"suggested_matches,omitempty"`
	UserSelected     string    `json:"user_selected,omitempty"`
	UserFeedback     Feedback  `json:"user_feedback,omitempty"`
	SessionID        string    `json:"session_id,omitempty"`
}

// Insight is a mined, confidence-scored candidate dictionary edit. Identity
// is (PatternType, OriginalTerm, SuggestedMapping); re-observation merges
// into the existing record instead of duplicating.
type Insight struct {
	PatternType       PatternType `json:"pattern_type"`
	OriginalTerm      string      `json:"original_term"`
	SuggestedMapping  string      `json:"suggested_mapping"`
	ConfidenceScore   float64     `json:"confidence_score"`
	EvidenceCount     int         `json:"evidence_count"`
	FirstSeen         time.Time   `json:"first_seen"`
	LastSeen          time.Time   `json:"last_seen"`
	UserConfirmations int         `json:"user_confirmations"`
	UserRejections    int         `json:"user_rejections"`
}

// InsightKey is the identity tuple for insight deduplication.
type InsightKey struct {
	PatternType      PatternType
	OriginalTerm     string
	SuggestedMapping string
}

// Key returns the identity tuple of the insight.
func (i Insight) Key() InsightKey {
	return InsightKey{i.PatternType, i.OriginalTerm, i.SuggestedMapping}
}
