package learn

import (
	"strings"
	"time"

	"github.com/avoss/keyscout/internal/model"
)

// SelectionWindow bounds how long after a failed search a selection or
// feedback event can still correlate to it.
const SelectionWindow = 5 * time.Minute

// NormalizeQuery lowercases and trims a raw query for correlation.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// RecordSearch appends a failed-search record, evicts the oldest entries
// past the configured cap (plain FIFO), and mines the new record for
// insights. Empty queries are ignored.
func (s *Store) RecordSearch(query string, resultCount int, suggestedMatches []string, sessionID string) {
	q := NormalizeQuery(query)
	if q == "" {
		return
	}

	fs := model.FailedSearch{
		Query:            q,
		Timestamp:        s.Now(),
		ResultCount:      resultCount,
		SuggestedMatches: suggestedMatches,
		SessionID:        sessionID,
	}
	s.FailedSearches = append(s.FailedSearches, fs)
	if max := s.Config.MaxFailedSearches; len(s.FailedSearches) > max {
		s.FailedSearches = s.FailedSearches[len(s.FailedSearches)-max:]
	}

	s.mineFailedSearch(fs)
	s.save()
}

// RecordSelection correlates a user selection with the most recent failed
// search for the same normalized query, provided it has no selection yet
// and happened within the selection window. Uncorrelated selections are
// silently dropped; stale signals must not produce insights.
func (s *Store) RecordSelection(query, selectedBindingID string) {
	q := NormalizeQuery(query)
	if q == "" || selectedBindingID == "" {
		return
	}

	idx := s.findRecent(q, func(fs model.FailedSearch) bool { return fs.UserSelected == "" })
	if idx < 0 {
		return
	}
	s.FailedSearches[idx].UserSelected = selectedBindingID
	s.mineSelection(q, selectedBindingID)
	s.save()
}

// RecordFeedback correlates user feedback with the most recent failed
// search for the same normalized query, under the same window rule as
// RecordSelection. Helpful feedback confirms the insights mined from the
// query; not_helpful rejects them.
func (s *Store) RecordFeedback(query string, feedback model.Feedback) {
	q := NormalizeQuery(query)
	if q == "" || !feedback.Valid() {
		return
	}

	idx := s.findRecent(q, func(fs model.FailedSearch) bool { return fs.UserFeedback == "" })
	if idx < 0 {
		return
	}
	s.FailedSearches[idx].UserFeedback = feedback

	switch feedback {
	case model.FeedbackHelpful:
		s.adjustInsights(q, true)
	case model.FeedbackNotHelpful:
		s.adjustInsights(q, false)
	}
	s.save()
}

// findRecent returns the index of the most recent failed search matching
// query, passing the unset check, with a timestamp within the selection
// window of now. Returns -1 when nothing correlates.
func (s *Store) findRecent(query string, unset func(model.FailedSearch) bool) int {
	now := s.Now()
	for i := len(s.FailedSearches) - 1; i >= 0; i-- {
		fs := s.FailedSearches[i]
		if fs.Query != query || !unset(fs) {
			continue
		}
		if now.Sub(fs.Timestamp) > SelectionWindow {
			continue
		}
		return i
	}
	return -1
}

// adjustInsights applies user feedback to every insight whose original term
// is the given query: confirmations nudge confidence up one step,
// rejections nudge it down.
func (s *Store) adjustInsights(query string, confirmed bool) {
	for i := range s.Insights {
		if s.Insights[i].OriginalTerm != query {
			continue
		}
		if confirmed {
			s.Insights[i].UserConfirmations++
			s.Insights[i].ConfidenceScore = capConfidence(s.Insights[i].ConfidenceScore + confidenceStep)
		} else {
			s.Insights[i].UserRejections++
			s.Insights[i].ConfidenceScore -= confidenceStep
			if s.Insights[i].ConfidenceScore < 0 {
				s.Insights[i].ConfidenceScore = 0
			}
		}
	}
}

func capConfidence(c float64) float64 {
	if c > 1.0 {
		return 1.0
	}
	return c
}
