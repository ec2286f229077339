// Package engine wires the search pipeline and the learning loop behind the
// surface the launcher/UI collaborator uses: one search call and a handful
// of event calls. All learning work happens inline during those calls;
// there are no background jobs.
package engine

import (
	"path/filepath"
	"sort"

	"github.com/avoss/keyscout/internal/analytics"
	"github.com/avoss/keyscout/internal/dict"
	"github.com/avoss/keyscout/internal/learn"
	"github.com/avoss/keyscout/internal/model"
	"github.com/avoss/keyscout/internal/search"
	"github.com/avoss/keyscout/internal/similarity"
)

// Suggestion defaults for near-miss matching on failed searches.
const (
	closeMatchCount  = 3
	closeMatchCutoff = 0.3
)

// Result pairs a binding with its match score.
type Result struct {
	Binding model.Binding `json:"binding"`
	Score   float64       `json:"score"`
}

// Engine owns the durable stores and exposes the search and learning API.
type Engine struct {
	Dict      *dict.Store
	Learn     *learn.Store
	Analytics *analytics.Store
	Sim       similarity.Func
}

// Open loads all three stores from dataDir. Loading is lenient end to end:
// a missing or corrupt store never fails the engine. Dictionary parse
// errors are reported through the learning store's log.
func Open(dataDir string) *Engine {
	sim := similarity.Func(similarity.Ratio)
	d, err := dict.Load(filepath.Join(dataDir, dict.DefaultFileName))
	l := learn.Open(filepath.Join(dataDir, learn.DefaultFileName), d, sim)
	if err != nil {
		l.Log.Write([]byte("keyscout: warning: " + err.Error() + "\n"))
	}
	return &Engine{
		Dict:      d,
		Learn:     l,
		Analytics: analytics.Open(filepath.Join(dataDir, analytics.DefaultFileName)),
		Sim:       sim,
	}
}

// Search ranks bindings against a free-text query. The query is normalized
// and expanded through the dictionaries; each candidate additionally gets
// the terms of intents whose trigger phrases match its own text. Only
// bindings with a positive score are returned, ordered by score descending
// with ties keeping enumeration order.
func (e *Engine) Search(query string, bindings []model.Binding) []Result {
	tokens := search.Normalize(query)
	if len(tokens) == 0 {
		return nil
	}

	exp := &search.Expander{Dict: e.Dict}
	terms := exp.Expand(tokens)
	sc := &search.Scorer{Sim: e.Sim}

	have := map[string]bool{}
	for _, t := range terms {
		have[t] = true
	}

	var results []Result
	for _, b := range bindings {
		candTerms := terms
		for _, extra := range exp.IntentTerms(b.Description + " " + b.Command) {
			if have[extra] {
				continue
			}
			if len(candTerms) == len(terms) {
				candTerms = append([]string{}, terms...)
			}
			candTerms = append(candTerms, extra)
		}
		if score := sc.Score(b, candTerms); score > 0 {
			results = append(results, Result{Binding: b, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// SuggestClosestMatches returns up to three binding descriptions similar to
// a failed query. These feed RecordSearchOutcome as near-miss evidence for
// the synonym miner.
func (e *Engine) SuggestClosestMatches(query string, bindings []model.Binding) []string {
	descriptions := make([]string, 0, len(bindings))
	for _, b := range bindings {
		descriptions = append(descriptions, b.Description)
	}
	q := learn.NormalizeQuery(query)
	return similarity.Texts(similarity.CloseMatches(q, descriptions, closeMatchCount, closeMatchCutoff, e.Sim))
}

// RecordSearchOutcome reports a search result count to the learning loop
// and counts the term in usage analytics. Never fails the caller.
func (e *Engine) RecordSearchOutcome(query string, resultCount int, suggestedMatches []string, sessionID string) {
	e.Analytics.TrackSearchTerm(learn.NormalizeQuery(query))
	e.Learn.RecordSearch(query, resultCount, suggestedMatches, sessionID)
}

// RecordUserSelection correlates a selection with a recent failed search
// and counts binding usage.
func (e *Engine) RecordUserSelection(query, selectedBindingID string) {
	e.Learn.RecordSelection(query, selectedBindingID)
	e.Analytics.TrackBindingID(selectedBindingID)
}

// RecordFeedback correlates user feedback with a recent failed search.
func (e *Engine) RecordFeedback(query string, feedback model.Feedback) {
	e.Learn.RecordFeedback(query, feedback)
}

// ApplyHighConfidenceSuggestions commits qualifying insights to the
// dictionaries and returns how many were applied.
func (e *Engine) ApplyHighConfidenceSuggestions() int {
	return e.Learn.ApplyHighConfidenceSuggestions()
}

// LearningStats returns summary counts for display.
func (e *Engine) LearningStats() learn.Stats {
	return e.Learn.Stats()
}

// CleanupOldData ages out old learning records and returns how many were
// removed.
func (e *Engine) CleanupOldData(maxAgeDays int) int {
	return e.Learn.CleanupOldData(maxAgeDays)
}

// IndexBindings fills in each binding's SearchText when the host config
// collaborator did not precompute one.
func (e *Engine) IndexBindings(bindings []model.Binding) {
	for i := range bindings {
		if bindings[i].SearchText == "" {
			bindings[i].SearchText = search.BuildSearchText(bindings[i], e.Dict)
		}
	}
}
