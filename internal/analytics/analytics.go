// Package analytics tracks binding usage and search-term frequency in a
// JSON document, powering popular-binding ranking and search suggestions.
package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/avoss/keyscout/internal/model"
)

// DefaultFileName is the analytics document name inside the data directory.
const DefaultFileName = "usage_analytics.json"

// popularLimit caps the derived popular_bindings list.
const popularLimit = 10

// Store accumulates usage counters. Like the learning store, persistence is
// write-through and save errors are logged, never returned.
type Store struct {
	BindingUsage    map[string]int `json:"binding_usage"`
	SearchTerms     map[string]int `json:"search_terms"`
	PopularBindings []string       `json:"popular_bindings"`
	LastUpdated     int64          `json:"last_updated"`

	// Now supplies the clock; Log receives swallowed persistence errors.
	Now func() time.Time `json:"-"`
	Log io.Writer        `json:"-"`

	path string
}

// Open loads the analytics document at path, falling back to empty counters
// on missing or corrupt files.
func Open(path string) *Store {
	s := &Store{
		BindingUsage: map[string]int{},
		SearchTerms:  map[string]int{},
		Now:          time.Now,
		Log:          os.Stderr,
		path:         path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.warnf("could not read analytics: %v", err)
		}
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		s.warnf("could not parse analytics: %v", err)
		return s
	}
	if s.BindingUsage == nil {
		s.BindingUsage = map[string]int{}
	}
	if s.SearchTerms == nil {
		s.SearchTerms = map[string]int{}
	}
	return s
}

// TrackBindingUsage counts one use of a binding and persists.
func (s *Store) TrackBindingUsage(b model.Binding) {
	s.TrackBindingID(b.ID())
}

// TrackBindingID counts one use of a binding by its id and persists.
// Callers that only hold the "key:description" id use this directly.
func (s *Store) TrackBindingID(id string) {
	if id == "" {
		return
	}
	s.BindingUsage[id]++
	s.save()
}

// TrackSearchTerm counts one occurrence of a search term and persists.
// Empty terms are ignored.
func (s *Store) TrackSearchTerm(term string) {
	if term == "" {
		return
	}
	s.SearchTerms[term]++
	s.save()
}

// UsageCount returns how often a binding has been used.
func (s *Store) UsageCount(b model.Binding) int {
	return s.BindingUsage[b.ID()]
}

// RankByPopularity returns a copy of bindings ordered by usage count,
// descending. Unused bindings keep their original relative order.
func (s *Store) RankByPopularity(bindings []model.Binding) []model.Binding {
	out := make([]model.Binding, len(bindings))
	copy(out, bindings)
	sort.SliceStable(out, func(i, j int) bool {
		return s.UsageCount(out[i]) > s.UsageCount(out[j])
	})
	return out
}

// PopularSearchTerms returns up to limit search terms used more than once,
// ordered by frequency descending then alphabetically.
func (s *Store) PopularSearchTerms(limit int) []string {
	type termCount struct {
		term  string
		count int
	}
	var terms []termCount
	for term, count := range s.SearchTerms {
		if count > 1 {
			terms = append(terms, termCount{term, count})
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].term < terms[j].term
	})
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	out := make([]string, len(terms))
	for i, tc := range terms {
		out[i] = tc.term
	}
	return out
}

// save refreshes the derived popular_bindings list and writes the document.
func (s *Store) save() {
	type usage struct {
		id    string
		count int
	}
	var ranked []usage
	for id, count := range s.BindingUsage {
		ranked = append(ranked, usage{id, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].id < ranked[j].id
	})
	if len(ranked) > popularLimit {
		ranked = ranked[:popularLimit]
	}
	s.PopularBindings = make([]string, len(ranked))
	for i, u := range ranked {
		s.PopularBindings[i] = u.id
	}
	s.LastUpdated = s.Now().Unix()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.warnf("could not create data directory: %v", err)
		return
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		s.warnf("could not marshal analytics: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.warnf("could not save analytics: %v", err)
	}
}

func (s *Store) warnf(format string, args ...any) {
	if s.Log == nil {
		return
	}
	fmt.Fprintf(s.Log, "keyscout: warning: "+format+"\n", args...)
}
