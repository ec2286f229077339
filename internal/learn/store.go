// Package learn implements the self-improvement loop: failed searches and
// user selections are recorded, mined for candidate dictionary edits
// (insights), and applied back to the dictionaries once confidence and
// evidence thresholds are met.
//
// Persistence is write-through to a single JSON document. Save errors are
// logged and swallowed: search must stay usable even when the learning
// store is unwritable, so nothing in this package fails its caller.
package learn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/avoss/keyscout/internal/dict"
	"github.com/avoss/keyscout/internal/model"
	"github.com/avoss/keyscout/internal/similarity"
)

// DefaultFileName is the learning document name inside the data directory.
const DefaultFileName = "learning_data.json"

// storeVersion is written into the learning document.
const storeVersion = "1.0"

// Default thresholds and caps for the learning loop.
const (
	DefaultMaxFailedSearches  = 1000
	DefaultMaxInsights        = 500
	DefaultAutoApplyThreshold = 0.8
	DefaultMinEvidenceCount   = 2
	DefaultTypoSimilarity     = 0.6
	DefaultSynonymSimilarity  = 0.4
	DefaultMinConfidence      = 0.3
	DefaultMaxAgeDays         = 30
)

// confidenceStep is how much one repeated observation nudges an insight's
// confidence, capped at 1.0.
const confidenceStep = 0.1

// Config holds the tunable thresholds of the learning loop. It is persisted
// inside the learning document so thresholds survive restarts.
type Config struct {
	MaxFailedSearches  int     `json:"max_failed_searches"`
	MaxInsights        int     `json:"max_insights"`
	AutoApplyThreshold float64 `json:"auto_apply_threshold"`
	MinEvidenceCount   int     `json:"min_evidence_count"`
	TypoSimilarity     float64 `json:"typo_similarity"`
	SynonymSimilarity  float64 `json:"synonym_similarity"`
	MinConfidence      float64 `json:"min_confidence"`
}

// DefaultConfig returns the default learning thresholds.
func DefaultConfig() Config {
	return Config{
		MaxFailedSearches:  DefaultMaxFailedSearches,
		MaxInsights:        DefaultMaxInsights,
		AutoApplyThreshold: DefaultAutoApplyThreshold,
		MinEvidenceCount:   DefaultMinEvidenceCount,
		TypoSimilarity:     DefaultTypoSimilarity,
		SynonymSimilarity:  DefaultSynonymSimilarity,
		MinConfidence:      DefaultMinConfidence,
	}
}

// fillDefaults replaces zero values with defaults so documents written by
// older versions keep working.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.MaxFailedSearches <= 0 {
		c.MaxFailedSearches = d.MaxFailedSearches
	}
	if c.MaxInsights <= 0 {
		c.MaxInsights = d.MaxInsights
	}
	if c.AutoApplyThreshold <= 0 {
		c.AutoApplyThreshold = d.AutoApplyThreshold
	}
	if c.MinEvidenceCount <= 0 {
		c.MinEvidenceCount = d.MinEvidenceCount
	}
	if c.TypoSimilarity <= 0 {
		c.TypoSimilarity = d.TypoSimilarity
	}
	if c.SynonymSimilarity <= 0 {
		c.SynonymSimilarity = d.SynonymSimilarity
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = d.MinConfidence
	}
}

// document is the on-disk shape of the learning data file.
type document struct {
	FailedSearches []model.FailedSearch `json:"failed_searches"`
	Insights       []model.Insight      `json:"insights"`
	Config         Config               `json:"config"`
	LastUpdated    int64                `json:"last_updated"`
	Version        string               `json:"version"`
}

// Store holds failed searches and mined insights, persisting write-through
// to a JSON document. It reads the dictionary store during mining and
// writes to it when applying high-confidence insights.
type Store struct {
	FailedSearches []model.FailedSearch
	Insights       []model.Insight
	Config         Config

	// Now supplies the clock, overridable for deterministic tests of the
	// selection window and cleanup cutoffs.
	Now func() time.Time

	// Log receives diagnostics for swallowed persistence errors.
	Log io.Writer

	path string
	dict *dict.Store
	sim  similarity.Func
}

// Open loads the learning document at path. Missing or corrupt files fall
// back to an empty store with default config; the load never fails.
func Open(path string, d *dict.Store, sim similarity.Func) *Store {
	s := &Store{
		Config: DefaultConfig(),
		Now:    time.Now,
		Log:    os.Stderr,
		path:   path,
		dict:   d,
		sim:    sim,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.warnf("could not read learning data: %v", err)
		}
		return s
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.warnf("could not parse learning data: %v", err)
		return s
	}
	s.FailedSearches = doc.FailedSearches
	s.Insights = doc.Insights
	s.Config = doc.Config
	s.Config.fillDefaults()
	return s
}

// save writes the document back to disk. Errors are logged, never returned:
// a failed save costs this round of learning, not the search.
func (s *Store) save() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.warnf("could not create data directory: %v", err)
		return
	}
	doc := document{
		FailedSearches: s.FailedSearches,
		Insights:       s.Insights,
		Config:         s.Config,
		LastUpdated:    s.Now().Unix(),
		Version:        storeVersion,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.warnf("could not marshal learning data: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.warnf("could not save learning data: %v", err)
	}
}

func (s *Store) warnf(format string, args ...any) {
	if s.Log == nil {
		return
	}
	fmt.Fprintf(s.Log, "keyscout: warning: "+format+"\n", args...)
}
