// Package dict holds the search dictionaries: synonyms, intents, and typo
// corrections. The three mappings are persisted together as a single JSON
// document, loaded leniently (missing or corrupt files fall back to
// defaults) and written through after each mutation.
package dict

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultFileName is the dictionary document name inside the data directory.
const DefaultFileName = "search_dictionaries.json"

// Store holds the three dictionary mappings. Synonym lookup is symmetric in
// use but asymmetric in storage: a term may appear as a key or inside some
// key's value list. Typos map one misspelling to one canonical correction.
type Store struct {
	Synonyms map[string][]string `json:"synonyms"`
	Intents  map[string][]string `json:"intents"`
	Typos    map[string]string   `json:"typos"`

	path string
}

// defaultSynonyms seeds a brand-new store so search is useful before any
// learning has happened.
func defaultSynonyms() map[string][]string {
	return map[string][]string{
		"screenshot": {"snapshot", "capture", "grab"},
		"volume":     {"sound", "audio"},
		"brightness": {"bright", "dim"},
		"browser":    {"web", "internet"},
	}
}

// Load reads the dictionary document at path. A missing file yields a store
// seeded with default synonyms; a corrupt file yields an empty store and the
// parse error for the caller to log. Neither case fails the caller.
func Load(path string) (*Store, error) {
	s := &Store{
		Synonyms: map[string][]string{},
		Intents:  map[string][]string{},
		Typos:    map[string]string{},
		path:     path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.Synonyms = defaultSynonyms()
			return s, nil
		}
		return s, fmt.Errorf("reading dictionaries: %w", err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return s, fmt.Errorf("parsing dictionaries: %w", err)
	}
	if s.Synonyms == nil {
		s.Synonyms = map[string][]string{}
	}
	if s.Intents == nil {
		s.Intents = map[string][]string{}
	}
	if s.Typos == nil {
		s.Typos = map[string]string{}
	}
	return s, nil
}

// Save writes the dictionary document back to its load path, creating the
// parent directory as needed.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dictionaries: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing dictionaries: %w", err)
	}
	return nil
}

// Path returns the file path this store loads from and saves to.
func (s *Store) Path() string { return s.path }

// SynonymsOf returns the value list for term when term is a synonym key.
func (s *Store) SynonymsOf(term string) []string {
	return s.Synonyms[term]
}

// ReverseSynonyms returns, for every key whose value list contains term, the
// key itself and all sibling values. Keys are visited in sorted order so the
// result is deterministic.
func (s *Store) ReverseSynonyms(term string) []string {
	keys := make([]string, 0, len(s.Synonyms))
	for k := range s.Synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		vals := s.Synonyms[k]
		found := false
		for _, v := range vals {
			if v == term {
				found = true
				break
			}
		}
		if found {
			out = append(out, k)
			out = append(out, vals...)
		}
	}
	return out
}

// CorrectTypo returns the canonical correction for word, if one exists.
func (s *Store) CorrectTypo(word string) (string, bool) {
	c, ok := s.Typos[word]
	return c, ok
}

// AddSynonym appends value to key's synonym list. Returns false when the
// pair is already present or maps a term to itself.
func (s *Store) AddSynonym(key, value string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.ToLower(strings.TrimSpace(value))
	if key == "" || value == "" || key == value {
		return false
	}
	for _, v := range s.Synonyms[key] {
		if v == value {
			return false
		}
	}
	s.Synonyms[key] = append(s.Synonyms[key], value)
	return true
}

// HasSynonymKey reports whether term exists as a synonym key.
func (s *Store) HasSynonymKey(term string) bool {
	_, ok := s.Synonyms[term]
	return ok
}

// SetTypo records a misspelling-to-correction mapping. Existing entries are
// never overwritten, so manual corrections win over mined ones. Returns
// false when the entry exists already or maps a term to itself.
func (s *Store) SetTypo(misspelling, correction string) bool {
	misspelling = strings.ToLower(strings.TrimSpace(misspelling))
	correction = strings.ToLower(strings.TrimSpace(correction))
	if misspelling == "" || correction == "" || misspelling == correction {
		return false
	}
	if _, exists := s.Typos[misspelling]; exists {
		return false
	}
	s.Typos[misspelling] = correction
	return true
}

// AddIntent appends a trigger phrase to an intent label's list. Returns
// false when the pair is already present or the phrase equals the label.
func (s *Store) AddIntent(label, phrase string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if label == "" || phrase == "" || label == phrase {
		return false
	}
	for _, p := range s.Intents[label] {
		if p == phrase {
			return false
		}
	}
	s.Intents[label] = append(s.Intents[label], phrase)
	return true
}

// AllTerms returns every term present in any dictionary: synonym keys and
// values, intent labels and phrases, typo corrections. Used by the insight
// miner's typo detection. The result is deduplicated and sorted.
func (s *Store) AllTerms() []string {
	seen := map[string]bool{}
	add := func(t string) {
		if t != "" {
			seen[t] = true
		}
	}
	for k, vals := range s.Synonyms {
		add(k)
		for _, v := range vals {
			add(v)
		}
	}
	for label, phrases := range s.Intents {
		add(label)
		for _, p := range phrases {
			add(p)
		}
	}
	for _, correction := range s.Typos {
		add(correction)
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Sizes returns the entry counts of the three dictionaries.
func (s *Store) Sizes() (synonyms, intents, typos int) {
	return len(s.Synonyms), len(s.Intents), len(s.Typos)
}
