package search

import (
	"strings"

	"github.com/avoss/keyscout/internal/model"
	"github.com/avoss/keyscout/internal/similarity"
)

// Scoring weights for the tiered match function. Literal substring matches
// in the curated search text outrank raw full-text and fuzzy matches.
const (
	fullTextWeight   = 10.0
	searchTextWeight = 8.0
	wordFullWeight   = 3.0
	wordSearchWeight = 2.0
	fuzzyWeight      = 5.0
	fuzzyCutoff      = 0.8
	minWordLen       = 3
)

// Scorer scores a binding against an expanded term set. A zero score means
// no match. Tiers are additive with no early exit.
type Scorer struct {
	Sim similarity.Func
}

// Score computes the weighted multi-tier match score of b against terms:
//
//   - a term contained in the binding's full text scores +10, else contained
//     in the precomputed search text scores +8;
//   - each word (length > 2) of a multi-word term scores +3 in full text or
//     +2 in search text;
//   - a term whose closest full-text word reaches 0.8 similarity scores a
//     flat +5, at most once per term.
func (sc *Scorer) Score(b model.Binding, terms []string) float64 {
	fullText := b.FullText()
	searchText := strings.ToLower(b.SearchText)
	fullWords := strings.Fields(fullText)

	var score float64
	for _, term := range terms {
		if strings.Contains(fullText, term) {
			score += fullTextWeight
		} else if strings.Contains(searchText, term) {
			score += searchTextWeight
		}

		words := strings.Fields(term)
		if len(words) > 1 {
			for _, w := range words {
				if len(w) < minWordLen {
					continue
				}
				if strings.Contains(fullText, w) {
					score += wordFullWeight
				} else if strings.Contains(searchText, w) {
					score += wordSearchWeight
				}
			}
		}

		if sc.fuzzyMatches(term, fullWords) {
			score += fuzzyWeight
		}
	}
	return score
}

// fuzzyMatches reports whether term's closest word in words reaches the
// fuzzy cutoff.
func (sc *Scorer) fuzzyMatches(term string, words []string) bool {
	for _, w := range words {
		if sc.Sim(term, w) >= fuzzyCutoff {
			return true
		}
	}
	return false
}
