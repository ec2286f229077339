// Package similarity provides string similarity scoring used by the search
// scorer and the insight miner. The scoring function is pluggable so the
// underlying metric can change without touching miner logic.
package similarity

import (
	"github.com/agnivade/levenshtein"
)

// Func scores the similarity of two strings in [0, 1], where 1 means
// identical. Implementations must be symmetric.
type Func func(a, b string) float64

// Ratio is the default Func: normalized Levenshtein edit distance,
// 1 - distance/maxLen. Comparison is exact; callers are expected to
// lowercase their inputs first.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	return 1.0 - float64(dist)/float64(maxLen)
}

// Match pairs a candidate string with its similarity score.
type Match struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// CloseMatches returns up to n candidates scoring at least cutoff against
// target, ranked by score descending. Ties keep candidate order (stable).
func CloseMatches(target string, candidates []string, n int, cutoff float64, sim Func) []Match {
	if target == "" || len(candidates) == 0 {
		return nil
	}
	var matches []Match
	for _, c := range candidates {
		score := sim(target, c)
		if score >= cutoff {
			matches = append(matches, Match{Text: c, Score: score})
		}
	}

	// Insertion sort: result sets are small and stability matters.
	for i := 1; i < len(matches); i++ {
		key := matches[i]
		j := i - 1
		for j >= 0 && matches[j].Score < key.Score {
			matches[j+1] = matches[j]
			j--
		}
		matches[j+1] = key
	}

	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches
}

// Texts returns just the candidate strings of a match list.
func Texts(matches []Match) []string {
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text
	}
	return out
}
