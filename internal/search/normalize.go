// Package search implements the query pipeline: normalization, dictionary
// expansion, and tiered scoring of bindings against expanded term sets.
package search

import (
	"regexp"
	"strings"
)

var wordRE = regexp.MustCompile(`\w+`)

// Normalize tokenizes text into lowercase words and adds naive morphological
// variants: trailing "s" stripped (words longer than 3), trailing "ing", and
// trailing "ed". The result is deduplicated, keeps first-seen order, and is
// always a superset of the literal tokens. Normalizing already-normalized
// output adds nothing.
func Normalize(text string) []string {
	words := wordRE.FindAllString(strings.ToLower(text), -1)

	var out []string
	seen := map[string]bool{}
	add := func(w string) {
		if w != "" && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}

	for _, w := range words {
		add(w)
		if strings.HasSuffix(w, "s") && len(w) > 3 {
			add(strings.TrimSuffix(w, "s"))
		}
		if strings.HasSuffix(w, "ing") && len(w) > 3 {
			add(strings.TrimSuffix(w, "ing"))
		}
		if strings.HasSuffix(w, "ed") && len(w) > 2 {
			add(strings.TrimSuffix(w, "ed"))
		}
	}
	return out
}
