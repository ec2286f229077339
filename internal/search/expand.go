package search

import (
	"sort"
	"strings"

	"github.com/avoss/keyscout/internal/dict"
)

// Expander broadens a token set using the dictionary store. Expansion is
// monotone (output contains the input) and reaches a fixed point in one
// pass: synonym entries do not chain transitively.
type Expander struct {
	Dict *dict.Store
}

// CorrectTypos applies the typo map as a pre-pass. Corrections are added
// alongside the original tokens; the misspelled form is kept because it may
// still match indexed text.
func (e *Expander) CorrectTypos(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := map[string]bool{}
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, tok := range tokens {
		add(tok)
		if corr, ok := e.Dict.CorrectTypo(tok); ok {
			add(corr)
		}
	}
	return out
}

// Expand returns the token set grown by typo correction and synonym lookup,
// both forward (token is a key) and reverse (token appears in some key's
// value list, which pulls in the key and all siblings).
func (e *Expander) Expand(tokens []string) []string {
	tokens = e.CorrectTypos(tokens)

	out := make([]string, 0, len(tokens))
	seen := map[string]bool{}
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	for _, tok := range tokens {
		add(tok)
		for _, syn := range e.Dict.SynonymsOf(tok) {
			add(syn)
		}
		for _, rel := range e.Dict.ReverseSynonyms(tok) {
			add(rel)
		}
	}
	return out
}

// IntentTerms returns extra terms for one candidate binding: for every
// intent whose trigger phrases substring-match the candidate's combined
// description+command text, the tokens of the intent label are added. This
// step is candidate-specific, unlike synonym expansion.
func (e *Expander) IntentTerms(candidateText string) []string {
	candidateText = strings.ToLower(candidateText)

	var out []string
	seen := map[string]bool{}
	for _, label := range sortedKeys(e.Dict.Intents) {
		for _, phrase := range e.Dict.Intents[label] {
			if phrase != "" && strings.Contains(candidateText, strings.ToLower(phrase)) {
				for _, tok := range Normalize(strings.ReplaceAll(label, "_", " ")) {
					if !seen[tok] {
						seen[tok] = true
						out = append(out, tok)
					}
				}
				break
			}
		}
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
