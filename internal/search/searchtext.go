package search

import (
	"sort"
	"strings"

	"github.com/avoss/keyscout/internal/dict"
	"github.com/avoss/keyscout/internal/model"
)

// BuildSearchText precomputes the expanded token string for a binding at
// indexing time. It combines normalized description/key/command tokens,
// category context, synonym expansion, matched intent labels, and consonant
// skeletons for typo tolerance. Tokens are sorted so the output is stable.
func BuildSearchText(b model.Binding, d *dict.Store) string {
	e := &Expander{Dict: d}

	terms := map[string]bool{}
	add := func(toks []string) {
		for _, t := range toks {
			terms[t] = true
		}
	}

	add(Normalize(b.Description + " " + b.Key + " " + b.Command))
	if b.Category != "" {
		add(Normalize(b.Category + " " + b.Subcategory))
	}

	base := make([]string, 0, len(terms))
	for t := range terms {
		base = append(base, t)
	}
	add(e.Expand(base))
	add(e.IntentTerms(b.Description + " " + b.Command))

	// Consonant skeletons: vowels stripped, length > 2. Tolerates vowel
	// typos without a full fuzzy pass at query time.
	for t := range terms {
		if skel := consonantSkeleton(t); len(skel) > 2 {
			terms[skel] = true
		}
	}

	out := make([]string, 0, len(terms))
	for t := range terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}

func consonantSkeleton(word string) string {
	var sb strings.Builder
	for _, r := range word {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
