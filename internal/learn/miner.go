package learn

import (
	"regexp"
	"sort"
	"strings"

	"github.com/avoss/keyscout/internal/model"
	"github.com/avoss/keyscout/internal/search"
)

// intentConfidence is the fixed confidence assigned to pattern-table intent
// matches; they carry less signal than a measured similarity.
const intentConfidence = 0.7

// intentPatterns maps query shapes to intent labels. The table is fixed:
// learned intents grow through the dictionary, not through this list.
var intentPatterns = []struct {
	label   string
	pattern *regexp.Regexp
}{
	{"launch_application", regexp.MustCompile(`\b(open|launch|start|run)\s+\w+`)},
	{"close_window", regexp.MustCompile(`\b(close|kill|quit|exit)\s+\w+`)},
	{"window_movement", regexp.MustCompile(`\b(move|send|drag)\s+\w+`)},
	{"resize_window", regexp.MustCompile(`\b(resize|grow|shrink|bigger|smaller|larger)\b`)},
	{"switch_workspace", regexp.MustCompile(`\b(switch|go|jump)\b.*\b(workspace|desktop)\b`)},
	{"system_control", regexp.MustCompile(`\b(lock|screenshot|volume|brightness|mute)\b`)},
}

// mineFailedSearch runs the three analyses over one new failed search:
// typo detection against known dictionary terms, synonym candidates from
// the suggested near-miss matches, and intent pattern detection.
func (s *Store) mineFailedSearch(fs model.FailedSearch) {
	s.mineTypos(fs.Query)
	s.mineSynonyms(fs.Query, fs.SuggestedMatches)
	s.mineIntents(fs.Query)
}

// mineSelection re-runs the synonym analysis against the selected binding's
// description. The binding ID is "key:description"; only the description
// part carries vocabulary worth mining.
func (s *Store) mineSelection(query, selectedBindingID string) {
	desc := selectedBindingID
	if i := strings.Index(selectedBindingID, ":"); i >= 0 {
		desc = selectedBindingID[i+1:]
	}
	s.mineSynonyms(query, []string{desc})
}

// mineTypos compares the failed query against every term already present in
// the dictionaries and emits a typo insight per match above the similarity
// threshold, with the similarity as initial confidence.
func (s *Store) mineTypos(query string) {
	for _, term := range s.dict.AllTerms() {
		if term == query {
			continue
		}
		score := s.sim(query, term)
		if score < s.Config.TypoSimilarity {
			continue
		}
		s.upsertInsight(model.Insight{
			PatternType:      model.PatternTypo,
			OriginalTerm:     query,
			SuggestedMapping: term,
			ConfidenceScore:  score,
		})
	}
}

// mineSynonyms tokenizes the query and each suggested match, takes the
// words the suggestion has that the query lacks, and emits a synonym
// insight for every (query-word, candidate-word) pair above the secondary
// threshold.
func (s *Store) mineSynonyms(query string, suggestions []string) {
	qTokens := search.Normalize(query)
	if len(qTokens) == 0 {
		return
	}
	qSet := map[string]bool{}
	for _, t := range qTokens {
		qSet[t] = true
	}

	for _, suggestion := range suggestions {
		var novel []string
		for _, t := range search.Normalize(suggestion) {
			if !qSet[t] {
				novel = append(novel, t)
			}
		}
		for _, qw := range qTokens {
			for _, cw := range novel {
				score := s.sim(qw, cw)
				if score <= s.Config.SynonymSimilarity {
					continue
				}
				s.upsertInsight(model.Insight{
					PatternType:      model.PatternSynonym,
					OriginalTerm:     qw,
					SuggestedMapping: cw,
					ConfidenceScore:  score,
				})
			}
		}
	}
}

// mineIntents matches the failed query against the fixed intent pattern
// table and emits an intent insight per matching label.
func (s *Store) mineIntents(query string) {
	for _, ip := range intentPatterns {
		if !ip.pattern.MatchString(query) {
			continue
		}
		s.upsertInsight(model.Insight{
			PatternType:      model.PatternIntent,
			OriginalTerm:     query,
			SuggestedMapping: ip.label,
			ConfidenceScore:  intentConfidence,
		})
	}
}

// upsertInsight merges an observation into the insight list. A repeat of
// the same (type, original, mapping) identity increments evidence and
// nudges confidence up one step instead of duplicating. When the store
// exceeds its cap, the lowest-confidence, least-recently-seen insights are
// evicted first.
func (s *Store) upsertInsight(in model.Insight) {
	now := s.Now()
	key := in.Key()
	for i := range s.Insights {
		if s.Insights[i].Key() == key {
			s.Insights[i].EvidenceCount++
			s.Insights[i].ConfidenceScore = capConfidence(s.Insights[i].ConfidenceScore + confidenceStep)
			s.Insights[i].LastSeen = now
			return
		}
	}

	in.EvidenceCount = 1
	in.FirstSeen = now
	in.LastSeen = now
	s.Insights = append(s.Insights, in)

	if max := s.Config.MaxInsights; len(s.Insights) > max {
		sort.SliceStable(s.Insights, func(a, b int) bool {
			if s.Insights[a].ConfidenceScore != s.Insights[b].ConfidenceScore {
				return s.Insights[a].ConfidenceScore < s.Insights[b].ConfidenceScore
			}
			return s.Insights[a].LastSeen.Before(s.Insights[b].LastSeen)
		})
		s.Insights = s.Insights[len(s.Insights)-max:]
	}
}
