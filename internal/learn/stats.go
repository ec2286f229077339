package learn

import (
	"time"

	"github.com/avoss/keyscout/internal/model"
)

// Stats summarizes the learning system state for display.
type Stats struct {
	TotalFailedSearches    int                       `json:"total_failed_searches"`
	RecentFailedSearches   int                       `json:"recent_failed_searches"`
	TotalInsights          int                       `json:"total_insights"`
	HighConfidenceInsights int                       `json:"high_confidence_insights"`
	UserConfirmedInsights  int                       `json:"user_confirmed_insights"`
	PatternBreakdown       map[model.PatternType]int `json:"pattern_breakdown"`
	DictionarySizes        DictionarySizes           `json:"dictionary_sizes"`
}

// DictionarySizes holds the entry counts of the three dictionaries.
type DictionarySizes struct {
	Synonyms int `json:"synonyms"`
	Intents  int `json:"intents"`
	Typos    int `json:"typos"`
}

// Stats computes summary counts. Recent failures cover the last 24 hours.
func (s *Store) Stats() Stats {
	st := Stats{
		TotalFailedSearches: len(s.FailedSearches),
		TotalInsights:       len(s.Insights),
		PatternBreakdown:    map[model.PatternType]int{},
	}
	for _, p := range model.PatternTypes {
		st.PatternBreakdown[p] = 0
	}

	dayAgo := s.Now().Add(-24 * time.Hour)
	for _, fs := range s.FailedSearches {
		if fs.Timestamp.After(dayAgo) {
			st.RecentFailedSearches++
		}
	}

	for _, in := range s.Insights {
		st.PatternBreakdown[in.PatternType]++
		if in.ConfidenceScore >= s.Config.AutoApplyThreshold {
			st.HighConfidenceInsights++
		}
		if in.UserConfirmations > 0 {
			st.UserConfirmedInsights++
		}
	}

	st.DictionarySizes.Synonyms, st.DictionarySizes.Intents, st.DictionarySizes.Typos = s.dict.Sizes()
	return st
}

// Suggestions groups insights into apply-ready (clearing both auto-apply
// thresholds) and pending (needing more evidence), keyed by pattern type.
type Suggestions struct {
	Ready   []model.Insight                       `json:"ready"`
	Pending map[model.PatternType][]model.Insight `json:"pending"`
}

// Suggestions returns the current insight backlog grouped for display.
func (s *Store) Suggestions() Suggestions {
	out := Suggestions{Pending: map[model.PatternType][]model.Insight{}}
	for _, in := range s.Insights {
		if in.EvidenceCount >= s.Config.MinEvidenceCount && in.ConfidenceScore >= s.Config.AutoApplyThreshold {
			out.Ready = append(out.Ready, in)
			continue
		}
		out.Pending[in.PatternType] = append(out.Pending[in.PatternType], in)
	}
	return out
}
