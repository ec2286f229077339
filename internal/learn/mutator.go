package learn

import "github.com/avoss/keyscout/internal/model"

// ApplyHighConfidenceSuggestions commits every insight clearing both the
// evidence-count and confidence thresholds to the dictionary store, and
// returns the number of insights that actually changed a dictionary.
//
// Typo insights never overwrite an existing correction; synonym and intent
// insights deduplicate on insert. Re-running without new insights therefore
// applies zero changes. The dictionary is persisted only when at least one
// change occurred.
func (s *Store) ApplyHighConfidenceSuggestions() int {
	applied := 0
	for _, in := range s.Insights {
		if in.EvidenceCount < s.Config.MinEvidenceCount {
			continue
		}
		if in.ConfidenceScore < s.Config.AutoApplyThreshold {
			continue
		}
		if s.applyInsight(in) {
			applied++
		}
	}
	if applied > 0 {
		if err := s.dict.Save(); err != nil {
			s.warnf("could not save dictionaries: %v", err)
		}
	}
	return applied
}

// applyInsight writes one insight into the dictionary store. Returns false
// when the edit was already present (or invalid), so callers can count
// real changes.
func (s *Store) applyInsight(in model.Insight) bool {
	switch in.PatternType {
	case model.PatternTypo:
		return s.dict.SetTypo(in.OriginalTerm, in.SuggestedMapping)
	case model.PatternSynonym:
		// Append under the existing key when the mapping is already one;
		// otherwise the original term becomes a new key.
		if s.dict.HasSynonymKey(in.SuggestedMapping) {
			return s.dict.AddSynonym(in.SuggestedMapping, in.OriginalTerm)
		}
		return s.dict.AddSynonym(in.OriginalTerm, in.SuggestedMapping)
	case model.PatternIntent:
		return s.dict.AddIntent(in.SuggestedMapping, in.OriginalTerm)
	}
	return false
}

// CleanupOldData drops failed searches older than maxAgeDays and insights
// older than maxAgeDays whose confidence has not climbed past the minimum
// confidence threshold. High-confidence insights are protected from
// age-based deletion. Returns the total number of records removed.
func (s *Store) CleanupOldData(maxAgeDays int) int {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}
	cutoff := s.Now().AddDate(0, 0, -maxAgeDays)
	removed := 0

	kept := s.FailedSearches[:0]
	for _, fs := range s.FailedSearches {
		if fs.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, fs)
	}
	s.FailedSearches = kept

	keptInsights := s.Insights[:0]
	for _, in := range s.Insights {
		if in.LastSeen.Before(cutoff) && in.ConfidenceScore <= s.Config.MinConfidence {
			removed++
			continue
		}
		keptInsights = append(keptInsights, in)
	}
	s.Insights = keptInsights

	if removed > 0 {
		s.save()
	}
	return removed
}
