package learn

import (
	"testing"
	"time"

	"github.com/avoss/keyscout/internal/model"
)

// seedInsight installs an insight directly, bypassing the miner, so
// threshold behavior can be tested with exact values.
func seedInsight(s *Store, p model.PatternType, original, mapping string, confidence float64, evidence int) {
	now := s.Now()
	s.Insights = append(s.Insights, model.Insight{
		PatternType:      p,
		OriginalTerm:     original,
		SuggestedMapping: mapping,
		ConfidenceScore:  confidence,
		EvidenceCount:    evidence,
		FirstSeen:        now,
		LastSeen:         now,
	})
}

func TestApplyBelowConfidenceThresholdNeverApplied(t *testing.T) {
	s, _ := testStore(t)
	seedInsight(s, model.PatternTypo, "sceenshot", "screenshot", 0.79, 5)

	if got := s.ApplyHighConfidenceSuggestions(); got != 0 {
		t.Errorf("applied %d, want 0 for confidence 0.79", got)
	}
	if _, ok := s.dict.CorrectTypo("sceenshot"); ok {
		t.Error("typo must not be written below the auto-apply threshold")
	}
}

func TestApplyBelowEvidenceThresholdNeverApplied(t *testing.T) {
	s, _ := testStore(t)
	seedInsight(s, model.PatternTypo, "sceenshot", "screenshot", 0.95, 1)

	if got := s.ApplyHighConfidenceSuggestions(); got != 0 {
		t.Errorf("applied %d, want 0 for evidence count 1", got)
	}
}

func TestApplyHighConfidenceIdempotent(t *testing.T) {
	s, _ := testStore(t)
	seedInsight(s, model.PatternTypo, "sceenshot", "screenshot", 0.81, 2)

	if got := s.ApplyHighConfidenceSuggestions(); got != 1 {
		t.Fatalf("first apply = %d, want 1", got)
	}
	if c, ok := s.dict.CorrectTypo("sceenshot"); !ok || c != "screenshot" {
		t.Fatalf("typo not written: %q, %v", c, ok)
	}
	if got := s.ApplyHighConfidenceSuggestions(); got != 0 {
		t.Errorf("second apply = %d, want 0 (idempotent)", got)
	}
}

func TestApplyTypoNeverOverwritesManualCorrection(t *testing.T) {
	s, _ := testStore(t)
	s.dict.SetTypo("sceenshot", "capture")
	seedInsight(s, model.PatternTypo, "sceenshot", "screenshot", 0.95, 3)

	if got := s.ApplyHighConfidenceSuggestions(); got != 0 {
		t.Errorf("applied %d, want 0 against an existing manual correction", got)
	}
	if c, _ := s.dict.CorrectTypo("sceenshot"); c != "capture" {
		t.Errorf("manual correction overwritten: %q", c)
	}
}

func TestApplySynonymAppendsUnderExistingKey(t *testing.T) {
	s, _ := testStore(t)
	// "volume" exists as a synonym key in the defaults, so the original
	// term is appended to its list.
	seedInsight(s, model.PatternSynonym, "loudness", "volume", 0.9, 2)

	if got := s.ApplyHighConfidenceSuggestions(); got != 1 {
		t.Fatalf("applied %d, want 1", got)
	}
	found := false
	for _, v := range s.dict.SynonymsOf("volume") {
		if v == "loudness" {
			found = true
		}
	}
	if !found {
		t.Errorf("loudness not appended under volume: %v", s.dict.SynonymsOf("volume"))
	}
}

func TestApplySynonymCreatesNewKey(t *testing.T) {
	s, _ := testStore(t)
	seedInsight(s, model.PatternSynonym, "maximize", "fullscreen", 0.9, 2)

	if got := s.ApplyHighConfidenceSuggestions(); got != 1 {
		t.Fatalf("applied %d, want 1", got)
	}
	got := s.dict.SynonymsOf("maximize")
	if len(got) != 1 || got[0] != "fullscreen" {
		t.Errorf("SynonymsOf(maximize) = %v, want [fullscreen]", got)
	}
}

func TestApplyIntentKeyedByLabel(t *testing.T) {
	s, _ := testStore(t)
	seedInsight(s, model.PatternIntent, "open browser", "launch_application", 0.9, 2)

	if got := s.ApplyHighConfidenceSuggestions(); got != 1 {
		t.Fatalf("applied %d, want 1", got)
	}
	got := s.dict.Intents["launch_application"]
	if len(got) != 1 || got[0] != "open browser" {
		t.Errorf("Intents[launch_application] = %v, want [open browser]", got)
	}
}

func TestCleanupOldDataAgesOutFailedSearches(t *testing.T) {
	s, now := testStore(t)
	s.RecordSearch("zzq old", 0, nil, "")
	*now = now.Add(45 * 24 * time.Hour)
	s.RecordSearch("zzq new", 0, nil, "")

	removed := s.CleanupOldData(30)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(s.FailedSearches) != 1 || s.FailedSearches[0].Query != "zzq new" {
		t.Errorf("wrong records retained: %+v", s.FailedSearches)
	}
}

func TestCleanupProtectsHighConfidenceInsights(t *testing.T) {
	s, now := testStore(t)
	seedInsight(s, model.PatternTypo, "aaa", "aab", 0.9, 2)
	seedInsight(s, model.PatternTypo, "bbb", "bbc", 0.1, 1)

	*now = now.Add(45 * 24 * time.Hour)
	removed := s.CleanupOldData(30)

	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if findInsight(s, model.PatternTypo, "aaa", "aab") == nil {
		t.Error("45-day-old insight with confidence 0.9 must be retained")
	}
	if findInsight(s, model.PatternTypo, "bbb", "bbc") != nil {
		t.Error("45-day-old insight with confidence 0.1 must be removed")
	}
}

func TestCleanupDefaultsMaxAge(t *testing.T) {
	s, now := testStore(t)
	s.RecordSearch("zzq old", 0, nil, "")
	*now = now.Add(31 * 24 * time.Hour)
	if removed := s.CleanupOldData(0); removed == 0 {
		t.Error("zero maxAgeDays should fall back to the 30-day default")
	}
}
