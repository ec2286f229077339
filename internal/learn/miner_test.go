package learn

import (
	"testing"
	"time"

	"github.com/avoss/keyscout/internal/model"
)

func findInsight(s *Store, p model.PatternType, original, mapping string) *model.Insight {
	for i := range s.Insights {
		in := &s.Insights[i]
		if in.PatternType == p && in.OriginalTerm == original && in.SuggestedMapping == mapping {
			return in
		}
	}
	return nil
}

func TestMineTypoAgainstDictionaryTerms(t *testing.T) {
	s, _ := testStore(t)
	// "sceenshot" is one deletion from the dictionary term "screenshot":
	// similarity 0.9, above the 0.6 typo threshold.
	s.RecordSearch("sceenshot", 0, nil, "")

	in := findInsight(s, model.PatternTypo, "sceenshot", "screenshot")
	if in == nil {
		t.Fatalf("expected typo insight sceenshot -> screenshot, have %+v", s.Insights)
	}
	if in.EvidenceCount != 1 {
		t.Errorf("EvidenceCount = %d, want 1", in.EvidenceCount)
	}
	if in.ConfidenceScore < 0.85 || in.ConfidenceScore > 0.95 {
		t.Errorf("ConfidenceScore = %f, want the similarity (~0.9)", in.ConfidenceScore)
	}
}

func TestMineTypoBelowThresholdIgnored(t *testing.T) {
	s, _ := testStore(t)
	s.RecordSearch("qqqqqq", 0, nil, "")
	for _, in := range s.Insights {
		if in.PatternType == model.PatternTypo {
			t.Errorf("unexpected typo insight for dissimilar query: %+v", in)
		}
	}
}

func TestMineSynonymsFromSuggestedMatches(t *testing.T) {
	s, _ := testStore(t)
	// The suggestion contributes "monitor", absent from the query; it is
	// similar enough to "monitr" to cross the 0.4 synonym threshold.
	s.RecordSearch("monitr settings", 0, []string{"Monitor configuration"}, "")

	in := findInsight(s, model.PatternSynonym, "monitr", "monitor")
	if in == nil {
		t.Fatalf("expected synonym insight monitr -> monitor, have %+v", s.Insights)
	}
}

func TestMineIntentPatterns(t *testing.T) {
	s, _ := testStore(t)
	s.RecordSearch("open browser", 0, nil, "")

	in := findInsight(s, model.PatternIntent, "open browser", "launch_application")
	if in == nil {
		t.Fatalf("expected intent insight for launch_application, have %+v", s.Insights)
	}
	if in.ConfidenceScore != intentConfidence {
		t.Errorf("ConfidenceScore = %f, want fixed %f", in.ConfidenceScore, intentConfidence)
	}
}

func TestInsightMergeOnRepeat(t *testing.T) {
	s, now := testStore(t)
	s.RecordSearch("open browser", 0, nil, "")
	in := findInsight(s, model.PatternIntent, "open browser", "launch_application")
	if in == nil {
		t.Fatal("missing initial insight")
	}
	initial := in.ConfidenceScore
	firstSeen := in.FirstSeen

	*now = now.Add(time.Hour)
	s.RecordSearch("open browser", 0, nil, "")

	count := 0
	for _, i := range s.Insights {
		if i.Key() == in.Key() {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("repeat observation duplicated the insight: %d records", count)
	}

	merged := findInsight(s, model.PatternIntent, "open browser", "launch_application")
	if merged.EvidenceCount != 2 {
		t.Errorf("EvidenceCount = %d, want 2", merged.EvidenceCount)
	}
	want := initial + confidenceStep
	if want > 1.0 {
		want = 1.0
	}
	if merged.ConfidenceScore != want {
		t.Errorf("ConfidenceScore = %f, want %f", merged.ConfidenceScore, want)
	}
	if !merged.FirstSeen.Equal(firstSeen) {
		t.Error("FirstSeen must not change on merge")
	}
	if !merged.LastSeen.After(firstSeen) {
		t.Error("LastSeen must be refreshed on merge")
	}
}

func TestInsightConfidenceCappedAtOne(t *testing.T) {
	s, now := testStore(t)
	for i := 0; i < 10; i++ {
		*now = now.Add(time.Minute)
		s.RecordSearch("open browser", 0, nil, "")
	}
	in := findInsight(s, model.PatternIntent, "open browser", "launch_application")
	if in.ConfidenceScore != 1.0 {
		t.Errorf("ConfidenceScore = %f, want capped at 1.0", in.ConfidenceScore)
	}
}

func TestInsightEvictionDropsLowestConfidence(t *testing.T) {
	s, now := testStore(t)
	s.Config.MaxInsights = 3

	// Pump confidence for one anchor insight.
	for i := 0; i < 5; i++ {
		*now = now.Add(time.Minute)
		s.RecordSearch("open browser", 0, nil, "")
	}
	// Add distinct low-confidence intent insights until eviction triggers.
	for _, q := range []string{"close window", "move window", "resize window"} {
		*now = now.Add(time.Minute)
		s.RecordSearch(q, 0, nil, "")
	}

	if len(s.Insights) != 3 {
		t.Fatalf("insight count = %d, want cap 3", len(s.Insights))
	}
	if findInsight(s, model.PatternIntent, "open browser", "launch_application") == nil {
		t.Error("high-confidence insight must survive eviction")
	}
}

func TestMineSelectionUsesDescriptionPart(t *testing.T) {
	s, now := testStore(t)
	s.RecordSearch("volum", 0, nil, "")
	*now = now.Add(time.Minute)
	s.RecordSelection("volum", "XF86AudioRaiseVolume:Volume up")

	if findInsight(s, model.PatternSynonym, "volum", "volume") == nil {
		t.Errorf("expected synonym insight mined from the selected description, have %+v", s.Insights)
	}
}
