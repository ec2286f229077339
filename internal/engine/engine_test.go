package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/avoss/keyscout/internal/model"
)

var testBindings = []model.Binding{
	{Key: "$mod+Return", Description: "Open terminal", Command: "exec alacritty"},
	{Key: "$mod+b", Description: "Open browser", Command: "exec firefox"},
	{Key: "Print", Description: "Take screenshot", Command: "exec grim"},
	{Key: "XF86AudioRaiseVolume", Description: "Volume up", Command: "exec pamixer -i 5"},
	{Key: "XF86AudioLowerVolume", Description: "Volume down", Command: "exec pamixer -d 5"},
}

func testEngine(t *testing.T) (*Engine, *time.Time) {
	t.Helper()
	e := Open(t.TempDir())
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e.Learn.Now = func() time.Time { return now }
	e.Learn.Log = &bytes.Buffer{}
	e.Analytics.Log = &bytes.Buffer{}
	return e, &now
}

func TestSearchTiesKeepEnumerationOrder(t *testing.T) {
	e, _ := testEngine(t)
	results := e.Search("volume", testBindings)
	if len(results) < 2 {
		t.Fatalf("results = %+v, want both volume bindings", results)
	}
	if results[0].Binding.Key != "XF86AudioRaiseVolume" {
		t.Errorf("top result = %q, want the first volume binding on a tie", results[0].Binding.Key)
	}
	if results[0].Score != results[1].Score {
		t.Errorf("tie expected between volume bindings: %v vs %v", results[0].Score, results[1].Score)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Search("  ", testBindings); got != nil {
		t.Errorf("Search(blank) = %+v, want nil", got)
	}
}

func TestSearchOmitsZeroScores(t *testing.T) {
	e, _ := testEngine(t)
	for _, r := range e.Search("qqqqqq", testBindings) {
		if r.Score <= 0 {
			t.Errorf("zero-score result leaked: %+v", r)
		}
	}
}

func TestSearchDefaultSynonyms(t *testing.T) {
	e, _ := testEngine(t)
	// "sound" reaches the volume bindings through the seeded synonym list.
	results := e.Search("sound", testBindings)
	if len(results) == 0 {
		t.Fatal("synonym expansion should find the volume bindings")
	}
	for _, r := range results {
		if r.Binding.Description != "Volume up" && r.Binding.Description != "Volume down" {
			t.Errorf("unexpected match %q for synonym query", r.Binding.Description)
		}
	}
}

func TestSearchIntentTermsAreCandidateSpecific(t *testing.T) {
	e, _ := testEngine(t)
	e.Dict.AddIntent("launch_application", "exec firefox")

	// Intent label tokens live in the indexed searchText, so the boost
	// only fires on candidates whose own text matches a trigger phrase.
	bindings := append([]model.Binding{}, testBindings...)
	e.IndexBindings(bindings)

	results := e.Search("launch application", bindings)
	if len(results) == 0 {
		t.Fatal("intent terms should match the browser binding")
	}
	if results[0].Binding.Key != "$mod+b" {
		t.Errorf("top result = %q, want the browser binding", results[0].Binding.Key)
	}
	for _, r := range results {
		if r.Binding.Key == "Print" {
			t.Error("intent terms leaked onto a candidate whose text has no trigger phrase")
		}
	}
}

func TestSuggestClosestMatches(t *testing.T) {
	e, _ := testEngine(t)
	got := e.SuggestClosestMatches("Volume upp", testBindings)
	if len(got) == 0 || got[0] != "Volume up" {
		t.Errorf("SuggestClosestMatches = %v, want Volume up first", got)
	}
	if len(got) > 3 {
		t.Errorf("at most 3 suggestions, got %d", len(got))
	}
}

// The full loop from the typo scenario: a misspelled query fails twice, the
// miner builds up a typo insight, apply writes the correction, and the same
// query then hits the substring tier.
func TestTypoLearningLoop(t *testing.T) {
	e, _ := testEngine(t)

	before := e.Search("sceenshot", testBindings)
	e.RecordSearchOutcome("sceenshot", 0, e.SuggestClosestMatches("sceenshot", testBindings), "s1")
	e.RecordSearchOutcome("sceenshot", 0, nil, "s2")

	if got := e.ApplyHighConfidenceSuggestions(); got != 1 {
		t.Fatalf("applied %d suggestions, want 1", got)
	}
	if c, ok := e.Dict.CorrectTypo("sceenshot"); !ok || c != "screenshot" {
		t.Fatalf("typo correction not learned: %q, %v", c, ok)
	}

	after := e.Search("sceenshot", testBindings)
	if len(after) == 0 || after[0].Binding.Key != "Print" {
		t.Fatalf("corrected search = %+v, want the screenshot binding first", after)
	}
	if len(before) > 0 && after[0].Score <= before[0].Score {
		t.Errorf("corrected score %v should beat the fuzzy-only score %v", after[0].Score, before[0].Score)
	}
}

func TestSelectionFeedbackLoop(t *testing.T) {
	e, now := testEngine(t)
	e.RecordSearchOutcome("volme", 0, []string{"Volume up"}, "s1")

	*now = now.Add(time.Minute)
	e.RecordUserSelection("volme", testBindings[3].ID())
	e.RecordFeedback("volme", model.FeedbackHelpful)

	fs := e.Learn.FailedSearches
	if len(fs) != 1 {
		t.Fatalf("FailedSearches = %+v", fs)
	}
	if fs[0].UserSelected != testBindings[3].ID() {
		t.Errorf("UserSelected = %q", fs[0].UserSelected)
	}
	if fs[0].UserFeedback != model.FeedbackHelpful {
		t.Errorf("UserFeedback = %q", fs[0].UserFeedback)
	}
}

func TestRecordSearchOutcomeCountsTerm(t *testing.T) {
	e, _ := testEngine(t)
	e.RecordSearchOutcome("Volume ", 3, nil, "")
	if e.Analytics.SearchTerms["volume"] != 1 {
		t.Errorf("SearchTerms = %v, want normalized term counted", e.Analytics.SearchTerms)
	}
}

func TestLearningStatsAndCleanup(t *testing.T) {
	e, now := testEngine(t)
	e.RecordSearchOutcome("zzq stale", 0, nil, "")

	st := e.LearningStats()
	if st.TotalFailedSearches != 1 {
		t.Errorf("TotalFailedSearches = %d, want 1", st.TotalFailedSearches)
	}

	*now = now.Add(60 * 24 * time.Hour)
	if removed := e.CleanupOldData(30); removed == 0 {
		t.Error("cleanup should remove the stale search")
	}
}

func TestIndexBindings(t *testing.T) {
	e, _ := testEngine(t)
	bindings := []model.Binding{
		{Key: "Print", Description: "Take screenshot", Command: "exec grim"},
		{Key: "$mod+x", Description: "Custom", SearchText: "keepme"},
	}
	e.IndexBindings(bindings)
	if bindings[0].SearchText == "" {
		t.Error("SearchText should be filled in")
	}
	if bindings[1].SearchText != "keepme" {
		t.Error("precomputed SearchText must be preserved")
	}
}
