package search

import (
	"testing"

	"github.com/avoss/keyscout/internal/model"
	"github.com/avoss/keyscout/internal/similarity"
)

func testScorer() *Scorer {
	return &Scorer{Sim: similarity.Ratio}
}

func TestScoreFullTextTier(t *testing.T) {
	b := model.Binding{Key: "XF86AudioRaiseVolume", Description: "Volume up", Command: "exec volume-up.sh"}
	sc := testScorer()

	// "volume" and "up" are both contained in the full text: +10 each,
	// plus the fuzzy tier fires on exact word matches (+5 each).
	got := sc.Score(b, []string{"volume", "up"})
	if got < 20 {
		t.Errorf("Score = %f, want >= 20 for two tier-1 matches", got)
	}
}

func TestScoreSearchTextTier(t *testing.T) {
	b := model.Binding{
		Key:         "Print",
		Description: "Grab the screen",
		Command:     "exec flameshot",
		SearchText:  "screenshot capture snapshot grab screen",
	}
	sc := testScorer()

	full := sc.Score(b, []string{"grab"})
	indexed := sc.Score(b, []string{"snapshot"})
	if indexed >= full {
		t.Errorf("search-text match (%f) should score below full-text match (%f)", indexed, full)
	}
	if indexed < searchTextWeight {
		t.Errorf("Score = %f, want >= %f for a search-text match", indexed, searchTextWeight)
	}
}

func TestScoreMultiWordPartialCredit(t *testing.T) {
	b := model.Binding{Key: "$mod+Shift+h", Description: "Move window left", Command: "move left"}
	sc := testScorer()

	// "move window" matches fully (+10) and both words individually (+3+3).
	multi := sc.Score(b, []string{"move window"})
	if multi < fullTextWeight+2*wordFullWeight {
		t.Errorf("Score = %f, want >= %f", multi, fullTextWeight+2*wordFullWeight)
	}

	// A multi-word term that only half-matches still gets word credit.
	partial := sc.Score(b, []string{"move workspace"})
	if partial < wordFullWeight {
		t.Errorf("Score = %f, want >= %f for partial word credit", partial, wordFullWeight)
	}
}

func TestScoreShortWordsSkipped(t *testing.T) {
	b := model.Binding{Key: "$mod+f", Description: "Toggle fullscreen", Command: "fullscreen toggle"}
	sc := testScorer()

	// "go to fullscreen": "go" and "to" are too short for word credit, so
	// only "fullscreen" contributes.
	withShort := sc.Score(b, []string{"go to fullscreen"})
	justWord := sc.Score(b, []string{"xx yy fullscreen"})
	if withShort != justWord {
		t.Errorf("short words changed score: %f vs %f", withShort, justWord)
	}
}

func TestScoreFuzzyTier(t *testing.T) {
	b := model.Binding{Key: "XF86AudioRaiseVolume", Description: "Volume up", Command: "exec volume-up.sh"}
	sc := testScorer()

	// "volune" is one substitution from "volume": similarity 5/6 > 0.8, so
	// only the fuzzy tier fires.
	got := sc.Score(b, []string{"volune"})
	if got != fuzzyWeight {
		t.Errorf("Score = %f, want %f (fuzzy only)", got, fuzzyWeight)
	}
}

func TestScoreFuzzyAtMostOncePerTerm(t *testing.T) {
	b := model.Binding{Key: "k", Description: "volume volume volume", Command: ""}
	sc := testScorer()

	// Three fuzzy-matchable words must still add a single +5.
	got := sc.Score(b, []string{"volune"})
	if got != fuzzyWeight {
		t.Errorf("Score = %f, want %f (flat bonus once per term)", got, fuzzyWeight)
	}
}

func TestScoreNoMatch(t *testing.T) {
	b := model.Binding{Key: "$mod+Return", Description: "Open terminal", Command: "exec alacritty"}
	sc := testScorer()
	if got := sc.Score(b, []string{"qqqq"}); got != 0 {
		t.Errorf("Score = %f, want 0 for no match", got)
	}
	if got := sc.Score(b, nil); got != 0 {
		t.Errorf("Score = %f, want 0 for empty terms", got)
	}
}

func TestScoreTypoCorrectedQueryMatches(t *testing.T) {
	// Scenario: "volme up" resolves to "volume up" after typo correction,
	// which must reach tier-1 against a "Volume up" binding.
	b := model.Binding{Key: "XF86AudioRaiseVolume", Description: "Volume up", Command: "exec volume-up.sh"}
	sc := testScorer()

	terms := []string{"volme", "up", "volume"}
	got := sc.Score(b, terms)
	if got <= 20 {
		t.Errorf("Score = %f, want > 20 with corrected token present", got)
	}
}
