// Package conflicts analyzes a binding list for duplicate, shadowed, and
// hard-to-press key combinations, and suggests free combinations that are
// easy to reach.
package conflicts

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/avoss/keyscout/internal/model"
)

// Severity classifies how urgent an issue is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Duplicate groups bindings sharing one normalized key combination.
type Duplicate struct {
	Key      string          `json:"key"`
	Bindings []model.Binding `json:"bindings"`
	Severity Severity        `json:"severity"`
}

// Shadow pairs a short combination with a longer one it prefixes. The short
// binding fires first and the longer one never triggers.
type Shadow struct {
	Shadower model.Binding `json:"shadower"`
	Shadowed model.Binding `json:"shadowed"`
	Severity Severity      `json:"severity"`
}

// SimilarPair flags two combinations that differ only by a visually
// confusable key, like l and 1.
type SimilarPair struct {
	A        model.Binding `json:"a"`
	B        model.Binding `json:"b"`
	Severity Severity      `json:"severity"`
}

// SystemConflict flags a binding colliding with a well-known desktop
// shortcut.
type SystemConflict struct {
	Binding  model.Binding `json:"binding"`
	Function string        `json:"function"`
	Severity Severity      `json:"severity"`
}

// ErgonomicIssue flags a hard-to-press combination, with a simpler
// replacement.
type ErgonomicIssue struct {
	Binding    model.Binding `json:"binding"`
	Reason     string        `json:"reason"`
	Suggestion string        `json:"suggestion"`
	Severity   Severity      `json:"severity"`
}

// UnusedCombo is a free, easy-to-reach combination worth assigning.
type UnusedCombo struct {
	Key          string `json:"key"`
	Score        int    `json:"ergonomic_score"`
	SuggestedUse string `json:"suggested_use"`
}

// Report holds all analysis results for one binding list.
type Report struct {
	TotalBindings   int              `json:"total_bindings"`
	Duplicates      []Duplicate      `json:"duplicates,omitempty"`
	Shadows         []Shadow         `json:"shadows,omitempty"`
	Similar         []SimilarPair    `json:"similar,omitempty"`
	SystemConflicts []SystemConflict `json:"system_conflicts,omitempty"`
	Ergonomic       []ErgonomicIssue `json:"ergonomic_issues,omitempty"`
	Unused          []UnusedCombo    `json:"unused_combinations,omitempty"`
}

// IssueCount returns the number of detected issues, excluding the unused
// suggestions, which are informational.
func (r Report) IssueCount() int {
	return len(r.Duplicates) + len(r.Shadows) + len(r.Similar) +
		len(r.SystemConflicts) + len(r.Ergonomic)
}

// Analyze runs every detection over bindings and returns the full report.
func Analyze(bindings []model.Binding) Report {
	return Report{
		TotalBindings:   len(bindings),
		Duplicates:      detectDuplicates(bindings),
		Shadows:         detectShadows(bindings),
		Similar:         detectSimilar(bindings),
		SystemConflicts: detectSystemConflicts(bindings),
		Ergonomic:       detectErgonomicIssues(bindings),
		Unused:          SuggestUnused(bindings, unusedLimit),
	}
}

// NormalizeKey canonicalizes a key combination for comparison: $mod becomes
// mod4, modifiers are sorted, everything is lowercased. The final segment is
// the base key and keeps its position.
func NormalizeKey(key string) string {
	key = strings.ReplaceAll(key, "$mod", "Mod4")
	parts := strings.Split(key, "+")
	if len(parts) > 1 {
		mods := parts[:len(parts)-1]
		sort.Strings(mods)
		key = strings.Join(append(mods, parts[len(parts)-1]), "+")
	}
	return strings.ToLower(key)
}

func detectDuplicates(bindings []model.Binding) []Duplicate {
	groups := map[string][]model.Binding{}
	var order []string
	for _, b := range bindings {
		k := NormalizeKey(b.Key)
		if len(groups[k]) == 0 {
			order = append(order, k)
		}
		groups[k] = append(groups[k], b)
	}

	var out []Duplicate
	for _, k := range order {
		if g := groups[k]; len(g) > 1 {
			out = append(out, Duplicate{Key: g[0].Key, Bindings: g, Severity: SeverityHigh})
		}
	}
	return out
}

func detectShadows(bindings []model.Binding) []Shadow {
	var out []Shadow
	for i, a := range bindings {
		na := NormalizeKey(a.Key)
		for _, b := range bindings[i+1:] {
			if strings.HasPrefix(NormalizeKey(b.Key), na+"+") {
				out = append(out, Shadow{Shadower: a, Shadowed: b, Severity: SeverityMedium})
			}
		}
	}
	return out
}

// confusablePairs lists key characters that read alike at a glance.
var confusablePairs = [][2]string{
	{"l", "1"}, {"O", "0"}, {"I", "l"},
	{"b", "d"}, {"p", "q"}, {"m", "n"},
}

func detectSimilar(bindings []model.Binding) []SimilarPair {
	var out []SimilarPair
	for i, a := range bindings {
		for _, b := range bindings[i+1:] {
			if confusable(a.Key, b.Key) || confusable(b.Key, a.Key) {
				out = append(out, SimilarPair{A: a, B: b, Severity: SeverityLow})
			}
		}
	}
	return out
}

// confusable reports whether substituting one confusable character in a
// yields exactly b.
func confusable(a, b string) bool {
	for _, pair := range confusablePairs {
		if strings.Contains(a, pair[0]) && strings.Contains(b, pair[1]) {
			if strings.ReplaceAll(a, pair[0], pair[1]) == b {
				return true
			}
		}
	}
	return false
}

// systemShortcuts are desktop-wide combinations a window manager binding
// would fight with.
var systemShortcuts = map[string]string{
	"Alt+Tab":         "system window switcher",
	"Alt+F4":          "close application",
	"Ctrl+Alt+Delete": "system menu",
	"Print":           "system screenshot",
	"Super+L":         "system lock",
}

func detectSystemConflicts(bindings []model.Binding) []SystemConflict {
	normalized := map[string]string{}
	for k, fn := range systemShortcuts {
		normalized[NormalizeKey(k)] = fn
	}

	var out []SystemConflict
	for _, b := range bindings {
		if fn, ok := normalized[NormalizeKey(b.Key)]; ok {
			out = append(out, SystemConflict{Binding: b, Function: fn, Severity: SeverityMedium})
		}
	}
	return out
}

// difficultPatterns match combinations that are awkward to press.
var difficultPatterns = []struct {
	pattern *regexp.Regexp
	reason  string
}{
	{regexp.MustCompile(`(?i).*shift.*ctrl.*alt.*`), "too many modifiers"},
	{regexp.MustCompile(`(?i).*shift.*[0-9].*`), "shift plus number keys are error-prone"},
}

// commonCommands are command fragments whose bindings should stay simple.
var commonCommands = []string{"terminal", "browser", "close"}

func detectErgonomicIssues(bindings []model.Binding) []ErgonomicIssue {
	var out []ErgonomicIssue
	for _, b := range bindings {
		matched := false
		for _, dp := range difficultPatterns {
			if dp.pattern.MatchString(b.Key) {
				out = append(out, ErgonomicIssue{
					Binding:    b,
					Reason:     dp.reason,
					Suggestion: SuggestAlternative(b.Key),
					Severity:   SeverityLow,
				})
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		cmd := strings.ToLower(b.Command + " " + b.Description)
		for _, common := range commonCommands {
			if strings.Contains(cmd, common) &&
				(strings.Contains(b.Key, "+Shift+Ctrl") || strings.Contains(b.Key, "+Ctrl+Alt")) {
				out = append(out, ErgonomicIssue{
					Binding:    b,
					Reason:     "frequently used command with a complex binding",
					Suggestion: SuggestAlternative(b.Key),
					Severity:   SeverityMedium,
				})
				break
			}
		}
	}
	return out
}

// SuggestAlternative proposes a simpler combination for an awkward one.
func SuggestAlternative(key string) string {
	parts := strings.Split(key, "+")
	base := parts[len(parts)-1]

	switch {
	case strings.Contains(key, "+Shift+Ctrl+"):
		return strings.ReplaceAll(key, "+Shift+Ctrl+", "+Alt+")
	case strings.Contains(key, "+Ctrl+Alt+"):
		return strings.ReplaceAll(key, "+Ctrl+Alt+", "+Shift+")
	case len(parts) > 3:
		return "$mod+Shift+" + base
	}
	return "$mod+Alt+" + base
}

// ErgonomicScore rates how easy a combination is to press, from 0 to 100.
// Each extra modifier costs 15 points, Ctrl together with Alt another 20,
// Shift with a number key 15; a home-row base key earns 10 back.
func ErgonomicScore(key string) int {
	score := 100

	score -= (strings.Count(key, "+") - 1) * 15
	if strings.Contains(key, "Ctrl") && strings.Contains(key, "Alt") {
		score -= 20
	}
	if strings.ContainsAny(strings.ToLower(key), "asdfghjkl") {
		score += 10
	}
	if strings.Contains(key, "Shift") && strings.ContainsAny(key, "0123456789") {
		score -= 15
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

const (
	unusedLimit      = 10
	unusedCandidates = 20
)

// candidate base keys for new bindings, letters first.
var goodKeys = func() []string {
	keys := strings.Split("asdfghjklqwertyuiopzxcvbnm", "")
	keys = append(keys, "Return", "space", "Tab", "Escape")
	for i := 1; i <= 12; i++ {
		keys = append(keys, fmt.Sprintf("F%d", i))
	}
	return keys
}()

// modifier prefixes ordered easiest first.
var modifierCombos = []string{"$mod+", "$mod+Shift+", "$mod+Alt+", "$mod+Ctrl+"}

// suggestedUses maps base keys to mnemonic purposes.
var suggestedUses = map[string]string{
	"a": "applications", "b": "browser", "c": "close/config", "d": "dmenu",
	"e": "editor", "f": "files/fullscreen", "g": "go to", "h": "help/left",
	"i": "info", "j": "down", "k": "up/kill", "l": "right/lock",
	"m": "minimize/music", "n": "new/next", "o": "open", "p": "paste/print",
	"q": "quit", "r": "reload/resize", "s": "search/screenshot", "t": "terminal",
	"u": "undo", "v": "volume", "w": "window/workspace", "x": "execute",
	"y": "yank", "z": "zoom",
	"return": "confirm/terminal", "space": "launcher/toggle",
	"tab": "switch/cycle", "escape": "cancel",
}

// SuggestUnused returns up to limit free combinations, best ergonomic score
// first. Candidates are gathered in modifier order so easy prefixes fill
// the pool before hard ones.
func SuggestUnused(bindings []model.Binding, limit int) []UnusedCombo {
	used := map[string]bool{}
	for _, b := range bindings {
		used[NormalizeKey(b.Key)] = true
	}

	var out []UnusedCombo
	for _, mod := range modifierCombos {
		for _, key := range goodKeys {
			if len(out) >= unusedCandidates {
				break
			}
			combo := mod + key
			if used[NormalizeKey(combo)] {
				continue
			}
			base := strings.ToLower(key)
			use, ok := suggestedUses[base]
			if !ok {
				use = "custom action"
			}
			out = append(out, UnusedCombo{
				Key:          combo,
				Score:        ErgonomicScore(combo),
				SuggestedUse: use,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
