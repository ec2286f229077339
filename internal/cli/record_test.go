package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avoss/keyscout/internal/learn"
)

func TestRecordCmdPersists(t *testing.T) {
	resetGlobals(t)
	data := t.TempDir()

	runCommand(t, "record", "--query", "volme", "--results", "0", "--session", "s1", "--data-dir", data)

	if _, err := os.Stat(filepath.Join(data, learn.DefaultFileName)); err != nil {
		t.Fatalf("learning data not written: %v", err)
	}
}

func TestRecordCmdRequiresQuery(t *testing.T) {
	resetGlobals(t)
	recordQuery = ""

	rootCmd.SetArgs([]string{"record", "--data-dir", t.TempDir()})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error without a query")
	}
}

func TestRecordThenInsights(t *testing.T) {
	resetGlobals(t)
	data := t.TempDir()

	// "volme" is one edit from the seeded "volume" synonym key, so the
	// miner emits a typo insight.
	runCommand(t, "record", "--query", "volme", "--results", "0", "--data-dir", data)

	out := runCommand(t, "insights", "--data-dir", data, "--json")
	if !strings.Contains(out, "volme") || !strings.Contains(out, "volume") {
		t.Errorf("expected a volme->volume insight, got: %s", out)
	}
}

func TestApplyCmdWritesDictionary(t *testing.T) {
	resetGlobals(t)
	data := t.TempDir()

	// Two observations push the typo insight past both thresholds.
	runCommand(t, "record", "--query", "volme", "--results", "0", "--data-dir", data)
	runCommand(t, "record", "--query", "volme", "--results", "0", "--data-dir", data)

	out := runCommand(t, "apply", "--data-dir", data, "--json")
	if !strings.Contains(out, `"applied": 1`) {
		t.Errorf("expected one applied suggestion, got: %s", out)
	}

	out = runCommand(t, "dict", "show", "--data-dir", data, "--json")
	if !strings.Contains(out, "volme") {
		t.Errorf("expected the learned typo in the dictionary, got: %s", out)
	}
}
