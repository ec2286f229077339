package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewTableHeaders(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "NAME", "VALUE", "STATUS")
	tbl.Row("foo", "42", "ok")
	tbl.Row("bar", "99", "error")
	tbl.Flush()

	out := buf.String()

	// Headers should be present (no bold for buffer since not a TTY).
	for _, want := range []string{"NAME", "VALUE", "STATUS", "foo", "99"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}
}

func TestNewTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "SHORT", "LONGER_HEADER")
	tbl.Row("a", "x")
	tbl.Row("longvalue", "y")
	tbl.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	// Column alignment: second column should start at the same position
	// for all lines (tabwriter aligns them).
	headerIdx := strings.Index(lines[0], "LONGER_HEADER")
	row2Idx := strings.Index(lines[2], "y")
	if headerIdx < 0 || row2Idx < 0 {
		t.Fatal("missing expected content")
	}
	if headerIdx != row2Idx {
		t.Errorf("columns not aligned: header col2 at %d, row2 col2 at %d", headerIdx, row2Idx)
	}
}

func TestIsTTYBuffer(t *testing.T) {
	var buf bytes.Buffer
	if isTTY(&buf) {
		t.Error("bytes.Buffer should not be a TTY")
	}
}

func TestTableWidthDefault(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf)
	if tbl.Width() != defaultTermWidth {
		t.Errorf("width = %d, want %d", tbl.Width(), defaultTermWidth)
	}
}

func TestBoldWithColor(t *testing.T) {
	s := bold("hello", true)
	if !strings.Contains(s, "\033[1m") || !strings.Contains(s, "\033[0m") {
		t.Errorf("expected ANSI bold wrapping, got %q", s)
	}
}

func TestBoldWithoutColor(t *testing.T) {
	if s := bold("hello", false); s != "hello" {
		t.Errorf("bold without color should be identity, got %q", s)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a long description here", 10); got != "a long ..." {
		t.Errorf("truncate = %q", got)
	}
}
