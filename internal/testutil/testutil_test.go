package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseTestInput(t *testing.T) {
	input, err := ParseTestInput("$settings:\n  html: true\n  max_depth: 2\nname: ann\n---\n{{ dumpy .name }}\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if input.Settings == nil || !input.Settings.HTML {
		t.Fatalf("settings not parsed: %+v", input.Settings)
	}
	if input.Settings.MaxDepth == nil || *input.Settings.MaxDepth != 2 {
		t.Errorf("max_depth not parsed")
	}
	if _, ok := input.Context["$settings"]; ok {
		t.Errorf("$settings left in context")
	}
	if input.Context["name"] != "ann" {
		t.Errorf("context = %v", input.Context)
	}
	if input.Template != "{{ dumpy .name }}\n" {
		t.Errorf("template = %q", input.Template)
	}
}

func TestParseTestInputWithoutContext(t *testing.T) {
	input, err := ParseTestInput("\n---\nplain")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if input.Settings != nil || len(input.Context) != 0 {
		t.Errorf("unexpected context %v / settings %v", input.Context, input.Settings)
	}
	if input.Template != "plain" {
		t.Errorf("template = %q", input.Template)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := &Snapshot{
		Source:      "golden_test.go",
		Description: "{{ dumpy .x }}",
		InputFile:   "testdata/inputs/x.txt",
		Expected:    "<pre>(int) 1\n</pre>\n",
	}
	content, err := snap.Format()
	if err != nil {
		t.Fatalf("format error: %v", err)
	}
	parsed, err := ParseSnapshot(content)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if *parsed != *snap {
		t.Errorf("round trip mismatch:\n%+v\n%+v", parsed, snap)
	}
}

func TestParseSnapshotWithoutHeader(t *testing.T) {
	snap, err := ParseSnapshot("just output\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if snap.Expected != "just output\n" {
		t.Errorf("expected = %q", snap.Expected)
	}
}

func TestCompareSnapshot(t *testing.T) {
	path := SnapshotPath(filepath.Join(t.TempDir(), "snapshots"), "templates", "inputs/x.txt")
	if filepath.Base(path) != "templates@x.txt.snap" {
		t.Fatalf("path = %s", path)
	}

	if _, err := CompareSnapshot(path, &Snapshot{Expected: "out\n"}, false); !errors.Is(err, ErrSnapshotMissing) {
		t.Fatalf("missing snapshot: err = %v, want ErrSnapshotMissing", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("missing snapshot was written without updating")
	}

	if _, err := CompareSnapshot(path, &Snapshot{Source: "test", Expected: "out\n"}, true); err != nil {
		t.Fatalf("update: %v", err)
	}
	if diff, err := CompareSnapshot(path, &Snapshot{Expected: "out\n\n"}, false); err != nil || diff != "" {
		t.Errorf("trailing newlines: diff = %q, err = %v", diff, err)
	}
	if diff, err := CompareSnapshot(path, &Snapshot{Expected: "other\n"}, false); err != nil || diff == "" {
		t.Errorf("changed output: diff = %q, err = %v", diff, err)
	}

	AssertSnapshot(t, path, &Snapshot{Expected: "out\n"})
}

func TestDiff(t *testing.T) {
	if got := Diff("a", "b\n"); got != "=== Expected ===\na⏎\n=== Actual ===\nb\n=== End ===\n" {
		t.Errorf("Diff() = %q", got)
	}
	if Normalize("x\n\n\n") != "x\n" {
		t.Errorf("Normalize did not trim")
	}
}
