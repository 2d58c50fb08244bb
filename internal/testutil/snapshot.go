// Package testutil provides golden file helpers for dumpy tests.
//
// An input file holds a YAML context, a "---" line and a template. The
// rendered output is compared against a snapshot file with a small YAML
// header. A missing snapshot fails the test; set DUMPY_UPDATE_SNAPSHOTS=1 to
// create or rewrite snapshots.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// UpdateEnv is the environment variable that writes snapshots.
const UpdateEnv = "DUMPY_UPDATE_SNAPSHOTS"

// ErrSnapshotMissing is returned by CompareSnapshot when there is no
// snapshot file and updating is off.
var ErrSnapshotMissing = errors.New("snapshot missing")

// Snapshot represents a parsed snapshot file.
type Snapshot struct {
	Source      string `yaml:"source"`      // test that generated the snapshot
	Description string `yaml:"description"` // template source
	InputFile   string `yaml:"input_file"`  // input file path
	Expected    string `yaml:"-"`           // expected output
}

// ParseSnapshotFile parses a snapshot file.
func ParseSnapshotFile(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(string(content))
}

// ParseSnapshot parses the content of a snapshot file.
// Format: ---\n<yaml metadata>\n---\n<expected output>
func ParseSnapshot(content string) (*Snapshot, error) {
	snap := &Snapshot{}

	content = strings.TrimPrefix(content, "---\n")
	parts := strings.SplitN(content, "\n---\n", 2)
	if len(parts) < 2 {
		// No metadata, entire content is expected output
		snap.Expected = content
		return snap, nil
	}

	if err := yaml.Unmarshal([]byte(parts[0]), snap); err != nil {
		return nil, err
	}
	snap.Expected = parts[1]
	return snap, nil
}

// Format renders the snapshot in the file format read by ParseSnapshot.
func (s *Snapshot) Format() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	buf.WriteString("---\n")
	buf.WriteString(s.Expected)
	return buf.String(), nil
}

// SnapshotPath returns the snapshot file for a test and input file.
func SnapshotPath(snapshotDir, testPrefix, inputFile string) string {
	base := filepath.Base(inputFile)
	return filepath.Join(snapshotDir, testPrefix+"@"+base+".snap")
}

// AssertSnapshot compares actual against the snapshot at path. The snapshot
// is written instead when UpdateEnv is set.
func AssertSnapshot(t testing.TB, path string, actual *Snapshot) {
	t.Helper()

	diff, err := CompareSnapshot(path, actual, os.Getenv(UpdateEnv) != "")
	if errors.Is(err, ErrSnapshotMissing) {
		t.Fatalf("snapshot not found: %s (set %s=1 to create it)\nActual output:\n%s", path, UpdateEnv, actual.Expected)
	}
	if err != nil {
		t.Fatalf("%v", err)
	}
	if diff != "" {
		t.Errorf("snapshot mismatch for %s\n%s", path, diff)
	}
}

// CompareSnapshot returns the diff between the snapshot at path and actual,
// or "" when they match. With update set the snapshot is written and the
// result is always "".
func CompareSnapshot(path string, actual *Snapshot, update bool) (string, error) {
	if update {
		return "", writeSnapshot(path, actual)
	}
	existing, err := ParseSnapshotFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrSnapshotMissing, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	if Normalize(existing.Expected) != Normalize(actual.Expected) {
		return Diff(existing.Expected, actual.Expected), nil
	}
	return "", nil
}

func writeSnapshot(path string, snap *Snapshot) error {
	content, err := snap.Format()
	if err != nil {
		return fmt.Errorf("failed to format snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Normalize trims trailing newlines so files edited by hand still match.
func Normalize(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}

// Diff returns a simple diff between expected and actual output.
func Diff(expected, actual string) string {
	var sb strings.Builder
	sb.WriteString("=== Expected ===\n")
	sb.WriteString(expected)
	if !strings.HasSuffix(expected, "\n") {
		sb.WriteString("⏎\n") // Show missing newline
	}
	sb.WriteString("=== Actual ===\n")
	sb.WriteString(actual)
	if !strings.HasSuffix(actual, "\n") {
		sb.WriteString("⏎\n")
	}
	sb.WriteString("=== End ===\n")
	return sb.String()
}
