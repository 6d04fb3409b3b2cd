package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes the root command with the given args and returns the
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// outputLines splits command output into non-empty lines.
func outputLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestLsCommandPatternAndSort(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"foo1.txt", "bar.txt", "foobar"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}

	output, err := runCommand(t, "ls", "--pattern", "foo", dir)
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}

	lines := outputLines(output)
	want := []string{
		filepath.Join(dir, "foo1.txt"),
		filepath.Join(dir, "foobar"),
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestLsCommandNoPattern(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}

	output, err := runCommand(t, "ls", dir)
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}

	if lines := outputLines(output); len(lines) != 2 {
		t.Errorf("expected 2 entries, got %d: %v", len(lines), lines)
	}
}

func TestLsCommandMissingDirectory(t *testing.T) {
	_, err := runCommand(t, "ls", filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("ls of a missing directory should fail")
	}
}
