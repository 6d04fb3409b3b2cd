package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeLines creates a file holding n newline-terminated lines.
func writeLines(t *testing.T, dir, name string, n int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Repeat("line\n", n)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	return path
}

// fixtureTree builds the standard test tree and returns its root:
//
//	a.txt     3 lines
//	b.txt     1 line
//	c.log     5 lines
//	empty.txt 0 lines
//	sub/d.txt 7 lines
//	.hidden/e.txt 9 lines (skipped by the scanner)
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeLines(t, root, "a.txt", 3)
	writeLines(t, root, "b.txt", 1)
	writeLines(t, root, "c.log", 5)
	writeLines(t, root, "empty.txt", 0)

	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("failed to create sub: %v", err)
	}
	writeLines(t, sub, "d.txt", 7)

	hidden := filepath.Join(root, ".hidden")
	if err := os.Mkdir(hidden, 0755); err != nil {
		t.Fatalf("failed to create .hidden: %v", err)
	}
	writeLines(t, hidden, "e.txt", 9)

	return root
}

func TestRunCountsTree(t *testing.T) {
	root := fixtureTree(t)

	summary, err := Run(context.Background(), Options{Path: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.FileCount != 5 {
		t.Errorf("FileCount = %d, want 5", summary.FileCount)
	}
	if summary.TotalLines != 16 {
		t.Errorf("TotalLines = %d, want 16", summary.TotalLines)
	}
	// Counts are 0, 1, 3, 5, 7, so the median is 3
	if summary.MedianLines != 3 {
		t.Errorf("MedianLines = %v, want 3", summary.MedianLines)
	}
	if summary.Busiest == nil {
		t.Fatal("Busiest = nil, want the 7-line file")
	}
	if summary.Busiest.Path != filepath.Join("sub", "d.txt") {
		t.Errorf("Busiest.Path = %q, want %q", summary.Busiest.Path, filepath.Join("sub", "d.txt"))
	}
	if summary.Busiest.Lines != 7 {
		t.Errorf("Busiest.Lines = %d, want 7", summary.Busiest.Lines)
	}
	if summary.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", summary.ErrorCount)
	}
	if summary.Root == "" || !filepath.IsAbs(summary.Root) {
		t.Errorf("Root = %q, want absolute path", summary.Root)
	}

	// Every file contributes its byte size
	var wantBytes int64
	for _, rel := range []string{"a.txt", "b.txt", "c.log", "empty.txt", filepath.Join("sub", "d.txt")} {
		info, err := os.Stat(filepath.Join(root, rel))
		if err != nil {
			t.Fatalf("stat %s: %v", rel, err)
		}
		wantBytes += info.Size()
	}
	if summary.TotalBytes != wantBytes {
		t.Errorf("TotalBytes = %d, want %d", summary.TotalBytes, wantBytes)
	}
}

func TestRunSkipsHiddenDirectories(t *testing.T) {
	root := fixtureTree(t)

	summary, err := Run(context.Background(), Options{Path: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, fs := range summary.TopFiles {
		if strings.Contains(fs.Path, ".hidden") {
			t.Errorf("hidden directory file leaked into results: %q", fs.Path)
		}
	}
}

func TestRunPatternFilter(t *testing.T) {
	root := fixtureTree(t)

	summary, err := Run(context.Background(), Options{Path: root, Pattern: ".txt"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.FileCount != 4 {
		t.Errorf("FileCount = %d, want 4 (c.log filtered out)", summary.FileCount)
	}
	if summary.TotalLines != 11 {
		t.Errorf("TotalLines = %d, want 11", summary.TotalLines)
	}
	for _, fs := range summary.TopFiles {
		if !strings.Contains(filepath.Base(fs.Path), ".txt") {
			t.Errorf("non-matching file in results: %q", fs.Path)
		}
	}
}

func TestRunMinLines(t *testing.T) {
	root := fixtureTree(t)

	summary, err := Run(context.Background(), Options{Path: root, MinLines: 3})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3 (a.txt, c.log, sub/d.txt)", summary.FileCount)
	}
	if summary.TotalLines != 15 {
		t.Errorf("TotalLines = %d, want 15", summary.TotalLines)
	}
}

func TestRunTopN(t *testing.T) {
	root := fixtureTree(t)

	summary, err := Run(context.Background(), Options{Path: root, TopN: 2})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(summary.TopFiles) != 2 {
		t.Fatalf("len(TopFiles) = %d, want 2", len(summary.TopFiles))
	}
	if summary.TopFiles[0].Lines != 7 || summary.TopFiles[1].Lines != 5 {
		t.Errorf("TopFiles lines = %d, %d, want 7, 5", summary.TopFiles[0].Lines, summary.TopFiles[1].Lines)
	}
}

func TestRunTopFilesDescending(t *testing.T) {
	root := fixtureTree(t)

	summary, err := Run(context.Background(), Options{Path: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i := 1; i < len(summary.TopFiles); i++ {
		if summary.TopFiles[i].Lines > summary.TopFiles[i-1].Lines {
			t.Fatalf("TopFiles not descending at %d: %v", i, summary.TopFiles)
		}
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	summary, err := Run(context.Background(), Options{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.FileCount != 0 {
		t.Errorf("FileCount = %d, want 0", summary.FileCount)
	}
	if summary.Busiest != nil {
		t.Errorf("Busiest = %v, want nil", summary.Busiest)
	}
	if summary.MedianLines != 0 {
		t.Errorf("MedianLines = %v, want 0", summary.MedianLines)
	}
	if len(summary.TopFiles) != 0 {
		t.Errorf("TopFiles = %v, want empty", summary.TopFiles)
	}
}

func TestRunFollowLinks(t *testing.T) {
	root := t.TempDir()
	writeLines(t, root, "a.txt", 1)

	outside := t.TempDir()
	writeLines(t, outside, "linked.txt", 4)
	if err := os.Symlink(outside, filepath.Join(root, "linkdir")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	noFollow, err := Run(context.Background(), Options{Path: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if noFollow.FileCount != 1 {
		t.Errorf("without Follow: FileCount = %d, want 1", noFollow.FileCount)
	}

	follow, err := Run(context.Background(), Options{Path: root, FollowLinks: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if follow.FileCount != 2 {
		t.Errorf("with Follow: FileCount = %d, want 2", follow.FileCount)
	}
	if follow.TotalLines != 5 {
		t.Errorf("with Follow: TotalLines = %d, want 5", follow.TotalLines)
	}
}

func TestRunMissingPath(t *testing.T) {
	_, err := Run(context.Background(), Options{Path: filepath.Join(t.TempDir(), "gone")})
	if err == nil {
		t.Fatal("Run() expected error for missing path")
	}
}

func TestRunOnFile(t *testing.T) {
	root := t.TempDir()
	path := writeLines(t, root, "plain.txt", 1)

	_, err := Run(context.Background(), Options{Path: path})
	if err == nil {
		t.Fatal("Run() expected error for non-directory path")
	}
	if !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Run() error = %v, want not-a-directory", err)
	}
}

func TestRunCancelled(t *testing.T) {
	root := fixtureTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Path: root})
	if err == nil {
		t.Fatal("Run() expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
