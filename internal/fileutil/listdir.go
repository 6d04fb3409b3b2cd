package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListOptions configures the directory listing behavior
type ListOptions struct {
	// Pattern is a substring that entry names must contain; empty matches all
	Pattern string
	// Sorted returns entries in ascending byte-wise lexicographic order
	// instead of the operating system's enumeration order
	Sorted bool
}

// ListDir lists the entries of dir whose names contain opts.Pattern and
// returns them joined with dir (e.g. "dir/name"). The match is a plain
// substring test on the entry name, not a glob. With opts.Sorted unset the
// entries come back in the order the operating system enumerates them,
// which is arbitrary.
func ListDir(dir string, opts ListOptions) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, err)
	}
	defer f.Close()

	// Readdirnames preserves enumeration order; os.ReadDir would sort.
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	matches := make([]string, 0, len(names))
	for _, name := range names {
		if opts.Pattern != "" && !strings.Contains(name, opts.Pattern) {
			continue
		}
		matches = append(matches, filepath.Join(dir, name))
	}

	if opts.Sorted {
		sort.Strings(matches)
	}

	return matches, nil
}
