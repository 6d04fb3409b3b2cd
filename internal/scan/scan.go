package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/cfriedline/lofreq/internal/fileutil"
)

// DefaultTopN is the number of top files tracked when Options.TopN is unset.
const DefaultTopN = 20

// Logger receives scan progress diagnostics.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// nopLogger discards all diagnostic output.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Warnf(format string, args ...interface{})  {}

// Options configures a line-frequency scan.
type Options struct {
	// Path is the directory to scan. Empty means the current directory.
	Path string
	// Pattern is a substring that file names must contain (empty = all).
	Pattern string
	// MinLines skips files with fewer lines; they appear in no totals.
	MinLines int64
	// FollowLinks traverses symlinked directories.
	FollowLinks bool
	// Workers is the number of parallel walkers (0 = one per CPU).
	Workers int
	// TopN is the number of top files to track (0 = DefaultTopN).
	TopN int
	// Log receives diagnostics. Nil disables them.
	Log Logger
}

// Run walks the directory tree at opts.Path in parallel, counts the lines
// of every regular file whose name contains opts.Pattern, and returns the
// aggregated Summary. Files that cannot be read are counted as errors and
// skipped. Dot-directories such as .git are not descended into.
//
// The walk can be cancelled via ctx.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	log := opts.Log
	if log == nil {
		log = nopLogger{}
	}

	if opts.Path == "" {
		opts.Path = "."
	}
	opts.Path = filepath.Clean(opts.Path)

	// Validate path exists and is accessible
	if statInfo, err := os.Stat(opts.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opts.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opts.Path)
	}

	root, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	collector := newCollector()

	start := time.Now()

	// Configure fastwalk for parallel traversal
	conf := &fastwalk.Config{
		Follow:     opts.FollowLinks,
		NumWorkers: opts.Workers,
	}

	walkErr := fastwalk.Walk(conf, opts.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("error accessing path %s: %v", path, err)
			collector.addError()
			return nil // Continue walking
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if d.IsDir() {
			// Never skip the root, even when the directory itself is hidden
			if path == opts.Path {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				log.Debugf("skipping hidden directory: %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if opts.Pattern != "" && !strings.Contains(d.Name(), opts.Pattern) {
			log.Debugf("skipping file (pattern filter): %s", path)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			collector.addError()
			return nil
		}

		lines, err := fileutil.CountLines(path)
		if err != nil {
			log.Warnf("failed to count %s: %v", path, err)
			collector.addError()
			return nil
		}

		if lines < opts.MinLines {
			log.Debugf("skipping file (below %d lines): %s", opts.MinLines, path)
			return nil
		}

		return collector.add(mustRel(root, path), lines, info.Size())
	})
	if walkErr != nil {
		return nil, walkErr
	}

	summary := collector.finalize(opts.TopN)
	summary.Root = root
	summary.Elapsed = time.Since(start)

	return summary, nil
}

// mustRel returns path relative to root, or path itself when it cannot be
// made relative.
func mustRel(root, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return path
	}
	return rel
}
