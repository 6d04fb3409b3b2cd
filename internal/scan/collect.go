// Package scan walks a directory tree in parallel and aggregates per-file
// line counts into a frequency summary.
package scan

import (
	"sort"
	"sync"
	"time"

	"github.com/cfriedline/lofreq/internal/seq"
	"github.com/cfriedline/lofreq/internal/stats"
)

// FileStat represents a single scanned file.
type FileStat struct {
	// Path is the file path relative to the scan root.
	Path string `json:"path"`
	// Lines is the number of newline-terminated lines in the file.
	Lines int64 `json:"lines"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// Summary holds aggregate statistics for a directory scan.
type Summary struct {
	// Root is the directory that was scanned.
	Root string `json:"root"`
	// FileCount is the number of files counted.
	FileCount int64 `json:"file_count"`
	// TotalLines is the cumulative line count of all counted files.
	TotalLines int64 `json:"total_lines"`
	// TotalBytes is the cumulative size of all counted files.
	TotalBytes int64 `json:"total_bytes"`
	// MedianLines is the median per-file line count.
	MedianLines float64 `json:"median_lines"`
	// Busiest is the file with the most lines, nil when nothing was counted.
	Busiest *FileStat `json:"busiest,omitempty"`
	// TopFiles contains the N files with the most lines, descending.
	TopFiles []FileStat `json:"top_files"`
	// ErrorCount is the number of files skipped due to errors.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// lineSeqGrowBy sizes the line-count sequence in whole chunks so large
// trees do not reallocate on every append.
const lineSeqGrowBy = 1024

// collector aggregates per-file results from concurrent fastwalk callbacks
// using a mutex.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	lines      *seq.IntSeq
	files      []FileStat
	totalLines int64
	totalBytes int64
	errorCount int64
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{
		lines: seq.New(lineSeqGrowBy),
		files: make([]FileStat, 0),
	}
}

// addError increments the error counter. This operation is protected by a
// mutex since fastwalk calls the callback from multiple goroutines
// concurrently.
func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// add records one counted file. The line count lands in the same slot of
// the sequence as the file does in the file list, so summary statistics can
// map indices back to paths.
func (c *collector) add(path string, lines, size int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.lines.Append(int(lines)); err != nil {
		return err
	}
	c.files = append(c.files, FileStat{Path: path, Lines: lines, Size: size})
	c.totalLines += lines
	c.totalBytes += size
	return nil
}

// finalize produces the final Summary from the collected data: the median
// line count, the busiest file, and the topN files by line count.
func (c *collector) finalize(topN int) *Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	counts := make([]float64, c.lines.Len())
	for i := range counts {
		counts[i] = float64(c.lines.At(i))
	}

	summary := &Summary{
		FileCount:   int64(len(c.files)),
		TotalLines:  c.totalLines,
		TotalBytes:  c.totalBytes,
		MedianLines: stats.Median(counts),
		ErrorCount:  c.errorCount,
	}

	if i := stats.Argmax(counts); i >= 0 {
		busiest := c.files[i]
		summary.Busiest = &busiest
	}

	// Sort by line count (largest first) and trim to top N. Ties break on
	// path so the order is stable across runs.
	top := make([]FileStat, len(c.files))
	copy(top, c.files)
	sort.Slice(top, func(i, j int) bool {
		if top[i].Lines != top[j].Lines {
			return top[i].Lines > top[j].Lines
		}
		return top[i].Path < top[j].Path
	})
	if len(top) > topN {
		top = top[:topN]
	}
	summary.TopFiles = top

	return summary
}
