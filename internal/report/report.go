// Package report renders scan summaries as tables or JSON and persists
// them to disk for later inspection.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/cfriedline/lofreq/internal/scan"
)

const (
	// tabSpacing is the number of spaces between tabwriter columns.
	tabSpacing = 2
)

// WriteJSON writes the summary to w in indented JSON format.
func WriteJSON(sum *scan.Summary, w io.Writer) error {
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return err
	}

	return nil
}

// WriteTable writes the summary to w in human-readable table format.
// When colorOutput is true the header and error summary are colorized;
// the aligned sections stay plain so tabwriter column widths hold up.
func WriteTable(sum *scan.Summary, w io.Writer, colorOutput bool) error {
	header := fmt.Sprintf("Scan of %s", sum.Root)
	if colorOutput {
		header = color.New(color.FgCyan, color.Bold).Sprint(header)
	}
	fmt.Fprintln(w, header)

	tw := tabwriter.NewWriter(w, 0, 4, tabSpacing, ' ', 0)

	if len(sum.TopFiles) > 0 {
		fmt.Fprintln(tw, "\nTop files:\t\t")
		for i, f := range sum.TopFiles {
			pct := 0.0
			if sum.TotalLines > 0 {
				pct = 100.0 * float64(f.Lines) / float64(sum.TotalLines)
			}
			fmt.Fprintf(tw, "  %d) %s\t%d lines, %s (%.1f%%)\n",
				i+1, f.Path, f.Lines, humanize.IBytes(uint64(f.Size)), pct)
		}
	}

	fmt.Fprintln(tw, "\nStats:\t\t")
	fmt.Fprintf(tw, "Total files:\t%d\n", sum.FileCount)
	fmt.Fprintf(tw, "Total lines:\t%d\n", sum.TotalLines)
	fmt.Fprintf(tw, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(sum.TotalBytes)), sum.TotalBytes)
	fmt.Fprintf(tw, "Median lines:\t%.1f\n", sum.MedianLines)
	if sum.Busiest != nil {
		fmt.Fprintf(tw, "Busiest file:\t%s (%d lines)\n", sum.Busiest.Path, sum.Busiest.Lines)
	}

	fmt.Fprintf(tw, "\nElapsed:\t%v\n", sum.Elapsed)

	if err := tw.Flush(); err != nil {
		return err
	}

	if sum.ErrorCount > 0 {
		warn := fmt.Sprintf("%d paths could not be read", sum.ErrorCount)
		if colorOutput {
			warn = color.YellowString(warn)
		}
		fmt.Fprintln(w, warn)
	}

	return nil
}
