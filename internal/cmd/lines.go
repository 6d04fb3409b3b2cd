package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/cfriedline/lofreq/internal/fileutil"
	"github.com/cfriedline/lofreq/internal/logger"
	"github.com/cfriedline/lofreq/internal/stats"
)

// NewLinesCommand creates the lines command
func NewLinesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines <file>...",
		Short: "Count newline-terminated lines in files",
		Long: `Count the newline bytes in each file and print one count per line.

Files are read in binary mode, so counts are identical across platforms.
A final line without a trailing newline is not counted. With more than one
file a total is printed as well; --median adds the median across files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLines,
	}

	// Add flags
	cmd.Flags().Bool("median", false, "Also print the median line count across the files")

	return cmd
}

// runLines implements the lines command logic
func runLines(cmd *cobra.Command, args []string) error {
	showMedian, _ := cmd.Flags().GetBool("median")
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), "info")
	output := cmd.OutOrStdout()

	counts := make([]float64, 0, len(args))
	var total int64
	failed := 0

	for _, path := range args {
		count, err := fileutil.CountLines(path)
		if err != nil {
			// An unrepresentable count means the whole run is meaningless,
			// not just this file.
			if errors.Is(err, fileutil.ErrCountOverflow) {
				log.Fatalf("%v", err)
				return err
			}
			log.Errorf("failed to count %s: %v", path, err)
			failed++
			continue
		}

		fmt.Fprintf(output, "%8d %s\n", count, path)
		counts = append(counts, float64(count))

		if total > math.MaxInt64-count {
			err := fmt.Errorf("%w: summing %d files", fileutil.ErrCountOverflow, len(args))
			log.Fatalf("%v", err)
			return err
		}
		total += count
	}

	if len(args) > 1 {
		fmt.Fprintf(output, "%8d total\n", total)
	}
	if showMedian {
		fmt.Fprintf(output, "%8.1f median\n", stats.Median(counts))
	}

	if failed > 0 {
		return fmt.Errorf("failed to count %d of %d files", failed, len(args))
	}
	return nil
}
