package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cfriedline/lofreq/internal/fileutil"
	"github.com/cfriedline/lofreq/internal/stats"
)

// NewMedianCommand creates the median command
func NewMedianCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "median [number]...",
		Short: "Compute the median of a list of numbers",
		Long: `Compute the median of the numbers given as arguments, or read one
number per line from standard input when no arguments are given.

An empty input has a median of 0.`,
		Args: cobra.ArbitraryArgs,
		RunE: runMedian,
	}

	return cmd
}

// runMedian implements the median command logic
func runMedian(cmd *cobra.Command, args []string) error {
	var values []float64
	var err error

	if len(args) > 0 {
		values, err = parseNumbers(args)
	} else {
		values, err = readNumbers(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%g\n", stats.Median(values))
	return nil
}

// parseNumbers converts each argument to a float64
func parseNumbers(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", arg, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// readNumbers reads one number per line from r until EOF. Blank lines are
// skipped so piped input with a trailing newline parses cleanly.
func readNumbers(r io.Reader) ([]float64, error) {
	var values []float64

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}

		trimmed := strings.TrimSpace(fileutil.Chomp(line))
		if trimmed != "" {
			v, parseErr := strconv.ParseFloat(trimmed, 64)
			if parseErr != nil {
				return nil, fmt.Errorf("invalid number %q: %w", trimmed, parseErr)
			}
			values = append(values, v)
		}

		if err == io.EOF {
			break
		}
	}

	return values, nil
}
