package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfriedline/lofreq/internal/fileutil"
)

// NewLsCommand creates the ls command
func NewLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <directory>",
		Short: "List directory entries matching a name substring",
		Long: `List the entries of a directory, one joined path per line.

The --pattern flag keeps only entries whose name contains the given
substring (a plain contains test, not a glob). By default entries are
sorted lexicographically; --sort=false returns them in the order the
operating system enumerates them.`,
		Args: cobra.ExactArgs(1),
		RunE: runLs,
	}

	// Add flags
	cmd.Flags().StringP("pattern", "p", "", "Keep only entries whose name contains this substring")
	cmd.Flags().Bool("sort", true, "Sort entries lexicographically")

	return cmd
}

// runLs implements the ls command logic
func runLs(cmd *cobra.Command, args []string) error {
	pattern, _ := cmd.Flags().GetString("pattern")
	sorted, _ := cmd.Flags().GetBool("sort")

	entries, err := fileutil.ListDir(args[0], fileutil.ListOptions{
		Pattern: pattern,
		Sorted:  sorted,
	})
	if err != nil {
		return err
	}

	output := cmd.OutOrStdout()
	for _, entry := range entries {
		fmt.Fprintln(output, entry)
	}

	return nil
}
