package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cfriedline/lofreq/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past scans",
		Long: `Display the scan history recorded by previous runs of the scan
command, newest first.

With --prune, delete all but the newest N records instead of listing.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	// Add flags
	cmd.Flags().String("config", "", "Path to config file (default: .lofreq/config.yaml)")
	cmd.Flags().IntP("limit", "n", 10, "Number of records to show (0 = all)")
	cmd.Flags().Int("prune", 0, "Keep only the newest N records and delete the rest")

	return cmd
}

// runHistory implements the history command logic
func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigForCommand(cmd)
	if err != nil {
		return err
	}

	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		return fmt.Errorf("resolve history database path: %w", err)
	}

	output := cmd.OutOrStdout()

	// No database means no scans have been recorded yet; that is not an
	// error worth failing the command over.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(output, "No scan history recorded")
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	if cmd.Flags().Changed("prune") {
		keep, _ := cmd.Flags().GetInt("prune")
		if keep <= 0 {
			return fmt.Errorf("--prune must be > 0, got %d", keep)
		}

		deleted, err := store.Prune(cmd.Context(), keep)
		if err != nil {
			return fmt.Errorf("prune history: %w", err)
		}

		fmt.Fprintf(output, "Deleted %d record(s), kept the newest %d\n", deleted, keep)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(output, "No scan history recorded")
		return nil
	}

	tw := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tROOT\tPATTERN\tFILES\tLINES\tMEDIAN\tDURATION")
	for _, rec := range records {
		pattern := rec.Pattern
		if pattern == "" {
			pattern = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%dms\n",
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			rec.Root,
			pattern,
			humanize.Comma(rec.Files),
			humanize.Comma(rec.TotalLines),
			rec.MedianLines,
			rec.DurationMS,
		)
	}

	return tw.Flush()
}
