package cmd

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cfriedline/lofreq/internal/config"
	"github.com/cfriedline/lofreq/internal/history"
	"github.com/cfriedline/lofreq/internal/logger"
	"github.com/cfriedline/lofreq/internal/report"
	"github.com/cfriedline/lofreq/internal/scan"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Scan a directory tree and report line-count statistics",
		Long: heredoc.Doc(`
			Walk a directory tree in parallel, count the lines of every regular
			file, and report aggregate statistics: total files and lines, the
			median per-file line count, and the files with the most lines.

			Hidden directories such as .git are not descended into. Files that
			cannot be read are counted as errors and skipped; the scan
			continues.

			Configuration is loaded from .lofreq/config.yaml if present.
			CLI flags override configuration file settings.

			Examples:
			  # Scan the current directory
			  lofreq scan

			  # Only files whose name contains ".go", at least 10 lines each
			  lofreq scan --pattern .go --min-lines 10 src/

			  # Machine-readable output, saved to a report file
			  lofreq scan --json --output report.json

			  # Follow symlinked directories with 8 parallel walkers
			  lofreq scan --follow --workers 8 /data
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	// Add flags
	cmd.Flags().String("config", "", "Path to config file (default: .lofreq/config.yaml)")
	cmd.Flags().String("log-level", "", "Log verbosity (trace, debug, info, warn, error, fatal)")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files (empty = no file logs)")
	cmd.Flags().StringP("pattern", "p", "", "Only count files whose name contains this substring")
	cmd.Flags().Int64("min-lines", 0, "Skip files with fewer lines than this")
	cmd.Flags().Bool("follow", false, "Follow symlinked directories")
	cmd.Flags().Int("workers", 0, "Number of parallel walkers (0 = one per CPU)")
	cmd.Flags().Int("top", 0, "Number of top files to report (0 = default)")
	cmd.Flags().Bool("json", false, "Print the summary as JSON instead of a table")
	cmd.Flags().StringP("output", "o", "", "Also save the summary as JSON to this file")
	cmd.Flags().Bool("no-history", false, "Do not record this scan in the history database")

	return cmd
}

// runScan implements the scan command logic
func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigForCommand(cmd)
	if err != nil {
		return err
	}

	// Build flag pointers for merge (only non-default values)
	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &logLevel
	}

	var logDirPtr *string
	if cmd.Flags().Changed("log-dir") {
		logDir, _ := cmd.Flags().GetString("log-dir")
		logDirPtr = &logDir
	}

	var patternPtr *string
	if cmd.Flags().Changed("pattern") {
		pattern, _ := cmd.Flags().GetString("pattern")
		patternPtr = &pattern
	}

	var minLinesPtr *int64
	if cmd.Flags().Changed("min-lines") {
		minLines, _ := cmd.Flags().GetInt64("min-lines")
		minLinesPtr = &minLines
	}

	var followPtr *bool
	if cmd.Flags().Changed("follow") {
		follow, _ := cmd.Flags().GetBool("follow")
		followPtr = &follow
	}

	var workersPtr *int
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		workersPtr = &workers
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(logLevelPtr, logDirPtr, nil)
	cfg.MergeScanFlags(patternPtr, minLinesPtr, followPtr, workersPtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	var runLog *logger.FileLogger
	if cfg.LogDir != "" {
		runLog, err = logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to open run log: %w", err)
		}
		defer runLog.Close()
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	topN, _ := cmd.Flags().GetInt("top")

	if runLog != nil {
		runLog.Infof("scan started: path=%q pattern=%q follow=%v", path, cfg.Scan.Pattern, cfg.Scan.FollowLinks)
	}

	summary, err := scan.Run(cmd.Context(), scan.Options{
		Path:        path,
		Pattern:     cfg.Scan.Pattern,
		MinLines:    cfg.Scan.MinLines,
		FollowLinks: cfg.Scan.FollowLinks,
		Workers:     cfg.Scan.Workers,
		TopN:        topN,
		Log:         log,
	})
	if err != nil {
		if runLog != nil {
			runLog.Errorf("scan failed: %v", err)
		}
		return err
	}

	if runLog != nil {
		runLog.Infof("scan finished: %d files, %d lines, %d errors in %v",
			summary.FileCount, summary.TotalLines, summary.ErrorCount, summary.Elapsed)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	output := cmd.OutOrStdout()

	if jsonOutput {
		if err := report.WriteJSON(summary, output); err != nil {
			return err
		}
	} else {
		// Detect if we're in a terminal (for color output)
		colorOutput := output == os.Stdout && isatty.IsTerminal(os.Stdout.Fd())
		if err := report.WriteTable(summary, output, colorOutput); err != nil {
			return err
		}
	}

	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		if err := report.Save(summary, outputPath); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		log.Infof("report saved to %s", outputPath)
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg.History.Enabled && !noHistory {
		// History is bookkeeping around the scan; a failure here must not
		// turn a finished scan into a command failure.
		if err := recordHistory(cmd, cfg, summary); err != nil {
			log.Warnf("failed to record scan history: %v", err)
		}
	}

	return nil
}

// recordHistory archives the summary in the scan history database and
// prunes old records per the configured retention.
func recordHistory(cmd *cobra.Command, cfg *config.Config, summary *scan.Summary) error {
	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		return fmt.Errorf("resolve history database path: %w", err)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	rec := &history.Record{
		Root:        summary.Root,
		Pattern:     cfg.Scan.Pattern,
		Files:       summary.FileCount,
		TotalLines:  summary.TotalLines,
		MedianLines: summary.MedianLines,
		DurationMS:  summary.Elapsed.Milliseconds(),
	}
	if err := store.Add(cmd.Context(), rec); err != nil {
		return err
	}

	if cfg.History.Keep > 0 {
		if _, err := store.Prune(cmd.Context(), cfg.History.Keep); err != nil {
			return err
		}
	}

	return nil
}
