package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/cfriedline/lofreq/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for lofreq
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lofreq",
		Short: "Line-frequency statistics for files and directory trees",
		Long: heredoc.Doc(`
			lofreq counts newline-terminated lines across files and directory
			trees and reports aggregate statistics such as totals, medians and
			the busiest files.

			It also exposes the low-level utilities the scanner is built from:
			symlink-aware path resolution, substring-filtered directory
			listings, per-file line counts and median computation over
			arbitrary numbers.
		`),
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewResolveCommand())
	cmd.AddCommand(NewLsCommand())
	cmd.AddCommand(NewLinesCommand())
	cmd.AddCommand(NewMedianCommand())
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// loadConfigForCommand loads configuration for a command, honoring its
// --config flag when one was given and falling back to .lofreq/config.yaml
// in the working directory otherwise.
func loadConfigForCommand(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
