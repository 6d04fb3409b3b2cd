package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfriedline/lofreq/internal/fileutil"
	"github.com/cfriedline/lofreq/internal/logger"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Resolve symlink chains to canonical paths",
		Long: `Follow each path's chain of symbolic links to its end and print the
resolved path. Paths that are not symlinks are printed unchanged.

Relative link targets are interpreted relative to the directory containing
the link, so the output matches what the kernel would open. Chains longer
than the configured depth are reported as cycles.

Configuration is loaded from .lofreq/config.yaml if present.
CLI flags override configuration file settings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolve,
	}

	// Add flags
	cmd.Flags().String("config", "", "Path to config file (default: .lofreq/config.yaml)")
	cmd.Flags().String("log-level", "", "Log verbosity (trace, debug, info, warn, error, fatal)")
	cmd.Flags().Int("max-links", 0, "Maximum symlinks to follow per path (0 = use config)")
	cmd.Flags().String("join", "", "Join this name onto each path and canonicalize instead of resolving")

	return cmd
}

// runResolve implements the resolve command logic
func runResolve(cmd *cobra.Command, args []string) error {
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

	var maxLinksPtr *int
	if cmd.Flags().Changed("max-links") {
		maxLinks, _ := cmd.Flags().GetInt("max-links")
		maxLinksPtr = &maxLinks
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(logLevelPtr, nil, maxLinksPtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	resolver := fileutil.NewResolver(log)
	resolver.MaxLinkDepth = cfg.MaxLinkDepth

	joinName, _ := cmd.Flags().GetString("join")
	output := cmd.OutOrStdout()

	failed := 0
	for _, path := range args {
		if !fileutil.FileExists(path) {
			log.Warnf("%s does not exist", path)
		}

		var resolved string
		var err error
		if joinName != "" {
			resolved, err = resolver.JoinCanonical(path, joinName)
		} else {
			resolved, err = resolver.ResolveSymlinks(path)
		}
		if err != nil {
			log.Errorf("failed to resolve %s: %v", path, err)
			failed++
			continue
		}

		fmt.Fprintln(output, resolved)
	}

	if failed > 0 {
		return fmt.Errorf("failed to resolve %d of %d paths", failed, len(args))
	}
	return nil
}
