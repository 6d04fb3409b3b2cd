package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cfriedline/lofreq/internal/fileutil"
)

// ScanConfig represents directory scan configuration
type ScanConfig struct {
	// Pattern is a substring that file names must contain to be scanned
	Pattern string `yaml:"pattern"`

	// MinLines reports only files with at least this many lines
	MinLines int64 `yaml:"min_lines"`

	// FollowLinks traverses symlinked directories during scans
	FollowLinks bool `yaml:"follow_links"`

	// Workers is the number of parallel scan workers (0 = one per CPU)
	Workers int `yaml:"workers"`
}

// HistoryConfig represents scan history storage configuration
type HistoryConfig struct {
	// Enabled enables recording scan summaries to the history database
	Enabled bool `yaml:"enabled"`

	// DBPath overrides the history database location
	// (empty = <lofreq home>/history/scans.db)
	DBPath string `yaml:"db_path"`

	// Keep is the number of scan records to retain when pruning
	Keep int `yaml:"keep"`
}

// Config represents lofreq configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error, fatal)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs will be written (empty = no file logs)
	LogDir string `yaml:"log_dir"`

	// MaxLinkDepth is the maximum number of symlinks followed when resolving paths
	MaxLinkDepth int `yaml:"max_link_depth"`

	// Scan contains directory scan configuration
	Scan ScanConfig `yaml:"scan"`

	// History contains scan history storage configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		LogDir:       "",
		MaxLinkDepth: fileutil.DefaultMaxLinkDepth,
		Scan: ScanConfig{
			Pattern:     "",
			MinLines:    0,
			FollowLinks: false,
			Workers:     0, // one per CPU
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "", // resolved to the lofreq home at use time
			Keep:    100,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.MaxLinkDepth != 0 {
		cfg.MaxLinkDepth = yamlCfg.MaxLinkDepth
	}

	// Merge nested sections - need to check if each section was provided at
	// all, so explicit zero values (e.g. history.enabled: false) survive.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if scanSection, exists := rawMap["scan"]; exists && scanSection != nil {
			scanMap, _ := scanSection.(map[string]interface{})

			if _, exists := scanMap["pattern"]; exists {
				cfg.Scan.Pattern = yamlCfg.Scan.Pattern
			}
			if _, exists := scanMap["min_lines"]; exists {
				cfg.Scan.MinLines = yamlCfg.Scan.MinLines
			}
			if _, exists := scanMap["follow_links"]; exists {
				cfg.Scan.FollowLinks = yamlCfg.Scan.FollowLinks
			}
			if _, exists := scanMap["workers"]; exists {
				cfg.Scan.Workers = yamlCfg.Scan.Workers
			}
		}

		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			historyMap, _ := historySection.(map[string]interface{})

			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = yamlCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				// Explicitly set db_path, even if empty string
				cfg.History.DBPath = yamlCfg.History.DBPath
			}
			if _, exists := historyMap["keep"]; exists {
				cfg.History.Keep = yamlCfg.History.Keep
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .lofreq/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".lofreq", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, maxLinkDepth *int) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if maxLinkDepth != nil {
		c.MaxLinkDepth = *maxLinkDepth
	}
}

// MergeScanFlags merges scan-related CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeScanFlags(pattern *string, minLines *int64, followLinks *bool, workers *int) {
	if pattern != nil {
		c.Scan.Pattern = *pattern
	}
	if minLines != nil {
		c.Scan.MinLines = *minLines
	}
	if followLinks != nil {
		c.Scan.FollowLinks = *followLinks
	}
	if workers != nil {
		c.Scan.Workers = *workers
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	// Validate log_level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error, fatal", c.LogLevel)
	}

	// Validate max_link_depth
	if c.MaxLinkDepth <= 0 {
		return fmt.Errorf("max_link_depth must be > 0, got %d", c.MaxLinkDepth)
	}

	// Validate scan configuration
	if c.Scan.MinLines < 0 {
		return fmt.Errorf("scan.min_lines must be >= 0, got %d", c.Scan.MinLines)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must be >= 0, got %d", c.Scan.Workers)
	}

	// Validate history configuration
	if c.History.Enabled && c.History.Keep < 0 {
		return fmt.Errorf("history.keep must be >= 0, got %d", c.History.Keep)
	}

	return nil
}
