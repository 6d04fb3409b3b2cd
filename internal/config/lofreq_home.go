package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetLofreqHome returns the lofreq home directory
// Priority order:
//  1. LOFREQ_HOME environment variable (if set)
//  2. Repository root (detected by a .lofreq-root marker or this module's go.mod)
//  3. Current working directory (fallback)
//
// The directory is created if it doesn't exist
func GetLofreqHome() (string, error) {
	// Try env var first
	if home := os.Getenv("LOFREQ_HOME"); home != "" {
		return home, nil
	}

	// Try to find the repo root by looking for a marker or go.mod
	repoRoot, err := findRepoRoot()
	if err == nil && repoRoot != "" {
		lofreqHome := filepath.Join(repoRoot, ".lofreq")
		// Ensure directory exists
		if err := os.MkdirAll(lofreqHome, 0755); err != nil {
			return "", fmt.Errorf("create lofreq home directory: %w", err)
		}
		return lofreqHome, nil
	}

	// Fallback to current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	lofreqHome := filepath.Join(cwd, ".lofreq")

	// Ensure directory exists
	if err := os.MkdirAll(lofreqHome, 0755); err != nil {
		return "", fmt.Errorf("create lofreq home directory: %w", err)
	}

	return lofreqHome, nil
}

// findRepoRoot finds the repository root by walking up from the working
// directory looking for a .lofreq-root marker file, or a go.mod carrying
// this module's path
func findRepoRoot() (string, error) {
	// Start from current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	current := cwd
	for {
		// First check for .lofreq-root marker file (highest priority)
		markerPath := filepath.Join(current, ".lofreq-root")
		if _, err := os.Stat(markerPath); err == nil {
			return current, nil
		}

		// Check for go.mod with this module's path
		goModPath := filepath.Join(current, "go.mod")
		if data, err := os.ReadFile(goModPath); err == nil {
			if strings.Contains(string(data), "github.com/cfriedline/lofreq") {
				return current, nil
			}
		}

		// Move up one directory
		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			break
		}
		current = parent
	}

	return "", fmt.Errorf("repository root not found (looking for .lofreq-root or go.mod with github.com/cfriedline/lofreq)")
}

// HistoryDBPath returns the resolved history database path: the configured
// db_path when one is set, otherwise the default under the lofreq home
func (c *Config) HistoryDBPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}
	return GetHistoryDBPath()
}

// GetHistoryDBPath returns the absolute path to the scan history database
// Always returns: $LOFREQ_HOME/history/scans.db
func GetHistoryDBPath() (string, error) {
	home, err := GetLofreqHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, "history", "scans.db"), nil
}

// GetHistoryDir returns the history directory path
func GetHistoryDir() (string, error) {
	home, err := GetLofreqHome()
	if err != nil {
		return "", err
	}

	historyDir := filepath.Join(home, "history")

	// Ensure directory exists
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return "", fmt.Errorf("create history directory: %w", err)
	}

	return historyDir, nil
}
