package fileutil

import (
	"os"
	"strings"
)

// IsDir reports whether path exists and is a directory. Symlinks are
// followed, so a link pointing at a directory counts.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists. Symlinks are followed, so a
// dangling link reports false.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Chomp returns s without a single trailing newline, if present. A "\r\n"
// ending loses both bytes.
func Chomp(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
