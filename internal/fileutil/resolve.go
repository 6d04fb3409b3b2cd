package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxLinkDepth is the number of symlinks ResolveSymlinks follows
// before giving up, matching the kernel's nesting limit.
const DefaultMaxLinkDepth = 40

// ErrTooManyLinks is returned by ResolveSymlinks when a chain exceeds the
// configured depth, which usually means the links form a cycle.
var ErrTooManyLinks = errors.New("too many levels of symbolic links")

// ResolveError describes a failed path resolution step. Op identifies the
// operation ("lstat", "readlink", "follow", "canonicalize") and Path the
// path it was applied to.
type ResolveError struct {
	Op   string
	Path string
	Err  error
}

// Error returns the failure formatted as "op path: cause".
func (e *ResolveError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error, so errors.Is sees through to
// sentinels like ErrTooManyLinks and os error values.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Logger receives diagnostic output from path operations.
type Logger interface {
	Tracef(format string, args ...interface{})
}

// nopLogger discards all diagnostic output.
type nopLogger struct{}

func (nopLogger) Tracef(format string, args ...interface{}) {}

// Resolver canonicalizes paths and follows symlink chains. It never changes
// the process working directory; the containing directory of each link is
// computed and canonicalized explicitly instead.
type Resolver struct {
	// MaxLinkDepth caps how many symlinks ResolveSymlinks follows before
	// returning ErrTooManyLinks. Zero or negative means DefaultMaxLinkDepth.
	MaxLinkDepth int

	log Logger
}

// NewResolver creates a Resolver with the default link depth. A nil logger
// disables diagnostic output.
func NewResolver(log Logger) *Resolver {
	if log == nil {
		log = nopLogger{}
	}
	return &Resolver{
		MaxLinkDepth: DefaultMaxLinkDepth,
		log:          log,
	}
}

// JoinCanonical joins dir and name into a single path and canonicalizes it:
// the result is absolute, contains no dot segments, and has all symlinks
// resolved. The joined path must exist.
func (r *Resolver) JoinCanonical(dir, name string) (string, error) {
	joined := filepath.Join(dir, name)

	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", &ResolveError{Op: "canonicalize", Path: joined, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &ResolveError{Op: "canonicalize", Path: joined, Err: err}
	}

	r.log.Tracef("joined %q and %q into %q", dir, name, resolved)
	return resolved, nil
}

// ResolveSymlinks follows the symlink chain starting at path until it
// reaches a non-link and returns the canonical path of that final target.
// A path that is not a symlink is returned unchanged. Relative link targets
// are interpreted relative to the link's containing directory.
//
// At most MaxLinkDepth links are followed; a longer chain returns
// ErrTooManyLinks wrapped in a *ResolveError. Every step of the chain,
// including the final target, must exist.
func (r *Resolver) ResolveSymlinks(path string) (string, error) {
	maxDepth := r.MaxLinkDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxLinkDepth
	}

	cur := path
	followed := 0
	for {
		info, err := os.Lstat(cur)
		if err != nil {
			return "", &ResolveError{Op: "lstat", Path: cur, Err: err}
		}
		if info.Mode()&os.ModeSymlink == 0 {
			break
		}

		if followed >= maxDepth {
			return "", &ResolveError{Op: "follow", Path: cur, Err: ErrTooManyLinks}
		}

		target, err := os.Readlink(cur)
		if err != nil {
			return "", &ResolveError{Op: "readlink", Path: cur, Err: err}
		}

		cur, err = r.follow(cur, target)
		if err != nil {
			return "", err
		}

		followed++
		r.log.Tracef("followed link %d to %q", followed, cur)
	}

	// Not a link: hand back the input untouched.
	if followed == 0 {
		return path, nil
	}

	r.log.Tracef("resolved %q to %q after %d links", path, cur, followed)
	return cur, nil
}

// follow computes the next path in a chain: the link target joined onto
// the canonical directory containing the link. The directory portion of
// the joined path is canonicalized by the filesystem BEFORE any dot
// segments collapse, so a ".." that follows a symlinked component backs
// out of the link's real parent, not out of the link's name. The result
// has a fully canonical directory and an unresolved final component.
func (r *Resolver) follow(cur, target string) (string, error) {
	raw := target
	if !filepath.IsAbs(target) {
		base, err := r.containingDir(cur)
		if err != nil {
			return "", err
		}
		raw = base + string(filepath.Separator) + target
	}

	// Split on the last separator by hand; filepath.Dir would clean the
	// path lexically, which is the exact failure this avoids.
	i := strings.LastIndexByte(raw, filepath.Separator)
	dir, name := raw[:i], raw[i+1:]
	if dir == "" {
		dir = string(filepath.Separator)
	}

	// A target ending in a dot segment names a directory outright;
	// canonicalize the whole thing.
	if name == "" || name == "." || name == ".." {
		resolved, err := filepath.EvalSymlinks(raw)
		if err != nil {
			return "", &ResolveError{Op: "canonicalize", Path: raw, Err: err}
		}
		return resolved, nil
	}

	resolvedDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", &ResolveError{Op: "canonicalize", Path: dir, Err: err}
	}
	return filepath.Join(resolvedDir, name), nil
}

// containingDir returns the canonical absolute form of path's parent
// directory.
func (r *Resolver) containingDir(path string) (string, error) {
	dir := filepath.Dir(path)

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &ResolveError{Op: "canonicalize", Path: dir, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &ResolveError{Op: "canonicalize", Path: dir, Err: err}
	}

	return resolved, nil
}
