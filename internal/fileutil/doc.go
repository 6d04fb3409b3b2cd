// Package fileutil provides centralized file loading, line counting, directory
// listing, and symlink-aware path resolution utilities.
//
// This package serves as a single source of truth for all low-level file
// operations in lofreq, offering whole-file loading with explicit size guards,
// substring-filtered directory listings, and iterative symlink resolution that
// never mutates the process working directory.
//
// # Purpose
//
// The fileutil package is designed for:
//   - Loading whole files into memory with a spare terminator slot
//   - Counting newline-terminated lines in arbitrarily large files
//   - Listing directory entries filtered by a name substring
//   - Joining and canonicalizing paths (symlinks and dot segments resolved)
//   - Following symlink chains step by step with an explicit depth cap
//
// # Key Features
//
//   - Whole-file loads return a buffer sized exactly to the file, with one
//     spare capacity slot so a terminator byte can be appended without
//     reallocation
//   - Oversized files are rejected with ErrFileTooLarge instead of exhausting
//     memory
//   - Line counting streams the file in fixed-size chunks; memory use is
//     independent of file size
//   - Directory listings preserve the operating system's enumeration order
//     unless lexicographic sorting is requested
//   - Symlink resolution follows at most MaxLinkDepth links and reports
//     cycles with ErrTooManyLinks rather than looping forever
//   - The process working directory is never changed; containing directories
//     are computed and canonicalized explicitly
//   - Structured *ResolveError values identify which operation failed and on
//     which path
//
// # Main Components
//
// LoadFile - Reads an entire file into memory:
//   - Returns a []byte whose length equals the file size
//   - Capacity is one byte larger than the length, so appending a single
//     terminator never reallocates
//
// CountLines - Counts '\n' bytes in a file:
//   - Streams in 32 KiB chunks
//   - Returns ErrCountOverflow if the count cannot be represented
//
// ListOptions / ListDir - Directory listing:
//   - Pattern: substring that entry names must contain (empty matches all)
//   - Sorted: return entries in ascending byte-wise lexicographic order
//
// Resolver - Path canonicalization and symlink following:
//   - JoinCanonical: joins two path fragments and canonicalizes the result
//   - ResolveSymlinks: follows a chain of symlinks to its non-link end
//   - MaxLinkDepth: caps chain length (default 40, matching the kernel limit)
//
// # Usage Examples
//
// Loading a file with room for a terminator:
//
//	data, err := fileutil.LoadFile("/path/to/ref.fa")
//	if err != nil {
//	    return err
//	}
//	data = append(data, 0) // never reallocates
//
// Counting lines:
//
//	n, err := fileutil.CountLines("/path/to/variants.vcf")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d lines\n", n)
//
// Listing entries containing a substring, sorted:
//
//	entries, err := fileutil.ListDir("/data", fileutil.ListOptions{
//	    Pattern: ".bam",
//	    Sorted:  true,
//	})
//
// Resolving a symlink chain:
//
//	r := fileutil.NewResolver(nil)
//	real, err := r.ResolveSymlinks("/usr/local/bin/tool")
//	if err != nil {
//	    var rerr *fileutil.ResolveError
//	    if errors.As(err, &rerr) {
//	        log.Printf("%s failed on %s", rerr.Op, rerr.Path)
//	    }
//	    return err
//	}
//
// # Design Principles
//
// Single Source of Truth:
// This package centralizes all low-level file system operations to avoid
// duplicated logic across the codebase. Command implementations should use
// this package rather than calling os and path/filepath directly.
//
// No Working Directory Mutation:
// Symlink resolution computes and canonicalizes each link's containing
// directory explicitly instead of changing into it. The process working
// directory is observable global state; functions here never touch it, so
// callers need no serialization around them.
//
// Recoverable Errors:
// Conditions like oversized files, unrepresentable line counts, and overlong
// symlink chains are reported as wrapped sentinel errors the caller can test
// with errors.Is. Nothing in this package terminates the process.
//
// Standard Library Only:
// The package uses only Go's standard library (os, path/filepath, bytes, io,
// sort, strings) with no external dependencies, ensuring minimal overhead and
// maximum compatibility.
package fileutil
