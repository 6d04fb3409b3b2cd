package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Sentinel errors reported by file loading and line counting. They are
// always wrapped with context; test for them with errors.Is.
var (
	// ErrFileTooLarge is returned by LoadFile when the file size cannot be
	// represented in a single in-memory buffer.
	ErrFileTooLarge = errors.New("file too large to load into memory")

	// ErrShortRead is returned by LoadFile when the file yields fewer bytes
	// than its reported size, e.g. because it was truncated mid-read.
	ErrShortRead = errors.New("short read")

	// ErrCountOverflow is returned by CountLines when the line count cannot
	// be represented.
	ErrCountOverflow = errors.New("line count overflow")
)

// readChunkSize is the buffer size used when streaming files.
const readChunkSize = 32 * 1024

// LoadFile reads the entire file at path into memory and returns its
// contents. The returned buffer's length equals the file size and its
// capacity is exactly one byte larger, so callers that need a trailing
// terminator byte can append it without reallocating.
//
// Returns ErrFileTooLarge if the file does not fit in a single buffer and
// ErrShortRead if the file shrank between stat and read.
func LoadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := info.Size()
	if size >= math.MaxInt {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, size)
	}

	// One spare capacity slot for a terminator byte.
	buf := make([]byte, size, size+1)
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %s yielded fewer than %d bytes", ErrShortRead, path, size)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return buf, nil
}

// CountLines counts the newline bytes in the file at path. The file is read
// in binary mode and streamed in fixed-size chunks, so files of any size can
// be counted without loading them into memory. A final line without a
// trailing newline is not counted.
//
// Returns ErrCountOverflow if the count cannot be represented in an int64.
func CountLines(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var count int64
	buf := make([]byte, readChunkSize)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			c := int64(bytes.Count(buf[:n], []byte{'\n'}))
			if count > math.MaxInt64-c {
				return 0, fmt.Errorf("%w: counting %s", ErrCountOverflow, path)
			}
			count += c
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return 0, fmt.Errorf("failed to read file: %w", readErr)
		}
	}

	return count, nil
}
