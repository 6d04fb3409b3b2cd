// Package history persists a ledger of past scans in a SQLite database so
// runs can be listed and compared after the fact.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Record is one archived scan run.
type Record struct {
	ID          string
	Root        string
	Pattern     string
	Files       int64
	TotalLines  int64
	MedianLines float64
	DurationMS  int64
	Timestamp   time.Time
}

// Store manages the SQLite database of past scans.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens the history database at dbPath, creating the file and its
// parent directory as needed, and initializes the schema.
func NewStore(dbPath string) (*Store, error) {
	// Handle in-memory database
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Set busy_timeout FIRST so the remaining pragmas wait on locks held
	// by a concurrent scan instead of failing immediately.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on
// lock errors, which can occur when two processes initialize the same
// database file.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}

		// Only retry on "database is locked" errors
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add archives a scan record. A record ID is generated when rec.ID is
// empty, and the timestamp defaults to now; both are written back to rec.
func (s *Store) Add(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	query := `INSERT INTO scans
		(id, root, pattern, file_count, total_lines, median_lines, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.Root,
		rec.Pattern,
		rec.Files,
		rec.TotalLines,
		rec.MedianLines,
		rec.DurationMS,
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert scan record: %w", err)
	}

	return nil
}

// Recent returns the most recent scan records, newest first. A limit of 0
// or less returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Record, error) {
	query := `SELECT id, root, pattern, file_count, total_lines, median_lines, duration_ms, created_at
		FROM scans
		ORDER BY created_at DESC, id`

	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scan records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		var pattern sql.NullString
		err := rows.Scan(
			&rec.ID,
			&rec.Root,
			&pattern,
			&rec.Files,
			&rec.TotalLines,
			&rec.MedianLines,
			&rec.DurationMS,
			&rec.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan record row: %w", err)
		}

		if pattern.Valid {
			rec.Pattern = pattern.String
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record rows: %w", err)
	}

	return records, nil
}

// Prune deletes all but the newest keep records and returns the number
// deleted. keep of 0 or less keeps everything.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	query := `DELETE FROM scans WHERE id NOT IN (
		SELECT id FROM scans ORDER BY created_at DESC, id LIMIT ?)`

	result, err := s.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("prune scan records: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return deleted, nil
}
