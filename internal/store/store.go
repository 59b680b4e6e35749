// Package store provides the durable key/value blob storage behind the saved
// briefings list.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// BlobStore is a named-blob store. Set overwrites; there is no versioning.
type BlobStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Compile-time interface satisfaction checks
var (
	_ BlobStore = (*SQLite)(nil)
	_ BlobStore = (*Memory)(nil)
)

// SQLite stores blobs in a single-table SQLite database.
// All methods are safe for concurrent use.
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the database at dbPath.
// Uses WAL mode for file-based databases.
func Open(dbPath string) (*SQLite, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &SQLite{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *SQLite) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Get returns the blob stored under key. ok is false when the key is absent.
func (s *SQLite) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set replaces the blob stored under key.
func (s *SQLite) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *SQLite) UpdatedAt(key string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var at time.Time
	err := s.db.QueryRow(`SELECT updated_at FROM blobs WHERE key = ?`, key).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("updated_at %q: %w", key, err)
	}
	return at, true, nil
}
