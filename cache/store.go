// Package cache provides a local SQLite-backed registry of known pages
// and databases, so tools can refer to them by name instead of UUID.
// Identifiers are stored in their clean (undashed) form.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/agentplexus/mcp-notion/notion"
)

const (
	sqlCreateTable = `
	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		name TEXT,
		type TEXT,
		path TEXT
	)`
	sqlCreateIndex  = `CREATE INDEX IF NOT EXISTS idx_name ON pages(name)`
	sqlUpsert       = `INSERT OR REPLACE INTO pages (id, name, type, path) VALUES (?, ?, ?, ?)`
	sqlSelectByName = `SELECT id, name, type, path FROM pages WHERE LOWER(name) = LOWER(?)`
	sqlSelectByID   = `SELECT id, name, type, path FROM pages WHERE id = ?`
	sqlSearch       = `SELECT id, name, type, path FROM pages WHERE name LIKE ? OR path LIKE ?`
)

// Entry is a cached page or database record. ID is the clean
// (undashed) identifier.
type Entry struct {
	ID   string
	Name string
	Type string
	Path string
}

// Store is a SQLite-backed cache of page and database names.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default cache database location under the
// user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".mcp-notion", "cache.db"), nil
}

// Open opens (creating if necessary) the cache database at path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	for _, stmt := range []string{sqlCreateTable, sqlCreateIndex} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initialize cache schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts or replaces an entry. The id is normalized to its
// clean form before storage.
func (s *Store) Upsert(ctx context.Context, id, name, entryType, path string) error {
	clean := notion.NormalizeID(id)
	if clean == "" || name == "" {
		return fmt.Errorf("cache entry requires id and name")
	}
	if entryType == "" {
		entryType = "page"
	}
	_, err := s.db.ExecContext(ctx, sqlUpsert, clean, name, entryType, path)
	return err
}

// GetByName returns the entry whose name matches case-insensitively,
// or nil when there is no match.
func (s *Store) GetByName(ctx context.Context, name string) (*Entry, error) {
	return s.fetchOne(ctx, sqlSelectByName, name)
}

// GetByID returns the entry with the given identifier (any dash form),
// or nil when there is no match.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.fetchOne(ctx, sqlSelectByID, notion.NormalizeID(id))
}

func (s *Store) fetchOne(ctx context.Context, query string, args ...any) (*Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Name, &e.Type, &e.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Search returns all entries whose name or path contains the query as
// a substring.
func (s *Store) Search(ctx context.Context, query string) ([]Entry, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, sqlSearch, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.Path); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
