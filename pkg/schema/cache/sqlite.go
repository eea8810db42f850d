package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store is a SQLite-backed manifest cache keyed by source location.
// It is safe for concurrent use; SQLite's single-writer model is respected
// by capping the connection pool at one connection.
type Store struct {
	db *sql.DB

	getStmt *sql.Stmt
	putStmt *sql.Stmt
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS manifests (
	src        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);
`

// Open opens (creating if necessary) the cache database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	s := &Store{db: db}
	if s.getStmt, err = db.Prepare(`SELECT payload, fetched_at FROM manifests WHERE src = ?`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare get statement: %w", err)
	}
	if s.putStmt, err = db.Prepare(`
		INSERT INTO manifests (src, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(src) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare put statement: %w", err)
	}
	return s, nil
}

// Get returns the cached payload for a source and when it was fetched.
// A miss returns ok=false with no error.
func (s *Store) Get(ctx context.Context, src string) (payload []byte, fetchedAt time.Time, ok bool, err error) {
	row := s.getStmt.QueryRowContext(ctx, src)
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, fmt.Errorf("failed to read cache entry for %q: %w", src, err)
	}
	return payload, fetchedAt, true, nil
}

// Put stores or replaces the payload for a source.
func (s *Store) Put(ctx context.Context, src string, payload []byte) error {
	if _, err := s.putStmt.ExecContext(ctx, src, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write cache entry for %q: %w", src, err)
	}
	return nil
}

// Close releases the prepared statements and the database handle.
func (s *Store) Close() error {
	if s.getStmt != nil {
		s.getStmt.Close()
	}
	if s.putStmt != nil {
		s.putStmt.Close()
	}
	return s.db.Close()
}
