// Package store provides durable, indexed storage for the POS collections.
//
// Records are JSON documents keyed by an opaque id. Secondary indexes are
// declared per collection and materialized as SQLite generated columns over
// json_extract, so the document stays the single source of truth while
// unique constraints (barcode, order number) are enforced by the engine.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store holds the process-wide database handle. Open it once at startup and
// inject it into the repositories that need it; tests open a fresh
// temp-file store each for isolation.
type Store struct {
	db *sqlx.DB
}

// Open creates or opens the SQLite database at path and ensures all
// declared collections, their indexes and the sequences table exist.
//
// The connection is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout
//   - a single-writer connection pool (SQLite allows one writer at a time)
//
// Open is idempotent. Failures wrap ErrStorageUnavailable.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sqlx.DB for direct queries.
// Use with caution - prefer the Store methods when available.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %v", pragma, err)
		}
	}
	return nil
}

// applySchema creates collection tables and indexes. Idempotent.
func applySchema(db *sqlx.DB) error {
	for _, ddl := range schemaDDL() {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("execute schema: %v", err)
		}
	}
	return nil
}

// Count returns the number of records in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	c, err := lookupCollection(collection)
	if err != nil {
		return 0, err
	}
	var n int
	query := fmt.Sprintf("SELECT count(*) FROM %s", c.Name)
	if err := s.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count %s: %w", c.Name, err)
	}
	return n, nil
}
