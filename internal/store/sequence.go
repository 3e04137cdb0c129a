package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Sequences are monotonic counters persisted alongside the collections.
// The order ledger uses one to allocate order numbers exactly once instead
// of re-deriving the maximum from the full order set on every checkout.

// NextSequence atomically increments and returns the named counter,
// creating it at 1 on first use.
func (s *Store) NextSequence(ctx context.Context, name string) (int64, error) {
	var value int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1
		RETURNING value
	`, name).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", name, err)
	}
	return value, nil
}

// PeekSequence returns the current counter value without incrementing.
// A counter that was never used reads as 0 with ok=false.
func (s *Store) PeekSequence(ctx context.Context, name string) (int64, bool, error) {
	var value int64
	err := s.db.GetContext(ctx, &value, "SELECT value FROM sequences WHERE name = ?", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("peek sequence %s: %w", name, err)
	}
	return value, true, nil
}

// SetSequence forces the named counter to value. Used to reseed the order
// counter after a restore.
func (s *Store) SetSequence(ctx context.Context, name string, value int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sequences (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("set sequence %s: %w", name, err)
	}
	return nil
}
