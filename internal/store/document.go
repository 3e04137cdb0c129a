package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Put inserts or replaces a record by primary key. A collision on a unique
// secondary index (barcode, orderNumber) with a different record fails
// with ErrConstraintViolation.
func (s *Store) Put(ctx context.Context, collection, id string, doc []byte) error {
	c, err := lookupCollection(collection)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (id, data) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data",
		c.Name)
	if _, err := s.db.ExecContext(ctx, query, id, string(doc)); err != nil {
		return fmt.Errorf("put %s/%s: %w", c.Name, id, mapSQLiteErr(err))
	}
	return nil
}

// Get returns the record with the given id, or nil when absent.
// Logical absence is not an error.
func (s *Store) Get(ctx context.Context, collection, id string) ([]byte, error) {
	c, err := lookupCollection(collection)
	if err != nil {
		return nil, err
	}
	var doc string
	query := fmt.Sprintf("SELECT data FROM %s WHERE id = ? LIMIT 1", c.Name)
	if err := s.db.GetContext(ctx, &doc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s/%s: %w", c.Name, id, err)
	}
	return []byte(doc), nil
}

// GetByIndex returns the first record whose indexed field equals value, or
// nil when none matches. The index must be declared for the collection.
func (s *Store) GetByIndex(ctx context.Context, collection, field string, value any) ([]byte, error) {
	c, err := lookupCollection(collection)
	if err != nil {
		return nil, err
	}
	idx, err := c.index(field)
	if err != nil {
		return nil, err
	}
	var doc string
	query := fmt.Sprintf(
		"SELECT data FROM %s WHERE %s = ? ORDER BY rowid LIMIT 1", c.Name, idx.column())
	if err := s.db.GetContext(ctx, &doc, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s by %s: %w", c.Name, field, err)
	}
	return []byte(doc), nil
}

// GetAll returns every record of a collection in insertion order.
func (s *Store) GetAll(ctx context.Context, collection string) ([][]byte, error) {
	c, err := lookupCollection(collection)
	if err != nil {
		return nil, err
	}
	var raw []string
	query := fmt.Sprintf("SELECT data FROM %s ORDER BY rowid", c.Name)
	if err := s.db.SelectContext(ctx, &raw, query); err != nil {
		return nil, fmt.Errorf("get all %s: %w", c.Name, err)
	}
	docs := make([][]byte, len(raw))
	for i, d := range raw {
		docs[i] = []byte(d)
	}
	return docs, nil
}

// Delete removes a record by id. Idempotent: deleting an absent id
// succeeds.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	c, err := lookupCollection(collection)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", c.Name)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.Name, id, err)
	}
	return nil
}

// Clear removes all records from one collection.
func (s *Store) Clear(ctx context.Context, collection string) error {
	c, err := lookupCollection(collection)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s", c.Name)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("clear %s: %w", c.Name, err)
	}
	return nil
}
