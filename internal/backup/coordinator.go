// Package backup serializes the whole datastore to a portable snapshot and
// restores it. Restore is a destructive replace and is not atomic across
// collections: a crash mid-import leaves a partially populated store.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petstore-pos/internal/ledger"
	"petstore-pos/internal/model"
	"petstore-pos/internal/store"
)

// ErrParseFailure means the backup document could not be decoded.
var ErrParseFailure = errors.New("malformed backup document")

// timeNow stamps exports; swapped out in tests.
var timeNow = time.Now

// RowOutcome records one rejected record during a best-effort import.
type RowOutcome struct {
	Collection string `json:"collection"`
	ID         string `json:"id,omitempty"`
	Reason     string `json:"reason"`
}

// Summary counts the records imported per collection. Rejected records are
// listed in Outcomes and excluded from the counts; they do not abort the
// remaining import.
type Summary struct {
	Products   int          `json:"products"`
	Orders     int          `json:"orders"`
	Categories int          `json:"categories"`
	Outcomes   []RowOutcome `json:"outcomes,omitempty"`
}

// Counts holds per-collection record totals for the settings view.
type Counts struct {
	Products   int `json:"products"`
	Orders     int `json:"orders"`
	Categories int `json:"categories"`
}

type Coordinator struct {
	store  *store.Store
	orders ledger.UseCase
	logger *zap.Logger
}

func NewCoordinator(st *store.Store, orders ledger.UseCase, log *zap.Logger) *Coordinator {
	return &Coordinator{store: st, orders: orders, logger: log}
}

// Export produces a snapshot of all three collections. Importing an
// unmodified export reproduces an equivalent dataset.
func (c *Coordinator) Export(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		ExportDate: timeNow(),
		Version:    model.SnapshotVersion,
		Products:   []model.Product{},
		Orders:     []model.Order{},
		Categories: []model.Category{},
	}

	if err := readCollection(ctx, c.store, store.Products, &snap.Products); err != nil {
		return nil, err
	}
	if err := readCollection(ctx, c.store, store.Orders, &snap.Orders); err != nil {
		return nil, err
	}
	if err := readCollection(ctx, c.store, store.Categories, &snap.Categories); err != nil {
		return nil, err
	}

	c.logger.Info("snapshot exported",
		zap.Int("products", len(snap.Products)),
		zap.Int("orders", len(snap.Orders)),
		zap.Int("categories", len(snap.Categories)))
	return snap, nil
}

// ExportJSON renders the snapshot in the stable backup file format.
func (c *Coordinator) ExportJSON(ctx context.Context) ([]byte, error) {
	snap, err := c.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Import replaces the entire datastore with the snapshot contents.
// Categories load first, then products, then orders. Each record failure
// is recorded and skipped; the rest of the import continues.
func (c *Coordinator) Import(ctx context.Context, snap *model.Snapshot) (*Summary, error) {
	if err := c.clearCollections(ctx); err != nil {
		return nil, err
	}

	summary := &Summary{}

	for i := range snap.Categories {
		cat := snap.Categories[i]
		if cat.ID == "" {
			cat.ID = uuid.New().String()
		}
		if err := putRecord(ctx, c.store, store.Categories, cat.ID, cat); err != nil {
			summary.reject(store.Categories, cat.ID, err)
			continue
		}
		summary.Categories++
	}

	for i := range snap.Products {
		p := snap.Products[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if err := putRecord(ctx, c.store, store.Products, p.ID, p); err != nil {
			summary.reject(store.Products, p.ID, err)
			continue
		}
		summary.Products++
	}

	for i := range snap.Orders {
		o := snap.Orders[i]
		if o.ID == "" {
			o.ID = uuid.New().String()
		}
		if err := putRecord(ctx, c.store, store.Orders, o.ID, o); err != nil {
			summary.reject(store.Orders, o.ID, err)
			continue
		}
		summary.Orders++
	}

	// The counter must match the restored ledger, not the cleared one.
	if err := c.orders.ReseedOrderNumbers(ctx); err != nil {
		return nil, err
	}

	c.logger.Info("snapshot imported",
		zap.Int("products", summary.Products),
		zap.Int("orders", summary.Orders),
		zap.Int("categories", summary.Categories),
		zap.Int("rejected", len(summary.Outcomes)))
	return summary, nil
}

// ImportJSON decodes a backup file and imports it.
func (c *Coordinator) ImportJSON(ctx context.Context, data []byte) (*Summary, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	return c.Import(ctx, &snap)
}

// ClearAll empties all three collections and resets the order counter.
// Irreversible.
func (c *Coordinator) ClearAll(ctx context.Context) error {
	if err := c.clearCollections(ctx); err != nil {
		return err
	}
	if err := c.orders.ReseedOrderNumbers(ctx); err != nil {
		return err
	}
	c.logger.Warn("all data cleared")
	return nil
}

// Stats returns the record count per collection.
func (c *Coordinator) Stats(ctx context.Context) (*Counts, error) {
	var counts Counts
	var err error
	if counts.Products, err = c.store.Count(ctx, store.Products); err != nil {
		return nil, err
	}
	if counts.Orders, err = c.store.Count(ctx, store.Orders); err != nil {
		return nil, err
	}
	if counts.Categories, err = c.store.Count(ctx, store.Categories); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (c *Coordinator) clearCollections(ctx context.Context) error {
	for _, coll := range []string{store.Products, store.Orders, store.Categories} {
		if err := c.store.Clear(ctx, coll); err != nil {
			return err
		}
	}
	return nil
}

func (s *Summary) reject(collection, id string, err error) {
	s.Outcomes = append(s.Outcomes, RowOutcome{
		Collection: collection,
		ID:         id,
		Reason:     err.Error(),
	})
}

func readCollection[T any](ctx context.Context, st *store.Store, collection string, out *[]T) error {
	docs, err := st.GetAll(ctx, collection)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		var rec T
		if err := json.Unmarshal(doc, &rec); err != nil {
			return fmt.Errorf("decode %s record: %w", collection, err)
		}
		*out = append(*out, rec)
	}
	return nil
}

func putRecord(ctx context.Context, st *store.Store, collection, id string, rec any) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return st.Put(ctx, collection, id, doc)
}
