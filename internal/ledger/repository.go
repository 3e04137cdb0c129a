package ledger

import (
	"context"

	"petstore-pos/internal/model"
)

// Repository persists orders and the order-number counter. Finds return
// (nil, nil) on absence.
type Repository interface {
	Save(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByNumber(ctx context.Context, number string) (*model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	Delete(ctx context.Context, id string) error

	// Order-number counter, persisted alongside the last-issued number.
	NextSequence(ctx context.Context) (int64, error)
	PeekSequence(ctx context.Context) (int64, bool, error)
	SetSequence(ctx context.Context, value int64) error
}
