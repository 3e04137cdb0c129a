package ledger

import (
	"context"
	"time"

	"petstore-pos/internal/ledger/dto"
	"petstore-pos/internal/model"
)

// Period presets for the order history view.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

type UseCase interface {
	// NextOrderNumber previews the number the next checkout will receive
	// without consuming it. "HD0001" on an empty ledger.
	NextOrderNumber(ctx context.Context) (string, error)

	// Checkout builds an order from live products, computing item
	// subtotals and the total, allocates an order number and persists.
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Order, error)

	// AddOrder persists an order, assigning id, creation timestamp and
	// order number for any of those left empty.
	AddOrder(ctx context.Context, o *model.Order) (*model.Order, error)

	GetOrder(ctx context.Context, id string) (*model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)

	// GetOrdersByDateRange filters on createdAt, both bounds inclusive.
	GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error)

	// OrdersForPeriod returns a preset range, newest first.
	OrdersForPeriod(ctx context.Context, period Period) ([]model.Order, error)

	// DeleteOrder removes one order for correction of mistakes. No
	// cascade, no audit trail; the order number is not reused.
	DeleteOrder(ctx context.Context, id string) error

	StatsForToday(ctx context.Context) (*model.TodayStats, error)

	// ReseedOrderNumbers recomputes the counter from the highest stored
	// order number. Called after a restore.
	ReseedOrderNumbers(ctx context.Context) error
}
