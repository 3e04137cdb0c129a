package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petstore-pos/internal/catalog"
	"petstore-pos/internal/ledger"
	"petstore-pos/internal/ledger/dto"
	"petstore-pos/internal/model"
	"petstore-pos/internal/store"
)

const (
	numberPrefix = "HD"
	numberWidth  = 4
)

// orderUseCase owns order-number allocation. The mutex serializes the
// allocate-then-write sequence; the single-user design has no concurrent
// writer, but the counter must still be exactly-once within the process.
type orderUseCase struct {
	repo     ledger.Repository
	products catalog.ProductRepository
	logger   *zap.Logger

	mu     sync.Mutex
	seeded bool
	now    func() time.Time
}

func NewOrderUseCase(repo ledger.Repository, products catalog.ProductRepository, log *zap.Logger) ledger.UseCase {
	return &orderUseCase{
		repo:     repo,
		products: products,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *orderUseCase) NextOrderNumber(ctx context.Context) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ensureSeeded(ctx); err != nil {
		return "", err
	}
	current, _, err := uc.repo.PeekSequence(ctx)
	if err != nil {
		return "", err
	}
	return formatNumber(current + 1), nil
}

func (uc *orderUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, ledger.ErrEmptyOrder
	}

	// Freeze name and price into the order so the receipt stays accurate
	// when the product is later edited or deleted.
	items := make([]model.OrderItem, 0, len(input.Items))
	var total float64
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s", ledger.ErrInvalidQuantity, line.ProductID)
		}
		p, err := uc.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ledger.ErrUnknownProduct, line.ProductID)
		}
		subtotal := p.Price * float64(line.Quantity)
		items = append(items, model.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		total += subtotal
	}

	return uc.AddOrder(ctx, &model.Order{Items: items, Total: total})
}

func (uc *orderUseCase) AddOrder(ctx context.Context, o *model.Order) (*model.Order, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = uc.now()
	}

	if o.OrderNumber == "" {
		if err := uc.ensureSeeded(ctx); err != nil {
			return nil, err
		}
		seq, err := uc.repo.NextSequence(ctx)
		if err != nil {
			return nil, err
		}
		o.OrderNumber = formatNumber(seq)
	} else if suffix, ok := parseNumber(o.OrderNumber); ok {
		// Keep the counter ahead of caller-supplied numbers.
		if err := uc.bumpSequenceTo(ctx, suffix); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Save(ctx, o); err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrDuplicateOrderNumber, o.OrderNumber)
		}
		return nil, err
	}

	uc.logger.Info("order recorded",
		zap.String("id", o.ID),
		zap.String("orderNumber", o.OrderNumber),
		zap.Float64("total", o.Total),
		zap.Int("items", len(o.Items)))
	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *orderUseCase) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *orderUseCase) GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	orders, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Order, 0)
	for _, o := range orders {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (uc *orderUseCase) OrdersForPeriod(ctx context.Context, period ledger.Period) ([]model.Order, error) {
	now := uc.now()
	dayStart, dayEnd := dayBounds(now)

	var start time.Time
	switch period {
	case ledger.PeriodToday:
		start = dayStart
	case ledger.PeriodWeek:
		start, _ = dayBounds(now.AddDate(0, 0, -7))
	case ledger.PeriodMonth:
		start, _ = dayBounds(now.AddDate(0, 0, -30))
	case ledger.PeriodAll:
		start = time.Time{}
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}

	orders, err := uc.GetOrdersByDateRange(ctx, start, dayEnd)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *orderUseCase) StatsForToday(ctx context.Context) (*model.TodayStats, error) {
	start, end := dayBounds(uc.now())
	orders, err := uc.GetOrdersByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := &model.TodayStats{OrderCount: len(orders)}
	for _, o := range orders {
		stats.TotalRevenue += o.Total
		stats.ItemsSold += o.ItemCount()
	}
	return stats, nil
}

func (uc *orderUseCase) ReseedOrderNumbers(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	max, err := uc.maxStoredSuffix(ctx)
	if err != nil {
		return err
	}
	if err := uc.repo.SetSequence(ctx, max); err != nil {
		return err
	}
	uc.seeded = true
	return nil
}

// ensureSeeded initializes the counter from existing orders the first time
// it is needed, covering databases created before the counter existed.
// Callers must hold uc.mu.
func (uc *orderUseCase) ensureSeeded(ctx context.Context) error {
	if uc.seeded {
		return nil
	}
	if _, ok, err := uc.repo.PeekSequence(ctx); err != nil {
		return err
	} else if ok {
		uc.seeded = true
		return nil
	}

	max, err := uc.maxStoredSuffix(ctx)
	if err != nil {
		return err
	}
	if err := uc.repo.SetSequence(ctx, max); err != nil {
		return err
	}
	uc.seeded = true
	return nil
}

func (uc *orderUseCase) bumpSequenceTo(ctx context.Context, suffix int64) error {
	current, _, err := uc.repo.PeekSequence(ctx)
	if err != nil {
		return err
	}
	if suffix > current {
		if err := uc.repo.SetSequence(ctx, suffix); err != nil {
			return err
		}
	}
	uc.seeded = true
	return nil
}

func (uc *orderUseCase) maxStoredSuffix(ctx context.Context) (int64, error) {
	orders, err := uc.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, o := range orders {
		if suffix, ok := parseNumber(o.OrderNumber); ok && suffix > max {
			max = suffix
		}
	}
	return max, nil
}

func formatNumber(seq int64) string {
	return fmt.Sprintf("%s%0*d", numberPrefix, numberWidth, seq)
}

// parseNumber extracts the numeric suffix of an order number. Foreign
// formats (hand-edited backups) are tolerated and simply ignored.
func parseNumber(number string) (int64, bool) {
	rest, found := strings.CutPrefix(number, numberPrefix)
	if !found {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// dayBounds returns the inclusive bounds of t's local calendar day,
// [00:00:00.000, 23:59:59.999].
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}
