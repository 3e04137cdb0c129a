package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catrepo "petstore-pos/internal/catalog/repository"
	"petstore-pos/internal/ledger"
	"petstore-pos/internal/ledger/dto"
	ordrepo "petstore-pos/internal/ledger/repository"
	"petstore-pos/internal/model"
	"petstore-pos/internal/store"
)

type fixture struct {
	uc       *orderUseCase
	products *catrepo.ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	products := catrepo.NewProductRepository(st)
	uc := NewOrderUseCase(ordrepo.NewOrderRepository(st), products, zap.NewNop()).(*orderUseCase)
	return &fixture{uc: uc, products: products}
}

func (f *fixture) addProduct(t *testing.T, id, name string, price float64) *model.Product {
	t.Helper()
	p := &model.Product{
		ID:        id,
		Barcode:   "bc-" + id,
		Name:      name,
		Price:     price,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func TestNextOrderNumber_EmptyLedger(t *testing.T) {
	f := newFixture(t)

	number, err := f.uc.NextOrderNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "HD0001", number)

	// Previewing must not consume the number.
	number, err = f.uc.NextOrderNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "HD0001", number)
}

func TestNextOrderNumber_AfterNineOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 9; i++ {
		o, err := f.uc.AddOrder(ctx, &model.Order{
			Items: []model.OrderItem{{ProductID: "p", Name: "x", Price: 1000, Quantity: 1, Subtotal: 1000}},
			Total: 1000,
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("HD%04d", i), o.OrderNumber)
	}

	number, err := f.uc.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HD0010", number)
}

func TestNextOrderNumber_SeedsFromExistingOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Orders that predate the counter, e.g. a database written by an
	// older release.
	for _, n := range []string{"HD0001", "HD0007", "HD0003"} {
		require.NoError(t, f.uc.repo.Save(ctx, &model.Order{
			ID: "o-" + n, OrderNumber: n, CreatedAt: time.Now(), Total: 1000,
		}))
	}

	number, err := f.uc.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HD0008", number)
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addProduct(t, "p1", "Pate mèo", 45000)
	f.addProduct(t, "p2", "Hạt chó 5kg", 110000)

	o, err := f.uc.Checkout(ctx, &dto.CheckoutInput{Items: []dto.CheckoutItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}})
	require.NoError(t, err)

	assert.Equal(t, "HD0001", o.OrderNumber)
	assert.NotEmpty(t, o.ID)
	assert.False(t, o.CreatedAt.IsZero())
	require.Len(t, o.Items, 2)
	assert.Equal(t, 90000.0, o.Items[0].Subtotal)
	assert.Equal(t, 110000.0, o.Items[1].Subtotal)
	assert.Equal(t, 200000.0, o.Total)

	got, err := f.uc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, o.OrderNumber, got.OrderNumber)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Checkout(context.Background(), &dto.CheckoutInput{})
	assert.ErrorIs(t, err, ledger.ErrEmptyOrder)
}

func TestCheckout_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Checkout(context.Background(), &dto.CheckoutInput{Items: []dto.CheckoutItem{
		{ProductID: "ghost", Quantity: 1},
	}})
	assert.ErrorIs(t, err, ledger.ErrUnknownProduct)
}

func TestCheckout_InvalidQuantity(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", "Pate mèo", 45000)

	_, err := f.uc.Checkout(context.Background(), &dto.CheckoutInput{Items: []dto.CheckoutItem{
		{ProductID: "p1", Quantity: 0},
	}})
	assert.ErrorIs(t, err, ledger.ErrInvalidQuantity)
}

func TestOrders_SurviveProductDeletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addProduct(t, "p1", "Pate mèo", 45000)
	o, err := f.uc.Checkout(ctx, &dto.CheckoutInput{Items: []dto.CheckoutItem{
		{ProductID: "p1", Quantity: 2},
	}})
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(ctx, "p1"))

	got, err := f.uc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Pate mèo", got.Items[0].Name)
	assert.Equal(t, 45000.0, got.Items[0].Price)
	assert.Equal(t, 90000.0, got.Total)
}

func TestAddOrder_DuplicateNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.AddOrder(ctx, &model.Order{OrderNumber: "HD0042", Total: 1000})
	require.NoError(t, err)

	_, err = f.uc.AddOrder(ctx, &model.Order{OrderNumber: "HD0042", Total: 2000})
	assert.ErrorIs(t, err, ledger.ErrDuplicateOrderNumber)
}

func TestAddOrder_SuppliedNumberAdvancesCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.AddOrder(ctx, &model.Order{OrderNumber: "HD0042", Total: 1000})
	require.NoError(t, err)

	number, err := f.uc.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HD0043", number)
}

func TestDeleteOrder_NumberNotReused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.uc.AddOrder(ctx, &model.Order{Total: 1000})
	require.NoError(t, err)
	assert.Equal(t, "HD0001", o.OrderNumber)

	require.NoError(t, f.uc.DeleteOrder(ctx, o.ID))
	require.NoError(t, f.uc.DeleteOrder(ctx, o.ID)) // idempotent

	next, err := f.uc.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HD0002", next)
}

func TestGetOrdersByDateRange_InclusiveBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loc := time.Local
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	lastMoment := time.Date(2026, 3, 14, 23, 59, 59, 999000000, loc)
	nextMidnight := time.Date(2026, 3, 15, 0, 0, 0, 0, loc)

	_, err := f.uc.AddOrder(ctx, &model.Order{ID: "edge", CreatedAt: lastMoment, Total: 1000})
	require.NoError(t, err)
	_, err = f.uc.AddOrder(ctx, &model.Order{ID: "next", CreatedAt: nextMidnight, Total: 2000})
	require.NoError(t, err)

	got, err := f.uc.GetOrdersByDateRange(ctx, day, lastMoment)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "edge", got[0].ID)
}

func TestStatsForToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	f.uc.now = func() time.Time { return now }

	_, err := f.uc.AddOrder(ctx, &model.Order{
		Items: []model.OrderItem{{ProductID: "p1", Name: "a", Price: 60000, Quantity: 2, Subtotal: 120000}},
		Total: 120000,
	})
	require.NoError(t, err)
	_, err = f.uc.AddOrder(ctx, &model.Order{
		Items: []model.OrderItem{
			{ProductID: "p2", Name: "b", Price: 30000, Quantity: 1, Subtotal: 30000},
			{ProductID: "p3", Name: "c", Price: 25000, Quantity: 2, Subtotal: 50000},
		},
		Total: 80000,
	})
	require.NoError(t, err)

	// Yesterday's order must not count.
	_, err = f.uc.AddOrder(ctx, &model.Order{CreatedAt: now.AddDate(0, 0, -1), Total: 999999})
	require.NoError(t, err)

	stats, err := f.uc.StatsForToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OrderCount)
	assert.Equal(t, 200000.0, stats.TotalRevenue)
	assert.Equal(t, 5, stats.ItemsSold)
}

func TestOrdersForPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	f.uc.now = func() time.Time { return now }

	mk := func(id string, at time.Time) {
		_, err := f.uc.AddOrder(ctx, &model.Order{ID: id, CreatedAt: at, Total: 1000})
		require.NoError(t, err)
	}
	mk("today", now)
	mk("lastweek", now.AddDate(0, 0, -5))
	mk("lastmonth", now.AddDate(0, 0, -20))
	mk("ancient", now.AddDate(-1, 0, 0))

	cases := []struct {
		period ledger.Period
		want   int
	}{
		{ledger.PeriodToday, 1},
		{ledger.PeriodWeek, 2},
		{ledger.PeriodMonth, 3},
		{ledger.PeriodAll, 4},
	}
	for _, tc := range cases {
		got, err := f.uc.OrdersForPeriod(ctx, tc.period)
		require.NoError(t, err)
		assert.Len(t, got, tc.want, "period %s", tc.period)
	}

	// Newest first.
	all, err := f.uc.OrdersForPeriod(ctx, ledger.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, "today", all[0].ID)
	assert.Equal(t, "ancient", all[3].ID)
}

func TestOrdersForPeriod_UnknownPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.OrdersForPeriod(context.Background(), ledger.Period("quarter"))
	assert.Error(t, err)
}
