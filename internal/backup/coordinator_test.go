package backup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catrepo "petstore-pos/internal/catalog/repository"
	ordrepo "petstore-pos/internal/ledger/repository"
	ordUCPkg "petstore-pos/internal/ledger/usecase"
	"petstore-pos/internal/model"
	"petstore-pos/internal/store"
)

type fixture struct {
	st       *store.Store
	coord    *Coordinator
	products *catrepo.ProductRepository
	orders   *ordrepo.OrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	products := catrepo.NewProductRepository(st)
	orders := ordrepo.NewOrderRepository(st)
	ledgerUC := ordUCPkg.NewOrderUseCase(orders, products, zap.NewNop())

	return &fixture{
		st:       st,
		coord:    NewCoordinator(st, ledgerUC, zap.NewNop()),
		products: products,
		orders:   orders,
	}
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	cat := "Thức ăn mèo"
	require.NoError(t, f.products.Save(ctx, &model.Product{
		ID: "p1", Barcode: "111", Name: "Pate mèo", Category: &cat,
		Price: 45000, Cost: 32000, Stock: 10, Unit: "hộp", CreatedAt: time.Now(),
	}))
	require.NoError(t, f.products.Save(ctx, &model.Product{
		ID: "p2", Barcode: "222", Name: "Hạt chó", Price: 110000, CreatedAt: time.Now(),
	}))
	require.NoError(t, f.orders.Save(ctx, &model.Order{
		ID: "o1", OrderNumber: "HD0001", CreatedAt: time.Now(), Total: 90000,
		Items: []model.OrderItem{{ProductID: "p1", Name: "Pate mèo", Price: 45000, Quantity: 2, Subtotal: 90000}},
	}))
	require.NoError(t, f.st.Put(ctx, store.Categories, "c1", []byte(`{"id":"c1","name":"Thức ăn mèo"}`)))
}

func TestExportImport_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t)

	snap, err := f.coord.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SnapshotVersion, snap.Version)
	assert.False(t, snap.ExportDate.IsZero())

	summary, err := f.coord.Import(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Products)
	assert.Equal(t, 1, summary.Orders)
	assert.Equal(t, 1, summary.Categories)
	assert.Empty(t, summary.Outcomes)

	again, err := f.coord.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Products, again.Products)
	assert.Equal(t, snap.Orders, again.Orders)
	assert.Equal(t, snap.Categories, again.Categories)
}

func TestImport_ReplacesExistingData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t)

	snap := &model.Snapshot{
		Version: model.SnapshotVersion,
		Products: []model.Product{
			{ID: "np", Barcode: "999", Name: "Đồ chơi chuột", Price: 25000, CreatedAt: time.Now()},
		},
	}
	summary, err := f.coord.Import(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Products)
	assert.Equal(t, 0, summary.Orders)

	products, err := f.products.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Đồ chơi chuột", products[0].Name)

	orders, err := f.orders.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestImport_BestEffortSkipsBadRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	snap := &model.Snapshot{
		Version: model.SnapshotVersion,
		Products: []model.Product{
			{ID: "p1", Barcode: "111", Name: "first", CreatedAt: time.Now()},
			{ID: "p2", Barcode: "111", Name: "duplicate barcode", CreatedAt: time.Now()},
			{ID: "p3", Barcode: "333", Name: "third", CreatedAt: time.Now()},
		},
	}

	summary, err := f.coord.Import(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Products)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, store.Products, summary.Outcomes[0].Collection)
	assert.Equal(t, "p2", summary.Outcomes[0].ID)

	// The bad record was excluded, the rest imported.
	products, err := f.products.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestImport_AssignsMissingIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	snap := &model.Snapshot{
		Version:    model.SnapshotVersion,
		Categories: []model.Category{{Name: "Vệ sinh"}},
	}
	summary, err := f.coord.Import(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Categories)

	docs, err := f.st.GetAll(ctx, store.Categories)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, string(docs[0]), `"id":`)
}

func TestImport_ReseedsOrderNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	snap := &model.Snapshot{
		Version: model.SnapshotVersion,
		Orders: []model.Order{
			{ID: "o1", OrderNumber: "HD0007", CreatedAt: time.Now(), Total: 1000},
			{ID: "o2", OrderNumber: "HD0003", CreatedAt: time.Now(), Total: 2000},
		},
	}
	_, err := f.coord.Import(ctx, snap)
	require.NoError(t, err)

	o, err := f.coord.orders.AddOrder(ctx, &model.Order{Total: 5000})
	require.NoError(t, err)
	assert.Equal(t, "HD0008", o.OrderNumber)
}

func TestImportJSON_RoundTripAndParseFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t)

	data, err := f.coord.ExportJSON(ctx)
	require.NoError(t, err)

	summary, err := f.coord.ImportJSON(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Products)
	assert.Equal(t, 1, summary.Orders)
	assert.Equal(t, 1, summary.Categories)

	_, err = f.coord.ImportJSON(ctx, []byte("not json at all"))
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestClearAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t)

	require.NoError(t, f.coord.ClearAll(ctx))

	counts, err := f.coord.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Products)
	assert.Equal(t, 0, counts.Orders)
	assert.Equal(t, 0, counts.Categories)

	// The ledger starts over.
	o, err := f.coord.orders.AddOrder(ctx, &model.Order{Total: 1000})
	require.NoError(t, err)
	assert.Equal(t, "HD0001", o.OrderNumber)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	counts, err := f.coord.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Counts{Products: 2, Orders: 1, Categories: 1}, counts)
}
