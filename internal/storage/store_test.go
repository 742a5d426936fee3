package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sampinong/pos-backend/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *MemorySnapshots) {
	t.Helper()
	snaps := NewMemorySnapshots()
	return NewStore(snaps), snaps
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, snaps := newTestStore(t)

	p := domain.Product{
		ID: uuid.New(), Barcode: "100", Name: "น้ำดื่ม",
		Category: "เครื่องดื่ม", CostPrice: 5, SalePrice: 10, Stock: 20, MinStock: 5,
	}
	require.NoError(t, store.CreateProduct(ctx, &p))
	require.NoError(t, store.AddCategory(ctx, p.Category))

	c := domain.Customer{
		ID: uuid.New(), Name: "ป้าแดง", CreditLimit: 5000, CurrentDebt: 300,
		History: []domain.CustomerHistory{
			{ID: uuid.New(), Date: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC), Action: domain.ActionPurchase, Amount: 500},
			{ID: uuid.New(), Date: time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC), Action: domain.ActionPayment, Amount: 200},
		},
	}
	require.NoError(t, store.CreateCustomer(ctx, &c))

	first := domain.Order{ID: uuid.New(), Date: time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC), Total: 10, Profit: 5}
	second := domain.Order{ID: uuid.New(), Date: time.Date(2025, 8, 3, 11, 0, 0, 0, time.UTC), Total: 20, Profit: 8}
	require.NoError(t, store.AppendOrder(ctx, &first))
	require.NoError(t, store.AppendOrder(ctx, &second))

	reloaded := NewStore(snaps)
	require.NoError(t, reloaded.Load(ctx))

	products, err := reloaded.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, p.ID, products[0].ID)
	require.Equal(t, 20, products[0].Stock)

	categories, err := reloaded.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"เครื่องดื่ม"}, categories)

	got, err := reloaded.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, 300.0, got.CurrentDebt)
	// history keeps chronological order across the round trip
	require.Len(t, got.History, 2)
	require.Equal(t, c.History[0].ID, got.History[0].ID)
	require.Equal(t, c.History[1].ID, got.History[1].ID)

	orders, err := reloaded.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// journal keeps most-recent-first order
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)
}

func TestWithTransactionCommitsOnce(t *testing.T) {
	ctx := context.Background()
	store, snaps := newTestStore(t)

	p := domain.Product{ID: uuid.New(), Barcode: "1", Name: "A", Stock: 10}
	require.NoError(t, store.CreateProduct(ctx, &p))

	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := store.DecrementStock(ctx, p.ID, 3); err != nil {
			return err
		}
		return store.AppendOrder(ctx, &domain.Order{ID: uuid.New(), Date: time.Now(), Total: 30})
	})
	require.NoError(t, err)

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 7, got.Stock)

	reloaded := NewStore(snaps)
	require.NoError(t, reloaded.Load(ctx))
	got, err = reloaded.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 7, got.Stock)
	orders, err := reloaded.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestWithTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store, snaps := newTestStore(t)

	p := domain.Product{ID: uuid.New(), Barcode: "1", Name: "A", Stock: 10}
	require.NoError(t, store.CreateProduct(ctx, &p))

	boom := errors.New("boom")
	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := store.DecrementStock(ctx, p.ID, 3); err != nil {
			return err
		}
		if err := store.AppendOrder(ctx, &domain.Order{ID: uuid.New(), Date: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 10, got.Stock)
	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	// nothing of the aborted transaction reached the snapshot store
	reloaded := NewStore(snaps)
	require.NoError(t, reloaded.Load(ctx))
	got, err = reloaded.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 10, got.Stock)
}

func TestNestedTransactionJoins(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	p := domain.Product{ID: uuid.New(), Barcode: "1", Name: "A", Stock: 5}
	require.NoError(t, store.CreateProduct(ctx, &p))

	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		return store.WithTransaction(ctx, func(ctx context.Context) error {
			return store.DecrementStock(ctx, p.ID, 2)
		})
	})
	require.NoError(t, err)
	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Stock)
}

func TestBackupWritesDatedKeys(t *testing.T) {
	ctx := context.Background()
	store, snaps := newTestStore(t)
	require.NoError(t, store.CreateProduct(ctx, &domain.Product{ID: uuid.New(), Barcode: "1", Name: "A"}))
	require.NoError(t, store.Backup(ctx))

	want := "backup:" + KeyProducts + ":" + time.Now().Format("2006-01-02")
	require.Contains(t, snaps.Keys(), want)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	require.NoError(t, store.Seed(ctx))
	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.NoError(t, store.Seed(ctx))
	again, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, again, len(products))
}
