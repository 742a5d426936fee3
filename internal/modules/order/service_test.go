package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/storage"
)

func newTestService(t *testing.T) (Service, *storage.Store) {
	t.Helper()
	store := storage.NewStore(storage.NewMemorySnapshots())
	return NewService(store, store, store), store
}

func TestAppendAssignsIDAndDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	o := domain.Order{Total: 30, Profit: 15, PaymentMethod: domain.PaymentCash}
	require.NoError(t, svc.Append(ctx, &o))
	require.NotEqual(t, uuid.Nil, o.ID)
	require.False(t, o.Date.IsZero())
}

func TestListOrders_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first := domain.Order{ID: uuid.New(), Date: time.Now().Add(-time.Hour), Total: 10}
	second := domain.Order{ID: uuid.New(), Date: time.Now(), Total: 20}
	require.NoError(t, svc.Append(ctx, &first))
	require.NoError(t, svc.Append(ctx, &second))

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)
}

func TestDailySales(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	now := time.Now()
	require.NoError(t, svc.Append(ctx, &domain.Order{ID: uuid.New(), Date: now, Total: 30, Profit: 10}))
	require.NoError(t, svc.Append(ctx, &domain.Order{ID: uuid.New(), Date: now, Total: 20, Profit: 5}))
	require.NoError(t, svc.Append(ctx, &domain.Order{ID: uuid.New(), Date: now.AddDate(0, 0, -2), Total: 100, Profit: 40}))
	// outside the window, must not appear anywhere
	require.NoError(t, svc.Append(ctx, &domain.Order{ID: uuid.New(), Date: now.AddDate(0, 0, -10), Total: 999}))

	series, err := svc.DailySales(ctx, 7)
	require.NoError(t, err)
	require.Len(t, series, 7)

	// oldest first, ending today
	require.Equal(t, now.AddDate(0, 0, -6).Format("2006-01-02"), series[0].Date)
	require.Equal(t, now.Format("2006-01-02"), series[6].Date)

	today := series[6]
	require.Equal(t, 50.0, today.Total)
	require.Equal(t, 15.0, today.Profit)
	require.Equal(t, 2, today.Orders)

	twoDaysAgo := series[4]
	require.Equal(t, 100.0, twoDaysAgo.Total)
	require.Equal(t, 1, twoDaysAgo.Orders)

	// empty days are zero-filled, not skipped
	require.Equal(t, 0.0, series[5].Total)
	require.Equal(t, 0, series[5].Orders)

	var sum float64
	for _, d := range series {
		sum += d.Total
	}
	require.Equal(t, 150.0, sum)
}

func TestDailySales_InvalidDays(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.DailySales(ctx, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	now := time.Now()
	require.NoError(t, svc.Append(ctx, &domain.Order{ID: uuid.New(), Date: now, Total: 30, Profit: 10}))
	require.NoError(t, svc.Append(ctx, &domain.Order{ID: uuid.New(), Date: now, Total: 70, Profit: 25}))
	require.NoError(t, svc.Append(ctx, &domain.Order{ID: uuid.New(), Date: now.AddDate(0, 0, -1), Total: 500, Profit: 200}))

	require.NoError(t, store.CreateCustomer(ctx, &domain.Customer{ID: uuid.New(), Name: "A", CurrentDebt: 300}))
	require.NoError(t, store.CreateCustomer(ctx, &domain.Customer{ID: uuid.New(), Name: "B", CurrentDebt: 0}))
	require.NoError(t, store.CreateCustomer(ctx, &domain.Customer{ID: uuid.New(), Name: "C", CurrentDebt: 900}))

	require.NoError(t, store.CreateProduct(ctx, &domain.Product{ID: uuid.New(), Barcode: "1", Name: "low", Stock: 2, MinStock: 10}))
	require.NoError(t, store.CreateProduct(ctx, &domain.Product{ID: uuid.New(), Barcode: "2", Name: "ok", Stock: 50, MinStock: 10}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 100.0, stats.TodaySales)
	require.Equal(t, 35.0, stats.TodayProfit)
	require.Equal(t, 2, stats.TodayOrders)
	require.Equal(t, 1200.0, stats.TotalDebt)
	require.Equal(t, 2, stats.DebtorCount)
	require.Equal(t, 1, stats.LowStockCount)
}
