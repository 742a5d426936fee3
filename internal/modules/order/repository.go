package order

import (
	"context"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Repository defines order journal data access. The journal is append-only:
// no order is ever mutated or deleted.
type Repository interface {
	AppendOrder(ctx context.Context, o *domain.Order) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// StockCounter is the slice of the catalog the journal needs for the
// low-stock figure.
type StockCounter interface {
	LowStockCount(ctx context.Context) (int, error)
}

// DebtSummary is the slice of the customer ledger the journal needs for the
// outstanding-debt figures.
type DebtSummary interface {
	TotalDebt(ctx context.Context) (float64, int, error)
}
