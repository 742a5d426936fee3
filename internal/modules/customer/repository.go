package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Repository defines customer ledger data access. Implemented by the shared store.
type Repository interface {
	CreateCustomer(ctx context.Context, c *domain.Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, c *domain.Customer) error
	TotalDebt(ctx context.Context) (float64, int, error)
}

// TxManager scopes ledger mutations to a single commit.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
