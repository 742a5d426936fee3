package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Repository defines catalog data access. Implemented by the shared store.
type Repository interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
	LowStockCount(ctx context.Context) (int, error)
	ListCategories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
}
