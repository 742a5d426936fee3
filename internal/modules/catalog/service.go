package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	ListCategories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	LowStockCount(ctx context.Context) (int, error)
}

// ProductRequest holds the data for creating or replacing a product.
type ProductRequest struct {
	Barcode   string  `json:"barcode"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	CostPrice float64 `json:"costPrice"`
	SalePrice float64 `json:"salePrice"`
	Stock     int     `json:"stock"`
	MinStock  int     `json:"minStock"`
	Image     string  `json:"image,omitempty"`
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (r ProductRequest) validate() error {
	if strings.TrimSpace(r.Barcode) == "" {
		return fmt.Errorf("barcode is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if r.CostPrice < 0 || r.SalePrice < 0 {
		return fmt.Errorf("prices must be non-negative: %w", domain.ErrInvalidInput)
	}
	if r.Stock < 0 || r.MinStock < 0 {
		return fmt.Errorf("stock levels must be non-negative: %w", domain.ErrInvalidInput)
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p := &domain.Product{
		ID:        uuid.New(),
		Barcode:   strings.TrimSpace(req.Barcode),
		Name:      strings.TrimSpace(req.Name),
		Category:  strings.TrimSpace(req.Category),
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
		Image:     req.Image,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	// a product's category joins the category set automatically
	if p.Category != "" {
		if err := s.repo.AddCategory(ctx, p.Category); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// UpdateProduct is a full replace by id.
func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*domain.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", domain.ErrInvalidInput)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	p := &domain.Product{
		ID:        pid,
		Barcode:   strings.TrimSpace(req.Barcode),
		Name:      strings.TrimSpace(req.Name),
		Category:  strings.TrimSpace(req.Category),
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
		Image:     req.Image,
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	if p.Category != "" {
		if err := s.repo.AddCategory(ctx, p.Category); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", domain.ErrInvalidInput)
	}
	return s.repo.DeleteProduct(ctx, pid)
}

func (s *service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", domain.ErrInvalidInput)
	}
	return s.repo.GetProduct(ctx, pid)
}

func (s *service) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	if barcode == "" {
		return nil, fmt.Errorf("barcode is required: %w", domain.ErrInvalidInput)
	}
	return s.repo.GetProductByBarcode(ctx, barcode)
}

func (s *service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) DecrementStock(ctx context.Context, id string, qty int) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", domain.ErrInvalidInput)
	}
	return s.repo.DecrementStock(ctx, pid, qty)
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required: %w", domain.ErrInvalidInput)
	}
	return s.repo.AddCategory(ctx, name)
}

func (s *service) DeleteCategory(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("category name is required: %w", domain.ErrInvalidInput)
	}
	return s.repo.DeleteCategory(ctx, name)
}

func (s *service) LowStockCount(ctx context.Context) (int, error) {
	return s.repo.LowStockCount(ctx)
}
