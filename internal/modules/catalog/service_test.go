package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/storage"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(storage.NewStore(storage.NewMemorySnapshots()))
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.CreateProduct(ctx, ProductRequest{
		Barcode: "8850001", Name: "น้ำดื่ม", Category: "เครื่องดื่ม",
		CostPrice: 5, SalePrice: 10, Stock: 100, MinStock: 20,
	})
	require.NoError(t, err)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", p.ID.String())

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	// the product's category joins the category set automatically
	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"เครื่องดื่ม"}, categories)
}

func TestCreateProduct_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateProduct(ctx, ProductRequest{Name: "no barcode"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateProduct(ctx, ProductRequest{Barcode: "1", Name: "neg", SalePrice: -1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateProduct(ctx, ProductRequest{Barcode: "1", Name: "neg stock", Stock: -1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProduct_DuplicateBarcode(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateProduct(ctx, ProductRequest{Barcode: "8850001", Name: "A"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, ProductRequest{Barcode: "8850001", Name: "B"})
	require.ErrorIs(t, err, domain.ErrDuplicateBarcode)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.CreateProduct(ctx, ProductRequest{Barcode: "1", Name: "A", SalePrice: 10})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, p.ID.String(), ProductRequest{
		Barcode: "1", Name: "A ใหม่", Category: "ขนม", SalePrice: 12, Stock: 3,
	})
	require.NoError(t, err)
	require.Equal(t, p.ID, updated.ID)
	require.Equal(t, "A ใหม่", updated.Name)
	require.Equal(t, 12.0, updated.SalePrice)

	_, err = svc.UpdateProduct(ctx, "b2f5e6ca-13f9-4d2c-8a3e-111111111111", ProductRequest{Barcode: "2", Name: "X"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.CreateProduct(ctx, ProductRequest{Barcode: "1", Name: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID.String()))
	require.NoError(t, svc.DeleteProduct(ctx, p.ID.String()))

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestGetProductByBarcode(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.CreateProduct(ctx, ProductRequest{Barcode: "8850002", Name: "เลย์"})
	require.NoError(t, err)

	got, err := svc.GetProductByBarcode(ctx, "8850002")
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)

	_, err = svc.GetProductByBarcode(ctx, "0000000")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecrementStock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.CreateProduct(ctx, ProductRequest{Barcode: "1", Name: "A", Stock: 5})
	require.NoError(t, err)

	require.NoError(t, svc.DecrementStock(ctx, p.ID.String(), 3))
	got, err := svc.GetProduct(ctx, p.ID.String())
	require.NoError(t, err)
	require.Equal(t, 2, got.Stock)

	err = svc.DecrementStock(ctx, p.ID.String(), 3)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	got, err = svc.GetProduct(ctx, p.ID.String())
	require.NoError(t, err)
	require.Equal(t, 2, got.Stock)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.AddCategory(ctx, "ขนมขบเคี้ยว"))
	require.NoError(t, svc.AddCategory(ctx, "เครื่องดื่ม"))
	require.NoError(t, svc.AddCategory(ctx, "ขนมขบเคี้ยว")) // no-op

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"ขนมขบเคี้ยว", "เครื่องดื่ม"}, categories)

	require.NoError(t, svc.DeleteCategory(ctx, "เครื่องดื่ม"))
	require.NoError(t, svc.DeleteCategory(ctx, "เครื่องดื่ม")) // idempotent

	categories, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"ขนมขบเคี้ยว"}, categories)
}

func TestDeleteCategory_DoesNotTouchProducts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.CreateProduct(ctx, ProductRequest{Barcode: "1", Name: "A", Category: "เครื่องดื่ม"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, "เครื่องดื่ม"))

	got, err := svc.GetProduct(ctx, p.ID.String())
	require.NoError(t, err)
	require.Equal(t, "เครื่องดื่ม", got.Category)
}

func TestLowStockCount(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateProduct(ctx, ProductRequest{Barcode: "1", Name: "ok", Stock: 50, MinStock: 10})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, ProductRequest{Barcode: "2", Name: "at threshold", Stock: 10, MinStock: 10})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, ProductRequest{Barcode: "3", Name: "below", Stock: 2, MinStock: 10})
	require.NoError(t, err)

	count, err := svc.LowStockCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
