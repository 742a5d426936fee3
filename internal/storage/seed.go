package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Seed inserts the shop's starter data on first run. Collections that
// already hold data are left alone.
func (s *Store) Seed(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	if err := s.seedProducts(ctx); err != nil {
		return err
	}
	return s.seedCustomers(ctx)
}

func (s *Store) seedUsers(ctx context.Context) error {
	existing, err := s.ListUsers(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	seeds := []struct {
		username, name, pin string
		role                domain.Role
	}{
		{"admin", "เจ้าของร้าน (Admin)", "1234", domain.RoleAdmin},
		{"staff", "พนักงานขาย (Staff)", "0000", domain.RoleStaff},
	}
	for _, u := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.pin), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash pin for %s: %w", u.username, err)
		}
		if err := s.CreateUser(ctx, &domain.User{
			ID:       uuid.New(),
			Username: u.username,
			Name:     u.name,
			Role:     u.role,
			PINHash:  string(hash),
		}); err != nil {
			return err
		}
		log.Printf("seeded user: %s", u.username)
	}
	return nil
}

func (s *Store) seedProducts(ctx context.Context) error {
	existing, err := s.ListProducts(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	products := []domain.Product{
		{
			ID:        uuid.New(),
			Barcode:   "8850001",
			Name:      "น้ำดื่มตราสิงห์ 600ml",
			Category:  "เครื่องดื่ม",
			CostPrice: 5,
			SalePrice: 10,
			Stock:     100,
			MinStock:  20,
			Image:     "https://picsum.photos/200/200?random=1",
		},
		{
			ID:        uuid.New(),
			Barcode:   "8850002",
			Name:      "เลย์ รสมันฝรั่งแท้ 50g",
			Category:  "ขนมขบเคี้ยว",
			CostPrice: 15,
			SalePrice: 20,
			Stock:     45,
			MinStock:  10,
			Image:     "https://picsum.photos/200/200?random=2",
		},
		{
			ID:        uuid.New(),
			Barcode:   "8850003",
			Name:      "มาม่า รสหมูสับ",
			Category:  "อาหารแห้ง",
			CostPrice: 5,
			SalePrice: 7,
			Stock:     200,
			MinStock:  50,
			Image:     "https://picsum.photos/200/200?random=3",
		},
		{
			ID:        uuid.New(),
			Barcode:   "8850004",
			Name:      "กาแฟกระป๋อง เบอร์ดี้",
			Category:  "เครื่องดื่ม",
			CostPrice: 12,
			SalePrice: 15,
			Stock:     12,
			MinStock:  24,
			Image:     "https://picsum.photos/200/200?random=4",
		},
	}
	for _, p := range products {
		if err := s.CreateProduct(ctx, &p); err != nil {
			return err
		}
		if err := s.AddCategory(ctx, p.Category); err != nil {
			return err
		}
	}
	log.Printf("seeded %d products", len(products))
	return nil
}

func (s *Store) seedCustomers(ctx context.Context) error {
	existing, err := s.ListCustomers(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	customers := []domain.Customer{
		{
			ID:          uuid.New(),
			Name:        "คุณสมชาย ใจดี",
			Phone:       "081-234-5678",
			Address:     "123 หมู่ 1 ต.ในเมือง",
			CreditLimit: 1000,
			CurrentDebt: 0,
			History:     []domain.CustomerHistory{},
		},
		{
			ID:          uuid.New(),
			Name:        "ป้าแดง ร้านข้าวแกง",
			Phone:       "089-999-8888",
			Address:     "ตลาดสดเทศบาล",
			CreditLimit: 5000,
			CurrentDebt: 1200,
			History:     []domain.CustomerHistory{},
		},
	}
	for _, c := range customers {
		if err := s.CreateCustomer(ctx, &c); err != nil {
			return err
		}
	}
	log.Printf("seeded %d customers", len(customers))
	return nil
}
