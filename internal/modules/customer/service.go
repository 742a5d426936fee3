package customer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Service defines the customer ledger's business logic.
type Service interface {
	CreateCustomer(ctx context.Context, req CustomerRequest) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req CustomerRequest) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ChargeCredit(ctx context.Context, customerID uuid.UUID, amount float64, note string) error
	PayDebt(ctx context.Context, customerID uuid.UUID, amount float64, cashierName string) (*domain.DebtReceipt, error)
}

// CustomerRequest holds the data for registering or editing a customer.
// Debt and history are ledger-owned and cannot be set through it.
type CustomerRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	CreditLimit float64 `json:"creditLimit"`
}

type service struct {
	repo Repository
	tx   TxManager
}

func NewService(repo Repository, tx TxManager) Service {
	return &service{repo: repo, tx: tx}
}

func (r CustomerRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if r.CreditLimit < 0 {
		return fmt.Errorf("credit limit must be non-negative: %w", domain.ErrInvalidInput)
	}
	return nil
}

// CreateCustomer registers a customer with zero debt and an empty history,
// whatever the caller supplied.
func (s *service) CreateCustomer(ctx context.Context, req CustomerRequest) (*domain.Customer, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	c := &domain.Customer{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
		CurrentDebt: 0,
		History:     []domain.CustomerHistory{},
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCustomer replaces contact details and credit limit. The ledger
// fields are carried over from the stored record: only charge and payment
// operations may move them.
func (s *service) UpdateCustomer(ctx context.Context, id string, req CustomerRequest) (*domain.Customer, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", domain.ErrInvalidInput)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	var updated *domain.Customer
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetCustomer(ctx, cid)
		if err != nil {
			return err
		}
		existing.Name = strings.TrimSpace(req.Name)
		existing.Phone = req.Phone
		existing.Address = req.Address
		existing.CreditLimit = req.CreditLimit
		if err := s.repo.UpdateCustomer(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", domain.ErrInvalidInput)
	}
	return s.repo.GetCustomer(ctx, cid)
}

func (s *service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// ChargeCredit raises the customer's debt and appends a PURCHASE entry.
// The credit limit is not re-checked here: the checkout engine performs the
// pre-check, and both run under the same commit lock.
func (s *service) ChargeCredit(ctx context.Context, customerID uuid.UUID, amount float64, note string) error {
	if amount <= 0 {
		return fmt.Errorf("charge amount must be positive: %w", domain.ErrInvalidInput)
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		c.CurrentDebt += amount
		c.History = append(c.History, domain.CustomerHistory{
			ID:     uuid.New(),
			Date:   time.Now(),
			Action: domain.ActionPurchase,
			Amount: amount,
			Note:   note,
		})
		return s.repo.UpdateCustomer(ctx, c)
	})
}

// PayDebt settles part or all of a customer's outstanding debt and returns
// the receipt data for printing.
func (s *service) PayDebt(ctx context.Context, customerID uuid.UUID, amount float64, cashierName string) (*domain.DebtReceipt, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive: %w", domain.ErrInvalidInput)
	}
	var receipt *domain.DebtReceipt
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if amount > c.CurrentDebt {
			return fmt.Errorf("payment exceeds current debt: %w", domain.ErrInvalidInput)
		}
		entry := domain.CustomerHistory{
			ID:     uuid.New(),
			Date:   time.Now(),
			Action: domain.ActionPayment,
			Amount: amount,
			Note:   "ชำระหนี้คงค้าง",
		}
		c.CurrentDebt = math.Max(0, c.CurrentDebt-amount)
		c.History = append(c.History, entry)
		if err := s.repo.UpdateCustomer(ctx, c); err != nil {
			return err
		}
		receipt = &domain.DebtReceipt{
			ID:            entry.ID,
			Date:          entry.Date,
			CustomerName:  c.Name,
			Amount:        amount,
			RemainingDebt: c.CurrentDebt,
			CashierName:   cashierName,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
