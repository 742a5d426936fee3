package checkout

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/modules/catalog"
	"github.com/sampinong/pos-backend/internal/modules/customer"
	"github.com/sampinong/pos-backend/internal/modules/order"
)

// TxManager makes the checkout's validate-and-apply sequence one commit.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service defines the checkout engine.
type Service interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*domain.Order, error)
}

// CheckoutItem references a catalog product and a quantity. The engine
// builds the frozen snapshots itself so callers cannot smuggle prices in.
type CheckoutItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CheckoutRequest is a cart plus a payment intent. Total is what the
// terminal displayed to the cashier; the engine re-derives it and rejects a
// mismatch rather than trusting it.
type CheckoutRequest struct {
	Items        []CheckoutItem       `json:"items"`
	Total        float64              `json:"total"`
	Method       domain.PaymentMethod `json:"paymentMethod"`
	CashReceived float64              `json:"cashReceived"`
	CustomerID   string               `json:"customerId,omitempty"`
	CashierName  string               `json:"-"`
}

type service struct {
	catalog catalog.Service
	ledger  customer.Service
	journal order.Service
	tx      TxManager
}

func NewService(catalogSvc catalog.Service, ledgerSvc customer.Service, journalSvc order.Service, tx TxManager) Service {
	return &service{catalog: catalogSvc, ledger: ledgerSvc, journal: journalSvc, tx: tx}
}

// amountsEqual compares money values at satang precision.
func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// Checkout converts a cart into a committed Order. Validation and the three
// mutations (stock decrement, credit charge, journal append) run inside one
// transaction: a failure at any point leaves every collection untouched.
func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", domain.ErrInvalidInput)
	}
	switch req.Method {
	case domain.PaymentCash, domain.PaymentTransfer, domain.PaymentCredit:
	default:
		return nil, fmt.Errorf("unknown payment method %q: %w", req.Method, domain.ErrInvalidInput)
	}
	for _, it := range req.Items {
		if it.Qty < 1 {
			return nil, fmt.Errorf("quantity must be at least 1: %w", domain.ErrInvalidInput)
		}
	}

	var placed *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// freeze item snapshots from current catalog state and re-derive totals
		items := make([]domain.CartItem, 0, len(req.Items))
		var total, cost float64
		for _, it := range req.Items {
			p, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if it.Qty > p.Stock {
				return fmt.Errorf("%s: %w", p.Name, domain.ErrInsufficientStock)
			}
			items = append(items, domain.CartItem{Product: *p, Qty: it.Qty})
			total += p.SalePrice * float64(it.Qty)
			cost += p.CostPrice * float64(it.Qty)
		}
		if !amountsEqual(total, req.Total) {
			return fmt.Errorf("total %.2f does not match cart value %.2f: %w",
				req.Total, total, domain.ErrInvalidInput)
		}

		// payment feasibility
		cashReceived, change := total, 0.0
		var creditCustomer *domain.Customer
		switch req.Method {
		case domain.PaymentCash:
			if math.IsNaN(req.CashReceived) || math.IsInf(req.CashReceived, 0) || req.CashReceived < 0 {
				return fmt.Errorf("cash received is not a valid amount: %w", domain.ErrInsufficientPayment)
			}
			if req.CashReceived < total {
				return fmt.Errorf("cash received %.2f below total %.2f: %w",
					req.CashReceived, total, domain.ErrInsufficientPayment)
			}
			cashReceived = req.CashReceived
			change = cashReceived - total
		case domain.PaymentTransfer:
			// verified out-of-band; nothing to check
		case domain.PaymentCredit:
			if req.CustomerID == "" {
				return domain.ErrNoCustomerSelected
			}
			c, err := s.ledger.GetCustomer(ctx, req.CustomerID)
			if err != nil {
				return err
			}
			if c.CreditLimit-c.CurrentDebt < total {
				return fmt.Errorf("available credit %.2f below total %.2f: %w",
					c.CreditLimit-c.CurrentDebt, total, domain.ErrCreditLimitExceeded)
			}
			creditCustomer = c
		}

		cashier := req.CashierName
		if cashier == "" {
			cashier = "Unknown"
		}
		o := &domain.Order{
			ID:            uuid.New(),
			Date:          time.Now(),
			Items:         items,
			Subtotal:      total,
			Total:         total,
			Profit:        total - cost,
			PaymentMethod: req.Method,
			CashReceived:  cashReceived,
			Change:        change,
			CashierName:   cashier,
		}
		if creditCustomer != nil {
			id := creditCustomer.ID
			o.CustomerID = &id
		}

		// apply: stock decrements, credit charge, journal append
		for _, it := range items {
			if err := s.catalog.DecrementStock(ctx, it.ID.String(), it.Qty); err != nil {
				return err
			}
		}
		if creditCustomer != nil {
			note := fmt.Sprintf("ซื้อสินค้า Order #%s", o.ID)
			if err := s.ledger.ChargeCredit(ctx, creditCustomer.ID, total, note); err != nil {
				return err
			}
		}
		if err := s.journal.Append(ctx, o); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}
