package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role gates which parts of the application a user can reach.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// User is an operator of the terminal. The PIN is stored as a bcrypt hash
// and never leaves the backend.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	PINHash  string    `json:"pinHash,omitempty"`
}

// Product is a catalog entry. Stock is mutated only through the catalog
// store's stock adjustment; it never goes negative.
type Product struct {
	ID        uuid.UUID `json:"id"`
	Barcode   string    `json:"barcode"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CostPrice float64   `json:"costPrice"`
	SalePrice float64   `json:"salePrice"`
	Stock     int       `json:"stock"`
	MinStock  int       `json:"minStock"` // reorder threshold
	Image     string    `json:"image,omitempty"`
}

// HistoryAction classifies a customer ledger entry.
type HistoryAction string

const (
	ActionPurchase HistoryAction = "PURCHASE"
	ActionPayment  HistoryAction = "PAYMENT"
)

// CustomerHistory is an immutable, append-only ledger entry.
type CustomerHistory struct {
	ID     uuid.UUID     `json:"id"`
	Date   time.Time     `json:"date"`
	Action HistoryAction `json:"action"`
	Amount float64       `json:"amount"`
	Note   string        `json:"note,omitempty"`
}

// Customer is a credit account holder. History is chronological; read-side
// consumers that want recency-first reverse it at the presentation boundary.
type Customer struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	CreditLimit float64           `json:"creditLimit"`
	CurrentDebt float64           `json:"currentDebt"`
	History     []CustomerHistory `json:"history"`
}

// PaymentMethod represents how a sale was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCredit   PaymentMethod = "CREDIT"
)

// CartItem is a frozen product snapshot plus a quantity. It exists only
// inside an in-progress sale and inside completed orders; later product
// edits do not touch it.
type CartItem struct {
	Product
	Qty int `json:"qty"`
}

// Order records one completed checkout. Orders are immutable once appended
// to the journal.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	Date          time.Time     `json:"date"`
	Items         []CartItem    `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Total         float64       `json:"total"`
	Profit        float64       `json:"profit"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CashReceived  float64       `json:"cashReceived"`
	Change        float64       `json:"change"`
	CustomerID    *uuid.UUID    `json:"customerId,omitempty"` // set iff CREDIT
	CashierName   string        `json:"cashierName"`
}

// DebtReceipt is the result of a debt payment, handed to the caller for
// receipt rendering.
type DebtReceipt struct {
	ID            uuid.UUID `json:"id"`
	Date          time.Time `json:"date"`
	CustomerName  string    `json:"customerName"`
	Amount        float64   `json:"amount"`
	RemainingDebt float64   `json:"remainingDebt"`
	CashierName   string    `json:"cashierName"`
}
