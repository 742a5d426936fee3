package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// Catalog errors
var (
	ErrDuplicateBarcode  = errors.New("barcode already registered")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Checkout errors
var (
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	ErrNoCustomerSelected  = errors.New("no customer selected")
)
