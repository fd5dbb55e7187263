package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Create allocates the next bill number and writes the bill, its items
	// and the matching stock decrements in one transaction.
	Create(ctx context.Context, req CreateRequest) (*Bill, error)

	// Delete removes the bill addressed by number and restores the stock its
	// items consumed. Products deleted since the sale are skipped.
	Delete(ctx context.Context, billNo string) error

	// List returns bills newest-first, optionally bounded by an inclusive
	// calendar-date range.
	List(ctx context.Context, filter ListFilter) ([]ListRow, error)

	// GetByNumber returns a single bill with its full line items.
	GetByNumber(ctx context.Context, billNo string) (*Detail, error)
}

type CreateRequest struct {
	CustomerName string          `json:"customer_name"`
	Phone        *string         `json:"customer_phone"`
	Items        []CreateItem    `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	GSTAmount    decimal.Decimal `json:"gst_amount"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	PaymentMode  string          `json:"payment_mode"`
}

type CreateItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ListFilter bounds the bill listing. Zero times mean unbounded.
type ListFilter struct {
	From time.Time
	To   time.Time
}

// ListRow is one bill in the listing, items included.
type ListRow struct {
	Bill
	Items []ListItem `json:"items"`
}

type ListItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Detail is a single bill with its complete line items.
type Detail struct {
	Bill
	Items []BillItem `json:"items"`
}

var (
	ErrBillNotFound       = errors.New("bill_not_found")
	ErrEmptyItems         = errors.New("empty_items")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrMissingPaymentMode = errors.New("missing_payment_mode")
)

// CreationError wraps any failure inside the bill creation transaction so
// callers can tell a rolled-back sale from a request validation error.
type CreationError struct {
	Cause error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("bill creation failed: %v", e.Cause)
}

func (e *CreationError) Unwrap() error { return e.Cause }
