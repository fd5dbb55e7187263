package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, productID string) (*Product, error)
	List(ctx context.Context, filter SearchFilter) ([]ProductRow, error)
	Get(ctx context.Context, productID string) (*Product, error)
	Categories(ctx context.Context) ([]Category, error)
}

type CreateRequest struct {
	ProductID string // optional; generated when blank
	Name      string
	Price     decimal.Decimal
	Category  string
	Stock     int
	ImagePath *string
}

type UpdateRequest struct {
	ProductID string // external id of the product to update
	Name      string
	Price     decimal.Decimal
	Category  string
	Stock     int
	ImagePath *string // nil keeps the current image
}

var (
	ErrNotFound        = errors.New("product_not_found")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidCategory = errors.New("invalid_category")
)
