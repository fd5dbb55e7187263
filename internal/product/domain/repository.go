package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines persistence operations for products and categories.
// Every method takes the database handle explicitly so callers can pass
// either the shared pool or an open transaction.
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, productID string) error
	FindByProductID(ctx context.Context, db *gorm.DB, productID string) (*Product, error)
	Search(ctx context.Context, db *gorm.DB, filter SearchFilter) ([]ProductRow, error)

	FindCategoryByName(ctx context.Context, db *gorm.DB, name string) (*Category, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)

	// AdjustStock adds delta (which may be negative) to the product's stock.
	// It reports ErrNotFound when no product carries the external id.
	AdjustStock(ctx context.Context, db *gorm.DB, productID string, delta int) error
}

// SearchFilter narrows the catalog listing.
type SearchFilter struct {
	Search   string // matches product_id or name, substring
	Category string // exact category name
	LowStock bool   // stock below the low-stock threshold
}

// ProductRow is a product joined with its category name, as the listing
// endpoint returns it.
type ProductRow struct {
	Product
	Category *string `json:"category"`
}
