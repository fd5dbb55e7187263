package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products in the catalog. Categories are seeded at startup
// and referenced by name from the product endpoints.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Category) TableName() string { return "categories" }

// Product is one catalog entry. ProductID is the human-facing external
// identifier (P...) that bill items reference; stock is the on-hand counter
// and may go negative when a sale oversells.
type Product struct {
	ID         int64           `json:"-" gorm:"primaryKey"`
	ProductID  string          `json:"product_id" gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string          `json:"name" gorm:"type:varchar(255);not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID *int64          `json:"-" gorm:"index"`
	Stock      int             `json:"stock" gorm:"not null;default:0"`
	ImagePath  *string         `json:"image_path,omitempty" gorm:"type:varchar(500)"`
	CreatedAt  time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }
