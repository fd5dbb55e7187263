package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is one completed sale. BillNo carries the human-facing sequential
// number (SV1, SV2, ...) and is unique across the table; the primary key is
// app-generated.
type Bill struct {
	ID           int64           `json:"-" gorm:"primaryKey"`
	BillNo       string          `json:"bill_no" gorm:"type:varchar(20);not null;uniqueIndex"`
	CustomerName string          `json:"customer_name" gorm:"type:varchar(255);not null;default:'Walk-in Customer'"`
	Phone        *string         `json:"customer_phone,omitempty" gorm:"column:customer_phone;type:varchar(20)"`
	Subtotal     decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	GSTAmount    decimal.Decimal `json:"gst_amount" gorm:"type:decimal(10,2);not null;default:0"`
	Discount     decimal.Decimal `json:"discount" gorm:"type:decimal(10,2);not null;default:0"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	PaymentMode  string          `json:"payment_mode" gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

func (Bill) TableName() string { return "bills" }

// BillItem is one line of a bill. ProductID references products.product_id
// but is not a foreign key: the product may be deleted after the sale and the
// line survives it.
type BillItem struct {
	ID          int64           `json:"-" gorm:"primaryKey"`
	BillID      int64           `json:"-" gorm:"not null;index"`
	ProductID   string          `json:"product_id" gorm:"type:varchar(50);not null"`
	ProductName string          `json:"product_name" gorm:"type:varchar(255);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
}

func (BillItem) TableName() string { return "bill_items" }
