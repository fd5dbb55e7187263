package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single-row shop configuration that billing and the PDF
// renderer read at sale time.
type Settings struct {
	ID        int64           `json:"-" gorm:"primaryKey"`
	GSTNumber string          `json:"gst_number" gorm:"column:gst_number;type:varchar(50)"`
	GSTRate   decimal.Decimal `json:"gst_rate" gorm:"column:gst_rate;type:decimal(5,2);not null;default:0"`
	EnableGST bool            `json:"enable_gst" gorm:"column:enable_gst;not null;default:false"`
	PaperSize string          `json:"paper_size" gorm:"type:varchar(10);not null;default:'A4'"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Settings) TableName() string { return "settings" }

type Service interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, req UpdateRequest) (*Settings, error)
}

type UpdateRequest struct {
	GSTNumber string          `json:"gst_number"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	EnableGST bool            `json:"enable_gst"`
	PaperSize string          `json:"paper_size"`
}
