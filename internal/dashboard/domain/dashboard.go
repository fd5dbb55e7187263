package domain

import (
	"context"

	"github.com/shopspring/decimal"
	billingdomain "github.com/velavancrackers/pos/internal/billing/domain"
)

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

// Summary is the storefront dashboard: today's trade plus the latest sales.
// The camelCase keys are what the shipped frontend reads.
type Summary struct {
	TodayRevenue   decimal.Decimal      `json:"todayRevenue"`
	TodayOrders    int64                `json:"todayOrders"`
	TodayCustomers int64                `json:"todayCustomers"`
	TotalProducts  int64                `json:"totalProducts"`
	LowStockCount  int64                `json:"lowStockCount"`
	RecentBills    []billingdomain.Bill `json:"recentOrders"`
}
