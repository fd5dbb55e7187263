package service

import (
	"context"

	"github.com/shopspring/decimal"
	billingdomain "github.com/velavancrackers/pos/internal/billing/domain"
	"github.com/velavancrackers/pos/internal/dashboard/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentBillCount = 5
const lowStockThreshold = 10

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type dashboardService struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &dashboardService{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

func (s *dashboardService) Summary(ctx context.Context) (*domain.Summary, error) {
	summary := &domain.Summary{TodayRevenue: decimal.Zero}

	type todayRow struct {
		Revenue   decimal.Decimal
		Orders    int64
		Customers int64
	}
	var today todayRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total), 0) AS revenue,
		        COUNT(*) AS orders,
		        COUNT(DISTINCT customer_name) AS customers
		 FROM bills
		 WHERE DATE(created_at) = DATE(CURRENT_TIMESTAMP)`,
	).Scan(&today).Error
	if err != nil {
		return nil, err
	}
	summary.TodayRevenue = today.Revenue
	summary.TodayOrders = today.Orders
	summary.TodayCustomers = today.Customers

	err = s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM products`,
	).Scan(&summary.TotalProducts).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM products WHERE stock < ?`, lowStockThreshold,
	).Scan(&summary.LowStockCount).Error
	if err != nil {
		return nil, err
	}

	var recent []billingdomain.Bill
	err = s.db.WithContext(ctx).Raw(
		`SELECT id, bill_no, customer_name, customer_phone, subtotal, gst_amount, discount, total, payment_mode, created_at
		 FROM bills ORDER BY created_at DESC LIMIT ?`,
		recentBillCount,
	).Scan(&recent).Error
	if err != nil {
		return nil, err
	}
	summary.RecentBills = recent

	return summary, nil
}
