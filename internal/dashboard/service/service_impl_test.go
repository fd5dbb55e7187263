package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	billingdomain "github.com/velavancrackers/pos/internal/billing/domain"
	"github.com/velavancrackers/pos/internal/dashboard/domain"
	productdomain "github.com/velavancrackers/pos/internal/product/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestSummary(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&billingdomain.Bill{}, &productdomain.Product{}))

	now := time.Now().UTC()
	for i, bill := range []billingdomain.Bill{
		{ID: 1, BillNo: "SV1", CustomerName: "Kumar", Total: decimal.NewFromInt(100), PaymentMode: "cash", CreatedAt: now},
		{ID: 2, BillNo: "SV2", CustomerName: "Priya", Total: decimal.NewFromInt(250), PaymentMode: "upi", CreatedAt: now},
		{ID: 3, BillNo: "SV3", CustomerName: "Kumar", Total: decimal.NewFromInt(50), PaymentMode: "cash", CreatedAt: now},
		{ID: 4, BillNo: "SV4", CustomerName: "Old Sale", Total: decimal.NewFromInt(999), PaymentMode: "cash", CreatedAt: now.AddDate(0, 0, -3)},
	} {
		require.NoError(t, db.Create(&bill).Error, "seed %d", i)
	}
	require.NoError(t, db.Create(&productdomain.Product{ID: 1, ProductID: "P1", Name: "Rocket", Price: decimal.NewFromInt(120), Stock: 3}).Error)
	require.NoError(t, db.Create(&productdomain.Product{ID: 2, ProductID: "P2", Name: "Sparkler", Price: decimal.NewFromInt(10), Stock: 200}).Error)

	svc := New(Params{DB: db, Log: zap.NewNop()})
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.TodayRevenue.Equal(decimal.NewFromInt(400)), "revenue %s", summary.TodayRevenue)
	assert.Equal(t, int64(3), summary.TodayOrders)
	assert.Equal(t, int64(2), summary.TodayCustomers)
	assert.Equal(t, int64(2), summary.TotalProducts)
	assert.Equal(t, int64(1), summary.LowStockCount)
	require.Len(t, summary.RecentBills, 4)
	assert.Equal(t, decimal.NewFromInt(999).String(), summary.RecentBills[3].Total.String())
}

func TestSummary_JSONKeys(t *testing.T) {
	raw, err := json.Marshal(domain.Summary{TodayRevenue: decimal.Zero, RecentBills: []billingdomain.Bill{}})
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &payload))
	for _, key := range []string{"todayRevenue", "todayOrders", "todayCustomers", "totalProducts", "lowStockCount", "recentOrders"} {
		assert.Contains(t, payload, key)
	}
}
