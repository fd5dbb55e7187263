package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velavancrackers/pos/internal/billing/domain"
	productdomain "github.com/velavancrackers/pos/internal/product/domain"
	"github.com/velavancrackers/pos/internal/product/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&productdomain.Category{},
		&productdomain.Product{},
		&domain.Bill{},
		&domain.BillItem{},
	)
	require.NoError(t, err)
	return db
}

func newService(t *testing.T, db *gorm.DB) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Products: repository.Provide(),
	})
}

func seedProduct(t *testing.T, db *gorm.DB, productID, name string, price string, stock int) {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	require.NoError(t, db.Create(&productdomain.Product{
		ID:        time.Now().UnixNano(),
		ProductID: productID,
		Name:      name,
		Price:     p,
		Stock:     stock,
	}).Error)
}

func stockOf(t *testing.T, db *gorm.DB, productID string) int {
	t.Helper()
	var stock int
	require.NoError(t, db.Raw(`SELECT stock FROM products WHERE product_id = ?`, productID).Scan(&stock).Error)
	return stock
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func saleRequest(items ...domain.CreateItem) domain.CreateRequest {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return domain.CreateRequest{
		CustomerName: "Walk-in Customer",
		Items:        items,
		Subtotal:     total,
		Total:        total,
		PaymentMode:  "cash",
	}
}

func TestCreate_SequentialNumbering(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	seedProduct(t, db, "P1", "Flower Pot", "50.00", 100)

	for i := 1; i <= 3; i++ {
		bill, err := svc.Create(context.Background(), saleRequest(
			domain.CreateItem{ID: "P1", Name: "Flower Pot", Quantity: 1, Price: dec("50.00")},
		))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SV%d", i), bill.BillNo)
	}
}

func TestCreate_NumericNotLexicographicNumbering(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	seedProduct(t, db, "P1", "Sparkler", "10.00", 100)

	for i, no := range []string{"SV9", "SV100", "SV23"} {
		require.NoError(t, db.Create(&domain.Bill{
			ID:          int64(i + 1),
			BillNo:      no,
			PaymentMode: "cash",
			Subtotal:    dec("10.00"),
			Total:       dec("10.00"),
		}).Error)
	}

	bill, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Sparkler", Quantity: 1, Price: dec("10.00")},
	))
	require.NoError(t, err)
	assert.Equal(t, "SV101", bill.BillNo)
}

func TestCreate_DecrementsStock(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	seedProduct(t, db, "P1", "Rocket", "120.00", 10)
	seedProduct(t, db, "P2", "Chakkar", "30.00", 5)

	bill, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Rocket", Quantity: 3, Price: dec("120.00")},
		domain.CreateItem{ID: "P2", Name: "Chakkar", Quantity: 1, Price: dec("30.00")},
	))
	require.NoError(t, err)
	assert.Equal(t, "SV1", bill.BillNo)
	assert.Equal(t, 7, stockOf(t, db, "P1"))
	assert.Equal(t, 4, stockOf(t, db, "P2"))

	detail, err := svc.GetByNumber(context.Background(), "SV1")
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.True(t, detail.Items[0].Total.Equal(dec("360.00")), "line total %s", detail.Items[0].Total)
}

func TestCreate_UnknownProductRollsBackEverything(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	seedProduct(t, db, "P1", "Rocket", "120.00", 10)
	seedProduct(t, db, "P2", "Chakkar", "30.00", 5)

	_, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Rocket", Quantity: 3, Price: dec("120.00")},
		domain.CreateItem{ID: "P2", Name: "Chakkar", Quantity: 1, Price: dec("30.00")},
		domain.CreateItem{ID: "NOPE", Name: "Ghost", Quantity: 1, Price: dec("1.00")},
	))
	require.Error(t, err)

	var creationErr *domain.CreationError
	assert.True(t, errors.As(err, &creationErr))
	assert.True(t, errors.Is(err, productdomain.ErrNotFound))

	// Nothing of the aborted sale survives.
	assert.Equal(t, 10, stockOf(t, db, "P1"))
	assert.Equal(t, 5, stockOf(t, db, "P2"))

	var billCount, itemCount int64
	require.NoError(t, db.Table("bills").Count(&billCount).Error)
	require.NoError(t, db.Table("bill_items").Count(&itemCount).Error)
	assert.Zero(t, billCount)
	assert.Zero(t, itemCount)
}

func TestCreate_Validation(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)

	_, err := svc.Create(context.Background(), domain.CreateRequest{PaymentMode: "cash"})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Items:       []domain.CreateItem{{ID: "P1", Quantity: 0, Price: dec("1.00")}},
		PaymentMode: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Items: []domain.CreateItem{{ID: "P1", Quantity: 1, Price: dec("1.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingPaymentMode)
}

// collidingStockRepo simulates a competing sale claiming the allocated bill
// number: on the first stock decrement it inserts a duplicate bills row
// through the same transaction, so the insert fails with a real
// unique-constraint error and the whole transaction rolls back.
type collidingStockRepo struct {
	productdomain.Repository
	collisions int
	attempts   int
}

func (r *collidingStockRepo) AdjustStock(ctx context.Context, db *gorm.DB, productID string, delta int) error {
	if delta < 0 {
		r.attempts++
		if r.attempts <= r.collisions {
			return db.Exec(
				`INSERT INTO bills (id, bill_no, customer_name, subtotal, gst_amount, discount, total, payment_mode)
				 VALUES (?, 'SV1', 'Racer', 0, 0, 0, 0, 'cash')`,
				int64(900000+r.attempts),
			).Error
		}
	}
	return r.Repository.AdjustStock(ctx, db, productID, delta)
}

func newServiceWithRepo(t *testing.T, db *gorm.DB, repo productdomain.Repository) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Products: repo,
	})
}

func TestCreate_RetriesOnceOnNumberCollision(t *testing.T) {
	db := setupDB(t)
	repo := &collidingStockRepo{Repository: repository.Provide(), collisions: 1}
	svc := newServiceWithRepo(t, db, repo)
	seedProduct(t, db, "P1", "Rocket", "120.00", 10)

	bill, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Rocket", Quantity: 2, Price: dec("120.00")},
	))
	require.NoError(t, err)
	assert.Equal(t, "SV1", bill.BillNo)
	assert.Equal(t, 2, repo.attempts)
	assert.Equal(t, 8, stockOf(t, db, "P1"))

	var billCount int64
	require.NoError(t, db.Table("bills").Count(&billCount).Error)
	assert.Equal(t, int64(1), billCount)
}

func TestCreate_GivesUpAfterSecondCollision(t *testing.T) {
	db := setupDB(t)
	repo := &collidingStockRepo{Repository: repository.Provide(), collisions: 2}
	svc := newServiceWithRepo(t, db, repo)
	seedProduct(t, db, "P1", "Rocket", "120.00", 10)

	_, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Rocket", Quantity: 2, Price: dec("120.00")},
	))
	require.Error(t, err)

	var creationErr *domain.CreationError
	assert.True(t, errors.As(err, &creationErr))
	assert.Equal(t, 2, repo.attempts)
	assert.Equal(t, 10, stockOf(t, db, "P1"))

	var billCount int64
	require.NoError(t, db.Table("bills").Count(&billCount).Error)
	assert.Zero(t, billCount)
}

func TestCreate_OversellGoesNegative(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	seedProduct(t, db, "P1", "Atom Bomb", "25.00", 2)

	_, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Atom Bomb", Quantity: 5, Price: dec("25.00")},
	))
	require.NoError(t, err)
	assert.Equal(t, -3, stockOf(t, db, "P1"))
}

func TestDelete_RestoresStock(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	seedProduct(t, db, "P1", "Rocket", "120.00", 10)
	seedProduct(t, db, "P2", "Chakkar", "30.00", 5)

	bill, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Rocket", Quantity: 3, Price: dec("120.00")},
		domain.CreateItem{ID: "P2", Name: "Chakkar", Quantity: 2, Price: dec("30.00")},
	))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), bill.BillNo))
	assert.Equal(t, 10, stockOf(t, db, "P1"))
	assert.Equal(t, 5, stockOf(t, db, "P2"))

	_, err = svc.GetByNumber(context.Background(), bill.BillNo)
	assert.ErrorIs(t, err, domain.ErrBillNotFound)
}

func TestDelete_SkipsRemovedProducts(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	seedProduct(t, db, "P1", "Rocket", "120.00", 10)
	seedProduct(t, db, "P2", "Chakkar", "30.00", 5)

	bill, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Rocket", Quantity: 3, Price: dec("120.00")},
		domain.CreateItem{ID: "P2", Name: "Chakkar", Quantity: 2, Price: dec("30.00")},
	))
	require.NoError(t, err)

	require.NoError(t, db.Exec(`DELETE FROM products WHERE product_id = ?`, "P2").Error)

	require.NoError(t, svc.Delete(context.Background(), bill.BillNo))
	assert.Equal(t, 10, stockOf(t, db, "P1"))
}

func TestDelete_DuplicateProductLines(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	seedProduct(t, db, "P1", "Rocket", "120.00", 10)

	bill, err := svc.Create(context.Background(), saleRequest(
		domain.CreateItem{ID: "P1", Name: "Rocket", Quantity: 2, Price: dec("120.00")},
		domain.CreateItem{ID: "P1", Name: "Rocket", Quantity: 3, Price: dec("120.00")},
	))
	require.NoError(t, err)
	assert.Equal(t, 5, stockOf(t, db, "P1"))

	require.NoError(t, svc.Delete(context.Background(), bill.BillNo))
	assert.Equal(t, 10, stockOf(t, db, "P1"))
}

func TestDelete_UnknownBill(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)

	err := svc.Delete(context.Background(), "SV999")
	assert.ErrorIs(t, err, domain.ErrBillNotFound)
}

func TestList_DateRangeAndOrder(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)

	days := []struct {
		no  string
		day time.Time
	}{
		{"SV1", time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC)},
		{"SV2", time.Date(2025, 10, 2, 10, 0, 0, 0, time.UTC)},
		{"SV3", time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC)},
	}
	for i, d := range days {
		require.NoError(t, db.Create(&domain.Bill{
			ID:          int64(i + 1),
			BillNo:      d.no,
			PaymentMode: "cash",
			Subtotal:    dec("10.00"),
			Total:       dec("10.00"),
			CreatedAt:   d.day,
		}).Error)
	}

	rows, err := svc.List(context.Background(), domain.ListFilter{
		From: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SV2", rows[0].BillNo)
	assert.Equal(t, "SV1", rows[1].BillNo)

	all, err := svc.List(context.Background(), domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "SV3", all[0].BillNo)
}
