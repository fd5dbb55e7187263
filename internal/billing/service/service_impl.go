package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/velavancrackers/pos/internal/billing/domain"
	"github.com/velavancrackers/pos/internal/billing/number"
	productdomain "github.com/velavancrackers/pos/internal/product/domain"
	"github.com/velavancrackers/pos/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Products productdomain.Repository
}

type billingService struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	products productdomain.Repository
}

func New(p Params) domain.Service {
	return &billingService{
		db:       p.DB,
		log:      p.Log.Named("billing.service"),
		genID:    p.GenID,
		products: p.Products,
	}
}

func (s *billingService) Create(ctx context.Context, req domain.CreateRequest) (*domain.Bill, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}
	if strings.TrimSpace(req.PaymentMode) == "" {
		return nil, domain.ErrMissingPaymentMode
	}

	// The sale must commit or roll back as a whole even if the client
	// disconnects mid-flight.
	ctx = context.WithoutCancel(ctx)

	bill, err := s.createOnce(ctx, req)
	if err != nil && db.IsDuplicateKeyErr(err) {
		// Another sale claimed the same number between allocation and
		// insert. Re-run the whole transaction once with a fresh number.
		s.log.Warn("bill number collision, retrying", zap.Error(err))
		bill, err = s.createOnce(ctx, req)
	}
	if err != nil {
		s.log.Error("failed to create bill", zap.Error(err))
		return nil, &domain.CreationError{Cause: err}
	}

	s.log.Info("bill created",
		zap.String("bill_no", bill.BillNo),
		zap.Int("items", len(req.Items)),
		zap.String("total", bill.Total.StringFixed(2)),
	)
	return bill, nil
}

func (s *billingService) createOnce(ctx context.Context, req domain.CreateRequest) (*domain.Bill, error) {
	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		customer = "Walk-in Customer"
	}

	bill := &domain.Bill{
		ID:           s.genID.Generate().Int64(),
		CustomerName: customer,
		Phone:        req.Phone,
		Subtotal:     req.Subtotal,
		GSTAmount:    req.GSTAmount,
		Discount:     req.Discount,
		Total:        req.Total,
		PaymentMode:  req.PaymentMode,
		CreatedAt:    time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.billNumbers(ctx, tx)
		if err != nil {
			return err
		}
		bill.BillNo = number.Next(existing)

		if err := s.insertBill(ctx, tx, bill); err != nil {
			return err
		}

		for _, item := range req.Items {
			line := &domain.BillItem{
				ID:          s.genID.Generate().Int64(),
				BillID:      bill.ID,
				ProductID:   item.ID,
				ProductName: item.Name,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Total:       item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			}
			if err := s.insertItem(ctx, tx, line); err != nil {
				return err
			}
			if err := s.products.AdjustStock(ctx, tx, item.ID, -item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billingService) Delete(ctx context.Context, billNo string) error {
	ctx = context.WithoutCancel(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := s.findByNo(ctx, tx, billNo)
		if err != nil {
			return err
		}
		if bill == nil {
			return domain.ErrBillNotFound
		}

		items, err := s.itemsOf(ctx, tx, bill.ID)
		if err != nil {
			return err
		}

		for _, item := range items {
			err := s.products.AdjustStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil && !errors.Is(err, productdomain.ErrNotFound) {
				return err
			}
		}

		if err := tx.Exec(`DELETE FROM bill_items WHERE bill_id = ?`, bill.ID).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM bills WHERE id = ?`, bill.ID).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return err
		}
		s.log.Error("failed to delete bill", zap.String("bill_no", billNo), zap.Error(err))
		return err
	}

	s.log.Info("bill deleted", zap.String("bill_no", billNo))
	return nil
}

func (s *billingService) List(ctx context.Context, filter domain.ListFilter) ([]domain.ListRow, error) {
	stmt := s.db.WithContext(ctx).Table("bills")
	if !filter.From.IsZero() {
		stmt = stmt.Where("DATE(created_at) >= DATE(?)", filter.From)
	}
	if !filter.To.IsZero() {
		stmt = stmt.Where("DATE(created_at) <= DATE(?)", filter.To)
	}

	var bills []domain.Bill
	if err := stmt.Order("created_at DESC").Scan(&bills).Error; err != nil {
		return nil, err
	}

	rows := make([]domain.ListRow, 0, len(bills))
	for _, bill := range bills {
		items, err := s.itemsOf(ctx, s.db, bill.ID)
		if err != nil {
			return nil, err
		}
		row := domain.ListRow{Bill: bill, Items: make([]domain.ListItem, 0, len(items))}
		for _, item := range items {
			row.Items = append(row.Items, domain.ListItem{
				Name:     item.ProductName,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *billingService) GetByNumber(ctx context.Context, billNo string) (*domain.Detail, error) {
	bill, err := s.findByNo(ctx, s.db, billNo)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrBillNotFound
	}

	items, err := s.itemsOf(ctx, s.db, bill.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Detail{Bill: *bill, Items: items}, nil
}

func (s *billingService) billNumbers(ctx context.Context, tx *gorm.DB) ([]string, error) {
	var numbers []string
	err := tx.WithContext(ctx).Raw(`SELECT bill_no FROM bills`).Scan(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (s *billingService) insertBill(ctx context.Context, tx *gorm.DB, bill *domain.Bill) error {
	return tx.WithContext(ctx).Exec(
		`INSERT INTO bills (id, bill_no, customer_name, customer_phone, subtotal, gst_amount, discount, total, payment_mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID,
		bill.BillNo,
		bill.CustomerName,
		bill.Phone,
		bill.Subtotal,
		bill.GSTAmount,
		bill.Discount,
		bill.Total,
		bill.PaymentMode,
		bill.CreatedAt,
	).Error
}

func (s *billingService) insertItem(ctx context.Context, tx *gorm.DB, item *domain.BillItem) error {
	return tx.WithContext(ctx).Exec(
		`INSERT INTO bill_items (id, bill_id, product_id, product_name, quantity, price, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.BillID,
		item.ProductID,
		item.ProductName,
		item.Quantity,
		item.Price,
		item.Total,
	).Error
}

func (s *billingService) findByNo(ctx context.Context, tx *gorm.DB, billNo string) (*domain.Bill, error) {
	var bill domain.Bill
	err := tx.WithContext(ctx).Raw(
		`SELECT id, bill_no, customer_name, customer_phone, subtotal, gst_amount, discount, total, payment_mode, created_at
		 FROM bills WHERE bill_no = ?`,
		billNo,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (s *billingService) itemsOf(ctx context.Context, tx *gorm.DB, billID int64) ([]domain.BillItem, error) {
	var items []domain.BillItem
	err := tx.WithContext(ctx).Raw(
		`SELECT id, bill_id, product_id, product_name, quantity, price, total
		 FROM bill_items WHERE bill_id = ? ORDER BY id`,
		billID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
