package repository

import (
	"context"
	"time"

	"github.com/velavancrackers/pos/internal/product/domain"
	"gorm.io/gorm"
)

// Stock below this count shows up in the low-stock listing.
const lowStockThreshold = 10

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, product_id, name, price, category_id, stock, image_path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.ProductID,
		product.Name,
		product.Price,
		product.CategoryID,
		product.Stock,
		product.ImagePath,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, price = ?, category_id = ?, stock = ?, image_path = ?, updated_at = ?
		 WHERE product_id = ?`,
		product.Name,
		product.Price,
		product.CategoryID,
		product.Stock,
		product.ImagePath,
		product.UpdatedAt,
		product.ProductID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, productID string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM products WHERE product_id = ?`, productID,
	).Error
}

func (r *repo) FindByProductID(ctx context.Context, db *gorm.DB, productID string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, name, price, category_id, stock, image_path, created_at, updated_at
		 FROM products WHERE product_id = ?`,
		productID,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, filter domain.SearchFilter) ([]domain.ProductRow, error) {
	var rows []domain.ProductRow
	stmt := db.WithContext(ctx).
		Table("products p").
		Select("p.*, c.name AS category").
		Joins("LEFT JOIN categories c ON p.category_id = c.id")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("p.product_id LIKE ? OR p.name LIKE ?", like, like)
	}
	if filter.Category != "" {
		stmt = stmt.Where("c.name = ?", filter.Category)
	}
	if filter.LowStock {
		stmt = stmt.Where("p.stock < ?", lowStockThreshold)
	}

	if err := stmt.Order("p.name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) FindCategoryByName(ctx context.Context, db *gorm.DB, name string) (*domain.Category, error) {
	var c domain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, created_at FROM categories WHERE name = ?`, name,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var items []domain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, created_at FROM categories ORDER BY name`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) AdjustStock(ctx context.Context, db *gorm.DB, productID string, delta int) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE products SET stock = stock + ?, updated_at = ? WHERE product_id = ?`,
		delta,
		time.Now().UTC(),
		productID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
