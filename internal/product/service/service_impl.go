package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/velavancrackers/pos/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type productService struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &productService{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *productService) Create(ctx context.Context, req domain.CreateRequest) (*domain.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		productID = fmt.Sprintf("P%d", time.Now().UnixMilli())
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:         s.genID.Generate().Int64(),
		ProductID:  productID,
		Name:       strings.TrimSpace(req.Name),
		Price:      req.Price,
		CategoryID: categoryID,
		Stock:      req.Stock,
		ImagePath:  req.ImagePath,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, s.db, product); err != nil {
		s.log.Error("failed to create product", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}

	return product, nil
}

func (s *productService) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	existing, err := s.repo.FindByProductID(ctx, s.db, req.ProductID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Price = req.Price
	existing.CategoryID = categoryID
	existing.Stock = req.Stock
	if req.ImagePath != nil {
		existing.ImagePath = req.ImagePath
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		s.log.Error("failed to update product", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, err
	}

	return existing, nil
}

func (s *productService) Delete(ctx context.Context, productID string) (*domain.Product, error) {
	existing, err := s.repo.FindByProductID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, productID); err != nil {
		s.log.Error("failed to delete product", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}

	return existing, nil
}

func (s *productService) List(ctx context.Context, filter domain.SearchFilter) ([]domain.ProductRow, error) {
	return s.repo.Search(ctx, s.db, filter)
}

func (s *productService) Get(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.repo.FindByProductID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (s *productService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx, s.db)
}

// resolveCategory maps a category name to its id. A blank name leaves the
// product uncategorized.
func (s *productService) resolveCategory(ctx context.Context, name string) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	category, err := s.repo.FindCategoryByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrInvalidCategory
	}
	return &category.ID, nil
}
