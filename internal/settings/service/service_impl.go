package service

import (
	"context"
	"strings"
	"time"

	"github.com/velavancrackers/pos/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type settingsService struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &settingsService{
		db:  p.DB,
		log: p.Log.Named("settings.service"),
	}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := s.db.WithContext(ctx).Raw(
		`SELECT id, gst_number, gst_rate, enable_gst, paper_size, updated_at
		 FROM settings ORDER BY id LIMIT 1`,
	).Scan(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *settingsService) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Settings, error) {
	paperSize := strings.ToUpper(strings.TrimSpace(req.PaperSize))
	if paperSize == "" {
		paperSize = "A4"
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Exec(
		`UPDATE settings SET gst_number = ?, gst_rate = ?, enable_gst = ?, paper_size = ?, updated_at = ? WHERE id = ?`,
		req.GSTNumber,
		req.GSTRate,
		req.EnableGST,
		paperSize,
		time.Now().UTC(),
		current.ID,
	).Error
	if err != nil {
		s.log.Error("failed to update settings", zap.Error(err))
		return nil, err
	}

	return s.Get(ctx)
}
