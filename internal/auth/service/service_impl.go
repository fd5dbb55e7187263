package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/velavancrackers/pos/internal/auth/domain"
	"github.com/velavancrackers/pos/internal/auth/password"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 6

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type authService struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &authService{
		db:    p.DB,
		log:   p.Log.Named("auth.service"),
		genID: p.GenID,
	}
}

func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Admin, error) {
	admin, err := s.findByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if admin == nil || !password.Verify(req.Password, admin.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	return admin, nil
}

func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		ID:        s.genID.Generate().Int64(),
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	}
	err = s.db.WithContext(ctx).Exec(
		`INSERT INTO admin (id, email, password, created_at) VALUES (?, ?, ?, ?)`,
		admin.ID, admin.Email, admin.Password, admin.CreatedAt,
	).Error
	if err != nil {
		s.log.Error("failed to register admin", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return admin, nil
}

func (s *authService) UpdateCredentials(ctx context.Context, req domain.UpdateCredentialsRequest) error {
	admin, err := s.findByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}
	if admin == nil || !password.Verify(req.CurrentPassword, admin.Password) {
		return domain.ErrInvalidCredentials
	}
	if len(req.NewPassword) < minPasswordLen {
		return domain.ErrWeakPassword
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Exec(
		`UPDATE admin SET password = ? WHERE id = ?`, hashed, admin.ID,
	).Error
}

func (s *authService) findByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := s.db.WithContext(ctx).Raw(
		`SELECT id, email, password, created_at FROM admin WHERE email = ?`, email,
	).Scan(&admin).Error
	if err != nil {
		return nil, err
	}
	if admin.ID == 0 {
		return nil, nil
	}
	return &admin, nil
}
