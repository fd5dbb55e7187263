package domain

import (
	"context"
	"errors"
	"time"
)

// Admin is a back-office account. The shop runs with a single seeded admin
// but nothing prevents registering more.
type Admin struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Admin) TableName() string { return "admin" }

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*Admin, error)
	Register(ctx context.Context, req RegisterRequest) (*Admin, error)
	UpdateCredentials(ctx context.Context, req UpdateCredentialsRequest) error
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateCredentialsRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailExists        = errors.New("email_exists")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrWeakPassword       = errors.New("weak_password")
)
