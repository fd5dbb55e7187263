package seed

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	authdomain "github.com/velavancrackers/pos/internal/auth/domain"
	"github.com/velavancrackers/pos/internal/auth/password"
	productdomain "github.com/velavancrackers/pos/internal/product/domain"
	settingsdomain "github.com/velavancrackers/pos/internal/settings/domain"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@srivelavancrackers.com"
	defaultAdminPassword = "admin123"
)

var defaultCategories = []string{
	"Sparklers", "Rockets", "one sound crackers", "flowerpots",
	"twinkling star", "pencil crackers", "children special fountains",
	"fountains and crackling", "paper bomb", "bijili crackers",
	"continuous crackers", "fancy sky shots", "night shots multicolour",
	"roll cap& colour matches", "special gift box", "Bombs",
	"Fountains", "ground chakkars", "fancy chakkars",
}

// EnsureDefaults makes a fresh database usable: one admin account, the
// settings row and the stock category list. Every step is idempotent.
func EnsureDefaults(db *gorm.DB, genID *snowflake.Node) error {
	if err := ensureAdmin(db, genID); err != nil {
		return err
	}
	if err := ensureSettings(db, genID); err != nil {
		return err
	}
	return ensureCategories(db, genID)
}

func ensureAdmin(db *gorm.DB, genID *snowflake.Node) error {
	var count int64
	if err := db.Model(&authdomain.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}
	return db.Create(&authdomain.Admin{
		ID:        genID.Generate().Int64(),
		Email:     defaultAdminEmail,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func ensureSettings(db *gorm.DB, genID *snowflake.Node) error {
	var count int64
	if err := db.Model(&settingsdomain.Settings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Create(&settingsdomain.Settings{
		ID:        genID.Generate().Int64(),
		GSTNumber: "",
		GSTRate:   decimal.NewFromInt(18),
		EnableGST: false,
		PaperSize: "A4",
		UpdatedAt: time.Now().UTC(),
	}).Error
}

func ensureCategories(db *gorm.DB, genID *snowflake.Node) error {
	for _, name := range defaultCategories {
		var count int64
		err := db.Model(&productdomain.Category{}).Where("name = ?", name).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		err = db.Create(&productdomain.Category{
			ID:        genID.Generate().Int64(),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
