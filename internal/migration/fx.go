package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/velavancrackers/pos/internal/config"
	"github.com/velavancrackers/pos/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}

		return seed.EnsureDefaults(conn, genID)
	}),
)
