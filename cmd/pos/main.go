package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/velavancrackers/pos/internal/config"
	"github.com/velavancrackers/pos/internal/logger"
	"github.com/velavancrackers/pos/internal/migration"
	"github.com/velavancrackers/pos/internal/server"
	"github.com/velavancrackers/pos/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
