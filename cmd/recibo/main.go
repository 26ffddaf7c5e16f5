package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/smallbiznis/recibo/internal/clock"
	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/migration"
	"github.com/smallbiznis/recibo/internal/observability"
	"github.com/smallbiznis/recibo/internal/server"
	"github.com/smallbiznis/recibo/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
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
