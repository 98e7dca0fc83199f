package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/faktur-app/faktur/internal/audit"
	"github.com/faktur-app/faktur/internal/catalog"
	"github.com/faktur-app/faktur/internal/clock"
	"github.com/faktur-app/faktur/internal/company"
	"github.com/faktur-app/faktur/internal/config"
	"github.com/faktur-app/faktur/internal/customer"
	"github.com/faktur-app/faktur/internal/invoice"
	"github.com/faktur-app/faktur/internal/migration"
	"github.com/faktur-app/faktur/internal/observability"
	"github.com/faktur-app/faktur/internal/observability/logger"
	"github.com/faktur-app/faktur/internal/reminder"
	"github.com/faktur-app/faktur/internal/seed"
	"github.com/faktur-app/faktur/internal/server"
	"github.com/faktur-app/faktur/internal/sheetstore"
	"github.com/faktur-app/faktur/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		clock.Module,
		observability.Module,
		db.Module,
		migration.Module,
		seed.Module,
		catalog.Module,
		customer.Module,
		company.Module,
		invoice.Module,
		reminder.Module,
		sheetstore.Module,
		audit.Module,
		server.Module,
	)
	app.Run()
}
