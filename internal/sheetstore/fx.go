package sheetstore

import "go.uber.org/fx"

var Module = fx.Module("sheetstore.service",
	fx.Provide(NewService),
)
