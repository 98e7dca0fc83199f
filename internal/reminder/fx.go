package reminder

import (
	"github.com/faktur-app/faktur/internal/reminder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reminder.service",
	fx.Provide(service.NewService),
)
