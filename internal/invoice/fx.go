package invoice

import (
	"github.com/faktur-app/faktur/internal/invoice/render"
	"github.com/faktur-app/faktur/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewPDFRenderer),
	fx.Provide(render.NewImageRenderer),
	fx.Provide(service.NewService),
)
