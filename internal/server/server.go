// Package server exposes the HTTP API: invoices, catalog, customers,
// company profile, document exports and sheet import/export.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	auditdomain "github.com/faktur-app/faktur/internal/audit/domain"
	catalogdomain "github.com/faktur-app/faktur/internal/catalog/domain"
	companydomain "github.com/faktur-app/faktur/internal/company/domain"
	"github.com/faktur-app/faktur/internal/config"
	customerdomain "github.com/faktur-app/faktur/internal/customer/domain"
	invoicedomain "github.com/faktur-app/faktur/internal/invoice/domain"
	"github.com/faktur-app/faktur/internal/observability/logger"
	"github.com/faktur-app/faktur/internal/observability/metrics"
	"github.com/faktur-app/faktur/internal/observability/tracing"
	reminderdomain "github.com/faktur-app/faktur/internal/reminder/domain"
	"github.com/faktur-app/faktur/internal/sheetstore"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(RunHTTP),
)

type ServerParam struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
	DB     *gorm.DB

	InvoiceSvc  invoicedomain.Service
	CatalogSvc  catalogdomain.Service
	CustomerSvc customerdomain.Service
	CompanySvc  companydomain.Service
	ReminderSvc reminderdomain.Service
	SheetSvc    sheetstore.Service
	AuditSvc    auditdomain.Service

	RenderMetrics *metrics.RenderMetrics `optional:"true"`
}

type Server struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB

	invoiceSvc  invoicedomain.Service
	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
	companySvc  companydomain.Service
	reminderSvc reminderdomain.Service
	sheetSvc    sheetstore.Service
	auditSvc    auditdomain.Service

	renderMetrics *metrics.RenderMetrics
	exportLimiter *rateLimiter
}

func NewServer(p ServerParam) *Server {
	log := p.Log.Named("server")
	if strings.TrimSpace(p.Config.OwnerAPIKey) == "" {
		log.Warn("owner api key is not configured, all requests will be rejected")
	} else {
		log.Info("owner api key loaded", zap.String("api_key", logger.MaskAPIKey(p.Config.OwnerAPIKey)))
	}
	return &Server{
		cfg:           p.Config,
		log:           log,
		db:            p.DB,
		invoiceSvc:    p.InvoiceSvc,
		catalogSvc:    p.CatalogSvc,
		customerSvc:   p.CustomerSvc,
		companySvc:    p.CompanySvc,
		reminderSvc:   p.ReminderSvc,
		sheetSvc:      p.SheetSvc,
		auditSvc:      p.AuditSvc,
		renderMetrics: p.RenderMetrics,
		exportLimiter: newRateLimiter(p.Config.ExportRateLimit, p.Config.ExportRateWindow),
	}
}

func NewEngine(cfg *config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(tracing.GinMiddleware())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

func RegisterRoutes(engine *gin.Engine, s *Server) {
	engine.GET("/healthz", s.Healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/v1")
	api.Use(s.APIKeyRequired())

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.PATCH("/invoices/:id/status", s.UpdateInvoiceStatus)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.ExportInvoicePDF)
	api.GET("/invoices/:id/image", s.ExportInvoiceImage)
	api.POST("/invoices/:id/reminder", s.DraftReminder)

	api.POST("/products", s.CreateProduct)
	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProduct)
	api.PUT("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomer)
	api.PUT("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	api.GET("/company", s.GetCompanyProfile)
	api.PUT("/company", s.UpdateCompanyProfile)

	api.POST("/sheets/products/import", s.ImportProductSheet)
	api.POST("/sheets/customers/import", s.ImportCustomerSheet)
	api.GET("/sheets/products/export", s.ExportProductSheet)
	api.GET("/sheets/customers/export", s.ExportCustomerSheet)
	api.GET("/sheets/invoices/export", s.ExportInvoiceSheet)

	api.GET("/audit-logs", s.ListAuditLogs)
}

// RunHTTP starts the HTTP listener on the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// @Summary      Health Check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
