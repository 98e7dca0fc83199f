package observability

import (
	"github.com/faktur-app/faktur/internal/config"
	"github.com/faktur-app/faktur/internal/observability/metrics"
	"github.com/faktur-app/faktur/internal/observability/tracing"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*sdktrace.TracerProvider, error) {
		return tracing.NewProvider(lc, tracing.Config{
			Enabled:          cfg.Tracing.Enabled,
			ServiceName:      cfg.ServiceName,
			ServiceVersion:   cfg.ServiceVersion,
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
			ExporterProtocol: cfg.Tracing.ExporterProtocol,
			SamplingRatio:    cfg.Tracing.SamplingRatio,
		}, log)
	}),
	fx.Provide(func(cfg *config.Config) metrics.Config {
		return metrics.Config{
			ServiceName: cfg.ServiceName,
			Environment: cfg.Environment,
		}
	}),
	fx.Provide(metrics.NewMeterProvider),
	fx.Provide(func(cfg metrics.Config, provider *sdkmetric.MeterProvider) (*metrics.HTTPMetrics, error) {
		return metrics.NewHTTPMetrics(cfg, provider)
	}),
	fx.Provide(func(cfg metrics.Config) *metrics.RenderMetrics {
		return metrics.RenderWithConfig(cfg)
	}),
	// Force the tracer provider to initialize; nothing takes it as a
	// dependency directly.
	fx.Invoke(func(provider *sdktrace.TracerProvider) {}),
)
