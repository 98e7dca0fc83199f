package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RenderMetrics tracks the document pipeline: PDF/image renders and
// reminder drafts.
type RenderMetrics struct {
	renderDuration *prometheus.HistogramVec
	rendersTotal   *prometheus.CounterVec
	reminderDrafts *prometheus.CounterVec
}

var (
	renderMetricsOnce sync.Once
	renderMetrics     *RenderMetrics
)

func Render() *RenderMetrics {
	return RenderWithConfig(Config{})
}

func RenderWithConfig(cfg Config) *RenderMetrics {
	renderMetricsOnce.Do(func() {
		renderMetrics = newRenderMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return renderMetrics
}

func ResetRenderMetricsForTest() {
	renderMetricsOnce = sync.Once{}
	renderMetrics = nil
}

func newRenderMetrics(registerer prometheus.Registerer, cfg Config) *RenderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "faktur"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "faktur_document_render_duration_seconds",
			Help:        "Time spent rendering a single invoice document.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		},
		[]string{"format"},
	)

	rendersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "faktur_document_renders_total",
			Help:        "Total invoice documents rendered.",
			ConstLabels: constLabels,
		},
		[]string{"format", "result"}, // result: success | failed
	)

	reminderDrafts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "faktur_reminder_drafts_total",
			Help:        "Total payment reminder drafts produced.",
			ConstLabels: constLabels,
		},
		[]string{"source"}, // source: suggestion | template
	)

	registerer.MustRegister(renderDuration, rendersTotal, reminderDrafts)

	return &RenderMetrics{
		renderDuration: renderDuration,
		rendersTotal:   rendersTotal,
		reminderDrafts: reminderDrafts,
	}
}

func (m *RenderMetrics) ObserveRender(format string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failed"
	}
	m.rendersTotal.WithLabelValues(format, result).Inc()
	if err == nil {
		m.renderDuration.WithLabelValues(format).Observe(duration.Seconds())
	}
}

func (m *RenderMetrics) IncReminderDraft(source string) {
	if m == nil {
		return
	}
	m.reminderDrafts.WithLabelValues(source).Inc()
}
