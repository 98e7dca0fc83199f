package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRenderCountsResults(t *testing.T) {
	m := newRenderMetrics(prometheus.NewRegistry(), Config{ServiceName: "faktur-test"})

	m.ObserveRender("pdf", 120*time.Millisecond, nil)
	m.ObserveRender("pdf", 0, errors.New("boom"))
	m.IncReminderDraft("template")

	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("pdf", "success")); got != 1 {
		t.Fatalf("success count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("pdf", "failed")); got != 1 {
		t.Fatalf("failed count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.reminderDrafts.WithLabelValues("template")); got != 1 {
		t.Fatalf("reminder drafts = %v, want 1", got)
	}
}

func TestRenderMetricsNilReceiverIsSafe(t *testing.T) {
	var m *RenderMetrics
	m.ObserveRender("image", time.Second, nil)
	m.IncReminderDraft("suggestion")
}

func TestRenderReturnsProcessSingleton(t *testing.T) {
	ResetRenderMetricsForTest()
	a := Render()
	b := RenderWithConfig(Config{ServiceName: "other"})
	if a != b {
		t.Fatal("expected the same instance")
	}
}
