package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func TestGinMiddlewareContinuesInboundTrace(t *testing.T) {
	SetPropagator()
	gin.SetMode(gin.TestMode)

	var got trace.SpanContext
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/invoices", func(c *gin.Context) {
		got = trace.SpanContextFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if !got.IsValid() {
		t.Fatal("expected a valid inbound span context")
	}
	if got.TraceID().String() != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Fatalf("trace id = %s", got.TraceID())
	}
	if !got.IsRemote() {
		t.Fatal("inbound span context should be remote")
	}
}
