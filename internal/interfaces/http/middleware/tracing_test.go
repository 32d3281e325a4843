package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestTracing(t *testing.T) {
	recorder := installRecorder(t)
	tenantID := uuid.New()

	r := gin.New()
	r.Use(RequestID(), Tracing("travel-test", true))
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.WithTenant(c.Request.Context(), tenantID))
		c.Next()
	})
	r.Use(SpanEnricher())
	r.GET("/tickets/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, httptest.NewRequest(http.MethodGet, "/tickets/42", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/broken", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Contains(t, spans[0].Name(), "/tickets/:id")
	assert.Equal(t, tenantID.String(), attrs["tenant_id"])
	assert.NotEmpty(t, attrs["request_id"])
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestTracing_Disabled(t *testing.T) {
	recorder := installRecorder(t)
	r := gin.New()
	r.Use(Tracing("travel-test", false), SpanEnricher())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	assert.Empty(t, recorder.Ended())
}
