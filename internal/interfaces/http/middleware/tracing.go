// Package middleware provides the gin middleware chain of the travel back office.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength bounds caller supplied request IDs.
const MaxRequestIDLength = 128

// Tracing wraps otelgin. Spans are named "METHOD /route/:param".
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(serviceName)
}

// SpanEnricher tags the active span with the request, tenant and user once
// authentication has run, and marks 4xx/5xx responses as errors.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if id := logger.GetRequestID(ctx); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}
		if id := logger.GetTenantID(ctx); id != uuid.Nil {
			span.SetAttributes(attribute.String("tenant_id", id.String()))
		}
		if id := logger.GetUserID(ctx); id != uuid.Nil {
			span.SetAttributes(attribute.String("user_id", id.String()))
		}

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.String("gin.errors", c.Errors.String()))
		}
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
