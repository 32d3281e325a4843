package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/tenant"
	"github.com/travelerp/backend/internal/infrastructure/logger"
	"github.com/travelerp/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	TenantIDKey         = "tenant_id"
	TenantCodeKey       = "tenant_code"
	DefaultTenantHeader = "X-Tenant-ID"
)

// TenantResolver looks tenants up by ID or subdomain code
type TenantResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	FindByCode(ctx context.Context, code string) (*tenant.Tenant, error)
}

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	Resolver TenantResolver
	// HeaderName overrides X-Tenant-ID
	HeaderName string
	// BaseDomain enables subdomain lookup when set (acme.example.com -> "acme")
	BaseDomain string
	// Required rejects requests that identify no tenant
	Required bool
	Logger   *zap.Logger
}

// Tenant resolves exactly one tenant per request. Order: JWT claim, then the
// tenant header, then the subdomain. The tenant must exist and be active.
func Tenant(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	header := cfg.HeaderName
	if header == "" {
		header = DefaultTenantHeader
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := requestLogger(c, cfg.Logger)

		var (
			t      *tenant.Tenant
			err    error
			method string
		)
		actor, hasActor := GetActor(c)
		switch {
		case hasActor:
			method = "jwt"
			t, err = cfg.Resolver.FindByID(ctx, actor.TenantID)
		case c.GetHeader(header) != "":
			method = "header"
			id, parseErr := uuid.Parse(c.GetHeader(header))
			if parseErr != nil {
				abortWithError(c, http.StatusBadRequest, "INVALID_TENANT", "Invalid tenant ID format")
				return
			}
			t, err = cfg.Resolver.FindByID(ctx, id)
		default:
			code := extractTenantFromSubdomain(c.Request.Host, cfg.BaseDomain)
			if code == "" {
				if cfg.Required {
					abortWithError(c, http.StatusBadRequest, "TENANT_REQUIRED", "Tenant identification required")
					return
				}
				c.Next()
				return
			}
			method = "subdomain"
			t, err = cfg.Resolver.FindByCode(ctx, code)
		}

		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				log.Error("Tenant lookup failed", zap.String("method", method), zap.Error(err))
				abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An internal error occurred")
				return
			}
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeTenantUnknown, "Unknown tenant")
			return
		}
		if !t.IsActive() {
			log.Warn("Request for inactive tenant", zap.String("tenant_id", t.ID.String()))
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Tenant is suspended")
			return
		}

		c.Set(TenantIDKey, t.ID)
		c.Set(TenantCodeKey, t.Code)
		if hasActor {
			actor.TenantID = t.ID
			c.Set(ActorKey, actor)
		}
		c.Request = c.Request.WithContext(logger.WithTenant(ctx, t.ID))
		c.Next()
	}
}

// extractTenantFromSubdomain returns "acme" for "acme.example.com" under
// base domain "example.com"; "www" and the bare domain yield nothing.
func extractTenantFromSubdomain(host, baseDomain string) string {
	if baseDomain == "" {
		return ""
	}
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	host = strings.ToLower(host)
	if !strings.HasSuffix(host, "."+baseDomain) {
		return ""
	}
	sub := strings.TrimSuffix(host, "."+baseDomain)
	if sub == "" || sub == "www" {
		return ""
	}
	return strings.Split(sub, ".")[0]
}

// GetTenantID returns the resolved tenant, if any
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	if v, ok := c.Get(TenantIDKey); ok {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return id, true
		}
	}
	return uuid.Nil, false
}
