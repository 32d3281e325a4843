package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/tenant"
	"github.com/travelerp/backend/internal/infrastructure/logger"
)

func tenantRouter(cfg TenantMiddlewareConfig, actor *appshared.Actor) (*gin.Engine, *uuid.UUID) {
	var seen uuid.UUID
	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) { c.Set(ActorKey, *actor); c.Next() })
	}
	r.Use(Tenant(cfg))
	r.GET("/x", func(c *gin.Context) {
		id, _ := GetTenantID(c)
		seen = id
		if a, ok := GetActor(c); ok && a.TenantID != id {
			c.Status(http.StatusTeapot)
			return
		}
		if logger.GetTenantID(c.Request.Context()) != id {
			c.Status(http.StatusTeapot)
			return
		}
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestTenant_ResolutionOrder(t *testing.T) {
	acme := mustTenant(t, "acme")
	other := mustTenant(t, "other")
	tenants := newFakeTenants(acme, other)
	cfg := TenantMiddlewareConfig{Resolver: tenants, BaseDomain: "travel.example.com", Required: true}

	t.Run("jwt wins over header and subdomain", func(t *testing.T) {
		r, seen := tenantRouter(cfg, &appshared.Actor{TenantID: acme.ID, UserID: uuid.New()})
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(DefaultTenantHeader, other.ID.String())
		req.Host = "other.travel.example.com"
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
		assert.Equal(t, acme.ID, *seen)
	})

	t.Run("header wins over subdomain", func(t *testing.T) {
		r, seen := tenantRouter(cfg, nil)
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(DefaultTenantHeader, other.ID.String())
		req.Host = "acme.travel.example.com"
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
		assert.Equal(t, other.ID, *seen)
	})

	t.Run("subdomain", func(t *testing.T) {
		r, seen := tenantRouter(cfg, nil)
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Host = "acme.travel.example.com:8080"
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
		assert.Equal(t, acme.ID, *seen)
	})

	t.Run("custom header name", func(t *testing.T) {
		custom := cfg
		custom.HeaderName = "X-Agency"
		r, seen := tenantRouter(custom, nil)
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Agency", acme.ID.String())
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
		assert.Equal(t, acme.ID, *seen)
	})
}

func TestTenant_Rejections(t *testing.T) {
	acme := mustTenant(t, "acme")
	suspended := mustTenant(t, "sleepy")
	suspended.Status = tenant.StatusSuspended
	cfg := TenantMiddlewareConfig{Resolver: newFakeTenants(acme, suspended), BaseDomain: "travel.example.com", Required: true}

	tests := []struct {
		name   string
		header string
		host   string
		status int
		code   string
	}{
		{"nothing", "", "travel.example.com", http.StatusBadRequest, "TENANT_REQUIRED"},
		{"www", "", "www.travel.example.com", http.StatusBadRequest, "TENANT_REQUIRED"},
		{"bad uuid", "nope", "", http.StatusBadRequest, "INVALID_TENANT"},
		{"unknown id", uuid.NewString(), "", http.StatusUnauthorized, "TENANT_UNRESOLVED"},
		{"unknown code", "", "ghost.travel.example.com", http.StatusUnauthorized, "TENANT_UNRESOLVED"},
		{"suspended", suspended.ID.String(), "", http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := tenantRouter(cfg, nil)
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set(DefaultTenantHeader, tt.header)
			}
			if tt.host != "" {
				req.Host = tt.host
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}

	t.Run("lookup failure is internal", func(t *testing.T) {
		broken := newFakeTenants()
		broken.err = errors.New("connection refused")
		r, _ := tenantRouter(TenantMiddlewareConfig{Resolver: broken}, nil)
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(DefaultTenantHeader, acme.ID.String())
		assert.Equal(t, http.StatusInternalServerError, serve(r, req).Code)
	})

	t.Run("optional passes through", func(t *testing.T) {
		r, seen := tenantRouter(TenantMiddlewareConfig{Resolver: newFakeTenants()}, nil)
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
		assert.Equal(t, uuid.Nil, *seen)
	})
}

func TestExtractTenantFromSubdomain(t *testing.T) {
	tests := []struct {
		host, base, want string
	}{
		{"acme.travel.io", "travel.io", "acme"},
		{"ACME.travel.io:443", "travel.io", "acme"},
		{"a.b.travel.io", "travel.io", "a"},
		{"travel.io", "travel.io", ""},
		{"www.travel.io", "travel.io", ""},
		{"acmetravel.io", "travel.io", ""},
		{"acme.travel.io", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTenantFromSubdomain(tt.host, tt.base))
		})
	}
}
