// Package tenant is the isolation boundary every booking and ledger row belongs to.
package tenant

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// Status represents the status of a tenant
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

var codeRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]{1,48}[a-z0-9]$`)

// Tenant is an agency using the back office. Code doubles as its subdomain.
type Tenant struct {
	shared.BaseEntity
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// NewTenant creates an active tenant
func NewTenant(code, name string) (*Tenant, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !codeRegex.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Tenant code must be 3-50 lowercase letters, digits or hyphens")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Status:     StatusActive,
	}, nil
}

// IsActive reports whether the tenant can be used
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// Repository looks tenants up for request resolution and platform views
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	FindAll(ctx context.Context) ([]Tenant, error)
	Save(ctx context.Context, t *Tenant) error
}
