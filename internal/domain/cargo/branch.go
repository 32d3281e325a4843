package cargo

import (
	"strings"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// Branch is an agency office that sends or receives cargo
type Branch struct {
	shared.TenantAggregateRoot
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// NewBranch creates a branch; codes are stored upper case
func NewBranch(tenantID uuid.UUID, code, name, city, country string) (*Branch, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_CODE", "Branch code must be 1-20 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}
	return &Branch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		City:                strings.TrimSpace(city),
		Country:             strings.ToUpper(strings.TrimSpace(country)),
	}, nil
}
