// Package partner holds the agency's customers.
package partner

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is a traveler or sender referenced by bookings
type Customer struct {
	shared.TenantAggregateRoot
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Country  string `json:"country,omitempty"`
	Passport string `json:"passport,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// NewCustomer creates a new customer with required fields
func NewCustomer(tenantID uuid.UUID, name string) (*Customer, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}, nil
}

// UpdateContact replaces the optional contact fields
func (c *Customer) UpdateContact(email, phone, country string) error {
	email = strings.TrimSpace(email)
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Country = strings.TrimSpace(country)
	c.IncrementVersion()
	return nil
}

// Rename changes the display name
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCustomerName(name); err != nil {
		return err
	}
	c.Name = name
	c.IncrementVersion()
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}
