// Package currency holds the per-tenant spot rate table and the converter every
// multi-currency aggregate must route through.
package currency

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// Rate is the number of currency units that equal one USD
type Rate struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Currency    valueobject.Currency
	UnitsPerUSD decimal.Decimal
	UpdatedAt   time.Time
}

// NewRate validates and builds a rate row
func NewRate(tenantID uuid.UUID, code string, unitsPerUSD decimal.Decimal) (*Rate, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	cur, err := valueobject.ParseCurrency(code)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	if !unitsPerUSD.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate must be greater than zero")
	}
	if cur.IsUSD() && !unitsPerUSD.Equal(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_RATE", "USD rate is fixed at 1")
	}
	return &Rate{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Currency:    cur,
		UnitsPerUSD: unitsPerUSD,
		UpdatedAt:   time.Now(),
	}, nil
}
