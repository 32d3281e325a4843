package currency

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// RateRepository stores the tenant's spot rate table
type RateRepository interface {
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Rate, error)
	FindByCurrency(ctx context.Context, tenantID uuid.UUID, cur valueobject.Currency) (*Rate, error)
	// Upsert inserts or replaces the rate for (tenant, currency)
	Upsert(ctx context.Context, rate *Rate) error
}
