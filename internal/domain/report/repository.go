package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DataSource loads read-only report inputs
type DataSource interface {
	// LoadInputs returns one tenant's rows dated in [from, to)
	LoadInputs(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*Inputs, error)
	// TenantActivity is the only cross-tenant read: counts and open balances per tenant
	TenantActivity(ctx context.Context) ([]TenantActivity, error)
}
