package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, int64, error)
	Save(ctx context.Context, customer *Customer) error
}
