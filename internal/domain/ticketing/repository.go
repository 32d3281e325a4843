package ticketing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// SaleFilter narrows ticket and visa listings
type SaleFilter struct {
	shared.Filter
	CustomerID      *uuid.UUID
	IncludeCanceled bool
	From            *time.Time
	To              *time.Time
}

// TicketRepository persists tickets
type TicketRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Ticket, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter SaleFilter) ([]Ticket, int64, error)
	Save(ctx context.Context, ticket *Ticket) error
}

// VisaRepository persists visas
type VisaRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Visa, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter SaleFilter) ([]Visa, int64, error)
	Save(ctx context.Context, visa *Visa) error
}
