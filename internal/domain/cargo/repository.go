package cargo

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// BranchRepository persists branches
type BranchRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Branch, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Branch, error)
	Save(ctx context.Context, branch *Branch) error
}

// ShipmentFilter narrows shipment listings
type ShipmentFilter struct {
	shared.Filter
	Status   *Status
	BranchID *uuid.UUID
}

// ShipmentRepository persists shipments with items and their tracking trail
type ShipmentRepository interface {
	// FindByID loads the shipment with items and logs
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Shipment, error)
	// FindByTrackingNumber is the public lookup. Numbers are unique per tenant only:
	// a nil tenantID searches every tenant and returns the newest match.
	FindByTrackingNumber(ctx context.Context, tenantID *uuid.UUID, trackingNumber string) (*Shipment, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter ShipmentFilter) ([]Shipment, int64, error)
	// Create inserts the shipment, its items and its initial logs
	Create(ctx context.Context, shipment *Shipment) error
	// UpdateStatus writes the status columns and appends one log row
	UpdateStatus(ctx context.Context, shipment *Shipment, log TrackingLog) error
}
