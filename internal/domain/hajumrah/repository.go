package hajumrah

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// CampaignRepository persists campaigns
type CampaignRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Campaign, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Campaign, int64, error)
	Save(ctx context.Context, campaign *Campaign) error
}

// BookingFilter narrows booking listings
type BookingFilter struct {
	shared.Filter
	CampaignID *uuid.UUID
	CustomerID *uuid.UUID
	Status     *BookingStatus
}

// BookingRepository persists bookings with their package lines
type BookingRepository interface {
	// FindByID loads the booking with its packages
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Booking, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter BookingFilter) ([]Booking, int64, error)
	// FindByCampaign loads every booking of a campaign with packages
	FindByCampaign(ctx context.Context, tenantID, campaignID uuid.UUID) ([]Booking, error)
	// ExistsActive reports whether a non-canceled booking exists for the pair, ignoring excludeID
	ExistsActive(ctx context.Context, tenantID, customerID, campaignID uuid.UUID, excludeID *uuid.UUID) (bool, error)
	// Save writes the booking row and replaces its package lines wholesale
	Save(ctx context.Context, booking *Booking) error
}
