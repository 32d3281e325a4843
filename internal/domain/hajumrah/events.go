package hajumrah

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
)

// Event type names
const (
	EventTypeBookingConfirmed = "BookingConfirmed"
	EventTypeBookingCanceled  = "BookingCanceled"
	EventTypeCampaignCanceled = "CampaignCanceled"
)

// BookingConfirmedEvent is raised when a booking becomes confirmed
type BookingConfirmedEvent struct {
	shared.BaseDomainEvent
	BookingNumber string          `json:"booking_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewBookingConfirmedEvent creates a new BookingConfirmedEvent
func NewBookingConfirmedEvent(b *Booking) *BookingConfirmedEvent {
	return &BookingConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingConfirmed, "HajUmrahBooking", b.ID, b.TenantID),
		BookingNumber:   b.BookingNumber,
		CustomerID:      b.CustomerID,
		TotalAmount:     b.TotalAmount(),
	}
}

// BookingCanceledEvent is raised when a booking is canceled directly or with its campaign
type BookingCanceledEvent struct {
	shared.BaseDomainEvent
	BookingNumber string     `json:"booking_number"`
	CampaignID    *uuid.UUID `json:"campaign_id,omitempty"`
}

// NewBookingCanceledEvent creates a new BookingCanceledEvent
func NewBookingCanceledEvent(b *Booking) *BookingCanceledEvent {
	return &BookingCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCanceled, "HajUmrahBooking", b.ID, b.TenantID),
		BookingNumber:   b.BookingNumber,
		CampaignID:      b.CampaignID,
	}
}

// CampaignCanceledEvent is raised when a campaign is canceled
type CampaignCanceledEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewCampaignCanceledEvent creates a new CampaignCanceledEvent
func NewCampaignCanceledEvent(c *Campaign) *CampaignCanceledEvent {
	return &CampaignCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampaignCanceled, "Campaign", c.ID, c.TenantID),
		Name:            c.Name,
	}
}
