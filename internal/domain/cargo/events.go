package cargo

import (
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
)

// Event type names
const (
	EventTypeShipmentCreated       = "ShipmentCreated"
	EventTypeShipmentStatusChanged = "ShipmentStatusChanged"
)

// ShipmentCreatedEvent is raised when a shipment is booked
type ShipmentCreatedEvent struct {
	shared.BaseDomainEvent
	TrackingNumber string          `json:"tracking_number"`
	Price          decimal.Decimal `json:"price"`
}

// NewShipmentCreatedEvent creates a new ShipmentCreatedEvent
func NewShipmentCreatedEvent(s *Shipment) *ShipmentCreatedEvent {
	return &ShipmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentCreated, "CargoShipment", s.ID, s.TenantID),
		TrackingNumber:  s.TrackingNumber,
		Price:           s.Price,
	}
}

// ShipmentStatusChangedEvent is raised on every status change
type ShipmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	TrackingNumber string `json:"tracking_number"`
	From           Status `json:"from"`
	To             Status `json:"to"`
}

// NewShipmentStatusChangedEvent creates a new ShipmentStatusChangedEvent
func NewShipmentStatusChangedEvent(s *Shipment, from Status) *ShipmentStatusChangedEvent {
	return &ShipmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentStatusChanged, "CargoShipment", s.ID, s.TenantID),
		TrackingNumber:  s.TrackingNumber,
		From:            from,
		To:              s.Status,
	}
}
