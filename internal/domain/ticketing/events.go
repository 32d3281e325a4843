package ticketing

import (
	"github.com/travelerp/backend/internal/domain/shared"
)

// Event type names
const (
	EventTypeTicketCanceled = "TicketCanceled"
	EventTypeVisaCanceled   = "VisaCanceled"
)

// TicketCanceledEvent is raised when a ticket is canceled
type TicketCanceledEvent struct {
	shared.BaseDomainEvent
	TicketNumber string `json:"ticket_number"`
}

// NewTicketCanceledEvent creates a new TicketCanceledEvent
func NewTicketCanceledEvent(t *Ticket) *TicketCanceledEvent {
	return &TicketCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketCanceled, "Ticket", t.ID, t.TenantID),
		TicketNumber:    t.TicketNumber,
	}
}

// VisaCanceledEvent is raised when a visa is canceled
type VisaCanceledEvent struct {
	shared.BaseDomainEvent
	VisaNumber string `json:"visa_number"`
}

// NewVisaCanceledEvent creates a new VisaCanceledEvent
func NewVisaCanceledEvent(v *Visa) *VisaCanceledEvent {
	return &VisaCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVisaCanceled, "Visa", v.ID, v.TenantID),
		VisaNumber:      v.VisaNumber,
	}
}
