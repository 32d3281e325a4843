// Package ledger holds the shared financial vocabulary every booking writes into:
// payables owed to suppliers, payments owed by customers with their receipts,
// standalone expenses and ticket adjustments.
package ledger

import (
	"github.com/google/uuid"
)

// SourceType identifies the kind of booking that owns a ledger row
type SourceType string

const (
	SourceTicket          SourceType = "ticket"
	SourceVisa            SourceType = "visa"
	SourceHajUmrahBooking SourceType = "haj_umrah_booking"
	SourceCargoShipment   SourceType = "cargo_shipment"
)

// IsValid checks if the source type is known
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTicket, SourceVisa, SourceHajUmrahBooking, SourceCargoShipment:
		return true
	}
	return false
}

// CountsAsRevenue reports whether sales of this source roll into booking revenue
func (t SourceType) CountsAsRevenue() bool {
	return t == SourceTicket || t == SourceVisa || t == SourceHajUmrahBooking
}

// Source is the owning booking of a payment or payable
type Source struct {
	Type SourceType
	ID   uuid.UUID
}

// NewSource builds a source reference
func NewSource(t SourceType, id uuid.UUID) Source {
	return Source{Type: t, ID: id}
}
