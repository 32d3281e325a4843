package ticketing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
)

// TicketNumber formats a sequence value into a ticket number
func TicketNumber(seq int64) string {
	return fmt.Sprintf("TKT-%06d", seq)
}

// TicketDetails is the editable content of a ticket
type TicketDetails struct {
	Reference     string
	IssueDate     time.Time
	CustomerID    *uuid.UUID
	PassengerName string
	Airline       string
	Route         string
	FlightNumber  string
	DepartureDate *time.Time
	ReturnDate    *time.Time
	SupplierName  string
	Notes         string
	Amounts       SaleAmounts
}

func (d TicketDetails) validate() (TicketDetails, error) {
	d.Reference = strings.TrimSpace(d.Reference)
	if d.Reference == "" {
		return d, ErrReferenceRequired
	}
	if err := d.Amounts.Validate(); err != nil {
		return d, err
	}
	if d.DepartureDate != nil && d.ReturnDate != nil && d.ReturnDate.Before(*d.DepartureDate) {
		return d, shared.NewDomainError("INVALID_DATES", "Return date cannot be before departure date")
	}
	d.Amounts = d.Amounts.normalized()
	d.PassengerName = strings.TrimSpace(d.PassengerName)
	d.Route = strings.TrimSpace(d.Route)
	d.FlightNumber = strings.ToUpper(strings.TrimSpace(d.FlightNumber))
	return d, nil
}

// Ticket is an air ticket sale
type Ticket struct {
	shared.TenantAggregateRoot
	TicketNumber  string      `json:"ticket_number"`
	Reference     string      `json:"reference"`
	IssueDate     time.Time   `json:"issue_date"`
	CustomerID    *uuid.UUID  `json:"customer_id,omitempty"`
	PassengerName string      `json:"passenger_name"`
	Airline       string      `json:"airline"`
	Route         string      `json:"route"`
	FlightNumber  string      `json:"flight_number"`
	DepartureDate *time.Time  `json:"departure_date,omitempty"`
	ReturnDate    *time.Time  `json:"return_date,omitempty"`
	SupplierName  string      `json:"supplier_name"`
	Notes         string      `json:"notes,omitempty"`
	Amounts       SaleAmounts `json:"amounts"`
	CanceledAt    *time.Time  `json:"canceled_at,omitempty"`
}

// NewTicket validates details and builds a ticket created at now
func NewTicket(tenantID uuid.UUID, number string, d TicketDetails, now time.Time) (*Ticket, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	d, err := d.validate()
	if err != nil {
		return nil, err
	}
	t := &Ticket{
		TenantAggregateRoot: shared.NewTenantAggregateRootAt(tenantID, now),
		TicketNumber:        number,
	}
	t.apply(d)
	if t.IssueDate.IsZero() {
		t.IssueDate = t.CreatedAt
	}
	return t, nil
}

func (t *Ticket) apply(d TicketDetails) {
	t.Reference = d.Reference
	t.IssueDate = d.IssueDate
	t.CustomerID = d.CustomerID
	t.PassengerName = d.PassengerName
	t.Airline = d.Airline
	t.Route = d.Route
	t.FlightNumber = d.FlightNumber
	t.DepartureDate = d.DepartureDate
	t.ReturnDate = d.ReturnDate
	t.SupplierName = d.SupplierName
	t.Notes = d.Notes
	t.Amounts = d.Amounts
}

// Source returns the ledger source reference for this ticket
func (t *Ticket) Source() ledger.Source {
	return ledger.NewSource(ledger.SourceTicket, t.ID)
}

// IsCanceled reports whether the ticket is canceled
func (t *Ticket) IsCanceled() bool {
	return t.CanceledAt != nil
}

// Edit replaces the ticket details; amounts are re-validated
func (t *Ticket) Edit(d TicketDetails) error {
	if t.IsCanceled() {
		return shared.NewDomainError("TICKET_CANCELED", "Canceled tickets cannot be edited")
	}
	d, err := d.validate()
	if err != nil {
		return err
	}
	if d.IssueDate.IsZero() {
		d.IssueDate = t.IssueDate
	}
	t.apply(d)
	t.IncrementVersion()
	return nil
}

// Adjust changes only the amounts and returns the history row to append
func (t *Ticket) Adjust(amounts SaleAmounts, reason string, by *uuid.UUID) (*ledger.Adjustment, error) {
	if t.IsCanceled() {
		return nil, shared.NewDomainError("TICKET_CANCELED", "Canceled tickets cannot be adjusted")
	}
	if err := amounts.Validate(); err != nil {
		return nil, err
	}
	if amounts.Currency == "" {
		amounts.Currency = t.Amounts.Currency
	}
	adj, err := ledger.NewAdjustment(t.TenantID, t.ID,
		t.Amounts.NetSales, amounts.NetSales,
		t.Amounts.NetCost, amounts.NetCost,
		reason, by)
	if err != nil {
		return nil, err
	}
	t.Amounts = amounts
	t.IncrementVersion()
	return adj, nil
}

// Cancel is terminal
func (t *Ticket) Cancel(at time.Time) error {
	if t.IsCanceled() {
		return shared.ErrAlreadyCanceled
	}
	t.CanceledAt = &at
	t.IncrementVersion()
	t.AddDomainEvent(NewTicketCanceledEvent(t))
	return nil
}

// PaymentDate follows departure > return > created
func (t *Ticket) PaymentDate() time.Time {
	return ledger.TicketPaymentDate(t.DepartureDate, t.ReturnDate, t.CreatedAt)
}

// PaymentTerms is what the customer owes for this ticket
func (t *Ticket) PaymentTerms(payerName string) ledger.PaymentTerms {
	if payerName == "" {
		payerName = t.PassengerName
	}
	return ledger.PaymentTerms{
		CustomerID:  t.CustomerID,
		PayerName:   payerName,
		Amount:      t.Amounts.NetSales,
		Currency:    t.Amounts.Currency,
		PaymentDate: t.PaymentDate(),
	}
}

// PayableTerms is what the agency owes the supplier for this ticket
func (t *Ticket) PayableTerms() ledger.PayableTerms {
	return ledger.PayableTerms{
		SupplierName: t.SupplierName,
		Amount:       t.Amounts.NetCost,
		Currency:     t.Amounts.Currency,
	}
}
