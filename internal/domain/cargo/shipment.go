// Package cargo models parcel shipments between branches and their status trail.
package cargo

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// Status is a shipment's position in the delivery pipeline
type Status string

const (
	StatusPending            Status = "PENDING"
	StatusWarehouse          Status = "WAREHOUSE"
	StatusAssignedToManifest Status = "ASSIGNED_TO_MANIFEST"
	StatusDispatched         Status = "DISPATCHED"
	StatusArrived            Status = "ARRIVED"
	StatusDelivered          Status = "DELIVERED"
)

// Statuses lists the pipeline in order
var Statuses = []Status{
	StatusPending,
	StatusWarehouse,
	StatusAssignedToManifest,
	StatusDispatched,
	StatusArrived,
	StatusDelivered,
}

// ParseStatus normalizes a status name and checks membership
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// IsValid checks membership in the fixed status set
func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further change is allowed
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

// Shipment errors
var (
	ErrInvalidStatus   = shared.NewDomainError("INVALID_STATUS", "Unknown shipment status")
	ErrDelivered       = shared.NewDomainError("SHIPMENT_DELIVERED", "Delivered shipments cannot change status")
	ErrStatusUnchanged = shared.NewDomainError("STATUS_UNCHANGED", "Shipment is already in this status")
	ErrBranchMismatch  = shared.NewDomainError("BRANCH_MISMATCH", "Shipments can only be created from your own branch")
	ErrEmptyItems      = shared.NewDomainError("EMPTY_ITEMS", "At least one item is required")
	ErrSameBranch      = shared.NewDomainError("SAME_BRANCH", "Source and destination branch must differ")
)

// TrackingNumber formats the year and yearly sequence into a tracking number
func TrackingNumber(year int, seq int64) string {
	return fmt.Sprintf("CRG-%d-%06d", year, seq)
}

// CheckSourceBranch rejects a shipment sent from a branch other than the caller's home branch
func CheckSourceBranch(home *uuid.UUID, source uuid.UUID) error {
	if home == nil || *home != source {
		return ErrBranchMismatch
	}
	return nil
}

// Item is one line of a shipment
type Item struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Weight      decimal.Decimal `json:"weight"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// TotalWeight is quantity times unit weight
func (i Item) TotalWeight() decimal.Decimal {
	return decimal.NewFromInt(int64(i.Quantity)).Mul(i.Weight)
}

// Amount is quantity times weight times unit price
func (i Item) Amount() decimal.Decimal {
	return i.TotalWeight().Mul(i.UnitPrice)
}

// ItemLine is the input for an item
type ItemLine struct {
	Description string
	Quantity    int
	Weight      decimal.Decimal
	UnitPrice   decimal.Decimal
}

// TrackingLog is one immutable entry of the shipment audit trail
type TrackingLog struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"-"`
	ShipmentID uuid.UUID  `json:"shipment_id"`
	Status     Status     `json:"status"`
	Note       string     `json:"note,omitempty"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ShipmentDetails is the input for a new shipment
type ShipmentDetails struct {
	CustomerID          *uuid.UUID
	SenderName          string
	SenderPhone         string
	ReceiverName        string
	ReceiverPhone       string
	ReceiverAddress     string
	SourceBranchID      uuid.UUID
	DestinationBranchID uuid.UUID
	Currency            valueobject.Currency
	Items               []ItemLine
	Notes               string
}

func (d ShipmentDetails) validate() (ShipmentDetails, error) {
	d.SenderName = strings.TrimSpace(d.SenderName)
	d.ReceiverName = strings.TrimSpace(d.ReceiverName)
	if d.SenderName == "" || d.ReceiverName == "" {
		return d, shared.NewDomainError("INVALID_PARTIES", "Sender and receiver names are required")
	}
	if d.SourceBranchID == uuid.Nil || d.DestinationBranchID == uuid.Nil {
		return d, shared.NewDomainError("INVALID_BRANCH", "Source and destination branch are required")
	}
	if d.SourceBranchID == d.DestinationBranchID {
		return d, ErrSameBranch
	}
	if len(d.Items) == 0 {
		return d, ErrEmptyItems
	}
	for i, it := range d.Items {
		if it.Quantity <= 0 {
			return d, shared.NewDomainError("INVALID_ITEM", fmt.Sprintf("Item %d needs a positive quantity", i+1))
		}
		if !it.Weight.IsPositive() || it.UnitPrice.IsNegative() {
			return d, shared.NewDomainError("INVALID_ITEM", fmt.Sprintf("Item %d has an invalid weight or price", i+1))
		}
	}
	if d.Currency == "" {
		d.Currency = valueobject.DefaultCurrency
	}
	return d, nil
}

// Shipment is a cargo consignment
type Shipment struct {
	shared.TenantAggregateRoot
	TrackingNumber      string               `json:"tracking_number"`
	CustomerID          *uuid.UUID           `json:"customer_id,omitempty"`
	SenderName          string               `json:"sender_name"`
	SenderPhone         string               `json:"sender_phone,omitempty"`
	ReceiverName        string               `json:"receiver_name"`
	ReceiverPhone       string               `json:"receiver_phone,omitempty"`
	ReceiverAddress     string               `json:"receiver_address,omitempty"`
	SourceBranchID      uuid.UUID            `json:"source_branch_id"`
	DestinationBranchID uuid.UUID            `json:"destination_branch_id"`
	Items               []Item               `json:"items"`
	TotalWeight         decimal.Decimal      `json:"total_weight"`
	Price               decimal.Decimal      `json:"price"`
	Currency            valueobject.Currency `json:"currency"`
	Status              Status               `json:"status"`
	Notes               string               `json:"notes,omitempty"`
	DeliveredAt         *time.Time           `json:"delivered_at,omitempty"`
	Logs                []TrackingLog        `json:"logs,omitempty"`
}

// NewShipment prices the items and opens the trail with a PENDING entry at now
func NewShipment(tenantID uuid.UUID, trackingNumber string, d ShipmentDetails, by *uuid.UUID, now time.Time) (*Shipment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	d, err := d.validate()
	if err != nil {
		return nil, err
	}
	s := &Shipment{
		TenantAggregateRoot: shared.NewTenantAggregateRootAt(tenantID, now),
		TrackingNumber:      trackingNumber,
		CustomerID:          d.CustomerID,
		SenderName:          d.SenderName,
		SenderPhone:         strings.TrimSpace(d.SenderPhone),
		ReceiverName:        d.ReceiverName,
		ReceiverPhone:       strings.TrimSpace(d.ReceiverPhone),
		ReceiverAddress:     strings.TrimSpace(d.ReceiverAddress),
		SourceBranchID:      d.SourceBranchID,
		DestinationBranchID: d.DestinationBranchID,
		Currency:            d.Currency,
		Status:              StatusPending,
		Notes:               d.Notes,
		TotalWeight:         decimal.Zero,
		Price:               decimal.Zero,
	}
	for _, line := range d.Items {
		item := Item{
			ID:          uuid.New(),
			Description: strings.TrimSpace(line.Description),
			Quantity:    line.Quantity,
			Weight:      line.Weight,
			UnitPrice:   line.UnitPrice,
		}
		s.Items = append(s.Items, item)
		s.TotalWeight = s.TotalWeight.Add(item.TotalWeight())
		s.Price = s.Price.Add(item.Amount())
	}
	if by != nil {
		s.SetCreatedBy(*by)
	}
	s.appendLog(StatusPending, "Shipment created", by, s.CreatedAt)
	s.AddDomainEvent(NewShipmentCreatedEvent(s))
	return s, nil
}

func (s *Shipment) appendLog(status Status, note string, by *uuid.UUID, at time.Time) TrackingLog {
	log := TrackingLog{
		ID:         uuid.New(),
		TenantID:   s.TenantID,
		ShipmentID: s.ID,
		Status:     status,
		Note:       strings.TrimSpace(note),
		CreatedBy:  by,
		CreatedAt:  at,
	}
	s.Logs = append(s.Logs, log)
	return log
}

// ChangeStatus moves the shipment to any status of the set and returns the log
// entry to append. Delivered shipments are frozen.
func (s *Shipment) ChangeStatus(status Status, note string, by *uuid.UUID, at time.Time) (TrackingLog, error) {
	if !status.IsValid() {
		return TrackingLog{}, ErrInvalidStatus
	}
	if s.Status.IsTerminal() {
		return TrackingLog{}, ErrDelivered
	}
	if s.Status == status {
		return TrackingLog{}, ErrStatusUnchanged
	}
	from := s.Status
	s.Status = status
	if status == StatusDelivered {
		s.DeliveredAt = &at
	}
	s.IncrementVersion()
	log := s.appendLog(status, note, by, at)
	s.AddDomainEvent(NewShipmentStatusChangedEvent(s, from))
	return log, nil
}

// Source returns the ledger source reference for this shipment
func (s *Shipment) Source() ledger.Source {
	return ledger.NewSource(ledger.SourceCargoShipment, s.ID)
}

// PaymentTerms is what the sender owes for the shipment
func (s *Shipment) PaymentTerms() ledger.PaymentTerms {
	return ledger.PaymentTerms{
		CustomerID:  s.CustomerID,
		PayerName:   s.SenderName,
		Amount:      s.Price,
		Currency:    s.Currency,
		PaymentDate: s.CreatedAt,
	}
}
