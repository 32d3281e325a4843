package hajumrah

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

// BookingStatus represents the status of a booking.
// draft and confirmed may move either way; canceled is terminal except for reinstatement.
type BookingStatus string

const (
	BookingStatusDraft     BookingStatus = "draft"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// IsValid checks if the status is known
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusDraft, BookingStatusConfirmed, BookingStatusCanceled:
		return true
	}
	return false
}

// Booking errors
var (
	ErrCustomerRequired = shared.NewDomainError("CUSTOMER_REQUIRED", "Customer is required")
	ErrEmptyPackages    = shared.NewDomainError("EMPTY_PACKAGES", "At least one package is required")
	ErrDuplicateBooking = shared.NewDomainError("DUPLICATE_BOOKING", "Customer already has a booking for this campaign")
	ErrBookingCanceled  = shared.NewDomainError("BOOKING_CANCELED", "Canceled bookings cannot be edited")
)

// BookingNumber formats a sequence value into a booking number
func BookingNumber(seq int64) string {
	return fmt.Sprintf("HU-%06d", seq)
}

// BookingPackage is one priced line of a booking
type BookingPackage struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Cost        decimal.Decimal `json:"cost"`
}

// PackageLine is the input for a package
type PackageLine struct {
	Name        string
	Description string
	Amount      decimal.Decimal
	Cost        decimal.Decimal
}

// BookingDetails is the editable content of a booking
type BookingDetails struct {
	CustomerID   uuid.UUID
	CampaignID   *uuid.UUID
	Status       BookingStatus
	Packages     []PackageLine
	Profit       decimal.Decimal
	Currency     valueobject.Currency
	SupplierName string
	Notes        string
}

func (d BookingDetails) validate() (BookingDetails, error) {
	if d.CustomerID == uuid.Nil {
		return d, ErrCustomerRequired
	}
	if len(d.Packages) == 0 {
		return d, ErrEmptyPackages
	}
	for i, p := range d.Packages {
		if strings.TrimSpace(p.Name) == "" {
			return d, shared.NewDomainError("INVALID_PACKAGE", fmt.Sprintf("Package %d needs a name", i+1))
		}
		if p.Amount.IsNegative() || p.Cost.IsNegative() {
			return d, shared.NewDomainError("INVALID_PACKAGE", fmt.Sprintf("Package %d cannot have a negative amount", i+1))
		}
	}
	if d.Profit.IsNegative() {
		return d, shared.NewDomainError("INVALID_PROFIT", "Profit cannot be negative")
	}
	if d.Status == "" {
		d.Status = BookingStatusDraft
	}
	if !d.Status.IsValid() {
		return d, shared.NewDomainError("INVALID_STATUS", "Unknown booking status")
	}
	if d.Currency == "" {
		d.Currency = valueobject.DefaultCurrency
	}
	return d, nil
}

// Transition describes what an edit did to the booking status
type Transition struct {
	Confirmed  bool // moved into confirmed
	Canceled   bool // moved into canceled
	Reinstated bool // moved out of canceled
}

// Booking is a customer's Haj/Umrah reservation
type Booking struct {
	shared.TenantAggregateRoot
	BookingNumber string               `json:"booking_number"`
	CustomerID    uuid.UUID            `json:"customer_id"`
	CampaignID    *uuid.UUID           `json:"campaign_id,omitempty"`
	Status        BookingStatus        `json:"status"`
	Packages      []BookingPackage     `json:"packages"`
	Profit        decimal.Decimal      `json:"profit"`
	Currency      valueobject.Currency `json:"currency"`
	SupplierName  string               `json:"supplier_name,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	ConfirmedAt   *time.Time           `json:"confirmed_at,omitempty"`
	CanceledAt    *time.Time           `json:"canceled_at,omitempty"`
}

// NewBooking validates details against the bound campaign (nil when unbound).
// The duplicate (customer, campaign) check needs the store and is done by the caller.
func NewBooking(tenantID uuid.UUID, number string, d BookingDetails, campaign *Campaign, now time.Time) (*Booking, Transition, error) {
	if tenantID == uuid.Nil {
		return nil, Transition{}, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	d, err := d.validate()
	if err != nil {
		return nil, Transition{}, err
	}
	if d.Status == BookingStatusCanceled {
		return nil, Transition{}, shared.NewDomainError("INVALID_STATUS", "A booking cannot be created canceled")
	}
	if err := checkCampaign(d.CampaignID, campaign, now); err != nil {
		return nil, Transition{}, err
	}

	b := &Booking{
		TenantAggregateRoot: shared.NewTenantAggregateRootAt(tenantID, now),
		BookingNumber:       number,
		Status:              BookingStatusDraft,
	}
	b.apply(d)
	tr := b.moveTo(d.Status, now)
	return b, tr, nil
}

func checkCampaign(campaignID *uuid.UUID, campaign *Campaign, now time.Time) error {
	if campaignID == nil {
		return nil
	}
	if campaign == nil || campaign.ID != *campaignID {
		return shared.NewDomainError("NOT_FOUND", "Campaign not found")
	}
	return campaign.EnsureBookable(now)
}

func (b *Booking) apply(d BookingDetails) {
	b.CustomerID = d.CustomerID
	b.CampaignID = d.CampaignID
	b.Profit = d.Profit
	b.Currency = d.Currency
	b.SupplierName = strings.TrimSpace(d.SupplierName)
	b.Notes = d.Notes
	b.Packages = make([]BookingPackage, 0, len(d.Packages))
	for _, p := range d.Packages {
		b.Packages = append(b.Packages, BookingPackage{
			ID:          uuid.New(),
			Name:        strings.TrimSpace(p.Name),
			Description: p.Description,
			Amount:      p.Amount,
			Cost:        p.Cost,
		})
	}
}

func (b *Booking) moveTo(status BookingStatus, now time.Time) Transition {
	var tr Transition
	if status == b.Status {
		return tr
	}
	if b.Status == BookingStatusCanceled {
		tr.Reinstated = true
		b.CanceledAt = nil
	}
	b.Status = status
	switch status {
	case BookingStatusConfirmed:
		tr.Confirmed = true
		b.ConfirmedAt = &now
		b.AddDomainEvent(NewBookingConfirmedEvent(b))
	case BookingStatusCanceled:
		tr.Canceled = true
		b.CanceledAt = &now
		b.AddDomainEvent(NewBookingCanceledEvent(b))
	}
	return tr
}

// Edit applies new details. current is the campaign the booking is bound to now,
// next the campaign it will be bound to after the edit (the same pointer when unchanged).
//
// Edits are blocked once the current campaign has departed. A canceled booking
// only accepts reinstatement, and only while its campaign is still bookable.
func (b *Booking) Edit(d BookingDetails, current, next *Campaign, now time.Time) (Transition, error) {
	d, err := d.validate()
	if err != nil {
		return Transition{}, err
	}
	if current != nil && current.HasDeparted(now) {
		return Transition{}, ErrCampaignDeparted
	}
	if b.Status == BookingStatusCanceled && d.Status == BookingStatusCanceled {
		return Transition{}, ErrBookingCanceled
	}
	if d.Status != BookingStatusCanceled && !sameCampaign(b.CampaignID, d.CampaignID) {
		if err := checkCampaign(d.CampaignID, next, now); err != nil {
			return Transition{}, err
		}
	}
	if b.Status == BookingStatusCanceled {
		if err := checkCampaign(d.CampaignID, next, now); err != nil {
			return Transition{}, err
		}
	}

	b.apply(d)
	tr := b.moveTo(d.Status, now)
	b.IncrementVersion()
	return tr, nil
}

// CancelWithCampaign cancels the booking as part of a campaign cancellation
func (b *Booking) CancelWithCampaign(now time.Time) bool {
	if b.Status == BookingStatusCanceled {
		return false
	}
	b.moveTo(BookingStatusCanceled, now)
	b.IncrementVersion()
	return true
}

func sameCampaign(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// IsActive reports whether the booking counts toward the one-per-customer-per-campaign rule
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCanceled
}

// PackagesTotal sums package amounts
func (b *Booking) PackagesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Packages {
		total = total.Add(p.Amount)
	}
	return total
}

// TotalAmount is the sum of package amounts plus the flat profit
func (b *Booking) TotalAmount() decimal.Decimal {
	return b.PackagesTotal().Add(b.Profit)
}

// TotalCost sums package costs
func (b *Booking) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Packages {
		total = total.Add(p.Cost)
	}
	return total
}

// Source returns the ledger source reference for this booking
func (b *Booking) Source() ledger.Source {
	return ledger.NewSource(ledger.SourceHajUmrahBooking, b.ID)
}

// PaymentDate is the campaign departure when bound, else the confirmation
// date, else the creation date
func PaymentDate(campaignDate, confirmedAt *time.Time, createdAt time.Time) time.Time {
	switch {
	case campaignDate != nil && !campaignDate.IsZero():
		return *campaignDate
	case confirmedAt != nil && !confirmedAt.IsZero():
		return *confirmedAt
	}
	return createdAt
}

// PaymentTerms is what the customer owes, dated by PaymentDate
func (b *Booking) PaymentTerms(payerName string, campaign *Campaign) ledger.PaymentTerms {
	var campaignDate *time.Time
	if campaign != nil {
		campaignDate = &campaign.Date
	}
	date := PaymentDate(campaignDate, b.ConfirmedAt, b.CreatedAt)
	customerID := b.CustomerID
	return ledger.PaymentTerms{
		CustomerID:  &customerID,
		PayerName:   payerName,
		Amount:      b.TotalAmount(),
		Currency:    b.Currency,
		PaymentDate: date,
	}
}

// PayableTerms is what the agency owes its ground and flight suppliers
func (b *Booking) PayableTerms(campaign *Campaign) ledger.PayableTerms {
	terms := ledger.PayableTerms{
		SupplierName: b.SupplierName,
		Amount:       b.TotalCost(),
		Currency:     b.Currency,
	}
	if campaign != nil {
		deadline := campaign.Date
		terms.Deadline = &deadline
	}
	return terms
}
