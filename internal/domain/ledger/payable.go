package ledger

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// Payable is money the agency owes a supplier for one booking.
// Balance is the unpaid part of Amount; it only decreases through PayDown
// or through the clamp applied when the booking cost is edited.
type Payable struct {
	shared.TenantAggregateRoot
	SourceType   SourceType           `json:"source_type"`
	SourceID     uuid.UUID            `json:"source_id"`
	SupplierName string               `json:"supplier_name"`
	Amount       decimal.Decimal      `json:"amount"`
	Balance      decimal.Decimal      `json:"balance"`
	Currency     valueobject.Currency `json:"currency"`
	Deadline     *time.Time           `json:"deadline,omitempty"`
	CanceledAt   *time.Time           `json:"canceled_at,omitempty"`
}

// NewPayable creates an active payable with Balance equal to Amount
func NewPayable(
	tenantID uuid.UUID,
	source Source,
	supplierName string,
	amount decimal.Decimal,
	currency valueobject.Currency,
	deadline *time.Time,
) (*Payable, error) {
	return newPayable(tenantID, source, PayableTerms{
		SupplierName: supplierName,
		Amount:       amount,
		Currency:     currency,
		Deadline:     deadline,
	}, time.Now())
}

func newPayable(tenantID uuid.UUID, source Source, terms PayableTerms, now time.Time) (*Payable, error) {
	amount, currency := terms.Amount, terms.Currency
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !source.Type.IsValid() || source.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Payable must reference a booking")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	p := &Payable{
		TenantAggregateRoot: shared.NewTenantAggregateRootAt(tenantID, now),
		SourceType:          source.Type,
		SourceID:            source.ID,
		SupplierName:        terms.SupplierName,
		Amount:              amount,
		Balance:             amount,
		Currency:            currency,
		Deadline:            terms.Deadline,
	}
	p.AddDomainEvent(NewPayableCreatedEvent(p))
	return p, nil
}

// Source returns the owning booking
func (p *Payable) Source() Source {
	return Source{Type: p.SourceType, ID: p.SourceID}
}

// IsActive reports whether the payable is not canceled
func (p *Payable) IsActive() bool {
	return p.CanceledAt == nil
}

// AmountPaid is how much of the payable the agency has already paid down
func (p *Payable) AmountPaid() decimal.Decimal {
	return p.Amount.Sub(p.Balance)
}

// RemainingDays returns whole days until the deadline, negative once overdue.
// Nil when no deadline is set.
func (p *Payable) RemainingDays(now time.Time) *int {
	if p.Deadline == nil {
		return nil
	}
	days := int(math.Ceil(p.Deadline.Sub(now).Hours() / 24))
	return &days
}

// SyncAmount re-targets the payable to a new booking cost while preserving
// what has already been paid: balance = max(0, newAmount - alreadyPaid).
func (p *Payable) SyncAmount(newAmount decimal.Decimal, currency valueobject.Currency) error {
	if !p.IsActive() {
		return ErrPayableCanceled
	}
	if newAmount.IsNegative() {
		return ErrNegativeAmount
	}
	paid := p.AmountPaid()
	p.Amount = newAmount
	p.Balance = decimal.Max(decimal.Zero, newAmount.Sub(paid))
	if currency != "" {
		p.Currency = currency
	}
	p.IncrementVersion()
	return nil
}

// PayDown records money the agency paid to the supplier
func (p *Payable) PayDown(amount decimal.Decimal) error {
	if !p.IsActive() {
		return ErrPayableCanceled
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(p.Balance) {
		return ErrPayDownExceeds
	}
	p.Balance = p.Balance.Sub(amount)
	p.IncrementVersion()
	p.AddDomainEvent(NewPayablePaidDownEvent(p, amount))
	return nil
}

// Cancel marks the payable canceled; a canceled payable is inert
func (p *Payable) Cancel(at time.Time) error {
	if !p.IsActive() {
		return shared.ErrAlreadyCanceled
	}
	p.CanceledAt = &at
	p.IncrementVersion()
	p.AddDomainEvent(NewPayableCanceledEvent(p))
	return nil
}
