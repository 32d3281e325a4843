package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// Reconciler keeps a booking's ledger rows consistent with the booking.
// It never creates a second active row for a source: once one exists it is synced.
// Callers run it inside the same transaction as the booking write.
type Reconciler struct {
	payments PaymentRepository
	payables PayableRepository
	now      func() time.Time
}

// NewReconciler creates a reconciler over transaction-bound repositories
func NewReconciler(payments PaymentRepository, payables PayableRepository) *Reconciler {
	return &Reconciler{payments: payments, payables: payables, now: time.Now}
}

// WithClock stamps rows the reconciler creates with now instead of the wall clock
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	if now != nil {
		r.now = now
	}
	return r
}

// PayableTerms is what the agency owes the supplier for a booking
type PayableTerms struct {
	SupplierName string
	Amount       decimal.Decimal
	Currency     valueobject.Currency
	Deadline     *time.Time
}

// ActivePayment returns the active payment of a source, or nil
func (r *Reconciler) ActivePayment(ctx context.Context, tenantID uuid.UUID, source Source) (*Payment, error) {
	p, err := r.payments.FindActiveBySource(ctx, tenantID, source)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// ActivePayable returns the active payable of a source, or nil
func (r *Reconciler) ActivePayable(ctx context.Context, tenantID uuid.UUID, source Source) (*Payable, error) {
	p, err := r.payables.FindActiveBySource(ctx, tenantID, source)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// SyncPayment syncs the active payment to terms, or creates one when none exists
// and the amount is positive. created reports whether a new row was inserted.
func (r *Reconciler) SyncPayment(ctx context.Context, tenantID uuid.UUID, source Source, terms PaymentTerms) (payment *Payment, created bool, err error) {
	existing, err := r.ActivePayment(ctx, tenantID, source)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if err := existing.Sync(terms); err != nil {
			return nil, false, err
		}
		if err := r.payments.Save(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if !terms.Amount.IsPositive() {
		return nil, false, nil
	}
	p, err := newPayment(tenantID, source, terms, r.now())
	if err != nil {
		return nil, false, err
	}
	if err := r.payments.Save(ctx, p); err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// SyncPayable syncs the active payable to terms (clamping the balance to what is
// already paid), or creates one when none exists and the amount is positive.
func (r *Reconciler) SyncPayable(ctx context.Context, tenantID uuid.UUID, source Source, terms PayableTerms) (payable *Payable, created bool, err error) {
	existing, err := r.ActivePayable(ctx, tenantID, source)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if err := existing.SyncAmount(terms.Amount, terms.Currency); err != nil {
			return nil, false, err
		}
		if terms.Deadline != nil {
			existing.Deadline = terms.Deadline
		}
		if err := r.payables.Save(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if !terms.Amount.IsPositive() {
		return nil, false, nil
	}
	p, err := newPayable(tenantID, source, terms, r.now())
	if err != nil {
		return nil, false, err
	}
	if err := r.payables.Save(ctx, p); err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// CancelResult lists the rows touched by a cascade
type CancelResult struct {
	Payments []*Payment
	Payables []*Payable
}

// Events gathers the domain events raised by the cascade
func (c CancelResult) Events() []shared.DomainEvent {
	var events []shared.DomainEvent
	for _, p := range c.Payments {
		events = append(events, p.GetDomainEvents()...)
	}
	for _, p := range c.Payables {
		events = append(events, p.GetDomainEvents()...)
	}
	return events
}

// CancelSource marks every non-refunded payment of the source refunded and every
// active payable canceled. Rows already in that state are left untouched.
func (r *Reconciler) CancelSource(ctx context.Context, tenantID uuid.UUID, source Source, at time.Time) (CancelResult, error) {
	var result CancelResult

	payments, err := r.payments.FindBySource(ctx, tenantID, source)
	if err != nil {
		return result, err
	}
	for i := range payments {
		p := &payments[i]
		if p.Status == PaymentStatusRefunded {
			continue
		}
		if err := p.MarkRefunded(at); err != nil {
			return result, err
		}
		if err := r.payments.Save(ctx, p); err != nil {
			return result, err
		}
		result.Payments = append(result.Payments, p)
	}

	payables, err := r.payables.FindBySource(ctx, tenantID, source)
	if err != nil {
		return result, err
	}
	for i := range payables {
		p := &payables[i]
		if !p.IsActive() {
			continue
		}
		if err := p.Cancel(at); err != nil {
			return result, err
		}
		if err := r.payables.Save(ctx, p); err != nil {
			return result, err
		}
		result.Payables = append(result.Payables, p)
	}
	return result, nil
}
