package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	shared.Filter
	Status     *PaymentStatus
	SourceType *SourceType
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// PaymentRepository persists payments and their receipts.
// Every method is scoped to tenantID.
type PaymentRepository interface {
	// FindByID loads the payment with its receipts
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	// FindActiveBySource returns the single non-refunded payment of a booking or shared.ErrNotFound
	FindActiveBySource(ctx context.Context, tenantID uuid.UUID, source Source) (*Payment, error)
	// FindBySource returns every payment of a booking, refunded ones included
	FindBySource(ctx context.Context, tenantID uuid.UUID, source Source) ([]Payment, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter PaymentFilter) ([]Payment, int64, error)
	// Save inserts or updates the payment row; receipts are written by AddReceipt only
	Save(ctx context.Context, payment *Payment) error
	// AddReceipt appends a receipt row
	AddReceipt(ctx context.Context, receipt *Receipt) error
}

// PayableFilter narrows payable listings
type PayableFilter struct {
	shared.Filter
	SourceType *SourceType
	ActiveOnly bool
}

// PayableRepository persists payables. Every method is scoped to tenantID.
type PayableRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Payable, error)
	// FindActiveBySource returns the single non-canceled payable of a booking or shared.ErrNotFound
	FindActiveBySource(ctx context.Context, tenantID uuid.UUID, source Source) (*Payable, error)
	FindBySource(ctx context.Context, tenantID uuid.UUID, source Source) ([]Payable, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter PayableFilter) ([]Payable, int64, error)
	Save(ctx context.Context, payable *Payable) error
}

// ExpenseFilter narrows expense listings
type ExpenseFilter struct {
	shared.Filter
	Status *ExpenseStatus
	From   *time.Time
	To     *time.Time
}

// ExpenseRepository persists expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter ExpenseFilter) ([]Expense, int64, error)
	// FindPendingInMonth returns pending expenses dated within the calendar month
	FindPendingInMonth(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
}

// AdjustmentRepository is append-only
type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *Adjustment) error
	FindByTicket(ctx context.Context, tenantID, ticketID uuid.UUID) ([]Adjustment, error)
}
