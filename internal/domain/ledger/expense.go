package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// ExpenseStatus represents the approval state of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
	ExpenseStatusPaid     ExpenseStatus = "paid"
)

// IsValid checks if the status is a valid ExpenseStatus
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusRejected, ExpenseStatusPaid:
		return true
	}
	return false
}

// Expense is a standalone outflow, approved in monthly batches
type Expense struct {
	shared.TenantAggregateRoot
	Category     string               `json:"category"`
	Description  string               `json:"description"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     valueobject.Currency `json:"currency"`
	ExpenseDate  time.Time            `json:"expense_date"`
	Status       ExpenseStatus        `json:"status"`
	ApprovedBy   *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time           `json:"approved_at,omitempty"`
	RejectReason string               `json:"reject_reason,omitempty"`
	PaidAt       *time.Time           `json:"paid_at,omitempty"`
}

// NewExpense creates a pending expense
func NewExpense(tenantID uuid.UUID, category, description string, amount decimal.Decimal, currency valueobject.Currency, date time.Time) (*Expense, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is required")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Category:            category,
		Description:         strings.TrimSpace(description),
		Amount:              amount,
		Currency:            currency,
		ExpenseDate:         date,
		Status:              ExpenseStatusPending,
	}, nil
}

// MonthKey groups expenses for batch approval, e.g. "2026-03"
func (e *Expense) MonthKey() string {
	return e.ExpenseDate.Format("2006-01")
}

// Approve moves a pending expense to approved
func (e *Expense) Approve(by uuid.UUID, at time.Time) error {
	if e.Status != ExpenseStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending expenses can be approved")
	}
	e.Status = ExpenseStatusApproved
	e.ApprovedBy = &by
	e.ApprovedAt = &at
	e.IncrementVersion()
	return nil
}

// Reject moves a pending expense to rejected
func (e *Expense) Reject(by uuid.UUID, reason string) error {
	if e.Status != ExpenseStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending expenses can be rejected")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Reject reason is required")
	}
	e.Status = ExpenseStatusRejected
	e.ApprovedBy = &by
	e.RejectReason = reason
	e.IncrementVersion()
	return nil
}

// MarkPaid moves an approved expense to paid
func (e *Expense) MarkPaid(at time.Time) error {
	if e.Status != ExpenseStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved expenses can be paid")
	}
	e.Status = ExpenseStatusPaid
	e.PaidAt = &at
	e.IncrementVersion()
	return nil
}
