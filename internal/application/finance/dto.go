package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/ledger"
)

// PaymentListFilter is the query of payment listings
type PaymentListFilter struct {
	appshared.PageQuery
	Status     string     `form:"status"`
	SourceType string     `form:"source_type"`
	CustomerID *uuid.UUID `form:"customer_id"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

func (f PaymentListFilter) toDomain() (ledger.PaymentFilter, error) {
	out := ledger.PaymentFilter{
		Filter:     f.PageQuery.Filter(),
		CustomerID: f.CustomerID,
		From:       f.From,
		To:         f.To,
	}
	if f.Status != "" {
		st := ledger.PaymentStatus(f.Status)
		if !st.IsValid() {
			return out, ledger.ErrInvalidStatus
		}
		out.Status = &st
	}
	if f.SourceType != "" {
		t := ledger.SourceType(f.SourceType)
		if !t.IsValid() {
			return out, ledger.ErrInvalidSource
		}
		out.SourceType = &t
	}
	return out, nil
}

// AddReceiptRequest records money received against a payment
type AddReceiptRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      *time.Time      `json:"date"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference" binding:"max=100"`
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentResponse represents a payment with its computed balance
type PaymentResponse struct {
	ID          uuid.UUID         `json:"id"`
	SourceType  string            `json:"source_type"`
	SourceID    uuid.UUID         `json:"source_id"`
	CustomerID  *uuid.UUID        `json:"customer_id,omitempty"`
	PayerName   string            `json:"payer_name"`
	Amount      decimal.Decimal   `json:"amount"`
	Received    decimal.Decimal   `json:"received"`
	Balance     decimal.Decimal   `json:"balance"`
	Currency    string            `json:"currency"`
	Status      string            `json:"status"`
	PaymentDate time.Time         `json:"payment_date"`
	CanceledAt  *time.Time        `json:"canceled_at,omitempty"`
	Receipts    []ReceiptResponse `json:"receipts,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Version     int               `json:"version"`
}

// ToPaymentResponse converts a domain Payment. Receipts are included when loaded.
func ToPaymentResponse(p *ledger.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID,
		SourceType:  string(p.SourceType),
		SourceID:    p.SourceID,
		CustomerID:  p.CustomerID,
		PayerName:   p.PayerName,
		Amount:      p.Amount,
		Received:    p.TotalReceived(),
		Balance:     p.Balance(),
		Currency:    p.Currency.String(),
		Status:      p.Status.String(),
		PaymentDate: p.PaymentDate,
		CanceledAt:  p.CanceledAt,
		CreatedAt:   p.CreatedAt,
		Version:     p.Version,
	}
	for _, r := range p.Receipts {
		resp.Receipts = append(resp.Receipts, ReceiptResponse{
			ID:        r.ID,
			Amount:    r.Amount,
			Date:      r.Date,
			Method:    string(r.Method),
			Reference: r.Reference,
			CreatedAt: r.CreatedAt,
		})
	}
	return resp
}

// PayableListFilter is the query of payable listings
type PayableListFilter struct {
	appshared.PageQuery
	SourceType string `form:"source_type"`
	ActiveOnly bool   `form:"active_only"`
}

// PayDownRequest records money paid to the supplier
type PayDownRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// PayableResponse represents a payable in API responses
type PayableResponse struct {
	ID            uuid.UUID       `json:"id"`
	SourceType    string          `json:"source_type"`
	SourceID      uuid.UUID       `json:"source_id"`
	SupplierName  string          `json:"supplier_name"`
	Amount        decimal.Decimal `json:"amount"`
	Paid          decimal.Decimal `json:"paid"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	RemainingDays *int            `json:"remaining_days,omitempty"`
	CanceledAt    *time.Time      `json:"canceled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Version       int             `json:"version"`
}

// ToPayableResponse converts a domain Payable
func ToPayableResponse(p *ledger.Payable, now time.Time) PayableResponse {
	return PayableResponse{
		ID:            p.ID,
		SourceType:    string(p.SourceType),
		SourceID:      p.SourceID,
		SupplierName:  p.SupplierName,
		Amount:        p.Amount,
		Paid:          p.AmountPaid(),
		Balance:       p.Balance,
		Currency:      p.Currency.String(),
		Deadline:      p.Deadline,
		RemainingDays: p.RemainingDays(now),
		CanceledAt:    p.CanceledAt,
		CreatedAt:     p.CreatedAt,
		Version:       p.Version,
	}
}

// CreateExpenseRequest is the body of expense create
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currency"`
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
}

// RejectExpenseRequest carries the reject reason
type RejectExpenseRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ApproveMonthRequest selects the calendar month to approve
type ApproveMonthRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=9999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// ApproveMonthResponse reports the batch result
type ApproveMonthResponse struct {
	Month    string            `json:"month"`
	Approved int               `json:"approved"`
	Expenses []ExpenseResponse `json:"expenses"`
}

// ExpenseListFilter is the query of expense listings
type ExpenseListFilter struct {
	appshared.PageQuery
	Status string     `form:"status"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID           uuid.UUID       `json:"id"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ExpenseDate  time.Time       `json:"expense_date"`
	Status       string          `json:"status"`
	ApprovedBy   *uuid.UUID      `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	RejectReason string          `json:"reject_reason,omitempty"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Version      int             `json:"version"`
}

// ToExpenseResponse converts a domain Expense
func ToExpenseResponse(e *ledger.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		Category:     e.Category,
		Description:  e.Description,
		Amount:       e.Amount,
		Currency:     e.Currency.String(),
		ExpenseDate:  e.ExpenseDate,
		Status:       string(e.Status),
		ApprovedBy:   e.ApprovedBy,
		ApprovedAt:   e.ApprovedAt,
		RejectReason: e.RejectReason,
		PaidAt:       e.PaidAt,
		CreatedAt:    e.CreatedAt,
		Version:      e.Version,
	}
}

// SetRateRequest sets the units-per-USD rate of one currency
type SetRateRequest struct {
	Currency    string          `json:"currency" binding:"required,currency"`
	UnitsPerUSD decimal.Decimal `json:"units_per_usd" binding:"required"`
}

// RateResponse represents a rate row
type RateResponse struct {
	Currency    string          `json:"currency"`
	UnitsPerUSD decimal.Decimal `json:"units_per_usd"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToRateResponse converts a domain Rate
func ToRateResponse(r *currency.Rate) RateResponse {
	return RateResponse{
		Currency:    r.Currency.String(),
		UnitsPerUSD: r.UnitsPerUSD,
		UpdatedAt:   r.UpdatedAt,
	}
}
