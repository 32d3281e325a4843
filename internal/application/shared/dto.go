package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
)

// PageQuery is the common paging part of list requests
type PageQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Filter converts the query into a domain filter
func (q PageQuery) Filter() shared.Filter {
	f := shared.DefaultFilter()
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	f.Search = q.Search
	return f
}

// PaymentSummary is the customer side of a booking's ledger
type PaymentSummary struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Received    decimal.Decimal `json:"received"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	PaymentDate time.Time       `json:"payment_date"`
}

// PayableSummary is the supplier side of a booking's ledger
type PayableSummary struct {
	ID            uuid.UUID       `json:"id"`
	SupplierName  string          `json:"supplier_name"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	RemainingDays *int            `json:"remaining_days,omitempty"`
}

// LedgerSummary shows the active payment and payable of a booking
type LedgerSummary struct {
	Payment *PaymentSummary `json:"payment,omitempty"`
	Payable *PayableSummary `json:"payable,omitempty"`
}

// NewLedgerSummary builds a summary; either row may be nil
func NewLedgerSummary(payment *ledger.Payment, payable *ledger.Payable, now time.Time) LedgerSummary {
	var s LedgerSummary
	if payment != nil {
		s.Payment = &PaymentSummary{
			ID:          payment.ID,
			Amount:      payment.Amount,
			Received:    payment.TotalReceived(),
			Balance:     payment.Balance(),
			Currency:    payment.Currency.String(),
			Status:      payment.Status.String(),
			PaymentDate: payment.PaymentDate,
		}
	}
	if payable != nil {
		s.Payable = &PayableSummary{
			ID:            payable.ID,
			SupplierName:  payable.SupplierName,
			Amount:        payable.Amount,
			Balance:       payable.Balance,
			Currency:      payable.Currency.String(),
			Deadline:      payable.Deadline,
			RemainingDays: payable.RemainingDays(now),
		}
	}
	return s
}

// LoadLedgerSummary reads the active ledger rows of a source
func LoadLedgerSummary(ctx context.Context, repos Repositories, tenantID uuid.UUID, source ledger.Source, now time.Time) (LedgerSummary, error) {
	rec := Reconciler(repos)
	payment, err := rec.ActivePayment(ctx, tenantID, source)
	if err != nil {
		return LedgerSummary{}, err
	}
	payable, err := rec.ActivePayable(ctx, tenantID, source)
	if err != nil {
		return LedgerSummary{}, err
	}
	return NewLedgerSummary(payment, payable, now), nil
}
