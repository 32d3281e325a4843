package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// PaymentStatus represents the collection state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"  // nothing received
	PaymentStatusPartial  PaymentStatus = "partial"  // 0 < received < amount
	PaymentStatusPaid     PaymentStatus = "paid"     // received == amount
	PaymentStatusCredit   PaymentStatus = "credit"   // received > amount, customer holds credit
	PaymentStatusRefund   PaymentStatus = "refund"   // refund owed to the customer
	PaymentStatusRefunded PaymentStatus = "refunded" // booking canceled, excluded from receivables
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid,
		PaymentStatusCredit, PaymentStatusRefund, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// ReceiptMethod is how the money was collected
type ReceiptMethod string

const (
	ReceiptMethodCash         ReceiptMethod = "cash"
	ReceiptMethodBankTransfer ReceiptMethod = "bank_transfer"
	ReceiptMethodCard         ReceiptMethod = "card"
	ReceiptMethodCheque       ReceiptMethod = "cheque"
	ReceiptMethodMobileWallet ReceiptMethod = "mobile_wallet"
)

// IsValid checks if the method is known
func (m ReceiptMethod) IsValid() bool {
	switch m {
	case ReceiptMethodCash, ReceiptMethodBankTransfer, ReceiptMethodCard,
		ReceiptMethodCheque, ReceiptMethodMobileWallet:
		return true
	}
	return false
}

// Receipt is an immutable record of money actually received against a payment
type Receipt struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	PaymentID uuid.UUID       `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    ReceiptMethod   `json:"method"`
	Reference string          `json:"reference,omitempty"`
	CreatedBy *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentTerms is what a booking expects to collect from its customer
type PaymentTerms struct {
	CustomerID  *uuid.UUID
	PayerName   string
	Amount      decimal.Decimal
	Currency    valueobject.Currency
	PaymentDate time.Time
}

// Payment is money a customer owes the agency for one booking or shipment.
// Balance is never stored; it is Amount minus the sum of Receipts.
type Payment struct {
	shared.TenantAggregateRoot
	SourceType  SourceType           `json:"source_type"`
	SourceID    uuid.UUID            `json:"source_id"`
	CustomerID  *uuid.UUID           `json:"customer_id,omitempty"`
	PayerName   string               `json:"payer_name"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    valueobject.Currency `json:"currency"`
	Status      PaymentStatus        `json:"status"`
	PaymentDate time.Time            `json:"payment_date"`
	CanceledAt  *time.Time           `json:"canceled_at,omitempty"`
	Receipts    []Receipt            `json:"receipts"`
}

// NewPayment creates a pending payment for the given source
func NewPayment(tenantID uuid.UUID, source Source, terms PaymentTerms) (*Payment, error) {
	return newPayment(tenantID, source, terms, time.Now())
}

func newPayment(tenantID uuid.UUID, source Source, terms PaymentTerms, now time.Time) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !source.Type.IsValid() || source.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Payment must reference a booking")
	}
	if !terms.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if terms.Currency == "" {
		terms.Currency = valueobject.DefaultCurrency
	}
	p := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRootAt(tenantID, now),
		SourceType:          source.Type,
		SourceID:            source.ID,
		CustomerID:          terms.CustomerID,
		PayerName:           strings.TrimSpace(terms.PayerName),
		Amount:              terms.Amount,
		Currency:            terms.Currency,
		Status:              PaymentStatusPending,
		PaymentDate:         terms.PaymentDate,
		Receipts:            make([]Receipt, 0),
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = p.CreatedAt
	}
	p.AddDomainEvent(NewPaymentCreatedEvent(p))
	return p, nil
}

// Source returns the owning booking
func (p *Payment) Source() Source {
	return Source{Type: p.SourceType, ID: p.SourceID}
}

// IsActive reports whether the payment still counts: not refunded and not canceled
func (p *Payment) IsActive() bool {
	return p.Status != PaymentStatusRefunded && p.CanceledAt == nil
}

// TotalReceived sums all receipts
func (p *Payment) TotalReceived() decimal.Decimal {
	total := decimal.Zero
	for _, r := range p.Receipts {
		total = total.Add(r.Amount)
	}
	return total
}

// Balance is Amount minus everything received. Negative means the customer overpaid.
func (p *Payment) Balance() decimal.Decimal {
	return p.Amount.Sub(p.TotalReceived())
}

// Outstanding is the receivable contribution: positive balance of an active payment
func (p *Payment) Outstanding() decimal.Decimal {
	if !p.IsActive() {
		return decimal.Zero
	}
	return decimal.Max(decimal.Zero, p.Balance())
}

// EnsureCovers rejects a new expected amount below money already collected
func (p *Payment) EnsureCovers(amount decimal.Decimal) error {
	if amount.LessThan(p.TotalReceived()) {
		return ErrBelowReceived
	}
	return nil
}

// Sync re-targets the payment to new booking terms
func (p *Payment) Sync(terms PaymentTerms) error {
	if !p.IsActive() {
		return ErrPaymentInactive
	}
	if terms.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if err := p.EnsureCovers(terms.Amount); err != nil {
		return err
	}
	if terms.Currency != "" && terms.Currency != p.Currency {
		if len(p.Receipts) > 0 {
			return ErrCurrencyMismatch
		}
		p.Currency = terms.Currency
	}
	p.Amount = terms.Amount
	if terms.CustomerID != nil {
		p.CustomerID = terms.CustomerID
	}
	if name := strings.TrimSpace(terms.PayerName); name != "" {
		p.PayerName = name
	}
	if !terms.PaymentDate.IsZero() {
		p.PaymentDate = terms.PaymentDate
	}
	p.RefreshStatus()
	p.IncrementVersion()
	return nil
}

// AddReceipt appends an immutable receipt and recomputes the status
func (p *Payment) AddReceipt(amount decimal.Decimal, date time.Time, method ReceiptMethod, reference string, by *uuid.UUID) (*Receipt, error) {
	if !p.IsActive() {
		return nil, ErrPaymentInactive
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !method.IsValid() {
		return nil, ErrInvalidReceiptMethod
	}
	if date.IsZero() {
		date = time.Now()
	}
	r := Receipt{
		ID:        uuid.New(),
		TenantID:  p.TenantID,
		PaymentID: p.ID,
		Amount:    amount,
		Date:      date,
		Method:    method,
		Reference: strings.TrimSpace(reference),
		CreatedBy: by,
		CreatedAt: time.Now(),
	}
	p.Receipts = append(p.Receipts, r)
	p.RefreshStatus()
	p.IncrementVersion()
	p.AddDomainEvent(NewReceiptRecordedEvent(p, &r))
	return &r, nil
}

// RefreshStatus derives the collection status from receipts.
// refund and refunded are set explicitly and left alone.
func (p *Payment) RefreshStatus() {
	if p.Status == PaymentStatusRefund || p.Status == PaymentStatusRefunded {
		return
	}
	received := p.TotalReceived()
	switch {
	case received.IsZero():
		p.Status = PaymentStatusPending
	case received.LessThan(p.Amount):
		p.Status = PaymentStatusPartial
	case received.Equal(p.Amount):
		p.Status = PaymentStatusPaid
	default:
		p.Status = PaymentStatusCredit
	}
}

// MarkRefund flags that money must be returned to the customer
func (p *Payment) MarkRefund() error {
	if !p.IsActive() {
		return ErrPaymentInactive
	}
	if p.Status == PaymentStatusRefund {
		return shared.NewDomainError("INVALID_STATE", "Payment is already flagged for refund")
	}
	p.Status = PaymentStatusRefund
	p.IncrementVersion()
	return nil
}

// MarkRefunded is the cancellation cascade: the payment leaves every receivable total
func (p *Payment) MarkRefunded(at time.Time) error {
	if p.Status == PaymentStatusRefunded {
		return shared.ErrAlreadyCanceled
	}
	p.Status = PaymentStatusRefunded
	p.CanceledAt = &at
	p.IncrementVersion()
	p.AddDomainEvent(NewPaymentRefundedEvent(p))
	return nil
}

// TicketPaymentDate picks the period date for a ticket payment:
// departure, then return, then creation.
func TicketPaymentDate(departure, ret *time.Time, created time.Time) time.Time {
	if departure != nil && !departure.IsZero() {
		return *departure
	}
	if ret != nil && !ret.IsZero() {
		return *ret
	}
	return created
}
