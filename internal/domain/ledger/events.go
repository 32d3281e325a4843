package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// Event type names
const (
	EventTypePaymentCreated  = "PaymentCreated"
	EventTypePaymentRefunded = "PaymentRefunded"
	EventTypeReceiptRecorded = "ReceiptRecorded"
	EventTypePayableCreated  = "PayableCreated"
	EventTypePayablePaidDown = "PayablePaidDown"
	EventTypePayableCanceled = "PayableCanceled"

	AggregateTypePayment = "Payment"
	AggregateTypePayable = "Payable"
)

// PaymentCreatedEvent is raised when a booking spawns its payment
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	SourceType SourceType           `json:"source_type"`
	SourceID   uuid.UUID            `json:"source_id"`
	Amount     decimal.Decimal      `json:"amount"`
	Currency   valueobject.Currency `json:"currency"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, AggregateTypePayment, p.ID, p.TenantID),
		SourceType:      p.SourceType,
		SourceID:        p.SourceID,
		Amount:          p.Amount,
		Currency:        p.Currency,
	}
}

// PaymentRefundedEvent is raised by the cancellation cascade
type PaymentRefundedEvent struct {
	shared.BaseDomainEvent
	SourceType SourceType      `json:"source_type"`
	SourceID   uuid.UUID       `json:"source_id"`
	Received   decimal.Decimal `json:"received"`
}

// NewPaymentRefundedEvent creates a new PaymentRefundedEvent
func NewPaymentRefundedEvent(p *Payment) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRefunded, AggregateTypePayment, p.ID, p.TenantID),
		SourceType:      p.SourceType,
		SourceID:        p.SourceID,
		Received:        p.TotalReceived(),
	}
}

// ReceiptRecordedEvent is raised when money is received against a payment
type ReceiptRecordedEvent struct {
	shared.BaseDomainEvent
	ReceiptID uuid.UUID       `json:"receipt_id"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	Status    PaymentStatus   `json:"status"`
}

// NewReceiptRecordedEvent creates a new ReceiptRecordedEvent
func NewReceiptRecordedEvent(p *Payment, r *Receipt) *ReceiptRecordedEvent {
	return &ReceiptRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptRecorded, AggregateTypePayment, p.ID, p.TenantID),
		ReceiptID:       r.ID,
		Amount:          r.Amount,
		Balance:         p.Balance(),
		Status:          p.Status,
	}
}

// PayableCreatedEvent is raised when a booking spawns its payable
type PayableCreatedEvent struct {
	shared.BaseDomainEvent
	SourceType SourceType      `json:"source_type"`
	SourceID   uuid.UUID       `json:"source_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// NewPayableCreatedEvent creates a new PayableCreatedEvent
func NewPayableCreatedEvent(p *Payable) *PayableCreatedEvent {
	return &PayableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayableCreated, AggregateTypePayable, p.ID, p.TenantID),
		SourceType:      p.SourceType,
		SourceID:        p.SourceID,
		Amount:          p.Amount,
	}
}

// PayablePaidDownEvent is raised when the agency pays a supplier
type PayablePaidDownEvent struct {
	shared.BaseDomainEvent
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

// NewPayablePaidDownEvent creates a new PayablePaidDownEvent
func NewPayablePaidDownEvent(p *Payable, amount decimal.Decimal) *PayablePaidDownEvent {
	return &PayablePaidDownEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayablePaidDown, AggregateTypePayable, p.ID, p.TenantID),
		Amount:          amount,
		Balance:         p.Balance,
	}
}

// PayableCanceledEvent is raised by the cancellation cascade
type PayableCanceledEvent struct {
	shared.BaseDomainEvent
	SourceType SourceType `json:"source_type"`
	SourceID   uuid.UUID  `json:"source_id"`
}

// NewPayableCanceledEvent creates a new PayableCanceledEvent
func NewPayableCanceledEvent(p *Payable) *PayableCanceledEvent {
	return &PayableCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayableCanceled, AggregateTypePayable, p.ID, p.TenantID),
		SourceType:      p.SourceType,
		SourceID:        p.SourceID,
	}
}
