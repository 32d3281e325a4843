package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// PaymentModel is the persistence model for the Payment aggregate.
// Balance is not stored; it is derived from receipts.
type PaymentModel struct {
	TenantAggregateModel
	SourceType  ledger.SourceType    `gorm:"type:varchar(30);not null;index:idx_payment_source,priority:2"`
	SourceID    uuid.UUID            `gorm:"type:uuid;not null;index:idx_payment_source,priority:3"`
	CustomerID  *uuid.UUID           `gorm:"type:uuid;index"`
	PayerName   string               `gorm:"type:varchar(200)"`
	Amount      decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	Status      ledger.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	PaymentDate time.Time            `gorm:"type:date;not null;index"`
	CanceledAt  *time.Time
	Receipts    []ReceiptModel `gorm:"foreignKey:PaymentID;references:ID"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment; receipts are mapped when preloaded.
func (m *PaymentModel) ToDomain() *ledger.Payment {
	p := &ledger.Payment{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		SourceType:          m.SourceType,
		SourceID:            m.SourceID,
		CustomerID:          m.CustomerID,
		PayerName:           m.PayerName,
		Amount:              m.Amount,
		Currency:            m.Currency,
		Status:              m.Status,
		PaymentDate:         m.PaymentDate,
		CanceledAt:          m.CanceledAt,
		Receipts:            make([]ledger.Receipt, len(m.Receipts)),
	}
	for i, r := range m.Receipts {
		p.Receipts[i] = r.ToDomain()
	}
	return p
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
// Receipts are not carried; they are inserted one by one.
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{
		SourceType:  p.SourceType,
		SourceID:    p.SourceID,
		CustomerID:  p.CustomerID,
		PayerName:   p.PayerName,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      p.Status,
		PaymentDate: p.PaymentDate,
		CanceledAt:  p.CanceledAt,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// ReceiptModel is an immutable receipt row.
type ReceiptModel struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	PaymentID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Date      time.Time            `gorm:"type:date;not null;index"`
	Method    ledger.ReceiptMethod `gorm:"type:varchar(30);not null"`
	Reference string               `gorm:"type:varchar(100)"`
	CreatedBy *uuid.UUID           `gorm:"type:uuid"`
	CreatedAt time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt.
func (m *ReceiptModel) ToDomain() ledger.Receipt {
	return ledger.Receipt{
		ID:        m.ID,
		TenantID:  m.TenantID,
		PaymentID: m.PaymentID,
		Amount:    m.Amount,
		Date:      m.Date,
		Method:    m.Method,
		Reference: m.Reference,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

// ReceiptModelFromDomain creates a new persistence model from a domain Receipt.
func ReceiptModelFromDomain(r *ledger.Receipt) *ReceiptModel {
	return &ReceiptModel{
		ID:        r.ID,
		TenantID:  r.TenantID,
		PaymentID: r.PaymentID,
		Amount:    r.Amount,
		Date:      r.Date,
		Method:    r.Method,
		Reference: r.Reference,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}

// PayableModel is the persistence model for the Payable aggregate.
type PayableModel struct {
	TenantAggregateModel
	SourceType   ledger.SourceType    `gorm:"type:varchar(30);not null;index:idx_payable_source,priority:2"`
	SourceID     uuid.UUID            `gorm:"type:uuid;not null;index:idx_payable_source,priority:3"`
	SupplierName string               `gorm:"type:varchar(200)"`
	Amount       decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Balance      decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency     valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	Deadline     *time.Time           `gorm:"type:date"`
	CanceledAt   *time.Time
}

// TableName returns the table name for GORM
func (PayableModel) TableName() string {
	return "payables"
}

// ToDomain converts the persistence model to a domain Payable.
func (m *PayableModel) ToDomain() *ledger.Payable {
	return &ledger.Payable{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		SourceType:          m.SourceType,
		SourceID:            m.SourceID,
		SupplierName:        m.SupplierName,
		Amount:              m.Amount,
		Balance:             m.Balance,
		Currency:            m.Currency,
		Deadline:            m.Deadline,
		CanceledAt:          m.CanceledAt,
	}
}

// PayableModelFromDomain creates a new persistence model from a domain Payable.
func PayableModelFromDomain(p *ledger.Payable) *PayableModel {
	m := &PayableModel{
		SourceType:   p.SourceType,
		SourceID:     p.SourceID,
		SupplierName: p.SupplierName,
		Amount:       p.Amount,
		Balance:      p.Balance,
		Currency:     p.Currency,
		Deadline:     p.Deadline,
		CanceledAt:   p.CanceledAt,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate.
type ExpenseModel struct {
	TenantAggregateModel
	Category     string               `gorm:"type:varchar(100);not null"`
	Description  string               `gorm:"type:text"`
	Amount       decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency     valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	ExpenseDate  time.Time            `gorm:"type:date;not null;index"`
	Status       ledger.ExpenseStatus `gorm:"type:varchar(20);not null;index"`
	ApprovedBy   *uuid.UUID           `gorm:"type:uuid"`
	ApprovedAt   *time.Time
	RejectReason string `gorm:"type:text"`
	PaidAt       *time.Time
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense.
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	return &ledger.Expense{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Category:            m.Category,
		Description:         m.Description,
		Amount:              m.Amount,
		Currency:            m.Currency,
		ExpenseDate:         m.ExpenseDate,
		Status:              m.Status,
		ApprovedBy:          m.ApprovedBy,
		ApprovedAt:          m.ApprovedAt,
		RejectReason:        m.RejectReason,
		PaidAt:              m.PaidAt,
	}
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{
		Category:     e.Category,
		Description:  e.Description,
		Amount:       e.Amount,
		Currency:     e.Currency,
		ExpenseDate:  e.ExpenseDate,
		Status:       e.Status,
		ApprovedBy:   e.ApprovedBy,
		ApprovedAt:   e.ApprovedAt,
		RejectReason: e.RejectReason,
		PaidAt:       e.PaidAt,
	}
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	return m
}

// CurrencyRateModel is one row of a tenant's spot rate table.
type CurrencyRateModel struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_rate_tenant_currency,priority:1"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null;uniqueIndex:idx_rate_tenant_currency,priority:2"`
	UnitsPerUSD decimal.Decimal      `gorm:"type:decimal(18,6);not null"`
	UpdatedAt   time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CurrencyRateModel) TableName() string {
	return "currency_rates"
}

// ToDomain converts the persistence model to a domain Rate.
func (m *CurrencyRateModel) ToDomain() currency.Rate {
	return currency.Rate{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Currency:    m.Currency,
		UnitsPerUSD: m.UnitsPerUSD,
		UpdatedAt:   m.UpdatedAt,
	}
}
