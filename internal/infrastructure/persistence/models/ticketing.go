package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
	"github.com/travelerp/backend/internal/domain/ticketing"
)

// TicketModel is the persistence model for the Ticket aggregate.
type TicketModel struct {
	TenantAggregateModel
	TicketNumber  string               `gorm:"type:varchar(30);not null;index"`
	Reference     string               `gorm:"type:varchar(100)"`
	IssueDate     time.Time            `gorm:"type:date;not null"`
	CustomerID    *uuid.UUID           `gorm:"type:uuid;index"`
	PassengerName string               `gorm:"type:varchar(200);not null"`
	Airline       string               `gorm:"type:varchar(100)"`
	Route         string               `gorm:"type:varchar(200)"`
	FlightNumber  string               `gorm:"type:varchar(20)"`
	DepartureDate *time.Time           `gorm:"type:date"`
	ReturnDate    *time.Time           `gorm:"type:date"`
	SupplierName  string               `gorm:"type:varchar(200)"`
	Notes         string               `gorm:"type:text"`
	NetCost       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	NetSales      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	CanceledAt    *time.Time
}

// TableName returns the table name for GORM
func (TicketModel) TableName() string {
	return "tickets"
}

// ToDomain converts the persistence model to a domain Ticket.
func (m *TicketModel) ToDomain() *ticketing.Ticket {
	return &ticketing.Ticket{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		TicketNumber:        m.TicketNumber,
		Reference:           m.Reference,
		IssueDate:           m.IssueDate,
		CustomerID:          m.CustomerID,
		PassengerName:       m.PassengerName,
		Airline:             m.Airline,
		Route:               m.Route,
		FlightNumber:        m.FlightNumber,
		DepartureDate:       m.DepartureDate,
		ReturnDate:          m.ReturnDate,
		SupplierName:        m.SupplierName,
		Notes:               m.Notes,
		Amounts:             ticketing.SaleAmounts{NetCost: m.NetCost, NetSales: m.NetSales, Currency: m.Currency},
		CanceledAt:          m.CanceledAt,
	}
}

// TicketModelFromDomain creates a new persistence model from a domain Ticket.
func TicketModelFromDomain(t *ticketing.Ticket) *TicketModel {
	m := &TicketModel{
		TicketNumber:  t.TicketNumber,
		Reference:     t.Reference,
		IssueDate:     t.IssueDate,
		CustomerID:    t.CustomerID,
		PassengerName: t.PassengerName,
		Airline:       t.Airline,
		Route:         t.Route,
		FlightNumber:  t.FlightNumber,
		DepartureDate: t.DepartureDate,
		ReturnDate:    t.ReturnDate,
		SupplierName:  t.SupplierName,
		Notes:         t.Notes,
		NetCost:       t.Amounts.NetCost,
		NetSales:      t.Amounts.NetSales,
		Currency:      t.Amounts.Currency,
		CanceledAt:    t.CanceledAt,
	}
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	return m
}

// VisaModel is the persistence model for the Visa aggregate.
type VisaModel struct {
	TenantAggregateModel
	VisaNumber     string               `gorm:"type:varchar(30);not null;index"`
	Reference      string               `gorm:"type:varchar(100)"`
	CustomerID     *uuid.UUID           `gorm:"type:uuid;index"`
	ApplicantName  string               `gorm:"type:varchar(200);not null"`
	PassportNumber string               `gorm:"type:varchar(50)"`
	Country        string               `gorm:"type:varchar(100)"`
	VisaType       string               `gorm:"type:varchar(50)"`
	TravelDate     *time.Time           `gorm:"type:date"`
	SupplierName   string               `gorm:"type:varchar(200)"`
	Notes          string               `gorm:"type:text"`
	NetCost        decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	NetSales       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	CanceledAt     *time.Time
}

// TableName returns the table name for GORM
func (VisaModel) TableName() string {
	return "visas"
}

// ToDomain converts the persistence model to a domain Visa.
func (m *VisaModel) ToDomain() *ticketing.Visa {
	return &ticketing.Visa{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		VisaNumber:          m.VisaNumber,
		Reference:           m.Reference,
		CustomerID:          m.CustomerID,
		ApplicantName:       m.ApplicantName,
		PassportNumber:      m.PassportNumber,
		Country:             m.Country,
		VisaType:            m.VisaType,
		TravelDate:          m.TravelDate,
		SupplierName:        m.SupplierName,
		Notes:               m.Notes,
		Amounts:             ticketing.SaleAmounts{NetCost: m.NetCost, NetSales: m.NetSales, Currency: m.Currency},
		CanceledAt:          m.CanceledAt,
	}
}

// VisaModelFromDomain creates a new persistence model from a domain Visa.
func VisaModelFromDomain(v *ticketing.Visa) *VisaModel {
	m := &VisaModel{
		VisaNumber:     v.VisaNumber,
		Reference:      v.Reference,
		CustomerID:     v.CustomerID,
		ApplicantName:  v.ApplicantName,
		PassportNumber: v.PassportNumber,
		Country:        v.Country,
		VisaType:       v.VisaType,
		TravelDate:     v.TravelDate,
		SupplierName:   v.SupplierName,
		Notes:          v.Notes,
		NetCost:        v.Amounts.NetCost,
		NetSales:       v.Amounts.NetSales,
		Currency:       v.Amounts.Currency,
		CanceledAt:     v.CanceledAt,
	}
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	return m
}

// TicketAdjustmentModel is an append-only audit row of a post-issue repricing.
type TicketAdjustmentModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	TicketID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	PreviousNetSales decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NewNetSales      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PreviousNetCost  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NewNetCost       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason           string          `gorm:"type:text;not null"`
	CreatedBy        *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TicketAdjustmentModel) TableName() string {
	return "ticket_adjustments"
}

// ToDomain converts the persistence model to a domain Adjustment.
func (m *TicketAdjustmentModel) ToDomain() *ledger.Adjustment {
	return &ledger.Adjustment{
		ID:               m.ID,
		TenantID:         m.TenantID,
		TicketID:         m.TicketID,
		PreviousNetSales: m.PreviousNetSales,
		NewNetSales:      m.NewNetSales,
		PreviousNetCost:  m.PreviousNetCost,
		NewNetCost:       m.NewNetCost,
		Reason:           m.Reason,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

// TicketAdjustmentModelFromDomain creates a new persistence model from a domain Adjustment.
func TicketAdjustmentModelFromDomain(a *ledger.Adjustment) *TicketAdjustmentModel {
	return &TicketAdjustmentModel{
		ID:               a.ID,
		TenantID:         a.TenantID,
		TicketID:         a.TicketID,
		PreviousNetSales: a.PreviousNetSales,
		NewNetSales:      a.NewNetSales,
		PreviousNetCost:  a.PreviousNetCost,
		NewNetCost:       a.NewNetCost,
		Reason:           a.Reason,
		CreatedBy:        a.CreatedBy,
		CreatedAt:        a.CreatedAt,
	}
}
