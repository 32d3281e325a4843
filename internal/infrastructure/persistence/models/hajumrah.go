package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// CampaignModel is the persistence model for the Campaign aggregate.
type CampaignModel struct {
	TenantAggregateModel
	Name       string                  `gorm:"type:varchar(200);not null"`
	Type       hajumrah.CampaignType   `gorm:"type:varchar(10);not null"`
	Date       time.Time               `gorm:"type:date;not null;index"`
	ReturnDate *time.Time              `gorm:"type:date"`
	Capacity   int                     `gorm:"not null;default:0"`
	Status     hajumrah.CampaignStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes      string                  `gorm:"type:text"`
	CanceledAt *time.Time
}

// TableName returns the table name for GORM
func (CampaignModel) TableName() string {
	return "campaigns"
}

// ToDomain converts the persistence model to a domain Campaign.
func (m *CampaignModel) ToDomain() *hajumrah.Campaign {
	return &hajumrah.Campaign{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		Type:                m.Type,
		Date:                m.Date,
		ReturnDate:          m.ReturnDate,
		Capacity:            m.Capacity,
		Status:              m.Status,
		Notes:               m.Notes,
		CanceledAt:          m.CanceledAt,
	}
}

// CampaignModelFromDomain creates a new persistence model from a domain Campaign.
func CampaignModelFromDomain(c *hajumrah.Campaign) *CampaignModel {
	m := &CampaignModel{
		Name:       c.Name,
		Type:       c.Type,
		Date:       c.Date,
		ReturnDate: c.ReturnDate,
		Capacity:   c.Capacity,
		Status:     c.Status,
		Notes:      c.Notes,
		CanceledAt: c.CanceledAt,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// BookingModel is the persistence model for the Haj/Umrah Booking aggregate.
type BookingModel struct {
	TenantAggregateModel
	BookingNumber string                 `gorm:"type:varchar(30);not null;index"`
	CustomerID    uuid.UUID              `gorm:"type:uuid;not null;index:idx_booking_customer_campaign,priority:1"`
	CampaignID    *uuid.UUID             `gorm:"type:uuid;index:idx_booking_customer_campaign,priority:2"`
	Status        hajumrah.BookingStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Profit        decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      valueobject.Currency   `gorm:"type:varchar(3);not null;default:'USD'"`
	SupplierName  string                 `gorm:"type:varchar(200)"`
	Notes         string                 `gorm:"type:text"`
	ConfirmedAt   *time.Time
	CanceledAt    *time.Time
	Packages      []BookingPackageModel `gorm:"foreignKey:BookingID;references:ID"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "haj_umrah_bookings"
}

// ToDomain converts the persistence model to a domain Booking with its packages.
func (m *BookingModel) ToDomain() *hajumrah.Booking {
	b := &hajumrah.Booking{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		BookingNumber:       m.BookingNumber,
		CustomerID:          m.CustomerID,
		CampaignID:          m.CampaignID,
		Status:              m.Status,
		Profit:              m.Profit,
		Currency:            m.Currency,
		SupplierName:        m.SupplierName,
		Notes:               m.Notes,
		ConfirmedAt:         m.ConfirmedAt,
		CanceledAt:          m.CanceledAt,
		Packages:            make([]hajumrah.BookingPackage, len(m.Packages)),
	}
	for i, p := range m.Packages {
		b.Packages[i] = p.ToDomain()
	}
	return b
}

// BookingModelFromDomain creates a new persistence model from a domain Booking.
// Packages are mapped but written separately by the repository.
func BookingModelFromDomain(b *hajumrah.Booking) *BookingModel {
	m := &BookingModel{
		BookingNumber: b.BookingNumber,
		CustomerID:    b.CustomerID,
		CampaignID:    b.CampaignID,
		Status:        b.Status,
		Profit:        b.Profit,
		Currency:      b.Currency,
		SupplierName:  b.SupplierName,
		Notes:         b.Notes,
		ConfirmedAt:   b.ConfirmedAt,
		CanceledAt:    b.CanceledAt,
		Packages:      make([]BookingPackageModel, len(b.Packages)),
	}
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	for i, p := range b.Packages {
		m.Packages[i] = BookingPackageModel{
			ID:          p.ID,
			TenantID:    b.TenantID,
			BookingID:   b.ID,
			Position:    i,
			Name:        p.Name,
			Description: p.Description,
			Amount:      p.Amount,
			Cost:        p.Cost,
		}
	}
	return m
}

// BookingPackageModel is one package line of a booking.
type BookingPackageModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookingID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (BookingPackageModel) TableName() string {
	return "haj_umrah_packages"
}

// ToDomain converts the persistence model to a domain BookingPackage.
func (m *BookingPackageModel) ToDomain() hajumrah.BookingPackage {
	return hajumrah.BookingPackage{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Amount:      m.Amount,
		Cost:        m.Cost,
	}
}
