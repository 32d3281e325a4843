package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/cargo"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// BranchModel is the persistence model for a cargo Branch.
type BranchModel struct {
	TenantAggregateModel
	Code    string `gorm:"type:varchar(20);not null;index"`
	Name    string `gorm:"type:varchar(200);not null"`
	City    string `gorm:"type:varchar(100)"`
	Country string `gorm:"type:varchar(2)"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch.
func (m *BranchModel) ToDomain() *cargo.Branch {
	return &cargo.Branch{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		City:                m.City,
		Country:             m.Country,
	}
}

// BranchModelFromDomain creates a new persistence model from a domain Branch.
func BranchModelFromDomain(b *cargo.Branch) *BranchModel {
	m := &BranchModel{Code: b.Code, Name: b.Name, City: b.City, Country: b.Country}
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	return m
}

// ShipmentModel is the persistence model for the cargo Shipment aggregate.
type ShipmentModel struct {
	TenantAggregateModel
	TrackingNumber      string               `gorm:"type:varchar(30);not null;index"`
	CustomerID          *uuid.UUID           `gorm:"type:uuid;index"`
	SenderName          string               `gorm:"type:varchar(200);not null"`
	SenderPhone         string               `gorm:"type:varchar(50)"`
	ReceiverName        string               `gorm:"type:varchar(200);not null"`
	ReceiverPhone       string               `gorm:"type:varchar(50)"`
	ReceiverAddress     string               `gorm:"type:text"`
	SourceBranchID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	DestinationBranchID uuid.UUID            `gorm:"type:uuid;not null;index"`
	TotalWeight         decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Price               decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency            valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	Status              cargo.Status         `gorm:"type:varchar(30);not null;index"`
	Notes               string               `gorm:"type:text"`
	DeliveredAt         *time.Time
	Items               []ShipmentItemModel `gorm:"foreignKey:ShipmentID;references:ID"`
	Logs                []TrackingLogModel  `gorm:"foreignKey:ShipmentID;references:ID"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "cargo_shipments"
}

// ToDomain converts the persistence model to a domain Shipment with items and logs.
func (m *ShipmentModel) ToDomain() *cargo.Shipment {
	s := &cargo.Shipment{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		TrackingNumber:      m.TrackingNumber,
		CustomerID:          m.CustomerID,
		SenderName:          m.SenderName,
		SenderPhone:         m.SenderPhone,
		ReceiverName:        m.ReceiverName,
		ReceiverPhone:       m.ReceiverPhone,
		ReceiverAddress:     m.ReceiverAddress,
		SourceBranchID:      m.SourceBranchID,
		DestinationBranchID: m.DestinationBranchID,
		TotalWeight:         m.TotalWeight,
		Price:               m.Price,
		Currency:            m.Currency,
		Status:              m.Status,
		Notes:               m.Notes,
		DeliveredAt:         m.DeliveredAt,
		Items:               make([]cargo.Item, len(m.Items)),
		Logs:                make([]cargo.TrackingLog, len(m.Logs)),
	}
	for i, it := range m.Items {
		s.Items[i] = cargo.Item{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Weight:      it.Weight,
			UnitPrice:   it.UnitPrice,
		}
	}
	for i, l := range m.Logs {
		s.Logs[i] = l.ToDomain()
	}
	return s
}

// ShipmentModelFromDomain creates a new persistence model from a domain Shipment.
func ShipmentModelFromDomain(s *cargo.Shipment) *ShipmentModel {
	m := &ShipmentModel{
		TrackingNumber:      s.TrackingNumber,
		CustomerID:          s.CustomerID,
		SenderName:          s.SenderName,
		SenderPhone:         s.SenderPhone,
		ReceiverName:        s.ReceiverName,
		ReceiverPhone:       s.ReceiverPhone,
		ReceiverAddress:     s.ReceiverAddress,
		SourceBranchID:      s.SourceBranchID,
		DestinationBranchID: s.DestinationBranchID,
		TotalWeight:         s.TotalWeight,
		Price:               s.Price,
		Currency:            s.Currency,
		Status:              s.Status,
		Notes:               s.Notes,
		DeliveredAt:         s.DeliveredAt,
		Items:               make([]ShipmentItemModel, len(s.Items)),
		Logs:                make([]TrackingLogModel, len(s.Logs)),
	}
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	for i, it := range s.Items {
		m.Items[i] = ShipmentItemModel{
			ID:          it.ID,
			TenantID:    s.TenantID,
			ShipmentID:  s.ID,
			Position:    i,
			Description: it.Description,
			Quantity:    it.Quantity,
			Weight:      it.Weight,
			UnitPrice:   it.UnitPrice,
		}
	}
	for i, l := range s.Logs {
		m.Logs[i] = TrackingLogModelFromDomain(l)
	}
	return m
}

// ShipmentItemModel is one line of a shipment.
type ShipmentItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShipmentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	Description string          `gorm:"type:varchar(200)"`
	Quantity    int             `gorm:"not null"`
	Weight      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ShipmentItemModel) TableName() string {
	return "cargo_items"
}

// TrackingLogModel is an append-only status change of a shipment.
type TrackingLogModel struct {
	ID         uuid.UUID    `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	ShipmentID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Status     cargo.Status `gorm:"type:varchar(30);not null"`
	Note       string       `gorm:"type:text"`
	CreatedBy  *uuid.UUID   `gorm:"type:uuid"`
	CreatedAt  time.Time    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TrackingLogModel) TableName() string {
	return "cargo_tracking_logs"
}

// ToDomain converts the persistence model to a domain TrackingLog.
func (m *TrackingLogModel) ToDomain() cargo.TrackingLog {
	return cargo.TrackingLog{
		ID:         m.ID,
		TenantID:   m.TenantID,
		ShipmentID: m.ShipmentID,
		Status:     m.Status,
		Note:       m.Note,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}

// TrackingLogModelFromDomain creates a new persistence model from a domain TrackingLog.
func TrackingLogModelFromDomain(l cargo.TrackingLog) TrackingLogModel {
	return TrackingLogModel{
		ID:         l.ID,
		TenantID:   l.TenantID,
		ShipmentID: l.ShipmentID,
		Status:     l.Status,
		Note:       l.Note,
		CreatedBy:  l.CreatedBy,
		CreatedAt:  l.CreatedAt,
	}
}
