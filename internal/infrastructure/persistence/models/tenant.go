package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/tenant"
)

// TenantModel is the persistence model for the Tenant entity.
type TenantModel struct {
	BaseModel
	Code   string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string        `gorm:"type:varchar(200);not null"`
	Status tenant.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *tenant.Tenant {
	return &tenant.Tenant{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		Status:     m.Status,
	}
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *tenant.Tenant) *TenantModel {
	m := &TenantModel{Code: t.Code, Name: t.Name, Status: t.Status}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// NumberSequenceModel holds the last issued number of one per-tenant sequence.
// The composite primary key is the conflict target of the atomic increment.
type NumberSequenceModel struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(50);primaryKey"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}
