// Package tenant provides the tenant_id scoping every repository query goes through.
//
// Usage:
//
//	db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Find(&tickets)
//	// WHERE tenant_id = 'xxx' is added; a nil tenant fails the query instead
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when a scoped query is built without a tenant
var ErrTenantIDRequired = errors.New("tenant_id is required")

// Scope restricts a query to one tenant. A nil tenant ID aborts the query
// with ErrTenantIDRequired rather than reading across tenants.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return ScopeTable("", tenantID)
}

// ScopeTable is Scope for queries that join several tenant-owned tables
func ScopeTable(table string, tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		column := "tenant_id"
		if table != "" {
			column = table + ".tenant_id"
		}
		return db.Where(column+" = ?", tenantID)
	}
}

// OptionalScope scopes the query only when tenantID is set.
// It serves the public tracking lookup, the one read allowed without a tenant.
func OptionalScope(tenantID *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == nil {
			return db
		}
		return db.Where("tenant_id = ?", *tenantID)
	}
}

// Save writes model as a row of tenantID. The update is restricted to the
// tenant's own row; when none matches the model is inserted, so a key already
// owned by another tenant fails on the primary key instead of being overwritten.
func Save(db *gorm.DB, tenantID uuid.UUID, model any) error {
	db = db.Session(&gorm.Session{})
	res := db.Model(model).Scopes(Scope(tenantID)).Select("*").Updates(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return db.Create(model).Error
}
