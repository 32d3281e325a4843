package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// nextSequenceSQL increments in one statement so concurrent callers never share a value.
// It runs unchanged on PostgreSQL and SQLite 3.35+.
const nextSequenceSQL = `INSERT INTO number_sequences (tenant_id, name, value, updated_at)
VALUES (?, ?, 1, ?)
ON CONFLICT (tenant_id, name) DO UPDATE
SET value = number_sequences.value + 1, updated_at = excluded.updated_at
RETURNING value`

// GormSequenceGenerator implements shared.SequenceGenerator on the number_sequences table
type GormSequenceGenerator struct {
	db *gorm.DB
}

// NewGormSequenceGenerator creates a new GormSequenceGenerator
func NewGormSequenceGenerator(db *gorm.DB) *GormSequenceGenerator {
	return &GormSequenceGenerator{db: db}
}

// Next returns the next number of the tenant's named sequence, starting at 1
func (g *GormSequenceGenerator) Next(ctx context.Context, tenantID uuid.UUID, name string) (int64, error) {
	if tenantID == uuid.Nil {
		return 0, shared.NewDomainError("TENANT_REQUIRED", "Tenant is required")
	}
	var value int64
	if err := g.db.WithContext(ctx).Raw(nextSequenceSQL, tenantID, name, time.Now().UTC()).Scan(&value).Error; err != nil {
		return 0, err
	}
	return value, nil
}

var _ shared.SequenceGenerator = (*GormSequenceGenerator)(nil)
