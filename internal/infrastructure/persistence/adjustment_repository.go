package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"github.com/travelerp/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormAdjustmentRepository implements AdjustmentRepository using GORM.
// Rows are only ever inserted.
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// Create inserts an adjustment row
func (r *GormAdjustmentRepository) Create(ctx context.Context, adjustment *ledger.Adjustment) error {
	return r.db.WithContext(ctx).Create(models.TicketAdjustmentModelFromDomain(adjustment)).Error
}

// FindByTicket returns the adjustment history of a ticket, oldest first
func (r *GormAdjustmentRepository) FindByTicket(ctx context.Context, tenantID, ticketID uuid.UUID) ([]ledger.Adjustment, error) {
	var rows []models.TicketAdjustmentModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	adjustments := make([]ledger.Adjustment, len(rows))
	for i, row := range rows {
		adjustments[i] = *row.ToDomain()
	}
	return adjustments, nil
}

var _ ledger.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
