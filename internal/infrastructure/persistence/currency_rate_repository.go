package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"github.com/travelerp/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRateRepository implements currency.RateRepository using GORM
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GormRateRepository
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// FindAllForTenant returns the tenant's whole rate table ordered by currency
func (r *GormRateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]currency.Rate, error) {
	var rows []models.CurrencyRateModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("currency ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	rates := make([]currency.Rate, len(rows))
	for i, m := range rows {
		rates[i] = m.ToDomain()
	}
	return rates, nil
}

// FindByCurrency returns one rate or shared.ErrNotFound
func (r *GormRateRepository) FindByCurrency(ctx context.Context, tenantID uuid.UUID, cur valueobject.Currency) (*currency.Rate, error) {
	var model models.CurrencyRateModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("currency = ?", cur).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	rate := model.ToDomain()
	return &rate, nil
}

// Upsert inserts the rate or overwrites the existing one for (tenant, currency)
func (r *GormRateRepository) Upsert(ctx context.Context, rate *currency.Rate) error {
	model := models.CurrencyRateModel{
		ID:          rate.ID,
		TenantID:    rate.TenantID,
		Currency:    rate.Currency,
		UnitsPerUSD: rate.UnitsPerUSD,
		UpdatedAt:   rate.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"units_per_usd", "updated_at"}),
	}).Create(&model).Error
}

var _ currency.RateRepository = (*GormRateRepository)(nil)
