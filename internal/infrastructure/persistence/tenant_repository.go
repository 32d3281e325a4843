package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/tenant"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements tenant.Repository using GORM.
// Tenants are the one table that is not itself tenant-scoped.
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds a tenant by its code
func (r *GormTenantRepository) FindByCode(ctx context.Context, code string) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every tenant ordered by code
func (r *GormTenantRepository) FindAll(ctx context.Context) ([]tenant.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).Order("code").Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	tenants := make([]tenant.Tenant, len(tenantModels))
	for i, m := range tenantModels {
		tenants[i] = *m.ToDomain()
	}
	return tenants, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	return r.db.WithContext(ctx).Save(models.TenantModelFromDomain(t)).Error
}

var _ tenant.Repository = (*GormTenantRepository)(nil)
