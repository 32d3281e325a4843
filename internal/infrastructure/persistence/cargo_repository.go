package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/cargo"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"github.com/travelerp/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by ID within a tenant
func (r *GormBranchRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*cargo.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every branch of a tenant ordered by code
func (r *GormBranchRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]cargo.Branch, error) {
	var rows []models.BranchModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	branches := make([]cargo.Branch, len(rows))
	for i, m := range rows {
		branches[i] = *m.ToDomain()
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *cargo.Branch) error {
	return tenant.Save(r.db.WithContext(ctx), branch.TenantID, models.BranchModelFromDomain(branch))
}

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

func (r *GormShipmentRepository) withLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Logs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

// FindByID loads a shipment with items and tracking trail
func (r *GormShipmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*cargo.Shipment, error) {
	var model models.ShipmentModel
	if err := r.withLines(r.db.WithContext(ctx)).
		Scopes(tenant.Scope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByTrackingNumber looks a shipment up by its public number
func (r *GormShipmentRepository) FindByTrackingNumber(ctx context.Context, tenantID *uuid.UUID, trackingNumber string) (*cargo.Shipment, error) {
	var model models.ShipmentModel
	if err := r.withLines(r.db.WithContext(ctx)).
		Scopes(tenant.OptionalScope(tenantID)).
		Where("tracking_number = ?", strings.ToUpper(strings.TrimSpace(trackingNumber))).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists shipments without their tracking trail
func (r *GormShipmentRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter cargo.ShipmentFilter) ([]cargo.Shipment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ShipmentModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.BranchID != nil {
		query = query.Where("source_branch_id = ? OR destination_branch_id = ?", *filter.BranchID, *filter.BranchID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(tracking_number) LIKE ? OR LOWER(sender_name) LIKE ? OR LOWER(receiver_name) LIKE ?",
			like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ShipmentModel
	if err := paginate(query, filter.Filter, ShipmentSortFields, "created_at").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	shipments := make([]cargo.Shipment, len(rows))
	for i, m := range rows {
		shipments[i] = *m.ToDomain()
	}
	return shipments, total, nil
}

// Create inserts the shipment with its items and initial logs
func (r *GormShipmentRepository) Create(ctx context.Context, shipment *cargo.Shipment) error {
	return r.db.WithContext(ctx).Create(models.ShipmentModelFromDomain(shipment)).Error
}

// UpdateStatus writes the status columns and appends the log row
func (r *GormShipmentRepository) UpdateStatus(ctx context.Context, shipment *cargo.Shipment, log cargo.TrackingLog) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.ShipmentModel{}).
		Scopes(tenant.Scope(shipment.TenantID)).
		Where("id = ?", shipment.ID).
		Omit(clause.Associations).
		Updates(map[string]any{
			"status":       shipment.Status,
			"delivered_at": shipment.DeliveredAt,
			"version":      shipment.Version,
			"updated_at":   shipment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	row := models.TrackingLogModelFromDomain(log)
	return db.Create(&row).Error
}

var (
	_ cargo.BranchRepository   = (*GormBranchRepository)(nil)
	_ cargo.ShipmentRepository = (*GormShipmentRepository)(nil)
)
