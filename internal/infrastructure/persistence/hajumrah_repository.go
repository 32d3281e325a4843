package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"github.com/travelerp/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCampaignRepository implements CampaignRepository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewGormCampaignRepository creates a new GormCampaignRepository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// FindByID finds a campaign by ID within a tenant
func (r *GormCampaignRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*hajumrah.Campaign, error) {
	var model models.CampaignModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists campaigns; filter.Filters["status"] and ["type"] narrow the result
func (r *GormCampaignRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]hajumrah.Campaign, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CampaignModel{}).Scopes(tenant.Scope(tenantID))
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if typ, ok := filter.Filters["type"].(string); ok && typ != "" {
		query = query.Where("type = ?", typ)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CampaignModel
	if err := paginate(query, filter, CampaignSortFields, "date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	campaigns := make([]hajumrah.Campaign, len(rows))
	for i, m := range rows {
		campaigns[i] = *m.ToDomain()
	}
	return campaigns, total, nil
}

// Save creates or updates a campaign
func (r *GormCampaignRepository) Save(ctx context.Context, campaign *hajumrah.Campaign) error {
	return tenant.Save(r.db.WithContext(ctx), campaign.TenantID, models.CampaignModelFromDomain(campaign))
}

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func preloadPackages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByID loads a booking with its packages
func (r *GormBookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*hajumrah.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Packages", preloadPackages).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists bookings with their packages
func (r *GormBookingRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter hajumrah.BookingFilter) ([]hajumrah.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BookingModel{}).Scopes(tenant.Scope(tenantID))
	if filter.CampaignID != nil {
		query = query.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(booking_number) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.BookingModel
	if err := paginate(query, filter.Filter, BookingSortFields, "created_at").
		Preload("Packages", preloadPackages).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return bookingsToDomain(rows), total, nil
}

// FindByCampaign loads every booking of a campaign
func (r *GormBookingRepository) FindByCampaign(ctx context.Context, tenantID, campaignID uuid.UUID) ([]hajumrah.Booking, error) {
	var rows []models.BookingModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("campaign_id = ?", campaignID).
		Preload("Packages", preloadPackages).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return bookingsToDomain(rows), nil
}

// ExistsActive reports whether the customer already holds a live booking on the campaign
func (r *GormBookingRepository) ExistsActive(ctx context.Context, tenantID, customerID, campaignID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("customer_id = ? AND campaign_id = ? AND status <> ?", customerID, campaignID, hajumrah.BookingStatusCanceled)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save writes the booking row and replaces its packages
func (r *GormBookingRepository) Save(ctx context.Context, booking *hajumrah.Booking) error {
	model := models.BookingModelFromDomain(booking)
	db := r.db.WithContext(ctx)
	if err := tenant.Save(db.Omit(clause.Associations), booking.TenantID, model); err != nil {
		// idx_bookings_active_customer_campaign catches a concurrent duplicate
		if errors.Is(err, gorm.ErrDuplicatedKey) && booking.CampaignID != nil && booking.IsActive() {
			return hajumrah.ErrDuplicateBooking
		}
		return err
	}
	if err := db.Scopes(tenant.Scope(booking.TenantID)).
		Where("booking_id = ?", booking.ID).
		Delete(&models.BookingPackageModel{}).Error; err != nil {
		return err
	}
	if len(model.Packages) == 0 {
		return nil
	}
	return db.Create(&model.Packages).Error
}

func bookingsToDomain(rows []models.BookingModel) []hajumrah.Booking {
	bookings := make([]hajumrah.Booking, len(rows))
	for i, m := range rows {
		bookings[i] = *m.ToDomain()
	}
	return bookings
}

var (
	_ hajumrah.CampaignRepository = (*GormCampaignRepository)(nil)
	_ hajumrah.BookingRepository  = (*GormBookingRepository)(nil)
)
