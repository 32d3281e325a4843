package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/ticketing"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"github.com/travelerp/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormTicketRepository implements TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by ID within a tenant
func (r *GormTicketRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ticketing.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists tickets by issue date range, customer and free-text search
func (r *GormTicketRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter ticketing.SaleFilter) ([]ticketing.Ticket, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).Scopes(tenant.Scope(tenantID))
	query = applySaleFilter(query, filter, "issue_date")
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(ticket_number) LIKE ? OR LOWER(passenger_name) LIKE ? OR LOWER(reference) LIKE ?",
			like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ticketModels []models.TicketModel
	if err := paginate(query, filter.Filter, TicketSortFields, "created_at").Find(&ticketModels).Error; err != nil {
		return nil, 0, err
	}
	tickets := make([]ticketing.Ticket, len(ticketModels))
	for i, m := range ticketModels {
		tickets[i] = *m.ToDomain()
	}
	return tickets, total, nil
}

// Save creates or updates a ticket
func (r *GormTicketRepository) Save(ctx context.Context, ticket *ticketing.Ticket) error {
	return tenant.Save(r.db.WithContext(ctx), ticket.TenantID, models.TicketModelFromDomain(ticket))
}

// GormVisaRepository implements VisaRepository using GORM
type GormVisaRepository struct {
	db *gorm.DB
}

// NewGormVisaRepository creates a new GormVisaRepository
func NewGormVisaRepository(db *gorm.DB) *GormVisaRepository {
	return &GormVisaRepository{db: db}
}

// FindByID finds a visa by ID within a tenant
func (r *GormVisaRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ticketing.Visa, error) {
	var model models.VisaModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists visas by creation date range, customer and free-text search
func (r *GormVisaRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter ticketing.SaleFilter) ([]ticketing.Visa, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.VisaModel{}).Scopes(tenant.Scope(tenantID))
	query = applySaleFilter(query, filter, "created_at")
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(visa_number) LIKE ? OR LOWER(applicant_name) LIKE ? OR LOWER(passport_number) LIKE ?",
			like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var visaModels []models.VisaModel
	if err := paginate(query, filter.Filter, VisaSortFields, "created_at").Find(&visaModels).Error; err != nil {
		return nil, 0, err
	}
	visas := make([]ticketing.Visa, len(visaModels))
	for i, m := range visaModels {
		visas[i] = *m.ToDomain()
	}
	return visas, total, nil
}

// Save creates or updates a visa
func (r *GormVisaRepository) Save(ctx context.Context, visa *ticketing.Visa) error {
	return tenant.Save(r.db.WithContext(ctx), visa.TenantID, models.VisaModelFromDomain(visa))
}

// applySaleFilter treats From and To as inclusive calendar days
func applySaleFilter(query *gorm.DB, filter ticketing.SaleFilter, dateColumn string) *gorm.DB {
	if !filter.IncludeCanceled {
		query = query.Where("canceled_at IS NULL")
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.From != nil {
		query = query.Where(dateColumn+" >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where(dateColumn+" < ?", filter.To.AddDate(0, 0, 1))
	}
	return query
}

var (
	_ ticketing.TicketRepository = (*GormTicketRepository)(nil)
	_ ticketing.VisaRepository   = (*GormVisaRepository)(nil)
)
