package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"github.com/travelerp/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func preloadReceipts(db *gorm.DB) *gorm.DB {
	return db.Preload("Receipts", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC, created_at ASC")
	})
}

// FindByID loads a payment with its receipts
func (r *GormPaymentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Payment, error) {
	var model models.PaymentModel
	if err := preloadReceipts(r.db.WithContext(ctx)).
		Scopes(tenant.Scope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindActiveBySource returns the live payment of a booking
func (r *GormPaymentRepository) FindActiveBySource(ctx context.Context, tenantID uuid.UUID, source ledger.Source) (*ledger.Payment, error) {
	var model models.PaymentModel
	if err := preloadReceipts(r.db.WithContext(ctx)).
		Scopes(tenant.Scope(tenantID)).
		Where("source_type = ? AND source_id = ? AND status <> ?", source.Type, source.ID, ledger.PaymentStatusRefunded).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindBySource returns every payment of a booking, oldest first
func (r *GormPaymentRepository) FindBySource(ctx context.Context, tenantID uuid.UUID, source ledger.Source) ([]ledger.Payment, error) {
	var rows []models.PaymentModel
	if err := preloadReceipts(r.db.WithContext(ctx)).
		Scopes(tenant.Scope(tenantID)).
		Where("source_type = ? AND source_id = ?", source.Type, source.ID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(rows), nil
}

// FindAll lists payments with their receipts
func (r *GormPaymentRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter ledger.PaymentFilter) ([]ledger.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SourceType != nil {
		query = query.Where("source_type = ?", *filter.SourceType)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.From != nil {
		query = query.Where("payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payment_date < ?", filter.To.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PaymentModel
	if err := preloadReceipts(paginate(query, filter.Filter, PaymentSortFields, "payment_date")).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return paymentsToDomain(rows), total, nil
}

// Save creates or updates the payment row only
func (r *GormPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	return tenant.Save(r.db.WithContext(ctx).Omit(clause.Associations), payment.TenantID, models.PaymentModelFromDomain(payment))
}

// AddReceipt inserts a receipt row
func (r *GormPaymentRepository) AddReceipt(ctx context.Context, receipt *ledger.Receipt) error {
	return r.db.WithContext(ctx).Create(models.ReceiptModelFromDomain(receipt)).Error
}

func paymentsToDomain(rows []models.PaymentModel) []ledger.Payment {
	payments := make([]ledger.Payment, len(rows))
	for i, m := range rows {
		payments[i] = *m.ToDomain()
	}
	return payments
}

// GormPayableRepository implements PayableRepository using GORM
type GormPayableRepository struct {
	db *gorm.DB
}

// NewGormPayableRepository creates a new GormPayableRepository
func NewGormPayableRepository(db *gorm.DB) *GormPayableRepository {
	return &GormPayableRepository{db: db}
}

// FindByID finds a payable by ID within a tenant
func (r *GormPayableRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Payable, error) {
	var model models.PayableModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindActiveBySource returns the live payable of a booking
func (r *GormPayableRepository) FindActiveBySource(ctx context.Context, tenantID uuid.UUID, source ledger.Source) (*ledger.Payable, error) {
	var model models.PayableModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("source_type = ? AND source_id = ? AND canceled_at IS NULL", source.Type, source.ID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindBySource returns every payable of a booking, oldest first
func (r *GormPayableRepository) FindBySource(ctx context.Context, tenantID uuid.UUID, source ledger.Source) ([]ledger.Payable, error) {
	var rows []models.PayableModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("source_type = ? AND source_id = ?", source.Type, source.ID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return payablesToDomain(rows), nil
}

// FindAll lists payables; ActiveOnly drops canceled rows
func (r *GormPayableRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter ledger.PayableFilter) ([]ledger.Payable, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PayableModel{}).Scopes(tenant.Scope(tenantID))
	if filter.SourceType != nil {
		query = query.Where("source_type = ?", *filter.SourceType)
	}
	if filter.ActiveOnly {
		query = query.Where("canceled_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PayableModel
	if err := paginate(query, filter.Filter, PayableSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return payablesToDomain(rows), total, nil
}

// Save creates or updates a payable
func (r *GormPayableRepository) Save(ctx context.Context, payable *ledger.Payable) error {
	return tenant.Save(r.db.WithContext(ctx), payable.TenantID, models.PayableModelFromDomain(payable))
}

func payablesToDomain(rows []models.PayableModel) []ledger.Payable {
	payables := make([]ledger.Payable, len(rows))
	for i, m := range rows {
		payables[i] = *m.ToDomain()
	}
	return payables
}

var (
	_ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
	_ ledger.PayableRepository = (*GormPayableRepository)(nil)
)
