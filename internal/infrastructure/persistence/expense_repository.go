package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"github.com/travelerp/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID within a tenant
func (r *GormExpenseRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists expenses by status and inclusive date range
func (r *GormExpenseRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter ledger.ExpenseFilter) ([]ledger.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("expense_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("expense_date < ?", filter.To.AddDate(0, 0, 1))
	}
	if category, ok := filter.Filters["category"].(string); ok && category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ExpenseModel
	if err := paginate(query, filter.Filter, ExpenseSortFields, "expense_date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	expenses := make([]ledger.Expense, len(rows))
	for i, m := range rows {
		expenses[i] = *m.ToDomain()
	}
	return expenses, total, nil
}

// FindPendingInMonth returns the pending expenses dated in one calendar month, oldest first
func (r *GormExpenseRepository) FindPendingInMonth(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) ([]ledger.Expense, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var rows []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("status = ? AND expense_date >= ? AND expense_date < ?", ledger.ExpenseStatusPending, start, start.AddDate(0, 1, 0)).
		Order("expense_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	expenses := make([]ledger.Expense, len(rows))
	for i, m := range rows {
		expenses[i] = *m.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *ledger.Expense) error {
	return tenant.Save(r.db.WithContext(ctx), expense.TenantID, models.ExpenseModelFromDomain(expense))
}

var _ ledger.ExpenseRepository = (*GormExpenseRepository)(nil)
