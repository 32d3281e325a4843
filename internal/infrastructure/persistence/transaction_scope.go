package persistence

import (
	"context"

	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/cargo"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/partner"
	"github.com/travelerp/backend/internal/domain/report"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/tenant"
	"github.com/travelerp/backend/internal/domain/ticketing"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
// fn receives the transaction's context; repository calls must use it so that
// a deadline on ctx also interrupts statements waiting on locks.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos appshared.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx.Statement.Context, NewRepositories(tx))
	})
}

// GormRepositories hands out repositories bound to one *gorm.DB,
// either the pool or a transaction.
type GormRepositories struct {
	db *gorm.DB
}

// NewRepositories binds every repository to db
func NewRepositories(db *gorm.DB) *GormRepositories {
	return &GormRepositories{db: db}
}

func (r *GormRepositories) Tickets() ticketing.TicketRepository {
	return NewGormTicketRepository(r.db)
}

func (r *GormRepositories) Visas() ticketing.VisaRepository {
	return NewGormVisaRepository(r.db)
}

func (r *GormRepositories) Adjustments() ledger.AdjustmentRepository {
	return NewGormAdjustmentRepository(r.db)
}

func (r *GormRepositories) Campaigns() hajumrah.CampaignRepository {
	return NewGormCampaignRepository(r.db)
}

func (r *GormRepositories) Bookings() hajumrah.BookingRepository {
	return NewGormBookingRepository(r.db)
}

func (r *GormRepositories) Shipments() cargo.ShipmentRepository {
	return NewGormShipmentRepository(r.db)
}

func (r *GormRepositories) Branches() cargo.BranchRepository {
	return NewGormBranchRepository(r.db)
}

func (r *GormRepositories) Payments() ledger.PaymentRepository {
	return NewGormPaymentRepository(r.db)
}

func (r *GormRepositories) Payables() ledger.PayableRepository {
	return NewGormPayableRepository(r.db)
}

func (r *GormRepositories) Expenses() ledger.ExpenseRepository {
	return NewGormExpenseRepository(r.db)
}

func (r *GormRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.db)
}

func (r *GormRepositories) Rates() currency.RateRepository {
	return NewGormRateRepository(r.db)
}

func (r *GormRepositories) Tenants() tenant.Repository {
	return NewGormTenantRepository(r.db)
}

func (r *GormRepositories) Sequences() shared.SequenceGenerator {
	return NewGormSequenceGenerator(r.db)
}

func (r *GormRepositories) Reports() report.DataSource {
	return NewGormReportDataSource(r.db)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appshared.TransactionScope = (*GormTransactionScope)(nil)

// Ensure GormRepositories implements Repositories
var _ appshared.Repositories = (*GormRepositories)(nil)
