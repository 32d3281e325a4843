package shared

import (
	"context"

	"github.com/travelerp/backend/internal/domain/cargo"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/partner"
	"github.com/travelerp/backend/internal/domain/report"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/tenant"
	"github.com/travelerp/backend/internal/domain/ticketing"
)

// TransactionScope provides transactional access to the repositories.
// Everything done through repos inside fn commits or rolls back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// fn must use the ctx it is given for every repository call.
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Repositories provides access to every repository. Inside Execute all of
// them share one transaction; outside they read from the pool.
type Repositories interface {
	Tickets() ticketing.TicketRepository
	Visas() ticketing.VisaRepository
	Adjustments() ledger.AdjustmentRepository
	Campaigns() hajumrah.CampaignRepository
	Bookings() hajumrah.BookingRepository
	Shipments() cargo.ShipmentRepository
	Branches() cargo.BranchRepository
	Payments() ledger.PaymentRepository
	Payables() ledger.PayableRepository
	Expenses() ledger.ExpenseRepository
	Customers() partner.CustomerRepository
	Rates() currency.RateRepository
	Tenants() tenant.Repository
	Sequences() shared.SequenceGenerator
	Reports() report.DataSource
}

// Reconciler returns a ledger reconciler bound to repos
func Reconciler(repos Repositories) *ledger.Reconciler {
	return ledger.NewReconciler(repos.Payments(), repos.Payables())
}
