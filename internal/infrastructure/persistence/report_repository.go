package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/report"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"github.com/travelerp/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormReportDataSource implements report.DataSource with read-only queries
type GormReportDataSource struct {
	db *gorm.DB
}

// NewGormReportDataSource creates a new GormReportDataSource
func NewGormReportDataSource(db *gorm.DB) *GormReportDataSource {
	return &GormReportDataSource{db: db}
}

// paymentBalanceRow is a payment with the sum of its receipts
type paymentBalanceRow struct {
	TenantID    uuid.UUID
	SourceType  ledger.SourceType
	Status      ledger.PaymentStatus
	Amount      decimal.Decimal
	Received    decimal.Decimal
	Currency    valueobject.Currency
	PaymentDate time.Time
}

func (r *GormReportDataSource) paymentBalances(db *gorm.DB) *gorm.DB {
	return db.Table("payments").
		Select("payments.id, payments.tenant_id, payments.source_type, payments.status, payments.amount, payments.currency, payments.payment_date, " +
			"COALESCE(SUM(receipts.amount), 0) AS received").
		Joins("LEFT JOIN receipts ON receipts.payment_id = payments.id").
		Group("payments.id, payments.tenant_id, payments.source_type, payments.status, payments.amount, payments.currency, payments.payment_date")
}

// datedBy matches rows whose first non-null date column falls in [from, to)
func datedBy(from, to time.Time, columns ...string) (string, []any) {
	var (
		sql  strings.Builder
		args []any
	)
	sql.WriteString("(")
	for i, col := range columns {
		if i > 0 {
			sql.WriteString(" OR ")
		}
		sql.WriteString("(")
		for _, prev := range columns[:i] {
			sql.WriteString(prev + " IS NULL AND ")
		}
		sql.WriteString(col + " >= ? AND " + col + " < ?)")
		args = append(args, from, to)
	}
	sql.WriteString(")")
	return sql.String(), args
}

type bookingSaleRow struct {
	ID           uuid.UUID
	Profit       decimal.Decimal
	Currency     valueobject.Currency
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
	CampaignDate *time.Time
}

// loadSales reads live tickets and visas and confirmed Haj/Umrah bookings
// whose payment date falls in [from, to)
func (r *GormReportDataSource) loadSales(db *gorm.DB, tenantID uuid.UUID, from, to time.Time) ([]report.SaleRow, error) {
	var sales []report.SaleRow

	var tickets []models.TicketModel
	where, args := datedBy(from, to, "departure_date", "return_date", "created_at")
	if err := db.Select("net_sales", "currency", "departure_date", "return_date", "created_at").
		Scopes(tenant.Scope(tenantID)).
		Where("canceled_at IS NULL").
		Where(where, args...).
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	for _, t := range tickets {
		sales = append(sales, report.SaleRow{
			SourceType: ledger.SourceTicket,
			Amount:     t.NetSales,
			Currency:   t.Currency,
			Date:       ledger.TicketPaymentDate(t.DepartureDate, t.ReturnDate, t.CreatedAt),
		})
	}

	var visas []models.VisaModel
	where, args = datedBy(from, to, "travel_date", "created_at")
	if err := db.Select("net_sales", "currency", "travel_date", "created_at").
		Scopes(tenant.Scope(tenantID)).
		Where("canceled_at IS NULL").
		Where(where, args...).
		Find(&visas).Error; err != nil {
		return nil, err
	}
	for _, v := range visas {
		sales = append(sales, report.SaleRow{
			SourceType: ledger.SourceVisa,
			Amount:     v.NetSales,
			Currency:   v.Currency,
			Date:       ledger.TicketPaymentDate(v.TravelDate, nil, v.CreatedAt),
		})
	}

	var bookings []bookingSaleRow
	where, args = datedBy(from, to, "campaigns.date", "haj_umrah_bookings.confirmed_at", "haj_umrah_bookings.created_at")
	if err := db.Table("haj_umrah_bookings").
		Select("haj_umrah_bookings.id, haj_umrah_bookings.profit, haj_umrah_bookings.currency, " +
			"haj_umrah_bookings.confirmed_at, haj_umrah_bookings.created_at, campaigns.date AS campaign_date").
		Joins("LEFT JOIN campaigns ON campaigns.id = haj_umrah_bookings.campaign_id").
		Scopes(tenant.ScopeTable("haj_umrah_bookings", tenantID)).
		Where("haj_umrah_bookings.status = ?", hajumrah.BookingStatusConfirmed).
		Where(where, args...).
		Scan(&bookings).Error; err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return sales, nil
	}

	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	var totals []struct {
		BookingID uuid.UUID
		Total     decimal.Decimal
	}
	if err := db.Table("haj_umrah_packages").
		Select("booking_id, COALESCE(SUM(amount), 0) AS total").
		Scopes(tenant.Scope(tenantID)).
		Where("booking_id IN ?", ids).
		Group("booking_id").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	packages := make(map[uuid.UUID]decimal.Decimal, len(totals))
	for _, t := range totals {
		packages[t.BookingID] = t.Total
	}
	for _, b := range bookings {
		sales = append(sales, report.SaleRow{
			SourceType: ledger.SourceHajUmrahBooking,
			Amount:     packages[b.ID].Add(b.Profit),
			Currency:   b.Currency,
			Date:       hajumrah.PaymentDate(b.CampaignDate, b.ConfirmedAt, b.CreatedAt),
		})
	}
	return sales, nil
}

// LoadInputs reads one tenant's ledger rows dated in [from, to)
func (r *GormReportDataSource) LoadInputs(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*report.Inputs, error) {
	db := r.db.WithContext(ctx)
	in := &report.Inputs{}

	sales, err := r.loadSales(db, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	in.Sales = sales

	var payments []paymentBalanceRow
	if err := r.paymentBalances(db).
		Scopes(tenant.ScopeTable("payments", tenantID)).
		Where("payments.payment_date >= ? AND payments.payment_date < ?", from, to).
		Scan(&payments).Error; err != nil {
		return nil, err
	}
	in.Payments = make([]report.PaymentRow, len(payments))
	for i, p := range payments {
		in.Payments[i] = report.PaymentRow{
			SourceType:  p.SourceType,
			Status:      p.Status,
			Amount:      p.Amount,
			Received:    p.Received,
			Currency:    p.Currency,
			PaymentDate: p.PaymentDate,
		}
	}

	var receipts []struct {
		Amount   decimal.Decimal
		Currency valueobject.Currency
		Date     time.Time
	}
	if err := db.Table("receipts").
		Select("receipts.amount, payments.currency, receipts.date").
		Joins("JOIN payments ON payments.id = receipts.payment_id").
		Scopes(tenant.ScopeTable("receipts", tenantID)).
		Where("receipts.date >= ? AND receipts.date < ?", from, to).
		Scan(&receipts).Error; err != nil {
		return nil, err
	}
	in.Receipts = make([]report.ReceiptRow, len(receipts))
	for i, rc := range receipts {
		in.Receipts[i] = report.ReceiptRow{Amount: rc.Amount, Currency: rc.Currency, Date: rc.Date}
	}

	var expenses []models.ExpenseModel
	if err := db.Select("amount", "currency", "status", "expense_date").
		Scopes(tenant.Scope(tenantID)).
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	in.Expenses = make([]report.ExpenseRow, len(expenses))
	for i, e := range expenses {
		in.Expenses[i] = report.ExpenseRow{Amount: e.Amount, Currency: e.Currency, Status: e.Status, Date: e.ExpenseDate}
	}

	var payables []models.PayableModel
	if err := db.Select("balance", "currency", "canceled_at", "created_at").
		Scopes(tenant.Scope(tenantID)).
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&payables).Error; err != nil {
		return nil, err
	}
	in.Payables = make([]report.PayableRow, len(payables))
	for i, p := range payables {
		in.Payables[i] = report.PayableRow{
			Balance:   p.Balance,
			Currency:  p.Currency,
			Canceled:  p.CanceledAt != nil,
			CreatedAt: p.CreatedAt,
		}
	}
	return in, nil
}

type tenantCount struct {
	TenantID uuid.UUID
	Count    int64
}

func (r *GormReportDataSource) countByTenant(db *gorm.DB, table, where string) (map[uuid.UUID]int64, error) {
	var rows []tenantCount
	query := db.Table(table).Select("tenant_id, COUNT(*) AS count").Group("tenant_id")
	if where != "" {
		query = query.Where(where)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.TenantID] = row.Count
	}
	return counts, nil
}

// TenantActivity reads live booking counts and open payment balances of every tenant
func (r *GormReportDataSource) TenantActivity(ctx context.Context) ([]report.TenantActivity, error) {
	db := r.db.WithContext(ctx)

	var tenants []models.TenantModel
	if err := db.Order("code ASC").Find(&tenants).Error; err != nil {
		return nil, err
	}

	tickets, err := r.countByTenant(db, "tickets", "canceled_at IS NULL")
	if err != nil {
		return nil, err
	}
	visas, err := r.countByTenant(db, "visas", "canceled_at IS NULL")
	if err != nil {
		return nil, err
	}
	bookings, err := r.countByTenant(db, "haj_umrah_bookings", "canceled_at IS NULL")
	if err != nil {
		return nil, err
	}
	shipments, err := r.countByTenant(db, "cargo_shipments", "")
	if err != nil {
		return nil, err
	}

	var balances []paymentBalanceRow
	if err := r.paymentBalances(db).
		Where("payments.status <> ?", ledger.PaymentStatusRefunded).
		Scan(&balances).Error; err != nil {
		return nil, err
	}
	receivables := make(map[uuid.UUID][]report.Balance)
	for _, b := range balances {
		receivables[b.TenantID] = append(receivables[b.TenantID], report.Balance{
			Amount:   b.Amount.Sub(b.Received),
			Currency: b.Currency,
		})
	}

	out := make([]report.TenantActivity, len(tenants))
	for i, t := range tenants {
		out[i] = report.TenantActivity{
			TenantID:    t.ID,
			Code:        t.Code,
			Name:        t.Name,
			Tickets:     tickets[t.ID],
			Visas:       visas[t.ID],
			Bookings:    bookings[t.ID],
			Shipments:   shipments[t.ID],
			Receivables: receivables[t.ID],
		}
	}
	return out, nil
}

var _ report.DataSource = (*GormReportDataSource)(nil)
