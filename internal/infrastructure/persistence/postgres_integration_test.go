//go:build integration

package persistence_test

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	appshared "github.com/travelerp/backend/internal/application/shared"
	ticketingapp "github.com/travelerp/backend/internal/application/ticketing"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/partner"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/tenant"
	"github.com/travelerp/backend/internal/infrastructure/migration"
	"github.com/travelerp/backend/internal/infrastructure/persistence"
	"github.com/travelerp/backend/migrations"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pgDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
}

// newPostgres starts a throwaway PostgreSQL container and applies the embedded migrations
func newPostgres(t *testing.T) *pgDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("travelerp_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return &pgDB{DB: db, SqlDB: sqlDB}
}

func seedTenant(t *testing.T, db *gorm.DB, code string) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.NewTenant(code, code)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormTenantRepository(db).Save(context.Background(), tn))
	return tn
}

func TestPostgres_MigrationsRoundTrip(t *testing.T) {
	pg := newPostgres(t)

	m, err := migration.New(pg.SqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	require.NoError(t, m.Down())
	var tables int64
	require.NoError(t, pg.DB.Raw(`SELECT count(*) FROM pg_tables WHERE schemaname = 'public' AND tablename = 'payments'`).Scan(&tables).Error)
	assert.Zero(t, tables)

	require.NoError(t, m.Up())
	require.NoError(t, pg.DB.Raw(`SELECT count(*) FROM pg_tables WHERE schemaname = 'public' AND tablename = 'payments'`).Scan(&tables).Error)
	assert.Equal(t, int64(1), tables)
}

func TestPostgres_SequenceIsAtomicUnderConcurrency(t *testing.T) {
	pg := newPostgres(t)
	tn := seedTenant(t, pg.DB, "acme-travel")
	seq := persistence.NewGormSequenceGenerator(pg.DB)

	const callers = 25
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values []int64
		errs   []error
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(context.Background(), tn.ID, "ticket")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			values = append(values, v)
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for i, v := range values {
		assert.Equal(t, int64(i+1), v)
	}

	// another sequence name starts over
	v, err := seq.Next(context.Background(), tn.ID, "visa")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestPostgres_LedgerRepositories(t *testing.T) {
	pg := newPostgres(t)
	ctx := context.Background()
	tn := seedTenant(t, pg.DB, "acme-travel")
	other := seedTenant(t, pg.DB, "globex")
	repos := persistence.NewRepositories(pg.DB)

	source := ledger.NewSource(ledger.SourceTicket, uuid.New())
	payment, err := ledger.NewPayment(tn.ID, source, ledger.PaymentTerms{
		PayerName: "Alice",
		Amount:    decimal.NewFromInt(800),
	})
	require.NoError(t, err)
	require.NoError(t, repos.Payments().Save(ctx, payment))

	receipt, err := payment.AddReceipt(decimal.NewFromInt(300), time.Now(), ledger.ReceiptMethodCash, "R-1", nil)
	require.NoError(t, err)
	require.NoError(t, repos.Payments().AddReceipt(ctx, receipt))
	require.NoError(t, repos.Payments().Save(ctx, payment))

	active, err := repos.Payments().FindActiveBySource(ctx, tn.ID, source)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, active.ID)
	assert.Equal(t, ledger.PaymentStatusPartial, active.Status)
	require.Len(t, active.Receipts, 1)
	assert.True(t, active.Balance().Equal(decimal.NewFromInt(500)))

	_, err = repos.Payments().FindByID(ctx, other.ID, payment.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, active.MarkRefunded(time.Now()))
	require.NoError(t, repos.Payments().Save(ctx, active))
	_, err = repos.Payments().FindActiveBySource(ctx, tn.ID, source)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	rate, err := currency.NewRate(tn.ID, "BDT", decimal.NewFromInt(120))
	require.NoError(t, err)
	require.NoError(t, repos.Rates().Upsert(ctx, rate))
	replacement, err := currency.NewRate(tn.ID, "BDT", decimal.NewFromInt(128))
	require.NoError(t, err)
	require.NoError(t, repos.Rates().Upsert(ctx, replacement))

	rates, err := repos.Rates().FindAllForTenant(ctx, tn.ID)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.True(t, rates[0].UnitsPerUSD.Equal(decimal.NewFromInt(128)))
}

func TestPostgres_TicketServiceNumbersPerTenant(t *testing.T) {
	pg := newPostgres(t)
	ctx := context.Background()
	acme := seedTenant(t, pg.DB, "acme-travel")
	globex := seedTenant(t, pg.DB, "globex")

	deps := appshared.Deps{
		Tx:    persistence.NewGormTransactionScope(pg.DB),
		Repos: persistence.NewRepositories(pg.DB),
		Authz: allowAll{},
	}.WithDefaults()
	svc := ticketingapp.NewTicketService(deps)

	create := func(tn *tenant.Tenant, ref string) string {
		resp, err := svc.Create(ctx, appshared.Actor{TenantID: tn.ID, UserID: uuid.New()}, ticketingapp.TicketRequest{
			Reference: ref,
			NetCost:   decimal.NewFromInt(100),
			NetSales:  decimal.NewFromInt(150),
		})
		require.NoError(t, err)
		return resp.TicketNumber
	}

	for i := 1; i <= 3; i++ {
		assert.Equal(t, fmt.Sprintf("TKT-%06d", i), create(acme, fmt.Sprintf("A-%d", i)))
	}
	assert.Equal(t, "TKT-000001", create(globex, "G-1"))
}

func TestPostgres_OneActiveBookingPerCustomerAndCampaign(t *testing.T) {
	pg := newPostgres(t)
	ctx := context.Background()
	tn := seedTenant(t, pg.DB, "acme-travel")
	repos := persistence.NewRepositories(pg.DB)

	customer, err := partner.NewCustomer(tn.ID, "Amina Yusuf")
	require.NoError(t, err)
	require.NoError(t, repos.Customers().Save(ctx, customer))
	campaign, err := hajumrah.NewCampaign(tn.ID, hajumrah.CampaignDetails{
		Name: "Umrah Ramadan", Type: hajumrah.CampaignTypeUmrah, Date: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	require.NoError(t, repos.Campaigns().Save(ctx, campaign))
	campaignID := campaign.ID

	book := func(number string) *hajumrah.Booking {
		b, _, err := hajumrah.NewBooking(tn.ID, number, hajumrah.BookingDetails{
			CustomerID: customer.ID,
			CampaignID: &campaignID,
			Packages:   []hajumrah.PackageLine{{Name: "Hotel", Amount: decimal.NewFromInt(600)}},
		}, campaign, time.Now())
		require.NoError(t, err)
		return b
	}

	first := book("HU-000001")
	require.NoError(t, repos.Bookings().Save(ctx, first))
	assert.ErrorIs(t, repos.Bookings().Save(ctx, book("HU-000002")), hajumrah.ErrDuplicateBooking)

	first.Status = hajumrah.BookingStatusCanceled
	require.NoError(t, repos.Bookings().Save(ctx, first))
	assert.NoError(t, repos.Bookings().Save(ctx, book("HU-000003")))
}

type allowAll struct{}

func (allowAll) Authorize(context.Context, appshared.Actor, appshared.Capability) error {
	return nil
}
