package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/report"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) LoadInputs(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*report.Inputs, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Inputs), args.Error(1)
}

func (m *MockDataSource) TenantActivity(ctx context.Context) ([]report.TenantActivity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.TenantActivity), args.Error(1)
}

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, actor appshared.Actor, capability appshared.Capability) error {
	return m.Called(ctx, actor, capability).Error(0)
}

type stubRepos struct {
	appshared.Repositories
	reports report.DataSource
}

func (r stubRepos) Reports() report.DataSource { return r.reports }

type staticRates map[uuid.UUID]*currency.Converter

func (s staticRates) Converter(_ context.Context, tenantID uuid.UUID) (*currency.Converter, error) {
	return s[tenantID], nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReportService_Summary_ConvertsBeforeSumming(t *testing.T) {
	ctx := context.Background()
	actor := appshared.Actor{TenantID: uuid.New(), UserID: uuid.New()}
	ds := new(MockDataSource)
	authz := new(MockAuthorizer)
	rates := staticRates{actor.TenantID: currency.NewConverterFromMap(map[string]decimal.Decimal{"JPY": decimal.NewFromInt(128)})}
	svc := NewReportService(appshared.Deps{Repos: stubRepos{reports: ds}, Authz: authz}, rates)

	authz.On("Authorize", mock.Anything, actor, appshared.CapReportRead).Return(nil)
	ds.On("LoadInputs", mock.Anything, actor.TenantID, day(2026, 3, 1), day(2026, 4, 1)).Return(&report.Inputs{
		Sales: []report.SaleRow{
			{SourceType: ledger.SourceTicket, Amount: decimal.NewFromInt(100), Currency: valueobject.USD, Date: day(2026, 3, 5)},
			{SourceType: ledger.SourceVisa, Amount: decimal.NewFromInt(12800), Currency: valueobject.JPY, Date: day(2026, 3, 20)},
		},
		Payments: []report.PaymentRow{
			{SourceType: ledger.SourceTicket, Status: ledger.PaymentStatusPending, Amount: decimal.NewFromInt(100), Currency: valueobject.USD, PaymentDate: day(2026, 3, 5)},
			{SourceType: ledger.SourceVisa, Status: ledger.PaymentStatusPending, Amount: decimal.NewFromInt(12800), Currency: valueobject.JPY, PaymentDate: day(2026, 3, 20)},
		},
	}, nil)

	summary, err := svc.Summary(ctx, actor, SummaryQuery{From: day(2026, 3, 1), To: day(2026, 3, 31), Granularity: "monthly"})

	require.NoError(t, err)
	require.Len(t, summary.Rows, 1)
	assert.Equal(t, "2026-03", summary.Rows[0].Period)
	assert.True(t, summary.Rows[0].Revenue.Equal(decimal.NewFromInt(200)), "got %s", summary.Rows[0].Revenue)
	assert.True(t, summary.Totals.Receivables.Equal(decimal.NewFromInt(200)))
}

func TestReportService_Summary_Validation(t *testing.T) {
	ctx := context.Background()
	actor := appshared.Actor{TenantID: uuid.New()}
	ds := new(MockDataSource)
	authz := new(MockAuthorizer)
	svc := NewReportService(appshared.Deps{Repos: stubRepos{reports: ds}, Authz: authz}, staticRates{})
	authz.On("Authorize", mock.Anything, actor, appshared.CapReportRead).Return(nil)

	_, err := svc.Summary(ctx, actor, SummaryQuery{From: day(2026, 3, 1), To: day(2026, 3, 31), Granularity: "weekly"})
	assert.ErrorIs(t, err, report.ErrInvalidGranularity)

	_, err = svc.Summary(ctx, actor, SummaryQuery{From: day(2026, 3, 31), To: day(2026, 3, 1)})
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	ds.AssertNotCalled(t, "LoadInputs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_PlatformOverview(t *testing.T) {
	ctx := context.Background()
	admin := appshared.Actor{TenantID: uuid.New(), UserID: uuid.New()}
	tenantA, tenantB := uuid.New(), uuid.New()

	t.Run("requires platform admin", func(t *testing.T) {
		ds := new(MockDataSource)
		authz := new(MockAuthorizer)
		svc := NewReportService(appshared.Deps{Repos: stubRepos{reports: ds}, Authz: authz}, staticRates{})
		authz.On("Authorize", mock.Anything, admin, appshared.CapPlatformAdmin).Return(shared.ErrForbidden)

		_, err := svc.PlatformOverview(ctx, admin)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		ds.AssertNotCalled(t, "TenantActivity", mock.Anything)
	})

	t.Run("converts with each tenant's rates", func(t *testing.T) {
		ds := new(MockDataSource)
		authz := new(MockAuthorizer)
		rates := staticRates{
			tenantA: currency.NewConverterFromMap(map[string]decimal.Decimal{"SAR": decimal.RequireFromString("3.75")}),
			tenantB: currency.NewConverterFromMap(map[string]decimal.Decimal{"SAR": decimal.NewFromInt(5)}),
		}
		svc := NewReportService(appshared.Deps{Repos: stubRepos{reports: ds}, Authz: authz}, rates)
		authz.On("Authorize", mock.Anything, admin, appshared.CapPlatformAdmin).Return(nil)
		ds.On("TenantActivity", mock.Anything).Return([]report.TenantActivity{
			{TenantID: tenantA, Code: "alpha", Tickets: 3, Receivables: []report.Balance{{Amount: decimal.NewFromInt(375), Currency: valueobject.SAR}}},
			{TenantID: tenantB, Code: "beta", Receivables: []report.Balance{{Amount: decimal.NewFromInt(375), Currency: valueobject.SAR}}},
		}, nil)

		resp, err := svc.PlatformOverview(ctx, admin)

		require.NoError(t, err)
		require.Len(t, resp.Tenants, 2)
		assert.Equal(t, int64(3), resp.Tenants[0].Tickets)
		assert.True(t, resp.Tenants[0].Receivables.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.Tenants[1].Receivables.Equal(decimal.NewFromInt(75)))
	})
}
