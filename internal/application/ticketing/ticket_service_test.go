package ticketing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/internal/application/finance"
	reportapp "github.com/travelerp/backend/internal/application/report"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/ticketing"
	"github.com/travelerp/backend/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func ticketRequest(h *testutil.Harness, t *testing.T, cost, sales string) TicketRequest {
	alice := h.AddCustomer(t, h.Tenant, "Alice")
	departure := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	return TicketRequest{
		Reference:     "VN1",
		CustomerID:    &alice.ID,
		PassengerName: "Alice Smith",
		Airline:       "Vietnam Airlines",
		Route:         "HAN-SGN",
		DepartureDate: &departure,
		SupplierName:  "Consolidator Ltd",
		NetCost:       dec(cost),
		NetSales:      dec(sales),
	}
}

func TestTicketService_Create_RaisesPaymentAndPayable(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	resp, err := svc.Create(ctx, h.Actor, ticketRequest(h, t, "500", "800"))
	require.NoError(t, err)

	assert.Equal(t, "TKT-000001", resp.TicketNumber)
	assertDecimal(t, "300", resp.Profit)
	assert.Equal(t, "USD", resp.Currency)
	require.NotNil(t, resp.Ledger)
	require.NotNil(t, resp.Ledger.Payable)
	require.NotNil(t, resp.Ledger.Payment)
	assertDecimal(t, "500", resp.Ledger.Payable.Amount)
	assertDecimal(t, "500", resp.Ledger.Payable.Balance)
	assertDecimal(t, "800", resp.Ledger.Payment.Amount)
	assert.Equal(t, "pending", resp.Ledger.Payment.Status)
	assert.True(t, resp.Ledger.Payment.PaymentDate.Equal(*resp.DepartureDate), "payment falls due on departure")
}

func TestTicketService_Create_WithoutCustomerRaisesOnlyPayable(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)

	resp, err := svc.Create(context.Background(), h.Actor, TicketRequest{
		Reference: "WALKIN", PassengerName: "Bob", NetCost: dec("100"), NetSales: dec("150"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Ledger)
	assert.NotNil(t, resp.Ledger.Payable)
	assert.Nil(t, resp.Ledger.Payment)
	assert.Equal(t, []string{ledger.EventTypePayableCreated}, h.Events.Types())
}

func TestTicketService_Create_RejectsUnderwaterSale(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	_, err := svc.Create(ctx, h.Actor, ticketRequest(h, t, "800", "500"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ticketing.ErrNetSalesBelowCost)

	_, total, err := svc.List(ctx, h.Actor, SaleListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total, "no ticket row may be written")
	assert.Empty(t, h.Events.Types())
}

func TestTicketService_ScenarioA_EditBeforeReceipts(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	req := ticketRequest(h, t, "500", "800")
	created, err := svc.Create(ctx, h.Actor, req)
	require.NoError(t, err)

	req.NetSales = dec("750")
	edited, err := svc.Edit(ctx, h.Actor, created.ID, req)
	require.NoError(t, err)

	assertDecimal(t, "750", edited.NetSales)
	require.NotNil(t, edited.Ledger.Payment)
	assert.Equal(t, created.Ledger.Payment.ID, edited.Ledger.Payment.ID, "payment is synced in place")
	assertDecimal(t, "750", edited.Ledger.Payment.Amount)
	assertDecimal(t, "750", edited.Ledger.Payment.Balance)
}

func TestTicketService_ScenarioB_EditBelowReceivedIsRejected(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	payments := finance.NewPaymentService(h.Deps)
	ctx := context.Background()

	req := ticketRequest(h, t, "500", "750")
	created, err := svc.Create(ctx, h.Actor, req)
	require.NoError(t, err)

	paid, err := payments.AddReceipt(ctx, h.Actor, created.Ledger.Payment.ID, finance.AddReceiptRequest{
		Amount: dec("750"), Method: "cash",
	})
	require.NoError(t, err)
	assertDecimal(t, "0", paid.Balance)
	assert.Equal(t, "paid", paid.Status)

	req.NetSales = dec("600")
	_, err = svc.Edit(ctx, h.Actor, created.ID, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrBelowReceived)

	after, err := svc.GetByID(ctx, h.Actor, created.ID)
	require.NoError(t, err)
	assertDecimal(t, "750", after.NetSales, "the failed edit must roll back")
	assertDecimal(t, "750", after.Ledger.Payment.Amount)
	assert.Equal(t, created.Version, after.Version)
}

func TestTicketService_RepeatedEditsKeepOneActiveRow(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	req := ticketRequest(h, t, "100", "200")
	created, err := svc.Create(ctx, h.Actor, req)
	require.NoError(t, err)

	for _, sales := range []string{"250", "300", "210"} {
		req.NetSales = dec(sales)
		_, err := svc.Edit(ctx, h.Actor, created.ID, req)
		require.NoError(t, err)
	}

	source := ledger.NewSource(ledger.SourceTicket, created.ID)
	all, err := h.Deps.Repos.Payments().FindBySource(ctx, h.Tenant.ID, source)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assertDecimal(t, "210", all[0].Amount)

	payables, err := h.Deps.Repos.Payables().FindBySource(ctx, h.Tenant.ID, source)
	require.NoError(t, err)
	assert.Len(t, payables, 1)
}

func TestTicketService_Adjust_RecordsHistory(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	created, err := svc.Create(ctx, h.Actor, ticketRequest(h, t, "500", "800"))
	require.NoError(t, err)

	adjusted, err := svc.Adjust(ctx, h.Actor, created.ID, AdjustTicketRequest{
		NetCost: dec("520"), NetSales: dec("900"), Reason: "date change fee",
	})
	require.NoError(t, err)
	assertDecimal(t, "900", adjusted.Ledger.Payment.Amount)
	assertDecimal(t, "520", adjusted.Ledger.Payable.Amount)

	history, err := svc.ListAdjustments(ctx, h.Actor, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assertDecimal(t, "800", history[0].PreviousNetSales)
	assertDecimal(t, "900", history[0].NewNetSales)
	assertDecimal(t, "100", history[0].SalesDelta)
	assert.Equal(t, "date change fee", history[0].Reason)
	require.NotNil(t, history[0].CreatedBy)
	assert.Equal(t, h.Actor.UserID, *history[0].CreatedBy)
}

func TestTicketService_Adjust_RequiresReason(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	created, err := svc.Create(ctx, h.Actor, ticketRequest(h, t, "500", "800"))
	require.NoError(t, err)

	_, err = svc.Adjust(ctx, h.Actor, created.ID, AdjustTicketRequest{NetCost: dec("500"), NetSales: dec("850")})
	require.Error(t, err)

	history, err := svc.ListAdjustments(ctx, h.Actor, created.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTicketService_Cancel_CascadesToLedger(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	created, err := svc.Create(ctx, h.Actor, ticketRequest(h, t, "500", "800"))
	require.NoError(t, err)
	h.Events.Reset()

	canceled, err := svc.Cancel(ctx, h.Actor, created.ID)
	require.NoError(t, err)
	assert.True(t, canceled.Canceled)
	require.NotNil(t, canceled.CanceledAt)
	assert.True(t, canceled.CanceledAt.Equal(h.Clock.Now()))
	assert.Nil(t, canceled.Ledger.Payment, "no active payment after cancel")
	assert.Nil(t, canceled.Ledger.Payable, "no active payable after cancel")

	source := ledger.NewSource(ledger.SourceTicket, created.ID)
	payments, err := h.Deps.Repos.Payments().FindBySource(ctx, h.Tenant.ID, source)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, ledger.PaymentStatusRefunded, payments[0].Status)

	payables, err := h.Deps.Repos.Payables().FindBySource(ctx, h.Tenant.ID, source)
	require.NoError(t, err)
	require.Len(t, payables, 1)
	assert.NotNil(t, payables[0].CanceledAt)

	types := h.Events.Types()
	assert.Contains(t, types, ticketing.EventTypeTicketCanceled)
	assert.Contains(t, types, ledger.EventTypePaymentRefunded)
	assert.Contains(t, types, ledger.EventTypePayableCanceled)

	_, err = svc.Cancel(ctx, h.Actor, created.ID)
	assert.ErrorIs(t, err, shared.ErrAlreadyCanceled)

	_, err = svc.Edit(ctx, h.Actor, created.ID, ticketRequest(h, t, "1", "2"))
	assert.Error(t, err)
}

func TestTicketService_TenantIsolation(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	created, err := svc.Create(ctx, h.Actor, ticketRequest(h, t, "500", "800"))
	require.NoError(t, err)

	other := h.ActorFor(h.AddTenant(t, "globex"))
	_, err = svc.GetByID(ctx, other, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	list, total, err := svc.List(ctx, other, SaleListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	_, err = svc.Cancel(ctx, other, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTicketService_CustomerOfAnotherTenantIsRejected(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)

	globex := h.AddTenant(t, "globex")
	stranger := h.AddCustomer(t, globex, "Mallory")

	_, err := svc.Create(context.Background(), h.Actor, TicketRequest{
		Reference: "X1", CustomerID: &stranger.ID, NetCost: dec("1"), NetSales: dec("2"),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTicketService_PermissionGate(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	created, err := svc.Create(ctx, h.Actor, ticketRequest(h, t, "500", "800"))
	require.NoError(t, err)

	h.Authz.Deny(appshared.CapTicketCancel)
	_, err = svc.Cancel(ctx, h.Actor, created.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.GetByID(ctx, h.Actor, created.ID)
	assert.NoError(t, err, "read is still allowed")
}

func TestTicketService_PublishFailureDoesNotUndoWrite(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Events.FailWith(assert.AnError)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	created, err := svc.Create(ctx, h.Actor, ticketRequest(h, t, "500", "800"))
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, h.Actor, created.ID)
	assert.NoError(t, err)
}

func TestTicketService_RevenueWithoutCustomer(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewTicketService(h.Deps)
	ctx := context.Background()

	_, err := svc.Create(ctx, h.Actor, TicketRequest{
		Reference: "WALKIN", PassengerName: "Bob", NetCost: dec("100"), NetSales: dec("150"),
	})
	require.NoError(t, err)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	reports := reportapp.NewReportService(h.Deps, finance.NewCurrencyService(h.Deps, 0))
	summary, err := reports.Summary(ctx, h.Actor, reportapp.SummaryQuery{From: day, To: day, Granularity: "daily"})
	require.NoError(t, err)

	require.Len(t, summary.Rows, 1)
	assertDecimal(t, "150", summary.Rows[0].Revenue, "a walk-in sale still counts as revenue")
	assertDecimal(t, "0", summary.Rows[0].Receivables)
	assertDecimal(t, "100", summary.Rows[0].Payables)
}

// stalledScope hands fn repositories whose payment writes block until ctx ends
type stalledScope struct {
	inner appshared.TransactionScope
}

func (s stalledScope) Execute(ctx context.Context, fn func(ctx context.Context, repos appshared.Repositories) error) error {
	return s.inner.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		return fn(ctx, stalledRepos{Repositories: repos})
	})
}

type stalledRepos struct {
	appshared.Repositories
}

func (r stalledRepos) Payments() ledger.PaymentRepository {
	return stalledPayments{PaymentRepository: r.Repositories.Payments()}
}

type stalledPayments struct {
	ledger.PaymentRepository
}

func (p stalledPayments) Save(ctx context.Context, _ *ledger.Payment) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestTicketService_EditTimeoutRollsBack(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()

	req := ticketRequest(h, t, "500", "800")
	created, err := NewTicketService(h.Deps).Create(ctx, h.Actor, req)
	require.NoError(t, err)

	deps := h.Deps
	deps.Tx = stalledScope{inner: h.Deps.Tx}
	deps.EditTimeout = 50 * time.Millisecond
	svc := NewTicketService(deps)

	req.NetSales = dec("900")
	_, err = svc.Edit(ctx, h.Actor, created.ID, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	got, err := NewTicketService(h.Deps).GetByID(ctx, h.Actor, created.ID)
	require.NoError(t, err)
	assertDecimal(t, "800", got.NetSales, "ticket write was rolled back")
	require.NotNil(t, got.Ledger.Payment)
	assertDecimal(t, "800", got.Ledger.Payment.Amount)
}
