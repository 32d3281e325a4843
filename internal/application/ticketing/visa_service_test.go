package ticketing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/ticketing"
	"github.com/travelerp/backend/internal/testutil"
)

func TestVisaService_Lifecycle(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewVisaService(h.Deps)
	ctx := context.Background()
	customer := h.AddCustomer(t, h.Tenant, "Karim")

	req := VisaRequest{
		Reference:      "EV-2231",
		CustomerID:     &customer.ID,
		ApplicantName:  "Karim Ali",
		PassportNumber: "P1234567",
		Country:        "United Arab Emirates",
		VisaType:       "tourist",
		SupplierName:   "Visa Desk",
		NetCost:        dec("90"),
		NetSales:       dec("140"),
		Currency:       "aed",
	}
	created, err := svc.Create(ctx, h.Actor, req)
	require.NoError(t, err)
	assert.Equal(t, "VSA-000001", created.VisaNumber)
	assert.Equal(t, "AED", created.Currency)
	assertDecimal(t, "50", created.Profit)
	require.NotNil(t, created.Ledger.Payment)
	assert.Equal(t, "AED", created.Ledger.Payment.Currency)

	req.NetCost = dec("100")
	edited, err := svc.Edit(ctx, h.Actor, created.ID, req)
	require.NoError(t, err)
	assertDecimal(t, "100", edited.Ledger.Payable.Amount)

	req.NetSales = dec("80")
	_, err = svc.Edit(ctx, h.Actor, created.ID, req)
	assert.ErrorIs(t, err, ticketing.ErrNetSalesBelowCost)

	canceled, err := svc.Cancel(ctx, h.Actor, created.ID)
	require.NoError(t, err)
	assert.True(t, canceled.Canceled)

	payments, err := h.Deps.Repos.Payments().FindBySource(ctx, h.Tenant.ID, ledger.NewSource(ledger.SourceVisa, created.ID))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, ledger.PaymentStatusRefunded, payments[0].Status)
	assert.Contains(t, h.Events.Types(), ticketing.EventTypeVisaCanceled)
}

func TestVisaService_ListHidesCanceledByDefault(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewVisaService(h.Deps)
	ctx := context.Background()

	keep, err := svc.Create(ctx, h.Actor, VisaRequest{Reference: "A", NetCost: dec("10"), NetSales: dec("20")})
	require.NoError(t, err)
	drop, err := svc.Create(ctx, h.Actor, VisaRequest{Reference: "B", NetCost: dec("10"), NetSales: dec("20")})
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, h.Actor, drop.ID)
	require.NoError(t, err)

	list, total, err := svc.List(ctx, h.Actor, SaleListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	_, total, err = svc.List(ctx, h.Actor, SaleListFilter{IncludeCanceled: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestVisaService_InvalidCurrency(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewVisaService(h.Deps)

	_, err := svc.Create(context.Background(), h.Actor, VisaRequest{
		Reference: "A", NetCost: dec("1"), NetSales: dec("2"), Currency: "XYZW",
	})
	require.Error(t, err)

	_, err = svc.GetByID(context.Background(), h.Actor, testutil.NewTestUUID("missing"))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
