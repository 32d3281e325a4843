package cargo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/cargo"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/infrastructure/cache"
	"github.com/travelerp/backend/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

type fixture struct {
	h        *testutil.Harness
	svc      *ShipmentService
	dubai    uuid.UUID
	dhaka    uuid.UUID
	customer uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	h := testutil.NewHarness(t)
	dubai := h.AddBranch(t, h.Tenant, "DXB", "Dubai Main", "Dubai")
	dhaka := h.AddBranch(t, h.Tenant, "DAC", "Dhaka Hub", "Dhaka")
	h.Actor.BranchID = &dubai.ID
	return &fixture{
		h:        h,
		svc:      NewShipmentService(h.Deps),
		dubai:    dubai.ID,
		dhaka:    dhaka.ID,
		customer: h.AddCustomer(t, h.Tenant, "Rahim").ID,
	}
}

func (f *fixture) request() CreateShipmentRequest {
	return CreateShipmentRequest{
		CustomerID:          &f.customer,
		SenderName:          "Rahim",
		SenderPhone:         "+971500000000",
		ReceiverName:        "Karim",
		ReceiverAddress:     "Mirpur 10, Dhaka",
		SourceBranchID:      f.dubai,
		DestinationBranchID: f.dhaka,
		Items: []ItemRequest{
			{Description: "Clothes", Quantity: 2, Weight: dec("3"), UnitPrice: dec("5")},
			{Description: "Rice cooker", Quantity: 1, Weight: dec("10"), UnitPrice: dec("4")},
		},
	}
}

func TestShipmentService_ScenarioC_PricingAndTrail(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), f.h.Actor, f.request())
	require.NoError(t, err)

	assert.Equal(t, "CRG-2026-000001", resp.TrackingNumber)
	assertDecimal(t, "16", resp.TotalWeight)
	assertDecimal(t, "70", resp.Price)
	assert.Equal(t, string(cargo.StatusPending), resp.Status)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, string(cargo.StatusPending), resp.Logs[0].Status)

	require.NotNil(t, resp.Ledger.Payment)
	assertDecimal(t, "70", resp.Ledger.Payment.Amount)
	assert.Nil(t, resp.Ledger.Payable, "cargo carries no supplier payable")

	assert.Contains(t, f.h.Events.Types(), cargo.EventTypeShipmentCreated)
	assert.Contains(t, f.h.Events.Types(), ledger.EventTypePaymentCreated)
}

func TestShipmentService_SourceBranchRule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.request()
	req.SourceBranchID, req.DestinationBranchID = f.dhaka, f.dubai

	// supervisors may send from any branch
	_, err := f.svc.Create(ctx, f.h.Actor, req)
	require.NoError(t, err)

	f.h.Authz.Deny(appshared.CapCargoAnyBranch)
	_, err = f.svc.Create(ctx, f.h.Actor, req)
	assert.ErrorIs(t, err, cargo.ErrBranchMismatch)

	_, err = f.svc.Create(ctx, f.h.Actor, f.request())
	assert.NoError(t, err, "own branch is always allowed")
}

func TestShipmentService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	same := f.request()
	same.DestinationBranchID = f.dubai
	_, err := f.svc.Create(ctx, f.h.Actor, same)
	assert.ErrorIs(t, err, cargo.ErrSameBranch)

	empty := f.request()
	empty.Items = nil
	_, err = f.svc.Create(ctx, f.h.Actor, empty)
	assert.ErrorIs(t, err, cargo.ErrEmptyItems)

	foreign := f.request()
	foreign.DestinationBranchID = f.h.AddBranch(t, f.h.AddTenant(t, "globex"), "LHR", "London", "").ID
	_, err = f.svc.Create(ctx, f.h.Actor, foreign)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, total, err := f.svc.List(ctx, f.h.Actor, ShipmentListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestShipmentService_ChangeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.h.Actor, f.request())
	require.NoError(t, err)

	// any status of the set may be chosen, not only the next one
	f.h.Clock.Advance(time.Hour)
	dispatched, err := f.svc.ChangeStatus(ctx, f.h.Actor, created.ID, ChangeStatusRequest{Status: "dispatched", Note: "EK582"})
	require.NoError(t, err)
	assert.Equal(t, string(cargo.StatusDispatched), dispatched.Status)
	require.Len(t, dispatched.Logs, 2)
	assert.Equal(t, "EK582", dispatched.Logs[1].Note)

	_, err = f.svc.ChangeStatus(ctx, f.h.Actor, created.ID, ChangeStatusRequest{Status: "DISPATCHED"})
	assert.ErrorIs(t, err, cargo.ErrStatusUnchanged)

	_, err = f.svc.ChangeStatus(ctx, f.h.Actor, created.ID, ChangeStatusRequest{Status: "LOST"})
	assert.ErrorIs(t, err, cargo.ErrInvalidStatus)

	delivered, err := f.svc.ChangeStatus(ctx, f.h.Actor, created.ID, ChangeStatusRequest{Status: "DELIVERED"})
	require.NoError(t, err)
	assert.NotNil(t, delivered.DeliveredAt)

	_, err = f.svc.ChangeStatus(ctx, f.h.Actor, created.ID, ChangeStatusRequest{Status: "ARRIVED"})
	assert.ErrorIs(t, err, cargo.ErrDelivered)

	stored, err := f.svc.GetByID(ctx, f.h.Actor, created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Logs, 3)
}

func TestShipmentService_Track(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	deps := f.h.Deps
	memory := cache.NewMemoryCache()
	deps.Cache = memory
	svc := NewShipmentService(deps)

	created, err := svc.Create(ctx, f.h.Actor, f.request())
	require.NoError(t, err)

	tracked, err := svc.Track(ctx, nil, " "+created.TrackingNumber+" ")
	require.NoError(t, err)
	assert.Equal(t, created.TrackingNumber, tracked.TrackingNumber)
	assert.Equal(t, "Dubai Main, Dubai", tracked.From)
	assert.Equal(t, "Dhaka Hub, Dhaka", tracked.To)
	assertDecimal(t, "16", tracked.TotalWeight)
	assert.Len(t, tracked.Items, 2)
	assert.Equal(t, 1, memory.Len(), "response is cached")

	_, err = svc.ChangeStatus(ctx, f.h.Actor, created.ID, ChangeStatusRequest{Status: "WAREHOUSE"})
	require.NoError(t, err)
	assert.Zero(t, memory.Len(), "status change evicts the cached page")

	tracked, err = svc.Track(ctx, &f.h.Tenant.ID, created.TrackingNumber)
	require.NoError(t, err)
	assert.Equal(t, string(cargo.StatusWarehouse), tracked.Status)

	other := f.h.AddTenant(t, "globex")
	_, err = svc.Track(ctx, &other.ID, created.TrackingNumber)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Track(ctx, nil, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestBranchService_CreateAndList(t *testing.T) {
	h := testutil.NewHarness(t)
	svc := NewBranchService(h.Deps)
	ctx := context.Background()

	b, err := svc.Create(ctx, h.Actor, CreateBranchRequest{Code: "khi", Name: "Karachi", City: "Karachi", Country: "pk"})
	require.NoError(t, err)
	assert.Equal(t, "KHI", b.Code)
	assert.Equal(t, "PK", b.Country)

	list, err := svc.List(ctx, h.Actor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	h.Authz.Deny(appshared.CapBranchWrite)
	_, err = svc.Create(ctx, h.Actor, CreateBranchRequest{Code: "LHE", Name: "Lahore"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
