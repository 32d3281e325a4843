package ticketing

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
)

// saleLedger describes the ledger side of a single-line sale
type saleLedger struct {
	source        ledger.Source
	payment       ledger.PaymentTerms
	payable       ledger.PayableTerms
	createPayment bool // a missing payment may be created
}

// syncSale brings the payable and payment of a sale in line with its amounts.
// Existing rows are always synced; new ones are created only for positive amounts.
func syncSale(ctx context.Context, rec *ledger.Reconciler, tenantID uuid.UUID, s saleLedger) ([]shared.DomainEvent, error) {
	var events []shared.DomainEvent

	payable, err := rec.ActivePayable(ctx, tenantID, s.source)
	if err != nil {
		return nil, err
	}
	if payable != nil || s.payable.Amount.IsPositive() {
		p, _, err := rec.SyncPayable(ctx, tenantID, s.source, s.payable)
		if err != nil {
			return nil, err
		}
		if p != nil {
			events = append(events, appshared.Events(p)...)
		}
	}

	payment, err := rec.ActivePayment(ctx, tenantID, s.source)
	if err != nil {
		return nil, err
	}
	if payment != nil || (s.createPayment && s.payment.Amount.IsPositive()) {
		p, _, err := rec.SyncPayment(ctx, tenantID, s.source, s.payment)
		if err != nil {
			return nil, err
		}
		if p != nil {
			events = append(events, appshared.Events(p)...)
		}
	}
	return events, nil
}

// payerName resolves the customer's name, checking the customer belongs to the tenant
func payerName(ctx context.Context, repos appshared.Repositories, tenantID uuid.UUID, customerID *uuid.UUID, fallback string) (string, error) {
	if customerID == nil {
		return fallback, nil
	}
	c, err := repos.Customers().FindByID(ctx, tenantID, *customerID)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}
