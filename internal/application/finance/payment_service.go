package finance

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PaymentService reads customer payments and records money received against them
type PaymentService struct {
	deps appshared.Deps
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(deps appshared.Deps) *PaymentService {
	return &PaymentService{deps: deps.WithDefaults()}
}

// GetByID returns a payment with its receipts
func (s *PaymentService) GetByID(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*PaymentResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapPaymentRead); err != nil {
		return nil, err
	}
	payment, err := s.deps.Repos.Payments().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// List returns a page of payments; every row carries its computed balance
func (s *PaymentService) List(ctx context.Context, actor appshared.Actor, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapPaymentRead); err != nil {
		return nil, 0, err
	}
	f, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}
	payments, total, err := s.deps.Repos.Payments().FindAll(ctx, actor.TenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out, total, nil
}

// AddReceipt appends a receipt and recomputes the payment status in one transaction
func (s *PaymentService) AddReceipt(ctx context.Context, actor appshared.Actor, id uuid.UUID, req AddReceiptRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "add_receipt")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, actor.TenantID.String(),
		telemetry.SpanAttrPaymentID, id.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	if err := s.deps.Begin(ctx, actor, appshared.CapPaymentReceive); err != nil {
		return nil, err
	}
	date := s.deps.Now()
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}

	var (
		payment *ledger.Payment
		events  []shared.DomainEvent
	)
	err := s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		payment, err = repos.Payments().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		receipt, err := payment.AddReceipt(req.Amount, date, ledger.ReceiptMethod(req.Method), req.Reference, actor.UserRef())
		if err != nil {
			return err
		}
		if err := repos.Payments().AddReceipt(ctx, receipt); err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, payment); err != nil {
			return err
		}
		events = appshared.Events(payment)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.deps.Logger.Info("Receipt recorded",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("status", payment.Status.String()))
	s.deps.Publish(ctx, events...)
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// MarkRefund flags that money is owed back to the customer
func (s *PaymentService) MarkRefund(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*PaymentResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapPaymentRefund); err != nil {
		return nil, err
	}
	var payment *ledger.Payment
	err := s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		payment, err = repos.Payments().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if err := payment.MarkRefund(); err != nil {
			return err
		}
		return repos.Payments().Save(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("Payment flagged for refund",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("payment_id", payment.ID.String()))
	resp := ToPaymentResponse(payment)
	return &resp, nil
}
