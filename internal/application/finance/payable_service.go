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

// PayableService reads supplier payables and records pay-downs
type PayableService struct {
	deps appshared.Deps
}

// NewPayableService creates a new PayableService
func NewPayableService(deps appshared.Deps) *PayableService {
	return &PayableService{deps: deps.WithDefaults()}
}

// GetByID returns a payable
func (s *PayableService) GetByID(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*PayableResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapPayableRead); err != nil {
		return nil, err
	}
	payable, err := s.deps.Repos.Payables().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPayableResponse(payable, s.deps.Now())
	return &resp, nil
}

// List returns a page of payables
func (s *PayableService) List(ctx context.Context, actor appshared.Actor, filter PayableListFilter) ([]PayableResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapPayableRead); err != nil {
		return nil, 0, err
	}
	f := ledger.PayableFilter{Filter: filter.PageQuery.Filter(), ActiveOnly: filter.ActiveOnly}
	if filter.SourceType != "" {
		t := ledger.SourceType(filter.SourceType)
		if !t.IsValid() {
			return nil, 0, ledger.ErrInvalidSource
		}
		f.SourceType = &t
	}
	payables, total, err := s.deps.Repos.Payables().FindAll(ctx, actor.TenantID, f)
	if err != nil {
		return nil, 0, err
	}
	now := s.deps.Now()
	out := make([]PayableResponse, len(payables))
	for i := range payables {
		out[i] = ToPayableResponse(&payables[i], now)
	}
	return out, total, nil
}

// PayDown reduces the outstanding balance owed to the supplier
func (s *PayableService) PayDown(ctx context.Context, actor appshared.Actor, id uuid.UUID, req PayDownRequest) (*PayableResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payable", "pay_down")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, actor.TenantID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	if err := s.deps.Begin(ctx, actor, appshared.CapPayablePay); err != nil {
		return nil, err
	}
	var (
		payable *ledger.Payable
		events  []shared.DomainEvent
	)
	err := s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		payable, err = repos.Payables().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if err := payable.PayDown(req.Amount); err != nil {
			return err
		}
		if err := repos.Payables().Save(ctx, payable); err != nil {
			return err
		}
		events = appshared.Events(payable)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.deps.Logger.Info("Payable paid down",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("payable_id", payable.ID.String()),
		zap.String("balance", payable.Balance.String()))
	s.deps.Publish(ctx, events...)
	resp := ToPayableResponse(payable, s.deps.Now())
	return &resp, nil
}
