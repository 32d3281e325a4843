package ticketing

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/ticketing"
	"go.uber.org/zap"
)

// VisaService handles visa sales with the same ledger rules as tickets
type VisaService struct {
	deps appshared.Deps
}

// NewVisaService creates a new VisaService
func NewVisaService(deps appshared.Deps) *VisaService {
	return &VisaService{deps: deps.WithDefaults()}
}

// Create books a visa sale
func (s *VisaService) Create(ctx context.Context, actor appshared.Actor, req VisaRequest) (*VisaResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapVisaWrite); err != nil {
		return nil, err
	}
	d, err := req.details()
	if err != nil {
		return nil, err
	}
	if err := d.Amounts.Validate(); err != nil {
		return nil, err
	}

	var (
		visa   *ticketing.Visa
		events []shared.DomainEvent
	)
	err = s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		payer, err := payerName(ctx, repos, actor.TenantID, d.CustomerID, "")
		if err != nil {
			return err
		}
		seq, err := repos.Sequences().Next(ctx, actor.TenantID, shared.SequenceVisa)
		if err != nil {
			return err
		}
		visa, err = ticketing.NewVisa(actor.TenantID, ticketing.VisaNumber(seq), d, s.deps.Now())
		if err != nil {
			return err
		}
		if by := actor.UserRef(); by != nil {
			visa.SetCreatedBy(*by)
		}
		if err := repos.Visas().Save(ctx, visa); err != nil {
			return err
		}
		events, err = syncSale(ctx, s.deps.Reconciler(repos), actor.TenantID, saleLedger{
			source:        visa.Source(),
			payment:       visa.PaymentTerms(payer),
			payable:       visa.PayableTerms(),
			createPayment: visa.CustomerID != nil,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("Visa created",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("visa_number", visa.VisaNumber))
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, visa)
}

// Edit replaces the visa sale and re-syncs payment and payable
func (s *VisaService) Edit(ctx context.Context, actor appshared.Actor, id uuid.UUID, req VisaRequest) (*VisaResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapVisaWrite); err != nil {
		return nil, err
	}
	d, err := req.details()
	if err != nil {
		return nil, err
	}

	var (
		visa   *ticketing.Visa
		events []shared.DomainEvent
	)
	err = s.deps.ExecuteWithTimeout(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		visa, err = repos.Visas().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		payer, err := payerName(ctx, repos, actor.TenantID, d.CustomerID, "")
		if err != nil {
			return err
		}
		if err := visa.Edit(d); err != nil {
			return err
		}
		if err := repos.Visas().Save(ctx, visa); err != nil {
			return err
		}
		events, err = syncSale(ctx, s.deps.Reconciler(repos), actor.TenantID, saleLedger{
			source:        visa.Source(),
			payment:       visa.PaymentTerms(payer),
			payable:       visa.PayableTerms(),
			createPayment: true,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, visa)
}

// Cancel is terminal and cascades like a ticket cancel
func (s *VisaService) Cancel(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*VisaResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapVisaCancel); err != nil {
		return nil, err
	}

	var (
		visa   *ticketing.Visa
		events []shared.DomainEvent
	)
	now := s.deps.Now()
	err := s.deps.ExecuteWithTimeout(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		visa, err = repos.Visas().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if err := visa.Cancel(now); err != nil {
			return err
		}
		if err := repos.Visas().Save(ctx, visa); err != nil {
			return err
		}
		result, err := s.deps.Reconciler(repos).CancelSource(ctx, actor.TenantID, visa.Source(), now)
		if err != nil {
			return err
		}
		events = append(appshared.Events(visa), result.Events()...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, visa)
}

// GetByID returns a visa sale with its active ledger rows
func (s *VisaService) GetByID(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*VisaResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapVisaRead); err != nil {
		return nil, err
	}
	visa, err := s.deps.Repos.Visas().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, actor.TenantID, visa)
}

// List returns a page of visa sales
func (s *VisaService) List(ctx context.Context, actor appshared.Actor, filter SaleListFilter) ([]VisaResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapVisaRead); err != nil {
		return nil, 0, err
	}
	visas, total, err := s.deps.Repos.Visas().FindAll(ctx, actor.TenantID, filter.toDomain())
	if err != nil {
		return nil, 0, err
	}
	out := make([]VisaResponse, len(visas))
	for i := range visas {
		out[i] = ToVisaResponse(&visas[i])
	}
	return out, total, nil
}

func (s *VisaService) response(ctx context.Context, tenantID uuid.UUID, v *ticketing.Visa) (*VisaResponse, error) {
	resp := ToVisaResponse(v)
	summary, err := appshared.LoadLedgerSummary(ctx, s.deps.Repos, tenantID, v.Source(), s.deps.Now())
	if err != nil {
		return nil, err
	}
	resp.Ledger = &summary
	return &resp, nil
}
