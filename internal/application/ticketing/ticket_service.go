package ticketing

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
	"github.com/travelerp/backend/internal/domain/ticketing"
	"go.uber.org/zap"
)

// TicketService handles ticket sales and keeps their ledger rows in step
type TicketService struct {
	deps appshared.Deps
}

// NewTicketService creates a new TicketService
func NewTicketService(deps appshared.Deps) *TicketService {
	return &TicketService{deps: deps.WithDefaults()}
}

// Create books a ticket. A payable is raised for a positive net cost and a
// payment for a positive net sale when the customer is known.
func (s *TicketService) Create(ctx context.Context, actor appshared.Actor, req TicketRequest) (*TicketResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapTicketWrite); err != nil {
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
		ticket *ticketing.Ticket
		events []shared.DomainEvent
	)
	err = s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		payer, err := payerName(ctx, repos, actor.TenantID, d.CustomerID, "")
		if err != nil {
			return err
		}
		seq, err := repos.Sequences().Next(ctx, actor.TenantID, shared.SequenceTicket)
		if err != nil {
			return err
		}
		ticket, err = ticketing.NewTicket(actor.TenantID, ticketing.TicketNumber(seq), d, s.deps.Now())
		if err != nil {
			return err
		}
		if by := actor.UserRef(); by != nil {
			ticket.SetCreatedBy(*by)
		}
		if err := repos.Tickets().Save(ctx, ticket); err != nil {
			return err
		}
		events, err = syncSale(ctx, s.deps.Reconciler(repos), actor.TenantID, saleLedger{
			source:        ticket.Source(),
			payment:       ticket.PaymentTerms(payer),
			payable:       ticket.PayableTerms(),
			createPayment: ticket.CustomerID != nil,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("Ticket created",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("ticket_number", ticket.TicketNumber))
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, ticket)
}

// Edit replaces the ticket and re-syncs payment and payable.
// A net sale below money already received is rejected.
func (s *TicketService) Edit(ctx context.Context, actor appshared.Actor, id uuid.UUID, req TicketRequest) (*TicketResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapTicketWrite); err != nil {
		return nil, err
	}
	d, err := req.details()
	if err != nil {
		return nil, err
	}

	var (
		ticket *ticketing.Ticket
		events []shared.DomainEvent
	)
	err = s.deps.ExecuteWithTimeout(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		ticket, err = repos.Tickets().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		payer, err := payerName(ctx, repos, actor.TenantID, d.CustomerID, "")
		if err != nil {
			return err
		}
		if err := ticket.Edit(d); err != nil {
			return err
		}
		if err := repos.Tickets().Save(ctx, ticket); err != nil {
			return err
		}
		events, err = syncSale(ctx, s.deps.Reconciler(repos), actor.TenantID, saleLedger{
			source:        ticket.Source(),
			payment:       ticket.PaymentTerms(payer),
			payable:       ticket.PayableTerms(),
			createPayment: true,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, ticket)
}

// Adjust changes the ticket amounts, appends a history row and re-syncs the ledger
func (s *TicketService) Adjust(ctx context.Context, actor appshared.Actor, id uuid.UUID, req AdjustTicketRequest) (*TicketResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapTicketAdjust); err != nil {
		return nil, err
	}
	var cur valueobject.Currency
	if req.Currency != "" {
		c, err := valueobject.ParseCurrency(req.Currency)
		if err != nil {
			return nil, err
		}
		cur = c
	}
	amounts := ticketing.SaleAmounts{NetCost: req.NetCost, NetSales: req.NetSales, Currency: cur}

	var (
		ticket *ticketing.Ticket
		events []shared.DomainEvent
	)
	err := s.deps.ExecuteWithTimeout(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		ticket, err = repos.Tickets().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		payer, err := payerName(ctx, repos, actor.TenantID, ticket.CustomerID, "")
		if err != nil {
			return err
		}
		adj, err := ticket.Adjust(amounts, req.Reason, actor.UserRef())
		if err != nil {
			return err
		}
		if err := repos.Adjustments().Create(ctx, adj); err != nil {
			return err
		}
		if err := repos.Tickets().Save(ctx, ticket); err != nil {
			return err
		}
		events, err = syncSale(ctx, s.deps.Reconciler(repos), actor.TenantID, saleLedger{
			source:        ticket.Source(),
			payment:       ticket.PaymentTerms(payer),
			payable:       ticket.PayableTerms(),
			createPayment: true,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, ticket)
}

// Cancel is terminal: the payment is marked refunded and the payable canceled
func (s *TicketService) Cancel(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*TicketResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapTicketCancel); err != nil {
		return nil, err
	}

	var (
		ticket *ticketing.Ticket
		events []shared.DomainEvent
	)
	now := s.deps.Now()
	err := s.deps.ExecuteWithTimeout(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		ticket, err = repos.Tickets().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if err := ticket.Cancel(now); err != nil {
			return err
		}
		if err := repos.Tickets().Save(ctx, ticket); err != nil {
			return err
		}
		result, err := s.deps.Reconciler(repos).CancelSource(ctx, actor.TenantID, ticket.Source(), now)
		if err != nil {
			return err
		}
		events = append(appshared.Events(ticket), result.Events()...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("Ticket canceled",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("ticket_number", ticket.TicketNumber))
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, ticket)
}

// GetByID returns a ticket with its active ledger rows
func (s *TicketService) GetByID(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*TicketResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapTicketRead); err != nil {
		return nil, err
	}
	ticket, err := s.deps.Repos.Tickets().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, actor.TenantID, ticket)
}

// List returns a page of tickets
func (s *TicketService) List(ctx context.Context, actor appshared.Actor, filter SaleListFilter) ([]TicketResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapTicketRead); err != nil {
		return nil, 0, err
	}
	tickets, total, err := s.deps.Repos.Tickets().FindAll(ctx, actor.TenantID, filter.toDomain())
	if err != nil {
		return nil, 0, err
	}
	out := make([]TicketResponse, len(tickets))
	for i := range tickets {
		out[i] = ToTicketResponse(&tickets[i])
	}
	return out, total, nil
}

// ListAdjustments returns the change history of a ticket, oldest first
func (s *TicketService) ListAdjustments(ctx context.Context, actor appshared.Actor, id uuid.UUID) ([]AdjustmentResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapTicketRead); err != nil {
		return nil, err
	}
	if _, err := s.deps.Repos.Tickets().FindByID(ctx, actor.TenantID, id); err != nil {
		return nil, err
	}
	adjs, err := s.deps.Repos.Adjustments().FindByTicket(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	out := make([]AdjustmentResponse, len(adjs))
	for i := range adjs {
		out[i] = ToAdjustmentResponse(&adjs[i])
	}
	return out, nil
}

func (s *TicketService) response(ctx context.Context, tenantID uuid.UUID, t *ticketing.Ticket) (*TicketResponse, error) {
	resp := ToTicketResponse(t)
	summary, err := appshared.LoadLedgerSummary(ctx, s.deps.Repos, tenantID, t.Source(), s.deps.Now())
	if err != nil {
		return nil, err
	}
	resp.Ledger = &summary
	return &resp, nil
}
