package hajumrah

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BookingService handles Haj/Umrah bookings. A payment exists only once a
// booking has been confirmed; after that it is kept in sync.
type BookingService struct {
	deps appshared.Deps
}

// NewBookingService creates a new BookingService
func NewBookingService(deps appshared.Deps) *BookingService {
	return &BookingService{deps: deps.WithDefaults()}
}

// Create books a customer, optionally onto a campaign
func (s *BookingService) Create(ctx context.Context, actor appshared.Actor, req BookingRequest) (*BookingResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapBookingWrite); err != nil {
		return nil, err
	}
	d, err := req.details()
	if err != nil {
		return nil, err
	}

	var (
		booking *hajumrah.Booking
		events  []shared.DomainEvent
	)
	now := s.deps.Now()
	err = s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		customer, err := repos.Customers().FindByID(ctx, actor.TenantID, d.CustomerID)
		if err != nil {
			return err
		}
		campaign, err := s.loadCampaign(ctx, repos, actor.TenantID, d.CampaignID)
		if err != nil {
			return err
		}
		if err := s.checkDuplicate(ctx, repos, actor.TenantID, d, nil); err != nil {
			return err
		}
		seq, err := repos.Sequences().Next(ctx, actor.TenantID, shared.SequenceBooking)
		if err != nil {
			return err
		}
		var tr hajumrah.Transition
		booking, tr, err = hajumrah.NewBooking(actor.TenantID, hajumrah.BookingNumber(seq), d, campaign, now)
		if err != nil {
			return err
		}
		if by := actor.UserRef(); by != nil {
			booking.SetCreatedBy(*by)
		}
		if err := repos.Bookings().Save(ctx, booking); err != nil {
			return err
		}
		events = appshared.Events(booking)
		ledgerEvents, err := syncBooking(ctx, s.deps.Reconciler(repos), booking, campaign, customer.Name, tr.Confirmed)
		if err != nil {
			return err
		}
		events = append(events, ledgerEvents...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, booking)
}

// Edit applies new details. Packages are replaced wholesale; a move to
// canceled cascades to the ledger and a move to confirmed raises or syncs
// the payment.
func (s *BookingService) Edit(ctx context.Context, actor appshared.Actor, id uuid.UUID, req BookingRequest) (*BookingResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapBookingWrite); err != nil {
		return nil, err
	}
	d, err := req.details()
	if err != nil {
		return nil, err
	}

	var (
		booking *hajumrah.Booking
		tr      hajumrah.Transition
		events  []shared.DomainEvent
	)
	now := s.deps.Now()
	err = s.deps.ExecuteWithTimeout(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		booking, err = repos.Bookings().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		customer, err := repos.Customers().FindByID(ctx, actor.TenantID, d.CustomerID)
		if err != nil {
			return err
		}
		current, err := s.loadCampaign(ctx, repos, actor.TenantID, booking.CampaignID)
		if err != nil {
			return err
		}
		next := current
		if !sameID(booking.CampaignID, d.CampaignID) {
			if next, err = s.loadCampaign(ctx, repos, actor.TenantID, d.CampaignID); err != nil {
				return err
			}
		}
		if d.Status != hajumrah.BookingStatusCanceled {
			if err := s.checkDuplicate(ctx, repos, actor.TenantID, d, &booking.ID); err != nil {
				return err
			}
		}

		tr, err = booking.Edit(d, current, next, now)
		if err != nil {
			return err
		}
		if err := repos.Bookings().Save(ctx, booking); err != nil {
			return err
		}
		events = appshared.Events(booking)

		if tr.Canceled {
			result, err := s.deps.Reconciler(repos).CancelSource(ctx, actor.TenantID, booking.Source(), now)
			if err != nil {
				return err
			}
			events = append(events, result.Events()...)
			return nil
		}
		ledgerEvents, err := syncBooking(ctx, s.deps.Reconciler(repos), booking, next, customer.Name, booking.Status == hajumrah.BookingStatusConfirmed)
		if err != nil {
			return err
		}
		events = append(events, ledgerEvents...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if tr.Canceled || tr.Reinstated {
		s.deps.Logger.Info("Booking status changed",
			zap.String("tenant_id", actor.TenantID.String()),
			zap.String("booking_number", booking.BookingNumber),
			zap.String("status", string(booking.Status)))
	}
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, booking)
}

// GetByID returns a booking with packages and active ledger rows
func (s *BookingService) GetByID(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*BookingResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapBookingRead); err != nil {
		return nil, err
	}
	booking, err := s.deps.Repos.Bookings().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, actor.TenantID, booking)
}

// List returns a page of bookings
func (s *BookingService) List(ctx context.Context, actor appshared.Actor, filter BookingListFilter) ([]BookingResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapBookingRead); err != nil {
		return nil, 0, err
	}
	bookings, total, err := s.deps.Repos.Bookings().FindAll(ctx, actor.TenantID, filter.toDomain())
	if err != nil {
		return nil, 0, err
	}
	out := make([]BookingResponse, len(bookings))
	for i := range bookings {
		out[i] = ToBookingResponse(&bookings[i])
	}
	return out, total, nil
}

func (s *BookingService) loadCampaign(ctx context.Context, repos appshared.Repositories, tenantID uuid.UUID, id *uuid.UUID) (*hajumrah.Campaign, error) {
	if id == nil {
		return nil, nil
	}
	return repos.Campaigns().FindByID(ctx, tenantID, *id)
}

// checkDuplicate enforces one active booking per (customer, campaign)
func (s *BookingService) checkDuplicate(ctx context.Context, repos appshared.Repositories, tenantID uuid.UUID, d hajumrah.BookingDetails, exclude *uuid.UUID) error {
	if d.CampaignID == nil {
		return nil
	}
	exists, err := repos.Bookings().ExistsActive(ctx, tenantID, d.CustomerID, *d.CampaignID, exclude)
	if err != nil {
		return err
	}
	if exists {
		return hajumrah.ErrDuplicateBooking
	}
	return nil
}

func (s *BookingService) response(ctx context.Context, tenantID uuid.UUID, b *hajumrah.Booking) (*BookingResponse, error) {
	resp := ToBookingResponse(b)
	summary, err := appshared.LoadLedgerSummary(ctx, s.deps.Repos, tenantID, b.Source(), s.deps.Now())
	if err != nil {
		return nil, err
	}
	resp.Ledger = &summary
	return &resp, nil
}

// syncBooking keeps an existing payment and payable in step with the booking.
// Missing rows are raised only when create is set, i.e. the booking is confirmed.
func syncBooking(ctx context.Context, rec *ledger.Reconciler, b *hajumrah.Booking, campaign *hajumrah.Campaign, payer string, create bool) ([]shared.DomainEvent, error) {
	var events []shared.DomainEvent

	payment, err := rec.ActivePayment(ctx, b.TenantID, b.Source())
	if err != nil {
		return nil, err
	}
	if payment != nil || create {
		p, _, err := rec.SyncPayment(ctx, b.TenantID, b.Source(), b.PaymentTerms(payer, campaign))
		if err != nil {
			return nil, err
		}
		if p != nil {
			events = append(events, appshared.Events(p)...)
		}
	}

	payable, err := rec.ActivePayable(ctx, b.TenantID, b.Source())
	if err != nil {
		return nil, err
	}
	if payable != nil || create {
		p, _, err := rec.SyncPayable(ctx, b.TenantID, b.Source(), b.PayableTerms(campaign))
		if err != nil {
			return nil, err
		}
		if p != nil {
			events = append(events, appshared.Events(p)...)
		}
	}
	return events, nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
