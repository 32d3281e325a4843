package hajumrah

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CampaignService manages departures and the cascade of their cancellation
type CampaignService struct {
	deps appshared.Deps
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(deps appshared.Deps) *CampaignService {
	return &CampaignService{deps: deps.WithDefaults()}
}

// Create schedules a campaign
func (s *CampaignService) Create(ctx context.Context, actor appshared.Actor, req CampaignRequest) (*CampaignResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCampaignWrite); err != nil {
		return nil, err
	}
	campaign, err := hajumrah.NewCampaign(actor.TenantID, req.details())
	if err != nil {
		return nil, err
	}
	if by := actor.UserRef(); by != nil {
		campaign.SetCreatedBy(*by)
	}
	if err := s.deps.Repos.Campaigns().Save(ctx, campaign); err != nil {
		return nil, err
	}
	resp := ToCampaignResponse(campaign, s.deps.Now())
	return &resp, nil
}

// Update edits a campaign that is neither canceled nor departed
func (s *CampaignService) Update(ctx context.Context, actor appshared.Actor, id uuid.UUID, req CampaignRequest) (*CampaignResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCampaignWrite); err != nil {
		return nil, err
	}
	var campaign *hajumrah.Campaign
	err := s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		campaign, err = repos.Campaigns().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if err := campaign.Update(req.details(), s.deps.Now()); err != nil {
			return err
		}
		return repos.Campaigns().Save(ctx, campaign)
	})
	if err != nil {
		return nil, err
	}
	resp := ToCampaignResponse(campaign, s.deps.Now())
	return &resp, nil
}

// Cancel cancels the campaign and every booking attached to it in one
// transaction; each booking's payments are refunded and payables canceled.
func (s *CampaignService) Cancel(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*CampaignCancelResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCampaignCancel); err != nil {
		return nil, err
	}

	var (
		campaign *hajumrah.Campaign
		events   []shared.DomainEvent
		out      CampaignCancelResponse
	)
	now := s.deps.Now()
	err := s.deps.ExecuteWithTimeout(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		campaign, err = repos.Campaigns().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if err := campaign.Cancel(now); err != nil {
			return err
		}
		if err := repos.Campaigns().Save(ctx, campaign); err != nil {
			return err
		}
		events = appshared.Events(campaign)

		bookings, err := repos.Bookings().FindByCampaign(ctx, actor.TenantID, campaign.ID)
		if err != nil {
			return err
		}
		rec := s.deps.Reconciler(repos)
		for i := range bookings {
			b := &bookings[i]
			if !b.CancelWithCampaign(now) {
				continue
			}
			if err := repos.Bookings().Save(ctx, b); err != nil {
				return err
			}
			result, err := rec.CancelSource(ctx, actor.TenantID, b.Source(), now)
			if err != nil {
				return err
			}
			out.CanceledBookings++
			out.RefundedPayments += len(result.Payments)
			out.CanceledPayables += len(result.Payables)
			events = append(events, appshared.Events(b)...)
			events = append(events, result.Events()...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("Campaign canceled",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("campaign_id", campaign.ID.String()),
		zap.Int("canceled_bookings", out.CanceledBookings))
	s.deps.Publish(ctx, events...)
	out.Campaign = ToCampaignResponse(campaign, now)
	return &out, nil
}

// GetByID returns a campaign
func (s *CampaignService) GetByID(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*CampaignResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCampaignRead); err != nil {
		return nil, err
	}
	campaign, err := s.deps.Repos.Campaigns().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCampaignResponse(campaign, s.deps.Now())
	return &resp, nil
}

// List returns a page of campaigns
func (s *CampaignService) List(ctx context.Context, actor appshared.Actor, query CampaignListFilter) ([]CampaignResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCampaignRead); err != nil {
		return nil, 0, err
	}
	campaigns, total, err := s.deps.Repos.Campaigns().FindAll(ctx, actor.TenantID, query.toDomain())
	if err != nil {
		return nil, 0, err
	}
	now := s.deps.Now()
	out := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		out[i] = ToCampaignResponse(&campaigns[i], now)
	}
	return out, total, nil
}
