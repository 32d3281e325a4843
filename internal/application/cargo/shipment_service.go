package cargo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/cargo"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// TrackingCacheTTL is how long a public tracking response is served from cache
const TrackingCacheTTL = 30 * time.Second

// ShipmentService books cargo and drives its status workflow
type ShipmentService struct {
	deps        appshared.Deps
	trackingTTL time.Duration
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(deps appshared.Deps) *ShipmentService {
	return &ShipmentService{deps: deps.WithDefaults(), trackingTTL: TrackingCacheTTL}
}

// WithTrackingTTL overrides how long tracking responses stay cached
func (s *ShipmentService) WithTrackingTTL(ttl time.Duration) *ShipmentService {
	if ttl > 0 {
		s.trackingTTL = ttl
	}
	return s
}

func trackingKey(tenantID *uuid.UUID, number string) string {
	key := "tracking:"
	if tenantID != nil {
		key += tenantID.String() + ":"
	}
	return key + strings.ToUpper(number)
}

// Create books a shipment from the caller's home branch. Actors holding
// cargo:any_branch may send from any branch of the tenant.
func (s *ShipmentService) Create(ctx context.Context, actor appshared.Actor, req CreateShipmentRequest) (*ShipmentResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCargoWrite); err != nil {
		return nil, err
	}
	anyBranch, err := appshared.Allowed(ctx, s.deps.Authz, actor, appshared.CapCargoAnyBranch)
	if err != nil {
		return nil, err
	}
	if !anyBranch {
		if err := cargo.CheckSourceBranch(actor.BranchID, req.SourceBranchID); err != nil {
			return nil, err
		}
	}
	cur, err := valueobject.ParseCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	d := cargo.ShipmentDetails{
		CustomerID:          req.CustomerID,
		SenderName:          req.SenderName,
		SenderPhone:         req.SenderPhone,
		ReceiverName:        req.ReceiverName,
		ReceiverPhone:       req.ReceiverPhone,
		ReceiverAddress:     req.ReceiverAddress,
		SourceBranchID:      req.SourceBranchID,
		DestinationBranchID: req.DestinationBranchID,
		Currency:            cur,
		Notes:               req.Notes,
	}
	for _, it := range req.Items {
		d.Items = append(d.Items, cargo.ItemLine{
			Description: it.Description,
			Quantity:    it.Quantity,
			Weight:      it.Weight,
			UnitPrice:   it.UnitPrice,
		})
	}

	var (
		shipment *cargo.Shipment
		events   []shared.DomainEvent
	)
	now := s.deps.Now()
	year := now.Year()
	err = s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		for _, id := range []uuid.UUID{req.SourceBranchID, req.DestinationBranchID} {
			if _, err := repos.Branches().FindByID(ctx, actor.TenantID, id); err != nil {
				return err
			}
		}
		if req.CustomerID != nil {
			if _, err := repos.Customers().FindByID(ctx, actor.TenantID, *req.CustomerID); err != nil {
				return err
			}
		}
		seq, err := repos.Sequences().Next(ctx, actor.TenantID, shared.CargoSequence(year))
		if err != nil {
			return err
		}
		shipment, err = cargo.NewShipment(actor.TenantID, cargo.TrackingNumber(year, seq), d, actor.UserRef(), now)
		if err != nil {
			return err
		}
		if err := repos.Shipments().Create(ctx, shipment); err != nil {
			return err
		}
		events = appshared.Events(shipment)

		payment, _, err := s.deps.Reconciler(repos).SyncPayment(ctx, actor.TenantID, shipment.Source(), shipment.PaymentTerms())
		if err != nil {
			return err
		}
		if payment != nil {
			events = append(events, appshared.Events(payment)...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("Shipment created",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("tracking_number", shipment.TrackingNumber))
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, shipment)
}

// ChangeStatus moves the shipment to any status of the pipeline and appends a log entry
func (s *ShipmentService) ChangeStatus(ctx context.Context, actor appshared.Actor, id uuid.UUID, req ChangeStatusRequest) (*ShipmentResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCargoStatus); err != nil {
		return nil, err
	}
	status, err := cargo.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var (
		shipment *cargo.Shipment
		events   []shared.DomainEvent
	)
	err = s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		shipment, err = repos.Shipments().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		log, err := shipment.ChangeStatus(status, req.Note, actor.UserRef(), s.deps.Now())
		if err != nil {
			return err
		}
		if err := repos.Shipments().UpdateStatus(ctx, shipment, log); err != nil {
			return err
		}
		events = appshared.Events(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Cache.Delete(ctx,
		trackingKey(nil, shipment.TrackingNumber),
		trackingKey(&shipment.TenantID, shipment.TrackingNumber))
	s.deps.Publish(ctx, events...)
	return s.response(ctx, actor.TenantID, shipment)
}

// GetByID returns a shipment with items, trail and payment
func (s *ShipmentService) GetByID(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*ShipmentResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCargoRead); err != nil {
		return nil, err
	}
	shipment, err := s.deps.Repos.Shipments().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, actor.TenantID, shipment)
}

// List returns a page of shipments
func (s *ShipmentService) List(ctx context.Context, actor appshared.Actor, filter ShipmentListFilter) ([]ShipmentResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCargoRead); err != nil {
		return nil, 0, err
	}
	f := cargo.ShipmentFilter{Filter: filter.PageQuery.Filter(), BranchID: filter.BranchID}
	if filter.Status != "" {
		st, err := cargo.ParseStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		f.Status = &st
	}
	shipments, total, err := s.deps.Repos.Shipments().FindAll(ctx, actor.TenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		out[i] = ToShipmentResponse(&shipments[i])
	}
	return out, total, nil
}

// Track is the public lookup by tracking number. It needs no authentication
// and exposes no ledger data. tenantID narrows the lookup when the caller's
// tenant could be resolved.
func (s *ShipmentService) Track(ctx context.Context, tenantID *uuid.UUID, trackingNumber string) (*TrackingResponse, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if trackingNumber == "" {
		return nil, shared.ErrNotFound
	}
	key := trackingKey(tenantID, trackingNumber)
	if data, ok := s.deps.Cache.Get(ctx, key); ok {
		var cached TrackingResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	shipment, err := s.deps.Repos.Shipments().FindByTrackingNumber(ctx, tenantID, trackingNumber)
	if err != nil {
		return nil, err
	}
	from := s.branchName(ctx, shipment.TenantID, shipment.SourceBranchID)
	to := s.branchName(ctx, shipment.TenantID, shipment.DestinationBranchID)
	resp := ToTrackingResponse(shipment, from, to)

	if data, err := json.Marshal(resp); err == nil {
		s.deps.Cache.Set(ctx, key, data, s.trackingTTL)
	}
	return &resp, nil
}

func (s *ShipmentService) branchName(ctx context.Context, tenantID, id uuid.UUID) string {
	b, err := s.deps.Repos.Branches().FindByID(ctx, tenantID, id)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.deps.Logger.Warn("Failed to load branch for tracking", zap.Error(err))
		}
		return ""
	}
	if b.City != "" {
		return b.Name + ", " + b.City
	}
	return b.Name
}

func (s *ShipmentService) response(ctx context.Context, tenantID uuid.UUID, sh *cargo.Shipment) (*ShipmentResponse, error) {
	resp := ToShipmentResponse(sh)
	summary, err := appshared.LoadLedgerSummary(ctx, s.deps.Repos, tenantID, sh.Source(), s.deps.Now())
	if err != nil {
		return nil, err
	}
	resp.Ledger = &summary
	return &resp, nil
}
