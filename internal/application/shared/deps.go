package shared

import (
	"context"
	"errors"
	"time"

	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultEditTimeout bounds booking edit and cancel transactions
const DefaultEditTimeout = 10 * time.Second

// Deps bundles what every service needs
type Deps struct {
	Tx          TransactionScope
	Repos       Repositories
	Authz       Authorizer
	Publisher   shared.EventPublisher
	Cache       Cache
	Logger      *zap.Logger
	Now         func() time.Time
	EditTimeout time.Duration
}

// WithDefaults fills optional dependencies
func (d Deps) WithDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Cache == nil {
		d.Cache = NopCache{}
	}
	if d.EditTimeout <= 0 {
		d.EditTimeout = DefaultEditTimeout
	}
	return d
}

// Begin validates the actor and runs the permission gate
func (d Deps) Begin(ctx context.Context, actor Actor, capability Capability) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	return d.Authz.Authorize(ctx, actor, capability)
}

// ExecuteWithTimeout runs fn in a transaction bounded by the edit timeout.
// The deadline reaches every statement through the ctx handed to fn.
func (d Deps) ExecuteWithTimeout(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	ctx, cancel := context.WithTimeout(ctx, d.EditTimeout)
	defer cancel()
	return d.Tx.Execute(ctx, fn)
}

// Reconciler returns a ledger reconciler bound to repos that stamps rows with d.Now
func (d Deps) Reconciler(repos Repositories) *ledger.Reconciler {
	return Reconciler(repos).WithClock(d.Now)
}

// Publish hands committed events to the bus. Failures are logged, never returned.
func (d Deps) Publish(ctx context.Context, events ...shared.DomainEvent) {
	if d.Publisher == nil || len(events) == 0 {
		return
	}
	if err := d.Publisher.Publish(ctx, events...); err != nil {
		d.Logger.Warn("Failed to publish domain events",
			zap.Int("count", len(events)),
			zap.String("first_type", events[0].EventType()),
			zap.Error(err))
	}
}

// Events collects and clears the pending events of aggregates
func Events(aggs ...shared.AggregateRoot) []shared.DomainEvent {
	var events []shared.DomainEvent
	for _, a := range aggs {
		if a == nil {
			continue
		}
		events = append(events, a.GetDomainEvents()...)
		a.ClearDomainEvents()
	}
	return events
}

func isForbidden(err error) bool {
	return errors.Is(err, shared.ErrForbidden)
}
