// Package testutil provides shared fixtures for service and handler tests:
// an in-memory SQLite database with the full schema, a seeded tenant, an
// event recorder and a controllable clock.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/cargo"
	"github.com/travelerp/backend/internal/domain/partner"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/tenant"
	"github.com/travelerp/backend/internal/infrastructure/persistence"
	"github.com/travelerp/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory database with every table migrated.
// A single connection keeps it alive until the test ends.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// NewTestUUID returns a UUID derived from seed, stable across runs
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
}

// Clock is a settable time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts the clock at now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to now
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// EventRecorder is an EventPublisher that keeps what it was given
type EventRecorder struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

// Publish records events and returns the configured error
func (r *EventRecorder) Publish(_ context.Context, events ...shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return r.err
}

// FailWith makes every later Publish return err after recording
func (r *EventRecorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Types lists the recorded event types in publish order
func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

// Count returns how many events of eventType were recorded
func (r *EventRecorder) Count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

// Events returns a copy of the recorded events
func (r *EventRecorder) Events() []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shared.DomainEvent(nil), r.events...)
}

// Reset forgets recorded events
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Authorizer grants every capability except the ones listed in Deny
type Authorizer struct {
	mu   sync.Mutex
	deny map[appshared.Capability]bool
}

// Deny revokes capabilities for the rest of the test
func (a *Authorizer) Deny(caps ...appshared.Capability) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.deny == nil {
		a.deny = map[appshared.Capability]bool{}
	}
	for _, c := range caps {
		a.deny[c] = true
	}
}

// Authorize implements appshared.Authorizer
func (a *Authorizer) Authorize(_ context.Context, _ appshared.Actor, capability appshared.Capability) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.deny[capability] {
		return shared.ErrForbidden
	}
	return nil
}

// Harness wires services against a real SQLite schema
type Harness struct {
	DB     *gorm.DB
	Deps   appshared.Deps
	Events *EventRecorder
	Authz  *Authorizer
	Clock  *Clock
	Tenant *tenant.Tenant
	Actor  appshared.Actor
}

// NewHarness seeds one active tenant and returns deps bound to it
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	db := NewSQLiteDB(t)
	h := &Harness{
		DB:     db,
		Events: &EventRecorder{},
		Authz:  &Authorizer{},
		Clock:  NewClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
	}
	h.Tenant = h.AddTenant(t, "acme-travel")
	h.Actor = appshared.Actor{TenantID: h.Tenant.ID, UserID: NewTestUUID("agent")}
	h.Deps = appshared.Deps{
		Tx:        persistence.NewGormTransactionScope(db),
		Repos:     persistence.NewRepositories(db),
		Authz:     h.Authz,
		Publisher: h.Events,
		Now:       h.Clock.Now,
	}.WithDefaults()
	return h
}

// AddTenant stores another active tenant
func (h *Harness) AddTenant(t *testing.T, code string) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.NewTenant(code, code)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormTenantRepository(h.DB).Save(context.Background(), tn))
	return tn
}

// ActorFor returns an actor of another tenant
func (h *Harness) ActorFor(tn *tenant.Tenant) appshared.Actor {
	return appshared.Actor{TenantID: tn.ID, UserID: NewTestUUID("agent-" + tn.Code)}
}

// AddCustomer stores a customer of tn
func (h *Harness) AddCustomer(t *testing.T, tn *tenant.Tenant, name string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(tn.ID, name)
	require.NoError(t, err)
	require.NoError(t, persistence.NewRepositories(h.DB).Customers().Save(context.Background(), c))
	return c
}

// AddBranch stores a cargo branch of tn
func (h *Harness) AddBranch(t *testing.T, tn *tenant.Tenant, code, name, city string) *cargo.Branch {
	t.Helper()
	b, err := cargo.NewBranch(tn.ID, code, name, city, "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewRepositories(h.DB).Branches().Save(context.Background(), b))
	return b
}
