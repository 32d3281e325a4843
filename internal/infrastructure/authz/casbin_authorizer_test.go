package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/infrastructure/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestAuthorizer(t *testing.T) *CasbinAuthorizer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	enforcer, err := NewEnforcer(db, config.AuthzConfig{SeedPolicies: true})
	require.NoError(t, err)
	return NewCasbinAuthorizer(enforcer, nil)
}

func actorWith(roles ...string) appshared.Actor {
	return appshared.Actor{TenantID: uuid.New(), UserID: uuid.New(), Roles: roles}
}

func TestCasbinAuthorizer_Roles(t *testing.T) {
	authz := newTestAuthorizer(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		roles      []string
		capability appshared.Capability
		allowed    bool
	}{
		{"owner refunds", []string{RoleOwner}, appshared.CapPaymentRefund, true},
		{"owner cannot see platform", []string{RoleOwner}, appshared.CapPlatformAdmin, false},
		{"agent sells tickets", []string{RoleAgent}, appshared.CapTicketWrite, true},
		{"agent cannot cancel tickets", []string{RoleAgent}, appshared.CapTicketCancel, false},
		{"agent cannot approve expenses", []string{RoleAgent}, appshared.CapExpenseApprove, false},
		{"accountant approves expenses", []string{RoleAccountant}, appshared.CapExpenseApprove, true},
		{"clerk moves cargo", []string{RoleCargoClerk}, appshared.CapCargoStatus, true},
		{"clerk bound to branch", []string{RoleCargoClerk}, appshared.CapCargoAnyBranch, false},
		{"role names are case-insensitive", []string{"Accountant"}, appshared.CapReportRead, true},
		{"second role grants", []string{RoleCargoClerk, RoleAccountant}, appshared.CapReportRead, true},
		{"platform admin inherits owner", []string{RolePlatformAdmin}, appshared.CapTicketCancel, true},
		{"platform admin overview", []string{RolePlatformAdmin}, appshared.CapPlatformAdmin, true},
		{"no roles", nil, appshared.CapCustomerRead, false},
		{"unknown role", []string{"intern"}, appshared.CapCustomerRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.Authorize(ctx, actorWith(tt.roles...), tt.capability)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, shared.ErrForbidden)
			}
		})
	}
}

func TestCasbinAuthorizer_DirectPermission(t *testing.T) {
	authz := newTestAuthorizer(t)

	actor := actorWith()
	actor.Permissions = []string{string(appshared.CapCurrencyWrite)}

	assert.NoError(t, authz.Authorize(context.Background(), actor, appshared.CapCurrencyWrite))
	assert.ErrorIs(t, authz.Authorize(context.Background(), actor, appshared.CapCurrencyRead), shared.ErrForbidden)
}

func TestCasbinAuthorizer_MalformedCapability(t *testing.T) {
	authz := newTestAuthorizer(t)
	err := authz.Authorize(context.Background(), actorWith(RoleOwner), appshared.Capability("nonsense"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrForbidden)
}

func TestCasbinAuthorizer_AllowedHelper(t *testing.T) {
	authz := newTestAuthorizer(t)

	ok, err := appshared.Allowed(context.Background(), authz, actorWith(RoleCargoClerk), appshared.CapCargoAnyBranch)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewEnforcer_SeedIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	first, err := NewEnforcer(db, config.AuthzConfig{SeedPolicies: true})
	require.NoError(t, err)
	before, err := first.GetPolicy()
	require.NoError(t, err)

	second, err := NewEnforcer(db, config.AuthzConfig{SeedPolicies: true})
	require.NoError(t, err)
	after, err := second.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}
