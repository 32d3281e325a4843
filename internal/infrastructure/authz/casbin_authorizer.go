// Package authz implements the service permission gate on casbin.
package authz

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var defaultModel string

// Built-in roles
const (
	RoleOwner         = "owner"
	RoleAgent         = "agent"
	RoleAccountant    = "accountant"
	RoleCargoClerk    = "cargo_clerk"
	RolePlatformAdmin = "platform_admin"
)

func subject(role string) string {
	return "role:" + strings.ToLower(strings.TrimSpace(role))
}

// NewEnforcer builds a synced enforcer whose policies live in the casbin_rule table
func NewEnforcer(db *gorm.DB, cfg config.AuthzConfig) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}

	text := defaultModel
	if cfg.ModelPath != "" {
		raw, err := os.ReadFile(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("read casbin model: %w", err)
		}
		text = string(raw)
	}
	m, err := model.NewModelFromString(text)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if cfg.SeedPolicies {
		if err := seedPolicies(enforcer); err != nil {
			return nil, err
		}
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

// CasbinAuthorizer checks capabilities against the actor's roles. Permissions
// carried directly on the actor are granted without consulting the policy.
type CasbinAuthorizer struct {
	enforcer *casbin.SyncedEnforcer
	log      *zap.Logger
}

// NewCasbinAuthorizer creates the production Authorizer
func NewCasbinAuthorizer(enforcer *casbin.SyncedEnforcer, log *zap.Logger) *CasbinAuthorizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &CasbinAuthorizer{enforcer: enforcer, log: log.Named("authz")}
}

// Authorize implements appshared.Authorizer
func (a *CasbinAuthorizer) Authorize(ctx context.Context, actor appshared.Actor, capability appshared.Capability) error {
	if slices.Contains(actor.Permissions, string(capability)) {
		return nil
	}

	obj, act, ok := strings.Cut(string(capability), ":")
	if !ok {
		return fmt.Errorf("malformed capability %q", capability)
	}
	for _, role := range actor.Roles {
		allowed, err := a.enforcer.Enforce(subject(role), obj, act)
		if err != nil {
			return fmt.Errorf("enforce %s: %w", capability, err)
		}
		if allowed {
			return nil
		}
	}

	a.log.Debug("Capability denied",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.String("capability", string(capability)),
		zap.Strings("roles", actor.Roles))
	return shared.ErrForbidden
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Owners run the whole agency but not the platform
		{subject(RoleOwner), "customer", "*"},
		{subject(RoleOwner), "ticket", "*"},
		{subject(RoleOwner), "visa", "*"},
		{subject(RoleOwner), "campaign", "*"},
		{subject(RoleOwner), "booking", "*"},
		{subject(RoleOwner), "branch", "*"},
		{subject(RoleOwner), "cargo", "*"},
		{subject(RoleOwner), "payment", "*"},
		{subject(RoleOwner), "payable", "*"},
		{subject(RoleOwner), "expense", "*"},
		{subject(RoleOwner), "currency", "*"},
		{subject(RoleOwner), "report", "*"},

		// Counter staff
		{subject(RoleAgent), "customer", "*"},
		{subject(RoleAgent), "ticket", "read"},
		{subject(RoleAgent), "ticket", "write"},
		{subject(RoleAgent), "visa", "read"},
		{subject(RoleAgent), "visa", "write"},
		{subject(RoleAgent), "campaign", "read"},
		{subject(RoleAgent), "booking", "read"},
		{subject(RoleAgent), "booking", "write"},
		{subject(RoleAgent), "payment", "read"},
		{subject(RoleAgent), "payment", "receive"},
		{subject(RoleAgent), "currency", "read"},

		// Back office
		{subject(RoleAccountant), "customer", "read"},
		{subject(RoleAccountant), "ticket", "read"},
		{subject(RoleAccountant), "ticket", "adjust"},
		{subject(RoleAccountant), "visa", "read"},
		{subject(RoleAccountant), "booking", "read"},
		{subject(RoleAccountant), "payment", "*"},
		{subject(RoleAccountant), "payable", "*"},
		{subject(RoleAccountant), "expense", "*"},
		{subject(RoleAccountant), "currency", "*"},
		{subject(RoleAccountant), "report", "read"},

		// Branch counters; cargo:any_branch stays with owners
		{subject(RoleCargoClerk), "branch", "read"},
		{subject(RoleCargoClerk), "cargo", "read"},
		{subject(RoleCargoClerk), "cargo", "write"},
		{subject(RoleCargoClerk), "cargo", "status"},
		{subject(RoleCargoClerk), "payment", "read"},
		{subject(RoleCargoClerk), "payment", "receive"},

		{subject(RolePlatformAdmin), "platform", "admin"},
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("seed policy %v: %w", p, err)
		}
	}
	// Platform admins can act inside any tenant they operate on
	if _, err := enforcer.AddGroupingPolicy(subject(RolePlatformAdmin), subject(RoleOwner)); err != nil {
		return fmt.Errorf("seed role link: %w", err)
	}
	return nil
}

var _ appshared.Authorizer = (*CasbinAuthorizer)(nil)
