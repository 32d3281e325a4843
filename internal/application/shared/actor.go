package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// Actor is the authenticated caller of a service operation.
// TenantID scopes every read and write the operation makes.
type Actor struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	BranchID    *uuid.UUID
	Roles       []string
	Permissions []string
}

// UserRef returns the user ID for created_by columns, nil for system callers
func (a Actor) UserRef() *uuid.UUID {
	if a.UserID == uuid.Nil {
		return nil
	}
	id := a.UserID
	return &id
}

// Validate rejects an actor without a tenant
func (a Actor) Validate() error {
	if a.TenantID == uuid.Nil {
		return shared.NewDomainError("TENANT_REQUIRED", "Tenant is required")
	}
	return nil
}

// Capability names one permission checked by the Authorizer, as object:action
type Capability string

const (
	CapCustomerRead   Capability = "customer:read"
	CapCustomerWrite  Capability = "customer:write"
	CapTicketRead     Capability = "ticket:read"
	CapTicketWrite    Capability = "ticket:write"
	CapTicketAdjust   Capability = "ticket:adjust"
	CapTicketCancel   Capability = "ticket:cancel"
	CapVisaRead       Capability = "visa:read"
	CapVisaWrite      Capability = "visa:write"
	CapVisaCancel     Capability = "visa:cancel"
	CapCampaignRead   Capability = "campaign:read"
	CapCampaignWrite  Capability = "campaign:write"
	CapCampaignCancel Capability = "campaign:cancel"
	CapBookingRead    Capability = "booking:read"
	CapBookingWrite   Capability = "booking:write"
	CapBranchRead     Capability = "branch:read"
	CapBranchWrite    Capability = "branch:write"
	CapCargoRead      Capability = "cargo:read"
	CapCargoWrite     Capability = "cargo:write"
	CapCargoStatus    Capability = "cargo:status"
	CapCargoAnyBranch Capability = "cargo:any_branch"
	CapPaymentRead    Capability = "payment:read"
	CapPaymentReceive Capability = "payment:receive"
	CapPaymentRefund  Capability = "payment:refund"
	CapPayableRead    Capability = "payable:read"
	CapPayablePay     Capability = "payable:pay"
	CapExpenseRead    Capability = "expense:read"
	CapExpenseWrite   Capability = "expense:write"
	CapExpenseApprove Capability = "expense:approve"
	CapExpensePay     Capability = "expense:pay"
	CapCurrencyRead   Capability = "currency:read"
	CapCurrencyWrite  Capability = "currency:write"
	CapReportRead     Capability = "report:read"
	CapPlatformAdmin  Capability = "platform:admin"
)

// Authorizer is the permission gate every service calls once per operation
type Authorizer interface {
	// Authorize returns shared.ErrForbidden when the actor lacks the capability
	Authorize(ctx context.Context, actor Actor, capability Capability) error
}

// Allowed reports whether the actor holds the capability, surfacing only
// infrastructure errors
func Allowed(ctx context.Context, authz Authorizer, actor Actor, capability Capability) (bool, error) {
	err := authz.Authorize(ctx, actor, capability)
	switch {
	case err == nil:
		return true, nil
	case isForbidden(err):
		return false, nil
	default:
		return false, err
	}
}
