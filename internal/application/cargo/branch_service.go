package cargo

import (
	"context"

	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/cargo"
)

// BranchService manages the tenant's cargo branches
type BranchService struct {
	deps appshared.Deps
}

// NewBranchService creates a new BranchService
func NewBranchService(deps appshared.Deps) *BranchService {
	return &BranchService{deps: deps.WithDefaults()}
}

// Create adds a branch
func (s *BranchService) Create(ctx context.Context, actor appshared.Actor, req CreateBranchRequest) (*BranchResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapBranchWrite); err != nil {
		return nil, err
	}
	branch, err := cargo.NewBranch(actor.TenantID, req.Code, req.Name, req.City, req.Country)
	if err != nil {
		return nil, err
	}
	if by := actor.UserRef(); by != nil {
		branch.SetCreatedBy(*by)
	}
	if err := s.deps.Repos.Branches().Save(ctx, branch); err != nil {
		return nil, err
	}
	resp := ToBranchResponse(branch)
	return &resp, nil
}

// List returns every branch of the tenant
func (s *BranchService) List(ctx context.Context, actor appshared.Actor) ([]BranchResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapBranchRead); err != nil {
		return nil, err
	}
	branches, err := s.deps.Repos.Branches().FindAll(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	out := make([]BranchResponse, len(branches))
	for i := range branches {
		out[i] = ToBranchResponse(&branches[i])
	}
	return out, nil
}
