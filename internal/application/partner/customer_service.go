package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/partner"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	deps appshared.Deps
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(deps appshared.Deps) *CustomerService {
	return &CustomerService{deps: deps.WithDefaults()}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, actor appshared.Actor, req CreateCustomerRequest) (*CustomerResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCustomerWrite); err != nil {
		return nil, err
	}
	customer, err := partner.NewCustomer(actor.TenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Email != "" || req.Phone != "" || req.Country != "" {
		if err := customer.UpdateContact(req.Email, req.Phone, req.Country); err != nil {
			return nil, err
		}
	}
	customer.Passport = strings.TrimSpace(req.Passport)
	customer.Notes = req.Notes
	if by := actor.UserRef(); by != nil {
		customer.SetCreatedBy(*by)
	}

	if err := s.deps.Repos.Customers().Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update changes the provided fields of a customer
func (s *CustomerService) Update(ctx context.Context, actor appshared.Actor, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCustomerWrite); err != nil {
		return nil, err
	}
	customer, err := s.deps.Repos.Customers().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := customer.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Phone != nil || req.Country != nil {
		email, phone, country := customer.Email, customer.Phone, customer.Country
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Country != nil {
			country = *req.Country
		}
		if err := customer.UpdateContact(email, phone, country); err != nil {
			return nil, err
		}
	}
	if req.Passport != nil {
		customer.Passport = strings.TrimSpace(*req.Passport)
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.deps.Repos.Customers().Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*CustomerResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCustomerRead); err != nil {
		return nil, err
	}
	customer, err := s.deps.Repos.Customers().FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List retrieves a page of customers
func (s *CustomerService) List(ctx context.Context, actor appshared.Actor, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCustomerRead); err != nil {
		return nil, 0, err
	}
	customers, total, err := s.deps.Repos.Customers().FindAll(ctx, actor.TenantID, filter.PageQuery.Filter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out, total, nil
}
