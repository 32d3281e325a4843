package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
	"github.com/travelerp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ExpenseService records standalone outflows and runs their approval workflow
type ExpenseService struct {
	deps appshared.Deps
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(deps appshared.Deps) *ExpenseService {
	return &ExpenseService{deps: deps.WithDefaults()}
}

// Create records a pending expense
func (s *ExpenseService) Create(ctx context.Context, actor appshared.Actor, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapExpenseWrite); err != nil {
		return nil, err
	}
	cur, err := valueobject.ParseCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	expense, err := ledger.NewExpense(actor.TenantID, req.Category, req.Description, req.Amount, cur, req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	if by := actor.UserRef(); by != nil {
		expense.SetCreatedBy(*by)
	}
	if err := s.deps.Repos.Expenses().Save(ctx, expense); err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// Approve approves one pending expense
func (s *ExpenseService) Approve(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*ExpenseResponse, error) {
	return s.transition(ctx, actor, appshared.CapExpenseApprove, id, func(e *ledger.Expense) error {
		return e.Approve(actor.UserID, s.deps.Now())
	})
}

// Reject rejects one pending expense with a reason
func (s *ExpenseService) Reject(ctx context.Context, actor appshared.Actor, id uuid.UUID, req RejectExpenseRequest) (*ExpenseResponse, error) {
	return s.transition(ctx, actor, appshared.CapExpenseApprove, id, func(e *ledger.Expense) error {
		return e.Reject(actor.UserID, req.Reason)
	})
}

// MarkPaid settles an approved expense
func (s *ExpenseService) MarkPaid(ctx context.Context, actor appshared.Actor, id uuid.UUID) (*ExpenseResponse, error) {
	return s.transition(ctx, actor, appshared.CapExpensePay, id, func(e *ledger.Expense) error {
		return e.MarkPaid(s.deps.Now())
	})
}

func (s *ExpenseService) transition(ctx context.Context, actor appshared.Actor, capability appshared.Capability, id uuid.UUID, apply func(*ledger.Expense) error) (*ExpenseResponse, error) {
	if err := s.deps.Begin(ctx, actor, capability); err != nil {
		return nil, err
	}
	var expense *ledger.Expense
	err := s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		var err error
		expense, err = repos.Expenses().FindByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if err := apply(expense); err != nil {
			return err
		}
		return repos.Expenses().Save(ctx, expense)
	})
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("Expense status changed",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("expense_id", expense.ID.String()),
		zap.String("status", string(expense.Status)))
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// ApproveMonth approves every pending expense dated in the month, all or nothing
func (s *ExpenseService) ApproveMonth(ctx context.Context, actor appshared.Actor, req ApproveMonthRequest) (*ApproveMonthResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "expense", "approve_month")
	defer span.End()
	month := fmt.Sprintf("%04d-%02d", req.Year, req.Month)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, actor.TenantID.String(),
		"expense.month", month,
	)

	if err := s.deps.Begin(ctx, actor, appshared.CapExpenseApprove); err != nil {
		return nil, err
	}
	now := s.deps.Now()
	var approved []ledger.Expense
	err := s.deps.Tx.Execute(ctx, func(ctx context.Context, repos appshared.Repositories) error {
		pending, err := repos.Expenses().FindPendingInMonth(ctx, actor.TenantID, req.Year, time.Month(req.Month))
		if err != nil {
			return err
		}
		for i := range pending {
			e := &pending[i]
			if err := e.Approve(actor.UserID, now); err != nil {
				return err
			}
			if err := repos.Expenses().Save(ctx, e); err != nil {
				return err
			}
		}
		approved = pending
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.deps.Logger.Info("Expenses approved for month",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("month", month),
		zap.Int("count", len(approved)))
	resp := &ApproveMonthResponse{Month: month, Approved: len(approved), Expenses: make([]ExpenseResponse, len(approved))}
	for i := range approved {
		resp.Expenses[i] = ToExpenseResponse(&approved[i])
	}
	return resp, nil
}

// List returns a page of expenses
func (s *ExpenseService) List(ctx context.Context, actor appshared.Actor, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapExpenseRead); err != nil {
		return nil, 0, err
	}
	f := ledger.ExpenseFilter{Filter: filter.PageQuery.Filter(), From: filter.From, To: filter.To}
	if filter.Status != "" {
		st := ledger.ExpenseStatus(filter.Status)
		if !st.IsValid() {
			return nil, 0, ledger.ErrInvalidStatus
		}
		f.Status = &st
	}
	expenses, total, err := s.deps.Repos.Expenses().FindAll(ctx, actor.TenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out, total, nil
}
