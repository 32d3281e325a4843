package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
)

// Adjustment is an append-only history row for a change to a ticket's amounts
type Adjustment struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	TicketID         uuid.UUID       `json:"ticket_id"`
	PreviousNetSales decimal.Decimal `json:"previous_net_sales"`
	NewNetSales      decimal.Decimal `json:"new_net_sales"`
	PreviousNetCost  decimal.Decimal `json:"previous_net_cost"`
	NewNetCost       decimal.Decimal `json:"new_net_cost"`
	Reason           string          `json:"reason"`
	CreatedBy        *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewAdjustment builds a history row; a reason is mandatory
func NewAdjustment(tenantID, ticketID uuid.UUID, prevSales, newSales, prevCost, newCost decimal.Decimal, reason string, by *uuid.UUID) (*Adjustment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}
	return &Adjustment{
		ID:               uuid.New(),
		TenantID:         tenantID,
		TicketID:         ticketID,
		PreviousNetSales: prevSales,
		NewNetSales:      newSales,
		PreviousNetCost:  prevCost,
		NewNetCost:       newCost,
		Reason:           reason,
		CreatedBy:        by,
		CreatedAt:        time.Now(),
	}, nil
}

// SalesDelta is NewNetSales - PreviousNetSales
func (a *Adjustment) SalesDelta() decimal.Decimal {
	return a.NewNetSales.Sub(a.PreviousNetSales)
}
