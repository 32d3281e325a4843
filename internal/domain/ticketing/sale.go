// Package ticketing covers air tickets and visas: single-line sales with a supplier
// cost and a customer price, each backed by at most one active payable and payment.
package ticketing

import (
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// Sale errors
var (
	ErrNetSalesBelowCost = shared.NewDomainError("NET_SALES_BELOW_COST", "Net sales cannot be less than net cost")
	ErrNegativeAmounts   = shared.NewDomainError("INVALID_AMOUNT", "Net cost and net sales cannot be negative")
	ErrReferenceRequired = shared.NewDomainError("REFERENCE_REQUIRED", "Reference is required")
)

// SaleAmounts is what the agency pays its supplier and what the customer pays the agency
type SaleAmounts struct {
	NetCost  decimal.Decimal      `json:"net_cost"`
	NetSales decimal.Decimal      `json:"net_sales"`
	Currency valueobject.Currency `json:"currency"`
}

// Validate enforces the no-underwater-sale rule
func (s SaleAmounts) Validate() error {
	if s.NetCost.IsNegative() || s.NetSales.IsNegative() {
		return ErrNegativeAmounts
	}
	if s.NetSales.LessThan(s.NetCost) {
		return ErrNetSalesBelowCost
	}
	return nil
}

// Profit is NetSales - NetCost
func (s SaleAmounts) Profit() decimal.Decimal {
	return s.NetSales.Sub(s.NetCost)
}

func (s SaleAmounts) normalized() SaleAmounts {
	if s.Currency == "" {
		s.Currency = valueobject.DefaultCurrency
	}
	return s
}
