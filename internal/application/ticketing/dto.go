package ticketing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
	"github.com/travelerp/backend/internal/domain/ticketing"
)

// =============================================================================
// Ticket DTOs
// =============================================================================

// TicketRequest is the body of ticket create and full edit
type TicketRequest struct {
	Reference     string          `json:"reference" binding:"required,max=100"`
	IssueDate     *time.Time      `json:"issue_date"`
	CustomerID    *uuid.UUID      `json:"customer_id"`
	PassengerName string          `json:"passenger_name" binding:"max=200"`
	Airline       string          `json:"airline" binding:"max=100"`
	Route         string          `json:"route" binding:"max=100"`
	FlightNumber  string          `json:"flight_number" binding:"max=20"`
	DepartureDate *time.Time      `json:"departure_date"`
	ReturnDate    *time.Time      `json:"return_date"`
	SupplierName  string          `json:"supplier_name" binding:"max=200"`
	Notes         string          `json:"notes"`
	NetCost       decimal.Decimal `json:"net_cost"`
	NetSales      decimal.Decimal `json:"net_sales"`
	Currency      string          `json:"currency" binding:"omitempty,currency"`
}

func (r TicketRequest) details() (ticketing.TicketDetails, error) {
	cur, err := valueobject.ParseCurrency(r.Currency)
	if err != nil {
		return ticketing.TicketDetails{}, err
	}
	d := ticketing.TicketDetails{
		Reference:     r.Reference,
		CustomerID:    r.CustomerID,
		PassengerName: r.PassengerName,
		Airline:       r.Airline,
		Route:         r.Route,
		FlightNumber:  r.FlightNumber,
		DepartureDate: r.DepartureDate,
		ReturnDate:    r.ReturnDate,
		SupplierName:  r.SupplierName,
		Notes:         r.Notes,
		Amounts:       ticketing.SaleAmounts{NetCost: r.NetCost, NetSales: r.NetSales, Currency: cur},
	}
	if r.IssueDate != nil {
		d.IssueDate = *r.IssueDate
	}
	return d, nil
}

// AdjustTicketRequest changes only the amounts and records why
type AdjustTicketRequest struct {
	NetCost  decimal.Decimal `json:"net_cost"`
	NetSales decimal.Decimal `json:"net_sales"`
	Currency string          `json:"currency" binding:"omitempty,currency"`
	Reason   string          `json:"reason" binding:"required,max=500"`
}

// SaleListFilter is the query of ticket and visa listings
type SaleListFilter struct {
	appshared.PageQuery
	CustomerID      *uuid.UUID `form:"customer_id"`
	IncludeCanceled bool       `form:"include_canceled"`
	From            *time.Time `form:"from" time_format:"2006-01-02"`
	To              *time.Time `form:"to" time_format:"2006-01-02"`
}

func (f SaleListFilter) toDomain() ticketing.SaleFilter {
	return ticketing.SaleFilter{
		Filter:          f.PageQuery.Filter(),
		CustomerID:      f.CustomerID,
		IncludeCanceled: f.IncludeCanceled,
		From:            f.From,
		To:              f.To,
	}
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	ID            uuid.UUID                `json:"id"`
	TicketNumber  string                   `json:"ticket_number"`
	Reference     string                   `json:"reference"`
	IssueDate     time.Time                `json:"issue_date"`
	CustomerID    *uuid.UUID               `json:"customer_id,omitempty"`
	PassengerName string                   `json:"passenger_name"`
	Airline       string                   `json:"airline"`
	Route         string                   `json:"route"`
	FlightNumber  string                   `json:"flight_number"`
	DepartureDate *time.Time               `json:"departure_date,omitempty"`
	ReturnDate    *time.Time               `json:"return_date,omitempty"`
	SupplierName  string                   `json:"supplier_name"`
	Notes         string                   `json:"notes,omitempty"`
	NetCost       decimal.Decimal          `json:"net_cost"`
	NetSales      decimal.Decimal          `json:"net_sales"`
	Profit        decimal.Decimal          `json:"profit"`
	Currency      string                   `json:"currency"`
	Canceled      bool                     `json:"canceled"`
	CanceledAt    *time.Time               `json:"canceled_at,omitempty"`
	Version       int                      `json:"version"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	Ledger        *appshared.LedgerSummary `json:"ledger,omitempty"`
}

// ToTicketResponse converts a domain Ticket to TicketResponse
func ToTicketResponse(t *ticketing.Ticket) TicketResponse {
	return TicketResponse{
		ID:            t.ID,
		TicketNumber:  t.TicketNumber,
		Reference:     t.Reference,
		IssueDate:     t.IssueDate,
		CustomerID:    t.CustomerID,
		PassengerName: t.PassengerName,
		Airline:       t.Airline,
		Route:         t.Route,
		FlightNumber:  t.FlightNumber,
		DepartureDate: t.DepartureDate,
		ReturnDate:    t.ReturnDate,
		SupplierName:  t.SupplierName,
		Notes:         t.Notes,
		NetCost:       t.Amounts.NetCost,
		NetSales:      t.Amounts.NetSales,
		Profit:        t.Amounts.Profit(),
		Currency:      t.Amounts.Currency.String(),
		Canceled:      t.IsCanceled(),
		CanceledAt:    t.CanceledAt,
		Version:       t.Version,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// AdjustmentResponse is one row of a ticket's change history
type AdjustmentResponse struct {
	ID               uuid.UUID       `json:"id"`
	PreviousNetSales decimal.Decimal `json:"previous_net_sales"`
	NewNetSales      decimal.Decimal `json:"new_net_sales"`
	PreviousNetCost  decimal.Decimal `json:"previous_net_cost"`
	NewNetCost       decimal.Decimal `json:"new_net_cost"`
	SalesDelta       decimal.Decimal `json:"sales_delta"`
	Reason           string          `json:"reason"`
	CreatedBy        *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToAdjustmentResponse converts a ledger Adjustment
func ToAdjustmentResponse(a *ledger.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:               a.ID,
		PreviousNetSales: a.PreviousNetSales,
		NewNetSales:      a.NewNetSales,
		PreviousNetCost:  a.PreviousNetCost,
		NewNetCost:       a.NewNetCost,
		SalesDelta:       a.SalesDelta(),
		Reason:           a.Reason,
		CreatedBy:        a.CreatedBy,
		CreatedAt:        a.CreatedAt,
	}
}

// =============================================================================
// Visa DTOs
// =============================================================================

// VisaRequest is the body of visa create and full edit
type VisaRequest struct {
	Reference      string          `json:"reference" binding:"required,max=100"`
	CustomerID     *uuid.UUID      `json:"customer_id"`
	ApplicantName  string          `json:"applicant_name" binding:"max=200"`
	PassportNumber string          `json:"passport_number" binding:"max=30"`
	Country        string          `json:"country" binding:"max=100"`
	VisaType       string          `json:"visa_type" binding:"max=50"`
	TravelDate     *time.Time      `json:"travel_date"`
	SupplierName   string          `json:"supplier_name" binding:"max=200"`
	Notes          string          `json:"notes"`
	NetCost        decimal.Decimal `json:"net_cost"`
	NetSales       decimal.Decimal `json:"net_sales"`
	Currency       string          `json:"currency" binding:"omitempty,currency"`
}

func (r VisaRequest) details() (ticketing.VisaDetails, error) {
	cur, err := valueobject.ParseCurrency(r.Currency)
	if err != nil {
		return ticketing.VisaDetails{}, err
	}
	return ticketing.VisaDetails{
		Reference:      r.Reference,
		CustomerID:     r.CustomerID,
		ApplicantName:  r.ApplicantName,
		PassportNumber: r.PassportNumber,
		Country:        r.Country,
		VisaType:       r.VisaType,
		TravelDate:     r.TravelDate,
		SupplierName:   r.SupplierName,
		Notes:          r.Notes,
		Amounts:        ticketing.SaleAmounts{NetCost: r.NetCost, NetSales: r.NetSales, Currency: cur},
	}, nil
}

// VisaResponse represents a visa sale in API responses
type VisaResponse struct {
	ID             uuid.UUID                `json:"id"`
	VisaNumber     string                   `json:"visa_number"`
	Reference      string                   `json:"reference"`
	CustomerID     *uuid.UUID               `json:"customer_id,omitempty"`
	ApplicantName  string                   `json:"applicant_name"`
	PassportNumber string                   `json:"passport_number"`
	Country        string                   `json:"country"`
	VisaType       string                   `json:"visa_type"`
	TravelDate     *time.Time               `json:"travel_date,omitempty"`
	SupplierName   string                   `json:"supplier_name"`
	Notes          string                   `json:"notes,omitempty"`
	NetCost        decimal.Decimal          `json:"net_cost"`
	NetSales       decimal.Decimal          `json:"net_sales"`
	Profit         decimal.Decimal          `json:"profit"`
	Currency       string                   `json:"currency"`
	Canceled       bool                     `json:"canceled"`
	CanceledAt     *time.Time               `json:"canceled_at,omitempty"`
	Version        int                      `json:"version"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
	Ledger         *appshared.LedgerSummary `json:"ledger,omitempty"`
}

// ToVisaResponse converts a domain Visa to VisaResponse
func ToVisaResponse(v *ticketing.Visa) VisaResponse {
	return VisaResponse{
		ID:             v.ID,
		VisaNumber:     v.VisaNumber,
		Reference:      v.Reference,
		CustomerID:     v.CustomerID,
		ApplicantName:  v.ApplicantName,
		PassportNumber: v.PassportNumber,
		Country:        v.Country,
		VisaType:       v.VisaType,
		TravelDate:     v.TravelDate,
		SupplierName:   v.SupplierName,
		Notes:          v.Notes,
		NetCost:        v.Amounts.NetCost,
		NetSales:       v.Amounts.NetSales,
		Profit:         v.Amounts.Profit(),
		Currency:       v.Amounts.Currency.String(),
		Canceled:       v.IsCanceled(),
		CanceledAt:     v.CanceledAt,
		Version:        v.Version,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
