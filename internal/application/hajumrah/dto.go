package hajumrah

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/shared"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Campaign DTOs
// =============================================================================

// CampaignRequest is the body of campaign create and update
type CampaignRequest struct {
	Name       string     `json:"name" binding:"required,max=200"`
	Type       string     `json:"type" binding:"required,oneof=haj umrah"`
	Date       time.Time  `json:"date" binding:"required"`
	ReturnDate *time.Time `json:"return_date"`
	Capacity   int        `json:"capacity" binding:"min=0"`
	Notes      string     `json:"notes"`
}

func (r CampaignRequest) details() hajumrah.CampaignDetails {
	return hajumrah.CampaignDetails{
		Name:       r.Name,
		Type:       hajumrah.CampaignType(r.Type),
		Date:       r.Date,
		ReturnDate: r.ReturnDate,
		Capacity:   r.Capacity,
		Notes:      r.Notes,
	}
}

// CampaignResponse represents a campaign in API responses
type CampaignResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Date       time.Time  `json:"date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Capacity   int        `json:"capacity"`
	Status     string     `json:"status"`
	Departed   bool       `json:"departed"`
	Notes      string     `json:"notes,omitempty"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToCampaignResponse converts a domain Campaign
func ToCampaignResponse(c *hajumrah.Campaign, now time.Time) CampaignResponse {
	return CampaignResponse{
		ID:         c.ID,
		Name:       c.Name,
		Type:       string(c.Type),
		Date:       c.Date,
		ReturnDate: c.ReturnDate,
		Capacity:   c.Capacity,
		Status:     string(c.Status),
		Departed:   c.HasDeparted(now),
		Notes:      c.Notes,
		CanceledAt: c.CanceledAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// CampaignCancelResponse reports a campaign cancellation and its cascade
type CampaignCancelResponse struct {
	Campaign         CampaignResponse `json:"campaign"`
	CanceledBookings int              `json:"canceled_bookings"`
	RefundedPayments int              `json:"refunded_payments"`
	CanceledPayables int              `json:"canceled_payables"`
}

// =============================================================================
// Booking DTOs
// =============================================================================

// PackageRequest is one package line
type PackageRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Cost        decimal.Decimal `json:"cost"`
}

// BookingRequest is the body of booking create and edit
type BookingRequest struct {
	CustomerID   uuid.UUID        `json:"customer_id" binding:"required"`
	CampaignID   *uuid.UUID       `json:"campaign_id"`
	Status       string           `json:"status" binding:"omitempty,oneof=draft confirmed canceled"`
	Packages     []PackageRequest `json:"packages" binding:"dive"`
	Profit       decimal.Decimal  `json:"profit"`
	Currency     string           `json:"currency" binding:"omitempty,currency"`
	SupplierName string           `json:"supplier_name" binding:"max=200"`
	Notes        string           `json:"notes"`
}

func (r BookingRequest) details() (hajumrah.BookingDetails, error) {
	cur, err := valueobject.ParseCurrency(r.Currency)
	if err != nil {
		return hajumrah.BookingDetails{}, err
	}
	d := hajumrah.BookingDetails{
		CustomerID:   r.CustomerID,
		CampaignID:   r.CampaignID,
		Status:       hajumrah.BookingStatus(r.Status),
		Profit:       r.Profit,
		Currency:     cur,
		SupplierName: r.SupplierName,
		Notes:        r.Notes,
	}
	for _, p := range r.Packages {
		d.Packages = append(d.Packages, hajumrah.PackageLine{
			Name:        p.Name,
			Description: p.Description,
			Amount:      p.Amount,
			Cost:        p.Cost,
		})
	}
	return d, nil
}

// CampaignListFilter is the query of campaign listings
type CampaignListFilter struct {
	appshared.PageQuery
	Status string `form:"status" binding:"omitempty,oneof=active canceled"`
	Type   string `form:"type" binding:"omitempty,oneof=haj umrah"`
}

func (f CampaignListFilter) toDomain() shared.Filter {
	filter := f.PageQuery.Filter()
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.Type != "" {
		filter.Filters["type"] = f.Type
	}
	return filter
}

// BookingListFilter is the query of booking listings
type BookingListFilter struct {
	appshared.PageQuery
	CampaignID *uuid.UUID `form:"campaign_id"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft confirmed canceled"`
}

func (f BookingListFilter) toDomain() hajumrah.BookingFilter {
	out := hajumrah.BookingFilter{
		Filter:     f.PageQuery.Filter(),
		CampaignID: f.CampaignID,
		CustomerID: f.CustomerID,
	}
	if f.Status != "" {
		st := hajumrah.BookingStatus(f.Status)
		out.Status = &st
	}
	return out
}

// PackageResponse is one package line in API responses
type PackageResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Cost        decimal.Decimal `json:"cost"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID            uuid.UUID                `json:"id"`
	BookingNumber string                   `json:"booking_number"`
	CustomerID    uuid.UUID                `json:"customer_id"`
	CampaignID    *uuid.UUID               `json:"campaign_id,omitempty"`
	Status        string                   `json:"status"`
	Packages      []PackageResponse        `json:"packages"`
	Profit        decimal.Decimal          `json:"profit"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	TotalCost     decimal.Decimal          `json:"total_cost"`
	Currency      string                   `json:"currency"`
	SupplierName  string                   `json:"supplier_name,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	ConfirmedAt   *time.Time               `json:"confirmed_at,omitempty"`
	CanceledAt    *time.Time               `json:"canceled_at,omitempty"`
	Version       int                      `json:"version"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	Ledger        *appshared.LedgerSummary `json:"ledger,omitempty"`
}

// ToBookingResponse converts a domain Booking
func ToBookingResponse(b *hajumrah.Booking) BookingResponse {
	pkgs := make([]PackageResponse, len(b.Packages))
	for i, p := range b.Packages {
		pkgs[i] = PackageResponse{ID: p.ID, Name: p.Name, Description: p.Description, Amount: p.Amount, Cost: p.Cost}
	}
	return BookingResponse{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		CustomerID:    b.CustomerID,
		CampaignID:    b.CampaignID,
		Status:        string(b.Status),
		Packages:      pkgs,
		Profit:        b.Profit,
		TotalAmount:   b.TotalAmount(),
		TotalCost:     b.TotalCost(),
		Currency:      b.Currency.String(),
		SupplierName:  b.SupplierName,
		Notes:         b.Notes,
		ConfirmedAt:   b.ConfirmedAt,
		CanceledAt:    b.CanceledAt,
		Version:       b.Version,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
