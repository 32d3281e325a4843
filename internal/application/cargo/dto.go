package cargo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/cargo"
)

// CreateBranchRequest is the body of branch create
type CreateBranchRequest struct {
	Code    string `json:"code" binding:"required,max=20"`
	Name    string `json:"name" binding:"required,max=200"`
	City    string `json:"city" binding:"max=100"`
	Country string `json:"country" binding:"max=2"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID      uuid.UUID `json:"id"`
	Code    string    `json:"code"`
	Name    string    `json:"name"`
	City    string    `json:"city,omitempty"`
	Country string    `json:"country,omitempty"`
}

// ToBranchResponse converts a domain Branch
func ToBranchResponse(b *cargo.Branch) BranchResponse {
	return BranchResponse{ID: b.ID, Code: b.Code, Name: b.Name, City: b.City, Country: b.Country}
}

// ItemRequest is one shipment line
type ItemRequest struct {
	Description string          `json:"description" binding:"max=200"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Weight      decimal.Decimal `json:"weight"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateShipmentRequest is the body of shipment create
type CreateShipmentRequest struct {
	CustomerID          *uuid.UUID    `json:"customer_id"`
	SenderName          string        `json:"sender_name" binding:"required,max=200"`
	SenderPhone         string        `json:"sender_phone" binding:"max=50"`
	ReceiverName        string        `json:"receiver_name" binding:"required,max=200"`
	ReceiverPhone       string        `json:"receiver_phone" binding:"max=50"`
	ReceiverAddress     string        `json:"receiver_address" binding:"max=500"`
	SourceBranchID      uuid.UUID     `json:"source_branch_id" binding:"required"`
	DestinationBranchID uuid.UUID     `json:"destination_branch_id" binding:"required"`
	Currency            string        `json:"currency" binding:"omitempty,currency"`
	Items               []ItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes               string        `json:"notes"`
}

// ChangeStatusRequest moves a shipment along the pipeline
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"max=500"`
}

// ShipmentListFilter is the query of shipment listings
type ShipmentListFilter struct {
	appshared.PageQuery
	Status   string     `form:"status"`
	BranchID *uuid.UUID `form:"branch_id"`
}

// ItemResponse is one shipment line in API responses
type ItemResponse struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Weight      decimal.Decimal `json:"weight"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// TrackingItemResponse is a shipment line on the public tracking page
type TrackingItemResponse struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Weight      decimal.Decimal `json:"weight"`
}

// TrackingLogResponse is one entry of the audit trail
type TrackingLogResponse struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                  uuid.UUID                `json:"id"`
	TrackingNumber      string                   `json:"tracking_number"`
	CustomerID          *uuid.UUID               `json:"customer_id,omitempty"`
	SenderName          string                   `json:"sender_name"`
	SenderPhone         string                   `json:"sender_phone,omitempty"`
	ReceiverName        string                   `json:"receiver_name"`
	ReceiverPhone       string                   `json:"receiver_phone,omitempty"`
	ReceiverAddress     string                   `json:"receiver_address,omitempty"`
	SourceBranchID      uuid.UUID                `json:"source_branch_id"`
	DestinationBranchID uuid.UUID                `json:"destination_branch_id"`
	Items               []ItemResponse           `json:"items"`
	TotalWeight         decimal.Decimal          `json:"total_weight"`
	Price               decimal.Decimal          `json:"price"`
	Currency            string                   `json:"currency"`
	Status              string                   `json:"status"`
	DeliveredAt         *time.Time               `json:"delivered_at,omitempty"`
	Logs                []TrackingLogResponse    `json:"logs"`
	CreatedAt           time.Time                `json:"created_at"`
	Ledger              *appshared.LedgerSummary `json:"ledger,omitempty"`
}

func toLogs(logs []cargo.TrackingLog) []TrackingLogResponse {
	out := make([]TrackingLogResponse, len(logs))
	for i, l := range logs {
		out[i] = TrackingLogResponse{Status: string(l.Status), Note: l.Note, CreatedAt: l.CreatedAt}
	}
	return out
}

// ToShipmentResponse converts a domain Shipment
func ToShipmentResponse(s *cargo.Shipment) ShipmentResponse {
	items := make([]ItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = ItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			Weight:      it.Weight,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount(),
		}
	}
	return ShipmentResponse{
		ID:                  s.ID,
		TrackingNumber:      s.TrackingNumber,
		CustomerID:          s.CustomerID,
		SenderName:          s.SenderName,
		SenderPhone:         s.SenderPhone,
		ReceiverName:        s.ReceiverName,
		ReceiverPhone:       s.ReceiverPhone,
		ReceiverAddress:     s.ReceiverAddress,
		SourceBranchID:      s.SourceBranchID,
		DestinationBranchID: s.DestinationBranchID,
		Items:               items,
		TotalWeight:         s.TotalWeight,
		Price:               s.Price,
		Currency:            s.Currency.String(),
		Status:              string(s.Status),
		DeliveredAt:         s.DeliveredAt,
		Logs:                toLogs(s.Logs),
		CreatedAt:           s.CreatedAt,
	}
}

// TrackingResponse is the public view of a shipment without prices or contact details
type TrackingResponse struct {
	TrackingNumber string                 `json:"tracking_number"`
	Status         string                 `json:"status"`
	From           string                 `json:"from"`
	To             string                 `json:"to"`
	TotalWeight    decimal.Decimal        `json:"total_weight"`
	Items          []TrackingItemResponse `json:"items"`
	Logs           []TrackingLogResponse  `json:"logs"`
	DeliveredAt    *time.Time             `json:"delivered_at,omitempty"`
}

// ToTrackingResponse builds the public view; branch names may be empty
func ToTrackingResponse(s *cargo.Shipment, from, to string) TrackingResponse {
	items := make([]TrackingItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = TrackingItemResponse{Description: it.Description, Quantity: it.Quantity, Weight: it.Weight}
	}
	return TrackingResponse{
		TrackingNumber: s.TrackingNumber,
		Status:         string(s.Status),
		From:           from,
		To:             to,
		TotalWeight:    s.TotalWeight,
		Items:          items,
		Logs:           toLogs(s.Logs),
		DeliveredAt:    s.DeliveredAt,
	}
}
