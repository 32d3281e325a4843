// Package hajumrah covers Haj and Umrah departures (campaigns) and the customer
// bookings attached to them.
package hajumrah

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/shared"
)

// CampaignType is the pilgrimage kind
type CampaignType string

const (
	CampaignTypeHaj   CampaignType = "haj"
	CampaignTypeUmrah CampaignType = "umrah"
)

// IsValid checks if the campaign type is known
func (t CampaignType) IsValid() bool {
	return t == CampaignTypeHaj || t == CampaignTypeUmrah
}

// CampaignStatus represents the status of a campaign
type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusCanceled CampaignStatus = "canceled"
)

// Campaign errors
var (
	ErrCampaignDeparted = shared.NewDomainError("CAMPAIGN_DEPARTED", "Campaign departure date has passed")
	ErrCampaignCanceled = shared.NewDomainError("CAMPAIGN_CANCELED", "Campaign is canceled")
)

// Campaign is a scheduled departure that bookings attach to
type Campaign struct {
	shared.TenantAggregateRoot
	Name       string         `json:"name"`
	Type       CampaignType   `json:"type"`
	Date       time.Time      `json:"date"`
	ReturnDate *time.Time     `json:"return_date,omitempty"`
	Capacity   int            `json:"capacity"`
	Status     CampaignStatus `json:"status"`
	Notes      string         `json:"notes,omitempty"`
	CanceledAt *time.Time     `json:"canceled_at,omitempty"`
}

// CampaignDetails is the editable content of a campaign
type CampaignDetails struct {
	Name       string
	Type       CampaignType
	Date       time.Time
	ReturnDate *time.Time
	Capacity   int
	Notes      string
}

func (d CampaignDetails) validate() (CampaignDetails, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return d, shared.NewDomainError("INVALID_NAME", "Campaign name cannot be empty")
	}
	if !d.Type.IsValid() {
		return d, shared.NewDomainError("INVALID_TYPE", "Campaign type must be haj or umrah")
	}
	if d.Date.IsZero() {
		return d, shared.NewDomainError("INVALID_DATE", "Departure date is required")
	}
	if d.ReturnDate != nil && d.ReturnDate.Before(d.Date) {
		return d, shared.NewDomainError("INVALID_DATES", "Return date cannot be before departure date")
	}
	if d.Capacity < 0 {
		return d, shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}
	return d, nil
}

// NewCampaign creates an active campaign
func NewCampaign(tenantID uuid.UUID, d CampaignDetails) (*Campaign, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	d, err := d.validate()
	if err != nil {
		return nil, err
	}
	c := &Campaign{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Status:              CampaignStatusActive,
	}
	c.apply(d)
	return c, nil
}

func (c *Campaign) apply(d CampaignDetails) {
	c.Name = d.Name
	c.Type = d.Type
	c.Date = d.Date
	c.ReturnDate = d.ReturnDate
	c.Capacity = d.Capacity
	c.Notes = d.Notes
}

// IsCanceled reports whether the campaign is canceled
func (c *Campaign) IsCanceled() bool {
	return c.Status == CampaignStatusCanceled
}

// HasDeparted compares calendar days: a campaign departing today has not departed yet
func (c *Campaign) HasDeparted(now time.Time) bool {
	return dateOnly(c.Date).Before(dateOnly(now))
}

// EnsureBookable rejects canceled or departed campaigns
func (c *Campaign) EnsureBookable(now time.Time) error {
	if c.IsCanceled() {
		return ErrCampaignCanceled
	}
	if c.HasDeparted(now) {
		return ErrCampaignDeparted
	}
	return nil
}

// Update replaces the campaign details
func (c *Campaign) Update(d CampaignDetails, now time.Time) error {
	if c.IsCanceled() {
		return ErrCampaignCanceled
	}
	if c.HasDeparted(now) {
		return ErrCampaignDeparted
	}
	d, err := d.validate()
	if err != nil {
		return err
	}
	c.apply(d)
	c.IncrementVersion()
	return nil
}

// Cancel is blocked once the campaign has departed
func (c *Campaign) Cancel(now time.Time) error {
	if c.IsCanceled() {
		return shared.ErrAlreadyCanceled
	}
	if c.HasDeparted(now) {
		return ErrCampaignDeparted
	}
	c.Status = CampaignStatusCanceled
	c.CanceledAt = &now
	c.IncrementVersion()
	c.AddDomainEvent(NewCampaignCanceledEvent(c))
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
