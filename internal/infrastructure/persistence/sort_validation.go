package persistence

import (
	"strings"

	"github.com/travelerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// paginate applies the whitelisted order and the page window of filter
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"country":    true,
}

// TicketSortFields contains allowed sort fields for tickets
var TicketSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"ticket_number":  true,
	"issue_date":     true,
	"departure_date": true,
	"passenger_name": true,
	"net_sales":      true,
}

// VisaSortFields contains allowed sort fields for visas
var VisaSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"visa_number":    true,
	"travel_date":    true,
	"applicant_name": true,
	"net_sales":      true,
}

// CampaignSortFields contains allowed sort fields for campaigns
var CampaignSortFields = map[string]bool{
	"created_at": true,
	"name":       true,
	"date":       true,
	"status":     true,
}

// BookingSortFields contains allowed sort fields for Haj/Umrah bookings
var BookingSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"booking_number": true,
	"status":         true,
	"confirmed_at":   true,
}

// ShipmentSortFields contains allowed sort fields for cargo shipments
var ShipmentSortFields = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"tracking_number": true,
	"status":          true,
	"price":           true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"created_at":   true,
	"payment_date": true,
	"amount":       true,
	"status":       true,
}

// PayableSortFields contains allowed sort fields for payables
var PayableSortFields = map[string]bool{
	"created_at": true,
	"deadline":   true,
	"amount":     true,
	"balance":    true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"created_at":   true,
	"expense_date": true,
	"amount":       true,
	"status":       true,
	"category":     true,
}
