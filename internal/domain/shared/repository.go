package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the page size clamped to [1, 100]
func (f Filter) Limit() int {
	switch {
	case f.PageSize <= 0:
		return 20
	case f.PageSize > 100:
		return 100
	default:
		return f.PageSize
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if pageSize <= 0 {
		pageSize = 20
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// DateRange is an inclusive [From, To] range of calendar days
type DateRange struct {
	From time.Time
	To   time.Time
}

// Sequence names used with SequenceGenerator
const (
	SequenceTicket  = "ticket"
	SequenceVisa    = "visa"
	SequenceBooking = "hajumrah_booking"
)

// CargoSequence returns the per-year sequence name for cargo tracking numbers
func CargoSequence(year int) string {
	return "cargo:" + time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

// SequenceGenerator hands out per-tenant monotonically increasing numbers.
// Implementations must increment atomically in the store.
type SequenceGenerator interface {
	Next(ctx context.Context, tenantID uuid.UUID, name string) (int64, error)
}
