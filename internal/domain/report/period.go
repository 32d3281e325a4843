// Package report aggregates ledger rows into zero-filled period summaries.
// Everything here is pure: rows come in, USD totals come out.
package report

import (
	"strings"
	"time"

	"github.com/travelerp/backend/internal/domain/shared"
)

// Granularity is the bucket size of a summary
type Granularity string

const (
	GranularityToday   Granularity = "today"
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// MaxPeriods bounds the number of buckets one summary may produce
const MaxPeriods = 3660

// Report errors
var (
	ErrInvalidGranularity = shared.NewDomainError("INVALID_GRANULARITY", "Granularity must be today, daily, monthly or yearly")
	ErrInvalidRange       = shared.NewDomainError("INVALID_RANGE", "Report end date cannot be before start date")
	ErrRangeTooLarge      = shared.NewDomainError("RANGE_TOO_LARGE", "Report range produces too many periods")
)

// ParseGranularity normalizes a granularity name; empty means daily
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case "":
		return GranularityDaily, nil
	case GranularityToday, GranularityDaily, GranularityMonthly, GranularityYearly:
		return g, nil
	}
	return "", ErrInvalidGranularity
}

// Period is one half-open bucket [Start, End)
type Period struct {
	Key   string    `json:"key"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls in the bucket
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// BuildPeriods returns one bucket per day, month or year touched by [from, to],
// in order, without gaps. today yields the single day bucket of to.
// Buckets are computed in the location of from.
func BuildPeriods(from, to time.Time, g Granularity) ([]Period, error) {
	if g == GranularityToday {
		from = to
	}
	to = to.In(from.Location())
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	var (
		start time.Time
		next  func(time.Time) time.Time
		key   string
	)
	loc := from.Location()
	switch g {
	case GranularityToday, GranularityDaily:
		start = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
		next = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
		key = "2006-01-02"
	case GranularityMonthly:
		start = time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, loc)
		next = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		key = "2006-01"
	case GranularityYearly:
		start = time.Date(from.Year(), 1, 1, 0, 0, 0, 0, loc)
		next = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
		key = "2006"
	default:
		return nil, ErrInvalidGranularity
	}

	var periods []Period
	for cur := start; !cur.After(to); cur = next(cur) {
		if len(periods) == MaxPeriods {
			return nil, ErrRangeTooLarge
		}
		periods = append(periods, Period{Key: cur.Format(key), Start: cur, End: next(cur)})
	}
	return periods, nil
}

// Bounds returns the overall [start, end) of a bucket list
func Bounds(periods []Period) (time.Time, time.Time) {
	if len(periods) == 0 {
		return time.Time{}, time.Time{}
	}
	return periods[0].Start, periods[len(periods)-1].End
}
