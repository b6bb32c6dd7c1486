// Package rental resolves rental terms into canonical durations. It is
// pure computation: no I/O, no clock reads (the caller supplies "now").
package rental

import (
	"math"
	"time"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
)

// Term is a rental duration request. Exactly one concrete shape applies
// per order line: an hourly unit count, an explicit date range, or an
// explicit day count. A request carrying none of these is rejected at
// decode time and never reaches Resolve.
type Term interface {
	rentalTerm()
	Type() domain.RentalType
}

// HourlyTerm rents by the hour. Hours may be fractional.
type HourlyTerm struct {
	Hours float64
}

// DailyRangeTerm rents from Start until End; the day count is the range
// rounded up to whole days.
type DailyRangeTerm struct {
	Start time.Time
	End   time.Time
}

// DailyCountTerm rents for an explicit number of days with no dates given.
type DailyCountTerm struct {
	Days float64
}

func (HourlyTerm) rentalTerm()     {}
func (DailyRangeTerm) rentalTerm() {}
func (DailyCountTerm) rentalTerm() {}

func (HourlyTerm) Type() domain.RentalType     { return domain.RentalTypeHourly }
func (DailyRangeTerm) Type() domain.RentalType { return domain.RentalTypeDaily }
func (DailyCountTerm) Type() domain.RentalType { return domain.RentalTypeDaily }

// Resolved is the canonical duration triple for one order line.
type Resolved struct {
	Days             float64
	Hours            *float64
	ExpectedReturnAt time.Time
}

// Resolve turns a term into a Resolved duration relative to now.
// Post-condition: Days >= domain.MinDurationDays; a term whose computed
// duration is not positive is a hard validation error, never clamped up
// from zero.
func Resolve(term Term, now time.Time) (Resolved, error) {
	switch t := term.(type) {
	case HourlyTerm:
		if t.Hours <= 0 {
			return Resolved{}, domain.NewError(domain.ErrInvalidInput, "hours must be positive")
		}
		hours := t.Hours
		return Resolved{
			Days:             math.Max(hours/24, domain.MinDurationDays),
			Hours:            &hours,
			ExpectedReturnAt: now.Add(time.Duration(hours * float64(time.Hour))),
		}, nil

	case DailyRangeTerm:
		diff := t.End.Sub(t.Start)
		if diff < 0 {
			return Resolved{}, domain.NewError(domain.ErrInvalidInput, "end date must not be before start date")
		}
		days := math.Ceil(diff.Hours() / 24)
		if days < 1 {
			days = 1
		}
		// An explicit end date wins over now + days*24h.
		return Resolved{
			Days:             days,
			ExpectedReturnAt: t.End,
		}, nil

	case DailyCountTerm:
		if t.Days <= 0 {
			return Resolved{}, domain.NewError(domain.ErrInvalidInput, "days must be positive")
		}
		days := math.Max(t.Days, domain.MinDurationDays)
		return Resolved{
			Days:             days,
			ExpectedReturnAt: now.Add(time.Duration(days * 24 * float64(time.Hour))),
		}, nil

	default:
		return Resolved{}, domain.NewError(domain.ErrInvalidInput, "unknown rental term")
	}
}
