// Package calendar derives the render model for master-calendar days:
// classification of single days and month grids built from them.
package calendar

import (
	"time"

	"github.com/username/master-calendar/internal/store"
	"github.com/username/master-calendar/pkg/dateutil"
)

// Classification is the single highest-precedence category assigned to a
// calendar day for display.
type Classification int

const (
	ClassPlain Classification = iota + 1
	ClassWeekend
	ClassPayrollMember
	ClassHolidayRegular
	ClassHolidaySpecial
)

// String returns a short label for the classification
func (c Classification) String() string {
	switch c {
	case ClassPlain:
		return "plain"
	case ClassWeekend:
		return "weekend"
	case ClassPayrollMember:
		return "payroll"
	case ClassHolidayRegular:
		return "regular holiday"
	case ClassHolidaySpecial:
		return "special holiday"
	default:
		return "unknown"
	}
}

// IsHoliday reports whether the classification is a holiday of either type
func (c Classification) IsHoliday() bool {
	return c == ClassHolidayRegular || c == ClassHolidaySpecial
}

// CalendarDay is the derived render model for one day. It is recomputed
// from the collections on every pass and never stored.
type CalendarDay struct {
	Date    time.Time
	Class   Classification
	Weekend bool
	Today   bool
	Holiday *store.Holiday
	Period  *store.PayrollPeriod
}

// Classify maps one calendar day to its render model.
//
// Precedence for the classification value: holiday (regular or special),
// then payroll-period membership, then weekend, then plain. The weekend
// flag is computed independently and stays set even when a holiday or
// period wins the classification. Holidays and periods match at day
// granularity; records with unparseable dates never match. Ties go to
// the first record in collection order.
func Classify(date time.Time, holidays []store.Holiday, periods []store.PayrollPeriod, today time.Time) CalendarDay {
	day := CalendarDay{
		Date:    dateutil.StartOfDay(date),
		Weekend: dateutil.IsWeekend(date),
		Today:   dateutil.IsSameDay(date, today),
	}

	for i := range holidays {
		if holidays[i].MatchesDay(date) {
			day.Holiday = &holidays[i]
			break
		}
	}
	for i := range periods {
		if periods[i].ContainsDay(date) {
			day.Period = &periods[i]
			break
		}
	}

	// Anything other than a regular holiday renders as special, which is
	// how the backend's two-value enum has always been displayed.
	switch {
	case day.Holiday != nil && day.Holiday.HolidayType == store.HolidayTypeRegular:
		day.Class = ClassHolidayRegular
	case day.Holiday != nil:
		day.Class = ClassHolidaySpecial
	case day.Period != nil:
		day.Class = ClassPayrollMember
	case day.Weekend:
		day.Class = ClassWeekend
	default:
		day.Class = ClassPlain
	}

	return day
}
