package calendar

import (
	"time"

	"github.com/username/master-calendar/internal/store"
	"github.com/username/master-calendar/pkg/dateutil"
)

// MonthGrid is the renderable model for one month: a label, the count of
// empty cells before day 1 so the grid aligns under Sunday-first weekday
// headers, and every day of the month in order.
type MonthGrid struct {
	Month         time.Time
	Label         string
	LeadingBlanks int
	Days          []CalendarDay
}

// Weeks returns the grid as rows of seven cells. Leading and trailing
// blanks are nil entries.
func (g MonthGrid) Weeks() [][]*CalendarDay {
	total := g.LeadingBlanks + len(g.Days)
	rows := (total + 6) / 7

	weeks := make([][]*CalendarDay, rows)
	for row := 0; row < rows; row++ {
		week := make([]*CalendarDay, 7)
		for col := 0; col < 7; col++ {
			idx := row*7 + col - g.LeadingBlanks
			if idx >= 0 && idx < len(g.Days) {
				week[col] = &g.Days[idx]
			}
		}
		weeks[row] = week
	}
	return weeks
}

// BuildMonth classifies every day of the month containing monthStart.
// Month lengths and leap February come out of time.AddDate arithmetic,
// so callers never special-case them.
func BuildMonth(monthStart time.Time, holidays []store.Holiday, periods []store.PayrollPeriod, today time.Time) MonthGrid {
	first := dateutil.StartOfMonth(monthStart)
	days := dateutil.DaysInMonth(first)

	grid := MonthGrid{
		Month:         first,
		Label:         first.Format("January 2006"),
		LeadingBlanks: int(first.Weekday()), // Sunday == 0
		Days:          make([]CalendarDay, 0, days),
	}

	for d := 0; d < days; d++ {
		grid.Days = append(grid.Days, Classify(first.AddDate(0, 0, d), holidays, periods, today))
	}

	return grid
}
