// Package view owns the calendar navigation state: the anchor date, the
// year/month view mode and the month-window size.
package view

import (
	"time"

	"github.com/username/master-calendar/pkg/dateutil"
)

// Mode selects between the full-year grid and a sliding month window
type Mode int

const (
	ModeYear Mode = iota + 1
	ModeMonth
)

// String returns the mode label used in headers and logs
func (m Mode) String() string {
	if m == ModeMonth {
		return "month"
	}
	return "year"
}

// DefaultWindowSize is the month count applied when entering month view
const DefaultWindowSize = 3

// WindowSizes are the month-window sizes the view offers
var WindowSizes = []int{1, 3, 6}

// Navigator is the view-navigation state machine. The anchor is kept
// normalized to the first of its month: every query the navigator
// exposes depends only on the anchor's month and year, and first-of-month
// arithmetic makes next/previous exact inverses.
type Navigator struct {
	anchor time.Time
	mode   Mode
	window int
}

// NewNavigator starts in year view anchored on the given date
func NewNavigator(anchor time.Time) *Navigator {
	return NewNavigatorWithWindow(anchor, DefaultWindowSize)
}

// NewNavigatorWithWindow starts in year view with a pre-configured
// month-view window. An unsupported size falls back to the default.
func NewNavigatorWithWindow(anchor time.Time, window int) *Navigator {
	valid := false
	for _, allowed := range WindowSizes {
		if window == allowed {
			valid = true
			break
		}
	}
	if !valid {
		window = DefaultWindowSize
	}
	return &Navigator{
		anchor: dateutil.StartOfMonth(anchor),
		mode:   ModeYear,
		window: window,
	}
}

// Anchor returns the current anchor, normalized to its month start
func (n *Navigator) Anchor() time.Time { return n.anchor }

// Mode returns the current view mode
func (n *Navigator) Mode() Mode { return n.mode }

// WindowSize returns the month-window size used in month view
func (n *Navigator) WindowSize() int { return n.window }

// GoToPrevious moves back one year in year view, one window in month view
func (n *Navigator) GoToPrevious() {
	if n.mode == ModeYear {
		n.anchor = n.anchor.AddDate(-1, 0, 0)
		return
	}
	n.anchor = dateutil.AddMonths(n.anchor, -n.window)
}

// GoToNext moves forward one year in year view, one window in month view
func (n *Navigator) GoToNext() {
	if n.mode == ModeYear {
		n.anchor = n.anchor.AddDate(1, 0, 0)
		return
	}
	n.anchor = dateutil.AddMonths(n.anchor, n.window)
}

// GoToCurrent re-anchors on today without changing the view mode
func (n *Navigator) GoToCurrent(today time.Time) {
	n.anchor = dateutil.StartOfMonth(today)
}

// ToggleViewMode switches between year and month view. The window size
// carries across toggles.
func (n *Navigator) ToggleViewMode() {
	if n.mode == ModeYear {
		n.mode = ModeMonth
		return
	}
	n.mode = ModeYear
}

// SetWindowSize changes the month window. Only meaningful in month view
// and only for the offered sizes; anything else is a no-op.
func (n *Navigator) SetWindowSize(size int) {
	if n.mode != ModeMonth {
		return
	}
	for _, allowed := range WindowSizes {
		if size == allowed {
			n.window = size
			return
		}
	}
}

// VisibleMonths returns the month starts the current view shows: the
// twelve months of the anchor's year in year view, regardless of which
// month the anchor sits in, or window consecutive months starting at the
// anchor's month.
func (n *Navigator) VisibleMonths() []time.Time {
	if n.mode == ModeYear {
		jan := dateutil.StartOfYear(n.anchor)
		months := make([]time.Time, 12)
		for i := range months {
			months[i] = dateutil.AddMonths(jan, i)
		}
		return months
	}

	months := make([]time.Time, n.window)
	for i := range months {
		months[i] = dateutil.AddMonths(n.anchor, i)
	}
	return months
}
