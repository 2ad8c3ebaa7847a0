// Package workflow drives the edit panel state machine and the
// save/delete/sync coordination against the remote store.
package workflow

import (
	"strings"
	"time"

	"github.com/username/master-calendar/internal/store"
)

// PanelKind identifies which edit panel is active
type PanelKind int

const (
	KindNone PanelKind = iota
	KindHoliday
	KindPayroll
)

// Panel is the edit-panel state machine. At most one of the selected
// holiday and the selected payroll period is meaningful at a time, gated
// by the active kind.
type Panel struct {
	open    bool
	kind    PanelKind
	date    time.Time
	holiday *store.Holiday
	period  *store.PayrollPeriod
}

// NewPanel starts closed with nothing selected
func NewPanel() *Panel {
	return &Panel{}
}

// SelectDate opens the holiday panel for the given day. When a holiday
// already exists on that day (first match in collection order) the panel
// opens in edit mode on it; otherwise in create mode for the date. A
// date selection never opens the payroll panel.
func (p *Panel) SelectDate(date time.Time, holidays []store.Holiday) {
	p.open = true
	p.kind = KindHoliday
	p.date = date
	p.period = nil
	p.holiday = nil

	for i := range holidays {
		if holidays[i].MatchesDay(date) {
			p.holiday = &holidays[i]
			return
		}
	}
}

// SelectPayrollPeriod opens the payroll panel, in edit mode when a
// period is given and create mode when nil.
func (p *Panel) SelectPayrollPeriod(period *store.PayrollPeriod) {
	p.open = true
	p.kind = KindPayroll
	p.date = time.Time{}
	p.holiday = nil
	p.period = period
}

// Close resets the panel unconditionally, from any state
func (p *Panel) Close() {
	*p = Panel{}
}

// IsOpen reports whether a panel is showing
func (p *Panel) IsOpen() bool { return p.open }

// Kind returns the active panel kind
func (p *Panel) Kind() PanelKind { return p.kind }

// SelectedDate returns the date a create-mode holiday panel was opened on
func (p *Panel) SelectedDate() time.Time { return p.date }

// SelectedHoliday returns the holiday under edit, nil in create mode
func (p *Panel) SelectedHoliday() *store.Holiday {
	if p.kind != KindHoliday {
		return nil
	}
	return p.holiday
}

// SelectedPeriod returns the payroll period under edit, nil in create mode
func (p *Panel) SelectedPeriod() *store.PayrollPeriod {
	if p.kind != KindPayroll {
		return nil
	}
	return p.period
}

// CanDelete reports whether the current selection is a persisted record.
// Delete is never offered for unsaved records.
func (p *Panel) CanDelete() bool {
	switch p.kind {
	case KindHoliday:
		return p.holiday != nil && !p.holiday.ID.IsZero()
	case KindPayroll:
		return p.period != nil && !p.period.ID.IsZero()
	default:
		return false
	}
}

// HolidayForm carries the holiday panel's input fields
type HolidayForm struct {
	Name        string
	Date        time.Time
	HolidayType string
	Description string
}

// Validate checks the local preconditions for submitting the form
func (f HolidayForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Message: "Holiday name is required."}
	}
	if f.HolidayType != store.HolidayTypeRegular && f.HolidayType != store.HolidayTypeSpecial {
		return &ValidationError{Field: "holiday_type", Message: "Holiday type must be regular or special."}
	}
	if f.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "Holiday date is required."}
	}
	return nil
}

// Record builds the store payload, carrying the id of the record under
// edit when there is one.
func (f HolidayForm) Record(existing *store.Holiday) store.Holiday {
	h := store.Holiday{
		Name:        strings.TrimSpace(f.Name),
		Date:        store.NewCalDate(f.Date),
		HolidayType: f.HolidayType,
		Description: strings.TrimSpace(f.Description),
	}
	if existing != nil {
		h.ID = existing.ID
	}
	return h
}

// PeriodForm carries the payroll panel's input fields
type PeriodForm struct {
	Start time.Time
	End   time.Time
}

// Validate checks the local preconditions for submitting the form
func (f PeriodForm) Validate() error {
	if f.Start.IsZero() || f.End.IsZero() {
		return &ValidationError{Field: "dates", Message: "Both start and end dates are required."}
	}
	if f.End.Before(f.Start) {
		return &ValidationError{Field: "payroll_period_end", Message: "End date must be on or after start date."}
	}
	return nil
}

// Record builds the store payload, carrying the id of the record under
// edit when there is one.
func (f PeriodForm) Record(existing *store.PayrollPeriod) store.PayrollPeriod {
	p := store.PayrollPeriod{
		Start: store.NewCalDate(f.Start),
		End:   store.NewCalDate(f.End),
	}
	if existing != nil {
		p.ID = existing.ID
	}
	return p
}
