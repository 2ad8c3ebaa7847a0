package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/username/master-calendar/pkg/dateutil"
)

// FlexibleID handles both string and number IDs from the backend.
// Django REST Framework serializes primary keys as numbers, but bulk
// imports have produced string IDs in older records. This type converts
// both formats to string.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler for FlexibleID
func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	// Try to unmarshal as string first
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}

	// Try as number
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexibleID(strconv.FormatInt(n, 10))
		return nil
	}

	return fmt.Errorf("FlexibleID: cannot unmarshal %s", string(b))
}

// MarshalJSON implements json.Marshaler for FlexibleID
func (f FlexibleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns string representation
func (f FlexibleID) String() string {
	return string(f)
}

// IsZero reports whether the record has no persisted identifier yet
func (f FlexibleID) IsZero() bool {
	return f == ""
}

// CalDate is a day-granularity calendar date exchanged as "YYYY-MM-DD".
// The backend has been observed to emit full timestamps for some legacy
// records and nulls for optional fields, and malformed dates must flow
// through as non-matching rather than abort decoding, so unmarshaling
// never fails: anything unparseable becomes the zero value.
type CalDate struct {
	time.Time
}

// NewCalDate builds a CalDate from a time value, truncated to the day
func NewCalDate(t time.Time) CalDate {
	if t.IsZero() {
		return CalDate{}
	}
	return CalDate{Time: dateutil.StartOfDay(t)}
}

// UnmarshalJSON implements json.Unmarshaler for CalDate
func (d *CalDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// null, number, object: treat as absent
		d.Time = time.Time{}
		return nil
	}

	parsed, err := dateutil.ParseDate(s)
	if err != nil {
		d.Time = time.Time{}
		return nil
	}

	d.Time = dateutil.StartOfDay(parsed)
	return nil
}

// MarshalJSON implements json.Marshaler for CalDate
func (d CalDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(dateutil.FormatISO(d.Time))
}

// Valid reports whether the date carries a usable day value
func (d CalDate) Valid() bool {
	return !d.IsZero()
}

// Holiday type values accepted by the backend
const (
	HolidayTypeRegular = "regular"
	HolidayTypeSpecial = "special"
)

// Holiday represents a named calendar-day annotation on the master calendar
type Holiday struct {
	ID          FlexibleID `json:"id,omitempty"`
	Name        string     `json:"name"`
	Date        CalDate    `json:"date"`
	HolidayType string     `json:"holiday_type"`
	Description string     `json:"description,omitempty"`
}

// MatchesDay reports whether the holiday falls on the given calendar day.
// Holidays with unparseable dates never match.
func (h Holiday) MatchesDay(date time.Time) bool {
	return h.Date.Valid() && dateutil.IsSameDay(h.Date.Time, date)
}

// PayrollPeriod represents an inclusive date range over which pay is computed
type PayrollPeriod struct {
	ID    FlexibleID `json:"id,omitempty"`
	Start CalDate    `json:"payroll_period_start"`
	End   CalDate    `json:"payroll_period_end"`
}

// ContainsDay reports whether the given calendar day falls inside the
// period. Periods with an unparseable bound never match.
func (p PayrollPeriod) ContainsDay(date time.Time) bool {
	if !p.Start.Valid() || !p.End.Valid() {
		return false
	}
	return dateutil.BetweenInclusive(date, p.Start.Time, p.End.Time)
}
