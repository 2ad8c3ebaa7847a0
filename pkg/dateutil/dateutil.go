package dateutil

import "time"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfMonth returns the first day of the month for the given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// StartOfYear returns January 1st of the given date's year
func StartOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of calendar days in the given date's month
func DaysInMonth(date time.Time) int {
	return StartOfMonth(date).AddDate(0, 1, -1).Day()
}

// AddMonths shifts a month-start date by n months.
// The input must be a first-of-month value; time.AddDate is then exact
// in both directions, which keeps navigation round trips stable.
func AddMonths(monthStart time.Time, n int) time.Time {
	return monthStart.AddDate(0, n, 0)
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same calendar day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// BetweenInclusive returns true if date falls within [start, end] at day
// granularity.
func BetweenInclusive(date, start, end time.Time) bool {
	d := StartOfDay(date)
	if d.Before(StartOfDay(start)) {
		return false
	}
	return !d.After(StartOfDay(end))
}

// FormatISO formats a date as YYYY-MM-DD, the wire format the backend
// uses for all calendar dates.
func FormatISO(date time.Time) string {
	return date.Format("2006-01-02")
}

// ParseDate parses a date string in the formats the backend is known to emit
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
		time.RFC3339,
	}

	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}

	return time.Time{}, lastErr
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
