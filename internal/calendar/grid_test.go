package calendar

import (
	"testing"
	"time"

	"github.com/username/master-calendar/internal/store"
)

func TestBuildMonth_LeadingBlanks(t *testing.T) {
	tests := []struct {
		name       string
		monthStart time.Time
		wantBlanks int
		wantDays   int
	}{
		{"January 2025 starts Wednesday", day(2025, time.January, 1), 3, 31},
		{"June 2025 starts Sunday", day(2025, time.June, 1), 0, 30},
		{"February 2025 starts Saturday", day(2025, time.February, 1), 6, 28},
		{"February 2024 leap", day(2024, time.February, 1), 4, 29},
		{"November 2025 starts Saturday", day(2025, time.November, 1), 6, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := BuildMonth(tt.monthStart, nil, nil, day(2025, time.January, 1))
			if grid.LeadingBlanks != tt.wantBlanks {
				t.Errorf("LeadingBlanks = %d, want %d", grid.LeadingBlanks, tt.wantBlanks)
			}
			if len(grid.Days) != tt.wantDays {
				t.Errorf("len(Days) = %d, want %d", len(grid.Days), tt.wantDays)
			}
		})
	}
}

func TestBuildMonth_MidMonthAnchor(t *testing.T) {
	grid := BuildMonth(day(2025, time.January, 20), nil, nil, day(2025, time.January, 1))
	if !grid.Month.Equal(day(2025, time.January, 1)) {
		t.Errorf("Month = %v, want first of month", grid.Month)
	}
	if grid.Label != "January 2025" {
		t.Errorf("Label = %q, want %q", grid.Label, "January 2025")
	}
}

func TestBuildMonth_DaysAreClassified(t *testing.T) {
	holidays := []store.Holiday{holiday("1", "New Year", "2025-01-01", "regular")}
	periods := []store.PayrollPeriod{period("1", "2025-01-16", "2025-01-31")}
	today := day(2025, time.January, 20)

	grid := BuildMonth(day(2025, time.January, 1), holidays, periods, today)

	if grid.Days[0].Class != ClassHolidayRegular {
		t.Errorf("day 1 Class = %v, want ClassHolidayRegular", grid.Days[0].Class)
	}
	if grid.Days[19].Class != ClassPayrollMember || !grid.Days[19].Today {
		t.Errorf("day 20 = %+v, want payroll member marked today", grid.Days[19])
	}
	// 2025-01-04 is a Saturday
	if grid.Days[3].Class != ClassWeekend {
		t.Errorf("day 4 Class = %v, want ClassWeekend", grid.Days[3].Class)
	}
	if grid.Days[1].Class != ClassPlain {
		t.Errorf("day 2 Class = %v, want ClassPlain", grid.Days[1].Class)
	}

	for i, d := range grid.Days {
		if d.Date.Day() != i+1 {
			t.Fatalf("Days[%d] has date %v, sequence broken", i, d.Date)
		}
	}
}

func TestMonthGrid_Weeks(t *testing.T) {
	grid := BuildMonth(day(2025, time.January, 1), nil, nil, day(2025, time.January, 1))
	weeks := grid.Weeks()

	if len(weeks) != 5 {
		t.Fatalf("January 2025 spans %d rows, want 5", len(weeks))
	}
	for i := 0; i < grid.LeadingBlanks; i++ {
		if weeks[0][i] != nil {
			t.Errorf("leading cell %d should be blank", i)
		}
	}
	if weeks[0][3] == nil || weeks[0][3].Date.Day() != 1 {
		t.Errorf("day 1 should land on the Wednesday column")
	}
	last := weeks[len(weeks)-1]
	if last[5] == nil || last[5].Date.Day() != 31 {
		t.Errorf("day 31 should land on the final Friday cell, got %+v", last[5])
	}
	if last[6] != nil {
		t.Errorf("trailing cell should be blank, got %+v", last[6])
	}
}
