package calendar

import (
	"testing"
	"time"

	"github.com/username/master-calendar/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func holiday(id, name, date, typ string) store.Holiday {
	h := store.Holiday{ID: store.FlexibleID(id), Name: name, HolidayType: typ}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		h.Date = store.NewCalDate(t)
	}
	return h
}

func period(id, start, end string) store.PayrollPeriod {
	p := store.PayrollPeriod{ID: store.FlexibleID(id)}
	if t, err := time.Parse("2006-01-02", start); err == nil {
		p.Start = store.NewCalDate(t)
	}
	if t, err := time.Parse("2006-01-02", end); err == nil {
		p.End = store.NewCalDate(t)
	}
	return p
}

func TestClassify_NewYearScenario(t *testing.T) {
	holidays := []store.Holiday{holiday("1", "New Year", "2025-01-01", "regular")}

	got := Classify(day(2025, time.January, 1), holidays, nil, day(2025, time.June, 15))

	if got.Class != ClassHolidayRegular {
		t.Errorf("Class = %v, want ClassHolidayRegular", got.Class)
	}
	if got.Weekend {
		t.Errorf("2025-01-01 is a Wednesday, weekend flag must be false")
	}
	if got.Today {
		t.Errorf("Today flag must be false when today differs")
	}
	if got.Holiday == nil || got.Holiday.Name != "New Year" {
		t.Errorf("matched holiday = %+v, want New Year", got.Holiday)
	}
}

func TestClassify_PayrollScenario(t *testing.T) {
	periods := []store.PayrollPeriod{period("1", "2025-01-16", "2025-01-31")}

	got := Classify(day(2025, time.January, 20), nil, periods, day(2025, time.January, 20))
	if got.Class != ClassPayrollMember {
		t.Errorf("Class = %v, want ClassPayrollMember", got.Class)
	}
	if !got.Today {
		t.Errorf("Today flag should be set")
	}
	if got.Period == nil || got.Period.ID != "1" {
		t.Errorf("matched period = %+v, want period 1", got.Period)
	}

	// 2025-02-01 is a Saturday, just past the period end
	got = Classify(day(2025, time.February, 1), nil, periods, day(2025, time.January, 20))
	if got.Class != ClassWeekend {
		t.Errorf("Class = %v, want ClassWeekend", got.Class)
	}
	if got.Period != nil {
		t.Errorf("period must not match past its inclusive end")
	}
}

func TestClassify_Precedence(t *testing.T) {
	holidays := []store.Holiday{
		holiday("1", "Special Day", "2025-01-18", "special"),
	}
	periods := []store.PayrollPeriod{period("1", "2025-01-16", "2025-01-31")}

	// 2025-01-18 is a Saturday inside a payroll period with a holiday:
	// holiday wins the classification, weekend stays reported.
	got := Classify(day(2025, time.January, 18), holidays, periods, day(2025, time.January, 1))
	if got.Class != ClassHolidaySpecial {
		t.Errorf("Class = %v, want ClassHolidaySpecial", got.Class)
	}
	if !got.Weekend {
		t.Errorf("weekend flag must survive holiday precedence")
	}
	if got.Period == nil {
		t.Errorf("matched period should still be reported")
	}

	// Same period, no holiday: payroll beats weekend.
	got = Classify(day(2025, time.January, 25), nil, periods, day(2025, time.January, 1))
	if got.Class != ClassPayrollMember {
		t.Errorf("Class = %v, want ClassPayrollMember", got.Class)
	}
	if !got.Weekend {
		t.Errorf("weekend flag must be set on a payroll Saturday")
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	holidays := []store.Holiday{
		holiday("1", "First", "2025-03-10", "special"),
		holiday("2", "Second", "2025-03-10", "regular"),
	}

	got := Classify(day(2025, time.March, 10), holidays, nil, day(2025, time.January, 1))
	if got.Holiday == nil || got.Holiday.Name != "First" {
		t.Fatalf("matched holiday = %+v, want first in collection order", got.Holiday)
	}
	if got.Class != ClassHolidaySpecial {
		t.Errorf("Class = %v, want the first match's type", got.Class)
	}
}

func TestClassify_NonRegularTypeRendersSpecial(t *testing.T) {
	holidays := []store.Holiday{holiday("1", "Odd", "2025-03-10", "something-else")}

	got := Classify(day(2025, time.March, 10), holidays, nil, day(2025, time.January, 1))
	if got.Class != ClassHolidaySpecial {
		t.Errorf("Class = %v, want ClassHolidaySpecial for non-regular types", got.Class)
	}
}

func TestClassify_InvalidDatesNeverMatch(t *testing.T) {
	holidays := []store.Holiday{
		{ID: "1", Name: "Broken", HolidayType: "regular"}, // zero date
	}
	periods := []store.PayrollPeriod{
		{ID: "1", Start: store.NewCalDate(day(2025, time.January, 16))}, // missing end
	}

	got := Classify(day(2025, time.January, 20), holidays, periods, day(2025, time.January, 1))
	if got.Class != ClassPlain {
		t.Errorf("Class = %v, want ClassPlain when nothing valid matches", got.Class)
	}
	if got.Holiday != nil || got.Period != nil {
		t.Errorf("invalid records must not match: holiday=%v period=%v", got.Holiday, got.Period)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	holidays := []store.Holiday{holiday("1", "New Year", "2025-01-01", "regular")}
	periods := []store.PayrollPeriod{period("1", "2025-01-01", "2025-01-15")}
	today := day(2025, time.January, 1)

	first := Classify(day(2025, time.January, 1), holidays, periods, today)
	for i := 0; i < 5; i++ {
		again := Classify(day(2025, time.January, 1), holidays, periods, today)
		if again.Class != first.Class || again.Weekend != first.Weekend || again.Today != first.Today {
			t.Fatalf("classification drifted on repeat call: %+v vs %+v", again, first)
		}
	}
}
