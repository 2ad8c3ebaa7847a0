package workflow

import (
	"testing"
	"time"

	"github.com/username/master-calendar/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testHoliday(id, name string, date time.Time) store.Holiday {
	return store.Holiday{
		ID:          store.FlexibleID(id),
		Name:        name,
		Date:        store.NewCalDate(date),
		HolidayType: store.HolidayTypeRegular,
	}
}

func TestPanel_SelectDate_ExistingHoliday(t *testing.T) {
	holidays := []store.Holiday{
		testHoliday("1", "New Year", day(2025, time.January, 1)),
		testHoliday("2", "Labor Day", day(2025, time.May, 1)),
	}

	p := NewPanel()
	p.SelectDate(day(2025, time.May, 1), holidays)

	if !p.IsOpen() || p.Kind() != KindHoliday {
		t.Fatalf("panel state = open:%v kind:%v, want open holiday panel", p.IsOpen(), p.Kind())
	}
	if h := p.SelectedHoliday(); h == nil || h.ID != "2" {
		t.Errorf("SelectedHoliday = %+v, want Labor Day", h)
	}
	if !p.CanDelete() {
		t.Errorf("persisted holiday selection must offer delete")
	}
}

func TestPanel_SelectDate_NewHoliday(t *testing.T) {
	p := NewPanel()
	p.SelectDate(day(2025, time.May, 2), []store.Holiday{
		testHoliday("1", "Labor Day", day(2025, time.May, 1)),
	})

	if p.Kind() != KindHoliday {
		t.Fatalf("a date selection must open the holiday panel, got %v", p.Kind())
	}
	if p.SelectedHoliday() != nil {
		t.Errorf("no holiday on that day, selection must be nil")
	}
	if !p.SelectedDate().Equal(day(2025, time.May, 2)) {
		t.Errorf("SelectedDate = %v, want the clicked day", p.SelectedDate())
	}
	if p.CanDelete() {
		t.Errorf("an unsaved record must never offer delete")
	}
}

func TestPanel_SelectPayrollPeriod(t *testing.T) {
	period := store.PayrollPeriod{
		ID:    "3",
		Start: store.NewCalDate(day(2025, time.January, 16)),
		End:   store.NewCalDate(day(2025, time.January, 31)),
	}

	p := NewPanel()
	p.SelectPayrollPeriod(&period)

	if p.Kind() != KindPayroll || !p.IsOpen() {
		t.Fatalf("want open payroll panel, got open:%v kind:%v", p.IsOpen(), p.Kind())
	}
	if got := p.SelectedPeriod(); got == nil || got.ID != "3" {
		t.Errorf("SelectedPeriod = %+v, want period 3", got)
	}
	if p.SelectedHoliday() != nil {
		t.Errorf("holiday selection must be nil while the payroll panel is active")
	}
	if !p.CanDelete() {
		t.Errorf("persisted period selection must offer delete")
	}

	p.SelectPayrollPeriod(nil)
	if p.SelectedPeriod() != nil || p.CanDelete() {
		t.Errorf("create-mode payroll panel must have no selection and no delete")
	}
}

func TestPanel_CloseResetsEverything(t *testing.T) {
	p := NewPanel()
	p.SelectDate(day(2025, time.May, 1), []store.Holiday{
		testHoliday("1", "Labor Day", day(2025, time.May, 1)),
	})
	p.Close()

	if p.IsOpen() || p.Kind() != KindNone {
		t.Errorf("Close must fully reset, got open:%v kind:%v", p.IsOpen(), p.Kind())
	}
	if p.SelectedHoliday() != nil || p.SelectedPeriod() != nil || !p.SelectedDate().IsZero() {
		t.Errorf("Close must clear all selections")
	}

	// Close from the closed state stays closed.
	p.Close()
	if p.IsOpen() {
		t.Errorf("Close from closed state must stay closed")
	}
}

func TestHolidayForm_Validate(t *testing.T) {
	valid := HolidayForm{
		Name:        "New Year",
		Date:        day(2025, time.January, 1),
		HolidayType: store.HolidayTypeRegular,
	}

	tests := []struct {
		name    string
		mutate  func(f HolidayForm) HolidayForm
		wantErr bool
	}{
		{"valid", func(f HolidayForm) HolidayForm { return f }, false},
		{"special type", func(f HolidayForm) HolidayForm { f.HolidayType = store.HolidayTypeSpecial; return f }, false},
		{"empty name", func(f HolidayForm) HolidayForm { f.Name = ""; return f }, true},
		{"whitespace name", func(f HolidayForm) HolidayForm { f.Name = "   "; return f }, true},
		{"missing type", func(f HolidayForm) HolidayForm { f.HolidayType = ""; return f }, true},
		{"unknown type", func(f HolidayForm) HolidayForm { f.HolidayType = "floating"; return f }, true},
		{"zero date", func(f HolidayForm) HolidayForm { f.Date = time.Time{}; return f }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && ClassifyFailure(err) != FailureValidation {
				t.Errorf("validation failures must classify as FailureValidation")
			}
		})
	}
}

func TestPeriodForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    PeriodForm
		wantErr bool
	}{
		{"valid", PeriodForm{Start: day(2025, time.January, 16), End: day(2025, time.January, 31)}, false},
		{"single day", PeriodForm{Start: day(2025, time.January, 16), End: day(2025, time.January, 16)}, false},
		{"missing start", PeriodForm{End: day(2025, time.January, 31)}, true},
		{"missing end", PeriodForm{Start: day(2025, time.January, 16)}, true},
		{"reversed", PeriodForm{Start: day(2025, time.January, 31), End: day(2025, time.January, 16)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPeriodForm_ReversedMessage(t *testing.T) {
	form := PeriodForm{Start: day(2025, time.January, 31), End: day(2025, time.January, 16)}
	verr, ok := form.Validate().(*ValidationError)
	if !ok {
		t.Fatal("expected a ValidationError for a reversed range")
	}
	if verr.Message != "End date must be on or after start date." {
		t.Errorf("message = %q, want the end >= start wording", verr.Message)
	}
}

func TestHolidayForm_RecordCarriesID(t *testing.T) {
	existing := testHoliday("9", "Old Name", day(2025, time.May, 1))
	form := HolidayForm{
		Name:        "  New Name  ",
		Date:        day(2025, time.May, 1),
		HolidayType: store.HolidayTypeSpecial,
	}

	record := form.Record(&existing)
	if record.ID != "9" {
		t.Errorf("record.ID = %q, want carried id 9", record.ID)
	}
	if record.Name != "New Name" {
		t.Errorf("record.Name = %q, want trimmed form value", record.Name)
	}

	record = form.Record(nil)
	if !record.ID.IsZero() {
		t.Errorf("create-mode record must carry no id, got %q", record.ID)
	}
}
