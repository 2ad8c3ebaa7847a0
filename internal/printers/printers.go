package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/username/master-calendar/internal/store"
	"github.com/username/master-calendar/pkg/dateutil"
)

// PrettyPrint renders calendar data for the terminal.
type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Holidays prints the holiday collection as a table, most useful with
// ShowID enabled when the ids are needed for delete.
func (pp *PrettyPrint) Holidays(holidays []store.Holiday) {
	if len(holidays) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	b := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(b("ID"), b("Date"), b("Type"), b("Name"), b("Description"))
	} else {
		tbl.AddRow(b("Date"), b("Type"), b("Name"), b("Description"))
	}
	for _, h := range holidays {
		date := ""
		if h.Date.Valid() {
			date = dateutil.FormatISO(h.Date.Time)
		}
		if pp.ShowID {
			tbl.AddRow(string(h.ID), date, h.HolidayType, h.Name, h.Description)
		} else {
			tbl.AddRow(date, h.HolidayType, h.Name, h.Description)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Periods prints the payroll period collection as a table.
func (pp *PrettyPrint) Periods(periods []store.PayrollPeriod) {
	if len(periods) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	b := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(b("ID"), b("Start"), b("End"))
	} else {
		tbl.AddRow(b("Start"), b("End"))
	}
	for _, p := range periods {
		start, end := "", ""
		if p.Start.Valid() {
			start = dateutil.FormatISO(p.Start.Time)
		}
		if p.End.Valid() {
			end = dateutil.FormatISO(p.End.Time)
		}
		if pp.ShowID {
			tbl.AddRow(string(p.ID), start, end)
		} else {
			tbl.AddRow(start, end)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
