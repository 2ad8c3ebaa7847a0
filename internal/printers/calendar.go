package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/username/master-calendar/internal/calendar"
)

const width = len("Su Mo Tu We Th Fr Sa")

var (
	payrollDay = color.New(color.FgGreen)
	regularDay = color.New(color.FgRed, color.Bold)
	specialDay = color.New(color.FgBlue, color.Bold)
	todayMark  = color.New(color.Underline)
)

// Months prints each month grid in turn.
func (pp *PrettyPrint) Months(months []calendar.MonthGrid) {
	for _, m := range months {
		pp.PrintMonth(m)
	}
}

// PrintMonth renders one month as a week-per-line grid. Days take their
// color from the classification, with today underlined on top.
func (pp *PrettyPrint) PrintMonth(m calendar.MonthGrid) {
	tf := color.New(color.FgWhite, color.Italic)
	hf := color.New(color.Faint)

	label := m.Label
	mid := (width - len(label)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Printf("%s%s\n", strings.Repeat(" ", mid), label)
	_, _ = hf.Println("Su Mo Tu We Th Fr Sa")

	// Pad out the start of the month.
	fmt.Print(strings.Repeat("   ", m.LeadingBlanks))

	col := m.LeadingBlanks
	for i := range m.Days {
		day := &m.Days[i]
		printer := dayPrinter(day)
		if day.Today {
			printer = printer.Add(color.Underline)
		}
		_, _ = printer.Printf("%2d", day.Date.Day())
		fmt.Print(" ")

		col++
		if col > 6 {
			col = 0
			fmt.Print("\n")
		}
	}
	if col != 0 {
		fmt.Print("\n")
	}
	fmt.Print("\n")
}

// Legend prints the color key for the month grids.
func (pp *PrettyPrint) Legend() {
	_, _ = regularDay.Print("regular holiday")
	fmt.Print("  ")
	_, _ = specialDay.Print("special holiday")
	fmt.Print("  ")
	_, _ = payrollDay.Print("payroll period")
	fmt.Print("  ")
	_, _ = color.New(color.FgWhite).Print("weekend")
	fmt.Print("  ")
	_, _ = todayMark.Print("today")
	fmt.Print("\n\n")
}

func dayPrinter(day *calendar.CalendarDay) *color.Color {
	switch day.Class {
	case calendar.ClassHolidayRegular:
		return color.New(color.FgRed, color.Bold)
	case calendar.ClassHolidaySpecial:
		return color.New(color.FgBlue, color.Bold)
	case calendar.ClassPayrollMember:
		return color.New(color.FgGreen)
	case calendar.ClassWeekend:
		return color.New(color.FgWhite)
	default:
		return color.New(color.Faint, color.FgWhite)
	}
}
