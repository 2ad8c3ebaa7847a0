package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/username/master-calendar/internal/calendar"
	"github.com/username/master-calendar/internal/store"
	"github.com/username/master-calendar/internal/view"
	"github.com/username/master-calendar/internal/workflow"
	"github.com/username/master-calendar/pkg/dateutil"
)

// Model states
type mode int

const (
	modeBrowse mode = iota
	modeHolidayForm
	modePeriodForm
	modeConfirmDelete
	modeHelp
)

const statusTimeout = 3 * time.Second

// Holiday form field order
const (
	fieldName = iota
	fieldType
	fieldDescription
)

// Payroll form field order
const (
	fieldStart = iota
	fieldEnd
)

var (
	titleStyle   = lipgloss.NewStyle().Italic(true)
	headerStyle  = lipgloss.NewStyle().Faint(true)
	plainStyle   = lipgloss.NewStyle().Faint(true)
	weekendStyle = lipgloss.NewStyle()
	payrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	regularStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	specialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2)
)

// Model contains UI state
type Model struct {
	coord  *workflow.Coordinator
	tokens *store.TokenSource
	ctx    context.Context
	logger *zap.Logger

	nav    *view.Navigator
	cursor time.Time
	today  time.Time

	mode   mode
	busy   bool
	inputs []textinput.Model
	focus  int

	status    string
	statusSeq int

	termWidth  int
	termHeight int
}

// New creates a new UI model over the coordinator.
func New(coord *workflow.Coordinator, tokens *store.TokenSource, windowSize int, logger *zap.Logger) Model {
	today := dateutil.Today()
	nav := view.NewNavigatorWithWindow(today, windowSize)

	return Model{
		coord:  coord,
		tokens: tokens,
		ctx:    context.Background(),
		logger: logger,
		nav:    nav,
		cursor: today,
		today:  today,
		mode:   modeBrowse,
		status: "h/l day, j/k week, p/n page, v toggle view, t today, enter edit day, P period, r reload, ? help",
	}
}

// messages
type loadedMsg struct{}
type mutationDoneMsg struct {
	action string
	err    error
}
type statusExpiredMsg struct{ seq int }

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return m.reload()
}

func (m *Model) reload() tea.Cmd {
	return func() tea.Msg {
		token, err := m.tokens.Token(m.ctx)
		if err != nil {
			m.logger.Warn("Token resolution failed, loading anonymously", zap.Error(err))
		}
		m.coord.Load(m.ctx, token)
		return loadedMsg{}
	}
}

func (m *Model) setStatus(cmds *[]tea.Cmd, text string) {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	*cmds = append(*cmds, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq}
	}))
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case loadedMsg:
		m.busy = false
	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	case mutationDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(&cmds, workflow.UserMessage(msg.action, msg.err))
			if workflow.ClassifyFailure(msg.err) == workflow.FailureValidation || workflow.ClassifyFailure(msg.err) == workflow.FailureRemote {
				// Keep the form open so the input is not lost.
				break
			}
		} else if strings.HasPrefix(msg.action, "delete") {
			m.setStatus(&cmds, "Deleted")
		} else {
			m.setStatus(&cmds, "Saved")
		}
		m.mode = modeBrowse
		m.inputs = nil
		cmds = append(cmds, m.reload())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeBrowse
			}
		case modeConfirmDelete:
			cmds = append(cmds, m.updateConfirm(msg)...)
		case modeHolidayForm, modePeriodForm:
			cmds = append(cmds, m.updateForm(msg)...)
		case modeBrowse:
			cmds = append(cmds, m.updateBrowse(msg)...)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateBrowse(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.String() {
	case "q", "ctrl+c":
		cmds = append(cmds, tea.Quit)

	// day cursor
	case "h", "left":
		m.moveCursor(-1)
	case "l", "right":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-7)
	case "j", "down":
		m.moveCursor(7)

	// paging
	case "p", "pgup":
		m.nav.GoToPrevious()
		m.clampCursor()
	case "n", "pgdown":
		m.nav.GoToNext()
		m.clampCursor()
	case "t":
		m.nav.GoToCurrent(m.today)
		m.cursor = m.today
	case "v":
		m.nav.ToggleViewMode()
		m.clampCursor()
	case "1":
		m.nav.SetWindowSize(1)
		m.clampCursor()
	case "3":
		m.nav.SetWindowSize(3)
		m.clampCursor()
	case "6":
		m.nav.SetWindowSize(6)
		m.clampCursor()

	// edit panel
	case "enter":
		if m.busy {
			break
		}
		m.coord.Panel().SelectDate(m.cursor, m.coord.Holidays())
		m.openHolidayForm()
		cmds = append(cmds, textinput.Blink)
	case "P":
		if m.busy {
			break
		}
		m.coord.Panel().SelectPayrollPeriod(m.periodUnderCursor())
		m.openPeriodForm()
		cmds = append(cmds, textinput.Blink)
	case "d":
		if m.busy {
			break
		}
		m.coord.Panel().SelectDate(m.cursor, m.coord.Holidays())
		if m.coord.Panel().CanDelete() {
			m.mode = modeConfirmDelete
		} else {
			m.coord.Panel().Close()
			m.setStatus(&cmds, "Nothing saved on this day to delete")
		}
	case "D":
		if m.busy {
			break
		}
		m.coord.Panel().SelectPayrollPeriod(m.periodUnderCursor())
		if m.coord.Panel().CanDelete() {
			m.mode = modeConfirmDelete
		} else {
			m.coord.Panel().Close()
			m.setStatus(&cmds, "No payroll period covers this day")
		}

	case "r":
		m.busy = true
		m.setStatus(&cmds, "Reloading")
		cmds = append(cmds, m.reload())
	case "?":
		m.mode = modeHelp
	}

	return cmds
}

func (m *Model) updateConfirm(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.String() {
	case "y", "Y":
		panel := m.coord.Panel()
		var cmd tea.Cmd
		if panel.Kind() == workflow.KindPayroll {
			if p := panel.SelectedPeriod(); p != nil {
				cmd = m.deletePeriod(p.ID)
			}
		} else if h := panel.SelectedHoliday(); h != nil {
			cmd = m.deleteHoliday(h.ID)
		}
		if cmd != nil {
			m.busy = true
			cmds = append(cmds, cmd)
		}
		m.mode = modeBrowse
	case "n", "N", "esc", "q":
		m.coord.Panel().Close()
		m.mode = modeBrowse
		m.setStatus(&cmds, "Delete cancelled")
	}

	return cmds
}

func (m *Model) updateForm(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.String() {
	case "esc":
		m.coord.Panel().Close()
		m.mode = modeBrowse
		m.inputs = nil
		m.setStatus(&cmds, "Edit cancelled")
	case "tab", "down":
		m.focusField((m.focus + 1) % len(m.inputs))
		cmds = append(cmds, textinput.Blink)
	case "shift+tab", "up":
		m.focusField((m.focus + len(m.inputs) - 1) % len(m.inputs))
		cmds = append(cmds, textinput.Blink)
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.focusField(m.focus + 1)
			cmds = append(cmds, textinput.Blink)
			break
		}
		if m.busy {
			break
		}
		m.busy = true
		if m.mode == modeHolidayForm {
			cmds = append(cmds, m.saveHoliday(m.holidayForm()))
		} else {
			cmds = append(cmds, m.savePeriod(m.periodForm()))
		}
	default:
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}

	return cmds
}

func (m *Model) focusField(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	m.inputs[m.focus].CursorEnd()
}

func (m *Model) openHolidayForm() {
	name := textinput.New()
	name.Placeholder = "Holiday name"
	name.CharLimit = 128

	kind := textinput.New()
	kind.Placeholder = "regular or special"
	kind.CharLimit = 16
	kind.SetValue(store.HolidayTypeRegular)

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 256

	if h := m.coord.Panel().SelectedHoliday(); h != nil {
		name.SetValue(h.Name)
		kind.SetValue(h.HolidayType)
		desc.SetValue(h.Description)
	}

	m.inputs = []textinput.Model{name, kind, desc}
	m.focus = fieldName
	m.inputs[m.focus].Focus()
	m.mode = modeHolidayForm
}

func (m *Model) openPeriodForm() {
	start := textinput.New()
	start.Placeholder = "Start (YYYY-MM-DD)"
	start.CharLimit = 10

	end := textinput.New()
	end.Placeholder = "End (YYYY-MM-DD)"
	end.CharLimit = 10

	if p := m.coord.Panel().SelectedPeriod(); p != nil {
		if p.Start.Valid() {
			start.SetValue(dateutil.FormatISO(p.Start.Time))
		}
		if p.End.Valid() {
			end.SetValue(dateutil.FormatISO(p.End.Time))
		}
	} else {
		start.SetValue(dateutil.FormatISO(m.cursor))
	}

	m.inputs = []textinput.Model{start, end}
	m.focus = fieldStart
	m.inputs[m.focus].Focus()
	m.mode = modePeriodForm
}

func (m *Model) holidayForm() workflow.HolidayForm {
	return workflow.HolidayForm{
		Name:        strings.TrimSpace(m.inputs[fieldName].Value()),
		Date:        m.coord.Panel().SelectedDate(),
		HolidayType: strings.TrimSpace(m.inputs[fieldType].Value()),
		Description: strings.TrimSpace(m.inputs[fieldDescription].Value()),
	}
}

func (m *Model) periodForm() workflow.PeriodForm {
	form := workflow.PeriodForm{}
	if t, err := dateutil.ParseDate(strings.TrimSpace(m.inputs[fieldStart].Value())); err == nil {
		form.Start = t
	}
	if t, err := dateutil.ParseDate(strings.TrimSpace(m.inputs[fieldEnd].Value())); err == nil {
		form.End = t
	}
	return form
}

func (m *Model) saveHoliday(form workflow.HolidayForm) tea.Cmd {
	return func() tea.Msg {
		token, _ := m.tokens.Token(m.ctx)
		err := m.coord.SaveHoliday(m.ctx, token, form)
		return mutationDoneMsg{action: "save holiday", err: err}
	}
}

func (m *Model) savePeriod(form workflow.PeriodForm) tea.Cmd {
	return func() tea.Msg {
		token, _ := m.tokens.Token(m.ctx)
		err := m.coord.SavePayrollPeriod(m.ctx, token, form)
		return mutationDoneMsg{action: "save payroll dates", err: err}
	}
}

func (m *Model) deleteHoliday(id store.FlexibleID) tea.Cmd {
	return func() tea.Msg {
		token, _ := m.tokens.Token(m.ctx)
		err := m.coord.DeleteHoliday(m.ctx, token, id)
		return mutationDoneMsg{action: "delete holiday", err: err}
	}
}

func (m *Model) deletePeriod(id store.FlexibleID) tea.Cmd {
	return func() tea.Msg {
		token, _ := m.tokens.Token(m.ctx)
		err := m.coord.DeletePayrollPeriod(m.ctx, token, id)
		return mutationDoneMsg{action: "delete payroll dates", err: err}
	}
}

func (m *Model) moveCursor(days int) {
	m.cursor = m.cursor.AddDate(0, 0, days)
	visible := m.nav.VisibleMonths()
	first := visible[0]
	last := dateutil.AddMonths(visible[len(visible)-1], 1)
	if m.cursor.Before(first) {
		m.nav.GoToPrevious()
	} else if !m.cursor.Before(last) {
		m.nav.GoToNext()
	}
	m.clampCursor()
}

// clampCursor pulls the cursor back inside the visible range after the
// window moved underneath it.
func (m *Model) clampCursor() {
	visible := m.nav.VisibleMonths()
	first := visible[0]
	last := dateutil.AddMonths(visible[len(visible)-1], 1).AddDate(0, 0, -1)
	if m.cursor.Before(first) {
		m.cursor = first
	} else if m.cursor.After(last) {
		m.cursor = last
	}
}

func (m *Model) periodUnderCursor() *store.PayrollPeriod {
	periods := m.coord.Periods()
	for i := range periods {
		if periods[i].ContainsDay(m.cursor) {
			return &periods[i]
		}
	}
	return nil
}

// View renders the calendar grids plus the active overlay
func (m Model) View() string {
	holidays := m.coord.Holidays()
	periods := m.coord.Periods()

	var blocks []string
	for _, month := range m.nav.VisibleMonths() {
		grid := calendar.BuildMonth(month, holidays, periods, m.today)
		blocks = append(blocks, m.renderMonth(grid))
	}

	perRow := 3
	if m.nav.Mode() == view.ModeYear {
		perRow = 4
	}
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := i + perRow
		if end > len(blocks) {
			end = len(blocks)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks[i:end]...))
	}
	body := strings.Join(rows, "\n")

	switch m.mode {
	case modeHolidayForm:
		body += "\n" + m.renderHolidayForm()
	case modePeriodForm:
		body += "\n" + m.renderPeriodForm()
	case modeConfirmDelete:
		body += "\n" + m.renderConfirm()
	case modeHelp:
		help := "Keys: h/l ±day, j/k ±week, p/n page, t today, v year/month, 1/3/6 window, enter edit holiday, P edit payroll dates, d delete holiday, D delete period, r reload, q quit"
		body += "\n" + lipgloss.NewStyle().Italic(true).Render(help)
	}

	footer := fmt.Sprintf("[%s] %s  %s", strings.ToUpper(m.nav.Mode().String()), dateutil.FormatISO(m.cursor), m.status)
	if m.busy {
		footer = fmt.Sprintf("[%s] %s  working...", strings.ToUpper(m.nav.Mode().String()), dateutil.FormatISO(m.cursor))
	}

	return body + "\n\n" + statusStyle.Render(footer)
}

func (m Model) renderMonth(grid calendar.MonthGrid) string {
	const gridWidth = len("Su Mo Tu We Th Fr Sa")

	var b strings.Builder
	pad := (gridWidth - len(grid.Label)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(titleStyle.Render(strings.Repeat(" ", pad) + grid.Label))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	for _, week := range grid.Weeks() {
		for i, day := range week {
			if i > 0 {
				b.WriteString(" ")
			}
			if day == nil {
				b.WriteString("  ")
				continue
			}
			b.WriteString(m.renderDay(day))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return lipgloss.NewStyle().MarginRight(2).Render(b.String())
}

func (m Model) renderDay(day *calendar.CalendarDay) string {
	style := plainStyle
	switch day.Class {
	case calendar.ClassHolidayRegular:
		style = regularStyle
	case calendar.ClassHolidaySpecial:
		style = specialStyle
	case calendar.ClassPayrollMember:
		style = payrollStyle
	case calendar.ClassWeekend:
		style = weekendStyle
	}
	if day.Today {
		style = style.Underline(true)
	}
	if dateutil.IsSameDay(day.Date, m.cursor) {
		style = style.Reverse(true)
	}
	return style.Render(fmt.Sprintf("%2d", day.Date.Day()))
}

func (m Model) renderHolidayForm() string {
	panel := m.coord.Panel()
	title := "New holiday on " + dateutil.FormatISO(panel.SelectedDate())
	if h := panel.SelectedHoliday(); h != nil && !h.ID.IsZero() {
		title = "Edit holiday on " + dateutil.FormatISO(panel.SelectedDate())
	}

	lines := []string{
		titleStyle.Render(title),
		"Name:        " + m.inputs[fieldName].View(),
		"Type:        " + m.inputs[fieldType].View(),
		"Description: " + m.inputs[fieldDescription].View(),
		statusStyle.Render("enter save, tab next field, esc cancel"),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPeriodForm() string {
	title := "New payroll period"
	if p := m.coord.Panel().SelectedPeriod(); p != nil && !p.ID.IsZero() {
		title = "Edit payroll period"
	}

	lines := []string{
		titleStyle.Render(title),
		"Start: " + m.inputs[fieldStart].View(),
		"End:   " + m.inputs[fieldEnd].View(),
		statusStyle.Render("enter save, tab next field, esc cancel"),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderConfirm() string {
	panel := m.coord.Panel()
	target := ""
	if panel.Kind() == workflow.KindPayroll {
		if p := panel.SelectedPeriod(); p != nil {
			target = fmt.Sprintf("payroll period %s .. %s",
				dateutil.FormatISO(p.Start.Time), dateutil.FormatISO(p.End.Time))
		}
	} else if h := panel.SelectedHoliday(); h != nil {
		target = fmt.Sprintf("holiday %q on %s", h.Name, dateutil.FormatISO(h.Date.Time))
	}
	return panelStyle.Render("Delete " + target + "? (y/n)")
}

// Run starts the interactive calendar.
func Run(coord *workflow.Coordinator, tokens *store.TokenSource, windowSize int, logger *zap.Logger) error {
	p := tea.NewProgram(New(coord, tokens, windowSize, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
