package widgets

import (
	"fmt"
	"time"

	"github.com/hy4ri/deskdash/internal/probe"
	"github.com/hy4ri/deskdash/internal/tui/bounds"
	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
)

// CalendarState is the month view: the displayed (year, month) with its
// derived day count and start weekday, the day cursor, the events fetched
// for the month, and the event popup state.
type CalendarState struct {
	Year  int
	Month time.Month
	// NumOfDays and StartDay are derived from (Year, Month) and are only
	// ever recomputed together.
	NumOfDays int
	// StartDay is the weekday column of day 1, with Monday as 0.
	StartDay int

	SelectedDay int
	Events      map[int][]probe.Event

	ShowPopup     bool
	SelectedEvent int

	today time.Time
}

// NewCalendarState returns a calendar opened on now's month with the cursor
// on today. Events start empty; the caller fetches them asynchronously.
func NewCalendarState(now time.Time) *CalendarState {
	c := &CalendarState{
		Year:        now.Year(),
		Month:       now.Month(),
		SelectedDay: now.Day(),
		Events:      map[int][]probe.Event{},
		today:       now,
	}
	c.recompute()
	return c
}

// recompute refreshes the two values derived from (Year, Month).
func (c *CalendarState) recompute() {
	first := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
	c.NumOfDays = first.AddDate(0, 1, -1).Day()
	c.StartDay = (int(first.Weekday()) + 6) % 7
}

// IncrementMonth moves the view by amount months, rolling the year at both
// ends. The stale event map is cleared; the caller schedules the refetch.
func (c *CalendarState) IncrementMonth(amount int) {
	m := int(c.Month) + amount
	for m > 12 {
		m -= 12
		c.Year++
	}
	for m < 1 {
		m += 12
		c.Year--
	}
	c.Month = time.Month(m)
	c.recompute()
	c.Events = map[int][]probe.Event{}
}

// IncrementSelectedDay moves the day cursor, clamped to the month.
func (c *CalendarState) IncrementSelectedDay(amount int) {
	c.SelectedDay = bounds.Increment(c.SelectedDay, 1, c.NumOfDays, amount)
}

// IncrementSelectedEvent moves the popup's event cursor within the selected
// day's events. No-op when the day has none.
func (c *CalendarState) IncrementSelectedEvent(amount int) {
	n := len(c.SelectedDayEvents())
	if n == 0 {
		return
	}
	c.SelectedEvent = bounds.Increment(c.SelectedEvent, 0, n-1, amount)
}

// PopupToggle flips the event popup and always resets the event cursor.
func (c *CalendarState) PopupToggle() {
	c.ShowPopup = !c.ShowPopup
	c.SelectedEvent = 0
}

// SelectedDayEvents returns the events on the day under the cursor.
func (c *CalendarState) SelectedDayEvents() []probe.Event {
	return c.Events[c.SelectedDay]
}

// SetEvents replaces the month's event map.
func (c *CalendarState) SetEvents(events map[int][]probe.Event) {
	if events == nil {
		events = map[int][]probe.Event{}
	}
	c.Events = events
}

// isToday reports whether day in the displayed month is the real today.
func (c *CalendarState) isToday(day int) bool {
	return c.Year == c.today.Year() && c.Month == c.today.Month() && day == c.today.Day()
}

var weekdayNames = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// RenderCalendar draws the month grid on the left three quarters of the
// rect and the selected day's event timeline on the right quarter.
func RenderCalendar(s *surface.Surface, area surface.Rect, st *styles.Styles, state *CalendarState) {
	gridArea := surface.Rect{X: area.X, Y: area.Y, Width: area.Width * 3 / 4, Height: area.Height}
	paneArea := surface.Rect{X: gridArea.Right(), Y: area.Y, Width: area.Width - gridArea.Width, Height: area.Height}

	renderMonthGrid(s, gridArea, st, state)
	renderTimeline(s, paneArea, st, state)
}

func renderMonthGrid(s *surface.Surface, area surface.Rect, st *styles.Styles, state *CalendarState) {
	surface.DrawBorders(s, area, surface.SideAll, surface.BorderPlain, st.Main)
	title := fmt.Sprintf(" %s %d ", state.Month, state.Year)
	s.SetString(area.X+2, area.Y, title, st.Title)

	inner := area.Inset(1)
	cellW := inner.Width / 7
	cellH := (inner.Height - 1) / 6
	if cellW < 3 || cellH < 2 {
		return
	}

	for col := 0; col < 7; col++ {
		s.SetString(inner.X+col*cellW+cellW/2-1, inner.Y, weekdayNames[col], st.Accent)
	}

	for row := 0; row < 6; row++ {
		for col := 0; col < 7; col++ {
			day := row*7 + col + 1 - state.StartDay
			cell := surface.Rect{
				X:      inner.X + col*cellW,
				Y:      inner.Y + 1 + row*cellH,
				Width:  cellW,
				Height: cellH,
			}
			renderDayCell(s, cell, st, state, day)
		}
	}
}

func renderDayCell(s *surface.Surface, cell surface.Rect, st *styles.Styles, state *CalendarState, day int) {
	if day < 1 || day > state.NumOfDays {
		surface.DrawBorders(s, cell, surface.SideTop|surface.SideBottom, surface.BorderPlain, st.CalendarDisabled)
		return
	}

	today := state.isToday(day)
	selected := day == state.SelectedDay

	border := surface.BorderPlain
	if today {
		border = surface.BorderDouble
	}

	style := st.CalendarDeselected
	sides := surface.SideTop | surface.SideBottom
	switch {
	case today && selected:
		style = st.CalendarSelected
		sides = surface.SideAll
	case today:
		style = st.CalendarToday
		sides = surface.SideAll
	case selected:
		style = st.CalendarSelected
		sides = surface.SideAll
	}
	surface.DrawBorders(s, cell, sides, border, style)

	s.SetString(cell.X+cell.Width/2-1, cell.Y+1, fmt.Sprintf("%02d", day), style)

	// one marker per event, along the bottom interior row
	events := state.Events[day]
	for i := range events {
		x := cell.X + 1 + i
		if x >= cell.Right()-1 {
			break
		}
		s.Set(x, cell.Bottom()-2, '•', st.Main)
	}
}

// renderTimeline draws the selected day's events top to bottom: each event
// is a thick vertical bar spanning its slot, annotated with start and end
// times and the title, with the whole-hour gap to the next event written in
// the space between.
func renderTimeline(s *surface.Surface, area surface.Rect, st *styles.Styles, state *CalendarState) {
	surface.DrawBorders(s, area, surface.SideAll, surface.BorderPlain, st.Main)
	s.SetString(area.X+2, area.Y, " Events ", st.Title)

	inner := area.Inset(1)
	events := state.SelectedDayEvents()
	if len(events) == 0 {
		s.SetString(inner.X+1, inner.Y+1, "No events", st.Accent)
		return
	}

	const barHeight = 5
	const gapHeight = 3

	y := inner.Y
	for i, ev := range events {
		if y+barHeight > inner.Bottom() {
			break
		}

		style := st.Accent
		if state.ShowPopup && i == state.SelectedEvent {
			style = st.Main
		}

		for dy := 0; dy < barHeight; dy++ {
			s.Set(inner.X+1, y+dy, '┃', style)
		}
		s.SetString(inner.X+3, y, ev.Start.Format("15:04"), style)
		s.SetString(inner.X+3, y+barHeight/2, clip(ev.Title, inner.Width-4), style)
		s.SetString(inner.X+3, y+barHeight-1, ev.End.Format("15:04"), style)

		if i+1 < len(events) {
			gap := int(events[i+1].Start.Sub(ev.End).Hours())
			if gap > 0 && y+barHeight+gapHeight <= inner.Bottom() {
				s.SetString(inner.X+3, y+barHeight+1, fmt.Sprintf("%d Hour(s)", gap), st.CalendarDisabled)
			}
			y += barHeight + gapHeight
		}
	}
}

// EventPopupLines formats the selected event for the detail popup.
func EventPopupLines(ev probe.Event) []string {
	return []string{
		ev.Title,
		"",
		fmt.Sprintf("%s - %s", ev.Start.Format("15:04"), ev.End.Format("15:04")),
		"",
		ev.Description,
	}
}
