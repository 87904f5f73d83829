package tui

import (
	"fmt"
	"strings"

	"github.com/hy4ri/deskdash/internal/tui/surface"
	"github.com/hy4ri/deskdash/internal/tui/widgets"
	"github.com/mattn/go-runewidth"
)

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}

	s := surface.New(a.width, a.height)

	if a.waiting {
		widgets.RenderWaitPopup(s, a.lastFrame, a.styles, a.spinner.View())
		return s.String()
	}

	if a.loading {
		text := a.spinner.View() + " Loading"
		s.SetString((a.width-runewidth.StringWidth(text))/2, a.height/2, text, a.styles.Main)
		return s.String()
	}

	area := s.Bounds()
	area.Height-- // hint bar
	switch a.screen {
	case ScreenDashboard:
		a.renderDashboard(s, area)
	case ScreenCalendar:
		widgets.RenderCalendar(s, area, a.styles, a.calendar)
		a.renderEventPopup(s, area)
	case ScreenGrade:
		widgets.RenderGradeTracker(s, area, a.styles, a.grades)
	case ScreenMoney:
		widgets.RenderMoneyTracker(s, area, a.styles, a.money)
	}
	a.renderHintBar(s)

	a.lastFrame = s
	return s.String()
}

// renderDashboard draws the home screen: the clock on top, then the system
// gauges, the todo list and the upcoming-event table side by side.
func (a *App) renderDashboard(s *surface.Surface, area surface.Rect) {
	clockArea := surface.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height / 2}
	bottom := surface.Rect{X: area.X, Y: clockArea.Bottom(), Width: area.Width, Height: area.Height - clockArea.Height}

	widgets.RenderClock(s, clockArea, a.styles, &a.clock, true)

	gaugeWidth := bottom.Width * 3 / 10
	gauges := surface.Rect{X: bottom.X, Y: bottom.Y, Width: gaugeWidth, Height: bottom.Height}
	rest := bottom.Width - gaugeWidth
	todoArea := surface.Rect{X: gauges.Right(), Y: bottom.Y, Width: rest / 2, Height: bottom.Height}
	eventArea := surface.Rect{X: todoArea.Right(), Y: bottom.Y, Width: rest - todoArea.Width, Height: bottom.Height}

	widgets.RenderGauge(s, surface.Rect{X: gauges.X, Y: gauges.Y, Width: gauges.Width, Height: 3}, a.styles, " Brightness ", a.brightness)
	widgets.RenderGauge(s, surface.Rect{X: gauges.X, Y: gauges.Y + 3, Width: gauges.Width, Height: 3}, a.styles, " Volume ", a.volume)

	if a.showTodoForm {
		a.todoForm.Render(s, todoArea)
	} else {
		items := make([]string, len(a.todos))
		for i, t := range a.todos {
			items[i] = t.Description
		}
		widgets.RenderList(s, todoArea, a.styles, " Todo ", items)
	}

	var rows [][]string
	for day := 1; day <= a.calendar.NumOfDays; day++ {
		for _, ev := range a.calendar.Events[day] {
			rows = append(rows, []string{
				fmt.Sprintf("%02d", day),
				ev.Start.Format("15:04"),
				ev.Title,
			})
		}
	}
	widgets.RenderTable(s, eventArea, a.styles, " This Month ", []string{"Day", "Time", "Title"}, rows)
}

// renderEventPopup overlays the selected event's details on the calendar.
func (a *App) renderEventPopup(s *surface.Surface, area surface.Rect) {
	if !a.calendar.ShowPopup {
		return
	}
	events := a.calendar.SelectedDayEvents()
	if len(events) == 0 || a.calendar.SelectedEvent >= len(events) {
		return
	}
	ev := events[a.calendar.SelectedEvent]
	lines := widgets.EventPopupLines(ev)
	lines = append(lines, "", fmt.Sprintf("%d/%d", a.calendar.SelectedEvent+1, len(events)))
	widgets.RenderPopup(s, area, a.styles, " Event ", lines, 50, 50)
}

func (a *App) renderHintBar(s *surface.Surface) {
	var parts []string
	for _, k := range a.keymap.HelpItems(a.screen) {
		parts = append(parts, k.Key+" "+k.Help)
	}
	s.SetString(1, s.Height()-1, strings.Join(parts, "  "), a.styles.Accent)
}
