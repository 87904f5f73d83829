// Package widgets holds the screen widgets: clock, calendar, grade tracker,
// money tracker and the small shared pieces (gauges, popups, tables, lists).
// Each widget pairs a state struct with a render function that draws into a
// Surface rect.
package widgets

import (
	"time"

	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
	"github.com/mattn/go-runewidth"
)

// ClockState holds the timestamp shown by the clock. It is replaced
// wholesale on refresh, so the display only advances when an event causes a
// redraw.
type ClockState struct {
	Time time.Time
}

// NewClockState returns a clock set to now.
func NewClockState() ClockState {
	return ClockState{Time: time.Now()}
}

// Refresh replaces the timestamp with the current time.
func (c *ClockState) Refresh() {
	c.Time = time.Now()
}

// RenderClock draws the clock: big HH:MM digits with the long-form date
// underneath, centered in the rect.
func RenderClock(s *surface.Surface, area surface.Rect, st *styles.Styles, state *ClockState, withBorder bool) {
	if withBorder {
		surface.DrawBorders(s, area, surface.SideAll, surface.BorderPlain, st.Main)
		area = area.Inset(1)
	}

	_, height := surface.DrawBigString(s, area, state.Time.Format("15:04"), st.Main, true)

	date := state.Time.Format("Monday 02 January 2006")
	x := area.X
	if w := runewidth.StringWidth(date); w < area.Width {
		x += (area.Width - w) / 2
	}
	s.SetString(x, area.Y+height+1, date, st.Accent)
}
