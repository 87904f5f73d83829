package widgets

import (
	"fmt"

	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
)

// RenderGauge draws a labelled horizontal percentage gauge: a bordered
// 3-row bar whose interior fills left to right with the percentage printed
// in the middle.
func RenderGauge(s *surface.Surface, area surface.Rect, st *styles.Styles, label string, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	surface.DrawBorders(s, area, surface.SideAll, surface.BorderPlain, st.Main)
	s.SetString(area.X+1, area.Y, label, st.Title)

	inner := area.Inset(1)
	if inner.Width <= 0 || inner.Height <= 0 {
		return
	}

	filled := inner.Width * percent / 100
	text := fmt.Sprintf("%d%%", percent)
	textStart := inner.X + (inner.Width-len(text))/2

	for y := inner.Top(); y < inner.Bottom(); y++ {
		for x := inner.Left(); x < inner.Right(); x++ {
			style := st.ProgressBar
			if x < inner.X+filled {
				style = st.InvertedMain
			}
			r := ' '
			if y == inner.Y && x >= textStart && x < textStart+len(text) {
				r = rune(text[x-textStart])
			}
			s.Set(x, y, r, style)
		}
	}
}
