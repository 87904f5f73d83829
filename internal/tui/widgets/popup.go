package widgets

import (
	"strings"

	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
	"github.com/mattn/go-runewidth"
)

// RenderPopup clears a centered region sized to the given percentages of the
// container, draws a thick border with a title, and lays the lines out
// centered inside. Lines longer than the popup are wrapped on word
// boundaries.
func RenderPopup(s *surface.Surface, container surface.Rect, st *styles.Styles, title string, lines []string, percentX, percentY int) {
	area := surface.CenteredRect(percentX, percentY, container)
	s.Clear(area)
	surface.DrawBorders(s, area, surface.SideAll, surface.BorderThick, st.Main)
	s.SetString(area.X+2, area.Y, title, st.Title)

	inner := area.Inset(1)
	y := inner.Y
	for _, line := range lines {
		for _, wrapped := range wrapLine(line, inner.Width) {
			if y >= inner.Bottom() {
				return
			}
			x := inner.X + (inner.Width-runewidth.StringWidth(wrapped))/2
			s.SetString(x, y, wrapped, st.Main)
			y++
		}
	}
}

// RenderWaitPopup paints the previous frame underneath a small centered
// "please wait" box with a spinner. Shown while queued tasks drain.
func RenderWaitPopup(s *surface.Surface, prev *surface.Surface, st *styles.Styles, spinnerView string) {
	s.Merge(prev)

	area := surface.CenteredRect(40, 20, s.Bounds())
	if area.Height < 3 {
		area.Height = 3
	}
	if area.Width < 16 {
		area.Width = 16
	}
	s.Clear(area)
	surface.DrawBorders(s, area, surface.SideAll, surface.BorderThick, st.Main)

	text := spinnerView + " Please Wait"
	inner := area.Inset(1)
	s.SetString(inner.X+(inner.Width-runewidth.StringWidth(text))/2, inner.Y+inner.Height/2, text, st.Main)
}

// wrapLine splits line into chunks of at most width display columns,
// preferring space boundaries.
func wrapLine(line string, width int) []string {
	if width <= 0 {
		return nil
	}
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var out []string
	words := strings.Fields(line)
	cur := ""
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= width:
			cur += " " + w
		default:
			out = append(out, cur)
			cur = w
		}
		for runewidth.StringWidth(cur) > width {
			head := runewidth.Truncate(cur, width, "")
			out = append(out, head)
			cur = cur[len(head):]
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
