package widgets

import (
	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
)

// RenderTable draws a titled, bordered table. Columns share the interior
// width evenly; the header row is separated from the body by a rule. Cells
// are clipped to their column, rows beyond the rect are dropped.
func RenderTable(s *surface.Surface, area surface.Rect, st *styles.Styles, title string, headers []string, rows [][]string) {
	surface.DrawBorders(s, area, surface.SideAll, surface.BorderPlain, st.Main)
	s.SetString(area.X+2, area.Y, title, st.Title)

	inner := area.Inset(1)
	if len(headers) == 0 || inner.Width <= 0 || inner.Height <= 0 {
		return
	}
	colWidth := inner.Width / len(headers)
	if colWidth < 1 {
		colWidth = 1
	}

	for c, h := range headers {
		s.SetString(inner.X+c*colWidth, inner.Y, clip(h, colWidth-1), st.Title)
	}
	if inner.Height > 1 {
		for x := inner.Left(); x < inner.Right(); x++ {
			s.Set(x, inner.Y+1, '─', st.Accent)
		}
	}

	for r, row := range rows {
		y := inner.Y + 2 + r
		if y >= inner.Bottom() {
			break
		}
		for c, cell := range row {
			if c >= len(headers) {
				break
			}
			s.SetString(inner.X+c*colWidth, y, clip(cell, colWidth-1), st.Main)
		}
	}
}

func clip(s string, width int) string {
	if width < 0 {
		width = 0
	}
	if len(s) <= width {
		return s
	}
	return s[:width]
}
