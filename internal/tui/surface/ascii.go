package surface

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
)

// DrawBigString renders text as large block letters inside the rect and
// returns the rendered width and height so callers can position text below
// it. When centerX is set the letters are centered horizontally in the rect.
// Output is clipped to the rect.
func DrawBigString(s *Surface, r Rect, text string, style lipgloss.Style, centerX bool) (int, int) {
	lines := figure.NewFigure(text, "", false).Slicify()
	if len(lines) == 0 {
		return 0, 0
	}

	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}
	height := len(lines)

	offsetX := 0
	if centerX && width < r.Width {
		offsetX = (r.Width - width) / 2
	}

	for dy, line := range lines {
		if dy >= r.Height {
			break
		}
		for dx, c := range line {
			if dx+offsetX >= r.Width {
				break
			}
			if c == ' ' {
				continue
			}
			s.Set(r.X+offsetX+dx, r.Y+dy, c, style)
		}
	}

	return width, height
}
