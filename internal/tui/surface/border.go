package surface

import "github.com/charmbracelet/lipgloss"

// Border selects the glyph set used for borders.
type Border int

const (
	BorderPlain Border = iota
	BorderDouble
	BorderThick
)

// Side is a bitmask of rectangle sides.
type Side uint8

const (
	SideTop Side = 1 << iota
	SideBottom
	SideLeft
	SideRight

	SideAll  = SideTop | SideBottom | SideLeft | SideRight
	SideNone = Side(0)
)

type borderGlyphs struct {
	horizontal, vertical                       rune
	topLeft, topRight, bottomLeft, bottomRight rune
}

var borderSets = map[Border]borderGlyphs{
	BorderPlain:  {'─', '│', '┌', '┐', '└', '┘'},
	BorderDouble: {'═', '║', '╔', '╗', '╚', '╝'},
	BorderThick:  {'━', '┃', '┏', '┓', '┗', '┛'},
}

// DrawBorders draws the requested sides of the rect's perimeter onto the
// surface, with corner glyphs where two drawn sides meet. Only perimeter
// cells are touched. The rect must fit the surface and be at least 2x2 when
// all four sides are requested; callers guarantee this via area arithmetic.
func DrawBorders(s *Surface, r Rect, sides Side, border Border, style lipgloss.Style) {
	g, ok := borderSets[border]
	if !ok {
		g = borderSets[BorderPlain]
	}

	if sides&SideLeft != 0 {
		for y := r.Top(); y < r.Bottom(); y++ {
			s.Set(r.Left(), y, g.vertical, style)
		}
	}
	if sides&SideTop != 0 {
		for x := r.Left(); x < r.Right(); x++ {
			s.Set(x, r.Top(), g.horizontal, style)
		}
	}
	if sides&SideRight != 0 {
		for y := r.Top(); y < r.Bottom(); y++ {
			s.Set(r.Right()-1, y, g.vertical, style)
		}
	}
	if sides&SideBottom != 0 {
		for x := r.Left(); x < r.Right(); x++ {
			s.Set(x, r.Bottom()-1, g.horizontal, style)
		}
	}

	if sides&(SideRight|SideBottom) == SideRight|SideBottom {
		s.Set(r.Right()-1, r.Bottom()-1, g.bottomRight, style)
	}
	if sides&(SideRight|SideTop) == SideRight|SideTop {
		s.Set(r.Right()-1, r.Top(), g.topRight, style)
	}
	if sides&(SideLeft|SideBottom) == SideLeft|SideBottom {
		s.Set(r.Left(), r.Bottom()-1, g.bottomLeft, style)
	}
	if sides&(SideLeft|SideTop) == SideLeft|SideTop {
		s.Set(r.Left(), r.Top(), g.topLeft, style)
	}
}
