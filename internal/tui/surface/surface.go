// Package surface provides the character-grid frame model the widgets draw
// into. A Surface is created fresh each frame; widgets write styled runes
// into sub-rectangles of it and the app serializes it once per View.
package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Rect is a rectangle in grid coordinates. Rects are passed by value and
// derived by arithmetic, never mutated in place.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Inset returns the rect shrunk by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
}

// CenteredRect returns a sub-rectangle centered in container sized to the
// given percentages of its width and height. Integer division truncates, so
// odd leftover cells bias toward the top-left.
func CenteredRect(percentX, percentY int, container Rect) Rect {
	w := container.Width * percentX / 100
	h := container.Height * percentY / 100
	return Rect{
		X:      container.X + (container.Width-w)/2,
		Y:      container.Y + (container.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// Cell is one displayable glyph plus its style.
type Cell struct {
	Rune  rune
	Style lipgloss.Style
}

// Surface is a rectangular grid of cells representing one rendered frame.
type Surface struct {
	width, height int
	cells         []Cell
}

// New creates a blank surface of the given dimensions.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s := &Surface{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for i := range s.cells {
		s.cells[i].Rune = ' '
	}
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Bounds returns the full surface rect.
func (s *Surface) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Set writes one cell. Writes outside the surface are dropped.
func (s *Surface) Set(x, y int, r rune, style lipgloss.Style) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = Cell{Rune: r, Style: style}
}

// At returns the cell at (x, y), or a blank cell when out of bounds.
func (s *Surface) At(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y*s.width+x]
}

// SetString writes a string starting at (x, y), clipped to the surface.
// Wide runes occupy their display width; the trailing cells of a wide rune
// are left blank so column arithmetic stays consistent.
func (s *Surface) SetString(x, y int, str string, style lipgloss.Style) {
	if y < 0 || y >= s.height {
		return
	}
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= s.width {
			break
		}
		s.Set(x, y, r, style)
		x += w
	}
}

// Clear resets every cell in the rect to a blank, default-styled cell.
func (s *Surface) Clear(r Rect) {
	for y := r.Top(); y < r.Bottom(); y++ {
		for x := r.Left(); x < r.Right(); x++ {
			s.Set(x, y, ' ', lipgloss.NewStyle())
		}
	}
}

// Merge copies every cell of prev onto the surface, styles included.
// Styled spaces carry fills (gauge bars), so blanks are copied too. Used by
// the wait overlay to show the previous frame underneath a popup.
func (s *Surface) Merge(prev *Surface) {
	if prev == nil {
		return
	}
	for y := 0; y < prev.height && y < s.height; y++ {
		for x := 0; x < prev.width && x < s.width; x++ {
			s.cells[y*s.width+x] = prev.cells[y*prev.width+x]
		}
	}
}

// String serializes the surface for terminal output, one styled line per row.
func (s *Surface) String() string {
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < s.width; x++ {
			c := s.cells[y*s.width+x]
			if c.Rune == 0 {
				c.Rune = ' '
			}
			b.WriteString(c.Style.Render(string(c.Rune)))
		}
	}
	return b.String()
}

// PlainString serializes the surface without styling. Used by tests.
func (s *Surface) PlainString() string {
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < s.width; x++ {
			c := s.cells[y*s.width+x]
			if c.Rune == 0 {
				c.Rune = ' '
			}
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}
