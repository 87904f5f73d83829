package widgets

import (
	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
)

// RenderList draws a titled, bordered bullet list. Items beyond the rect
// are dropped.
func RenderList(s *surface.Surface, area surface.Rect, st *styles.Styles, title string, items []string) {
	surface.DrawBorders(s, area, surface.SideAll, surface.BorderPlain, st.Main)
	s.SetString(area.X+2, area.Y, title, st.Title)

	inner := area.Inset(1)
	for i, item := range items {
		if i >= inner.Height {
			break
		}
		s.SetString(inner.X, inner.Y+i, "• "+item, st.Main)
	}
}
