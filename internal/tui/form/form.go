// Package form implements the typed input form engine: an ordered set of
// heterogeneous fields behind one capability contract, with shared
// navigation, edit and reset behavior.
package form

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/deskdash/internal/tui/bounds"
	"github.com/hy4ri/deskdash/internal/tui/surface"
	"github.com/mattn/go-runewidth"
)

// FieldStyle carries the per-field chrome: title, border configuration and
// the selected/unselected style pair.
type FieldStyle struct {
	Title      string
	Sides      surface.Side
	Border     surface.Border
	Selected   lipgloss.Style
	Unselected lipgloss.Style
}

// NewFieldStyle returns the default chrome for a titled field.
func NewFieldStyle(title string, selected, unselected lipgloss.Style) FieldStyle {
	return FieldStyle{
		Title:      title,
		Sides:      surface.SideAll,
		Border:     surface.BorderPlain,
		Selected:   selected,
		Unselected: unselected,
	}
}

// Field is the capability contract every field variant satisfies.
type Field interface {
	// DisplayValue is the string rendered inside the field box.
	DisplayValue() string
	// Required reports whether submission needs a non-empty value.
	Required() bool
	// Reset restores the field to its default value.
	Reset()
	// HandleKey feeds one keystroke to the field. Invalid input is
	// rejected silently: the value simply does not change.
	HandleKey(msg tea.KeyMsg)
	// Style returns the field's chrome for rendering and restyling.
	Style() *FieldStyle
}

// State is an ordered field collection plus a cursor. The zero value is
// usable.
type State struct {
	fields   []Field
	selected int
}

// NewState returns an empty form.
func NewState() *State {
	return &State{}
}

// AddField appends a field to the form.
func (s *State) AddField(f Field) {
	s.fields = append(s.fields, f)
}

// Fields returns the ordered field list.
func (s *State) Fields() []Field {
	return s.fields
}

// Len returns the number of fields.
func (s *State) Len() int {
	return len(s.fields)
}

// Selected returns the cursor position.
func (s *State) Selected() int {
	return s.selected
}

// SelectedField returns the field under the cursor, or nil for an empty form.
func (s *State) SelectedField() Field {
	if len(s.fields) == 0 {
		return nil
	}
	return s.fields[s.selected]
}

// MoveCursor moves the field cursor by delta, saturating at both ends.
func (s *State) MoveCursor(delta int) {
	if len(s.fields) == 0 {
		return
	}
	s.selected = bounds.Increment(s.selected, 0, len(s.fields)-1, delta)
}

// HandleKey routes one keystroke to the selected field. No-op on an empty
// form.
func (s *State) HandleKey(msg tea.KeyMsg) {
	if f := s.SelectedField(); f != nil {
		f.HandleKey(msg)
	}
}

// Reset restores every field to its default value and the cursor to the
// first field. This is the rollback used after a submission, successful or
// abandoned.
func (s *State) Reset() {
	s.selected = 0
	for _, f := range s.fields {
		f.Reset()
	}
}

// SetActiveStyle swaps the selected-style of every field, used when a whole
// form gains or loses focus.
func (s *State) SetActiveStyle(style lipgloss.Style) {
	for _, f := range s.fields {
		f.Style().Selected = style
	}
}

// Render lays the fields out as stacked 3-row bordered boxes: title line,
// then value line. The selected field gets a block cursor after its value
// and the selected style; all others get the unselected style.
func (s *State) Render(surf *surface.Surface, area surface.Rect) {
	if len(s.fields) == 0 {
		return
	}

	for i, f := range s.fields {
		st := f.Style()
		fieldArea := surface.Rect{
			X:      area.X,
			Y:      area.Y + 3*i,
			Width:  area.Width,
			Height: 3,
		}
		if fieldArea.Bottom() > area.Bottom() {
			break
		}

		style := st.Unselected
		if i == s.selected {
			style = st.Selected
		}

		surface.DrawBorders(surf, fieldArea, st.Sides, st.Border, style)

		value := f.DisplayValue()
		surf.SetString(fieldArea.X+1, fieldArea.Y, st.Title, style)
		surf.SetString(fieldArea.X+1, fieldArea.Y+1, value, style)

		if i == s.selected {
			surf.Set(fieldArea.X+1+runewidth.StringWidth(value), fieldArea.Y+1, '█', st.Selected)
		}
	}
}
