package form

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/deskdash/internal/tui/surface"
)

func testStyle(title string) FieldStyle {
	return NewFieldStyle(title, lipgloss.NewStyle(), lipgloss.NewStyle())
}

func runes(s string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var backspace = tea.KeyMsg{Type: tea.KeyBackspace}

func TestTextFieldInput(t *testing.T) {
	f := NewTextField("", true, testStyle("Title"))
	for _, m := range runes("abc") {
		f.HandleKey(m)
	}
	if f.Value() != "abc" {
		t.Errorf("Value() = %q, want %q", f.Value(), "abc")
	}

	f.HandleKey(backspace)
	if f.Value() != "ab" {
		t.Errorf("after backspace Value() = %q, want %q", f.Value(), "ab")
	}

	f.HandleKey(backspace)
	f.HandleKey(backspace)
	f.HandleKey(backspace) // empty field: no-op
	if f.Value() != "" {
		t.Errorf("Value() = %q, want empty", f.Value())
	}
}

func TestIntFieldShifting(t *testing.T) {
	f := NewIntField(0, false, testStyle("Num"))
	for _, m := range runes("407") {
		f.HandleKey(m)
	}
	if f.Value() != 407 {
		t.Errorf("Value() = %d, want 407", f.Value())
	}

	f.HandleKey(backspace)
	if f.Value() != 40 {
		t.Errorf("after backspace Value() = %d, want 40", f.Value())
	}

	// non-digits rejected silently
	for _, m := range runes("x.") {
		f.HandleKey(m)
	}
	if f.Value() != 40 {
		t.Errorf("Value() = %d, want 40", f.Value())
	}
}

func TestFloatFieldParsesDisplay(t *testing.T) {
	f := NewFloatField(0, 100, true, testStyle("Amount"))
	for _, m := range runes("12.5") {
		f.HandleKey(m)
	}
	if f.DisplayValue() != "12.5" {
		t.Errorf("DisplayValue() = %q, want %q", f.DisplayValue(), "12.5")
	}
	if f.Value() != 12.5 {
		t.Errorf("Value() = %v, want 12.5", f.Value())
	}
}

func TestFloatFieldRejectsBeyondMax(t *testing.T) {
	f := NewFloatField(0, 100, true, testStyle("Amount"))
	for _, m := range runes("99") {
		f.HandleKey(m)
	}
	// next digit would make 999 > 100: rejected at the offending keystroke
	for _, m := range runes("9") {
		f.HandleKey(m)
	}
	if f.DisplayValue() != "99" || f.Value() != 99 {
		t.Errorf("got display %q value %v, want unchanged 99", f.DisplayValue(), f.Value())
	}
}

func TestFloatFieldBackspaceResolvesEmptyToZero(t *testing.T) {
	f := NewFloatField(0, 100, false, testStyle("Amount"))
	for _, m := range runes("7") {
		f.HandleKey(m)
	}
	f.HandleKey(backspace)
	if f.Value() != 0 {
		t.Errorf("Value() = %v, want 0", f.Value())
	}
	f.HandleKey(backspace) // already empty: no-op
	if f.Value() != 0 {
		t.Errorf("Value() = %v, want 0", f.Value())
	}
}

func TestDateFieldRejectsInvalidMonthDigit(t *testing.T) {
	f := NewDateField(time.Time{}, false, testStyle("Date"))
	for _, m := range runes("3102") {
		f.HandleKey(m)
	}
	// Feb has at most 29 days, so the month's second digit is rejected;
	// the first month digit survives.
	if got := f.DisplayValue(); got != "31 / 0_ / __" {
		t.Errorf("DisplayValue() = %q, want %q", got, "31 / 0_ / __")
	}
}

func TestDateFieldAcceptsValidDate(t *testing.T) {
	f := NewDateField(time.Time{}, false, testStyle("Date"))
	for _, m := range runes("150624") {
		f.HandleKey(m)
	}
	if got := f.DisplayValue(); got != "15 / 06 / 24" {
		t.Errorf("DisplayValue() = %q, want %q", got, "15 / 06 / 24")
	}
	want := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !f.Value().Equal(want) {
		t.Errorf("Value() = %v, want %v", f.Value(), want)
	}
}

func TestDateFieldRejectsImpossibleDay(t *testing.T) {
	f := NewDateField(time.Time{}, false, testStyle("Date"))
	for _, m := range runes("32") {
		f.HandleKey(m)
	}
	if got := f.DisplayValue(); got != "3_ / __ / __" {
		t.Errorf("DisplayValue() = %q, want %q", got, "3_ / __ / __")
	}
}

func TestDateFieldBackspaceOrder(t *testing.T) {
	f := NewDateField(time.Time{}, false, testStyle("Date"))
	for _, m := range runes("150624") {
		f.HandleKey(m)
	}

	f.HandleKey(backspace)
	if got := f.DisplayValue(); got != "15 / 06 / __" {
		t.Errorf("after 1 backspace: %q", got)
	}
	f.HandleKey(backspace)
	if got := f.DisplayValue(); got != "15 / __ / __" {
		t.Errorf("after 2 backspaces: %q", got)
	}
	f.HandleKey(backspace)
	if got := f.DisplayValue(); got != "__ / __ / __" {
		t.Errorf("after 3 backspaces: %q", got)
	}
}

func TestMoveCursorSaturates(t *testing.T) {
	s := NewState()
	s.AddField(NewTextField("", false, testStyle("A")))
	s.AddField(NewTextField("", false, testStyle("B")))
	s.AddField(NewTextField("", false, testStyle("C")))

	s.MoveCursor(-1)
	s.MoveCursor(-1)
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", s.Selected())
	}

	for i := 0; i < 10; i++ {
		s.MoveCursor(1)
	}
	if s.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", s.Selected())
	}
}

func TestEmptyFormIsGuarded(t *testing.T) {
	s := NewState()
	s.MoveCursor(1)
	s.HandleKey(backspace)
	s.Reset()
	if s.SelectedField() != nil {
		t.Error("SelectedField() on empty form should be nil")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := NewState()
	s.AddField(NewTextField("init", false, testStyle("A")))
	s.AddField(NewFloatField(50, 1000, false, testStyle("B")))
	s.MoveCursor(1)
	s.HandleKey(backspace)
	s.Fields()[0].(*TextField).HandleKey(runes("x")[0])

	s.Reset()
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", s.Selected())
	}
	if got := s.Fields()[0].(*TextField).Value(); got != "init" {
		t.Errorf("text Value() = %q, want %q", got, "init")
	}
	if got := s.Fields()[1].(*FloatField).Value(); got != 50 {
		t.Errorf("float Value() = %v, want 50", got)
	}
}

func TestRenderMarksSelectedField(t *testing.T) {
	s := NewState()
	s.AddField(NewTextField("abc", false, testStyle("First")))
	s.AddField(NewTextField("", false, testStyle("Second")))

	surf := surface.New(20, 6)
	s.Render(surf, surf.Bounds())

	plain := surf.PlainString()
	if !strings.Contains(plain, "First") || !strings.Contains(plain, "Second") {
		t.Fatalf("titles missing from render:\n%s", plain)
	}
	if !strings.Contains(plain, "abc█") {
		t.Errorf("selected field cursor missing:\n%s", plain)
	}
}

func TestRenderCursorAfterWideRunes(t *testing.T) {
	s := NewState()
	s.AddField(NewTextField("日本", false, testStyle("Title")))

	surf := surface.New(20, 3)
	s.Render(surf, surf.Bounds())

	// Each glyph occupies two columns; the cursor sits right after them.
	if got := surf.At(1+4, 1).Rune; got != '█' {
		t.Errorf("cell after wide value = %q, want cursor", got)
	}
}
