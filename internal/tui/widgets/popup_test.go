package widgets

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hy4ri/deskdash/internal/tui/surface"
)

func TestWrapLine(t *testing.T) {
	tests := []struct {
		line  string
		width int
		want  []string
	}{
		{"short", 10, []string{"short"}},
		{"two words here", 9, []string{"two words", "here"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"", 5, []string{""}},
	}
	for _, tt := range tests {
		if got := wrapLine(tt.line, tt.width); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrapLine(%q, %d) = %v, want %v", tt.line, tt.width, got, tt.want)
		}
	}
}

func TestRenderPopupClearsAndFrames(t *testing.T) {
	s := surface.New(40, 20)
	st := testStyles()
	// background content that the popup must cover
	for y := 0; y < 20; y++ {
		s.SetString(0, y, strings.Repeat("x", 40), st.Main)
	}

	RenderPopup(s, s.Bounds(), st, " Event ", []string{"hello"}, 50, 50)
	out := s.PlainString()

	if !strings.Contains(out, "hello") {
		t.Fatalf("popup body missing:\n%s", out)
	}
	if !strings.Contains(out, "┏") {
		t.Fatalf("thick border missing:\n%s", out)
	}
	// center of the surface is inside the popup and must be cleared
	if c := s.At(20, 10); c.Rune == 'x' {
		t.Fatal("popup did not clear the area beneath it")
	}
}

func TestRenderWaitPopupKeepsPreviousFrame(t *testing.T) {
	st := testStyles()
	prev := surface.New(40, 20)
	prev.SetString(0, 0, "corner", st.Main)

	s := surface.New(40, 20)
	RenderWaitPopup(s, prev, st, "⠋")
	out := s.PlainString()

	if !strings.Contains(out, "corner") {
		t.Fatalf("previous frame not merged:\n%s", out)
	}
	if !strings.Contains(out, "Please Wait") {
		t.Fatalf("wait text missing:\n%s", out)
	}
}
