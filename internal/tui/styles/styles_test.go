package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/deskdash/internal/config"
)

func TestNewUsesConfiguredColors(t *testing.T) {
	s := New(config.ThemeConfig{Main: "#ff0000", Accent: "#00007f"})
	if s.MainColor != lipgloss.Color("#ff0000") {
		t.Errorf("MainColor = %q, want %q", s.MainColor, "#ff0000")
	}
	if s.AccentColor != lipgloss.Color("#00007f") {
		t.Errorf("AccentColor = %q, want %q", s.AccentColor, "#00007f")
	}
}

func TestNewFallsBackOnMalformedColors(t *testing.T) {
	tests := []struct {
		name  string
		theme config.ThemeConfig
	}{
		{"empty", config.ThemeConfig{}},
		{"not hex", config.ThemeConfig{Main: "green", Accent: "accent"}},
		{"short hex", config.ThemeConfig{Main: "#0f0", Accent: "#05f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.theme)
			if s.MainColor != lipgloss.Color(DefaultMain) {
				t.Errorf("MainColor = %q, want default %q", s.MainColor, DefaultMain)
			}
			if s.AccentColor != lipgloss.Color(DefaultAccent) {
				t.Errorf("AccentColor = %q, want default %q", s.AccentColor, DefaultAccent)
			}
		})
	}
}
