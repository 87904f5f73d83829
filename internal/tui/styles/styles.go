// Package styles provides Lip Gloss styles for the TUI, built once at
// startup from the configured theme and passed into the render call tree.
package styles

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/deskdash/internal/config"
)

// Built-in fallback colors, used when a theme entry is missing or malformed.
const (
	DefaultMain       = "#00ff00"
	DefaultAccent     = "#005f00"
	DefaultBackground = "#000000"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Styles is the immutable style table for one application run.
type Styles struct {
	MainColor   lipgloss.Color
	AccentColor lipgloss.Color

	Main         lipgloss.Style
	Accent       lipgloss.Style
	InvertedMain lipgloss.Style
	ProgressBar  lipgloss.Style

	CalendarToday      lipgloss.Style
	CalendarSelected   lipgloss.Style
	CalendarDeselected lipgloss.Style
	CalendarDisabled   lipgloss.Style

	Title            lipgloss.Style
	TitleDeactivated lipgloss.Style

	ButtonSelected   lipgloss.Style
	ButtonDeselected lipgloss.Style
}

// color validates a hex value, falling back when malformed.
func color(value, fallback string) lipgloss.Color {
	if !hexColorRe.MatchString(value) {
		value = fallback
	}
	return lipgloss.Color(value)
}

// New builds the style table from the configured theme.
func New(theme config.ThemeConfig) *Styles {
	main := color(theme.Main, DefaultMain)
	accent := color(theme.Accent, DefaultAccent)
	background := color(theme.Background, DefaultBackground)

	return &Styles{
		MainColor:   main,
		AccentColor: accent,

		Main:         lipgloss.NewStyle().Foreground(main),
		Accent:       lipgloss.NewStyle().Foreground(accent),
		InvertedMain: lipgloss.NewStyle().Foreground(background).Background(main),
		ProgressBar:  lipgloss.NewStyle().Foreground(main).Background(background),

		CalendarToday:      lipgloss.NewStyle().Foreground(accent),
		CalendarSelected:   lipgloss.NewStyle().Foreground(main),
		CalendarDeselected: lipgloss.NewStyle().Foreground(accent),
		CalendarDisabled:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")),

		Title:            lipgloss.NewStyle().Foreground(main).Bold(true),
		TitleDeactivated: lipgloss.NewStyle().Foreground(accent).Bold(true),

		ButtonSelected:   lipgloss.NewStyle().Foreground(background).Background(main),
		ButtonDeselected: lipgloss.NewStyle().Foreground(background).Background(accent),
	}
}
