// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.Theme = (*Theme)(nil)

// Theme implements sidediff.Theme with Lipgloss-compatible colors.
type Theme struct {
	id     string
	styles sidediff.Styles
}

// ID returns the identifier the theme is registered under.
func (t *Theme) ID() string {
	return t.id
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() sidediff.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		id: sidediff.DefaultDarkTheme,
		styles: sidediff.Styles{
			Added: sidediff.ColorPair{
				Foreground: "#a6e3a1", // Green
				Background: "#004000", // Very dark green
			},
			Deleted: sidediff.ColorPair{
				Foreground: "#f38ba8", // Red
				Background: "#3f0001", // Very dark red
			},
			Changed: sidediff.ColorPair{
				Foreground: "#f9e2af", // Yellow
			},
			Context: sidediff.ColorPair{
				Foreground: "#cdd6f4",
			},
			Filler: sidediff.ColorPair{
				Foreground: "#313244",
				Background: "#181825",
			},
			FileHeader: sidediff.ColorPair{
				Foreground: "#f9e2af", // Yellow
				Background: "#313244", // Dark surface
			},
			LineNumber: sidediff.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			AddedGutter: sidediff.ColorPair{
				Foreground: "#a6e3a1",
				Background: "#002800",
			},
			DeletedGutter: sidediff.ColorPair{
				Foreground: "#f38ba8",
				Background: "#2a0001",
			},
			AddedHighlight: sidediff.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#a6e3a1", // Bright green background
			},
			DeletedHighlight: sidediff.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#f38ba8", // Bright red background
			},
			Separator: sidediff.ColorPair{
				Foreground: "#45475a", // Muted gray (subtle)
			},
			StatusBar: sidediff.ColorPair{
				Foreground: "#a6adc8",
				Background: "#313244",
			},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		id: sidediff.DefaultLightTheme,
		styles: sidediff.Styles{
			Added: sidediff.ColorPair{
				Foreground: "#40a02b", // Green
				Background: "#d4f4d4", // Subtle green background
			},
			Deleted: sidediff.ColorPair{
				Foreground: "#d20f39", // Red
				Background: "#f4d4d4", // Subtle red background
			},
			Changed: sidediff.ColorPair{
				Foreground: "#df8e1d", // Yellow
			},
			Context: sidediff.ColorPair{
				Foreground: "#4c4f69",
			},
			Filler: sidediff.ColorPair{
				Foreground: "#ccd0da",
				Background: "#e6e9ef",
			},
			FileHeader: sidediff.ColorPair{
				Foreground: "#df8e1d", // Yellow
				Background: "#e6e9ef", // Light surface
			},
			LineNumber: sidediff.ColorPair{
				Foreground: "#9ca0b0", // Muted gray for light theme
			},
			AddedGutter: sidediff.ColorPair{
				Foreground: "#40a02b",
				Background: "#c2ecc2",
			},
			DeletedGutter: sidediff.ColorPair{
				Foreground: "#d20f39",
				Background: "#ecc2c2",
			},
			AddedHighlight: sidediff.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#40a02b", // Bright green background
			},
			DeletedHighlight: sidediff.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#d20f39", // Bright red background
			},
			Separator: sidediff.ColorPair{
				Foreground: "#bcc0cc", // Muted gray (subtle for light)
			},
			StatusBar: sidediff.ColorPair{
				Foreground: "#6c6f85",
				Background: "#e6e9ef",
			},
		},
	}
}

// Lookup returns the built-in theme registered under id.
func Lookup(id string) (*Theme, bool) {
	switch id {
	case sidediff.DefaultDarkTheme:
		return DarkTheme(), true
	case sidediff.DefaultLightTheme:
		return LightTheme(), true
	}
	return nil, false
}

// ForConfig resolves the active theme of cfg. Unknown identifiers fall back to
// the built-in theme of the same key, so a light key never renders dark.
func ForConfig(cfg sidediff.PresentationConfig) *Theme {
	if t, ok := Lookup(cfg.ThemeID()); ok {
		return t
	}
	if cfg.ActiveTheme == sidediff.ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// ForBackground picks the built-in theme matching the terminal background of r.
// A nil renderer uses the default renderer.
func ForBackground(r *lipgloss.Renderer) sidediff.ThemeKey {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if r.HasDarkBackground() {
		return sidediff.ThemeDark
	}
	return sidediff.ThemeLight
}
