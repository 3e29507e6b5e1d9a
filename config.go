package sidediff

import "fmt"

// ThemeKey selects one entry of the theme pair.
type ThemeKey string

// Theme keys.
const (
	ThemeDark  ThemeKey = "dark"
	ThemeLight ThemeKey = "light"
)

// DiffStyle selects the layout projection.
type DiffStyle string

// Diff styles.
const (
	DiffStyleSplit   DiffStyle = "split"
	DiffStyleUnified DiffStyle = "unified"
)

// IndicatorStyle selects how changed rows are marked by the renderer.
type IndicatorStyle string

// Indicator styles.
const (
	IndicatorBars    IndicatorStyle = "bars"
	IndicatorClassic IndicatorStyle = "classic"
	IndicatorNone    IndicatorStyle = "none"
)

// LineRefinement selects the intra-line refinement strategy.
type LineRefinement string

// Refinement strategies.
const (
	RefineNone    LineRefinement = "none"
	RefineWord    LineRefinement = "word"
	RefineWordAlt LineRefinement = "word-alt"
)

// OverflowPolicy selects how the renderer treats lines wider than a column.
type OverflowPolicy string

// Overflow policies.
const (
	OverflowScroll OverflowPolicy = "scroll"
	OverflowWrap   OverflowPolicy = "wrap"
)

// Built-in theme identifiers.
const (
	DefaultDarkTheme  = "sidediff-dark"
	DefaultLightTheme = "sidediff-light"
)

// ThemePair maps the two theme keys to opaque theme identifiers.
type ThemePair struct {
	Dark  string `json:"dark"`
	Light string `json:"light"`
}

// PresentationConfig controls projection and rendering of a comparison.
// Only DiffStyle and LineRefinement affect the engine; the remaining fields
// are passed through to the renderer.
type PresentationConfig struct {
	Themes          ThemePair      `json:"theme"`
	ActiveTheme     ThemeKey       `json:"themeType"`
	DiffStyle       DiffStyle      `json:"diffStyle"`
	IndicatorStyle  IndicatorStyle `json:"diffIndicators"`
	LineRefinement  LineRefinement `json:"lineDiffType"`
	ShowLineNumbers bool           `json:"showLineNumbers"`
	OverflowPolicy  OverflowPolicy `json:"overflow"`
	ShowFileHeader  bool           `json:"showFileHeader"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() PresentationConfig {
	return PresentationConfig{
		Themes:          ThemePair{Dark: DefaultDarkTheme, Light: DefaultLightTheme},
		ActiveTheme:     ThemeDark,
		DiffStyle:       DiffStyleSplit,
		IndicatorStyle:  IndicatorBars,
		LineRefinement:  RefineWordAlt,
		ShowLineNumbers: true,
		OverflowPolicy:  OverflowScroll,
		ShowFileHeader:  true,
	}
}

// ThemeID returns the identifier of the active theme.
func (c PresentationConfig) ThemeID() string {
	if c.ActiveTheme == ThemeLight {
		return c.Themes.Light
	}
	return c.Themes.Dark
}

// ConfigIssue describes a config field that was replaced by its default.
type ConfigIssue struct {
	Field    string // JSON name of the field
	Value    string // Rejected value
	Replaced string // Default that was applied
}

// Error implements the error interface.
func (i ConfigIssue) Error() string {
	return fmt.Sprintf("config: invalid %s %q, using %q", i.Field, i.Value, i.Replaced)
}

// Normalize returns a copy of c with every invalid field replaced by its
// default, along with one issue per replaced field. It never fails.
func (c PresentationConfig) Normalize() (PresentationConfig, []ConfigIssue) {
	def := DefaultConfig()
	var issues []ConfigIssue

	if c.Themes.Dark == "" {
		issues = append(issues, ConfigIssue{Field: "theme.dark", Replaced: def.Themes.Dark})
		c.Themes.Dark = def.Themes.Dark
	}
	if c.Themes.Light == "" {
		issues = append(issues, ConfigIssue{Field: "theme.light", Replaced: def.Themes.Light})
		c.Themes.Light = def.Themes.Light
	}

	switch c.ActiveTheme {
	case ThemeDark, ThemeLight:
	default:
		issues = append(issues, ConfigIssue{Field: "themeType", Value: string(c.ActiveTheme), Replaced: string(def.ActiveTheme)})
		c.ActiveTheme = def.ActiveTheme
	}

	switch c.DiffStyle {
	case DiffStyleSplit, DiffStyleUnified:
	default:
		issues = append(issues, ConfigIssue{Field: "diffStyle", Value: string(c.DiffStyle), Replaced: string(def.DiffStyle)})
		c.DiffStyle = def.DiffStyle
	}

	switch c.IndicatorStyle {
	case IndicatorBars, IndicatorClassic, IndicatorNone:
	default:
		issues = append(issues, ConfigIssue{Field: "diffIndicators", Value: string(c.IndicatorStyle), Replaced: string(def.IndicatorStyle)})
		c.IndicatorStyle = def.IndicatorStyle
	}

	switch c.LineRefinement {
	case RefineNone, RefineWord, RefineWordAlt:
	default:
		issues = append(issues, ConfigIssue{Field: "lineDiffType", Value: string(c.LineRefinement), Replaced: string(def.LineRefinement)})
		c.LineRefinement = def.LineRefinement
	}

	switch c.OverflowPolicy {
	case OverflowScroll, OverflowWrap:
	default:
		issues = append(issues, ConfigIssue{Field: "overflow", Value: string(c.OverflowPolicy), Replaced: string(def.OverflowPolicy)})
		c.OverflowPolicy = def.OverflowPolicy
	}

	return c, issues
}
