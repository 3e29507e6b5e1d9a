package sidediff

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements of a comparison.
type Styles struct {
	Added            ColorPair // Added rows
	Deleted          ColorPair // Removed rows
	Changed          ColorPair // Unchanged text on changed rows is drawn with Added/Deleted; this colors the indicator
	Context          ColorPair // Unchanged rows
	Filler           ColorPair // Empty split column
	FileHeader       ColorPair // File header line
	LineNumber       ColorPair // Gutter for unchanged rows
	AddedGutter      ColorPair // Gutter for added rows
	DeletedGutter    ColorPair // Gutter for removed rows
	AddedHighlight   ColorPair // Changed tokens within added rows
	DeletedHighlight ColorPair // Changed tokens within removed rows
	Separator        ColorPair // Split column divider
	StatusBar        ColorPair // Viewer status line
}

// Theme provides styles for rendering comparisons.
// Different implementations can provide light/dark variants.
type Theme interface {
	ID() string
	Styles() Styles
}
