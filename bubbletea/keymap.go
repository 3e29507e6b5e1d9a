package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the comparison viewer.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	ScrollLeft   key.Binding
	ScrollRight  key.Binding
	NextHunk     key.Binding
	PrevHunk     key.Binding
	NextFile     key.Binding
	PrevFile     key.Binding
	Quit         key.Binding

	// Presentation toggles
	ToggleStyle       key.Binding
	ToggleTheme       key.Binding
	ToggleWrap        key.Binding
	CycleRefinement   key.Binding
	CycleIndicators   key.Binding
	ToggleLineNumbers key.Binding
	ToggleFileHeader  key.Binding
	SwapSides         key.Binding

	// Export
	CopyPatch key.Binding
	SavePair  key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "scroll right"),
		),
		NextHunk: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next hunk"),
		),
		PrevHunk: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous hunk"),
		),
		NextFile: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next file"),
		),
		PrevFile: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous file"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleStyle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "split/unified"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "dark/light"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wrap/scroll"),
		),
		CycleRefinement: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "word diff mode"),
		),
		CycleIndicators: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "indicators"),
		),
		ToggleLineNumbers: key.NewBinding(
			key.WithKeys("#"),
			key.WithHelp("#", "line numbers"),
		),
		ToggleFileHeader: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "file header"),
		),
		SwapSides: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "swap sides"),
		),
		CopyPatch: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy patch"),
		),
		SavePair: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "save file pair"),
		),
	}
}
