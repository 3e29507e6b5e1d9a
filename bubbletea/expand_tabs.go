package bubbletea

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// tabWidth is the distance between tab stops.
const tabWidth = 8

// ExpandTabs replaces each tab with spaces up to the next 8-column tab stop.
// startCol is the display column s begins at. Column widths follow
// go-runewidth, so wide runes advance two columns and combining marks none.
func ExpandTabs(s string, startCol int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + tabWidth)
	col := startCol
	for _, r := range s {
		if r != '\t' {
			sb.WriteRune(r)
			col += runewidth.RuneWidth(r)
			continue
		}
		next := (col/tabWidth + 1) * tabWidth
		sb.WriteString(strings.Repeat(" ", next-col))
		col = next
	}
	return sb.String()
}
