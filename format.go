package sidediff

import (
	"fmt"
	"strings"
)

// FormatPatch renders d as a unified patch with the given number of context
// lines around each change. Hunks whose context overlaps are merged. A last
// line without a terminator is followed by "\ No newline at end of file", so
// adding or removing the final newline shows as a change of that line.
// Returns an empty string when the files are identical.
func FormatPatch(d *Diff, context int) string {
	if d == nil {
		return ""
	}
	if context < 0 {
		context = 0
	}
	entries := patchEntries(d)

	var sb strings.Builder
	for _, w := range patchWindows(entries, context) {
		if sb.Len() == 0 {
			fmt.Fprintf(&sb, "--- a/%s\n", d.Pair.Old.Name)
			fmt.Fprintf(&sb, "+++ b/%s\n", d.Pair.New.Name)
		}
		oldCount, newCount := 0, 0
		for _, e := range entries[w[0]:w[1]] {
			if e.prefix != '+' {
				oldCount++
			}
			if e.prefix != '-' {
				newCount++
			}
		}
		first := entries[w[0]]
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n", patchRange(first.oldPos, oldCount), patchRange(first.newPos, newCount))
		for _, e := range entries[w[0]:w[1]] {
			sb.WriteByte(e.prefix)
			sb.WriteString(e.text)
			sb.WriteByte('\n')
			if e.noEOL {
				sb.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	return sb.String()
}

// patchEntry is one line of patch output. oldPos and newPos count the real
// lines of each side that precede it.
type patchEntry struct {
	prefix         byte
	text           string
	oldPos, newPos int
	noEOL          bool
}

// lineState classifies a Line against the raw text it was split from.
type lineState int

const (
	lineTerminated lineState = iota
	lineUnterminated
	// The empty element after a final terminator is not a line of its own.
	lineVirtual
)

func stateOf(lines []Line, i int) lineState {
	if i < len(lines)-1 {
		return lineTerminated
	}
	if lines[i].Text == "" {
		return lineVirtual
	}
	return lineUnterminated
}

// patchEntries converts the line script of d into patch lines. A kept pair
// whose sides differ in termination becomes a deletion and an insertion.
func patchEntries(d *Diff) []patchEntry {
	var entries []patchEntry
	oldPos, newPos := 0, 0
	del := func(i int, s lineState) {
		entries = append(entries, patchEntry{prefix: '-', text: d.OldLines[i].Text, oldPos: oldPos, newPos: newPos, noEOL: s == lineUnterminated})
		oldPos++
	}
	ins := func(i int, s lineState) {
		entries = append(entries, patchEntry{prefix: '+', text: d.NewLines[i].Text, oldPos: oldPos, newPos: newPos, noEOL: s == lineUnterminated})
		newPos++
	}

	for _, op := range d.Script {
		var oldState, newState lineState
		if op.HasOld() {
			oldState = stateOf(d.OldLines, op.OldIndex)
		}
		if op.HasNew() {
			newState = stateOf(d.NewLines, op.NewIndex)
		}
		switch {
		case op.Kind == OpKeep && oldState == newState:
			if oldState == lineVirtual {
				continue
			}
			entries = append(entries, patchEntry{prefix: ' ', text: d.OldLines[op.OldIndex].Text, oldPos: oldPos, newPos: newPos, noEOL: oldState == lineUnterminated})
			oldPos++
			newPos++
		default:
			if op.HasOld() && oldState != lineVirtual {
				del(op.OldIndex, oldState)
			}
			if op.HasNew() && newState != lineVirtual {
				ins(op.NewIndex, newState)
			}
		}
	}
	sortChangeRuns(entries)
	return entries
}

// sortChangeRuns moves deletions ahead of insertions within each run of
// changes and recomputes positions.
func sortChangeRuns(entries []patchEntry) {
	var scratch []patchEntry
	for i := 0; i < len(entries); {
		if entries[i].prefix == ' ' {
			i++
			continue
		}
		j := i
		for j < len(entries) && entries[j].prefix != ' ' {
			j++
		}
		oldPos, newPos := entries[i].oldPos, entries[i].newPos
		scratch = scratch[:0]
		for _, prefix := range []byte{'-', '+'} {
			for _, e := range entries[i:j] {
				if e.prefix == prefix {
					scratch = append(scratch, e)
				}
			}
		}
		for k, e := range scratch {
			e.oldPos, e.newPos = oldPos, newPos
			if e.prefix == '-' {
				oldPos++
			} else {
				newPos++
			}
			entries[i+k] = e
		}
		i = j
	}
}

// patchWindows returns the [start, end) entry ranges of the hunks. Change
// runs separated by at most 2*context unchanged lines share a hunk.
func patchWindows(entries []patchEntry, context int) [][2]int {
	var windows [][2]int
	for i := 0; i < len(entries); {
		if entries[i].prefix == ' ' {
			i++
			continue
		}
		j := i
		for j < len(entries) && entries[j].prefix != ' ' {
			j++
		}
		start, end := max(i-context, 0), min(j+context, len(entries))
		if n := len(windows); n > 0 && windows[n-1][1] >= start {
			windows[n-1][1] = end
		} else {
			windows = append(windows, [2]int{start, end})
		}
		i = j
	}
	return windows
}

// patchRange formats a 0-based start and count as a 1-based hunk range.
func patchRange(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	if count == 1 {
		return fmt.Sprintf("%d", start+1)
	}
	return fmt.Sprintf("%d,%d", start+1, count)
}
