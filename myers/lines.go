package myers

import (
	"github.com/fwojciec/sidediff"
)

// Lines returns the minimal line-level script transforming oldLines into
// newLines, comparing lines by exact text.
func Lines(oldLines, newLines []sidediff.Line) []sidediff.EditOp {
	a, b := texts(oldLines), texts(newLines)

	// Fix the argument order before interning so ids, and with them the
	// chosen script, do not depend on which side is old.
	swapped := compareSeq(a, b) > 0
	if swapped {
		a, b = b, a
	}
	ia, ib := intern(a, b)
	edits := Diff(ia, ib)
	if swapped {
		mirror(edits)
	}

	ops := make([]sidediff.EditOp, len(edits))
	for i, e := range edits {
		op := sidediff.EditOp{Kind: e.Kind, OldIndex: e.OldIndex, NewIndex: e.NewIndex}
		if e.OldIndex >= 0 {
			op.OldText = oldLines[e.OldIndex].Text
		}
		if e.NewIndex >= 0 {
			op.NewText = newLines[e.NewIndex].Text
		}
		ops[i] = op
	}
	return ops
}

// Strings returns the minimal script transforming a into b with texts
// filled in, for token sequences and other plain string slices.
func Strings(a, b []string) []sidediff.EditOp {
	edits := Diff(a, b)
	ops := make([]sidediff.EditOp, len(edits))
	for i, e := range edits {
		op := sidediff.EditOp{Kind: e.Kind, OldIndex: e.OldIndex, NewIndex: e.NewIndex}
		if e.OldIndex >= 0 {
			op.OldText = a[e.OldIndex]
		}
		if e.NewIndex >= 0 {
			op.NewText = b[e.NewIndex]
		}
		ops[i] = op
	}
	return ops
}

func texts(lines []sidediff.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// intern maps equal strings to equal small integers so the matcher compares
// ints instead of strings.
func intern(a, b []string) ([]int, []int) {
	ids := make(map[string]int, len(a))
	conv := func(s []string) []int {
		out := make([]int, len(s))
		for i, v := range s {
			id, ok := ids[v]
			if !ok {
				id = len(ids)
				ids[v] = id
			}
			out[i] = id
		}
		return out
	}
	return conv(a), conv(b)
}
