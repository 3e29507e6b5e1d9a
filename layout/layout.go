// Package layout projects a line-level diff into split or unified rows.
//
// Both projections walk the whole file: unchanged lines between hunks become
// unchanged rows, so the row sequence covers every line of both versions.
package layout

import "github.com/fwojciec/sidediff"

// Split returns the two-column rows of d. Changed pairs share a row, pure
// deletions and insertions leave the opposite column empty.
func Split(d *sidediff.Diff) []sidediff.SplitRow {
	if d == nil {
		return nil
	}

	rows := make([]sidediff.SplitRow, 0, max(len(d.OldLines), len(d.NewLines)))
	w := walker{d: d}
	for _, h := range d.Hunks {
		w.keepUntil(h.OldStart, func(o, n sidediff.Line) {
			rows = append(rows, sidediff.SplitRow{Kind: sidediff.RowUnchanged, Old: &o, New: &n})
		})
		for _, p := range h.Pairs {
			rows = append(rows, sidediff.SplitRow{Kind: sidediff.RowChanged, Old: ptr(p.Old), New: ptr(p.New), Ops: p.Ops})
		}
		for _, l := range h.Deleted {
			rows = append(rows, sidediff.SplitRow{Kind: sidediff.RowRemoved, Old: ptr(l)})
		}
		for _, l := range h.Inserted {
			rows = append(rows, sidediff.SplitRow{Kind: sidediff.RowAdded, New: ptr(l)})
		}
		w.skip(h)
	}
	w.keepUntil(len(d.OldLines), func(o, n sidediff.Line) {
		rows = append(rows, sidediff.SplitRow{Kind: sidediff.RowUnchanged, Old: &o, New: &n})
	})
	return rows
}

// Unified returns the single-column rows of d. Within a hunk every row
// derived from the old version precedes every row derived from the new one.
func Unified(d *sidediff.Diff) []sidediff.UnifiedRow {
	if d == nil {
		return nil
	}

	rows := make([]sidediff.UnifiedRow, 0, len(d.OldLines)+len(d.NewLines))
	keep := func(o, n sidediff.Line) {
		rows = append(rows, sidediff.UnifiedRow{
			Kind:      sidediff.RowUnchanged,
			Side:      sidediff.SideBoth,
			Line:      n,
			OldNumber: o.Number(),
			NewNumber: n.Number(),
		})
	}
	oldRow := func(kind sidediff.RowKind, l sidediff.Line, ops []sidediff.EditOp) {
		rows = append(rows, sidediff.UnifiedRow{Kind: kind, Side: sidediff.SideOld, Line: l, OldNumber: l.Number(), Ops: ops})
	}
	newRow := func(kind sidediff.RowKind, l sidediff.Line, ops []sidediff.EditOp) {
		rows = append(rows, sidediff.UnifiedRow{Kind: kind, Side: sidediff.SideNew, Line: l, NewNumber: l.Number(), Ops: ops})
	}

	w := walker{d: d}
	for _, h := range d.Hunks {
		w.keepUntil(h.OldStart, keep)
		for _, p := range h.Pairs {
			oldRow(sidediff.RowChanged, p.Old, p.Ops)
		}
		for _, l := range h.Deleted {
			oldRow(sidediff.RowRemoved, l, nil)
		}
		for _, p := range h.Pairs {
			newRow(sidediff.RowChanged, p.New, p.Ops)
		}
		for _, l := range h.Inserted {
			newRow(sidediff.RowAdded, l, nil)
		}
		w.skip(h)
	}
	w.keepUntil(len(d.OldLines), keep)
	return rows
}

// HunkStarts returns the index of the first row of every hunk in a row
// sequence of the given length, where changed reports whether row i belongs
// to a hunk.
func HunkStarts(n int, changed func(i int) bool) []int {
	var starts []int
	prev := false
	for i := range n {
		c := changed(i)
		if c && !prev {
			starts = append(starts, i)
		}
		prev = c
	}
	return starts
}

// walker tracks the next unconsumed line on each side.
type walker struct {
	d      *sidediff.Diff
	oi, ni int
}

// keepUntil reports unchanged lines until the old side reaches oldEnd.
func (w *walker) keepUntil(oldEnd int, fn func(o, n sidediff.Line)) {
	for ; w.oi < oldEnd && w.ni < len(w.d.NewLines); w.oi, w.ni = w.oi+1, w.ni+1 {
		fn(w.d.OldLines[w.oi], w.d.NewLines[w.ni])
	}
}

func (w *walker) skip(h sidediff.Hunk) {
	w.oi = h.OldStart + h.OldCount
	w.ni = h.NewStart + h.NewCount
}

func ptr(l sidediff.Line) *sidediff.Line {
	return &l
}
