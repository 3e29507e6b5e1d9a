// Package myers computes minimal edit scripts between two sequences.
//
// The algorithm is the linear-space variant of Myers' "An O(ND) Difference
// Algorithm and Its Variations" (1986): each call finds the point where a
// forward and a reverse furthest-reaching path overlap, then recurses on the
// two halves. It runs in O((N+M)·D) time with O(N+M) working memory.
//
// Scripts are normalized so that within every run of changes between two
// kept elements all deletions precede all insertions. The same pair of
// sequences in swapped order always produces the mirrored script.
package myers

import (
	"cmp"
	"slices"

	"github.com/fwojciec/sidediff"
)

// Edit is one operation of an index-based edit script.
type Edit struct {
	Kind     sidediff.OpKind
	OldIndex int // -1 for OpInsert
	NewIndex int // -1 for OpDelete
}

// Diff returns a minimal edit script transforming a into b.
func Diff[T cmp.Ordered](a, b []T) []Edit {
	if compareSeq(a, b) > 0 {
		edits := Diff(b, a)
		mirror(edits)
		return edits
	}

	d := &differ[T]{a: a, b: b, edits: make([]Edit, 0, max(len(a), len(b)))}
	d.compare(0, len(a), 0, len(b))
	normalize(d.edits)
	return d.edits
}

// compareSeq orders sequences by length, then element-wise. It picks the
// argument order Diff computes in.
func compareSeq[T cmp.Ordered](a, b []T) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return slices.Compare(a, b)
}

type differ[T cmp.Ordered] struct {
	a, b  []T
	edits []Edit
}

func (d *differ[T]) keep(x, y int) {
	d.edits = append(d.edits, Edit{Kind: sidediff.OpKeep, OldIndex: x, NewIndex: y})
}

func (d *differ[T]) del(x int) {
	d.edits = append(d.edits, Edit{Kind: sidediff.OpDelete, OldIndex: x, NewIndex: -1})
}

func (d *differ[T]) ins(y int) {
	d.edits = append(d.edits, Edit{Kind: sidediff.OpInsert, OldIndex: -1, NewIndex: y})
}

// compare appends the script for a[aLo:aHi] -> b[bLo:bHi].
func (d *differ[T]) compare(aLo, aHi, bLo, bHi int) {
	for aLo < aHi && bLo < bHi && d.a[aLo] == d.b[bLo] {
		d.keep(aLo, bLo)
		aLo++
		bLo++
	}
	suffix := 0
	for aLo < aHi && bLo < bHi && d.a[aHi-1] == d.b[bHi-1] {
		aHi--
		bHi--
		suffix++
	}

	switch {
	case aLo == aHi:
		for y := bLo; y < bHi; y++ {
			d.ins(y)
		}
	case bLo == bHi:
		for x := aLo; x < aHi; x++ {
			d.del(x)
		}
	default:
		x, y, ok := d.bisect(aLo, aHi, bLo, bHi)
		if ok {
			d.compare(aLo, x, bLo, y)
			d.compare(x, aHi, y, bHi)
		} else {
			// Nothing in common.
			for i := aLo; i < aHi; i++ {
				d.del(i)
			}
			for j := bLo; j < bHi; j++ {
				d.ins(j)
			}
		}
	}

	for i := 0; i < suffix; i++ {
		d.keep(aHi+i, bHi+i)
	}
}

// bisect finds a split point (x, y) on a shortest edit path through
// a[aLo:aHi] x b[bLo:bHi]. Both ranges must be non-empty and must not share a
// common prefix or suffix, which guarantees each half costs at least one edit.
// Returns ok=false when the ranges have nothing in common.
func (d *differ[T]) bisect(aLo, aHi, bLo, bHi int) (x, y int, ok bool) {
	n, m := aHi-aLo, bHi-bLo
	maxD := (n + m + 1) / 2
	// k ranges over [-maxD, maxD] and each step reads k±1.
	offset := maxD + 1
	length := 2*maxD + 3

	vf := make([]int, length)
	vr := make([]int, length)
	for i := range vf {
		vf[i] = -1
		vr[i] = -1
	}
	vf[offset+1] = 0
	vr[offset+1] = 0

	delta := n - m
	// With an odd delta the paths can only meet on a forward step.
	front := delta%2 != 0

	// Diagonals that ran off the grid are trimmed from subsequent passes.
	fStart, fEnd, rStart, rEnd := 0, 0, 0, 0

	for D := 0; D < maxD; D++ {
		for k := -D + fStart; k <= D-fEnd; k += 2 {
			ki := offset + k
			var x1 int
			if k == -D || (k != D && vf[ki-1] < vf[ki+1]) {
				x1 = vf[ki+1]
			} else {
				x1 = vf[ki-1] + 1
			}
			y1 := x1 - k
			for x1 < n && y1 < m && d.a[aLo+x1] == d.b[bLo+y1] {
				x1++
				y1++
			}
			vf[ki] = x1
			switch {
			case x1 > n:
				fEnd += 2
			case y1 > m:
				fStart += 2
			case front:
				ri := offset + delta - k
				if ri >= 0 && ri < length && vr[ri] != -1 && x1 >= n-vr[ri] {
					return aLo + x1, bLo + y1, true
				}
			}
		}

		for k := -D + rStart; k <= D-rEnd; k += 2 {
			ki := offset + k
			var x2 int
			if k == -D || (k != D && vr[ki-1] < vr[ki+1]) {
				x2 = vr[ki+1]
			} else {
				x2 = vr[ki-1] + 1
			}
			y2 := x2 - k
			for x2 < n && y2 < m && d.a[aHi-x2-1] == d.b[bHi-y2-1] {
				x2++
				y2++
			}
			vr[ki] = x2
			switch {
			case x2 > n:
				rEnd += 2
			case y2 > m:
				rStart += 2
			case !front:
				fi := offset + delta - k
				if fi >= 0 && fi < length && vf[fi] != -1 {
					x1 := vf[fi]
					y1 := x1 - (fi - offset)
					if x1 >= n-x2 {
						return aLo + x1, bLo + y1, true
					}
				}
			}
		}
	}
	return 0, 0, false
}

// normalize reorders every run of changes so deletions come first. Relative
// order within deletions and within insertions is preserved.
func normalize(edits []Edit) {
	scratch := make([]Edit, 0, 8)
	for i := 0; i < len(edits); {
		if edits[i].Kind == sidediff.OpKeep {
			i++
			continue
		}
		j := i
		for j < len(edits) && edits[j].Kind != sidediff.OpKeep {
			j++
		}
		scratch = scratch[:0]
		for _, e := range edits[i:j] {
			if e.Kind == sidediff.OpDelete {
				scratch = append(scratch, e)
			}
		}
		for _, e := range edits[i:j] {
			if e.Kind == sidediff.OpInsert {
				scratch = append(scratch, e)
			}
		}
		copy(edits[i:j], scratch)
		i = j
	}
}

// mirror turns a script for b -> a into the script for a -> b.
func mirror(edits []Edit) {
	for i, e := range edits {
		switch e.Kind {
		case sidediff.OpInsert:
			e.Kind = sidediff.OpDelete
		case sidediff.OpDelete:
			e.Kind = sidediff.OpInsert
		}
		e.OldIndex, e.NewIndex = e.NewIndex, e.OldIndex
		edits[i] = e
	}
	normalize(edits)
}
