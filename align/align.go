// Package align groups a line-level edit script into hunks and pairs
// deleted lines with inserted lines.
package align

import "github.com/fwojciec/sidediff"

// Hunks groups every maximal run of non-keep ops into one hunk.
//
// When pair is true, the first min(k, m) deletions of a run are paired
// positionally with the first min(k, m) insertions and the leftovers are kept
// as pure deletions or insertions. When pair is false no pairs are formed.
// Pair ops are left nil for the caller to refine.
func Hunks(script []sidediff.EditOp, pair bool) []sidediff.Hunk {
	var hunks []sidediff.Hunk
	oldPos, newPos := 0, 0

	for i := 0; i < len(script); {
		if script[i].Kind == sidediff.OpKeep {
			oldPos++
			newPos++
			i++
			continue
		}

		var deleted, inserted []sidediff.Line
		for ; i < len(script) && script[i].Kind != sidediff.OpKeep; i++ {
			op := script[i]
			switch op.Kind {
			case sidediff.OpDelete:
				deleted = append(deleted, sidediff.Line{Index: op.OldIndex, Text: op.OldText})
			case sidediff.OpInsert:
				inserted = append(inserted, sidediff.Line{Index: op.NewIndex, Text: op.NewText})
			}
		}

		h := sidediff.Hunk{
			OldStart: oldPos,
			OldCount: len(deleted),
			NewStart: newPos,
			NewCount: len(inserted),
		}
		oldPos += len(deleted)
		newPos += len(inserted)

		n := 0
		if pair {
			n = min(len(deleted), len(inserted))
		}
		if n > 0 {
			h.Pairs = make([]sidediff.ChangedPair, n)
			for j := range n {
				h.Pairs[j] = sidediff.ChangedPair{Old: deleted[j], New: inserted[j]}
			}
		}
		if len(deleted) > n {
			h.Deleted = deleted[n:]
		}
		if len(inserted) > n {
			h.Inserted = inserted[n:]
		}
		hunks = append(hunks, h)
	}
	return hunks
}
