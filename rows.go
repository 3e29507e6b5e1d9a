package sidediff

import "strings"

// RowKind is the change kind of a projected row or column.
type RowKind int

// Row kinds.
const (
	RowUnchanged RowKind = iota
	RowAdded
	RowRemoved
	RowChanged
	RowFiller
)

// String returns the name of the row kind.
func (k RowKind) String() string {
	switch k {
	case RowAdded:
		return "added"
	case RowRemoved:
		return "removed"
	case RowChanged:
		return "changed"
	case RowFiller:
		return "filler"
	default:
		return "unchanged"
	}
}

// Side identifies which version a unified row comes from.
type Side int

// Sides.
const (
	SideBoth Side = iota
	SideOld
	SideNew
)

// String returns the name of the side.
func (s Side) String() string {
	switch s {
	case SideOld:
		return "old"
	case SideNew:
		return "new"
	default:
		return "both"
	}
}

// SplitRow is one row of the two-column layout. A nil column is a filler.
type SplitRow struct {
	Kind RowKind
	Old  *Line
	New  *Line
	Ops  []EditOp // Token-level ops for RowChanged
}

// OldKind returns the kind of the old column.
func (r SplitRow) OldKind() RowKind {
	if r.Old == nil {
		return RowFiller
	}
	return r.Kind
}

// NewKind returns the kind of the new column.
func (r SplitRow) NewKind() RowKind {
	if r.New == nil {
		return RowFiller
	}
	return r.Kind
}

// UnifiedRow is one row of the single-column layout. Unchanged rows carry
// both line numbers; other rows carry the number of their own side only.
type UnifiedRow struct {
	Kind      RowKind
	Side      Side
	Line      Line
	OldNumber int // 1-based, 0 when absent
	NewNumber int // 1-based, 0 when absent
	Ops       []EditOp
}

// Segment represents a portion of a line for intra-line highlighting.
type Segment struct {
	Text    string `json:"text"`    // The text content of this segment
	Changed bool   `json:"changed"` // True if this segment differs between old/new versions
}

// Segments returns the highlight segments of one side of a token-level
// script, merging adjacent segments with the same status. Side must be
// SideOld or SideNew.
func Segments(ops []EditOp, side Side) []Segment {
	var segs []Segment
	var sb strings.Builder
	changed, have := false, false

	flush := func() {
		if have {
			segs = append(segs, Segment{Text: sb.String(), Changed: changed})
			sb.Reset()
			have = false
		}
	}

	for _, op := range ops {
		var text string
		switch side {
		case SideOld:
			if !op.HasOld() {
				continue
			}
			text = op.OldText
		case SideNew:
			if !op.HasNew() {
				continue
			}
			text = op.NewText
		default:
			continue
		}
		if text == "" {
			continue
		}
		isChanged := op.Kind != OpKeep
		if have && changed != isChanged {
			flush()
		}
		sb.WriteString(text)
		changed = isChanged
		have = true
	}
	flush()
	return segs
}
