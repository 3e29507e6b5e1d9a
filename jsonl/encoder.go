package jsonl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/sidediff"
)

// Row is the exported form of one projected row. Split rows fill the Old and
// New fields; unified rows fill Side and Text.
type Row struct {
	File      string             `json:"file"`
	Layout    sidediff.DiffStyle `json:"layout"`
	Kind      string             `json:"kind"`
	Side      string             `json:"side,omitempty"`
	OldNumber int                `json:"oldNumber,omitempty"`
	NewNumber int                `json:"newNumber,omitempty"`
	Text      *string            `json:"text,omitempty"`
	Spans     []sidediff.Segment `json:"spans,omitempty"`
	OldKind   string             `json:"oldKind,omitempty"`
	NewKind   string             `json:"newKind,omitempty"`
	OldText   *string            `json:"oldText,omitempty"`
	NewText   *string            `json:"newText,omitempty"`
	OldSpans  []sidediff.Segment `json:"oldSpans,omitempty"`
	NewSpans  []sidediff.Segment `json:"newSpans,omitempty"`
}

// Encoder writes the rows of comparisons as JSONL.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Encoder{enc: enc}
}

// Encode writes one line per row of c, in layout order.
func (e *Encoder) Encode(c *sidediff.Comparison) error {
	for _, r := range Rows(c) {
		if err := e.enc.Encode(r); err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
	}
	return nil
}

// Rows converts the projected rows of c into their exported form.
func Rows(c *sidediff.Comparison) []Row {
	if c == nil || c.Diff == nil {
		return nil
	}
	file := c.Diff.Pair.New.Name
	if c.Config.DiffStyle == sidediff.DiffStyleUnified {
		rows := make([]Row, 0, len(c.Unified))
		for _, u := range c.Unified {
			text := u.Line.Text
			r := Row{
				File:      file,
				Layout:    sidediff.DiffStyleUnified,
				Kind:      u.Kind.String(),
				Side:      u.Side.String(),
				OldNumber: u.OldNumber,
				NewNumber: u.NewNumber,
				Text:      &text,
			}
			if u.Side != sidediff.SideBoth {
				r.Spans = sidediff.Segments(u.Ops, u.Side)
			}
			rows = append(rows, r)
		}
		return rows
	}

	rows := make([]Row, 0, len(c.Split))
	for _, s := range c.Split {
		r := Row{
			File:    file,
			Layout:  sidediff.DiffStyleSplit,
			Kind:    s.Kind.String(),
			OldKind: s.OldKind().String(),
			NewKind: s.NewKind().String(),
		}
		if s.Old != nil {
			r.OldNumber = s.Old.Number()
			r.OldText = &s.Old.Text
			r.OldSpans = sidediff.Segments(s.Ops, sidediff.SideOld)
		}
		if s.New != nil {
			r.NewNumber = s.New.Number()
			r.NewText = &s.New.Text
			r.NewSpans = sidediff.Segments(s.Ops, sidediff.SideNew)
		}
		rows = append(rows, r)
	}
	return rows
}
