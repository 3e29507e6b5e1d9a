// Package worddiff computes token-level edit scripts for changed line pairs.
package worddiff

import (
	"strings"

	"github.com/fwojciec/sidediff"
	"github.com/fwojciec/sidediff/myers"
	"github.com/fwojciec/sidediff/tokenize"
)

// Refiner tokenizes line pairs and diffs them token by token.
type Refiner struct{}

// NewRefiner creates a new Refiner instance.
func NewRefiner() *Refiner {
	return &Refiner{}
}

// Compile-time interface verification.
var _ sidediff.WordRefiner = (*Refiner)(nil)

// Refine returns the token-level script transforming oldLine into newLine.
//
// RefineNone returns nil. RefineWord returns one op per token. RefineWordAlt
// merges every run of changes into a single delete, insert or replace span,
// absorbing a lone whitespace token that separates two changes.
func (r *Refiner) Refine(oldLine, newLine string, mode sidediff.LineRefinement) []sidediff.EditOp {
	if mode == sidediff.RefineNone {
		return nil
	}

	oldTokens := tokenize.Tokens(oldLine)
	newTokens := tokenize.Tokens(newLine)
	ops := myers.Strings(texts(oldTokens), texts(newTokens))

	if mode == sidediff.RefineWordAlt {
		return coalesce(ops, oldTokens, newTokens)
	}
	return ops
}

func texts(tokens []sidediff.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

// spanClass is the token class of a merged span. Spans made of more than one
// token kind are mixed.
type spanClass int

const (
	spanEmpty spanClass = iota
	spanWord
	spanSpace
	spanPunct
	spanMixed
)

func classOf(k sidediff.TokenKind) spanClass {
	switch k {
	case sidediff.TokenSpace:
		return spanSpace
	case sidediff.TokenPunct:
		return spanPunct
	default:
		return spanWord
	}
}

func (c spanClass) add(k sidediff.TokenKind) spanClass {
	kc := classOf(k)
	switch c {
	case spanEmpty:
		return kc
	case kc:
		return c
	default:
		return spanMixed
	}
}

// compatible reports whether a deleted span and an inserted span read as one
// replacement. A pure whitespace span never replaces a span that has content.
func compatible(del, ins spanClass) bool {
	if del == ins {
		return true
	}
	if del == spanMixed {
		return ins != spanSpace
	}
	if ins == spanMixed {
		return del != spanSpace
	}
	return false
}

// span accumulates one run of changes.
type span struct {
	oldIndex, newIndex int
	oldText, newText   strings.Builder
	oldClass, newClass spanClass
}

func (s *span) reset() {
	s.oldIndex, s.newIndex = -1, -1
	s.oldText.Reset()
	s.newText.Reset()
	s.oldClass, s.newClass = spanEmpty, spanEmpty
}

func (s *span) addOld(idx int, tok sidediff.Token) {
	if s.oldIndex < 0 {
		s.oldIndex = idx
	}
	s.oldText.WriteString(tok.Text)
	s.oldClass = s.oldClass.add(tok.Kind)
}

func (s *span) addNew(idx int, tok sidediff.Token) {
	if s.newIndex < 0 {
		s.newIndex = idx
	}
	s.newText.WriteString(tok.Text)
	s.newClass = s.newClass.add(tok.Kind)
}

func (s *span) emit(out []sidediff.EditOp) []sidediff.EditOp {
	hasOld, hasNew := s.oldIndex >= 0, s.newIndex >= 0
	switch {
	case hasOld && hasNew && compatible(s.oldClass, s.newClass):
		return append(out, sidediff.EditOp{
			Kind:     sidediff.OpReplace,
			OldIndex: s.oldIndex,
			NewIndex: s.newIndex,
			OldText:  s.oldText.String(),
			NewText:  s.newText.String(),
		})
	default:
		if hasOld {
			out = append(out, sidediff.EditOp{Kind: sidediff.OpDelete, OldIndex: s.oldIndex, NewIndex: -1, OldText: s.oldText.String()})
		}
		if hasNew {
			out = append(out, sidediff.EditOp{Kind: sidediff.OpInsert, OldIndex: -1, NewIndex: s.newIndex, NewText: s.newText.String()})
		}
		return out
	}
}

// coalesce merges the change runs of a token script. It makes one pass over
// the script.
func coalesce(ops []sidediff.EditOp, oldTokens, newTokens []sidediff.Token) []sidediff.EditOp {
	out := make([]sidediff.EditOp, 0, len(ops))
	var s span

	absorbable := func(i int) bool {
		op := ops[i]
		return op.Kind == sidediff.OpKeep &&
			oldTokens[op.OldIndex].Kind == sidediff.TokenSpace &&
			i > 0 && ops[i-1].Kind != sidediff.OpKeep &&
			i+1 < len(ops) && ops[i+1].Kind != sidediff.OpKeep
	}

	for i := 0; i < len(ops); {
		if ops[i].Kind == sidediff.OpKeep {
			out = append(out, ops[i])
			i++
			continue
		}

		s.reset()
		for ; i < len(ops) && (ops[i].Kind != sidediff.OpKeep || absorbable(i)); i++ {
			op := ops[i]
			if op.HasOld() {
				s.addOld(op.OldIndex, oldTokens[op.OldIndex])
			}
			if op.HasNew() {
				s.addNew(op.NewIndex, newTokens[op.NewIndex])
			}
		}
		out = s.emit(out)
	}
	return out
}
