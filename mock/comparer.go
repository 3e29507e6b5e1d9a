package mock

import (
	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var (
	_ sidediff.Comparer         = (*Comparer)(nil)
	_ sidediff.WordRefiner      = (*WordRefiner)(nil)
	_ sidediff.LanguageDetector = (*LanguageDetector)(nil)
)

// Comparer is a mock implementation of sidediff.Comparer.
type Comparer struct {
	CompareFn func(pair sidediff.FilePair, cfg sidediff.PresentationConfig) *sidediff.Comparison
}

func (c *Comparer) Compare(pair sidediff.FilePair, cfg sidediff.PresentationConfig) *sidediff.Comparison {
	return c.CompareFn(pair, cfg)
}

// WordRefiner is a mock implementation of sidediff.WordRefiner.
type WordRefiner struct {
	RefineFn func(oldLine, newLine string, mode sidediff.LineRefinement) []sidediff.EditOp
}

func (r *WordRefiner) Refine(oldLine, newLine string, mode sidediff.LineRefinement) []sidediff.EditOp {
	return r.RefineFn(oldLine, newLine, mode)
}

// LanguageDetector is a mock implementation of sidediff.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}
