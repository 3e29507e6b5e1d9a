// Package compare wires the tokenizer, line matcher, pair aligner, word
// refiner and layout projector into a single comparison engine.
package compare

import (
	"context"
	"runtime"

	"github.com/fwojciec/sidediff"
	"github.com/fwojciec/sidediff/align"
	"github.com/fwojciec/sidediff/layout"
	"github.com/fwojciec/sidediff/myers"
	"github.com/fwojciec/sidediff/tokenize"
	"github.com/fwojciec/sidediff/worddiff"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ sidediff.Comparer = (*Engine)(nil)

// Engine computes comparisons. It holds no state between calls and is safe
// for concurrent use.
type Engine struct {
	refiner  sidediff.WordRefiner
	detector sidediff.LanguageDetector
	limit    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRefiner sets the word refiner used for changed pairs.
func WithRefiner(r sidediff.WordRefiner) Option {
	return func(e *Engine) {
		e.refiner = r
	}
}

// WithLanguageDetector sets the detector used to fill missing language hints.
func WithLanguageDetector(d sidediff.LanguageDetector) Option {
	return func(e *Engine) {
		e.detector = d
	}
}

// WithConcurrency limits how many files CompareAll diffs at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.limit = n
	}
}

// NewEngine creates an Engine. Without options it uses the token refiner
// from package worddiff and no language detection.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		refiner: worddiff.NewRefiner(),
		limit:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.limit < 1 {
		e.limit = 1
	}
	return e
}

// Compare diffs one file pair and projects it with the normalized config.
// Invalid config fields fall back to their defaults.
func (e *Engine) Compare(pair sidediff.FilePair, cfg sidediff.PresentationConfig) *sidediff.Comparison {
	cfg, _ = cfg.Normalize()
	d := e.Diff(pair, cfg.LineRefinement)

	c := &sidediff.Comparison{Diff: d, Config: cfg}
	if cfg.DiffStyle == sidediff.DiffStyleUnified {
		c.Unified = layout.Unified(d)
	} else {
		c.Split = layout.Split(d)
	}
	return c
}

// Diff computes the line-level diff of pair with changed pairs refined
// according to mode. Under RefineNone no pairs are formed.
func (e *Engine) Diff(pair sidediff.FilePair, mode sidediff.LineRefinement) *sidediff.Diff {
	pair = e.withLanguage(pair.Normalize())

	oldLines := tokenize.FileLines(pair.Old.Contents)
	newLines := tokenize.FileLines(pair.New.Contents)
	script := myers.Lines(oldLines, newLines)
	hunks := align.Hunks(script, mode != sidediff.RefineNone)

	if mode != sidediff.RefineNone {
		for i := range hunks {
			for j := range hunks[i].Pairs {
				p := &hunks[i].Pairs[j]
				p.Ops = e.refiner.Refine(p.Old.Text, p.New.Text, mode)
			}
		}
	}

	return &sidediff.Diff{
		Pair:       pair,
		Refinement: mode,
		OldLines:   oldLines,
		NewLines:   newLines,
		Script:     script,
		Hunks:      hunks,
	}
}

// CompareAll compares independent file pairs concurrently. Results are in
// input order. It stops early and returns the context error when ctx is
// cancelled.
func (e *Engine) CompareAll(ctx context.Context, pairs []sidediff.FilePair, cfg sidediff.PresentationConfig) ([]*sidediff.Comparison, error) {
	results := make([]*sidediff.Comparison, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Compare(pair, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// withLanguage fills the language hint of each side from its name when the
// hint is the default.
func (e *Engine) withLanguage(pair sidediff.FilePair) sidediff.FilePair {
	if e.detector == nil {
		return pair
	}
	detect := func(f sidediff.FileContents) sidediff.FileContents {
		if f.Lang != sidediff.DefaultLang {
			return f
		}
		if lang := e.detector.DetectFromPath(f.Name); lang != "" {
			f.Lang = lang
		}
		return f
	}
	pair.Old = detect(pair.Old)
	pair.New = detect(pair.New)
	return pair
}
