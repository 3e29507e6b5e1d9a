// Package mock provides test doubles for sidediff interfaces.
package mock

import (
	"io"

	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.Parser = (*Parser)(nil)

// Parser is a mock implementation of sidediff.Parser.
type Parser struct {
	ParseFn func(r io.Reader) ([]sidediff.FilePair, error)
}

func (p *Parser) Parse(r io.Reader) ([]sidediff.FilePair, error) {
	return p.ParseFn(r)
}

// Compile-time interface verification.
var _ sidediff.PairLoader = (*PairLoader)(nil)

// PairLoader is a mock implementation of sidediff.PairLoader.
type PairLoader struct {
	LoadFn func(path string) ([]sidediff.FilePair, error)
}

func (l *PairLoader) Load(path string) ([]sidediff.FilePair, error) {
	return l.LoadFn(path)
}

// Compile-time interface verification.
var _ sidediff.PairSaver = (*PairSaver)(nil)

// PairSaver is a mock implementation of sidediff.PairSaver.
type PairSaver struct {
	SaveFn func(path string, pair sidediff.FilePair) error
}

func (s *PairSaver) Save(path string, pair sidediff.FilePair) error {
	return s.SaveFn(path, pair)
}
