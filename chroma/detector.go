// Package chroma detects display languages using the chroma lexer registry.
package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.LanguageDetector = (*Detector)(nil)

// Detector detects languages from file paths using chroma.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the chroma name of the language matching the base
// name of path, or an empty string when no lexer matches. Display names such
// as "b/main.go" or "HEAD~1:pkg/main.go" resolve by their base name.
func (d *Detector) DetectFromPath(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	if i := strings.LastIndexByte(base, ':'); i >= 0 {
		base = base[i+1:]
	}
	if lexer := lexers.Match(base); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// Canonical returns chroma's name for a language given by name or alias
// ("golang", "py"), or an empty string if chroma does not know it.
func (d *Detector) Canonical(name string) string {
	if name == "" {
		return ""
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
