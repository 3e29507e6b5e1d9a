// Package gitdiff implements patch parsing using bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.Parser = (*Parser)(nil)

// Parser turns unified or git patches into file pairs using go-gitdiff.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads patch content and returns one pair per text file with content
// changes. The old side holds the context and deleted lines of every
// fragment, the new side the context and added lines. Binary files and
// files without fragments (pure renames, mode changes) are skipped.
func (p *Parser) Parse(r io.Reader) ([]sidediff.FilePair, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	pairs := make([]sidediff.FilePair, 0, len(files))
	for _, f := range files {
		if f.IsBinary || len(f.TextFragments) == 0 {
			continue
		}
		pairs = append(pairs, convertFile(f))
	}
	return pairs, nil
}

func convertFile(f *gitdiff.File) sidediff.FilePair {
	oldName, newName := f.OldName, f.NewName
	// Added and deleted files have only one name.
	if f.IsNew || oldName == "" {
		oldName = newName
	}
	if f.IsDelete || newName == "" {
		newName = oldName
	}

	var oldText, newText strings.Builder
	for _, frag := range f.TextFragments {
		for _, l := range frag.Lines {
			switch l.Op {
			case gitdiff.OpContext:
				oldText.WriteString(l.Line)
				newText.WriteString(l.Line)
			case gitdiff.OpDelete:
				oldText.WriteString(l.Line)
			case gitdiff.OpAdd:
				newText.WriteString(l.Line)
			}
		}
	}

	return sidediff.FilePair{
		Old: sidediff.FileContents{Name: oldName, Contents: oldText.String()},
		New: sidediff.FileContents{Name: newName, Contents: newText.String()},
	}
}
