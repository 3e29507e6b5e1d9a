// Package sidediff provides domain types for computing and laying out
// line- and word-level comparisons between two versions of a text file.
package sidediff

import (
	"context"
	"io"
	"strings"
)

// Default display names used when a file name is blank.
const (
	DefaultOldName = "before"
	DefaultNewName = "after"
	DefaultLang    = "text"
)

// FileContents is an immutable snapshot of one side of a comparison.
type FileContents struct {
	Name     string `json:"name"`     // Display label
	Contents string `json:"contents"` // Raw text, may be empty
	Lang     string `json:"lang"`     // Display hint only, never affects the diff
}

// FilePair is the old and new version of one file.
type FilePair struct {
	Old FileContents `json:"old"`
	New FileContents `json:"new"`
}

// Swap returns the pair with old and new exchanged.
func (p FilePair) Swap() FilePair {
	return FilePair{Old: p.New, New: p.Old}
}

// Normalize trims display names, substituting the defaults for blank ones,
// and fills an empty language hint.
func (p FilePair) Normalize() FilePair {
	p.Old = p.Old.withDefaults(DefaultOldName)
	p.New = p.New.withDefaults(DefaultNewName)
	return p
}

func (f FileContents) withDefaults(name string) FileContents {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		f.Name = name
	}
	if strings.TrimSpace(f.Lang) == "" {
		f.Lang = DefaultLang
	}
	return f
}

// Line is a 0-indexed line of a file, without its terminator.
type Line struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Number returns the 1-based line number used for display.
func (l Line) Number() int {
	return l.Index + 1
}

// TokenKind classifies a token.
type TokenKind int

// Token kinds.
const (
	TokenWord  TokenKind = iota // Run of letters, digits and underscores, or a standalone symbol
	TokenSpace                  // Run of whitespace
	TokenPunct                  // Single ASCII punctuation character
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenSpace:
		return "space"
	case TokenPunct:
		return "punct"
	default:
		return "word"
	}
}

// Token is the smallest refinable unit of a line. The tokens of a line
// concatenate back to the line.
type Token struct {
	Kind TokenKind
	Text string
}

// OpKind is the kind of an edit operation.
type OpKind int

// Edit operation kinds. OpReplace only appears in token-level scripts.
const (
	OpKeep OpKind = iota
	OpInsert
	OpDelete
	OpReplace
)

// String returns the name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "keep"
	}
}

// EditOp is one step of an edit script over lines or tokens.
//
// Concatenating OldText of all non-insert ops reproduces the old sequence;
// concatenating NewText of all non-delete ops reproduces the new one.
type EditOp struct {
	Kind     OpKind `json:"kind"`
	OldIndex int    `json:"oldIndex"` // -1 for OpInsert
	NewIndex int    `json:"newIndex"` // -1 for OpDelete
	OldText  string `json:"oldText,omitempty"`
	NewText  string `json:"newText,omitempty"`
}

// HasOld reports whether the op consumes from the old sequence.
func (op EditOp) HasOld() bool {
	return op.Kind != OpInsert
}

// HasNew reports whether the op consumes from the new sequence.
func (op EditOp) HasNew() bool {
	return op.Kind != OpDelete
}

// ChangedPair associates an old line with the new line it became.
type ChangedPair struct {
	Old Line     `json:"old"`
	New Line     `json:"new"`
	Ops []EditOp `json:"ops,omitempty"` // Token-level script, nil when refinement is off
}

// Hunk is a contiguous block of line changes bounded by unchanged lines or
// the file boundaries. Pairs hold the first min(k, m) deletions and
// insertions; Deleted and Inserted hold the leftovers.
type Hunk struct {
	OldStart int           `json:"oldStart"` // Index of the first old line, or the insertion point
	OldCount int           `json:"oldCount"`
	NewStart int           `json:"newStart"`
	NewCount int           `json:"newCount"`
	Pairs    []ChangedPair `json:"pairs,omitempty"`
	Deleted  []Line        `json:"deleted,omitempty"`
	Inserted []Line        `json:"inserted,omitempty"`
}

// Diff is the line-level comparison of a file pair.
type Diff struct {
	Pair       FilePair
	Refinement LineRefinement
	OldLines   []Line
	NewLines   []Line
	Script     []EditOp
	Hunks      []Hunk
}

// Stats returns the number of added and removed lines.
func (d *Diff) Stats() (added, removed int) {
	for _, op := range d.Script {
		switch op.Kind {
		case OpInsert:
			added++
		case OpDelete:
			removed++
		}
	}
	return added, removed
}

// Comparison is the engine output for one file pair. Exactly one of Split and
// Unified is populated, according to Config.DiffStyle.
type Comparison struct {
	Diff    *Diff
	Config  PresentationConfig
	Split   []SplitRow
	Unified []UnifiedRow
}

// Comparer computes comparisons.
type Comparer interface {
	// Compare diffs one file pair and projects it using the given config.
	Compare(pair FilePair, cfg PresentationConfig) *Comparison
}

// WordRefiner computes the token-level script for a changed line pair.
type WordRefiner interface {
	// Refine returns the token-level ops, or nil for RefineNone.
	Refine(oldLine, newLine string, mode LineRefinement) []EditOp
}

// LanguageDetector determines the display language from a file name.
type LanguageDetector interface {
	// DetectFromPath returns the language name for the given path,
	// or an empty string if the language cannot be determined.
	DetectFromPath(path string) string
}

// Parser turns patch text into file pairs.
type Parser interface {
	Parse(r io.Reader) ([]FilePair, error)
}

// PairLoader loads batches of file pairs.
type PairLoader interface {
	Load(path string) ([]FilePair, error)
}

// PairSaver appends file pairs to a batch file.
type PairSaver interface {
	Save(path string, pair FilePair) error
}

// Viewer displays comparisons and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, pairs []FilePair, cfg PresentationConfig) error
}

// GitRunner provides access to committed file versions.
type GitRunner interface {
	// Show returns the contents of path at revision rev in the repository at repoPath.
	Show(ctx context.Context, repoPath, rev, path string) (string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}
