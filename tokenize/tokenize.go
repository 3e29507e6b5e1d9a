// Package tokenize splits text into lines and lines into refinable tokens.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/fwojciec/sidediff"
)

// Lines splits text on "\n", dropping a "\r" that directly precedes it.
// A final terminator yields a trailing empty line, and empty text yields a
// single empty line.
func Lines(text string) []sidediff.Line {
	lines := make([]sidediff.Line, 0, strings.Count(text, "\n")+1)
	for i := 0; ; i++ {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, sidediff.Line{Index: i, Text: text})
			return lines
		}
		lines = append(lines, sidediff.Line{Index: i, Text: strings.TrimSuffix(text[:idx], "\r")})
		text = text[idx+1:]
	}
}

// FileLines splits file contents like Lines, except that empty contents
// have no lines at all. An empty file compared with "hello" is then a pure
// insertion rather than a change of its single empty line.
func FileLines(contents string) []sidediff.Line {
	if contents == "" {
		return nil
	}
	return Lines(contents)
}

// Texts returns the text of each line.
func Texts(lines []sidediff.Line) []string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}

// class is the scanner's view of a character. Standalone characters form a
// token on their own even when adjacent to the same class.
type class int

const (
	classWord class = iota
	classSpace
	classPunct
	classStandalone
)

// Tokens splits a line into maximal runs of word characters, maximal runs of
// whitespace, and single punctuation characters. Non-ASCII characters are
// scanned by grapheme cluster: letters and digits join word runs, anything
// else (emoji, symbols) becomes a word token of its own.
func Tokens(line string) []sidediff.Token {
	if line == "" {
		return nil
	}

	// Pre-allocate with estimated capacity (avoid reallocations)
	tokens := make([]sidediff.Token, 0, len(line)/3+1)
	start := 0
	prev := class(-1)

	emit := func(end int, c class) {
		tokens = append(tokens, sidediff.Token{Kind: kindOf(c), Text: line[start:end]})
		start = end
	}

	i := 0
	for i < len(line) {
		var c class
		var size int
		if b := line[i]; b < utf8.RuneSelf {
			c, size = classifyASCII(b), 1
		} else {
			c, size = classifyCluster(line[i:])
		}

		if i > start && (c != prev || c == classPunct || c == classStandalone || prev == classStandalone) {
			emit(i, prev)
		}
		prev = c
		i += size
	}
	emit(len(line), prev)
	return tokens
}

func classifyASCII(b byte) class {
	switch {
	case b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9'):
		return classWord
	case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f':
		return classSpace
	default:
		return classPunct
	}
}

// classifyCluster classifies the grapheme cluster at the start of s and
// returns its byte length.
func classifyCluster(s string) (class, int) {
	iter := graphemes.FromString(s)
	if !iter.Next() {
		_, size := utf8.DecodeRuneInString(s)
		return classStandalone, size
	}
	cluster := iter.Value()
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
		// A leading mark belongs to the preceding ASCII base character.
		return classWord, len(cluster)
	case unicode.IsSpace(r):
		return classSpace, len(cluster)
	default:
		return classStandalone, len(cluster)
	}
}

func kindOf(c class) sidediff.TokenKind {
	switch c {
	case classSpace:
		return sidediff.TokenSpace
	case classPunct:
		return sidediff.TokenPunct
	default:
		return sidediff.TokenWord
	}
}
