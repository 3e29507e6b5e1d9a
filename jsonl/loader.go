// Package jsonl reads and writes JSONL batches of file pairs and exports
// projected rows one JSON object per line.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.PairLoader = (*Loader)(nil)

// Loader loads FilePair records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (16MB). One line
// holds both versions of a file.
const maxLineSize = 16 * 1024 * 1024

// Load reads a JSONL file and returns all FilePair records. Blank lines are
// skipped.
func (l *Loader) Load(path string) ([]sidediff.FilePair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pairs []sidediff.FilePair
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p sidediff.FilePair
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		pairs = append(pairs, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}
