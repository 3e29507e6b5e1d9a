package jsonl

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.PairSaver = (*Saver)(nil)

// Saver appends FilePair records to JSONL files.
type Saver struct{}

// NewSaver creates a new Saver.
func NewSaver() *Saver {
	return &Saver{}
}

// Save appends a FilePair to a JSONL file, creating parent directories if needed.
func (s *Saver) Save(path string, pair sidediff.FilePair) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.Write(data)
	return err
}
