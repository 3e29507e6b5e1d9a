package mock

import (
	"context"

	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of sidediff.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, pairs []sidediff.FilePair, cfg sidediff.PresentationConfig) error
}

func (v *Viewer) View(ctx context.Context, pairs []sidediff.FilePair, cfg sidediff.PresentationConfig) error {
	return v.ViewFn(ctx, pairs, cfg)
}

// Compile-time interface verification.
var _ sidediff.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of sidediff.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
