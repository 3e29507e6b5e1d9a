package mock

import (
	"context"

	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.GitRunner = (*GitRunner)(nil)

// GitRunner is a mock implementation of sidediff.GitRunner.
type GitRunner struct {
	ShowFn func(ctx context.Context, repoPath, rev, path string) (string, error)
}

func (g *GitRunner) Show(ctx context.Context, repoPath, rev, path string) (string, error) {
	return g.ShowFn(ctx, repoPath, rev, path)
}
