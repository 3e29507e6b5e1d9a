// Package git provides access to committed file versions via the git CLI.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sidediff"
)

// Compile-time interface verification.
var _ sidediff.GitRunner = (*Runner)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Show returns the contents of path at revision rev. A relative path is
// resolved against repoPath rather than the repository root.
func (r *Runner) Show(ctx context.Context, repoPath, rev, path string) (string, error) {
	if rev == "" {
		rev = "HEAD"
	}
	spec := rev + ":" + objectPath(path)
	args := []string{"-C", repoPath, "show", spec}
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git show %s failed: %s", spec, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git show %s failed: %w", spec, err)
	}
	return string(output), nil
}

// objectPath makes path relative to the working directory of the git
// command, which "rev:path" would otherwise resolve from the repository root.
func objectPath(path string) string {
	path = filepath.ToSlash(path)
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
		return path
	}
	return "./" + path
}
