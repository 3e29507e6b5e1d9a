package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fwojciec/sidediff"
	"github.com/fwojciec/sidediff/bubbletea"
	"github.com/fwojciec/sidediff/chroma"
	"github.com/fwojciec/sidediff/clipboard"
	"github.com/fwojciec/sidediff/compare"
	"github.com/fwojciec/sidediff/git"
	"github.com/fwojciec/sidediff/gitdiff"
	"github.com/fwojciec/sidediff/jsonl"
	"github.com/fwojciec/sidediff/lipgloss"
	"github.com/spf13/pflag"
)

var (
	// ErrNoInput is returned when neither files, a patch nor a batch was given.
	ErrNoInput = errors.New("no input: pass OLD NEW, --rev REV FILE, --batch FILE, or pipe a patch")

	// ErrSameFile is returned when both arguments name the same file.
	ErrSameFile = errors.New("old and new are the same file")

	// ErrNoChanges is returned when a patch contains no text files to display.
	ErrNoChanges = errors.New("no changes to display")

	// ErrUsage is returned for invalid argument combinations.
	ErrUsage = errors.New("invalid usage")
)

// App encapsulates the application logic for testing.
type App struct {
	Stdin    io.Reader
	Stdout   io.Writer
	ReadFile func(path string) ([]byte, error)
	Parser   sidediff.Parser
	Loader   sidediff.PairLoader
	Git      sidediff.GitRunner
	Engine   *compare.Engine
	Viewer   sidediff.Viewer
	Logger   *slog.Logger
}

// Pairs collects the file pairs selected by opts.
func (a *App) Pairs(ctx context.Context, opts Options) ([]sidediff.FilePair, error) {
	var pairs []sidediff.FilePair
	switch {
	case opts.Patch:
		if len(opts.Args) > 0 {
			return nil, fmt.Errorf("%w: --patch takes no file arguments", ErrUsage)
		}
		parsed, err := a.Parser.Parse(a.Stdin)
		if err != nil {
			return nil, err
		}
		if len(parsed) == 0 {
			return nil, ErrNoChanges
		}
		pairs = parsed
	case opts.Batch != "":
		loaded, err := a.Loader.Load(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("load batch: %w", err)
		}
		pairs = loaded
	case opts.Rev != "":
		if len(opts.Args) != 1 {
			return nil, fmt.Errorf("%w: --rev takes exactly one file", ErrUsage)
		}
		pair, err := a.revisionPair(ctx, opts.Rev, opts.Args[0])
		if err != nil {
			return nil, err
		}
		pairs = []sidediff.FilePair{pair}
	case len(opts.Args) == 2:
		pair, err := a.filePair(opts.Args[0], opts.Args[1])
		if err != nil {
			return nil, err
		}
		pairs = []sidediff.FilePair{pair}
	case len(opts.Args) == 0:
		return nil, ErrNoInput
	default:
		return nil, fmt.Errorf("%w: expected two files, got %d", ErrUsage, len(opts.Args))
	}

	if opts.Lang != "" {
		for i := range pairs {
			pairs[i].Old.Lang = opts.Lang
			pairs[i].New.Lang = opts.Lang
		}
	}
	return pairs, nil
}

func (a *App) filePair(oldPath, newPath string) (sidediff.FilePair, error) {
	if filepath.Clean(oldPath) == filepath.Clean(newPath) {
		return sidediff.FilePair{}, ErrSameFile
	}
	oldData, err := a.ReadFile(oldPath)
	if err != nil {
		return sidediff.FilePair{}, fmt.Errorf("read old file: %w", err)
	}
	newData, err := a.ReadFile(newPath)
	if err != nil {
		return sidediff.FilePair{}, fmt.Errorf("read new file: %w", err)
	}
	return sidediff.FilePair{
		Old: sidediff.FileContents{Name: oldPath, Contents: string(oldData)},
		New: sidediff.FileContents{Name: newPath, Contents: string(newData)},
	}, nil
}

func (a *App) revisionPair(ctx context.Context, rev, path string) (sidediff.FilePair, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	oldContents, err := a.Git.Show(ctx, dir, rev, base)
	if err != nil {
		return sidediff.FilePair{}, err
	}
	newData, err := a.ReadFile(path)
	if err != nil {
		return sidediff.FilePair{}, fmt.Errorf("read file: %w", err)
	}
	return sidediff.FilePair{
		Old: sidediff.FileContents{Name: rev + ":" + path, Contents: oldContents},
		New: sidediff.FileContents{Name: path, Contents: string(newData)},
	}, nil
}

// Run collects the input pairs and writes or displays their comparison.
func (a *App) Run(ctx context.Context, opts Options) error {
	pairs, err := a.Pairs(ctx, opts)
	if err != nil {
		return err
	}
	a.Logger.Debug("loaded input", "files", len(pairs))

	cfg, issues := opts.Config.Normalize()
	for _, issue := range issues {
		a.Logger.Warn("invalid presentation setting", "field", issue.Field, "value", issue.Value, "using", issue.Replaced)
	}

	if opts.Format == FormatTUI {
		return a.Viewer.View(ctx, pairs, cfg)
	}

	start := time.Now()
	comparisons, err := a.Engine.CompareAll(ctx, pairs, cfg)
	if err != nil {
		return err
	}
	a.Logger.Debug("compared", "files", len(comparisons), "elapsed", time.Since(start))

	switch opts.Format {
	case FormatJSONL:
		enc := jsonl.NewEncoder(a.Stdout)
		for _, c := range comparisons {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
	case FormatPatch:
		for _, c := range comparisons {
			if _, err := io.WriteString(a.Stdout, sidediff.FormatPatch(c.Diff, opts.Context)); err != nil {
				return fmt.Errorf("write patch: %w", err)
			}
		}
	}
	return nil
}

// newLogger returns a text logger on w at warn level, or debug level when
// debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// stdinIsPipe reports whether stdin is redirected rather than a terminal.
func stdinIsPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

func run(ctx context.Context, args []string) error {
	opts, err := ParseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, opts.Debug)

	if len(opts.Args) == 0 && opts.Batch == "" && opts.Rev == "" && stdinIsPipe() {
		opts.Patch = true
	}

	detector := chroma.NewDetector()
	if opts.Lang != "" {
		if lang := detector.Canonical(opts.Lang); lang != "" {
			opts.Lang = lang
		}
	}
	if opts.ThemeType == "" && opts.Format == FormatTUI {
		opts.Config.ActiveTheme = lipgloss.ForBackground(nil)
	}

	engine := compare.NewEngine(compare.WithLanguageDetector(detector))
	modelOpts := []bubbletea.ModelOption{
		bubbletea.WithComparer(engine),
		bubbletea.WithThemes(func(cfg sidediff.PresentationConfig) sidediff.Theme {
			return lipgloss.ForConfig(cfg)
		}),
		bubbletea.WithClipboard(clipboard.NewSystem()),
	}
	if opts.Save != "" {
		modelOpts = append(modelOpts, bubbletea.WithPairSaver(jsonl.NewSaver(), opts.Save))
	}

	app := &App{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		ReadFile: os.ReadFile,
		Parser:   gitdiff.NewParser(),
		Loader:   jsonl.NewLoader(),
		Git:      git.NewRunner(),
		Engine:   engine,
		Viewer:   bubbletea.NewViewer(bubbletea.WithModelOptions(modelOpts...)),
		Logger:   logger,
	}
	return app.Run(ctx, opts)
}

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
