package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/sidediff"
	"github.com/spf13/pflag"
)

// Output formats.
const (
	FormatTUI   = "tui"
	FormatJSONL = "jsonl"
	FormatPatch = "patch"
)

// Options holds everything parsed from the command line.
type Options struct {
	Config    sidediff.PresentationConfig
	ThemeType string // Empty selects by terminal background
	Format    string
	Rev       string
	Patch     bool
	Batch     string
	Save      string
	Lang      string
	Context   int
	Debug     bool
	Args      []string
}

// ParseFlags parses args (without the program name). Usage goes to stderr.
// It returns pflag.ErrHelp when help was requested.
func ParseFlags(args []string, stderr io.Writer) (Options, error) {
	def := sidediff.DefaultConfig()
	opts := Options{Config: def}

	fs := pflag.NewFlagSet("sidediff", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  sidediff [flags] OLD NEW")
		fmt.Fprintln(stderr, "  sidediff [flags] --rev REV FILE")
		fmt.Fprintln(stderr, "  git diff | sidediff [flags]")
		fmt.Fprintln(stderr, "  sidediff [flags] --batch PAIRS.jsonl")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fmt.Fprint(stderr, fs.FlagUsages())
	}

	var (
		style, refine, indicators, overflow string
		noLineNumbers, noFileHeader, wrap   bool
	)
	fs.StringVarP(&style, "style", "s", string(def.DiffStyle), "layout: split or unified")
	fs.StringVarP(&refine, "refine", "r", string(def.LineRefinement), "intra-line refinement: none, word or word-alt")
	fs.StringVar(&indicators, "indicators", string(def.IndicatorStyle), "change indicators: bars, classic or none")
	fs.StringVar(&overflow, "overflow", string(def.OverflowPolicy), "long lines: scroll or wrap")
	fs.BoolVarP(&wrap, "wrap", "w", false, "shorthand for --overflow wrap")
	fs.BoolVar(&noLineNumbers, "no-line-numbers", false, "hide the line number gutter")
	fs.BoolVar(&noFileHeader, "no-file-header", false, "hide the per-file header")
	fs.StringVar(&opts.Config.Themes.Dark, "dark-theme", def.Themes.Dark, "theme used on dark backgrounds")
	fs.StringVar(&opts.Config.Themes.Light, "light-theme", def.Themes.Light, "theme used on light backgrounds")
	fs.StringVarP(&opts.ThemeType, "theme-type", "t", "", "dark or light (default: detect from terminal)")
	fs.StringVarP(&opts.Format, "format", "f", FormatTUI, "output: tui, jsonl or patch")
	fs.StringVar(&opts.Rev, "rev", "", "compare FILE against its version at this git revision")
	fs.BoolVarP(&opts.Patch, "patch", "p", false, "read a unified or git patch from stdin")
	fs.StringVarP(&opts.Batch, "batch", "b", "", "read file pairs from a JSONL file")
	fs.StringVar(&opts.Save, "save", "", "JSONL file the viewer appends file pairs to (key e)")
	fs.StringVarP(&opts.Lang, "lang", "l", "", "language hint for both sides (default: detect from name)")
	fs.IntVarP(&opts.Context, "context", "U", 3, "context lines in patch output")
	fs.BoolVar(&opts.Debug, "debug", false, "log debug information to stderr")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	opts.Config.DiffStyle = sidediff.DiffStyle(style)
	opts.Config.LineRefinement = sidediff.LineRefinement(refine)
	opts.Config.IndicatorStyle = sidediff.IndicatorStyle(indicators)
	opts.Config.OverflowPolicy = sidediff.OverflowPolicy(overflow)
	if wrap {
		opts.Config.OverflowPolicy = sidediff.OverflowWrap
	}
	opts.Config.ShowLineNumbers = !noLineNumbers
	opts.Config.ShowFileHeader = !noFileHeader
	if opts.ThemeType != "" {
		opts.Config.ActiveTheme = sidediff.ThemeKey(opts.ThemeType)
	}
	opts.Args = fs.Args()

	switch opts.Format {
	case FormatTUI, FormatJSONL, FormatPatch:
	default:
		return Options{}, fmt.Errorf("%w: unknown format %q", ErrUsage, opts.Format)
	}
	return opts, nil
}
