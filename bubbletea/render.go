package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sidediff"
	"github.com/fwojciec/sidediff/layout"
	"github.com/mattn/go-runewidth"
)

// renderConfig holds all rendering parameters for renderComparison.
type renderConfig struct {
	comparison *sidediff.Comparison
	styles     sidediff.Styles
	renderer   *lipgloss.Renderer
	width      int
	xOffset    int // First visible content column under OverflowScroll
}

// page is the rendered form of one file.
type page struct {
	lines []string
	hunks []int // Index into lines of the first line of every hunk
}

// minGutterWidth is the minimum width of each line number column in the gutter.
const minGutterWidth = 4

// painter holds the resolved styles for one render pass.
type painter struct {
	cfg         sidediff.PresentationConfig
	width       int
	xOffset     int
	gutterWidth int

	fileHeader, context, added, deleted, filler    lipgloss.Style
	lineNum, addedGutter, deletedGutter, separator lipgloss.Style
	addedHighlight, deletedHighlight, changed      lipgloss.Style
}

func newPainter(cfg renderConfig) painter {
	s, r := cfg.styles, cfg.renderer
	c := cfg.comparison
	return painter{
		cfg:              c.Config,
		width:            cfg.width,
		xOffset:          cfg.xOffset,
		gutterWidth:      calculateGutterWidth(c.Diff),
		fileHeader:       styleFromColorPair(s.FileHeader, r),
		context:          styleFromColorPair(s.Context, r),
		added:            styleFromColorPair(s.Added, r),
		deleted:          styleFromColorPair(s.Deleted, r),
		filler:           styleFromColorPair(s.Filler, r),
		lineNum:          styleFromColorPair(s.LineNumber, r),
		addedGutter:      styleFromColorPair(s.AddedGutter, r),
		deletedGutter:    styleFromColorPair(s.DeletedGutter, r),
		separator:        styleFromColorPair(s.Separator, r),
		addedHighlight:   styleFromColorPair(s.AddedHighlight, r),
		deletedHighlight: styleFromColorPair(s.DeletedHighlight, r),
		changed:          styleFromColorPair(s.Changed, r),
	}
}

// renderComparison converts one comparison into styled display lines.
// If renderer is nil, the default lipgloss renderer is used.
func renderComparison(cfg renderConfig) page {
	c := cfg.comparison
	if c == nil || c.Diff == nil {
		return page{}
	}
	p := newPainter(cfg)

	var pg page
	if c.Config.ShowFileHeader {
		pg.lines = append(pg.lines, p.header(c.Diff))
	}

	var rowStarts []int
	var changed func(i int) bool
	if c.Config.DiffStyle == sidediff.DiffStyleUnified {
		for _, row := range c.Unified {
			rowStarts = append(rowStarts, len(pg.lines))
			pg.lines = append(pg.lines, p.unifiedRow(row)...)
		}
		changed = func(i int) bool { return c.Unified[i].Kind != sidediff.RowUnchanged }
	} else {
		for _, row := range c.Split {
			rowStarts = append(rowStarts, len(pg.lines))
			pg.lines = append(pg.lines, p.splitRow(row)...)
		}
		changed = func(i int) bool { return c.Split[i].Kind != sidediff.RowUnchanged }
	}

	if len(rowStarts) == 0 {
		pg.lines = append(pg.lines, p.context.Render(padLine("(empty)", p.width)))
		return pg
	}
	for _, i := range layout.HunkStarts(len(rowStarts), changed) {
		pg.hunks = append(pg.hunks, rowStarts[i])
	}
	return pg
}

// header renders the file header line.
// Format: ── old → new ─────────────────── lang +N -M ──
func (p painter) header(d *sidediff.Diff) string {
	name := d.Pair.New.Name
	if d.Pair.Old.Name != d.Pair.New.Name {
		name = d.Pair.Old.Name + " → " + d.Pair.New.Name
	}
	added, removed := d.Stats()
	stats := fmt.Sprintf("+%d -%d", added, removed)
	if lang := d.Pair.New.Lang; lang != "" && lang != sidediff.DefaultLang {
		stats = lang + "  " + stats
	}

	middle := "── " + name + " "
	end := " " + stats + " ──"
	fillWidth := max(p.width-lipgloss.Width(middle)-lipgloss.Width(end), 3)
	return p.fileHeader.Render(middle + strings.Repeat("─", fillWidth) + end)
}

// splitRow renders one two-column row. Under OverflowWrap both columns
// wrap independently and the shorter one is padded so they stay aligned.
func (p painter) splitRow(row sidediff.SplitRow) []string {
	sep := p.separator.Render("│")
	leftWidth := max((p.width-1)/2, 1)
	rightWidth := max(p.width-1-leftWidth, 1)

	left, leftBlank := p.column(row.OldKind(), sidediff.SideOld, row.Old, row.Ops, leftWidth)
	right, rightBlank := p.column(row.NewKind(), sidediff.SideNew, row.New, row.Ops, rightWidth)

	n := max(len(left), len(right))
	lines := make([]string, n)
	for i := range n {
		l, r := leftBlank, rightBlank
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		lines[i] = l + sep + r
	}
	return lines
}

// column renders one side of a split row, returning its lines and the blank
// line used to pad it.
func (p painter) column(kind sidediff.RowKind, side sidediff.Side, line *sidediff.Line, ops []sidediff.EditOp, width int) ([]string, string) {
	if line == nil {
		blank := p.filler.Render(strings.Repeat(" ", width))
		return []string{blank}, blank
	}
	gutter := p.gutter(kind, side, line.Number())
	return p.cell(kind, side, gutter, line.Text, ops, width)
}

// unifiedRow renders one single-column row.
func (p painter) unifiedRow(row sidediff.UnifiedRow) []string {
	side := row.Side
	if row.Kind == sidediff.RowUnchanged {
		side = sidediff.SideBoth
	}
	gutter := p.gutter(row.Kind, side, row.OldNumber, row.NewNumber)
	lines, _ := p.cell(row.Kind, side, gutter, row.Line.Text, row.Ops, p.width)
	return lines
}

// gutter formats the line number columns followed by the change indicator.
// Missing numbers (zero) render as blanks.
func (p painter) gutter(kind sidediff.RowKind, side sidediff.Side, numbers ...int) []span {
	var spans []span
	style := p.gutterStyle(kind, side)
	if p.cfg.ShowLineNumbers {
		var sb strings.Builder
		for _, n := range numbers {
			sb.WriteString(formatLineNum(n, p.gutterWidth))
			sb.WriteString(" ")
		}
		spans = append(spans, span{text: sb.String(), style: style})
	}

	base := p.baseStyle(kind, side)
	switch p.cfg.IndicatorStyle {
	case sidediff.IndicatorBars:
		if kind == sidediff.RowUnchanged {
			spans = append(spans, span{text: "  ", style: base})
		} else {
			spans = append(spans, span{text: "▌", style: p.indicatorStyle(kind, side)}, span{text: " ", style: base})
		}
	case sidediff.IndicatorClassic:
		spans = append(spans, span{text: linePrefixFor(kind, side) + " ", style: p.indicatorStyle(kind, side)})
	default:
		spans = append(spans, span{text: " ", style: base})
	}
	return spans
}

// cell renders a gutter followed by the line content into lines exactly
// width columns wide. Continuation lines of wrapped content get a blank
// gutter of the same width.
func (p painter) cell(kind sidediff.RowKind, side sidediff.Side, gutter []span, text string, ops []sidediff.EditOp, width int) ([]string, string) {
	base := p.baseStyle(kind, side)
	gutterWidth := 0
	for _, s := range gutter {
		gutterWidth += lipgloss.Width(s.text)
	}
	contentWidth := max(width-gutterWidth, 1)

	content := expandSpans(p.contentSpans(kind, side, text, ops))
	var body []string
	if p.cfg.OverflowPolicy == sidediff.OverflowWrap {
		body = wrapSpans(content, contentWidth, base)
	} else {
		body = []string{clipSpans(content, p.xOffset, contentWidth, base)}
	}

	var prefix strings.Builder
	for _, s := range gutter {
		prefix.WriteString(s.style.Render(s.text))
	}
	cont := p.gutterStyle(kind, side).Render(strings.Repeat(" ", gutterWidth))

	lines := make([]string, len(body))
	for i, b := range body {
		if i == 0 {
			lines[i] = prefix.String() + b
		} else {
			lines[i] = cont + b
		}
	}
	return lines, cont + base.Render(strings.Repeat(" ", contentWidth))
}

// contentSpans splits the line text into styled spans. Changed rows with
// token-level ops highlight the changed segments of their own side.
func (p painter) contentSpans(kind sidediff.RowKind, side sidediff.Side, text string, ops []sidediff.EditOp) []span {
	base := p.baseStyle(kind, side)
	if kind != sidediff.RowChanged || ops == nil || side == sidediff.SideBoth {
		return []span{{text: text, style: base}}
	}
	highlight := p.addedHighlight
	if side == sidediff.SideOld {
		highlight = p.deletedHighlight
	}
	var spans []span
	for _, seg := range sidediff.Segments(ops, side) {
		style := base
		if seg.Changed {
			style = highlight
		}
		spans = append(spans, span{text: seg.Text, style: style})
	}
	return spans
}

func (p painter) baseStyle(kind sidediff.RowKind, side sidediff.Side) lipgloss.Style {
	switch kind {
	case sidediff.RowAdded:
		return p.added
	case sidediff.RowRemoved:
		return p.deleted
	case sidediff.RowChanged:
		if side == sidediff.SideOld {
			return p.deleted
		}
		return p.added
	case sidediff.RowFiller:
		return p.filler
	default:
		return p.context
	}
}

func (p painter) gutterStyle(kind sidediff.RowKind, side sidediff.Side) lipgloss.Style {
	switch kind {
	case sidediff.RowAdded:
		return p.addedGutter
	case sidediff.RowRemoved:
		return p.deletedGutter
	case sidediff.RowChanged:
		if side == sidediff.SideOld {
			return p.deletedGutter
		}
		return p.addedGutter
	default:
		return p.lineNum
	}
}

// indicatorStyle colors the change marker. Changed rows use the changed
// foreground on their side's background so they stand apart from pure
// additions and deletions.
func (p painter) indicatorStyle(kind sidediff.RowKind, side sidediff.Side) lipgloss.Style {
	base := p.baseStyle(kind, side)
	if kind == sidediff.RowChanged {
		return base.Foreground(p.changed.GetForeground())
	}
	return base
}

// linePrefixFor returns the classic marker for a row.
func linePrefixFor(kind sidediff.RowKind, side sidediff.Side) string {
	switch kind {
	case sidediff.RowAdded:
		return "+"
	case sidediff.RowRemoved:
		return "-"
	case sidediff.RowChanged:
		if side == sidediff.SideOld {
			return "-"
		}
		return "+"
	default:
		return " "
	}
}

// span is a run of text drawn with one style.
type span struct {
	text  string
	style lipgloss.Style
}

// expandSpans expands tabs against the running column across all spans.
func expandSpans(spans []span) []span {
	col := 0
	out := make([]span, len(spans))
	for i, s := range spans {
		text := ExpandTabs(s.text, col)
		col += runewidth.StringWidth(text)
		out[i] = span{text: text, style: s.style}
	}
	return out
}

// runBuilder accumulates runes into one display line, rendering each run of
// same-styled runes once.
type runBuilder struct {
	line  strings.Builder
	run   strings.Builder
	style *lipgloss.Style
	width int
}

func (b *runBuilder) add(r rune, w int, style *lipgloss.Style) {
	if b.style != style {
		b.flush()
		b.style = style
	}
	b.run.WriteRune(r)
	b.width += w
}

func (b *runBuilder) flush() {
	if b.run.Len() > 0 {
		b.line.WriteString(b.style.Render(b.run.String()))
		b.run.Reset()
	}
	b.style = nil
}

// finish pads the line to width with pad and returns it.
func (b *runBuilder) finish(width int, pad lipgloss.Style) string {
	b.flush()
	if b.width < width {
		b.line.WriteString(pad.Render(strings.Repeat(" ", width-b.width)))
	}
	s := b.line.String()
	b.line.Reset()
	b.width = 0
	return s
}

// clipSpans renders the columns [offset, offset+width) of spans. A wide rune
// cut by either edge is replaced with spaces.
func clipSpans(spans []span, offset, width int, pad lipgloss.Style) string {
	var b runBuilder
	col := 0
	end := offset + width
	visible := false
	for i := range spans {
		s := &spans[i]
		for _, r := range s.text {
			w := runewidth.RuneWidth(r)
			switch {
			case w == 0:
				if visible {
					b.add(r, 0, &s.style)
				}
				continue
			case col+w <= offset:
				visible = false
			case col < offset:
				for range col + w - offset {
					b.add(' ', 1, &s.style)
				}
				visible = false
			case col+w > end:
				for range end - col {
					b.add(' ', 1, &s.style)
				}
				return b.finish(width, pad)
			default:
				b.add(r, w, &s.style)
				visible = true
			}
			col += w
		}
	}
	return b.finish(width, pad)
}

// wrapSpans soft-wraps spans into lines of exactly width columns.
func wrapSpans(spans []span, width int, pad lipgloss.Style) []string {
	var b runBuilder
	var lines []string
	for i := range spans {
		s := &spans[i]
		for _, r := range s.text {
			w := runewidth.RuneWidth(r)
			if b.width+w > width && b.width > 0 {
				lines = append(lines, b.finish(width, pad))
			}
			b.add(r, w, &s.style)
		}
	}
	return append(lines, b.finish(width, pad))
}

// calculateGutterWidth determines the gutter width from the largest line
// number in either version.
func calculateGutterWidth(d *sidediff.Diff) int {
	if d == nil {
		return minGutterWidth
	}
	return max(digitWidth(max(len(d.OldLines), len(d.NewLines))), minGutterWidth)
}

// formatLineNum formats a line number for the gutter.
// Returns right-aligned number or empty space for zero (missing) line numbers.
func formatLineNum(num, width int) string {
	if num == 0 {
		return fmt.Sprintf("%*s", width, "")
	}
	return fmt.Sprintf("%*d", width, num)
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp sidediff.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// padLine pads a line with spaces to the specified display width.
// If the line is already wider, it is returned unchanged.
func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
