// Package bubbletea provides a terminal UI viewer for comparisons using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/sidediff"
	"github.com/fwojciec/sidediff/compare"
	"github.com/fwojciec/sidediff/memo"
	"github.com/mattn/go-runewidth"
)

// patchContext is the number of context lines in copied patches.
const patchContext = 3

// scrollStep is the number of columns moved by one horizontal scroll.
const scrollStep = 8

// Model is the Bubble Tea model for viewing comparisons.
type Model struct {
	pairs     []sidediff.FilePair
	comparers []*memo.Comparer // One per file so toggling a file never evicts another
	cfg       sidediff.PresentationConfig
	swapped   bool
	xOffset   int
	maxWidth  int // Widest line of any file, in display columns

	themes    func(sidediff.PresentationConfig) sidediff.Theme
	clipboard sidediff.Clipboard
	saver     sidediff.PairSaver
	savePath  string

	hunkPositions []int
	filePositions []int
	message       string // Transient status message, cleared on the next key

	viewport   viewport.Model
	keymap     KeyMap
	renderer   *lipgloss.Renderer
	width      int
	ready      bool
	pendingKey string
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	renderer  *lipgloss.Renderer
	comparer  sidediff.Comparer
	themes    func(sidediff.PresentationConfig) sidediff.Theme
	clipboard sidediff.Clipboard
	saver     sidediff.PairSaver
	savePath  string
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithComparer sets the comparer. Each file gets its own memoizing wrapper.
func WithComparer(c sidediff.Comparer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.comparer = c
	}
}

// WithThemes sets how the active theme is resolved from the config.
func WithThemes(resolve func(sidediff.PresentationConfig) sidediff.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.themes = resolve
	}
}

// WithClipboard enables copying the current file's patch.
func WithClipboard(c sidediff.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithPairSaver enables appending the current file pair to a batch file.
func WithPairSaver(s sidediff.PairSaver, path string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.saver = s
		cfg.savePath = path
	}
}

// NewModel creates a new Model for the given file pairs.
func NewModel(pairs []sidediff.FilePair, cfg sidediff.PresentationConfig, opts ...ModelOption) Model {
	mc := &modelConfig{}
	for _, opt := range opts {
		opt(mc)
	}
	if mc.comparer == nil {
		mc.comparer = compare.NewEngine()
	}

	comparers := make([]*memo.Comparer, len(pairs))
	maxWidth := 0
	for i, p := range pairs {
		comparers[i] = memo.NewComparer(mc.comparer)
		maxWidth = max(maxWidth, widestLine(p.Old.Contents), widestLine(p.New.Contents))
	}
	cfg, _ = cfg.Normalize()

	return Model{
		pairs:     pairs,
		comparers: comparers,
		cfg:       cfg,
		maxWidth:  maxWidth,
		themes:    mc.themes,
		clipboard: mc.clipboard,
		saver:     mc.saver,
		savePath:  mc.savePath,
		keymap:    DefaultKeyMap(),
		renderer:  mc.renderer,
	}
}

// Config returns the current presentation config.
func (m Model) Config() sidediff.PresentationConfig {
	return m.cfg
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""

		// Handle multi-key sequences (gg for go to top)
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.viewport.GotoTop()
			m.pendingKey = ""
			return m, nil
		}
		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}
		m.pendingKey = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
		case key.Matches(msg, m.keymap.NextHunk):
			m.gotoNext(m.hunkPositions)
		case key.Matches(msg, m.keymap.PrevHunk):
			m.gotoPrev(m.hunkPositions)
		case key.Matches(msg, m.keymap.NextFile):
			m.gotoNext(m.filePositions)
		case key.Matches(msg, m.keymap.PrevFile):
			m.gotoPrev(m.filePositions)
		case key.Matches(msg, m.keymap.ScrollLeft):
			m.scrollHorizontal(-scrollStep)
		case key.Matches(msg, m.keymap.ScrollRight):
			m.scrollHorizontal(scrollStep)
		case key.Matches(msg, m.keymap.ToggleStyle):
			m.cfg.DiffStyle = toggle(m.cfg.DiffStyle, sidediff.DiffStyleSplit, sidediff.DiffStyleUnified)
			m.refresh()
		case key.Matches(msg, m.keymap.ToggleTheme):
			m.cfg.ActiveTheme = toggle(m.cfg.ActiveTheme, sidediff.ThemeDark, sidediff.ThemeLight)
			m.refresh()
		case key.Matches(msg, m.keymap.ToggleWrap):
			m.cfg.OverflowPolicy = toggle(m.cfg.OverflowPolicy, sidediff.OverflowScroll, sidediff.OverflowWrap)
			m.xOffset = 0
			m.refresh()
		case key.Matches(msg, m.keymap.CycleRefinement):
			m.cfg.LineRefinement = cycle(m.cfg.LineRefinement, sidediff.RefineNone, sidediff.RefineWord, sidediff.RefineWordAlt)
			m.refresh()
		case key.Matches(msg, m.keymap.CycleIndicators):
			m.cfg.IndicatorStyle = cycle(m.cfg.IndicatorStyle, sidediff.IndicatorBars, sidediff.IndicatorClassic, sidediff.IndicatorNone)
			m.refresh()
		case key.Matches(msg, m.keymap.ToggleLineNumbers):
			m.cfg.ShowLineNumbers = !m.cfg.ShowLineNumbers
			m.refresh()
		case key.Matches(msg, m.keymap.ToggleFileHeader):
			m.cfg.ShowFileHeader = !m.cfg.ShowFileHeader
			m.refresh()
		case key.Matches(msg, m.keymap.SwapSides):
			m.swapped = !m.swapped
			m.refresh()
		case key.Matches(msg, m.keymap.CopyPatch):
			m.copyPatch()
		case key.Matches(msg, m.keymap.SavePair):
			m.savePair()
		}
		return m, nil
	case tea.WindowSizeMsg:
		statusBarHeight := 1
		widthChanged := m.width != msg.Width
		m.width = msg.Width

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.ready = true
			m.refresh()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
			if widthChanged {
				m.refresh()
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// comparison returns the comparison of file i under the current config.
func (m Model) comparison(i int) *sidediff.Comparison {
	pair := m.pairs[i]
	if m.swapped {
		pair = pair.Swap()
	}
	return m.comparers[i].Compare(pair, m.cfg)
}

// styles returns the styles of the active theme.
func (m Model) styles() sidediff.Styles {
	if m.themes == nil {
		return sidediff.Styles{}
	}
	return m.themes(m.cfg).Styles()
}

// refresh re-renders every file and recomputes navigation positions.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	styles := m.styles()
	var lines []string
	m.hunkPositions, m.filePositions = nil, nil
	for i := range m.pairs {
		pg := renderComparison(renderConfig{
			comparison: m.comparison(i),
			styles:     styles,
			renderer:   m.renderer,
			width:      m.width,
			xOffset:    m.xOffset,
		})
		m.filePositions = append(m.filePositions, len(lines))
		for _, h := range pg.hunks {
			m.hunkPositions = append(m.hunkPositions, len(lines)+h)
		}
		lines = append(lines, pg.lines...)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// gotoNext scrolls to the first position below the top of the viewport.
func (m *Model) gotoNext(positions []int) {
	for _, pos := range positions {
		if pos > m.viewport.YOffset {
			m.viewport.SetYOffset(pos)
			return
		}
	}
}

// gotoPrev scrolls to the last position above the top of the viewport.
func (m *Model) gotoPrev(positions []int) {
	for i := len(positions) - 1; i >= 0; i-- {
		if positions[i] < m.viewport.YOffset {
			m.viewport.SetYOffset(positions[i])
			return
		}
	}
}

func (m *Model) scrollHorizontal(delta int) {
	if m.cfg.OverflowPolicy == sidediff.OverflowWrap {
		return
	}
	offset := min(max(m.xOffset+delta, 0), max(m.maxWidth-1, 0))
	if offset != m.xOffset {
		m.xOffset = offset
		m.refresh()
	}
}

// currentFile returns the index of the file at the top of the viewport, or
// -1 when there are no files.
func (m Model) currentFile() int {
	current, _ := m.currentPosition(m.filePositions)
	return current - 1
}

func (m *Model) copyPatch() {
	i := m.currentFile()
	if m.clipboard == nil || i < 0 {
		return
	}
	patch := sidediff.FormatPatch(m.comparison(i).Diff, patchContext)
	if patch == "" {
		m.message = "no changes"
		return
	}
	if err := m.clipboard.Copy(patch); err != nil {
		m.message = "copy failed: " + err.Error()
		return
	}
	m.message = "patch copied"
}

func (m *Model) savePair() {
	i := m.currentFile()
	if m.saver == nil || m.savePath == "" || i < 0 {
		return
	}
	if err := m.saver.Save(m.savePath, m.pairs[i]); err != nil {
		m.message = "save failed: " + err.Error()
		return
	}
	m.message = "saved to " + m.savePath
}

// newStyle creates a new lipgloss style using the model's renderer.
func (m Model) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// statusBarView renders the status bar with position info and the active
// presentation settings.
func (m Model) statusBarView() string {
	styles := m.styles()
	barStyle := m.newStyle()
	if styles.StatusBar.Background != "" {
		barStyle = barStyle.Background(lipgloss.Color(styles.StatusBar.Background))
	}
	if styles.StatusBar.Foreground != "" {
		barStyle = barStyle.Foreground(lipgloss.Color(styles.StatusBar.Foreground))
	}
	dimStyle := barStyle
	if styles.LineNumber.Foreground != "" {
		dimStyle = dimStyle.Foreground(lipgloss.Color(styles.LineNumber.Foreground))
	}

	fileIdx, fileTotal := m.currentPosition(m.filePositions)
	hunkIdx, hunkTotal := m.currentPosition(m.hunkPositions)
	fileWidth := digitWidth(fileTotal)
	hunkWidth := digitWidth(hunkTotal)

	parts := []string{
		fmt.Sprintf("file %*d/%-*d", fileWidth, fileIdx, fileWidth, fileTotal),
		fmt.Sprintf("hunk %*d/%-*d", hunkWidth, hunkIdx, hunkWidth, hunkTotal),
		fmt.Sprintf("%s %s %s", m.cfg.DiffStyle, m.cfg.LineRefinement, m.cfg.OverflowPolicy),
	}
	if m.swapped {
		parts = append(parts, "swapped")
	}
	parts = append(parts, m.scrollPosition())

	sep := dimStyle.Render(" │ ")
	var content strings.Builder
	for i, p := range parts {
		if i > 0 {
			content.WriteString(sep)
		}
		content.WriteString(barStyle.Render(p))
	}
	content.WriteString(sep)
	if m.message != "" {
		content.WriteString(barStyle.Render(m.message))
	} else if hints := dimStyle.Render(statusHints); lipgloss.Width(content.String())+lipgloss.Width(hints) <= m.width {
		content.WriteString(hints)
	}
	content.WriteString(barStyle.Render("  "))

	// Right-align by padding left side with background
	out := content.String()
	if w := lipgloss.Width(out); m.width > w {
		out = barStyle.Render(strings.Repeat(" ", m.width-w)) + out
	}
	return ansi.Truncate(out, m.width, "")
}

const statusHints = "n/N:hunk  s:style  r:words  w:wrap  x:swap  y:copy  q:quit"

// currentPosition returns the current position (1-based) and total count.
func (m Model) currentPosition(positions []int) (current, total int) {
	total = len(positions)
	if total == 0 {
		return 0, 0
	}

	current = 1
	for i, pos := range positions {
		if pos > m.viewport.YOffset {
			break
		}
		current = i + 1
	}
	return current, total
}

// scrollPosition returns a string indicating the scroll position.
func (m Model) scrollPosition() string {
	if m.viewport.AtTop() {
		return "Top"
	}
	if m.viewport.AtBottom() {
		return "Bot"
	}
	return fmt.Sprintf("%2d%%", int(m.viewport.ScrollPercent()*100))
}

func toggle[T comparable](v, a, b T) T {
	if v == a {
		return b
	}
	return a
}

// cycle returns the value following v in values, wrapping around.
func cycle[T comparable](v T, values ...T) T {
	for i, x := range values {
		if x == v {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// widestLine returns the display width of the widest line of s.
func widestLine(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, runewidth.StringWidth(ExpandTabs(line, 0)))
	}
	return w
}

// Compile-time interface verification.
var _ sidediff.Viewer = (*Viewer)(nil)

// Viewer implements sidediff.Viewer using a Bubble Tea TUI.
type Viewer struct {
	modelOpts   []ModelOption
	programOpts []tea.ProgramOption
}

// ViewerOption configures a Viewer.
type ViewerOption func(*Viewer)

// WithModelOptions sets options applied to every model the viewer creates.
func WithModelOptions(opts ...ModelOption) ViewerOption {
	return func(v *Viewer) {
		v.modelOpts = append(v.modelOpts, opts...)
	}
}

// WithProgramOptions sets additional Bubble Tea program options.
func WithProgramOptions(opts ...tea.ProgramOption) ViewerOption {
	return func(v *Viewer) {
		v.programOpts = append(v.programOpts, opts...)
	}
}

// NewViewer creates a new Viewer.
func NewViewer(opts ...ViewerOption) *Viewer {
	v := &Viewer{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// View displays the comparisons and blocks until the user exits or ctx is
// cancelled.
func (v *Viewer) View(ctx context.Context, pairs []sidediff.FilePair, cfg sidediff.PresentationConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := NewModel(pairs, cfg, v.modelOpts...)
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, v.programOpts...)

	_, err := tea.NewProgram(m, opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
