package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/sidediff"
	"github.com/fwojciec/sidediff/bubbletea"
	"github.com/fwojciec/sidediff/compare"
	sdlipgloss "github.com/fwojciec/sidediff/lipgloss"
	"github.com/fwojciec/sidediff/mock"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trueColorRenderer creates a lipgloss renderer that outputs true colors.
// This is useful for testing color output without affecting global state.
func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func themes(cfg sidediff.PresentationConfig) sidediff.Theme {
	return sdlipgloss.ForConfig(cfg)
}

func filePair(name, oldText, newText string) sidediff.FilePair {
	return sidediff.FilePair{
		Old: sidediff.FileContents{Name: name, Contents: oldText},
		New: sidediff.FileContents{Name: name, Contents: newText},
	}
}

// sized delivers the initial window size, which triggers the first render.
func sized(m bubbletea.Model, width, height int) bubbletea.Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return next.(bubbletea.Model)
}

func press(m bubbletea.Model, keys ...string) bubbletea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(bubbletea.Model)
	}
	return m
}

// screen returns the view without escape sequences.
func screen(m bubbletea.Model) string {
	return ansi.Strip(m.View())
}

// lineWith returns the first screen line containing s.
func lineWith(t *testing.T, m bubbletea.Model, s string) string {
	t.Helper()
	for _, line := range strings.Split(screen(m), "\n") {
		if strings.Contains(line, s) {
			return line
		}
	}
	t.Fatalf("no line contains %q in:\n%s", s, screen(m))
	return ""
}

var alphaPair = filePair("f.txt", "alpha\nbravo\ndelta", "alpha\ncharlie\ndelta")

func TestModel_Init(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig())

	assert.Nil(t, m.Init(), "Init should return nil command")
}

func TestModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(nil, sidediff.DefaultConfig())

	assert.Contains(t, m.View(), "Loading", "View should show loading state before WindowSizeMsg")
}

func TestModel_ViewAfterReady(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel([]sidediff.FilePair{filePair("test.go", "test content", "test content")}, sidediff.DefaultConfig())
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("test content"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestModel_QuitOnQ(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(nil, sidediff.DefaultConfig())
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestModel_QuitOnCtrlC(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(nil, sidediff.DefaultConfig())
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestModel_PendingGClearedOnOtherKey(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(nil, sidediff.DefaultConfig())
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Press 'g' then 'q' - should quit (not wait for another 'g')
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestModel_SplitPutsChangedPairOnOneRow(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig()), 80, 24)

	line := lineWith(t, m, "bravo")
	assert.Contains(t, line, "charlie")
	assert.Contains(t, line, "│")
	assert.Less(t, strings.Index(line, "bravo"), strings.Index(line, "charlie"))
}

func TestModel_ToggleStyle(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig()), 80, 24)

	m = press(m, "s")

	assert.Equal(t, sidediff.DiffStyleUnified, m.Config().DiffStyle)
	assert.NotContains(t, lineWith(t, m, "bravo"), "charlie")
	assert.Contains(t, lineWith(t, m, "file 1/1"), "unified")

	m = press(m, "s")

	assert.Equal(t, sidediff.DiffStyleSplit, m.Config().DiffStyle)
	assert.Contains(t, lineWith(t, m, "bravo"), "charlie")
}

func TestModel_UnifiedOrdersOldBeforeNew(t *testing.T) {
	t.Parallel()

	cfg := sidediff.DefaultConfig()
	cfg.DiffStyle = sidediff.DiffStyleUnified
	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, cfg), 80, 24)

	view := screen(m)
	assert.Less(t, strings.Index(view, "alpha"), strings.Index(view, "bravo"))
	assert.Less(t, strings.Index(view, "bravo"), strings.Index(view, "charlie"))
	assert.Less(t, strings.Index(view, "charlie"), strings.Index(view, "delta"))
	// Unchanged rows carry both line numbers.
	assert.True(t, strings.HasPrefix(lineWith(t, m, "alpha"), "   1    1 "))
	assert.True(t, strings.HasPrefix(lineWith(t, m, "bravo"), "   2      "))
	assert.True(t, strings.HasPrefix(lineWith(t, m, "charlie"), "        2 "))
}

func TestModel_RendersFileHeader(t *testing.T) {
	t.Parallel()

	pair := sidediff.FilePair{
		Old: sidediff.FileContents{Name: "old.go", Contents: "a\nb", Lang: "Go"},
		New: sidediff.FileContents{Name: "new.go", Contents: "a\nc\nd", Lang: "Go"},
	}
	m := sized(bubbletea.NewModel([]sidediff.FilePair{pair}, sidediff.DefaultConfig()), 80, 24)

	header := lineWith(t, m, "old.go → new.go")
	assert.Contains(t, header, "Go  +2 -1")
	assert.True(t, strings.HasPrefix(header, "── "))

	m = press(m, "H")

	assert.NotContains(t, screen(m), "new.go")
}

func TestModel_EmptyFile(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel([]sidediff.FilePair{filePair("e", "", "")}, sidediff.DefaultConfig()), 80, 24)

	assert.Contains(t, screen(m), "(empty)")
}

func TestModel_LineNumbers(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig()), 80, 24)

	assert.True(t, strings.HasPrefix(lineWith(t, m, "bravo"), "   2 "))

	m = press(m, "#")

	assert.False(t, m.Config().ShowLineNumbers)
	assert.True(t, strings.HasPrefix(lineWith(t, m, "bravo"), "▌ bravo"))
}

func TestModel_Indicators(t *testing.T) {
	t.Parallel()

	cfg := sidediff.DefaultConfig()
	cfg.ShowLineNumbers = false
	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, cfg), 80, 24)

	tests := []struct {
		style    sidediff.IndicatorStyle
		old, new string
	}{
		{sidediff.IndicatorClassic, "- bravo", "+ charlie"},
		{sidediff.IndicatorNone, " bravo", " charlie"},
		{sidediff.IndicatorBars, "▌ bravo", "▌ charlie"},
	}
	for _, tt := range tests {
		m = press(m, "i")

		require.Equal(t, tt.style, m.Config().IndicatorStyle)
		line := lineWith(t, m, "bravo")
		assert.Contains(t, line, tt.old, "indicators=%s", tt.style)
		assert.Contains(t, line, tt.new, "indicators=%s", tt.style)
	}
}

func TestModel_SwapSides(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig()), 80, 24)

	m = press(m, "x")

	line := lineWith(t, m, "bravo")
	assert.Less(t, strings.Index(line, "charlie"), strings.Index(line, "bravo"))
	assert.Contains(t, lineWith(t, m, "file 1/1"), "swapped")

	m = press(m, "x")

	line = lineWith(t, m, "bravo")
	assert.Less(t, strings.Index(line, "bravo"), strings.Index(line, "charlie"))
}

func TestModel_CycleRefinement(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig()), 80, 24)
	require.Equal(t, sidediff.RefineWordAlt, m.Config().LineRefinement)

	m = press(m, "r")

	assert.Equal(t, sidediff.RefineNone, m.Config().LineRefinement)
	assert.Contains(t, lineWith(t, m, "file 1/1"), "none")
	// Without refinement the lines are not paired.
	assert.NotContains(t, lineWith(t, m, "bravo"), "charlie")

	m = press(m, "r")

	assert.Equal(t, sidediff.RefineWord, m.Config().LineRefinement)
	assert.Contains(t, lineWith(t, m, "bravo"), "charlie")
}

func TestModel_ToggleTheme(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig(),
		bubbletea.WithThemes(themes),
		bubbletea.WithRenderer(trueColorRenderer()),
	), 80, 24)
	dark := m.View()

	m = press(m, "t")

	assert.Equal(t, sidediff.ThemeLight, m.Config().ActiveTheme)
	assert.NotEqual(t, dark, m.View())
	assert.Equal(t, ansi.Strip(dark), screen(m), "only colors change")
}

func TestModel_OverflowScrollAndWrap(t *testing.T) {
	t.Parallel()

	long := "start" + strings.Repeat("x", 60) + "END"
	m := sized(bubbletea.NewModel([]sidediff.FilePair{filePair("f", long, long)}, sidediff.DefaultConfig()), 40, 24)

	assert.Contains(t, screen(m), "start")
	assert.NotContains(t, screen(m), "END")

	m = press(m, "l")

	assert.NotContains(t, screen(m), "start", "scrolled past the first columns")

	m = press(m, "w")

	assert.Equal(t, sidediff.OverflowWrap, m.Config().OverflowPolicy)
	assert.Contains(t, screen(m), "start", "toggling wrap resets the horizontal offset")
	assert.Contains(t, screen(m), "END")
}

func TestModel_WrappedColumnsStayAligned(t *testing.T) {
	t.Parallel()

	cfg := sidediff.DefaultConfig()
	cfg.OverflowPolicy = sidediff.OverflowWrap
	cfg.ShowFileHeader = false
	long := strings.Repeat("word ", 12)
	m := sized(bubbletea.NewModel([]sidediff.FilePair{filePair("f", "short\nafter", long+"\nafter")}, cfg), 40, 24)

	lines := strings.Split(screen(m), "\n")
	var rows int
	for _, line := range lines {
		if strings.Contains(line, "│") {
			rows++
			assert.Equal(t, 40, lipgloss.Width(line), "%q", line)
		}
	}
	assert.Greater(t, rows, 2, "the long line wraps onto several rows")
	assert.Equal(t, 2, strings.Count(lineWith(t, m, "after"), "after"))
}

func TestModel_BackgroundExtendsFullWidthWithUnicode(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel([]sidediff.FilePair{filePair("u", "héllo 日本", "héllo 世界 👋")}, sidediff.DefaultConfig()), 60, 10)

	for _, line := range strings.Split(screen(m), "\n") {
		if strings.Contains(line, "héllo") {
			assert.Equal(t, 60, lipgloss.Width(line), "%q", line)
		}
	}
}

func TestModel_AppliesColors(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig(),
		bubbletea.WithThemes(themes),
		bubbletea.WithRenderer(trueColorRenderer()),
	)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	// Added rows use the dark theme's green background (#004000).
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("48;2;0;64;0")) && bytes.Contains(out, []byte("charlie"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestModel_HunkNavigation(t *testing.T) {
	t.Parallel()

	var oldLines, newLines []string
	for i := range 60 {
		line := fmt.Sprintf("line %02d", i)
		oldLines = append(oldLines, line)
		switch i {
		case 20:
			line = "FIRST_CHANGE"
		case 45:
			line = "SECOND_CHANGE"
		}
		newLines = append(newLines, line)
	}
	pair := filePair("f", strings.Join(oldLines, "\n"), strings.Join(newLines, "\n"))
	m := sized(bubbletea.NewModel([]sidediff.FilePair{pair}, sidediff.DefaultConfig()), 80, 8)

	require.NotContains(t, screen(m), "FIRST_CHANGE")
	assert.Contains(t, lineWith(t, m, "file 1/1"), "hunk 1/2")

	m = press(m, "n")
	assert.True(t, strings.HasPrefix(strings.Split(screen(m), "\n")[0], "  21 "), "hunk start is the top line")
	assert.Contains(t, screen(m), "FIRST_CHANGE")

	m = press(m, "n")
	assert.Contains(t, screen(m), "SECOND_CHANGE")
	assert.Contains(t, lineWith(t, m, "file 1/1"), "hunk 2/2")

	m = press(m, "n")
	assert.Contains(t, screen(m), "SECOND_CHANGE", "no hunk after the last one")

	m = press(m, "N")
	assert.Contains(t, screen(m), "FIRST_CHANGE")
	assert.NotContains(t, screen(m), "SECOND_CHANGE")
}

func TestModel_FileNavigation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("filler\n", 30)
	pairs := []sidediff.FilePair{
		filePair("first.txt", long+"a", long+"b"),
		filePair("second.txt", long+"c", long+"d"),
	}
	m := sized(bubbletea.NewModel(pairs, sidediff.DefaultConfig()), 80, 10)

	assert.Contains(t, screen(m), "first.txt")
	assert.Contains(t, lineWith(t, m, "file 1/2"), "Top")

	m = press(m, "]")

	assert.Contains(t, screen(m), "second.txt")
	assert.Contains(t, screen(m), "file 2/2")

	m = press(m, "[")

	assert.Contains(t, screen(m), "first.txt")
}

func TestModel_GotoBottomAndTop(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := range 100 {
		lines = append(lines, fmt.Sprintf("row %d", i))
	}
	lines[0] = "FIRST_LINE_MARKER"
	lines[99] = "LAST_LINE_MARKER"
	text := strings.Join(lines, "\n")
	m := sized(bubbletea.NewModel([]sidediff.FilePair{filePair("f", text, text)}, sidediff.DefaultConfig()), 80, 10)

	m = press(m, "G")
	assert.Contains(t, screen(m), "LAST_LINE_MARKER")
	assert.Contains(t, screen(m), "Bot")

	m = press(m, "g", "g")
	assert.Contains(t, screen(m), "FIRST_LINE_MARKER")
}

func TestModel_CopyPatch(t *testing.T) {
	t.Parallel()

	var copied string
	clip := &mock.Clipboard{
		CopyFn: func(content string) error {
			copied = content
			return nil
		},
	}
	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig(), bubbletea.WithClipboard(clip)), 80, 24)

	m = press(m, "y")

	assert.Contains(t, copied, "--- a/f.txt\n+++ b/f.txt\n")
	assert.Contains(t, copied, "-bravo\n+charlie\n")
	assert.Contains(t, screen(m), "patch copied")

	m = press(m, "j")
	assert.NotContains(t, screen(m), "patch copied", "messages clear on the next key")
}

func TestModel_CopyPatchError(t *testing.T) {
	t.Parallel()

	clip := &mock.Clipboard{
		CopyFn: func(string) error { return errors.New("no display") },
	}
	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig(), bubbletea.WithClipboard(clip)), 120, 24)

	m = press(m, "y")

	assert.Contains(t, screen(m), "copy failed: no display")
}

func TestModel_SavePair(t *testing.T) {
	t.Parallel()

	var savedPath string
	var saved sidediff.FilePair
	saver := &mock.PairSaver{
		SaveFn: func(path string, pair sidediff.FilePair) error {
			savedPath, saved = path, pair
			return nil
		},
	}
	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig(),
		bubbletea.WithPairSaver(saver, "cases.jsonl"),
	), 120, 24)

	m = press(m, "x", "e")

	assert.Equal(t, "cases.jsonl", savedPath)
	assert.Equal(t, alphaPair, saved, "the input pair is saved, not the swapped one")
	assert.Contains(t, screen(m), "saved to cases.jsonl")
}

func TestModel_MemoizesComparisons(t *testing.T) {
	t.Parallel()

	engine := compare.NewEngine()
	calls := 0
	comparer := &mock.Comparer{
		CompareFn: func(pair sidediff.FilePair, cfg sidediff.PresentationConfig) *sidediff.Comparison {
			calls++
			return engine.Compare(pair, cfg)
		},
	}
	m := sized(bubbletea.NewModel([]sidediff.FilePair{alphaPair}, sidediff.DefaultConfig(), bubbletea.WithComparer(comparer)), 80, 24)
	require.Equal(t, 1, calls)

	m = sized(m, 100, 30)
	m = press(m, "l", "j")
	assert.Equal(t, 1, calls, "resizing and scrolling reuse the comparison")

	m = press(m, "s")
	assert.Equal(t, 2, calls)

	press(m, "s")
	assert.Equal(t, 3, calls, "only the latest input is remembered")
}

func TestModel_NoFiles(t *testing.T) {
	t.Parallel()

	m := sized(bubbletea.NewModel(nil, sidediff.DefaultConfig()), 80, 24)

	m = press(m, "n", "N", "]", "[", "y", "e", "l")

	assert.Contains(t, screen(m), "file 0/0")
}

func TestViewer_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Custom IO avoids the TTY requirement
	var in bytes.Buffer
	var out bytes.Buffer
	viewer := bubbletea.NewViewer(
		bubbletea.WithProgramOptions(
			tea.WithInput(&in),
			tea.WithOutput(&out),
		),
	)

	done := make(chan error, 1)
	go func() {
		done <- viewer.View(ctx, []sidediff.FilePair{alphaPair}, sidediff.DefaultConfig())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("viewer did not exit after context cancellation")
	}
}

func TestViewer_ContextAlreadyCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var in bytes.Buffer
	var out bytes.Buffer
	viewer := bubbletea.NewViewer(
		bubbletea.WithProgramOptions(
			tea.WithInput(&in),
			tea.WithOutput(&out),
		),
	)

	err := viewer.View(ctx, nil, sidediff.DefaultConfig())

	require.ErrorIs(t, err, context.Canceled)
}
