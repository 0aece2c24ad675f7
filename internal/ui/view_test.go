package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rustybrooks/dcui/internal/logging/events"
	"github.com/rustybrooks/dcui/internal/testutil"
	"github.com/rustybrooks/dcui/internal/tiling"
)

func windowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

// assertPanesPlaced checks that every pane's title is drawn on the first
// inner line of its box, one cell right of the box's scaled left edge.
func assertPanesPlaced(t *testing.T, m *Model, view string) {
	t.Helper()
	lines := strings.Split(view, "\n")
	grid := m.gridArea()
	cols, rows := m.engine.Grid()
	for _, id := range m.order {
		v := m.views[id]
		a := paneArea(v, cols, rows, grid.width, grid.height)
		row := grid.y + a.y + 1
		if row >= len(lines) {
			t.Fatalf("pane %d: title row %d is off screen", id, row)
		}
		label := fmt.Sprintf("#%d %s", id, v.title)
		idx := strings.Index(lines[row], label)
		if idx < 0 {
			t.Fatalf("pane %d: %q not on line %d:\n%s", id, label, row, view)
		}
		if col, want := lipgloss.Width(lines[row][:idx]), grid.x+a.x+1; col != want {
			t.Fatalf("pane %d: title at column %d, want %d:\n%s", id, col, want, view)
		}
	}
}

func TestViewFillsScreen(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{ShowFooter: true}))
	h.SendKey("a")
	h.SendKey("a")
	h.SendKey("f3")
	h.SendKey("a")

	view := h.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 80 {
			t.Fatalf("line %d has width %d: %q", i, w, line)
		}
	}
	assertPanesPlaced(t, h.Model(), view)
}

func TestGridDrawsPaneBesideTallerNeighbour(t *testing.T) {
	cases := []struct {
		name string
		keys []string
	}{
		// #3 sits below #1, left of the full-height #2.
		{"lower left", []string{"a", "a", "f3", "a"}},
		// #1 splits again, stacking #1, #4 and #3 beside #2.
		{"stacked left", []string{"a", "a", "f3", "a", "a"}},
		{"with panel", []string{"a", "a", "f3", "a", "t"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHarness(newTestModel(t, Options{}))
			for _, k := range tc.keys {
				h.SendKey(k)
			}
			m := h.Model()
			assertInSync(t, m)
			if m.PaneCount() < 3 {
				t.Fatalf("expected at least 3 panes, got %d", m.PaneCount())
			}
			assertPanesPlaced(t, m, h.View())
		})
	}
}

func TestViewShowsTitlesAndHeader(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{ShowFooter: true}))
	h.SendKey("a")
	h.SendKey("a")
	view := h.View()
	for _, want := range []string{"#1 pane 1", "#2 pane 2", "2 panes", "next split: horizontal", "add"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewEmptyGridHint(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	if !strings.Contains(h.View(), "no panes: press a to add one") {
		t.Fatalf("expected empty hint:\n%s", h.View())
	}
}

func TestPaneAreaScalesCells(t *testing.T) {
	v := &paneView{rect: tiling.Rect{Row: 1, Col: 1, Width: 2, Height: 1}}
	got := paneArea(v, 3, 2, 10, 7)
	want := screenArea{x: 3, y: 3, width: 6, height: 4}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRenderPaneExactSize(t *testing.T) {
	v := &paneView{id: 7, title: "a very long pane title that will not fit", content: newTextContent("one\ntwo\nthree\nfour")}
	lines := renderPane(v, 12, 5)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Fatalf("line %d has width %d: %q", i, w, line)
		}
	}
	if !strings.Contains(lines[1], "#7 a very") {
		t.Fatalf("expected truncated title, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "one") || !strings.Contains(lines[3], "two") {
		t.Fatalf("expected body lines, got %q", lines)
	}
}

func TestRenderPaneTooSmall(t *testing.T) {
	v := &paneView{id: 1, title: "tiny", content: newTextContent("x")}
	lines := renderPane(v, 1, 3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line != " " {
			t.Fatalf("expected blank line, got %q", line)
		}
	}
}

func TestDebugViewToggle(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.SendKey("a")
	h.SendKey("f12")
	view := h.View()
	if !strings.Contains(view, "layout log") || !strings.Contains(view, "mount") {
		t.Fatalf("expected layout log:\n%s", view)
	}
	// Keys other than the toggle are swallowed while the log is open.
	h.SendKey("a")
	if h.Model().PaneCount() != 1 {
		t.Fatalf("expected add to be ignored in debug view")
	}
	h.SendKey("f12")
	if strings.Contains(h.View(), "layout log") {
		t.Fatalf("expected debug view to close")
	}
}

func TestPanelListsPanes(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.SendKey("a")
	h.SendKey("t")
	view := h.View()
	for _, want := range []string{"compose files", "(none)", "panes", "#1  pane 1  4x4"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	h.SendKey("t")
	if strings.Contains(h.View(), "compose files") {
		t.Fatalf("expected panel to be hidden")
	}
}

func TestLayoutLogIsBounded(t *testing.T) {
	m := newTestModel(t, Options{GridCols: 1, GridRows: 1})
	for i := 0; i < maxLayoutLog; i++ {
		m.addPane("p", newTextContent(""), events.PaneReasonKey)
		m.removeSelected()
	}
	if len(m.layoutLog) != maxLayoutLog {
		t.Fatalf("expected %d log lines, got %d", maxLayoutLog, len(m.layoutLog))
	}
	if last := m.layoutLog[len(m.layoutLog)-1]; last != "layout ()" {
		t.Fatalf("unexpected last line %q", last)
	}
}

func TestFitLine(t *testing.T) {
	if got := fitLine("abc", 5); got != "abc  " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := fitLine("abcdef", 4); got != "abcd" {
		t.Fatalf("expected truncation, got %q", got)
	}
	if got := fitLine("abc", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestLayoutLogGolden(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	for _, k := range []string{"a", "a", "a", "x", "f3", "a"} {
		h.SendKey(k)
	}
	testutil.AssertGolden(t, "layout_log.golden", strings.Join(h.Model().layoutLog, "\n")+"\n")
}
