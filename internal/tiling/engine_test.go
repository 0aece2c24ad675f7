package tiling

import (
	"errors"
	"reflect"
	"testing"
)

func newEngine(t *testing.T, cols, rows int) *Engine {
	t.Helper()
	e, err := New(cols, rows)
	if err != nil {
		t.Fatalf("New(%d, %d) failed: %v", cols, rows, err)
	}
	return e
}

func mustAdd(t *testing.T, e *Engine, title string) (PaneID, []Effect) {
	t.Helper()
	id, effects, err := e.AddPane(title, "content:"+title)
	if err != nil {
		t.Fatalf("AddPane(%q) failed: %v", title, err)
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("invalid engine after AddPane(%q): %v\nlayout: %s", title, err, e.Layout())
	}
	return id, effects
}

func mustRemove(t *testing.T, e *Engine, id PaneID) []Effect {
	t.Helper()
	effects, err := e.RemovePane(id)
	if err != nil {
		t.Fatalf("RemovePane(%d) failed: %v", id, err)
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("invalid engine after RemovePane(%d): %v\nlayout: %s", id, err, e.Layout())
	}
	return effects
}

func rectOf(t *testing.T, e *Engine, id PaneID) Rect {
	t.Helper()
	p, ok := e.Pane(id)
	if !ok {
		t.Fatalf("expected pane %d to be live", id)
	}
	return p.Rect
}

func expectSelected(t *testing.T, e *Engine, want PaneID) {
	t.Helper()
	got, ok := e.Selected()
	if want == 0 {
		if ok {
			t.Fatalf("expected no selection, got %d", got)
		}
		return
	}
	if !ok || got != want {
		t.Fatalf("expected pane %d selected, got %d (ok=%v)", want, got, ok)
	}
}

func expectLayout(t *testing.T, e *Engine, want string) {
	t.Helper()
	if got := e.Layout(); got != want {
		t.Fatalf("expected layout %s, got %s", want, got)
	}
}

func TestNewRejectsEmptyGrid(t *testing.T) {
	for _, dims := range [][2]int{{0, 4}, {8, 0}, {-1, -1}} {
		if _, err := New(dims[0], dims[1]); !errors.Is(err, ErrInvalidGrid) {
			t.Fatalf("expected ErrInvalidGrid for %v, got %v", dims, err)
		}
	}
}

func TestAddFirstPaneClaimsGrid(t *testing.T) {
	e := newEngine(t, 8, 4)
	id, effects := mustAdd(t, e, "a")

	if got := rectOf(t, e, id); got != (Rect{Width: 8, Height: 4}) {
		t.Fatalf("expected full-grid rect, got %s", got)
	}
	expectSelected(t, e, id)
	if len(effects) != 2 {
		t.Fatalf("expected mount+focus effects, got %+v", effects)
	}
	if effects[0].Kind != EffectMount || effects[0].Index != 0 || effects[0].Title != "a" || effects[0].Content != "content:a" {
		t.Fatalf("unexpected mount effect %+v", effects[0])
	}
	if effects[1].Kind != EffectFocus || effects[1].Pane != id || effects[1].Previous != 0 {
		t.Fatalf("unexpected focus effect %+v", effects[1])
	}
}

func TestHorizontalSplitKeepsSelection(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	e.SetLastSplitAxis(AxisHorizontal)
	second, effects := mustAdd(t, e, "b")

	if got := rectOf(t, e, first); got != (Rect{Row: 0, Col: 0, Width: 4, Height: 4}) {
		t.Fatalf("expected first pane 0,0:4x4, got %s", got)
	}
	if got := rectOf(t, e, second); got != (Rect{Row: 0, Col: 4, Width: 4, Height: 4}) {
		t.Fatalf("expected second pane 0,4:4x4, got %s", got)
	}
	expectSelected(t, e, first)
	expectLayout(t, e, "h(1@0,0:4x4 2@0,4:4x4)")

	want := []Effect{
		{Kind: EffectResize, Pane: first, Title: "a", Content: "content:a", Rect: Rect{Width: 4, Height: 4}},
		{Kind: EffectMount, Pane: second, Title: "b", Content: "content:b", Rect: Rect{Col: 4, Width: 4, Height: 4}, Index: 1},
	}
	if !reflect.DeepEqual(effects, want) {
		t.Fatalf("unexpected effects\nwant %+v\ngot  %+v", want, effects)
	}
}

func TestVerticalSplitPlacesPaneBelow(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	e.SetLastSplitAxis(AxisVertical)
	second, _ := mustAdd(t, e, "b")

	if got := rectOf(t, e, first); got != (Rect{Width: 8, Height: 2}) {
		t.Fatalf("expected first pane 0,0:8x2, got %s", got)
	}
	if got := rectOf(t, e, second); got != (Rect{Row: 2, Width: 8, Height: 2}) {
		t.Fatalf("expected second pane 2,0:8x2, got %s", got)
	}
	if e.LastSplitAxis() != AxisVertical {
		t.Fatalf("expected vertical axis to stick, got %s", e.LastSplitAxis())
	}
}

func TestRemoveRestoresFullGrid(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")

	effects := mustRemove(t, e, first)

	if e.Len() != 1 {
		t.Fatalf("expected one pane left, got %d", e.Len())
	}
	if got := rectOf(t, e, second); got != (Rect{Width: 8, Height: 4}) {
		t.Fatalf("expected survivor to cover the grid, got %s", got)
	}
	if p, ok := e.PaneAt(Coord{}); !ok || p.ID != second {
		t.Fatalf("expected survivor at origin (0,0), got %+v (ok=%v)", p, ok)
	}
	expectSelected(t, e, second)
	if len(effects) != 3 ||
		effects[0].Kind != EffectUnmount || effects[0].Pane != first ||
		effects[1].Kind != EffectResize || effects[1].Pane != second ||
		effects[2].Kind != EffectFocus || effects[2].Pane != second || effects[2].Previous != first {
		t.Fatalf("unexpected effects %+v", effects)
	}
}

func TestRemoveUnselectedPaneKeepsFocus(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")

	effects := mustRemove(t, e, second)
	expectSelected(t, e, first)
	for _, eff := range effects {
		if eff.Kind == EffectFocus {
			t.Fatalf("expected no focus change, got %+v", eff)
		}
	}
}

func TestRemoveLastPaneEmptiesGrid(t *testing.T) {
	e := newEngine(t, 8, 4)
	id, _ := mustAdd(t, e, "a")

	effects := mustRemove(t, e, id)
	if !e.Empty() {
		t.Fatalf("expected empty grid")
	}
	expectSelected(t, e, 0)
	expectLayout(t, e, "()")
	if len(effects) != 2 || effects[0].Kind != EffectUnmount || effects[1].Kind != EffectFocus || effects[1].Pane != 0 {
		t.Fatalf("unexpected effects %+v", effects)
	}

	again, _ := mustAdd(t, e, "b")
	if got := rectOf(t, e, again); got != (Rect{Width: 8, Height: 4}) {
		t.Fatalf("expected re-added pane to cover the grid, got %s", got)
	}
}

func TestGridExhausted(t *testing.T) {
	e := newEngine(t, 2, 1)
	mustAdd(t, e, "a")
	mustAdd(t, e, "b")
	before := e.Layout()

	id, effects, err := e.AddPane("c", nil)
	if !errors.Is(err, ErrGridExhausted) {
		t.Fatalf("expected ErrGridExhausted, got %v", err)
	}
	if id != 0 || effects != nil {
		t.Fatalf("expected no id or effects, got %d %+v", id, effects)
	}
	if e.Len() != 2 || e.Layout() != before {
		t.Fatalf("expected state unchanged, got %d panes %s", e.Len(), e.Layout())
	}
}

func TestSingleCellGridIsImmediatelyFull(t *testing.T) {
	e := newEngine(t, 1, 1)
	mustAdd(t, e, "a")
	if _, _, err := e.AddPane("b", nil); !errors.Is(err, ErrGridExhausted) {
		t.Fatalf("expected ErrGridExhausted, got %v", err)
	}
}

func TestNestedRemoveMergesOnlyImmediateSibling(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")
	e.Select(second)
	e.SetLastSplitAxis(AxisVertical)
	third, _ := mustAdd(t, e, "c")
	expectLayout(t, e, "h(1@0,0:4x4 v(2@0,4:4x2 3@2,4:4x2))")

	mustRemove(t, e, third)
	expectLayout(t, e, "h(1@0,0:4x4 2@0,4:4x4)")
	if got := rectOf(t, e, first); got != (Rect{Width: 4, Height: 4}) {
		t.Fatalf("expected outer pane untouched, got %s", got)
	}
}

func TestRemoveGrowsWholeSiblingSubtree(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")
	e.Select(second)
	e.SetLastSplitAxis(AxisVertical)
	third, _ := mustAdd(t, e, "c")
	e.Select(first)

	effects := mustRemove(t, e, first)
	expectLayout(t, e, "v(2@0,0:8x2 3@2,0:8x2)")
	expectSelected(t, e, second)

	resized := map[PaneID]Rect{}
	for _, eff := range effects {
		if eff.Kind == EffectResize {
			resized[eff.Pane] = eff.Rect
		}
	}
	want := map[PaneID]Rect{
		second: {Width: 8, Height: 2},
		third:  {Row: 2, Width: 8, Height: 2},
	}
	if !reflect.DeepEqual(resized, want) {
		t.Fatalf("expected resizes %v, got %v", want, resized)
	}
}

func TestRemoveGrowsOnlyAdjacentChildAlongAxis(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")
	e.Select(second)
	third, _ := mustAdd(t, e, "c")
	expectLayout(t, e, "h(1@0,0:4x4 h(2@0,4:2x4 3@0,6:2x4))")

	mustRemove(t, e, first)
	expectLayout(t, e, "h(2@0,0:6x4 3@0,6:2x4)")
	if got := rectOf(t, e, third); got != (Rect{Col: 6, Width: 2, Height: 4}) {
		t.Fatalf("expected far pane untouched, got %s", got)
	}
}

func TestOddExtentSplitKeepsRemainder(t *testing.T) {
	e := newEngine(t, 3, 1)
	first, _ := mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")

	if got := rectOf(t, e, first); got != (Rect{Width: 1, Height: 1}) {
		t.Fatalf("expected first pane 1x1, got %s", got)
	}
	if got := rectOf(t, e, second); got != (Rect{Col: 1, Width: 2, Height: 1}) {
		t.Fatalf("expected second pane to take the remainder 0,1:2x1, got %s", got)
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	cases := []struct {
		name       string
		cols, rows int
		axis       Axis
	}{
		{name: "even width", cols: 8, rows: 4, axis: AxisHorizontal},
		{name: "odd width", cols: 7, rows: 4, axis: AxisHorizontal},
		{name: "even height", cols: 8, rows: 4, axis: AxisVertical},
		{name: "odd height", cols: 8, rows: 5, axis: AxisVertical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine(t, tc.cols, tc.rows)
			mustAdd(t, e, "a")
			e.SetLastSplitAxis(tc.axis)
			mustAdd(t, e, "b")

			before := e.Panes()
			layout := e.Layout()
			id, _ := mustAdd(t, e, "c")
			mustRemove(t, e, id)

			if got := e.Panes(); !reflect.DeepEqual(got, before) {
				t.Fatalf("expected panes restored\nwant %+v\ngot  %+v", before, got)
			}
			expectLayout(t, e, layout)
		})
	}
}

func TestFallbackSplitsLargestPane(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	e.SetLastSplitAxis(AxisVertical)
	second, _ := mustAdd(t, e, "b")
	mustAdd(t, e, "c")
	if got := rectOf(t, e, first); got.Height != 1 {
		t.Fatalf("expected selected pane to be one row tall, got %s", got)
	}

	fourth, effects := mustAdd(t, e, "d")
	if got := rectOf(t, e, second); got != (Rect{Row: 2, Width: 4, Height: 2}) {
		t.Fatalf("expected largest pane split horizontally to 2,0:4x2, got %s", got)
	}
	if got := rectOf(t, e, fourth); got != (Rect{Row: 2, Col: 4, Width: 4, Height: 2}) {
		t.Fatalf("expected new pane at 2,4:4x2, got %s", got)
	}
	expectSelected(t, e, second)
	if e.LastSplitAxis() != AxisVertical {
		t.Fatalf("expected fallback to leave the split axis alone, got %s", e.LastSplitAxis())
	}
	last := effects[len(effects)-1]
	if last.Kind != EffectFocus || last.Pane != second || last.Previous != first {
		t.Fatalf("expected focus to move to the split pane, got %+v", last)
	}
	for _, eff := range effects {
		if eff.Kind == EffectMount && eff.Index != 3 {
			t.Fatalf("expected new pane ranked 3, got %d", eff.Index)
		}
	}
}

func TestFallbackBreaksTiesRowMajor(t *testing.T) {
	e := newEngine(t, 2, 2)
	first, _ := mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")

	third, effects := mustAdd(t, e, "c")
	if got := rectOf(t, e, third); got != (Rect{Row: 1, Width: 1, Height: 1}) {
		t.Fatalf("expected tie broken toward (0,0), new pane at 1,0:1x1, got %s", got)
	}
	expectSelected(t, e, first)
	for _, eff := range effects {
		if eff.Kind == EffectFocus {
			t.Fatalf("expected no focus change when the selected pane is split, got %+v", eff)
		}
	}

	mustAdd(t, e, "d")
	expectSelected(t, e, second)
	if _, _, err := e.AddPane("e", nil); !errors.Is(err, ErrGridExhausted) {
		t.Fatalf("expected ErrGridExhausted on a full 2x2 grid, got %v", err)
	}
}

func TestSelectNextWraps(t *testing.T) {
	e := newEngine(t, 8, 4)
	if effects := e.SelectNext(); effects != nil {
		t.Fatalf("expected no effects on empty grid, got %+v", effects)
	}
	first, _ := mustAdd(t, e, "a")
	if effects := e.SelectNext(); effects != nil {
		t.Fatalf("expected no effects with a single pane, got %+v", effects)
	}
	second, _ := mustAdd(t, e, "b")
	e.Select(second)
	e.SetLastSplitAxis(AxisVertical)
	third, _ := mustAdd(t, e, "c")

	for _, want := range []PaneID{third, first, second} {
		effects := e.SelectNext()
		if len(effects) != 1 || effects[0].Pane != want {
			t.Fatalf("expected focus on %d, got %+v", want, effects)
		}
		expectSelected(t, e, want)
	}
}

func TestSelectAtIgnoresUnknownCoordinates(t *testing.T) {
	e := newEngine(t, 8, 4)
	first, _ := mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")

	if effects := e.SelectAt(Coord{Row: 1, Col: 1}); effects != nil {
		t.Fatalf("expected interior cell to be ignored, got %+v", effects)
	}
	expectSelected(t, e, first)

	effects := e.SelectAt(Coord{Row: 0, Col: 4})
	if len(effects) != 1 || effects[0].Pane != second || effects[0].Previous != first {
		t.Fatalf("unexpected focus effects %+v", effects)
	}
	if effects := e.SelectAt(Coord{Row: 0, Col: 4}); effects != nil {
		t.Fatalf("expected reselecting the same pane to be a no-op, got %+v", effects)
	}
}

func TestPaneContainingResolvesCells(t *testing.T) {
	e := newEngine(t, 8, 4)
	mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")

	p, ok := e.PaneContaining(Coord{Row: 3, Col: 6})
	if !ok || p.ID != second {
		t.Fatalf("expected cell (3,6) inside pane %d, got %+v (ok=%v)", second, p, ok)
	}
	if _, ok := e.PaneContaining(Coord{Row: 4, Col: 0}); ok {
		t.Fatalf("expected cell outside the grid to miss")
	}
}

func TestRemoveUnknownPane(t *testing.T) {
	e := newEngine(t, 8, 4)
	if _, err := e.RemovePane(42); !errors.Is(err, ErrPaneNotFound) {
		t.Fatalf("expected ErrPaneNotFound, got %v", err)
	}
	if _, err := e.RemoveSelected(); !errors.Is(err, ErrPaneNotFound) {
		t.Fatalf("expected ErrPaneNotFound from empty RemoveSelected, got %v", err)
	}
}

func TestRemoveDetectsCorruptTree(t *testing.T) {
	e := newEngine(t, 8, 4)
	mustAdd(t, e, "a")
	second, _ := mustAdd(t, e, "b")

	e.tree.nodes[e.leaf[second]].parent = noNode
	if _, err := e.RemovePane(second); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
}

func TestArenaRecyclesSlots(t *testing.T) {
	e := newEngine(t, 8, 4)
	mustAdd(t, e, "a")
	for i := 0; i < 10; i++ {
		id, _ := mustAdd(t, e, "b")
		mustRemove(t, e, id)
	}
	if got := len(e.tree.nodes); got != 3 {
		t.Fatalf("expected arena to stay at 3 slots, got %d", got)
	}
}
