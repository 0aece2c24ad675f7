package tiling

import (
	"fmt"
	"slices"
)

// PaneID identifies a pane for its whole lifetime. Zero means "no pane".
type PaneID uint64

// Content is an opaque handle supplied by the host. The engine stores it and
// hands it back in effects; it never inspects it.
type Content = any

// Pane is a snapshot of one live pane.
type Pane struct {
	ID      PaneID
	Title   string
	Content Content
	Rect    Rect
}

// Engine tiles a cols x rows grid with panes.
type Engine struct {
	cols, rows int
	tree       tree
	panes      map[PaneID]*Pane
	leaf       map[PaneID]int
	selected   PaneID
	axis       Axis
	nextID     PaneID
}

// New returns an empty engine for a grid of cols x rows cells.
func New(cols, rows int) (*Engine, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%dx%d: %w", cols, rows, ErrInvalidGrid)
	}
	return &Engine{
		cols:  cols,
		rows:  rows,
		tree:  newTree(),
		panes: make(map[PaneID]*Pane),
		leaf:  make(map[PaneID]int),
		axis:  AxisHorizontal,
	}, nil
}

// Grid returns the grid dimensions.
func (e *Engine) Grid() (cols, rows int) {
	return e.cols, e.rows
}

// Len returns the number of live panes.
func (e *Engine) Len() int {
	return len(e.panes)
}

// Empty reports whether the grid holds no panes.
func (e *Engine) Empty() bool {
	return len(e.panes) == 0
}

// LastSplitAxis returns the axis used for the next split of the selected pane.
func (e *Engine) LastSplitAxis() Axis {
	return e.axis
}

// SetLastSplitAxis records the axis for subsequent splits. It does not
// change the layout.
func (e *Engine) SetLastSplitAxis(a Axis) {
	if a != AxisVertical {
		a = AxisHorizontal
	}
	e.axis = a
}

// Selected returns the focused pane, if any.
func (e *Engine) Selected() (PaneID, bool) {
	return e.selected, e.selected != 0
}

// Pane returns a snapshot of the pane with the given id.
func (e *Engine) Pane(id PaneID) (Pane, bool) {
	p, ok := e.panes[id]
	if !ok {
		return Pane{}, false
	}
	return *p, true
}

// PaneAt returns the pane whose top-left corner is c.
func (e *Engine) PaneAt(c Coord) (Pane, bool) {
	for _, p := range e.panes {
		if p.Rect.Origin() == c {
			return *p, true
		}
	}
	return Pane{}, false
}

// PaneContaining returns the pane covering cell c. Hosts use it to resolve a
// pointer position to a pane before calling SelectAt.
func (e *Engine) PaneContaining(c Coord) (Pane, bool) {
	for _, p := range e.panes {
		if p.Rect.Contains(c) {
			return *p, true
		}
	}
	return Pane{}, false
}

// Panes returns snapshots of every live pane in row-major order of origin.
func (e *Engine) Panes() []Pane {
	out := make([]Pane, 0, len(e.panes))
	for _, p := range e.panes {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b Pane) int {
		return compareCoord(a.Rect.Origin(), b.Rect.Origin())
	})
	return out
}

// AddPane places new content on the grid. The first pane claims the whole
// grid. Later panes split the selected pane along LastSplitAxis; when that
// is impossible the largest splittable pane is split along its longer side
// and becomes selected. ErrGridExhausted is returned, with no state change,
// when no pane can be split.
func (e *Engine) AddPane(title string, content Content) (PaneID, []Effect, error) {
	if e.Empty() {
		return e.addFirst(title, content)
	}

	if sel, ok := e.panes[e.selected]; ok && sel.Rect.canSplit(e.axis) {
		id, effects := e.split(sel, e.axis, title, content)
		return id, effects, nil
	}

	target := e.largestSplittable()
	if target == nil {
		return 0, nil, ErrGridExhausted
	}
	axis := AxisHorizontal
	if target.Rect.Width < target.Rect.Height {
		axis = AxisVertical
	}
	id, effects := e.split(target, axis, title, content)
	if target.ID != e.selected {
		effects = append(effects, e.focus(target.ID))
	}
	return id, effects, nil
}

func (e *Engine) addFirst(title string, content Content) (PaneID, []Effect, error) {
	p := &Pane{
		ID:      e.allocID(),
		Title:   title,
		Content: content,
		Rect:    Rect{Width: e.cols, Height: e.rows},
	}
	e.panes[p.ID] = p
	e.tree.root = e.tree.alloc(leafNode(noNode, p.ID))
	e.leaf[p.ID] = e.tree.root
	prev := e.selected
	e.selected = p.ID
	return p.ID, []Effect{mountEffect(p, 0), focusEffect(p.ID, prev)}, nil
}

// split divides p along axis. The caller guarantees p can be split.
func (e *Engine) split(p *Pane, axis Axis, title string, content Content) (PaneID, []Effect) {
	kept, carved := p.Rect.split(axis)
	np := &Pane{ID: e.allocID(), Title: title, Content: content, Rect: carved}
	p.Rect = kept
	e.panes[np.ID] = np

	first, second := e.tree.splitLeaf(e.leaf[p.ID], axis, np.ID)
	e.leaf[p.ID] = first
	e.leaf[np.ID] = second

	return np.ID, []Effect{
		resizeEffect(p),
		mountEffect(np, e.rank(np.Rect.Origin())),
	}
}

// largestSplittable returns the splittable pane with the strictly largest
// area, breaking ties by the earliest row-major origin.
func (e *Engine) largestSplittable() *Pane {
	var best *Pane
	for _, p := range e.panes {
		if !p.Rect.splittable() {
			continue
		}
		switch {
		case best == nil:
			best = p
		case p.Rect.Area() > best.Rect.Area():
			best = p
		case p.Rect.Area() == best.Rect.Area() && p.Rect.Origin().Less(best.Rect.Origin()):
			best = p
		}
	}
	return best
}

// RemoveSelected removes the focused pane.
func (e *Engine) RemoveSelected() ([]Effect, error) {
	if e.selected == 0 {
		return nil, fmt.Errorf("remove selected: %w", ErrPaneNotFound)
	}
	return e.RemovePane(e.selected)
}

// RemovePane deletes a pane and merges its rectangle into the sibling
// subtree it was split from. Panes of that subtree adjacent to the freed
// space grow over it; the rest of the layout is untouched. When the removed
// pane was selected, focus moves to the first grown pane.
func (e *Engine) RemovePane(id PaneID) ([]Effect, error) {
	p, ok := e.panes[id]
	if !ok {
		return nil, fmt.Errorf("remove pane %d: %w", id, ErrPaneNotFound)
	}
	leafIdx, ok := e.leaf[id]
	if !ok || !e.tree.valid(leafIdx) {
		return nil, fmt.Errorf("remove pane %d: no leaf: %w", id, ErrInvariant)
	}

	if len(e.panes) == 1 {
		if leafIdx != e.tree.root {
			return nil, fmt.Errorf("remove pane %d: last pane is not the root: %w", id, ErrInvariant)
		}
		e.tree.release(leafIdx)
		e.tree.root = noNode
		delete(e.panes, id)
		delete(e.leaf, id)
		prev := e.selected
		e.selected = 0
		return []Effect{unmountEffect(p), focusEffect(0, prev)}, nil
	}

	sibling, axis, removedFirst, err := e.tree.collapse(leafIdx)
	if err != nil {
		return nil, fmt.Errorf("remove pane %d: %w", id, err)
	}
	delete(e.panes, id)
	delete(e.leaf, id)

	s := mergeSide(axis, removedFirst)
	grown := make([]*Pane, 0, 2)
	for _, gid := range e.tree.edgeLeaves(sibling, s) {
		gp := e.panes[gid]
		gp.Rect = gp.Rect.grow(s, p.Rect)
		grown = append(grown, gp)
	}
	slices.SortFunc(grown, func(a, b *Pane) int {
		return compareCoord(a.Rect.Origin(), b.Rect.Origin())
	})

	effects := make([]Effect, 0, len(grown)+2)
	effects = append(effects, unmountEffect(p))
	for _, gp := range grown {
		effects = append(effects, resizeEffect(gp))
	}
	if e.selected == id {
		effects = append(effects, e.focus(grown[0].ID))
	}
	return effects, nil
}

// SelectNext moves focus to the next pane in row-major order, wrapping.
func (e *Engine) SelectNext() []Effect {
	if e.Empty() {
		return nil
	}
	order := e.Panes()
	next := order[0].ID
	for i, p := range order {
		if p.ID == e.selected {
			next = order[(i+1)%len(order)].ID
			break
		}
	}
	if next == e.selected {
		return nil
	}
	return []Effect{e.focus(next)}
}

// SelectAt focuses the pane whose origin is c. Unknown coordinates are ignored.
func (e *Engine) SelectAt(c Coord) []Effect {
	p, ok := e.PaneAt(c)
	if !ok {
		return nil
	}
	return e.Select(p.ID)
}

// Select focuses the pane with the given id. Unknown ids are ignored.
func (e *Engine) Select(id PaneID) []Effect {
	if _, ok := e.panes[id]; !ok || id == e.selected {
		return nil
	}
	return []Effect{e.focus(id)}
}

func (e *Engine) focus(id PaneID) Effect {
	prev := e.selected
	e.selected = id
	return focusEffect(id, prev)
}

func (e *Engine) allocID() PaneID {
	e.nextID++
	return e.nextID
}

// rank counts live panes whose origin precedes c in row-major order.
func (e *Engine) rank(c Coord) int {
	n := 0
	for _, p := range e.panes {
		if p.Rect.Origin().Less(c) {
			n++
		}
	}
	return n
}

// Layout renders the split tree, e.g. "h(1@0,0:4x4 2@0,4:4x4)".
func (e *Engine) Layout() string {
	if e.tree.root == noNode {
		return "()"
	}
	return e.tree.render(e.tree.root, func(id PaneID) string {
		p, ok := e.panes[id]
		if !ok {
			return fmt.Sprintf("%d@?", id)
		}
		return fmt.Sprintf("%d@%s", id, p.Rect)
	})
}

func compareCoord(a, b Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
