package tiling

import "fmt"

// Validate checks the engine's bookkeeping: every live pane is exactly one
// leaf of the split tree, sibling subtrees are adjacent halves of their
// parent, panes tile the grid with no gaps or overlaps, and the selection
// names a live pane. It returns an error wrapping ErrInvariant on the first
// violation found.
func (e *Engine) Validate() error {
	if e.Empty() {
		if e.tree.root != noNode {
			return invariantf("empty grid still has root node %d", e.tree.root)
		}
		if e.selected != 0 {
			return invariantf("empty grid has selection %d", e.selected)
		}
		if len(e.leaf) != 0 {
			return invariantf("empty grid has %d leaf entries", len(e.leaf))
		}
		return nil
	}

	if !e.tree.valid(e.tree.root) || e.tree.nodes[e.tree.root].parent != noNode {
		return invariantf("bad root node %d", e.tree.root)
	}
	if _, ok := e.panes[e.selected]; !ok {
		return invariantf("selection %d is not a live pane", e.selected)
	}

	bounds := make(map[int]Rect, len(e.tree.nodes))
	seen := make(map[PaneID]bool, len(e.panes))

	// Post-order walk: children are visited before their parent so the
	// parent can check that its two halves abut.
	type frame struct {
		idx     int
		visited bool
	}
	stack := []frame{{idx: e.tree.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := e.tree.nodes[f.idx]

		if n.isLeaf() {
			p, ok := e.panes[n.pane]
			if !ok {
				return invariantf("leaf %d holds unknown pane %d", f.idx, n.pane)
			}
			if seen[n.pane] {
				return invariantf("pane %d appears twice in the tree", n.pane)
			}
			seen[n.pane] = true
			if e.leaf[n.pane] != f.idx {
				return invariantf("pane %d indexed at %d but found at leaf %d", n.pane, e.leaf[n.pane], f.idx)
			}
			bounds[f.idx] = p.Rect
			continue
		}

		if !f.visited {
			stack = append(stack, frame{idx: f.idx, visited: true})
			for _, c := range n.children {
				if !e.tree.valid(c) {
					return invariantf("node %d has invalid child %d", f.idx, c)
				}
				if e.tree.nodes[c].parent != f.idx {
					return invariantf("node %d child %d points to parent %d", f.idx, c, e.tree.nodes[c].parent)
				}
				stack = append(stack, frame{idx: c})
			}
			continue
		}

		a, b := bounds[n.children[0]], bounds[n.children[1]]
		merged, ok := joinHalves(a, b, n.axis)
		if !ok {
			return invariantf("node %d (%s) children %s and %s are not adjacent halves", f.idx, n.axis, a, b)
		}
		bounds[f.idx] = merged
	}

	if len(seen) != len(e.panes) {
		return invariantf("tree holds %d panes, table holds %d", len(seen), len(e.panes))
	}
	if root := bounds[e.tree.root]; root != (Rect{Width: e.cols, Height: e.rows}) {
		return invariantf("root covers %s, want the full %dx%d grid", root, e.cols, e.rows)
	}
	return e.checkCoverage()
}

// joinHalves returns the union of two rectangles that sit side by side
// along the axis with the same perpendicular extent.
func joinHalves(a, b Rect, axis Axis) (Rect, bool) {
	if axis == AxisVertical {
		if a.Col != b.Col || a.Width != b.Width || a.Row+a.Height != b.Row {
			return Rect{}, false
		}
		return Rect{Row: a.Row, Col: a.Col, Width: a.Width, Height: a.Height + b.Height}, true
	}
	if a.Row != b.Row || a.Height != b.Height || a.Col+a.Width != b.Col {
		return Rect{}, false
	}
	return Rect{Row: a.Row, Col: a.Col, Width: a.Width + b.Width, Height: a.Height}, true
}

// checkCoverage verifies every grid cell belongs to exactly one pane.
func (e *Engine) checkCoverage() error {
	owner := make([]PaneID, e.cols*e.rows)
	for _, p := range e.panes {
		r := p.Rect
		if r.Width < 1 || r.Height < 1 || r.Row < 0 || r.Col < 0 ||
			r.Row+r.Height > e.rows || r.Col+r.Width > e.cols {
			return invariantf("pane %d rect %s outside the %dx%d grid", p.ID, r, e.cols, e.rows)
		}
		for row := r.Row; row < r.Row+r.Height; row++ {
			for col := r.Col; col < r.Col+r.Width; col++ {
				cell := row*e.cols + col
				if owner[cell] != 0 {
					return invariantf("cell (%d,%d) owned by panes %d and %d", row, col, owner[cell], p.ID)
				}
				owner[cell] = p.ID
			}
		}
	}
	for cell, id := range owner {
		if id == 0 {
			return invariantf("cell (%d,%d) is not covered", cell/e.cols, cell%e.cols)
		}
	}
	return nil
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvariant)
}
