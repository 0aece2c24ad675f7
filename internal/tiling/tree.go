package tiling

import (
	"fmt"
	"strings"
)

const noNode = -1

// node is one slot of the split-tree arena. A leaf holds a pane; an interior
// node holds exactly two children produced by one split along axis. The
// first child is always the left/top half.
type node struct {
	parent   int
	children [2]int
	axis     Axis
	pane     PaneID
	free     bool
}

func (n node) isLeaf() bool {
	return n.children[0] == noNode
}

func leafNode(parent int, pane PaneID) node {
	return node{parent: parent, children: [2]int{noNode, noNode}, pane: pane}
}

// tree is an index-addressed arena with a free list. Slots are recycled so
// the arena does not grow across repeated split/merge cycles.
type tree struct {
	nodes []node
	free  []int
	root  int
}

func newTree() tree {
	return tree{root: noNode}
}

func (t *tree) alloc(n node) int {
	if k := len(t.free); k > 0 {
		idx := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *tree) release(idx int) {
	t.nodes[idx] = node{parent: noNode, children: [2]int{noNode, noNode}, free: true}
	t.free = append(t.free, idx)
}

func (t *tree) valid(idx int) bool {
	return idx >= 0 && idx < len(t.nodes) && !t.nodes[idx].free
}

// splitLeaf turns the leaf at idx into an interior node whose children are
// the original pane and the new pane. It returns the two new leaf indices.
func (t *tree) splitLeaf(idx int, axis Axis, newPane PaneID) (int, int) {
	parent := t.nodes[idx].parent
	kept := t.nodes[idx].pane
	first := t.alloc(leafNode(idx, kept))
	second := t.alloc(leafNode(idx, newPane))
	t.nodes[idx] = node{parent: parent, children: [2]int{first, second}, axis: axis}
	return first, second
}

// collapse removes the leaf at idx and lets its sibling subtree take the
// parent's place. It returns the sibling index, the parent's split axis and
// whether the removed leaf was the first child.
func (t *tree) collapse(idx int) (sibling int, axis Axis, removedFirst bool, err error) {
	parentIdx := t.nodes[idx].parent
	if !t.valid(parentIdx) {
		return noNode, 0, false, fmt.Errorf("leaf %d has no parent: %w", idx, ErrInvariant)
	}
	parent := t.nodes[parentIdx]
	switch idx {
	case parent.children[0]:
		sibling, removedFirst = parent.children[1], true
	case parent.children[1]:
		sibling = parent.children[0]
	default:
		return noNode, 0, false, fmt.Errorf("leaf %d missing from parent %d: %w", idx, parentIdx, ErrInvariant)
	}
	if !t.valid(sibling) {
		return noNode, 0, false, fmt.Errorf("leaf %d has no sibling: %w", idx, ErrInvariant)
	}

	grand := parent.parent
	t.nodes[sibling].parent = grand
	if grand == noNode {
		t.root = sibling
	} else {
		g := &t.nodes[grand]
		if g.children[0] == parentIdx {
			g.children[0] = sibling
		} else {
			g.children[1] = sibling
		}
	}
	t.release(idx)
	t.release(parentIdx)
	return sibling, parent.axis, removedFirst, nil
}

// leaves returns the panes under idx in tree order (left/top first).
func (t *tree) leaves(idx int) []PaneID {
	var out []PaneID
	stack := []int{idx}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[cur]
		if n.isLeaf() {
			out = append(out, n.pane)
			continue
		}
		stack = append(stack, n.children[1], n.children[0])
	}
	return out
}

// edgeLeaves returns the panes under idx whose rectangles touch the given
// side of the subtree. Children split along the side's axis contribute only
// the child facing that side; children split across it both touch it.
func (t *tree) edgeLeaves(idx int, s side) []PaneID {
	var out []PaneID
	stack := []int{idx}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[cur]
		if n.isLeaf() {
			out = append(out, n.pane)
			continue
		}
		if !s.along(n.axis) {
			stack = append(stack, n.children[1], n.children[0])
			continue
		}
		if s == sideLeft || s == sideTop {
			stack = append(stack, n.children[0])
		} else {
			stack = append(stack, n.children[1])
		}
	}
	return out
}

// render writes the subtree as "h(a b)" / "v(a b)" with leaves formatted by fn.
func (t *tree) render(idx int, fn func(PaneID) string) string {
	var b strings.Builder
	type frame struct {
		idx  int
		text string
	}
	stack := []frame{{idx: idx}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.idx == noNode {
			b.WriteString(f.text)
			continue
		}
		n := t.nodes[f.idx]
		if n.isLeaf() {
			b.WriteString(fn(n.pane))
			continue
		}
		b.WriteString(n.axis.short())
		b.WriteByte('(')
		stack = append(stack,
			frame{idx: noNode, text: ")"},
			frame{idx: n.children[1]},
			frame{idx: noNode, text: " "},
			frame{idx: n.children[0]},
		)
	}
	return b.String()
}
