// Package tiling partitions a fixed grid of cells into rectangular panes.
//
// The Engine owns three pieces of state that always change together:
//   - the pane table, keyed by a stable PaneID,
//   - a binary split tree stored as an arena of nodes, where every interior
//     node records the axis of the split that produced its two children,
//   - the selected (focused) pane.
//
// Panes are only ever created by AddPane, which splits an existing pane in
// half (or claims the whole grid when it is empty), and only ever destroyed by
// RemovePane, which merges the freed rectangle back into the sibling subtree
// recorded in the split tree. Because of that the leaves of the tree always
// tile the grid exactly: no overlaps and no gaps.
//
// The engine performs no I/O and never renders anything. Every mutating
// operation returns a list of Effects (mount, unmount, resize, focus) that
// the host UI applies to its own widgets, in order.
//
// An Engine is not safe for concurrent use. Hosts that call it from more than
// one goroutine must hold a single lock around each call, since a split or a
// merge touches several panes and tree nodes at once.
package tiling
