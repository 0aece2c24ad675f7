package tiling

import "errors"

var (
	// ErrGridExhausted is returned by AddPane when no pane has two or more
	// cells along any axis. The content was not placed.
	ErrGridExhausted = errors.New("grid exhausted: no pane can be split")
	// ErrPaneNotFound is returned when an operation names a pane that is not live.
	ErrPaneNotFound = errors.New("pane not found")
	// ErrInvalidGrid is returned by New for non-positive grid dimensions.
	ErrInvalidGrid = errors.New("invalid grid size")
	// ErrInvariant reports corrupted bookkeeping between the pane table and
	// the split tree. It indicates a bug, not a recoverable condition.
	ErrInvariant = errors.New("tiling invariant violated")
)
