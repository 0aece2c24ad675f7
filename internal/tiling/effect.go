package tiling

import "fmt"

// EffectKind identifies the change a host must apply.
type EffectKind int

const (
	// EffectMount asks the host to materialise a new pane at Rect, ordered at Index.
	EffectMount EffectKind = iota + 1
	// EffectUnmount asks the host to release the pane's content.
	EffectUnmount
	// EffectResize asks the host to move/resize an existing pane to Rect.
	EffectResize
	// EffectFocus reports a selection change from Previous to Pane. Either may
	// be zero when the grid was or became empty.
	EffectFocus
)

func (k EffectKind) String() string {
	switch k {
	case EffectMount:
		return "mount"
	case EffectUnmount:
		return "unmount"
	case EffectResize:
		return "resize"
	case EffectFocus:
		return "focus"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Effect is one layout delta produced by an Engine operation.
type Effect struct {
	Kind     EffectKind
	Pane     PaneID
	Previous PaneID
	Title    string
	Content  Content
	Rect     Rect
	// Index is the new pane's rank among all pane origins in row-major
	// order. Only set for EffectMount.
	Index int
}

func mountEffect(p *Pane, index int) Effect {
	return Effect{Kind: EffectMount, Pane: p.ID, Title: p.Title, Content: p.Content, Rect: p.Rect, Index: index}
}

func unmountEffect(p *Pane) Effect {
	return Effect{Kind: EffectUnmount, Pane: p.ID, Title: p.Title, Content: p.Content, Rect: p.Rect}
}

func resizeEffect(p *Pane) Effect {
	return Effect{Kind: EffectResize, Pane: p.ID, Title: p.Title, Content: p.Content, Rect: p.Rect}
}

func focusEffect(next, prev PaneID) Effect {
	return Effect{Kind: EffectFocus, Pane: next, Previous: prev}
}
