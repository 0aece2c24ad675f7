package ui

import (
	"fmt"
	"io"
	"slices"

	"github.com/rustybrooks/dcui/internal/logging/events"
	"github.com/rustybrooks/dcui/internal/tiling"
)

// applyEffects brings the pane views in line with the engine. Views are
// only ever created, moved or destroyed here.
func (m *Model) applyEffects(effects []tiling.Effect, reason events.PaneReason) {
	if len(effects) == 0 {
		return
	}
	reorder := false
	for _, eff := range effects {
		switch eff.Kind {
		case tiling.EffectMount:
			content, ok := eff.Content.(Content)
			if !ok || content == nil {
				content = newTextContent("")
			}
			m.views[eff.Pane] = &paneView{
				id:      eff.Pane,
				title:   eff.Title,
				content: content,
				rect:    eff.Rect,
			}
			idx := min(max(eff.Index, 0), len(m.order))
			m.order = slices.Insert(m.order, idx, eff.Pane)
			events.Pane.Add(uint64(eff.Pane), eff.Title, eff.Rect.String(), eff.Index)
		case tiling.EffectUnmount:
			if v, ok := m.views[eff.Pane]; ok {
				closeContent(v.content)
				delete(m.views, eff.Pane)
			}
			if i := slices.Index(m.order, eff.Pane); i >= 0 {
				m.order = slices.Delete(m.order, i, i+1)
			}
			events.Pane.Remove(uint64(eff.Pane), eff.Title)
		case tiling.EffectResize:
			if v, ok := m.views[eff.Pane]; ok {
				v.rect = eff.Rect
				reorder = true
			}
			events.Pane.Resize(uint64(eff.Pane), eff.Rect.String())
		case tiling.EffectFocus:
			if v, ok := m.views[eff.Previous]; ok {
				v.selected = false
			}
			if v, ok := m.views[eff.Pane]; ok {
				v.selected = true
			}
			m.selected = eff.Pane
			events.Pane.Focus(uint64(eff.Pane), uint64(eff.Previous), reason)
		}
		m.logLine(describeEffect(eff))
	}
	if reorder {
		m.sortOrder()
	}
	layout := m.engine.Layout()
	events.Pane.Layout(layout)
	m.logLine("layout " + layout)
}

// sortOrder keeps m.order in row-major order of pane origin. Growing a pane
// towards the top or left moves its origin.
func (m *Model) sortOrder() {
	slices.SortStableFunc(m.order, func(a, b tiling.PaneID) int {
		ra, rb := m.views[a].rect, m.views[b].rect
		switch {
		case ra.Origin().Less(rb.Origin()):
			return -1
		case rb.Origin().Less(ra.Origin()):
			return 1
		default:
			return 0
		}
	})
}

func (m *Model) logLine(line string) {
	m.layoutLog = append(m.layoutLog, line)
	if over := len(m.layoutLog) - maxLayoutLog; over > 0 {
		m.layoutLog = append(m.layoutLog[:0], m.layoutLog[over:]...)
	}
	if m.showDebug {
		m.refreshDebug()
	}
}

func describeEffect(eff tiling.Effect) string {
	switch eff.Kind {
	case tiling.EffectMount:
		return fmt.Sprintf("mount  #%d %q at %s index %d", eff.Pane, eff.Title, eff.Rect, eff.Index)
	case tiling.EffectUnmount:
		return fmt.Sprintf("unmount #%d %q", eff.Pane, eff.Title)
	case tiling.EffectResize:
		return fmt.Sprintf("resize #%d to %s", eff.Pane, eff.Rect)
	case tiling.EffectFocus:
		return fmt.Sprintf("focus  #%d (was #%d)", eff.Pane, eff.Previous)
	default:
		return eff.Kind.String()
	}
}

func closeContent(c Content) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}
