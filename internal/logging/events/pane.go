package events

import "github.com/rustybrooks/dcui/internal/logging"

type PaneTracer struct{}

type PaneReason string

const (
	PaneReasonKey   PaneReason = "key"
	PaneReasonMouse PaneReason = "mouse"
	PaneReasonJump  PaneReason = "jump"
)

var Pane = PaneTracer{}

func (PaneTracer) Add(id uint64, title string, rect string, index int) {
	logging.Trace("pane.add", map[string]interface{}{"id": id, "title": title, "rect": rect, "index": index})
}

func (PaneTracer) Remove(id uint64, title string) {
	logging.Trace("pane.remove", map[string]interface{}{"id": id, "title": title})
}

func (PaneTracer) Resize(id uint64, rect string) {
	logging.Trace("pane.resize", map[string]interface{}{"id": id, "rect": rect})
}

func (PaneTracer) Focus(id, previous uint64, reason PaneReason) {
	logging.Trace("pane.focus", map[string]interface{}{"id": id, "previous": previous, "reason": string(reason)})
}

func (PaneTracer) Exhausted(title string, panes int) {
	logging.Trace("pane.exhausted", map[string]interface{}{"title": title, "panes": panes})
}

func (PaneTracer) Axis(axis string) {
	logging.Trace("pane.axis", map[string]interface{}{"axis": axis})
}

func (PaneTracer) Layout(layout string) {
	logging.Trace("pane.layout", map[string]interface{}{"layout": layout})
}
