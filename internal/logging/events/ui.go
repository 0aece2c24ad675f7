package events

import "github.com/rustybrooks/dcui/internal/logging"

type UITracer struct{}

type JumpTracer struct{}

type ActionTracer struct{}

var (
	UI     = UITracer{}
	Jump   = JumpTracer{}
	Action = ActionTracer{}
)

func (UITracer) Key(key, action string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "action": action})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Toggle(view string, visible bool) {
	logging.Trace("ui.toggle", map[string]interface{}{"view": view, "visible": visible})
}

func (JumpTracer) Open(panes int) {
	logging.Trace("jump.open", map[string]interface{}{"panes": panes})
}

func (JumpTracer) Query(query string, matches int) {
	logging.Trace("jump.query", map[string]interface{}{"query": query, "matches": matches})
}

func (JumpTracer) Cancel(query string) {
	logging.Trace("jump.cancel", map[string]interface{}{"query": query})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

type ComposeTracer struct{}

var Compose = ComposeTracer{}

func (ComposeTracer) Reload(path string, revision int, err error) {
	payload := map[string]interface{}{"path": path, "revision": revision}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("compose.reload", payload)
}
