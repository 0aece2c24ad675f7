package dispatcher

import (
	"github.com/rustybrooks/dcui/internal/backend"
	"github.com/rustybrooks/dcui/internal/state"
)

type Result struct {
	Path    string
	Updated bool
	Failed  bool
	File    state.ComposeFile
}

type Dispatcher struct {
	compose state.ComposeStore
}

func New(c state.ComposeStore) *Dispatcher {
	return &Dispatcher{compose: c}
}

// Handle records a watcher event in the compose store. Repeated errors for
// a file that already failed are not reported as updates.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	res := Result{Path: evt.Path}
	if evt.Path == "" {
		return res
	}
	if evt.Err != nil {
		prev, ok := d.compose.Entry(evt.Path)
		if ok && prev.Err != nil && prev.Err.Error() == evt.Err.Error() {
			res.Failed = true
			res.File = prev
			return res
		}
	}
	res.File = d.compose.Set(state.ComposeFile{
		Path:    evt.Path,
		Data:    evt.Data,
		ModTime: evt.ModTime,
		Err:     evt.Err,
	})
	res.Updated = true
	res.Failed = evt.Err != nil
	return res
}
