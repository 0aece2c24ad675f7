package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rustybrooks/dcui/internal/backend"
	"github.com/rustybrooks/dcui/internal/logging/events"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent records a compose file change and refreshes every pane
// showing that file.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if !res.Updated {
		return
	}
	events.Compose.Reload(res.Path, res.File.Revision, res.File.Err)
	if res.Failed {
		m.setError(fmt.Sprintf("watch %s: %v", composeTitle(res.Path), res.File.Err))
	}

	body := composeBody(res.Path, res.File.Data, res.File.Err)
	refreshed := 0
	for _, id := range m.order {
		tc, ok := m.views[id].content.(*textContent)
		if !ok || tc.source != res.Path {
			continue
		}
		tc.setText(body)
		refreshed++
	}
	m.logLine(fmt.Sprintf("reload %s rev %d (%d panes)", res.Path, res.File.Revision, refreshed))
}
