package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rustybrooks/dcui/internal/logging/events"
	"github.com/rustybrooks/dcui/internal/tiling"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg := msg.(tea.KeyMsg)
	if m.jump != nil {
		return m.handleJumpKey(keyMsg)
	}
	if m.showDebug {
		return m.handleDebugKey(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		events.UI.Key(keyMsg.String(), actionQuit)
		return tea.Quit
	case key.Matches(keyMsg, m.keys.NextPane):
		events.UI.Key(keyMsg.String(), actionNextPane)
		m.applyEffects(m.engine.SelectNext(), events.PaneReasonKey)
	case key.Matches(keyMsg, m.keys.SplitHorizontal):
		events.UI.Key(keyMsg.String(), actionSplitHorizontal)
		m.setSplitAxis(tiling.AxisHorizontal)
	case key.Matches(keyMsg, m.keys.SplitVertical):
		events.UI.Key(keyMsg.String(), actionSplitVertical)
		m.setSplitAxis(tiling.AxisVertical)
	case key.Matches(keyMsg, m.keys.AddPane):
		events.UI.Key(keyMsg.String(), actionAddPane)
		return m.requestPane()
	case key.Matches(keyMsg, m.keys.RemovePane):
		events.UI.Key(keyMsg.String(), actionRemovePane)
		m.removeSelected()
	case key.Matches(keyMsg, m.keys.Jump):
		events.UI.Key(keyMsg.String(), actionJump)
		m.openJump()
	case key.Matches(keyMsg, m.keys.TogglePanel):
		events.UI.Key(keyMsg.String(), actionTogglePanel)
		m.showPanel = !m.showPanel
		events.UI.Toggle("panel", m.showPanel)
	case key.Matches(keyMsg, m.keys.ToggleDebug):
		events.UI.Key(keyMsg.String(), actionToggleDebug)
		m.toggleDebug()
	}
	return nil
}

func (m *Model) handleDebugKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ToggleDebug), msg.Type == tea.KeyEsc:
		m.toggleDebug()
		return nil
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	}
	var cmd tea.Cmd
	m.debug, cmd = m.debug.Update(msg)
	return cmd
}

func (m *Model) toggleDebug() {
	m.showDebug = !m.showDebug
	events.UI.Toggle("debug", m.showDebug)
	if m.showDebug {
		m.refreshDebug()
		m.debug.GotoBottom()
	}
}

// handleMouseMsg focuses the pane under a left click.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse := msg.(tea.MouseMsg)
	if m.jump != nil || m.showDebug {
		return nil
	}
	if mouse.Action != tea.MouseActionPress || mouse.Button != tea.MouseButtonLeft {
		return nil
	}
	cell, ok := m.cellAt(mouse.X, mouse.Y)
	if !ok {
		return nil
	}
	pane, ok := m.engine.PaneContaining(cell)
	if !ok {
		return nil
	}
	m.applyEffects(m.engine.SelectAt(pane.Rect.Origin()), events.PaneReasonMouse)
	return nil
}

// cellAt maps a screen position to the grid cell drawn there.
func (m *Model) cellAt(x, y int) (tiling.Coord, bool) {
	area := m.gridArea()
	if area.width <= 0 || area.height <= 0 {
		return tiling.Coord{}, false
	}
	x -= area.x
	y -= area.y
	if x < 0 || y < 0 || x >= area.width || y >= area.height {
		return tiling.Coord{}, false
	}
	cols, rows := m.engine.Grid()
	return tiling.Coord{
		Row: cellIndex(y, rows, area.height),
		Col: cellIndex(x, cols, area.width),
	}, true
}

// cellIndex inverts scale: it returns the last cell whose scaled start is at
// or before pos.
func cellIndex(pos, cells, size int) int {
	for c := cells - 1; c > 0; c-- {
		if scale(c, cells, size) <= pos {
			return c
		}
	}
	return 0
}

// scale maps a cell boundary onto the screen.
func scale(c, cells, size int) int {
	return c * size / cells
}
