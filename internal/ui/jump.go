package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rustybrooks/dcui/internal/logging/events"
	"github.com/rustybrooks/dcui/internal/tiling"
	uistate "github.com/rustybrooks/dcui/internal/ui/state"
)

// jumpPrompt is the fuzzy pane finder opened with "/".
type jumpPrompt struct {
	input textinput.Model
	list  *uistate.List
}

func newJumpPrompt(items []uistate.Item) *jumpPrompt {
	ti := textinput.New()
	ti.Prompt = "jump: "
	ti.PromptStyle = *styles.FilterPrompt
	ti.Placeholder = "pane title"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &jumpPrompt{input: ti, list: uistate.NewList(items)}
}

func (m *Model) openJump() {
	if m.engine.Empty() {
		m.setError("no panes to jump to")
		return
	}
	m.jump = newJumpPrompt(m.jumpItems())
	events.Jump.Open(m.engine.Len())
}

func (m *Model) jumpItems() []uistate.Item {
	items := make([]uistate.Item, 0, len(m.order))
	for _, id := range m.order {
		v := m.views[id]
		items = append(items, uistate.Item{ID: strconv.FormatUint(uint64(id), 10), Label: v.title})
	}
	return items
}

func (m *Model) handleJumpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		events.Jump.Cancel(m.jump.input.Value())
		m.jump = nil
		return nil
	case tea.KeyEnter:
		m.finishJump()
		return nil
	case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
		m.jump.list.Move(-1)
		return nil
	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		m.jump.list.Move(1)
		return nil
	}
	var cmd tea.Cmd
	m.jump.input, cmd = m.jump.input.Update(msg)
	if q := m.jump.input.Value(); q != m.jump.list.Filter {
		m.jump.list.SetFilter(q)
		events.Jump.Query(q, len(m.jump.list.Items))
	}
	return cmd
}

func (m *Model) finishJump() {
	item, ok := m.jump.list.Current()
	query := m.jump.input.Value()
	m.jump = nil
	if !ok {
		m.setError("no pane matches " + strconv.Quote(query))
		return
	}
	id, err := strconv.ParseUint(item.ID, 10, 64)
	if err != nil {
		m.fail(err)
		return
	}
	m.applyEffects(m.engine.Select(tiling.PaneID(id)), events.PaneReasonJump)
}
