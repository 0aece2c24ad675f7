package ui

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rustybrooks/dcui/internal/backend"
	"github.com/rustybrooks/dcui/internal/data/dispatcher"
	"github.com/rustybrooks/dcui/internal/logging"
	"github.com/rustybrooks/dcui/internal/logging/events"
	"github.com/rustybrooks/dcui/internal/state"
	"github.com/rustybrooks/dcui/internal/theme"
	"github.com/rustybrooks/dcui/internal/tiling"
	"github.com/rustybrooks/dcui/internal/ui/command"
)

var styles = theme.Default()

const maxLayoutLog = 500

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	GridCols     int
	GridRows     int
	SplitAxis    tiling.Axis
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	ComposeFiles []string
	Keys         map[string][]string
	// Watcher, when set, streams compose file changes into open panes.
	Watcher *backend.Watcher
}

// paneView is the host-side widget for one engine pane. It is created,
// moved and destroyed only by applyEffects.
type paneView struct {
	id       tiling.PaneID
	title    string
	content  Content
	rect     tiling.Rect
	selected bool
}

// paneLoadedMsg carries content prepared off the update loop.
type paneLoadedMsg struct {
	title   string
	content Content
}

// Model implements the Bubble Tea model for the pane dashboard.
type Model struct {
	engine   *tiling.Engine
	views    map[tiling.PaneID]*paneView
	order    []tiling.PaneID
	selected tiling.PaneID

	keys      keyMap
	help      help.Model
	bus       *command.Bus
	jump      *jumpPrompt
	debug     viewport.Model
	showDebug bool
	showPanel bool
	layoutLog []string

	composeFiles []string
	compose      state.ComposeStore
	backend      *backend.Watcher
	dispatcher   *dispatcher.Dispatcher
	nextCompose  int
	added        int

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	errMsg      string
	infoMsg     string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with an empty grid.
func NewModel(opts Options) (*Model, error) {
	engine, err := tiling.New(opts.GridCols, opts.GridRows)
	if err != nil {
		return nil, err
	}
	engine.SetLastSplitAxis(opts.SplitAxis)

	keys := defaultKeyMap()
	if err := keys.apply(opts.Keys); err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}

	compose := state.NewComposeStore(opts.ComposeFiles)
	m := &Model{
		engine:       engine,
		views:        make(map[tiling.PaneID]*paneView),
		keys:         keys,
		help:         help.New(),
		bus:          command.New(),
		debug:        viewport.New(0, 0),
		showPanel:    len(opts.ComposeFiles) > 0,
		composeFiles: append([]string(nil), opts.ComposeFiles...),
		compose:      compose,
		backend:      opts.Watcher,
		dispatcher:   dispatcher.New(compose),
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(paneLoadedMsg{}):     m.handlePaneLoadedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	events.UI.Resize(m.width, m.height)
	m.refreshDebug()
	return nil
}

func (m *Model) handlePaneLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded := msg.(paneLoadedMsg)
	m.addPane(loaded.title, loaded.content, events.PaneReasonKey)
	return nil
}

// requestPane queues content for the next pane. Compose files are used in
// turn through the command bus, from the watcher's copy when it has one;
// without any, a placeholder pane is added.
func (m *Model) requestPane() tea.Cmd {
	m.added++
	if len(m.composeFiles) == 0 {
		m.addPane(fmt.Sprintf("pane %d", m.added), placeholderContent(m.added), events.PaneReasonKey)
		return nil
	}
	path := m.composeFiles[m.nextCompose%len(m.composeFiles)]
	m.nextCompose++
	read := readFile
	if entry, ok := m.compose.Entry(path); ok && entry.Revision > 0 {
		read = func(string) ([]byte, error) { return entry.Data, entry.Err }
	}
	return m.bus.Execute(command.Request{
		ID:    "compose:" + path,
		Label: "load " + path,
		Handler: func() tea.Msg {
			title, content := composeContent(path, read)
			return paneLoadedMsg{title: title, content: content}
		},
	})
}

// addPane places content on the grid and applies the resulting effects. A
// full grid is reported in the status line and the content is released.
func (m *Model) addPane(title string, content Content, reason events.PaneReason) {
	_, effects, err := m.engine.AddPane(title, content)
	if errors.Is(err, tiling.ErrGridExhausted) {
		events.Pane.Exhausted(title, m.engine.Len())
		closeContent(content)
		m.setError(fmt.Sprintf("grid is full: cannot place %q", title))
		return
	}
	if err != nil {
		closeContent(content)
		m.fail(err)
		return
	}
	m.errMsg = ""
	m.applyEffects(effects, reason)
	m.setInfo(fmt.Sprintf("added %s", title))
}

func (m *Model) removeSelected() {
	if m.engine.Empty() {
		m.setError("no pane to remove")
		return
	}
	effects, err := m.engine.RemoveSelected()
	if err != nil {
		m.fail(err)
		return
	}
	m.errMsg = ""
	m.applyEffects(effects, events.PaneReasonKey)
}

func (m *Model) setSplitAxis(axis tiling.Axis) {
	m.engine.SetLastSplitAxis(axis)
	events.Pane.Axis(axis.String())
	m.setInfo(fmt.Sprintf("next split: %s", axis))
}

func (m *Model) setError(msg string) {
	m.errMsg = msg
	m.infoMsg = ""
}

func (m *Model) setInfo(msg string) {
	if m.verbose {
		m.infoMsg = msg
	}
}

func (m *Model) fail(err error) {
	logging.Error(err)
	events.Action.Error(err)
	m.setError(err.Error())
}

// PaneCount returns the number of panes on the grid.
func (m *Model) PaneCount() int {
	return m.engine.Len()
}
