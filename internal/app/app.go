package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rustybrooks/dcui/internal/backend"
	"github.com/rustybrooks/dcui/internal/logging/events"
	"github.com/rustybrooks/dcui/internal/tiling"
	"github.com/rustybrooks/dcui/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	GridCols     int
	GridRows     int
	SplitAxis    tiling.Axis
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	ComposeFiles []string
	Keys         map[string][]string
	// Watch is the compose file polling interval; zero disables reloads.
	Watch time.Duration
}

// Options converts the application config into UI model options.
func (c Config) Options() ui.Options {
	return ui.Options{
		GridCols:     c.GridCols,
		GridRows:     c.GridRows,
		SplitAxis:    c.SplitAxis,
		Width:        c.Width,
		Height:       c.Height,
		ShowFooter:   c.ShowFooter,
		Verbose:      c.Verbose,
		ComposeFiles: append([]string(nil), c.ComposeFiles...),
		Keys:         c.Keys,
	}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	opts := cfg.Options()
	if cfg.Watch > 0 && len(cfg.ComposeFiles) > 0 {
		watcher := backend.NewWatcher(cfg.ComposeFiles, cfg.Watch)
		defer watcher.Stop()
		opts.Watcher = watcher
	}
	model, err := ui.NewModel(opts)
	if err != nil {
		return fmt.Errorf("build ui: %w", err)
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	events.App.Exit(model.PaneCount(), err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
