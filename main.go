package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rustybrooks/dcui/internal/app"
	"github.com/rustybrooks/dcui/internal/config"
	"github.com/rustybrooks/dcui/internal/logging"
	"github.com/rustybrooks/dcui/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	err := app.Run(runtimeCfg.App)
	if err != nil {
		logging.Error(err)
	}
	_ = logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records the layout dcui starts with: the grid, the
// first split axis, the compose files and the screen the grid is scaled to.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	compose := cfg.App.ComposeFiles
	if compose == nil {
		compose = []string{}
	}
	return map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"grid":    gridInfo{Cols: cfg.App.GridCols, Rows: cfg.App.GridRows, Cells: cfg.App.GridCols * cfg.App.GridRows},
		"split":   cfg.App.SplitAxis.String(),
		"compose": compose,
		"watch":   cfg.App.Watch.String(),
		"screen":  resolveScreen(cfg.App, terminalSize),
	}
}

type gridInfo struct {
	Cols  int `json:"cols"`
	Rows  int `json:"rows"`
	Cells int `json:"cells"`
}

// screenInfo is the size the pane grid is scaled onto at startup. Source is
// "flags", "terminal" or "flags+terminal"; a dimension left at zero is
// filled from the first window size message instead.
type screenInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
	Error  string `json:"error,omitempty"`
}

var errNotTerminal = errors.New("stdout is not a terminal")

// terminalSize reports the size of the terminal the program renders to.
func terminalSize() (int, int, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, errNotTerminal
	}
	return term.GetSize(fd)
}

// resolveScreen combines --width/--height with the terminal size for any
// dimension left unset.
func resolveScreen(cfg app.Config, size func() (int, int, error)) screenInfo {
	info := screenInfo{Width: cfg.Width, Height: cfg.Height, Source: "flags"}
	if info.Width > 0 && info.Height > 0 {
		return info
	}
	w, h, err := size()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	fixed := info.Width > 0 || info.Height > 0
	if info.Width == 0 {
		info.Width = w
	}
	if info.Height == 0 {
		info.Height = h
	}
	info.Source = "terminal"
	if fixed {
		info.Source = "flags+terminal"
	}
	return info
}
