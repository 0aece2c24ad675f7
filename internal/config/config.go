package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustybrooks/dcui/internal/app"
	"github.com/rustybrooks/dcui/internal/tiling"
	"github.com/rustybrooks/dcui/internal/ui"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig     = "DCUI_CONFIG"
	envGridCols   = "DCUI_GRID_COLS"
	envGridRows   = "DCUI_GRID_ROWS"
	envSplit      = "DCUI_SPLIT"
	envWidth      = "DCUI_WIDTH"
	envHeight     = "DCUI_HEIGHT"
	envShowFooter = "DCUI_FOOTER"
	envVerbose    = "DCUI_VERBOSE"
	envTrace      = "DCUI_TRACE"
	envLogFile    = "DCUI_LOG_FILE"
	envWatch      = "DCUI_WATCH"
)

const (
	defaultGridCols = 8
	defaultGridRows = 4
	maxGridCells    = 64
	defaultWatch    = 2 * time.Second
)

// Load parses configuration from CLI arguments, environment variables and
// the optional YAML config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// in order: command line, environment, config file, built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := configPathFromArgs(args, envOrDefault(env, envConfig, ""))
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("dcui", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	var compose stringList
	fs.String("config", path, "path to a YAML config file")
	fs.Var(&compose, "compose", "docker compose file to list in the side panel (repeatable)")
	fs.Var(&compose, "d", "shorthand for --compose")
	cols := fs.Int("grid-cols", envOrInt(env, envGridCols, intOr(file.Grid.Cols, defaultGridCols)), "number of grid columns panes are tiled on")
	rows := fs.Int("grid-rows", envOrInt(env, envGridRows, intOr(file.Grid.Rows, defaultGridRows)), "number of grid rows panes are tiled on")
	split := fs.String("split", envOrDefault(env, envSplit, stringOr(file.Split, tiling.AxisHorizontal.String())), "initial split axis (horizontal|vertical)")
	width := fs.Int("width", envOrInt(env, envWidth, file.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, boolOr(file.Footer, true)), "show the key help footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, file.Verbose), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")
	watchDefault, err := durationOr(file.Watch, defaultWatch)
	if err != nil {
		return Config{}, fmt.Errorf("config watch: %w", err)
	}
	watch := fs.Duration("watch", envOrDuration(env, envWatch, watchDefault), "how often compose files are checked for changes (0 disables)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *watch < 0 {
		return Config{}, fmt.Errorf("watch must be >= 0 (got %s)", *watch)
	}
	axis, err := tiling.ParseAxis(*split)
	if err != nil {
		return Config{}, err
	}

	composeFiles := []string(compose)
	if len(composeFiles) == 0 {
		composeFiles = append([]string(nil), file.ComposeFiles...)
	}

	cfg := Config{
		App: app.Config{
			GridCols:     *cols,
			GridRows:     *rows,
			SplitAxis:    axis,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			ComposeFiles: composeFiles,
			Keys:         file.Keys,
			Watch:        *watch,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config":   path,
			"compose":  strings.Join(composeFiles, ","),
			"gridCols": strconv.Itoa(*cols),
			"gridRows": strconv.Itoa(*rows),
			"split":    axis.String(),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
			"watch":    watch.String(),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// stringList collects repeated string flags.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("empty value")
	}
	*s = append(*s, v)
	return nil
}

// configPathFromArgs finds --config before the full flag set is built, so
// the file can supply defaults for every other flag.
func configPathFromArgs(args []string, fallback string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if strings.HasPrefix(name, "config=") {
			return strings.TrimPrefix(name, "config=")
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return fallback
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func durationOr(v string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func intOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func stringOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.GridCols < 1 || cfg.App.GridRows < 1 {
		return fmt.Errorf("grid must be at least 1x1 (got %dx%d)", cfg.App.GridCols, cfg.App.GridRows)
	}
	if cfg.App.GridCols > maxGridCells || cfg.App.GridRows > maxGridCells {
		return fmt.Errorf("grid must be at most %dx%d (got %dx%d)", maxGridCells, maxGridCells, cfg.App.GridCols, cfg.App.GridRows)
	}
	if err := ui.ValidateKeyOverrides(cfg.App.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}
