package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/treemenu/internal/action"
	"github.com/atomicstack/treemenu/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envDefinition = "TREEMENU_DEFINITION"
	envStartMenu  = "TREEMENU_START"
	envWidth      = "TREEMENU_WIDTH"
	envHeight     = "TREEMENU_HEIGHT"
	envShowFooter = "TREEMENU_FOOTER"
	envVerbose    = "TREEMENU_VERBOSE"
	envTrace      = "TREEMENU_TRACE"
	envLogFile    = "TREEMENU_LOG_FILE"
	envOutput     = "TREEMENU_OUTPUT"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("treemenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	definition := fs.String("definition", envOrDefault(env, envDefinition, ""), "path to an HCL menu definition (empty uses the built-in menu)")
	start := fs.String("start", envOrDefault(env, envStartMenu, ""), "submenu to open first, as a /-separated path of titles")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key help (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show the cursor position under the menu")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	output := fs.String("output", envOrDefault(env, envOutput, action.FormatJSON), "output format of the print action (json, yaml, text)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			DefinitionPath: *definition,
			StartMenu:      *start,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			Verbose:        *verbose,
			Output:         strings.ToLower(strings.TrimSpace(*output)),
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"definition": *definition,
			"start":      *start,
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"trace":      strconv.FormatBool(*trace),
			"verbose":    strconv.FormatBool(*verbose),
			"logFile":    *logFile,
			"output":     *output,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
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

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks values that flag parsing alone cannot.
func Validate(cfg Config) error {
	switch cfg.App.Output {
	case "", action.FormatJSON, action.FormatYAML, action.FormatText:
	default:
		return fmt.Errorf("%w %q", action.ErrUnknownFormat, cfg.App.Output)
	}
	if path := cfg.App.DefinitionPath; path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("definition: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("definition %s is a directory", path)
		}
	}
	return nil
}
