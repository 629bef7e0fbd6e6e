package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/atomicstack/vwm/internal/app"
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
	envWidth       = "VWM_WIDTH"
	envHeight      = "VWM_HEIGHT"
	envShowFooter  = "VWM_FOOTER"
	envLayout      = "VWM_LAYOUT"
	envWatch       = "VWM_WATCH"
	envAnimate     = "VWM_ANIMATE"
	envAnimationMS = "VWM_ANIMATION_MS"
	envStep        = "VWM_STEP"
	envBorder      = "VWM_BORDER"
	envTrace       = "VWM_TRACE"
	envLogFile     = "VWM_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("vwm", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "surface width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "surface height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "reserve a footer row for key hints")
	layoutPath := fs.String("layout", envOrDefault(env, envLayout, ""), "layout file to open at startup and save to")
	watch := fs.Duration("watch", envOrDuration(env, envWatch, 0), "reload the layout file when it changes, polling at this interval (0 disables)")
	animate := fs.Bool("animate", envOrBool(env, envAnimate, true), "animate opening, closing and state changes")
	animationMS := fs.Int("animation-ms", envOrInt(env, envAnimationMS, 120), "animation length in milliseconds (negative disables)")
	step := fs.Int("step", envOrInt(env, envStep, 2), "keyboard move/size step in cells")
	border := fs.Int("border", envOrInt(env, envBorder, 1), "border thickness in cells")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			LayoutPath: *layoutPath,
			Watch:      *watch,
			Animate:    *animate,
			Animation:  time.Duration(*animationMS) * time.Millisecond,
			Step:       *step,
			Border:     *border,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"layout":      *layoutPath,
			"watch":       watch.String(),
			"animate":     strconv.FormatBool(*animate),
			"animationMS": strconv.Itoa(*animationMS),
			"step":        strconv.Itoa(*step),
			"border":      strconv.Itoa(*border),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
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

// envOrDuration accepts Go durations ("1s", "500ms") or a bare number of
// milliseconds.
func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	parsed, err := time.ParseDuration(v)
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

// Validate reports every invalid option at once.
func Validate(cfg Config) error {
	var result *multierror.Error
	a := cfg.App
	if a.Width < 0 {
		result = multierror.Append(result, fmt.Errorf("width must be >= 0 (got %d)", a.Width))
	}
	if a.Height < 0 {
		result = multierror.Append(result, fmt.Errorf("height must be >= 0 (got %d)", a.Height))
	}
	if a.Watch < 0 {
		result = multierror.Append(result, fmt.Errorf("watch must be >= 0 (got %s)", a.Watch))
	}
	if a.Watch > 0 && a.LayoutPath == "" {
		result = multierror.Append(result, fmt.Errorf("watch requires a layout file"))
	}
	if a.Step <= 0 {
		result = multierror.Append(result, fmt.Errorf("step must be > 0 (got %d)", a.Step))
	}
	if a.Border <= 0 {
		result = multierror.Append(result, fmt.Errorf("border must be > 0 (got %d)", a.Border))
	}
	return result.ErrorOrNil()
}
