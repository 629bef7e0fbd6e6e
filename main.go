package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/vwm/internal/app"
	"github.com/atomicstack/vwm/internal/config"
	"github.com/atomicstack/vwm/internal/logging"
	"github.com/atomicstack/vwm/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	size, ok := detectTerminalSize(standardDescriptors(), term.GetSize)
	runtimeCfg.App = seedSurface(runtimeCfg.App, size, ok)
	events.App.Start(startupTracePayload(runtimeCfg, size, ok))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// terminalSize is the size reported by the first standard descriptor that
// is a terminal.
type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type descriptor struct {
	name string
	fd   int
}

// standardDescriptors lists stdout first since the program renders there.
func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdout", int(os.Stdout.Fd())},
		{"stdin", int(os.Stdin.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

func detectTerminalSize(fds []descriptor, getSize func(fd int) (int, int, error)) (terminalSize, bool) {
	for _, d := range fds {
		if d.fd < 0 {
			continue
		}
		width, height, err := getSize(d.fd)
		if err != nil || width <= 0 || height <= 0 {
			continue
		}
		return terminalSize{Source: d.name, Width: width, Height: height}, true
	}
	return terminalSize{}, false
}

// seedSurface fills the axes left to follow the terminal with the detected
// size. Pinned axes are untouched.
func seedSurface(cfg app.Config, size terminalSize, ok bool) app.Config {
	if !ok {
		return cfg
	}
	if cfg.Width == 0 {
		cfg.InitialWidth = size.Width
	}
	if cfg.Height == 0 {
		cfg.InitialHeight = size.Height
	}
	return cfg
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, size terminalSize, ok bool) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if ok {
		payload["terminal"] = size
	}
	return payload
}
