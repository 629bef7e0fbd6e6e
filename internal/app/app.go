package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/atomicstack/vwm/internal/backend"
	"github.com/atomicstack/vwm/internal/layout"
	"github.com/atomicstack/vwm/internal/logging/events"
	"github.com/atomicstack/vwm/internal/ui"
	"github.com/atomicstack/vwm/internal/wm"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width  int
	Height int
	// InitialWidth and InitialHeight are the terminal size detected at
	// startup, used for axes not pinned by Width and Height.
	InitialWidth  int
	InitialHeight int
	ShowFooter    bool
	// LayoutPath is opened at startup when it exists and is where the
	// current arrangement is saved.
	LayoutPath string
	// Watch is the reload poll interval for LayoutPath; zero disables it.
	Watch   time.Duration
	Animate bool
	// Animation is the transition length; negative disables animations.
	Animation time.Duration
	Step      int
	Border    int
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (err error) {
	defer func() { events.App.Stop(err) }()

	doc, err := loadLayout(cfg.LayoutPath)
	if err != nil {
		return err
	}
	var watcher *backend.Watcher
	if cfg.LayoutPath != "" && cfg.Watch > 0 {
		watcher = backend.NewWatcher(cfg.LayoutPath, cfg.Watch)
		defer watcher.Stop()
	}
	model := ui.NewModel(ui.Config{
		Width:         cfg.Width,
		Height:        cfg.Height,
		InitialWidth:  cfg.InitialWidth,
		InitialHeight: cfg.InitialHeight,
		ShowFooter:    cfg.ShowFooter,
		Animate:       cfg.Animate,
		BlinkCursor:   true,
		Layout:        doc,
		LayoutPath:    cfg.LayoutPath,
		Watcher:       watcher,
		Manager: wm.Config{
			BorderThickness:   cfg.Border,
			KeyboardStep:      cfg.Step,
			AnimationDuration: cfg.Animation,
		},
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// loadLayout reads the startup layout. A missing file is not an error; the
// first save creates it.
func loadLayout(path string) (*layout.Document, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat layout: %w", err)
	}
	doc, err := layout.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	return doc, nil
}
