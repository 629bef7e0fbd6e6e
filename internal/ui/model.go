package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/vwm/internal/backend"
	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/layout"
	"github.com/atomicstack/vwm/internal/logging/events"
	"github.com/atomicstack/vwm/internal/theme"
	"github.com/atomicstack/vwm/internal/ui/command"
	uistate "github.com/atomicstack/vwm/internal/ui/state"
	"github.com/atomicstack/vwm/internal/wm"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	infoDuration   = 5 * time.Second
	frameInterval  = time.Second / 60
	commandTimeout = 30 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config describes the surface the model drives.
type Config struct {
	// Width and Height pin the surface size; zero follows the terminal.
	Width  int
	Height int
	// InitialWidth and InitialHeight seed a followed axis with the size
	// detected at startup, so the layout opens before the first resize.
	InitialWidth  int
	InitialHeight int
	// ShowFooter reserves the bottom row for key hints and status.
	ShowFooter bool
	// Animate enables open, close and state animations for new windows.
	Animate bool
	// BlinkCursor makes text cursors blink.
	BlinkCursor bool
	// Layout is opened once the surface size is known.
	Layout *layout.Document
	// LayoutPath is where Ctrl+S saves the current arrangement.
	LayoutPath string
	Watcher    *backend.Watcher
	// Manager configures the window manager. Zero chrome metrics select
	// terminal-sized defaults.
	Manager wm.Config
}

// Model implements the Bubble Tea model for the virtual desktop.
type Model struct {
	manager *wm.Manager

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	animate     bool
	blink       bool

	pendingLayout *layout.Document
	layoutPath    string
	byID          map[string]*wm.Window
	names         map[*wm.Window]string
	confirm       map[*wm.Window]bool
	closeApproved map[*wm.Window]bool
	confirmFor    map[*wm.Window]*wm.Window
	quitting      bool

	switcher          *uistate.List
	prompt            *windowPrompt
	filterCursor      cursor.Model
	filterCursorDirty bool

	clicks   clickTracker
	now      func() time.Time
	ticking  bool
	lastTick time.Time

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	backend  *backend.Watcher
	bus      *command.Bus
	pending  []tea.Cmd
	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state and the window manager behind it.
func NewModel(cfg Config) *Model {
	m := &Model{
		manager:       wm.NewManager(terminalMetrics(cfg.Manager)),
		showFooter:    cfg.ShowFooter,
		animate:       cfg.Animate,
		blink:         cfg.BlinkCursor,
		pendingLayout: cfg.Layout,
		layoutPath:    cfg.LayoutPath,
		byID:          make(map[string]*wm.Window),
		names:         make(map[*wm.Window]string),
		confirm:       make(map[*wm.Window]bool),
		closeApproved: make(map[*wm.Window]bool),
		confirmFor:    make(map[*wm.Window]*wm.Window),
		now:           time.Now,
		backend:       cfg.Watcher,
		bus:           command.New(commandTimeout),
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	} else if cfg.InitialWidth > 0 {
		m.width = cfg.InitialWidth
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	} else if cfg.InitialHeight > 0 {
		m.height = cfg.InitialHeight
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	if !m.blink {
		c.SetMode(cursor.CursorStatic)
	}
	m.filterCursor = c
	m.manager.Subscribe(m.observe)
	m.registerHandlers()
	m.resizeSurface()
	return m
}

// terminalMetrics fills the chrome metrics of c with values sized in cells.
func terminalMetrics(c wm.Config) wm.Config {
	if c.MinimizedSize.IsEmpty() {
		c.MinimizedSize = geometry.Size{Width: 20, Height: 1}
	}
	if c.BorderThickness <= 0 {
		c.BorderThickness = 1
	}
	if c.TitleBarHeight <= 0 {
		c.TitleBarHeight = 1
	}
	if c.KeyboardStep <= 0 {
		c.KeyboardStep = 2
	}
	if c.AnimationDuration == 0 {
		c.AnimationDuration = 120 * time.Millisecond
	}
	return c
}

// Manager exposes the window manager driven by the model.
func (m *Model) Manager() *wm.Manager { return m.manager }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return m.finishUpdate(cmds)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if m.switcher != nil {
		if cmd := m.updateFilterCursorModel(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey && m.prompt != nil {
		if cmd := m.prompt.update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(animationTickMsg{}):  m.handleAnimationTickMsg,
		reflect.TypeOf(dialogResultMsg{}):   m.handleDialogResultMsg,
		reflect.TypeOf(confirmResultMsg{}):  m.handleConfirmResultMsg,
		reflect.TypeOf(layoutSavedMsg{}):    m.handleLayoutSavedMsg,
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

// finishUpdate collects follow-up work queued during the update: cursor
// blinking, dialog results, animation frames and the final quit.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	if !m.ticking && m.manager.Animating() {
		m.ticking = true
		m.lastTick = m.now()
		cmds = append(cmds, animationTick())
	}
	if m.quitting && m.manager.Len() == 0 {
		cmds = append(cmds, tea.Quit)
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	events.UI.Resize(resize.Width, resize.Height)
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.resizeSurface()
	return nil
}

// resizeSurface fits the manager to the terminal and opens the initial
// layout once a size is known.
func (m *Model) resizeSurface() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.manager.SkipAnimations()
	m.manager.SetBounds(geometry.Size{Width: m.width, Height: m.surfaceHeight()})
	if doc := m.pendingLayout; doc != nil {
		m.pendingLayout = nil
		m.applyLayout(doc, m.layoutPath)
	}
}

func (m *Model) surfaceHeight() int {
	if m.showFooter {
		return max(m.height-1, 1)
	}
	return m.height
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(infoDuration)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && m.now().Before(m.infoExpire) {
		return
	}
	m.forceClearInfo()
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
