package wm

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/logging/events"
)

const (
	defaultBorderThickness = 4
	defaultTitleBarHeight  = 24
	defaultKeyboardStep    = 10
	defaultAnimation       = 100 * time.Millisecond
	closeAnimationScale    = 0.2
)

var defaultMinimizedSize = geometry.Size{Width: 160, Height: 30}

// Config describes a surface. Zero values select defaults.
type Config struct {
	Width  int
	Height int
	// MinimizedSize is the footprint of a minimized window.
	MinimizedSize geometry.Size
	// BorderThickness is the resize grab zone and border inset.
	BorderThickness int
	TitleBarHeight  int
	// KeyboardStep is the move/resize increment of keyboard modes.
	KeyboardStep int
	// AnimationDuration applies to windows with animations enabled. A
	// negative value disables every animation.
	AnimationDuration time.Duration
	// Easing maps linear progress in [0,1] to eased progress.
	Easing func(float64) float64
	// DefaultSize is used when neither an explicit size nor content
	// measurement yields one. Zero selects half the surface.
	DefaultSize geometry.Size
}

func (c Config) withDefaults() Config {
	if c.MinimizedSize.IsEmpty() {
		c.MinimizedSize = defaultMinimizedSize
	}
	if c.BorderThickness <= 0 {
		c.BorderThickness = defaultBorderThickness
	}
	if c.TitleBarHeight <= 0 {
		c.TitleBarHeight = defaultTitleBarHeight
	}
	if c.KeyboardStep <= 0 {
		c.KeyboardStep = defaultKeyboardStep
	}
	if c.AnimationDuration == 0 {
		c.AnimationDuration = defaultAnimation
	}
	return c
}

// Manager is the registry of windows attached to one surface.
type Manager struct {
	cfg     Config
	surface geometry.Size
	windows []*Window

	modal    *Window
	captured *Window
	focus    FocusManager

	activationSeq uint64
	minimizeSeq   uint64
	// activating is set while Activate deactivates the previous window.
	activating *Window

	mru        []*Window
	navigating bool

	subscribers observers[Event]
}

// NewManager creates an empty manager for a surface of cfg.Width by cfg.Height.
func NewManager(cfg Config) *Manager {
	cfg = cfg.withDefaults()
	return &Manager{
		cfg:     cfg,
		surface: geometry.Size{Width: cfg.Width, Height: cfg.Height},
	}
}

// Config returns the effective configuration.
func (m *Manager) Config() Config { return m.cfg }

// Surface returns the surface rectangle anchored at the origin.
func (m *Manager) Surface() geometry.Rect {
	return geometry.Rect{Width: m.surface.Width, Height: m.surface.Height}
}

// SetFocusManager installs the host focus service.
func (m *Manager) SetFocusManager(fm FocusManager) { m.focus = fm }

// Subscribe registers fn for every manager notification. The returned
// function unregisters it.
func (m *Manager) Subscribe(fn func(Event)) func() { return m.subscribers.add(fn) }

func (m *Manager) publish(ev Event) { m.subscribers.emit(ev) }

// SetBounds resizes the surface. Maximized and full screen windows are
// re-fitted immediately.
func (m *Manager) SetBounds(size geometry.Size) {
	if size == m.surface {
		return
	}
	m.surface = size
	events.Manager.Surface(size.Width, size.Height)
	for _, w := range m.Windows() {
		if w.state != StateMaximized && w.state != StateFullScreen {
			continue
		}
		w.settleAnimation()
		w.commitGeometry(m.Surface(), ResizeSurface)
	}
	m.publish(Event{Kind: EventSurfaceChanged, Bounds: m.Surface()})
}

// Windows returns the attached windows in ascending z-order.
func (m *Manager) Windows() []*Window {
	out := slices.Clone(m.windows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].zIndex < out[j].zIndex })
	return out
}

// Len returns the number of attached windows.
func (m *Manager) Len() int { return len(m.windows) }

// ActiveWindow returns the active window or nil.
func (m *Manager) ActiveWindow() *Window {
	for _, w := range m.windows {
		if w.active {
			return w
		}
	}
	return nil
}

// Topmost returns the window with the highest z-index.
func (m *Manager) Topmost() *Window {
	ws := m.Windows()
	if len(ws) == 0 {
		return nil
	}
	return ws[len(ws)-1]
}

// ModalWindow returns the owner-less dialog blocking the surface, if any.
func (m *Manager) ModalWindow() *Window { return m.modal }

// Contains reports whether w is attached to m.
func (m *Manager) Contains(w *Window) bool {
	return slices.Contains(m.windows, w)
}

// IsBlocked reports whether input to w is refused because of a modal: w has
// a modal child, or a surface-wide dialog is open outside w's tree.
func (m *Manager) IsBlocked(w *Window) bool {
	return w.modalChild != nil || !m.allowsInteraction(w)
}

func (m *Manager) allowsInteraction(w *Window) bool {
	if m.modal == nil || m.modal == w {
		return true
	}
	return w.isDescendantOf(m.modal)
}

// ShowWindow attaches w, measures and places it, then shows it.
func (m *Manager) ShowWindow(w *Window) error {
	return m.showOwned(w, nil)
}

// ShowWindowAt shows w at (x, y), forcing manual placement.
func (m *Manager) ShowWindowAt(w *Window, x, y int) error {
	w.startup = geometry.StartupManual
	w.geometry = w.geometry.WithPosition(geometry.Point{X: x, Y: y})
	return m.showOwned(w, nil)
}

// ShowOwned shows w as a non-modal child of owner.
func (m *Manager) ShowOwned(w, owner *Window) error {
	return m.showOwned(w, owner)
}

func (m *Manager) showOwned(w, owner *Window) error {
	if err := m.adopt(w); err != nil {
		return err
	}
	return w.Show(owner)
}

func (m *Manager) adopt(w *Window) error {
	if w.manager != nil && w.manager != m {
		return fmt.Errorf("%s belongs to another manager: %w", w, ErrUnsupportedOperation)
	}
	if w.lifecycle == lifecycleCreated {
		w.manager = m
	}
	return nil
}

// CloseWindow requests a close of w. It returns false when vetoed or when w
// is not attached here.
func (m *Manager) CloseWindow(w *Window) bool {
	if w == nil || w.manager != m {
		return false
	}
	return w.Close()
}

// CloseAll closes every top-level window, topmost first. Vetoed closes are
// aggregated into the returned error.
func (m *Manager) CloseAll() error {
	var result *multierror.Error
	roots := m.Windows()
	slices.Reverse(roots)
	count := 0
	for _, w := range roots {
		if w.owner != nil || w.lifecycle != lifecycleShown {
			continue
		}
		count++
		if !w.Close() {
			result = multierror.Append(result, fmt.Errorf("%s: %w", w, ErrCloseVetoed))
		}
	}
	vetoed := 0
	if result != nil {
		vetoed = len(result.Errors)
	}
	events.Manager.CloseAll(count, vetoed)
	return result.ErrorOrNil()
}

func (m *Manager) attach(w *Window) {
	if m.Contains(w) {
		return
	}
	w.manager = m
	w.zIndex = len(m.windows) + 1
	for _, other := range m.windows {
		w.zIndex = max(w.zIndex, other.zIndex+1)
	}
	m.windows = append(m.windows, w)
	m.mru = nil
}

func (m *Manager) detach(w *Window) {
	m.windows = slices.DeleteFunc(m.windows, func(x *Window) bool { return x == w })
	m.mru = slices.DeleteFunc(m.mru, func(x *Window) bool { return x == w })
	if m.captured == w {
		m.captured = nil
	}
	if m.modal == w {
		m.modal = nil
	}
	w.manager = nil
}

// windowClosed reactivates the owner of a closed window, or else the most
// recently activated remaining window.
func (m *Manager) windowClosed(owner *Window) {
	if m.activating != nil {
		return
	}
	if owner != nil && owner.lifecycle == lifecycleShown && owner.canActivate() {
		_ = owner.Activate()
		return
	}
	m.activateMostRecent(nil)
}

func (m *Manager) activateMostRecent(exclude *Window) {
	var best *Window
	for _, w := range slices.Clone(m.windows) {
		if w == exclude || w.manager != m || !w.canActivate() {
			continue
		}
		if best == nil || w.activatedSeq > best.activatedSeq ||
			(w.activatedSeq == best.activatedSeq && w.zIndex > best.zIndex) {
			best = w
		}
	}
	if best != nil {
		_ = best.Activate()
	}
}
