package wm

import (
	"fmt"

	"github.com/atomicstack/vwm/internal/geometry"
)

type Key int

const (
	KeyUnknown Key = iota
	KeyTab
	KeyF6
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
	KeyRune
)

// KeyEvent is a host key press with modifier state.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Ctrl  bool
	Shift bool
	Alt   bool
}

func (k KeyEvent) isNavigation() bool {
	return k.Ctrl && (k.Key == KeyTab || k.Key == KeyF6)
}

// KeyboardMode is the interactive keyboard move/size mode of a window.
type KeyboardMode int

const (
	KeyboardNone KeyboardMode = iota
	KeyboardMove
	KeyboardSize
)

func (k KeyboardMode) String() string {
	switch k {
	case KeyboardMove:
		return "move"
	case KeyboardSize:
		return "size"
	default:
		return "none"
	}
}

// KeyboardMode reports the active keyboard move/size mode.
func (w *Window) KeyboardMode() KeyboardMode { return w.kbMode }

// HandleKey routes a key press. Ctrl+Tab and Ctrl+F6 activate the next
// window in MRU order, with Shift the previous one. A window in keyboard
// move/size mode consumes every key. It reports whether the key was handled.
func (m *Manager) HandleKey(ev KeyEvent) bool {
	if ev.isNavigation() {
		if ev.Shift {
			m.NavigatePrevious()
		} else {
			m.NavigateNext()
		}
		return true
	}
	m.mru = nil
	if active := m.ActiveWindow(); active != nil && active.kbMode != KeyboardNone {
		active.handleModeKey(ev)
		return true
	}
	return false
}

// BeginKeyboardMove lets arrow keys move the window by the manager's step
// until any other key is pressed.
func (w *Window) BeginKeyboardMove() error {
	return w.beginKeyboardMode(KeyboardMove)
}

// BeginKeyboardSize lets arrow keys resize the window by the manager's step
// until any other key is pressed.
func (w *Window) BeginKeyboardSize() error {
	if !w.caps.Resizable {
		return fmt.Errorf("%s: keyboard size: %w", w, ErrUnsupportedOperation)
	}
	return w.beginKeyboardMode(KeyboardSize)
}

func (w *Window) beginKeyboardMode(mode KeyboardMode) error {
	if w.lifecycle != lifecycleShown || w.manager == nil {
		return fmt.Errorf("%s: keyboard %s: %w", w, mode, ErrNotAttached)
	}
	if w.state != StateNormal || w.manager.IsBlocked(w) {
		return fmt.Errorf("%s: keyboard %s in state %s: %w", w, mode, w.state, ErrUnsupportedOperation)
	}
	if !w.active {
		_ = w.Activate()
	}
	w.settleAnimation()
	w.kbMode = mode
	return nil
}

// EndKeyboardMode leaves keyboard move/size mode.
func (w *Window) EndKeyboardMode() { w.kbMode = KeyboardNone }

func (w *Window) handleModeKey(ev KeyEvent) {
	step := w.manager.cfg.KeyboardStep
	var d geometry.Point
	switch ev.Key {
	case KeyLeft:
		d.X = -step
	case KeyRight:
		d.X = step
	case KeyUp:
		d.Y = -step
	case KeyDown:
		d.Y = step
	default:
		w.kbMode = KeyboardNone
		return
	}
	if w.modalChild != nil || w.state != StateNormal {
		w.kbMode = KeyboardNone
		return
	}
	if w.kbMode == KeyboardMove {
		w.commitGeometry(w.geometry.Translate(d), ResizeUser)
		return
	}
	size := w.geometry.Size()
	if d.X != 0 && size.Width+d.X >= step && w.bounds.AllowsWidth(size.Width+d.X) {
		size.Width += d.X
	}
	if d.Y != 0 && size.Height+d.Y >= step && w.bounds.AllowsHeight(size.Height+d.Y) {
		size.Height += d.Y
	}
	if size != w.geometry.Size() {
		w.sizeToContent = geometry.SizeManual
		w.commitGeometry(w.geometry.WithSize(size), ResizeUser)
	}
}
