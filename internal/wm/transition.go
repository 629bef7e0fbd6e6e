package wm

import (
	"fmt"

	"github.com/atomicstack/vwm/internal/geometry"
)

// SetState transitions the window to s. Before the window is shown the state
// is only recorded and applied by Show.
func (w *Window) SetState(s WindowState) error {
	if !s.valid() {
		return fmt.Errorf("%s: invalid state %d: %w", w, int(s), ErrUnsupportedOperation)
	}
	if s == StateFullScreen && !w.caps.FullScreen {
		return fmt.Errorf("%s: full screen: %w", w, ErrUnsupportedOperation)
	}
	switch w.lifecycle {
	case lifecycleCreated:
		w.state = s
		return nil
	case lifecycleClosing, lifecycleClosed:
		return fmt.Errorf("%s: set state %s: %w", w, s, ErrWindowClosed)
	}
	if s == w.state {
		return nil
	}
	from := w.state
	w.captureState(from)
	w.state = s
	w.enterState(from, true)
	return nil
}

func (w *Window) Minimize() error { return w.SetState(StateMinimized) }

func (w *Window) Maximize() error { return w.SetState(StateMaximized) }

func (w *Window) Restore() error { return w.SetState(StateNormal) }

// ToggleMaximize implements the title bar double-click: Normal and Maximized
// swap, Minimized and FullScreen restore to Normal. Windows that cannot be
// resized are left alone.
func (w *Window) ToggleMaximize() error {
	if !w.caps.Resizable {
		return nil
	}
	if w.state == StateNormal {
		return w.SetState(StateMaximized)
	}
	return w.SetState(StateNormal)
}

// captureState records the snapshot of the state being left.
func (w *Window) captureState(from WindowState) {
	if from != StateNormal {
		return
	}
	r := w.settledGeometry()
	if r.Width <= 0 || r.Height <= 0 {
		size := w.bounds.Clamp(w.desired)
		if r.Width <= 0 {
			r.Width = size.Width
		}
		if r.Height <= 0 {
			r.Height = size.Height
		}
	}
	w.normalRect = r
}

// ensureNormalSnapshot guarantees a usable rectangle to restore to.
func (w *Window) ensureNormalSnapshot() {
	if !w.normalRect.IsEmpty() {
		return
	}
	surface := w.manager.Surface()
	w.normalRect = geometry.Rect{
		X:      2,
		Y:      2,
		Width:  max(1, surface.Width-4),
		Height: max(1, surface.Height-4),
	}
}

// enterState applies the geometry and chrome of the current state.
func (w *Window) enterState(from WindowState, notify bool) {
	m := w.manager
	if w.state != StateNormal {
		w.ensureNormalSnapshot()
	}
	w.decorations = decorationsFor(w.state)
	w.endPointerSession()
	w.kbMode = KeyboardNone

	var target geometry.Rect
	switch w.state {
	case StateMaximized, StateFullScreen:
		target = m.Surface()
	case StateMinimized:
		if w.minimizedPos == nil {
			p := w.settledGeometry().Position()
			w.minimizedPos = &p
		}
		m.minimizeSeq++
		w.minimizedSeq = m.minimizeSeq
		target = geometry.RectFrom(*w.minimizedPos, m.cfg.MinimizedSize)
	default:
		target = w.normalRect
	}
	w.startAnimation(target, ResizeLayout, nil)
	m.bringToTop(w)

	switch {
	case w.state == StateMinimized && w.active:
		w.Deactivate()
		m.activateMostRecent(w)
	case from == StateMinimized && notify:
		_ = w.Activate()
	}
	if notify {
		w.emitStateChanged(from)
	}
}
