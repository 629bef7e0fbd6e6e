package wm

import (
	"fmt"

	"github.com/atomicstack/vwm/internal/geometry"
)

// Show attaches the window and makes it visible. The owner supplies the
// manager when the window has none. Showing an already shown window is a
// no-op.
func (w *Window) Show(owner *Window) error {
	return w.show(owner, false)
}

func (w *Window) show(owner *Window, isDialog bool) error {
	switch w.lifecycle {
	case lifecycleShown:
		return nil
	case lifecycleClosing, lifecycleClosed:
		return fmt.Errorf("show %s: %w", w, ErrWindowClosed)
	}
	if owner == w {
		return fmt.Errorf("show %s: window cannot own itself: %w", w, ErrUnsupportedOperation)
	}
	if owner != nil && owner.lifecycle != lifecycleShown {
		return fmt.Errorf("show %s: owner %s: %w", w, owner, ErrNotAttached)
	}
	m := w.manager
	if m == nil && owner != nil {
		m = owner.manager
	}
	if m == nil {
		return fmt.Errorf("show %s: %w", w, ErrNotAttached)
	}
	if owner != nil && owner.manager != m {
		return fmt.Errorf("show %s: owner %s is attached elsewhere: %w", w, owner, ErrUnsupportedOperation)
	}
	if !w.state.valid() {
		return fmt.Errorf("show %s: invalid state %d: %w", w, int(w.state), ErrUnsupportedOperation)
	}
	if w.state == StateFullScreen && !w.caps.FullScreen {
		return fmt.Errorf("show %s: full screen: %w", w, ErrUnsupportedOperation)
	}

	m.attach(w)
	w.lifecycle = lifecycleShown
	w.decorations = decorationsFor(StateNormal)
	if owner != nil {
		w.owner = owner
		owner.addChild(w, isDialog)
	}

	w.measure()
	w.place()
	w.normalRect = w.geometry

	if w.state != StateNormal {
		w.captureState(StateNormal)
		w.enterState(StateNormal, false)
	} else if w.animates() {
		final := w.geometry
		w.geometry = final.Scale(closeAnimationScale)
		w.startAnimation(final, ResizeLayout, nil)
		w.anim.start = final
	}
	// attach placed w above everything; a window shown inactive settles just
	// below the active window's owner chain.
	top := w
	if active := m.ActiveWindow(); !w.showActivated && active != nil && active != w {
		top = active
	}
	m.bringToTop(top)

	w.emitOpened()
	if w.showActivated {
		_ = w.Activate()
	}
	return nil
}

// measure resolves the desired size from content and the explicit size.
func (w *Window) measure() {
	m := w.manager
	var measured geometry.Size
	if w.content != nil {
		inset := w.chromeInsets()
		avail := geometry.Size{
			Width:  max(0, m.surface.Width-inset.left-inset.right),
			Height: max(0, m.surface.Height-inset.top-inset.bottom),
		}
		measured = w.content.Measure(avail)
		if !measured.IsEmpty() {
			measured.Width += inset.left + inset.right
			measured.Height += inset.top + inset.bottom
		}
	}
	w.desired = measured

	size := geometry.DesiredSize(w.sizeToContent, w.geometry.Size(), measured)
	if size.Width <= 0 || size.Height <= 0 {
		fallback := m.cfg.DefaultSize
		if fallback.IsEmpty() {
			fallback = geometry.Size{Width: m.surface.Width / 2, Height: m.surface.Height / 2}
		}
		if size.Width <= 0 {
			size.Width = fallback.Width
		}
		if size.Height <= 0 {
			size.Height = fallback.Height
		}
	}
	w.geometry = w.geometry.WithSize(w.bounds.Clamp(size))
}

// place applies the startup location policy.
func (w *Window) place() {
	var owner *geometry.OwnerInfo
	if w.owner != nil {
		owner = &geometry.OwnerInfo{
			Bounds:    w.owner.settledGeometry(),
			Minimized: w.owner.state == StateMinimized,
		}
	}
	pos := geometry.Place(w.startup, w.geometry.Position(), w.geometry.Size(), w.manager.Surface(), owner)
	w.geometry = w.geometry.WithPosition(pos)
}

// Remeasure re-runs content measurement for windows that size to content.
func (w *Window) Remeasure() {
	if w.lifecycle != lifecycleShown || w.sizeToContent == geometry.SizeManual {
		return
	}
	prev := w.geometry
	w.measure()
	next := w.geometry
	w.geometry = prev
	if w.state != StateNormal {
		w.normalRect = w.normalRect.WithSize(next.Size())
		return
	}
	w.settleAnimation()
	w.commitGeometry(next, ResizeLayout)
}
