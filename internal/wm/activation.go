package wm

import (
	"fmt"
	"slices"
)

// Activate makes w the single active window of its manager. It is a no-op
// when w is already active, has a modal child, is minimized, or lies outside
// the tree of a surface-wide dialog.
func (w *Window) Activate() error {
	if w.lifecycle != lifecycleShown || w.manager == nil {
		return fmt.Errorf("activate %s: %w", w, ErrNotAttached)
	}
	if w.active || !w.canActivate() {
		return nil
	}
	m := w.manager
	// Deactivation observers may close or activate windows, so walk a
	// snapshot and re-check w afterwards.
	prev := m.activating
	m.activating = w
	for _, other := range slices.Clone(m.windows) {
		if other != w && other.manager == m {
			other.Deactivate()
		}
	}
	m.activating = prev
	if m.ActiveWindow() != nil {
		return nil
	}
	if w.lifecycle != lifecycleShown || !w.canActivate() {
		if prev == nil {
			m.activateMostRecent(w)
		}
		return nil
	}
	w.active = true
	m.activationSeq++
	w.activatedSeq = m.activationSeq
	if !m.navigating {
		m.mru = nil
	}
	w.emitActivated()
	w.restoreFocus()
	m.bringToTop(w)
	return nil
}

// Deactivate clears the active flag, remembering the focused element when it
// belongs to w.
func (w *Window) Deactivate() {
	if !w.active {
		return
	}
	w.captureFocus()
	w.active = false
	w.emitDeactivated()
}

func (w *Window) canActivate() bool {
	if w.lifecycle != lifecycleShown || w.manager == nil {
		return false
	}
	if w.modalChild != nil || w.state == StateMinimized {
		return false
	}
	return w.manager.allowsInteraction(w)
}
