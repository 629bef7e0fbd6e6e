package wm

import (
	"slices"

	"github.com/atomicstack/vwm/internal/logging/events"
)

// Close requests the window to close. It returns false when a Closing
// handler (of the window or, with CloseOwnerAndChildren, of a descendant)
// vetoed, or when the window is already closing.
func (w *Window) Close() bool {
	return w.close(nil, false)
}

// CloseWithResult closes the window and stores result for a pending dialog
// future.
func (w *Window) CloseWithResult(result any) bool {
	return w.close(result, true)
}

func (w *Window) close(result any, hasResult bool) bool {
	switch w.lifecycle {
	case lifecycleClosing, lifecycleClosed:
		return false
	case lifecycleCreated:
		w.lifecycle = lifecycleClosed
		w.manager = nil
		return true
	}
	ev := NewClosingEvent(w, CloseReasonWindowClosing, true)
	if hasResult {
		ev.Result = result
	}
	if w.shouldCancelClose(ev) {
		events.Window.CloseVetoed(w.id)
		return false
	}
	if hasResult {
		w.result = result
		w.hasResult = true
	}
	w.closeInternal(nil)
	return true
}

// shouldCancelClose runs the Closing notifications for w and, per its
// closing behaviour, its descendants first. Every descendant is asked even
// after one vetoes.
func (w *Window) shouldCancelClose(ev *ClosingEvent) bool {
	if w.closingBehavior == CloseOwnerAndChildren && len(w.children) > 0 {
		reason := ev.Reason
		if reason == CloseReasonWindowClosing {
			reason = CloseReasonOwnerClosing
		}
		vetoed := false
		for _, c := range slices.Clone(w.children) {
			child := c.window
			if child.lifecycle != lifecycleShown {
				continue
			}
			cev := NewClosingEvent(child, reason, ev.Programmatic)
			if child.shouldCancelClose(cev) {
				vetoed = true
			}
		}
		if vetoed {
			return true
		}
	}
	w.emitClosing(ev)
	return ev.Cancel
}

// closeInternal closes the children depth-first, runs the close animation and
// finalizes; then is invoked once w is fully closed.
func (w *Window) closeInternal(then func()) {
	switch w.lifecycle {
	case lifecycleClosing:
		if then != nil {
			w.afterClose = append(w.afterClose, then)
		}
		return
	case lifecycleShown:
	default:
		if then != nil {
			then()
		}
		return
	}
	w.lifecycle = lifecycleClosing
	w.endPointerSession()
	w.kbMode = KeyboardNone

	children := w.Children()
	var step func(i int)
	step = func(i int) {
		if i < len(children) {
			children[i].closeInternal(func() { step(i + 1) })
			return
		}
		w.runCloseAnimation(func() {
			w.finishClose()
			if then != nil {
				then()
			}
		})
	}
	step(0)
}

func (w *Window) runCloseAnimation(done func()) {
	if !w.animates() {
		w.settleAnimation()
		done()
		return
	}
	w.startAnimation(w.geometry.Scale(closeAnimationScale), ResizeLayout, done)
}

// finishClose detaches the window and fires Closed exactly once.
func (w *Window) finishClose() {
	m := w.manager
	owner := w.owner

	w.Deactivate()
	w.lifecycle = lifecycleClosed
	w.endPointerSession()
	if owner != nil {
		owner.removeChild(w)
	}
	w.owner = nil
	if m != nil {
		m.detach(w)
	}

	events.Window.Closed(w.id)
	w.closed.emit(w)
	if m != nil {
		m.publish(Event{Kind: EventClosed, Window: w, State: w.state, Bounds: w.geometry})
		m.windowClosed(owner)
	}

	pending := w.afterClose
	w.afterClose = nil
	for _, fn := range pending {
		fn()
	}
}
