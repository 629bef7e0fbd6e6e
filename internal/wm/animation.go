package wm

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/logging/events"
)

// animation is an in-flight geometry interpolation. The final rectangle is
// always assigned when it ends, even if a frame could not be computed.
type animation struct {
	start    geometry.Rect
	from     geometry.Rect
	to       geometry.Rect
	duration time.Duration
	elapsed  time.Duration
	reason   ResizeReason
	done     []func()
}

func (w *Window) animates() bool {
	return w.animate && w.manager != nil && w.manager.cfg.AnimationDuration > 0
}

// IsAnimating reports whether a transition is in flight.
func (w *Window) IsAnimating() bool { return w.anim != nil }

// startAnimation moves the window to target, interpolated when animations
// are enabled. A request while another is in flight re-targets it from the
// current frame; pending completion callbacks are kept.
func (w *Window) startAnimation(to geometry.Rect, reason ResizeReason, done func()) {
	if a := w.anim; a != nil {
		a.from = w.geometry
		a.to = to
		a.elapsed = 0
		a.reason = reason
		if done != nil {
			a.done = append(a.done, done)
		}
		if !w.animates() {
			w.finishAnimation()
		}
		return
	}
	if !w.animates() {
		w.commitGeometry(to, reason)
		if done != nil {
			done()
		}
		return
	}
	w.anim = &animation{
		start:    w.geometry,
		from:     w.geometry,
		to:       to,
		duration: w.manager.cfg.AnimationDuration,
		reason:   reason,
	}
	if done != nil {
		w.anim.done = append(w.anim.done, done)
	}
}

func (w *Window) stepAnimation(dt time.Duration) {
	a := w.anim
	a.elapsed += dt
	if a.elapsed >= a.duration {
		w.finishAnimation()
		return
	}
	frame, ok := w.frame(a)
	if !ok {
		w.finishAnimation()
		return
	}
	w.geometry = frame
}

func (w *Window) frame(a *animation) (r geometry.Rect, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			events.Window.AnimationFailed(w.id, fmt.Sprint(p))
			ok = false
		}
	}()
	t := float64(a.elapsed) / float64(a.duration)
	if w.manager != nil && w.manager.cfg.Easing != nil {
		t = w.manager.cfg.Easing(t)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		events.Window.AnimationFailed(w.id, "easing returned a non-finite value")
		return r, false
	}
	return geometry.Lerp(a.from, a.to, t), true
}

// finishAnimation assigns the final rectangle and runs completion callbacks.
func (w *Window) finishAnimation() {
	a := w.anim
	if a == nil {
		return
	}
	w.anim = nil
	w.commitGeometryFrom(a.start, a.to, a.reason)
	for _, fn := range a.done {
		fn()
	}
}

// settleAnimation jumps an in-flight animation to its end.
func (w *Window) settleAnimation() {
	if w.anim != nil {
		w.finishAnimation()
	}
}

// Advance moves every in-flight animation forward by dt and reports whether
// any is still running.
func (m *Manager) Advance(dt time.Duration) bool {
	for _, w := range slices.Clone(m.windows) {
		if w.anim != nil {
			w.stepAnimation(dt)
		}
	}
	return m.Animating()
}

// Animating reports whether any attached window is animating.
func (m *Manager) Animating() bool {
	for _, w := range m.windows {
		if w.anim != nil {
			return true
		}
	}
	return false
}

// SkipAnimations completes every in-flight animation immediately.
func (m *Manager) SkipAnimations() {
	for _, w := range slices.Clone(m.windows) {
		w.settleAnimation()
	}
}
