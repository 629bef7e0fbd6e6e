package wm

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/vwm/internal/geometry"
)

func newAnimatedManager(easing func(float64) float64) *Manager {
	return NewManager(Config{
		Width:             1000,
		Height:            800,
		AnimationDuration: 100 * time.Millisecond,
		Easing:            easing,
	})
}

func TestShowAnimationEndsOnTarget(t *testing.T) {
	m := newAnimatedManager(nil)
	final := geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	w := showAt(t, m, "w", final, WithAnimate(true))
	if !w.IsAnimating() || w.Bounds() == final {
		t.Fatalf("expected show animation in flight")
	}
	if !m.Advance(50 * time.Millisecond) {
		t.Fatalf("expected animation still running")
	}
	if m.Advance(60 * time.Millisecond) {
		t.Fatalf("expected animation finished")
	}
	if w.Bounds() != final {
		t.Fatalf("expected %v, got %v", final, w.Bounds())
	}
}

func TestAnimationRetargetLastWins(t *testing.T) {
	m := newAnimatedManager(nil)
	final := geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	w := showAt(t, m, "w", final, WithAnimate(true))
	m.SkipAnimations()
	_ = w.Maximize()
	m.Advance(50 * time.Millisecond)
	_ = w.Restore()
	m.Advance(100 * time.Millisecond)
	if w.IsAnimating() || w.Bounds() != final {
		t.Fatalf("expected restored bounds %v, got %v", final, w.Bounds())
	}
}

func TestAnimationEasingPanicCompletes(t *testing.T) {
	m := newAnimatedManager(func(float64) float64 { panic("bad easing") })
	final := geometry.Rect{X: 10, Y: 10, Width: 100, Height: 100}
	w := showAt(t, m, "w", final, WithAnimate(true))
	if m.Advance(10 * time.Millisecond) {
		t.Fatalf("expected failed animation to complete")
	}
	if w.Bounds() != final {
		t.Fatalf("expected final bounds assigned, got %v", w.Bounds())
	}
}

func TestCloseAnimationDelaysClosed(t *testing.T) {
	m := newAnimatedManager(nil)
	parent := showAt(t, m, "parent", geometry.Rect{Width: 400, Height: 300}, WithAnimate(true))
	child := NewWindow("child", WithSize(geometry.Size{Width: 100, Height: 100}), WithAnimate(true))
	_ = m.ShowOwned(child, parent)
	m.SkipAnimations()

	var closed []string
	parent.OnClosed(func(w *Window) { closed = append(closed, w.Title()) })
	child.OnClosed(func(w *Window) { closed = append(closed, w.Title()) })
	if !parent.Close() {
		t.Fatalf("expected close")
	}
	if len(closed) != 0 || parent.IsClosed() {
		t.Fatalf("expected closing to wait for animations")
	}
	if got := child.Size(); got.Width != 100 {
		t.Fatalf("child close animation starts from its bounds, got %v", got)
	}
	m.Advance(100 * time.Millisecond)
	if got := strings.Join(closed, ","); got != "child" {
		t.Fatalf("expected child closed first, got %s", got)
	}
	m.Advance(100 * time.Millisecond)
	if got := strings.Join(closed, ","); got != "child,parent" {
		t.Fatalf("unexpected closed order %s", got)
	}
	if m.Len() != 0 {
		t.Fatalf("expected manager empty")
	}
}

func TestSkipAnimationsFinishesImmediately(t *testing.T) {
	m := newAnimatedManager(nil)
	w := showAt(t, m, "w", geometry.Rect{Width: 400, Height: 300}, WithAnimate(true))
	m.SkipAnimations()
	_ = w.Maximize()
	m.SkipAnimations()
	if w.Bounds() != m.Surface() || m.Animating() {
		t.Fatalf("expected maximize applied, got %v", w.Bounds())
	}
}
