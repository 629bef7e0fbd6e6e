package wm

import (
	"errors"
	"testing"

	"github.com/atomicstack/vwm/internal/geometry"
)

func TestCenterScreenMaximizeRestoreScenario(t *testing.T) {
	m := newTestManager()
	w := NewWindow("editor",
		WithSize(geometry.Size{Width: 400, Height: 300}),
		WithStartupLocation(geometry.StartupCenterScreen))
	if err := m.ShowWindow(w); err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := w.Position(); got != (geometry.Point{X: 300, Y: 250}) {
		t.Fatalf("expected centred at (300,250), got %v", got)
	}
	if err := w.SetState(StateMaximized); err != nil {
		t.Fatalf("maximize: %v", err)
	}
	if got, want := w.Bounds(), (geometry.Rect{Width: 1000, Height: 800}); got != want {
		t.Fatalf("maximized bounds %v, want %v", got, want)
	}
	if w.Decorations().Border {
		t.Fatalf("expected border chrome off while maximized")
	}
	if err := w.SetState(StateNormal); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got, want := w.Bounds(), (geometry.Rect{X: 300, Y: 250, Width: 400, Height: 300}); got != want {
		t.Fatalf("restored bounds %v, want %v", got, want)
	}
}

func TestStateRoundTripRestoresNormalGeometry(t *testing.T) {
	orig := geometry.Rect{X: 10, Y: 20, Width: 300, Height: 200}
	paths := [][]WindowState{
		{StateMinimized},
		{StateMaximized},
		{StateFullScreen},
		{StateMaximized, StateMinimized},
		{StateFullScreen, StateMaximized, StateMinimized},
	}
	for _, path := range paths {
		m := newTestManager()
		w := showAt(t, m, "w", orig)
		for _, s := range path {
			if err := w.SetState(s); err != nil {
				t.Fatalf("path %v: set %s: %v", path, s, err)
			}
		}
		if err := w.SetState(StateNormal); err != nil {
			t.Fatalf("path %v: restore: %v", path, err)
		}
		if got := w.Bounds(); got != orig {
			t.Fatalf("path %v: expected %v after restore, got %v", path, orig, got)
		}
	}
}

func TestMinimizedGeometryUsesTokenSize(t *testing.T) {
	m := NewManager(Config{Width: 1000, Height: 800, MinimizedSize: geometry.Size{Width: 20, Height: 1}})
	w := showAt(t, m, "w", geometry.Rect{X: 40, Y: 50, Width: 300, Height: 200})
	if err := w.Minimize(); err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if got, want := w.Bounds(), (geometry.Rect{X: 40, Y: 50, Width: 20, Height: 1}); got != want {
		t.Fatalf("minimized bounds %v, want %v", got, want)
	}
	// the minimized position is captured once
	_ = w.Restore()
	w.SetPosition(geometry.Point{X: 90, Y: 90})
	_ = w.Minimize()
	if got := w.Position(); got != (geometry.Point{X: 40, Y: 50}) {
		t.Fatalf("expected first minimized position kept, got %v", got)
	}
}

func TestFullScreenHidesTitleBar(t *testing.T) {
	m := newTestManager()
	w := showAt(t, m, "w", geometry.Rect{X: 1, Y: 1, Width: 100, Height: 100})
	if err := w.SetState(StateFullScreen); err != nil {
		t.Fatalf("full screen: %v", err)
	}
	if d := w.Decorations(); d.TitleBar || d.Border {
		t.Fatalf("expected no chrome, got %+v", d)
	}
	if got := w.Bounds(); got != m.Surface() {
		t.Fatalf("expected surface bounds, got %v", got)
	}
}

func TestFullScreenUnsupportedLeavesStateUnchanged(t *testing.T) {
	m := newTestManager()
	w := showAt(t, m, "w", geometry.Rect{Width: 100, Height: 100}, WithCapabilities(MinimalCapabilities()))
	err := w.SetState(StateFullScreen)
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation, got %v", err)
	}
	if w.State() != StateNormal {
		t.Fatalf("expected state unchanged, got %s", w.State())
	}
}

func TestSetStateBeforeShowIsRecorded(t *testing.T) {
	m := newTestManager()
	w := NewWindow("w", WithSize(geometry.Size{Width: 200, Height: 100}))
	if err := w.SetState(StateMaximized); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if w.IsShown() || w.Bounds().Width != 200 {
		t.Fatalf("expected only the state to be recorded, got %v", w.Bounds())
	}
	if err := m.ShowWindowAt(w, 5, 5); err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := w.Bounds(); got != m.Surface() {
		t.Fatalf("expected maximized on show, got %v", got)
	}
	_ = w.Restore()
	if got, want := w.Bounds(), (geometry.Rect{X: 5, Y: 5, Width: 200, Height: 100}); got != want {
		t.Fatalf("expected placed normal bounds %v, got %v", want, got)
	}
}

func TestNormalSnapshotFallback(t *testing.T) {
	m := newTestManager()
	w := showAt(t, m, "w", geometry.Rect{Width: 100, Height: 100})
	_ = w.Maximize()
	w.normalRect = geometry.Rect{}
	_ = w.Minimize()
	_ = w.Restore()
	if got, want := w.Bounds(), (geometry.Rect{X: 2, Y: 2, Width: 996, Height: 796}); got != want {
		t.Fatalf("expected fallback %v, got %v", want, got)
	}
}

func TestSizeToContentMeasures(t *testing.T) {
	m := NewManager(Config{Width: 80, Height: 24, BorderThickness: 1, TitleBarHeight: 1})
	w := NewWindow("notes",
		WithSizeToContent(geometry.SizeWidthAndHeight),
		WithContent(TextContent{Lines: []string{"hello", "wide world line"}}))
	if err := m.ShowWindowAt(w, 0, 0); err != nil {
		t.Fatalf("show: %v", err)
	}
	// content plus border on both sides, title bar and border rows
	if got, want := w.Size(), (geometry.Size{Width: 17, Height: 5}); got != want {
		t.Fatalf("size %v, want %v", got, want)
	}
	if got, want := w.ClientBounds(), (geometry.Rect{X: 1, Y: 2, Width: 15, Height: 2}); got != want {
		t.Fatalf("client %v, want %v", got, want)
	}
}

func TestShowErrors(t *testing.T) {
	w := NewWindow("orphan")
	if err := w.Show(nil); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("expected ErrNotAttached, got %v", err)
	}
	m := newTestManager()
	c := showAt(t, m, "closed", geometry.Rect{Width: 10, Height: 10})
	c.Close()
	if err := m.ShowWindow(c); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed, got %v", err)
	}
}

func TestShowUsesOwnerManager(t *testing.T) {
	m := newTestManager()
	owner := showAt(t, m, "owner", geometry.Rect{X: 100, Y: 100, Width: 200, Height: 200})
	child := NewWindow("child",
		WithSize(geometry.Size{Width: 100, Height: 50}),
		WithStartupLocation(geometry.StartupCenterOwner))
	if err := child.Show(owner); err != nil {
		t.Fatalf("show: %v", err)
	}
	if child.Manager() != m || child.Owner() != owner {
		t.Fatalf("expected child attached to owner's manager")
	}
	if got := child.Position(); got != (geometry.Point{X: 150, Y: 175}) {
		t.Fatalf("expected centred on owner, got %v", got)
	}
	if got := owner.Children(); len(got) != 1 || got[0] != child || child.IsDialog() {
		t.Fatalf("unexpected children %v", titles(got))
	}
}

func TestSetSizeClampsToBounds(t *testing.T) {
	m := newTestManager()
	w := showAt(t, m, "w", geometry.Rect{Width: 100, Height: 100},
		WithMinSize(geometry.Size{Width: 50, Height: 50}),
		WithMaxSize(geometry.Size{Width: 150, Height: 150}))
	w.SetSize(geometry.Size{Width: 10, Height: 500})
	if got, want := w.Size(), (geometry.Size{Width: 50, Height: 150}); got != want {
		t.Fatalf("size %v, want %v", got, want)
	}
}

func TestPositionAndResizeNotifications(t *testing.T) {
	m := newTestManager()
	w := showAt(t, m, "w", geometry.Rect{Width: 100, Height: 100})
	var moved []geometry.Point
	var resized []ResizedEvent
	w.OnPositionChanged(func(ev PositionChangedEvent) { moved = append(moved, ev.Position) })
	w.OnResized(func(ev ResizedEvent) { resized = append(resized, ev) })
	w.SetPosition(geometry.Point{X: 3, Y: 4})
	w.SetPosition(geometry.Point{X: 3, Y: 4})
	w.SetSize(geometry.Size{Width: 120, Height: 100})
	if len(moved) != 1 || moved[0] != (geometry.Point{X: 3, Y: 4}) {
		t.Fatalf("unexpected moves %v", moved)
	}
	if len(resized) != 1 || resized[0].Size.Width != 120 {
		t.Fatalf("unexpected resizes %v", resized)
	}
	_ = w.Maximize()
	if last := resized[len(resized)-1]; last.Reason != ResizeLayout {
		t.Fatalf("expected layout reason for maximize, got %s", last.Reason)
	}
}

func TestObserverUnsubscribe(t *testing.T) {
	m := newTestManager()
	w := showAt(t, m, "w", geometry.Rect{Width: 10, Height: 10}, WithShowActivated(false))
	var calls []string
	first := w.OnActivated(func(*Window) { calls = append(calls, "first") })
	w.OnActivated(func(*Window) { calls = append(calls, "second") })
	first()
	_ = w.Activate()
	if len(calls) != 1 || calls[0] != "second" {
		t.Fatalf("unexpected calls %v", calls)
	}
}
