package wm

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/atomicstack/vwm/internal/geometry"
)

func TestActivationIsExclusive(t *testing.T) {
	m := newTestManager()
	rng := rand.New(rand.NewPCG(7, 11))
	var all []*Window
	for i := 0; i < 300; i++ {
		live := m.Windows()
		switch op := rng.IntN(7); {
		case op == 0 || len(live) == 0:
			w := NewWindow("w", WithSize(geometry.Size{Width: 50, Height: 40}))
			if len(live) > 0 && rng.IntN(2) == 0 {
				_ = w.Show(live[rng.IntN(len(live))])
			} else {
				_ = m.ShowWindow(w)
			}
			all = append(all, w)
		case op == 1:
			_ = live[rng.IntN(len(live))].Activate()
		case op == 2:
			live[rng.IntN(len(live))].Close()
		case op == 3:
			_ = live[rng.IntN(len(live))].Minimize()
		case op == 4:
			_ = live[rng.IntN(len(live))].Restore()
		case op == 5:
			m.HandleKey(KeyEvent{Key: KeyTab, Ctrl: true, Shift: rng.IntN(2) == 0})
		default:
			_ = live[rng.IntN(len(live))].Maximize()
		}
		if n := activeCount(m); n > 1 {
			t.Fatalf("step %d: %d active windows", i, n)
		}
		for _, w := range all {
			if w.IsClosed() && w.IsActive() {
				t.Fatalf("step %d: closed window %s still active", i, w)
			}
		}
	}
}

func TestActivateOrderDeactivatesFirst(t *testing.T) {
	m := newTestManager()
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	var log []string
	a.OnDeactivated(func(*Window) { log = append(log, "a-") })
	a.OnActivated(func(*Window) { log = append(log, "a+") })
	b.OnDeactivated(func(*Window) { log = append(log, "b-") })
	b.OnActivated(func(*Window) { log = append(log, "b+") })
	_ = a.Activate()
	_ = a.Activate()
	if got := strings.Join(log, ","); got != "b-,a+" {
		t.Fatalf("unexpected notification order %s", got)
	}
	if m.Topmost() != a {
		t.Fatalf("expected activated window on top")
	}
}

func TestActivateDetachedFails(t *testing.T) {
	w := NewWindow("w")
	if err := w.Activate(); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("expected ErrNotAttached, got %v", err)
	}
}

func TestMinimizeActivatesMostRecent(t *testing.T) {
	m := newTestManager()
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	_ = b.Minimize()
	if b.IsActive() || !a.IsActive() {
		t.Fatalf("expected a active after minimizing b")
	}
	_ = b.Activate()
	if b.IsActive() {
		t.Fatalf("minimized window must not activate")
	}
	_ = b.Restore()
	if !b.IsActive() {
		t.Fatalf("expected restore from minimized to activate")
	}
}

func TestZOrderBands(t *testing.T) {
	m := newTestManager()
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	c := showAt(t, m, "c", geometry.Rect{Width: 10, Height: 10})
	d := showAt(t, m, "d", geometry.Rect{Width: 10, Height: 10})
	_ = b.Minimize()
	_ = a.Minimize()
	_ = c.Activate()
	if got := strings.Join(titles(m.Windows()), ""); got != "badc" {
		t.Fatalf("expected minimized band first in minimize order, got %s", got)
	}
	if err := m.BringToTop(a); err != nil {
		t.Fatalf("bring to top: %v", err)
	}
	if got := strings.Join(titles(m.Windows()), ""); got != "badc" {
		t.Fatalf("minimized window must stay in its band, got %s", got)
	}
	_ = d.Activate()
	if got := strings.Join(titles(m.Windows()), ""); got != "bacd" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestZOrderLiftsOwnerChain(t *testing.T) {
	m := newTestManager()
	root := showAt(t, m, "root", geometry.Rect{Width: 10, Height: 10})
	mid := NewWindow("mid", WithSize(geometry.Size{Width: 10, Height: 10}))
	if err := m.ShowOwned(mid, root); err != nil {
		t.Fatalf("show mid: %v", err)
	}
	leaf := NewWindow("leaf", WithSize(geometry.Size{Width: 10, Height: 10}))
	if err := m.ShowOwned(leaf, mid); err != nil {
		t.Fatalf("show leaf: %v", err)
	}
	other := showAt(t, m, "other", geometry.Rect{Width: 10, Height: 10})
	if m.Topmost() != other {
		t.Fatalf("expected other on top")
	}
	_ = leaf.Activate()
	if got := strings.Join(titles(m.Windows()), ","); got != "other,root,mid,leaf" {
		t.Fatalf("unexpected order %s", got)
	}
	_ = mid.Minimize()
	_ = leaf.Activate()
	if got := strings.Join(titles(m.Windows()), ","); got != "mid,other,root,leaf" {
		t.Fatalf("minimized ancestor must not be lifted, got %s", got)
	}
}

func TestBringToTopDetached(t *testing.T) {
	m := newTestManager()
	if err := m.BringToTop(NewWindow("x")); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("expected ErrNotAttached, got %v", err)
	}
}

func TestShowInactiveStaysBelowActiveChain(t *testing.T) {
	m := newTestManager()
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10}, WithShowActivated(false))
	if !a.IsActive() || b.IsActive() {
		t.Fatalf("expected a to stay active")
	}
	if b.ZIndex() >= a.ZIndex() || m.Topmost() != a {
		t.Fatalf("inactive b (z=%d) must sit below active a (z=%d)", b.ZIndex(), a.ZIndex())
	}
	c := NewWindow("c", WithSize(geometry.Size{Width: 10, Height: 10}), WithShowActivated(false))
	if err := m.ShowOwned(c, a); err != nil {
		t.Fatalf("show c: %v", err)
	}
	if got := strings.Join(titles(m.Windows()), ","); got != "b,c,a" {
		t.Fatalf("expected the new window just below the active chain, got %s", got)
	}
	_ = b.Activate()
	if m.Topmost() != b {
		t.Fatalf("expected activation to raise b")
	}
}

func TestShowInactiveOnEmptySurfaceIsTopmost(t *testing.T) {
	m := newTestManager()
	w := showAt(t, m, "w", geometry.Rect{Width: 10, Height: 10}, WithShowActivated(false))
	if w.IsActive() || m.Topmost() != w {
		t.Fatalf("expected an inactive topmost window")
	}
}

func TestDeactivateObserverMayCloseWindows(t *testing.T) {
	tests := []struct {
		name       string
		closeOther bool
	}{
		{name: "closes a bystander", closeOther: true},
		{name: "closes the window being activated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
			b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
			c := showAt(t, m, "c", geometry.Rect{Width: 10, Height: 10})
			_ = a.Activate()
			victim := b
			if tt.closeOther {
				victim = c
			}
			a.OnDeactivated(func(*Window) { victim.Close() })
			if err := b.Activate(); err != nil {
				t.Fatalf("activate: %v", err)
			}
			if !victim.IsClosed() || m.Contains(victim) {
				t.Fatalf("expected %s closed", victim)
			}
			if n := activeCount(m); n != 1 {
				t.Fatalf("expected one active window, got %d", n)
			}
			want := b
			if !tt.closeOther {
				want = a
			}
			if m.ActiveWindow() != want {
				t.Fatalf("expected %s active, got %v", want, m.ActiveWindow())
			}
		})
	}
}

func TestMRUPreviousWraps(t *testing.T) {
	m := newTestManager()
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	c := showAt(t, m, "c", geometry.Rect{Width: 10, Height: 10})
	prev := KeyEvent{Key: KeyTab, Ctrl: true, Shift: true}
	for i, want := range []*Window{b, a, c} {
		if !m.HandleKey(prev) {
			t.Fatalf("step %d: navigation key not handled", i)
		}
		if got := m.ActiveWindow(); got != want {
			t.Fatalf("step %d: expected %s active, got %s", i, want, got)
		}
	}
}

func TestMRUNextWraps(t *testing.T) {
	m := newTestManager()
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	c := showAt(t, m, "c", geometry.Rect{Width: 10, Height: 10})
	_ = b.Activate()
	next := KeyEvent{Key: KeyF6, Ctrl: true}
	// snapshot is a,c,b with b active
	for i, want := range []*Window{a, c, b} {
		m.HandleKey(next)
		if got := m.ActiveWindow(); got != want {
			t.Fatalf("step %d: expected %s active, got %s", i, want, got)
		}
	}
}

func TestMRUSnapshotResetByOtherKeys(t *testing.T) {
	m := newTestManager()
	showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	c := showAt(t, m, "c", geometry.Rect{Width: 10, Height: 10})
	prev := KeyEvent{Key: KeyTab, Ctrl: true, Shift: true}
	m.HandleKey(prev)
	if m.ActiveWindow() != b {
		t.Fatalf("expected b")
	}
	m.HandleKey(KeyEvent{Key: KeyRune, Rune: 'x'})
	// rebuilt snapshot is a,c,b with b active
	m.HandleKey(prev)
	if m.ActiveWindow() != c {
		t.Fatalf("expected c after reset, got %s", m.ActiveWindow())
	}
}

func TestMRUSkipsMinimizedAndBlocked(t *testing.T) {
	m := newTestManager()
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	c := showAt(t, m, "c", geometry.Rect{Width: 10, Height: 10})
	_ = b.Minimize()
	_ = c.Activate()
	m.NavigatePrevious()
	if m.ActiveWindow() != a {
		t.Fatalf("expected minimized b skipped, got %s", m.ActiveWindow())
	}
}

type closeRecorder struct {
	closing []string
	closed  []string
	reasons map[string]CloseReason
}

func (r *closeRecorder) watch(w *Window, veto bool) {
	w.OnClosing(func(ev *ClosingEvent) {
		r.closing = append(r.closing, w.Title())
		r.reasons[w.Title()] = ev.Reason
		if veto {
			ev.Cancel = true
		}
	})
	w.OnClosed(func(*Window) { r.closed = append(r.closed, w.Title()) })
}

func buildTree(t *testing.T, m *Manager, rec *closeRecorder, vetoLeaf bool) (root, child, leaf, sibling *Window) {
	t.Helper()
	size := WithSize(geometry.Size{Width: 10, Height: 10})
	root = NewWindow("root", size, WithClosingBehavior(CloseOwnerAndChildren))
	child = NewWindow("child", size, WithClosingBehavior(CloseOwnerAndChildren))
	leaf = NewWindow("leaf", size)
	sibling = NewWindow("sibling", size)
	if err := m.ShowWindow(root); err != nil {
		t.Fatalf("show root: %v", err)
	}
	for _, pair := range [][2]*Window{{child, root}, {leaf, child}, {sibling, root}} {
		if err := m.ShowOwned(pair[0], pair[1]); err != nil {
			t.Fatalf("show %s: %v", pair[0], err)
		}
	}
	rec.watch(root, false)
	rec.watch(child, false)
	rec.watch(leaf, vetoLeaf)
	rec.watch(sibling, false)
	return root, child, leaf, sibling
}

func TestCloseCascadeOrdering(t *testing.T) {
	m := newTestManager()
	rec := &closeRecorder{reasons: map[string]CloseReason{}}
	root, _, _, _ := buildTree(t, m, rec, false)
	if !root.Close() {
		t.Fatalf("expected close to succeed")
	}
	if got := strings.Join(rec.closing, ","); got != "leaf,child,sibling,root" {
		t.Fatalf("unexpected closing order %s", got)
	}
	if got := strings.Join(rec.closed, ","); got != "leaf,child,sibling,root" {
		t.Fatalf("unexpected closed order %s", got)
	}
	if rec.reasons["root"] != CloseReasonWindowClosing || rec.reasons["leaf"] != CloseReasonOwnerClosing {
		t.Fatalf("unexpected reasons %v", rec.reasons)
	}
	if m.Len() != 0 {
		t.Fatalf("expected every window detached, %d left", m.Len())
	}
}

func TestCloseCascadeVeto(t *testing.T) {
	m := newTestManager()
	rec := &closeRecorder{reasons: map[string]CloseReason{}}
	root, child, leaf, sibling := buildTree(t, m, rec, true)
	if root.Close() {
		t.Fatalf("expected veto")
	}
	if got := strings.Join(rec.closing, ","); got != "leaf,sibling" {
		t.Fatalf("unexpected closing notifications %s", got)
	}
	for _, w := range []*Window{root, child, leaf, sibling} {
		if !w.IsShown() {
			t.Fatalf("%s must remain shown after veto", w)
		}
	}
	if len(rec.closed) != 0 {
		t.Fatalf("no window may close, got %v", rec.closed)
	}
}

func TestCloseOwnerOnlyStillClosesChildren(t *testing.T) {
	m := newTestManager()
	owner := showAt(t, m, "owner", geometry.Rect{Width: 10, Height: 10})
	child := NewWindow("child", WithSize(geometry.Size{Width: 10, Height: 10}))
	_ = m.ShowOwned(child, owner)
	asked := false
	child.OnClosing(func(*ClosingEvent) { asked = true })
	closed := 0
	child.OnClosed(func(*Window) { closed++ })
	if !owner.Close() {
		t.Fatalf("expected close")
	}
	if asked {
		t.Fatalf("owner-only close must not ask children")
	}
	if closed != 1 || child.Owner() != nil || !child.IsClosed() {
		t.Fatalf("expected child closed once and owner cleared")
	}
	if owner.Close() {
		t.Fatalf("second close must report false")
	}
}

func TestCloseReactivatesOwnerOrMostRecent(t *testing.T) {
	m := newTestManager()
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	c := NewWindow("c", WithSize(geometry.Size{Width: 10, Height: 10}))
	_ = m.ShowOwned(c, a)
	_ = b.Activate()
	_ = c.Activate()
	c.Close()
	if !a.IsActive() {
		t.Fatalf("expected owner reactivated")
	}
	_ = b.Activate()
	b.Close()
	if !a.IsActive() {
		t.Fatalf("expected most recent window reactivated")
	}
}

func TestCloseAllAggregatesVetoes(t *testing.T) {
	m := newTestManager()
	stubborn := showAt(t, m, "stubborn", geometry.Rect{Width: 10, Height: 10})
	stubborn.OnClosing(func(ev *ClosingEvent) { ev.Cancel = true })
	showAt(t, m, "fine", geometry.Rect{Width: 10, Height: 10})
	err := m.CloseAll()
	if !errors.Is(err, ErrCloseVetoed) {
		t.Fatalf("expected ErrCloseVetoed, got %v", err)
	}
	if got := titles(m.Windows()); !slices.Equal(got, []string{"stubborn"}) {
		t.Fatalf("unexpected remaining windows %v", got)
	}
}

func TestSetBoundsRefitsMaximized(t *testing.T) {
	m := newTestManager()
	w := showAt(t, m, "w", geometry.Rect{Width: 10, Height: 10})
	n := showAt(t, m, "n", geometry.Rect{X: 1, Y: 1, Width: 10, Height: 10})
	_ = w.Maximize()
	m.SetBounds(geometry.Size{Width: 640, Height: 480})
	if got := w.Bounds(); got != (geometry.Rect{Width: 640, Height: 480}) {
		t.Fatalf("expected refit, got %v", got)
	}
	if got := n.Bounds(); got != (geometry.Rect{X: 1, Y: 1, Width: 10, Height: 10}) {
		t.Fatalf("normal window must not move, got %v", got)
	}
}

func TestManagerEventStream(t *testing.T) {
	m := newTestManager()
	var kinds []string
	unsubscribe := m.Subscribe(func(ev Event) {
		if ev.Kind == EventOpened || ev.Kind == EventActivated || ev.Kind == EventClosed {
			kinds = append(kinds, ev.Kind.String())
		}
	})
	w := showAt(t, m, "w", geometry.Rect{Width: 10, Height: 10})
	w.Close()
	unsubscribe()
	showAt(t, m, "ignored", geometry.Rect{Width: 10, Height: 10})
	if got := strings.Join(kinds, ","); got != "opened,activated,closed" {
		t.Fatalf("unexpected stream %s", got)
	}
}

type testElement struct {
	name string
	host *Window
}

func (e *testElement) HostWindow() *Window { return e.host }

type testFocus struct {
	current Element
}

func (f *testFocus) FocusedElement() Element { return f.current }

func (f *testFocus) Focus(el Element) { f.current = el }

func TestFocusRestoredOnActivate(t *testing.T) {
	m := newTestManager()
	fm := &testFocus{}
	m.SetFocusManager(fm)
	a := showAt(t, m, "a", geometry.Rect{Width: 10, Height: 10})
	field := &testElement{name: "field", host: a}
	fm.Focus(field)
	b := showAt(t, m, "b", geometry.Rect{Width: 10, Height: 10})
	fm.Focus(&testElement{name: "other", host: b})
	_ = a.Activate()
	if fm.current != field {
		t.Fatalf("expected focus restored to field, got %v", fm.current)
	}
}

func TestKeyboardMoveAndSize(t *testing.T) {
	m := NewManager(Config{Width: 1000, Height: 800, KeyboardStep: 5})
	w := showAt(t, m, "w", geometry.Rect{X: 100, Y: 100, Width: 40, Height: 20},
		WithMinSize(geometry.Size{Width: 35, Height: 10}))
	if err := w.BeginKeyboardMove(); err != nil {
		t.Fatalf("begin move: %v", err)
	}
	m.HandleKey(KeyEvent{Key: KeyRight})
	m.HandleKey(KeyEvent{Key: KeyUp})
	if got := w.Position(); got != (geometry.Point{X: 105, Y: 95}) {
		t.Fatalf("unexpected position %v", got)
	}
	if !m.HandleKey(KeyEvent{Key: KeyEnter}) || w.KeyboardMode() != KeyboardNone {
		t.Fatalf("expected other key to leave move mode")
	}
	if m.HandleKey(KeyEvent{Key: KeyRight}) {
		t.Fatalf("arrow keys must not be consumed outside keyboard modes")
	}
	if err := w.BeginKeyboardSize(); err != nil {
		t.Fatalf("begin size: %v", err)
	}
	m.HandleKey(KeyEvent{Key: KeyLeft})
	m.HandleKey(KeyEvent{Key: KeyLeft})
	m.HandleKey(KeyEvent{Key: KeyDown})
	if got := w.Size(); got != (geometry.Size{Width: 35, Height: 25}) {
		t.Fatalf("unexpected size %v", got)
	}
	_ = w.Maximize()
	if err := w.BeginKeyboardMove(); !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation when maximized, got %v", err)
	}
}
