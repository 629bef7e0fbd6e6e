package ui

import (
	"testing"
	"time"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/wm"
	tea "github.com/charmbracelet/bubbletea"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func TestCtrlNCyclesWindows(t *testing.T) {
	h := newTestHarness(t, alphaSpec(), betaSpec())
	m := h.Model()

	h.Send(key(tea.KeyCtrlN))
	if got := activeTitle(m); got != "Alpha" {
		t.Fatalf("expected Alpha after ctrl+n, got %q", got)
	}
	h.Send(key(tea.KeyCtrlN))
	if got := activeTitle(m); got != "Beta" {
		t.Fatalf("expected Beta after second ctrl+n, got %q", got)
	}
	h.Send(key(tea.KeyCtrlP))
	if got := activeTitle(m); got != "Alpha" {
		t.Fatalf("expected Alpha after ctrl+p, got %q", got)
	}
}

func TestKeyboardMoveAndSize(t *testing.T) {
	h := newTestHarness(t, alphaSpec(), betaSpec())
	m := h.Model()
	beta := findWindow(t, m, "Beta")

	h.Send(alt('m'))
	if beta.KeyboardMode() != wm.KeyboardMove {
		t.Fatalf("expected move mode, got %v", beta.KeyboardMode())
	}
	h.Send(key(tea.KeyRight))
	h.Send(key(tea.KeyDown))
	if got := beta.Position(); got != (geometry.Point{X: 42, Y: 7}) {
		t.Fatalf("expected Beta moved by one step each way, got %v", got)
	}
	h.Send(key(tea.KeyEsc))
	if beta.KeyboardMode() != wm.KeyboardNone {
		t.Fatalf("expected escape to leave move mode")
	}

	h.Send(alt('s'))
	h.Send(key(tea.KeyLeft))
	h.Send(key(tea.KeyEnter))
	if got := beta.Size(); got != (geometry.Size{Width: 28, Height: 10}) {
		t.Fatalf("expected Beta narrowed by one step, got %v", got)
	}
}

func TestShortcutsWithoutWindowsReportError(t *testing.T) {
	h := newTestHarness(t)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlW})
	if got := h.Model().errMsg; got != errNoActiveWindow.Error() {
		t.Fatalf("expected %q, got %q", errNoActiveWindow, got)
	}
	h.Send(alt('x'))
	if got := h.Model().errMsg; got != errNoActiveWindow.Error() {
		t.Fatalf("expected %q, got %q", errNoActiveWindow, got)
	}
}

func TestMaximizeMinimizeRestoreShortcuts(t *testing.T) {
	h := newTestHarness(t, alphaSpec(), betaSpec())
	m := h.Model()
	beta := findWindow(t, m, "Beta")

	h.Send(alt('x'))
	if beta.State() != wm.StateMaximized || beta.Bounds() != m.Manager().Surface() {
		t.Fatalf("expected Beta maximized over the surface, got %v %v", beta.State(), beta.Bounds())
	}
	h.Send(alt('x'))
	if beta.State() != wm.StateNormal {
		t.Fatalf("expected Beta restored, got %v", beta.State())
	}

	h.Send(alt('n'))
	if beta.State() != wm.StateMinimized {
		t.Fatalf("expected Beta minimized, got %v", beta.State())
	}
	if got := activeTitle(m); got != "Alpha" {
		t.Fatalf("expected Alpha to take over activation, got %q", got)
	}

	h.Send(alt('f'))
	alpha := findWindow(t, m, "Alpha")
	if alpha.State() != wm.StateFullScreen {
		t.Fatalf("expected Alpha full screen, got %v", alpha.State())
	}
	h.Send(alt('f'))
	if alpha.State() != wm.StateNormal {
		t.Fatalf("expected Alpha back to normal, got %v", alpha.State())
	}
}

func TestDoubleClickTitleMaximizes(t *testing.T) {
	h := newTestHarness(t, alphaSpec())
	alpha := findWindow(t, h.Model(), "Alpha")

	h.Send(press(10, 2))
	h.Send(release(10, 2))
	h.Send(press(10, 2))
	h.Send(release(10, 2))
	if alpha.State() != wm.StateMaximized {
		t.Fatalf("expected double click to maximize, got %v", alpha.State())
	}
}

func TestTitleBarButtons(t *testing.T) {
	h := newTestHarness(t, alphaSpec(), betaSpec())
	m := h.Model()
	beta := findWindow(t, m, "Beta")

	// Beta's title bar spans x 41..68 on row 6.
	h.Send(press(65, 6))
	if beta.State() != wm.StateMaximized {
		t.Fatalf("expected maximize button to maximize, got %v", beta.State())
	}
	h.Send(alt('r'))

	h.Send(press(63, 6))
	if beta.State() != wm.StateMinimized {
		t.Fatalf("expected minimize button to minimize, got %v", beta.State())
	}
	want := geometry.Rect{X: 40, Y: 5, Width: 20, Height: 1}
	if got := beta.Bounds(); got != want {
		t.Fatalf("expected minimized token at %v, got %v", want, got)
	}

	h.Send(press(45, 5))
	if beta.State() != wm.StateNormal || !beta.IsActive() {
		t.Fatalf("expected token click to restore and activate, got %v active=%v", beta.State(), beta.IsActive())
	}

	h.Send(press(67, 6))
	if !beta.IsClosed() {
		t.Fatalf("expected close button to close Beta")
	}
	if got := activeTitle(m); got != "Alpha" {
		t.Fatalf("expected Alpha active after close, got %q", got)
	}
}

func TestDragTitleBarMovesWindow(t *testing.T) {
	h := newTestHarness(t, alphaSpec(), betaSpec())
	m := h.Model()
	alpha := findWindow(t, m, "Alpha")

	h.Send(press(10, 2))
	if !alpha.IsActive() || !alpha.IsDragging() {
		t.Fatalf("expected press to activate Alpha and start a drag")
	}
	h.Send(motion(14, 4))
	h.Send(release(14, 4))
	if got := alpha.Position(); got != (geometry.Point{X: 6, Y: 3}) {
		t.Fatalf("expected Alpha dragged to (6,3), got %v", got)
	}
	if m.Manager().Captured() != nil {
		t.Fatalf("expected release to drop capture")
	}

	h.Send(motion(20, 10))
	if got := alpha.Position(); got != (geometry.Point{X: 6, Y: 3}) {
		t.Fatalf("expected motion without capture to be ignored, got %v", got)
	}
}

func TestClickTracker(t *testing.T) {
	var c clickTracker
	p := geometry.Point{X: 1, Y: 1}
	tests := []struct {
		name   string
		at     time.Duration
		pos    geometry.Point
		button tea.MouseButton
		want   int
	}{
		{name: "first", at: 0, pos: p, button: tea.MouseButtonLeft, want: 1},
		{name: "double", at: 100 * time.Millisecond, pos: p, button: tea.MouseButtonLeft, want: 2},
		{name: "triple", at: 200 * time.Millisecond, pos: p, button: tea.MouseButtonLeft, want: 3},
		{name: "too slow", at: time.Second, pos: p, button: tea.MouseButtonLeft, want: 1},
		{name: "other cell", at: time.Second + 10*time.Millisecond, pos: geometry.Point{X: 2, Y: 1}, button: tea.MouseButtonLeft, want: 1},
		{name: "other button", at: time.Second + 20*time.Millisecond, pos: geometry.Point{X: 2, Y: 1}, button: tea.MouseButtonRight, want: 1},
	}
	for _, tt := range tests {
		if got := c.press(tt.pos, tt.button, testNow.Add(tt.at)); got != tt.want {
			t.Fatalf("%s: expected %d clicks, got %d", tt.name, tt.want, got)
		}
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want wm.KeyEvent
	}{
		{msg: key(tea.KeyLeft), want: wm.KeyEvent{Key: wm.KeyLeft}},
		{msg: key(tea.KeyShiftTab), want: wm.KeyEvent{Key: wm.KeyTab, Shift: true}},
		{msg: key(tea.KeyEsc), want: wm.KeyEvent{Key: wm.KeyEscape}},
		{msg: runes("q"), want: wm.KeyEvent{Key: wm.KeyRune, Rune: 'q'}},
		{msg: alt('m'), want: wm.KeyEvent{Key: wm.KeyRune, Rune: 'm', Alt: true}},
	}
	for _, tt := range tests {
		if got := translateKey(tt.msg); got != tt.want {
			t.Fatalf("%s: expected %+v, got %+v", tt.msg, tt.want, got)
		}
	}
}
