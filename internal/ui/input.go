package ui

import (
	"errors"
	"time"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/logging/events"
	"github.com/atomicstack/vwm/internal/wm"
	tea "github.com/charmbracelet/bubbletea"
)

const doubleClickInterval = 400 * time.Millisecond

var errNoActiveWindow = errors.New("no active window")

type actionResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withAction clears the status line, runs action and reports its outcome.
func (m *Model) withAction(action func() actionResult) tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.setError(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
		events.Action.Success(result.Info)
	}
	return result.Cmd
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.errMsg = err.Error()
	events.Action.Error(err)
}

// onActive runs fn against the active window.
func (m *Model) onActive(fn func(w *wm.Window) error) tea.Cmd {
	return m.withAction(func() actionResult {
		w := m.manager.ActiveWindow()
		if w == nil {
			return actionResult{Err: errNoActiveWindow}
		}
		return actionResult{Err: fn(w)}
	})
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.clearInfo()
	switch {
	case m.prompt != nil:
		return m.handlePromptKey(key)
	case m.switcher != nil:
		return m.handleSwitcherKey(key)
	}

	if active := m.manager.ActiveWindow(); active != nil && active.KeyboardMode() != wm.KeyboardNone {
		handled := m.manager.HandleKey(translateKey(key))
		events.UI.Key(key.String(), handled)
		return nil
	}
	if cmd, handled := m.handleDialogKey(key); handled {
		events.UI.Key(key.String(), true)
		return cmd
	}

	s := key.String()
	switch s {
	case "ctrl+n", "f6":
		m.manager.HandleKey(wm.KeyEvent{Key: wm.KeyTab, Ctrl: true})
		events.UI.Key(s, true)
		return nil
	case "ctrl+p":
		m.manager.HandleKey(wm.KeyEvent{Key: wm.KeyTab, Ctrl: true, Shift: true})
		events.UI.Key(s, true)
		return nil
	}

	m.manager.ResetNavigation()
	cmd, handled := m.handleShortcut(s)
	if !handled {
		handled = m.manager.HandleKey(translateKey(key))
	}
	events.UI.Key(s, handled)
	return cmd
}

func (m *Model) handleShortcut(s string) (tea.Cmd, bool) {
	switch s {
	case "ctrl+c":
		return m.requestQuit(), true
	case "ctrl+f":
		return m.openSwitcher(), true
	case "ctrl+o":
		return m.openPrompt(), true
	case "ctrl+s":
		return m.saveLayout(), true
	case "ctrl+w":
		return m.onActive(m.closeWindow), true
	case "alt+m":
		return m.onActive((*wm.Window).BeginKeyboardMove), true
	case "alt+s":
		return m.onActive((*wm.Window).BeginKeyboardSize), true
	case "alt+x":
		return m.onActive((*wm.Window).ToggleMaximize), true
	case "alt+n":
		return m.onActive((*wm.Window).Minimize), true
	case "alt+r":
		return m.onActive((*wm.Window).Restore), true
	case "alt+f":
		return m.onActive(toggleFullScreen), true
	}
	return nil, false
}

func toggleFullScreen(w *wm.Window) error {
	if w.State() == wm.StateFullScreen {
		return w.Restore()
	}
	return w.SetState(wm.StateFullScreen)
}

// handleDialogKey answers the active dialog: y/enter accept, n/esc decline.
func (m *Model) handleDialogKey(key tea.KeyMsg) (tea.Cmd, bool) {
	w := m.manager.ActiveWindow()
	if w == nil || !w.IsDialog() {
		return nil, false
	}
	_, confirm := m.confirmFor[w]
	switch key.String() {
	case "y", "enter":
		if confirm {
			w.CloseWithResult(true)
		} else {
			w.CloseWithResult(dialogAccepted)
		}
		return nil, true
	case "n", "esc":
		if confirm {
			w.CloseWithResult(false)
		} else {
			w.CloseWithResult(dialogDismissed)
		}
		return nil, true
	}
	return nil, false
}

func translateKey(key tea.KeyMsg) wm.KeyEvent {
	ev := wm.KeyEvent{Alt: key.Alt}
	switch key.Type {
	case tea.KeyLeft:
		ev.Key = wm.KeyLeft
	case tea.KeyRight:
		ev.Key = wm.KeyRight
	case tea.KeyUp:
		ev.Key = wm.KeyUp
	case tea.KeyDown:
		ev.Key = wm.KeyDown
	case tea.KeyEnter:
		ev.Key = wm.KeyEnter
	case tea.KeyEsc:
		ev.Key = wm.KeyEscape
	case tea.KeyTab:
		ev.Key = wm.KeyTab
	case tea.KeyShiftTab:
		ev.Key = wm.KeyTab
		ev.Shift = true
	case tea.KeyF6:
		ev.Key = wm.KeyF6
	case tea.KeyRunes, tea.KeySpace:
		ev.Key = wm.KeyRune
		if len(key.Runes) > 0 {
			ev.Rune = key.Runes[0]
		}
	}
	return ev
}

// clickTracker counts presses of the same button on the same cell within
// doubleClickInterval.
type clickTracker struct {
	at     time.Time
	pos    geometry.Point
	button tea.MouseButton
	count  int
}

func (c *clickTracker) press(p geometry.Point, b tea.MouseButton, now time.Time) int {
	if c.count > 0 && p == c.pos && b == c.button && now.Sub(c.at) <= doubleClickInterval {
		c.count++
	} else {
		c.count = 1
	}
	c.at, c.pos, c.button = now, p, b
	return c.count
}

func (c *clickTracker) reset() { c.count = 0 }

func pointerButton(b tea.MouseButton) wm.Button {
	switch b {
	case tea.MouseButtonLeft:
		return wm.ButtonPrimary
	case tea.MouseButtonRight:
		return wm.ButtonSecondary
	case tea.MouseButtonMiddle:
		return wm.ButtonMiddle
	default:
		return wm.ButtonNone
	}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	p := geometry.Point{X: mouse.X, Y: mouse.Y}
	switch mouse.Action {
	case tea.MouseActionPress:
		if tea.MouseEvent(mouse).IsWheel() {
			return nil
		}
		if m.prompt != nil {
			return nil
		}
		if m.switcher != nil {
			m.closeSwitcher()
		}
		clicks := m.clicks.press(p, mouse.Button, m.now())
		events.UI.Mouse("press", buttonName(mouse.Button), p.X, p.Y, clicks)
		m.manager.ResetNavigation()
		if cmd, handled := m.handleChromePress(p, mouse.Button); handled {
			m.clicks.reset()
			return cmd
		}
		m.manager.HandlePointer(wm.PointerEvent{
			Kind:       wm.PointerPress,
			Position:   p,
			Button:     pointerButton(mouse.Button),
			ClickCount: clicks,
		})
	case tea.MouseActionMotion:
		if m.manager.Captured() == nil {
			return nil
		}
		m.manager.HandlePointer(wm.PointerEvent{Kind: wm.PointerMove, Position: p})
	case tea.MouseActionRelease:
		events.UI.Mouse("release", buttonName(mouse.Button), p.X, p.Y, 0)
		m.manager.HandlePointer(wm.PointerEvent{Kind: wm.PointerRelease, Position: p, Button: pointerButton(mouse.Button)})
	}
	return nil
}

// handleChromePress handles presses the host owns: title bar buttons and
// clicks on minimized tokens.
func (m *Model) handleChromePress(p geometry.Point, b tea.MouseButton) (tea.Cmd, bool) {
	if b != tea.MouseButtonLeft {
		return nil, false
	}
	w, region := m.manager.HitTest(p)
	if w == nil || region != wm.RegionTitleBar || m.manager.IsBlocked(w) || w.ModalChild() != nil {
		return nil, false
	}
	if w.State() == wm.StateMinimized {
		return m.withAction(func() actionResult { return actionResult{Err: w.Restore()} }), true
	}
	for _, btn := range titleButtons(w) {
		if btn.x != p.X || w.TitleBarBounds().Y != p.Y {
			continue
		}
		return m.withAction(func() actionResult {
			if err := w.Activate(); err != nil {
				return actionResult{Err: err}
			}
			switch btn.kind {
			case buttonMinimize:
				return actionResult{Err: w.Minimize()}
			case buttonMaximize:
				return actionResult{Err: w.ToggleMaximize()}
			default:
				return actionResult{Err: m.closeWindow(w)}
			}
		}), true
	}
	return nil, false
}

func buttonName(b tea.MouseButton) string {
	switch b {
	case tea.MouseButtonLeft:
		return "left"
	case tea.MouseButtonRight:
		return "right"
	case tea.MouseButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}
