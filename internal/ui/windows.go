package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/layout"
	"github.com/atomicstack/vwm/internal/logging"
	"github.com/atomicstack/vwm/internal/logging/events"
	"github.com/atomicstack/vwm/internal/ui/command"
	"github.com/atomicstack/vwm/internal/wm"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	dialogAccepted  = "ok"
	dialogDismissed = "cancel"
)

var errNoLayoutPath = errors.New("no layout file configured")

type dialogResultMsg struct {
	title string
	value any
	err   error
}

type confirmResultMsg struct {
	window *wm.Window
	close  bool
	err    error
}

type layoutSavedMsg struct {
	path    string
	windows int
	err     error
}

// observe keeps the model's bookkeeping in step with the manager.
func (m *Model) observe(ev wm.Event) {
	if ev.Kind != wm.EventClosed {
		return
	}
	w := ev.Window
	if name, ok := m.names[w]; ok {
		if m.byID[name] == w {
			delete(m.byID, name)
		}
		delete(m.names, w)
	}
	delete(m.confirm, w)
	delete(m.closeApproved, w)
	delete(m.confirmFor, w)
	if m.switcher != nil {
		m.refreshSwitcher()
	}
}

// nameOf returns the layout id of w, assigning one on first use.
func (m *Model) nameOf(w *wm.Window) string {
	if name, ok := m.names[w]; ok {
		return name
	}
	name := "w" + strconv.FormatUint(w.ID(), 10)
	m.names[w] = name
	m.byID[name] = w
	return name
}

// applyLayout opens the windows of doc. Windows whose id is already open are
// updated in place instead of opened again.
func (m *Model) applyLayout(doc *layout.Document, source string) {
	fresh := &layout.Document{}
	updated := 0
	for _, spec := range doc.Windows {
		if w := m.byID[spec.ID]; spec.ID != "" && w != nil && w.IsShown() {
			m.refreshWindow(w, spec)
			updated++
			continue
		}
		fresh.Windows = append(fresh.Windows, spec)
	}
	var opened int
	if len(fresh.Windows) > 0 {
		res, err := layout.Apply(m.manager, fresh, layout.ApplyOptions{
			Animate:  m.animate,
			Source:   source,
			Existing: m.byID,
		})
		if res != nil {
			opened = len(res.Windows)
			for id, w := range res.ByID {
				m.byID[id] = w
				m.names[w] = id
			}
			for w := range res.ConfirmClose {
				m.guardClose(w)
			}
			for w, fut := range res.Dialogs {
				m.awaitDialog(w, fut)
			}
		}
		if err != nil {
			logging.Error(err)
			m.setError(err)
			return
		}
	}
	if source != "" {
		m.setInfo(fmt.Sprintf("layout %s: %d opened, %d updated", source, opened, updated))
	}
}

func (m *Model) refreshWindow(w *wm.Window, spec layout.WindowSpec) {
	if spec.Title != "" {
		w.SetTitle(spec.Title)
	}
	if lines := spec.BodyLines(); len(lines) > 0 {
		w.SetContent(wm.TextContent{Lines: lines})
		w.Remeasure()
	}
	if spec.ConfirmClose && !m.confirm[w] {
		m.guardClose(w)
	}
}

// guardClose makes w ask for confirmation before it closes.
func (m *Model) guardClose(w *wm.Window) {
	if m.confirm[w] {
		return
	}
	m.confirm[w] = true
	w.OnClosing(func(ev *wm.ClosingEvent) {
		if !m.confirm[w] || m.closeApproved[w] {
			return
		}
		ev.Cancel = true
		m.askToClose(w)
	})
}

func (m *Model) askToClose(w *wm.Window) {
	if w.ModalChild() != nil {
		if _, asking := m.confirmFor[w.ModalChild()]; !asking {
			m.setError(fmt.Errorf("%s: close the open dialog first", w.Title()))
		}
		return
	}
	dialog := wm.NewWindow("Close "+w.Title()+"?",
		wm.WithCapabilities(wm.Capabilities{Closable: true, ModalCapable: true}),
		wm.WithSizeToContent(geometry.SizeWidthAndHeight),
		wm.WithStartupLocation(geometry.StartupCenterOwner),
		wm.WithAnimate(m.animate),
		wm.WithContent(wm.TextContent{Lines: []string{
			"Close this window?",
			"",
			"[y] close   [n] keep",
		}}),
	)
	fut, err := wm.ShowDialog[bool](dialog, w)
	if err != nil {
		m.setError(err)
		return
	}
	m.confirmFor[dialog] = w
	fut.Then(func(bool, error) {
		m.pending = append(m.pending, command.Await(m.bus, "window:confirm-close", w.Title(), fut,
			func(ok bool, err error) tea.Msg {
				return confirmResultMsg{window: w, close: ok, err: err}
			}))
	})
}

func (m *Model) awaitDialog(dialog *wm.Window, fut *wm.Future[any]) {
	title := dialog.Title()
	fut.Then(func(any, error) {
		m.pending = append(m.pending, command.Await(m.bus, "dialog:result", title, fut,
			func(v any, err error) tea.Msg {
				return dialogResultMsg{title: title, value: v, err: err}
			}))
	})
}

func (m *Model) handleDialogResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(dialogResultMsg)
	if !ok {
		return nil
	}
	return m.withAction(func() actionResult {
		if res.err != nil {
			return actionResult{Err: fmt.Errorf("%s: %w", res.title, res.err)}
		}
		if res.value == nil {
			return actionResult{Info: res.title + " closed"}
		}
		return actionResult{Info: fmt.Sprintf("%s: %v", res.title, res.value)}
	})
}

func (m *Model) handleConfirmResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(confirmResultMsg)
	if !ok {
		return nil
	}
	return m.withAction(func() actionResult {
		if res.err != nil {
			return actionResult{Err: res.err}
		}
		if !res.close {
			if m.quitting {
				m.quitting = false
				return actionResult{Info: "quit cancelled"}
			}
			return actionResult{}
		}
		w := res.window
		if !w.IsShown() {
			return actionResult{}
		}
		m.closeApproved[w] = true
		if !w.Close() {
			delete(m.closeApproved, w)
			return actionResult{Err: fmt.Errorf("%s: %w", w.Title(), wm.ErrCloseVetoed)}
		}
		return actionResult{}
	})
}

// closeWindow asks w to close. A veto that opened a confirmation dialog is
// not an error.
func (m *Model) closeWindow(w *wm.Window) error {
	if !w.Capabilities().Closable {
		return fmt.Errorf("%s: close: %w", w.Title(), wm.ErrUnsupportedOperation)
	}
	if w.Close() {
		return nil
	}
	if child := w.ModalChild(); child != nil {
		if _, asking := m.confirmFor[child]; asking {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", w.Title(), wm.ErrCloseVetoed)
}

// requestQuit closes every window; the program exits once none remain. A
// second request while windows are still asking exits immediately.
func (m *Model) requestQuit() tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	m.quitting = true
	if err := m.manager.CloseAll(); err != nil {
		events.Action.Error(err)
		m.setInfo("waiting for windows to confirm close (ctrl+c again to force)")
	}
	return nil
}

// openWindow shows a new top-level window titled title.
func (m *Model) openWindow(title string) error {
	w := wm.NewWindow(title,
		wm.WithStartupLocation(geometry.StartupCenterScreen),
		wm.WithAnimate(m.animate),
		wm.WithContent(wm.TextContent{Lines: []string{title}}),
	)
	return m.manager.ShowWindow(w)
}

// focusWindow brings w forward, restoring it when minimized. A window
// waiting on a dialog hands focus to the dialog.
func (m *Model) focusWindow(w *wm.Window) error {
	target := w
	for target.ModalChild() != nil {
		target = target.ModalChild()
	}
	if target.State() == wm.StateMinimized {
		return target.Restore()
	}
	if m.manager.IsBlocked(target) {
		return fmt.Errorf("%s is blocked by a dialog", target.Title())
	}
	return target.Activate()
}

func (m *Model) saveLayout() tea.Cmd {
	return m.withAction(func() actionResult {
		if m.layoutPath == "" {
			return actionResult{Err: errNoLayoutPath}
		}
		doc := layout.Snapshot(m.manager, layout.SnapshotOptions{
			ConfirmClose: func(w *wm.Window) bool { return m.confirm[w] },
			ID:           m.nameOf,
		})
		path := m.layoutPath
		return actionResult{Cmd: m.bus.Execute(command.Request{
			ID:    "layout:save",
			Label: path,
			Handler: func(context.Context) tea.Msg {
				return layoutSavedMsg{path: path, windows: len(doc.Windows), err: doc.Save(path)}
			},
		})}
	})
}

func (m *Model) handleLayoutSavedMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(layoutSavedMsg)
	if !ok {
		return nil
	}
	return m.withAction(func() actionResult {
		if res.err != nil {
			logging.Error(res.err)
			return actionResult{Err: fmt.Errorf("save %s: %w", res.path, res.err)}
		}
		return actionResult{Info: fmt.Sprintf("saved %d windows to %s", res.windows, res.path)}
	})
}
