package ui

import (
	"fmt"

	"github.com/atomicstack/vwm/internal/backend"
	"github.com/atomicstack/vwm/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent merges a reloaded layout into the desktop. Removal and
// load failures only update the status line; open windows are kept.
func (m *Model) applyBackendEvent(evt backend.Event) {
	switch {
	case evt.Kind == backend.KindLayoutRemoved:
		m.setInfo(fmt.Sprintf("layout %s removed", evt.Path))
	case evt.Err != nil:
		err := fmt.Errorf("reload %s: %w", evt.Path, evt.Err)
		logging.Error(err)
		m.setError(err)
	case evt.Data != nil:
		m.errMsg = ""
		m.applyLayout(evt.Data, evt.Path)
	}
}
