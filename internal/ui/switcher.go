package ui

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/atomicstack/vwm/internal/logging/events"
	uistate "github.com/atomicstack/vwm/internal/ui/state"
	"github.com/atomicstack/vwm/internal/wm"
	tea "github.com/charmbracelet/bubbletea"
)

const switcherMaxRows = 12

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if m.switcher != nil && before != m.switcher.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// switcherEntries lists the open windows, topmost first.
func (m *Model) switcherEntries() []uistate.Entry {
	ws := m.manager.Windows()
	entries := make([]uistate.Entry, 0, len(ws))
	for _, w := range slices.Backward(ws) {
		if !w.IsShown() {
			continue
		}
		size := w.Size()
		state := w.State().String()
		if m.manager.IsBlocked(w) {
			state += " (blocked)"
		}
		entries = append(entries, uistate.Entry{
			ID:     strconv.FormatUint(w.ID(), 10),
			Label:  w.Title(),
			Detail: []string{state, fmt.Sprintf("%dx%d", size.Width, size.Height)},
		})
	}
	return entries
}

func (m *Model) windowByEntry(e uistate.Entry) *wm.Window {
	for _, w := range m.manager.Windows() {
		if strconv.FormatUint(w.ID(), 10) == e.ID {
			return w
		}
	}
	return nil
}

func (m *Model) openSwitcher() tea.Cmd {
	entries := m.switcherEntries()
	if len(entries) == 0 {
		return m.withAction(func() actionResult { return actionResult{Info: "no windows open"} })
	}
	m.switcher = uistate.NewList("switcher", entries)
	if active := m.manager.ActiveWindow(); active != nil {
		if idx := m.switcher.IndexOf(strconv.FormatUint(active.ID(), 10)); idx >= 0 {
			m.switcher.Cursor = idx
		}
	}
	events.UI.SwitcherOpen(len(entries))
	return m.filterCursor.Focus()
}

func (m *Model) refreshSwitcher() {
	entries := m.switcherEntries()
	if len(entries) == 0 {
		m.closeSwitcher()
		return
	}
	m.switcher.SetEntries(entries)
}

func (m *Model) closeSwitcher() {
	m.switcher = nil
	m.filterCursor.Blur()
}

func (m *Model) handleSwitcherKey(key tea.KeyMsg) tea.Cmd {
	l := m.switcher
	before := l.FilterCursorPos()
	defer m.noteFilterCursorChange(before)

	s := key.String()
	switch s {
	case "esc", "ctrl+f":
		m.closeSwitcher()
		return nil
	case "enter":
		return m.selectSwitcherEntry()
	case "up", "ctrl+p", "shift+tab":
		l.CycleCursor(-1)
		return nil
	case "down", "ctrl+n", "tab":
		l.CycleCursor(1)
		return nil
	case "pgup":
		l.MoveCursorPage(-1, switcherMaxRows)
		return nil
	case "pgdown":
		l.MoveCursorPage(1, switcherMaxRows)
		return nil
	case "home":
		l.MoveCursorHome()
		return nil
	case "end":
		l.MoveCursorEnd()
		return nil
	case "ctrl+u":
		if l.Filter != "" {
			l.SetFilter("", 0)
			events.Filter.Cleared(l.ID)
		}
		return nil
	case "ctrl+w":
		if l.DeleteFilterWordBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
		}
		return nil
	case "backspace":
		if l.DeleteFilterRuneBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
		}
		return nil
	case "left":
		if l.MoveFilterCursor(-1) {
			events.Filter.Cursor(l.ID, l.FilterCursor)
		}
		return nil
	case "right":
		if l.MoveFilterCursor(1) {
			events.Filter.Cursor(l.ID, l.FilterCursor)
		}
		return nil
	case "alt+b":
		l.MoveFilterCursorWord(-1)
		return nil
	case "alt+f":
		l.MoveFilterCursorWord(1)
		return nil
	case "ctrl+a":
		l.MoveFilterCursor(-len(l.Filter))
		return nil
	case "ctrl+e":
		l.MoveFilterCursor(len(l.Filter))
		return nil
	}
	if key.Type == tea.KeyRunes || key.Type == tea.KeySpace {
		text := string(key.Runes)
		if key.Type == tea.KeySpace {
			text = " "
		}
		if l.InsertFilterText(text) {
			events.Filter.Append(l.ID, l.Filter)
		}
	}
	return nil
}

func (m *Model) selectSwitcherEntry() tea.Cmd {
	entry, ok := m.switcher.Selected()
	m.closeSwitcher()
	if !ok {
		return nil
	}
	w := m.windowByEntry(entry)
	return m.withAction(func() actionResult {
		if w == nil {
			return actionResult{Err: fmt.Errorf("window %s is gone", entry.Label)}
		}
		events.UI.SwitcherSelect(w.ID(), w.Title())
		return actionResult{Err: m.focusWindow(w)}
	})
}
