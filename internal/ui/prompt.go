package ui

import (
	"errors"
	"strings"

	"github.com/atomicstack/vwm/internal/logging/events"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const promptLabel = "New window: "

var errEmptyTitle = errors.New("window title required")

// windowPrompt collects the title of a window to open.
type windowPrompt struct {
	input textinput.Model
}

func newWindowPrompt(blink bool) *windowPrompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "window title"
	ti.CharLimit = 64
	if styles.Filter != nil {
		ti.TextStyle = *styles.Filter
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FilterPlaceholder
	}
	if !blink {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	ti.Focus()
	return &windowPrompt{input: ti}
}

func (p *windowPrompt) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *windowPrompt) value() string { return strings.TrimSpace(p.input.Value()) }

func (p *windowPrompt) view() string { return p.input.View() }

func (m *Model) openPrompt() tea.Cmd {
	if m.switcher != nil {
		m.closeSwitcher()
	}
	m.prompt = newWindowPrompt(m.blink)
	events.UI.Prompt("new-window")
	if m.blink {
		return textinput.Blink
	}
	return nil
}

func (m *Model) handlePromptKey(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEsc:
		m.prompt = nil
		events.UI.Key(key.String(), true)
		return nil
	case tea.KeyEnter:
		title := m.prompt.value()
		events.UI.Key(key.String(), true)
		return m.withAction(func() actionResult {
			if title == "" {
				return actionResult{Err: errEmptyTitle}
			}
			m.prompt = nil
			if err := m.openWindow(title); err != nil {
				return actionResult{Err: err}
			}
			return actionResult{Info: "opened " + title}
		})
	}
	if key.String() == "ctrl+u" {
		m.prompt.input.SetValue("")
		m.prompt.input.CursorStart()
		return nil
	}
	return m.prompt.update(key)
}
