package wm

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/vwm/internal/geometry"
)

// Element is a focusable part of a window's content.
type Element interface {
	HostWindow() *Window
}

// FocusManager is the host's keyboard focus service. Deactivate records the
// focused element when it belongs to the window; Activate restores it.
type FocusManager interface {
	FocusedElement() Element
	Focus(Element)
}

// Content is the measurable body of a window. Measure returns the size the
// content wants inside the window chrome.
type Content interface {
	Measure(available geometry.Size) geometry.Size
}

// DefaultFocuser is implemented by content that names the element to focus
// the first time its window is activated.
type DefaultFocuser interface {
	DefaultFocus() Element
}

// TextContent is a static block of text lines.
type TextContent struct {
	Lines []string
}

// Measure reports the widest line and the line count, capped by available.
func (c TextContent) Measure(available geometry.Size) geometry.Size {
	width := 0
	for _, line := range c.Lines {
		width = max(width, ansi.StringWidth(line))
	}
	size := geometry.Size{Width: width, Height: len(c.Lines)}
	if available.Width > 0 {
		size.Width = min(size.Width, available.Width)
	}
	if available.Height > 0 {
		size.Height = min(size.Height, available.Height)
	}
	return size
}

func (w *Window) captureFocus() {
	m := w.manager
	if m == nil || m.focus == nil {
		return
	}
	if el := m.focus.FocusedElement(); el != nil && el.HostWindow() == w {
		w.focus = el
	}
}

func (w *Window) restoreFocus() {
	m := w.manager
	if m == nil || m.focus == nil {
		return
	}
	if w.focus == nil {
		if df, ok := w.content.(DefaultFocuser); ok {
			w.focus = df.DefaultFocus()
		}
	}
	if w.focus != nil {
		m.focus.Focus(w.focus)
	}
}

// FocusedElement returns the element restored on the next activation.
func (w *Window) FocusedElement() Element { return w.focus }
