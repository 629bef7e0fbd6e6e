package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/vwm/internal/format/table"
	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/wm"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const footerHints = "^N/^P switch  ^F find  ^O new  ^W close  M-m move  M-s size  M-x max  M-n min  M-f full  ^S save  ^C quit"

type buttonKind int

const (
	buttonMinimize buttonKind = iota
	buttonMaximize
	buttonClose
)

type titleButton struct {
	kind  buttonKind
	x     int
	glyph rune
}

// titleButtons places the caption buttons at the right end of the title
// bar, one column apart with one column of padding.
func titleButtons(w *wm.Window) []titleButton {
	tb := w.TitleBarBounds()
	if tb.IsEmpty() || w.State() == wm.StateMinimized {
		return nil
	}
	caps := w.Capabilities()
	var kinds []buttonKind
	if caps.Resizable && !w.IsDialog() {
		kinds = append(kinds, buttonMinimize, buttonMaximize)
	}
	if caps.Closable {
		kinds = append(kinds, buttonClose)
	}
	if tb.Width < 2*len(kinds)+2 {
		return nil
	}
	buttons := make([]titleButton, len(kinds))
	for i, kind := range kinds {
		b := titleButton{kind: kind, x: tb.Right() - 2 - 2*(len(kinds)-1-i)}
		switch kind {
		case buttonMinimize:
			b.glyph = '_'
		case buttonMaximize:
			b.glyph = '□'
			if w.State() == wm.StateMaximized {
				b.glyph = '❐'
			}
		default:
			b.glyph = '×'
		}
		buttons[i] = b
	}
	return buttons
}

// View renders the desktop, the overlays and the status row.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := newCanvas(m.width, m.surfaceHeight(), styles.Desktop)
	for _, w := range m.manager.Windows() {
		m.drawWindow(c, w)
	}
	if m.switcher != nil {
		m.drawSwitcher(c)
	}
	lines := c.lines()
	if footer, ok := m.footerLine(); ok {
		if m.showFooter {
			lines = append(lines, footer)
		} else if len(lines) > 0 {
			lines[len(lines)-1] = footer
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) drawWindow(c *canvas, w *wm.Window) {
	r := w.Bounds()
	blocked := m.manager.IsBlocked(w) || w.ModalChild() != nil
	if w.State() == wm.StateMinimized {
		st := styles.Minimized
		if blocked {
			st = styles.Dimmed
		}
		c.fill(r, ' ', st)
		c.write(r.X+1, r.Y, r.Width-2, w.Title(), st)
		return
	}

	body := styles.Body
	if blocked {
		body = styles.DimmedBody
	}
	c.fill(r, ' ', body)
	if w.Decorations().Border {
		m.drawBorder(c, w, r, blocked)
	}
	if tb := w.TitleBarBounds(); !tb.IsEmpty() {
		m.drawTitleBar(c, w, tb, blocked)
	}
	if text, ok := w.Content().(wm.TextContent); ok {
		cb := w.ClientBounds()
		for i, line := range text.Lines {
			if i >= cb.Height {
				break
			}
			c.write(cb.X, cb.Y+i, cb.Width, ansi.Strip(line), body)
		}
	}
}

func (m *Model) drawBorder(c *canvas, w *wm.Window, r geometry.Rect, blocked bool) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	border := lipgloss.RoundedBorder()
	st := styles.Border
	switch {
	case blocked:
		st = styles.Dimmed
	case w.IsActive():
		border = lipgloss.ThickBorder()
		st = styles.BorderActive
		if w.IsDialog() {
			st = styles.Dialog
		}
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, firstRune(border.Top), st)
		c.set(x, bottom, firstRune(border.Bottom), st)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, firstRune(border.Left), st)
		c.set(right, y, firstRune(border.Right), st)
	}
	c.set(r.X, r.Y, firstRune(border.TopLeft), st)
	c.set(right, r.Y, firstRune(border.TopRight), st)
	c.set(r.X, bottom, firstRune(border.BottomLeft), st)
	c.set(right, bottom, firstRune(border.BottomRight), st)
}

func (m *Model) drawTitleBar(c *canvas, w *wm.Window, tb geometry.Rect, blocked bool) {
	st := styles.Title
	switch {
	case blocked:
		st = styles.Dimmed
	case w.IsActive():
		st = styles.TitleActive
	}
	c.fill(tb, ' ', st)
	buttons := titleButtons(w)
	avail := tb.Width - 2 - 2*len(buttons)
	used := c.write(tb.X+1, tb.Y, avail, w.Title(), st)
	if mode := w.KeyboardMode(); mode != wm.KeyboardNone {
		tag := " " + mode.String() + " "
		if used+1+ansi.StringWidth(tag) <= avail {
			c.write(tb.X+2+used, tb.Y, avail-used-1, tag, styles.Mode)
		}
	}
	bst := styles.Button
	if blocked {
		bst = styles.Dimmed
	}
	for _, b := range buttons {
		c.set(b.x, tb.Y, b.glyph, bst)
	}
}

// switcherRect centres a box for rows entries on the surface.
func switcherRect(surface geometry.Rect, rows int) geometry.Rect {
	size := geometry.Size{
		Width:  max(min(60, surface.Width-4), 0),
		Height: max(min(rows+3, surface.Height-2), 0),
	}
	return surface.CenterRect(size)
}

func (m *Model) drawSwitcher(c *canvas) {
	l := m.switcher
	surface := c.bounds()
	visible := l.Visible(min(switcherMaxRows, max(surface.Height-5, 1)))
	box := switcherRect(surface, len(visible))
	if box.Width < 10 || box.Height < 3 {
		return
	}
	c.fill(box, ' ', styles.SwitcherItem)
	border := lipgloss.RoundedBorder()
	right, bottom := box.Right()-1, box.Bottom()-1
	for x := box.X + 1; x < right; x++ {
		c.set(x, box.Y, firstRune(border.Top), styles.SwitcherBorder)
		c.set(x, bottom, firstRune(border.Bottom), styles.SwitcherBorder)
	}
	for y := box.Y + 1; y < bottom; y++ {
		c.set(box.X, y, firstRune(border.Left), styles.SwitcherBorder)
		c.set(right, y, firstRune(border.Right), styles.SwitcherBorder)
	}
	c.set(box.X, box.Y, firstRune(border.TopLeft), styles.SwitcherBorder)
	c.set(right, box.Y, firstRune(border.TopRight), styles.SwitcherBorder)
	c.set(box.X, bottom, firstRune(border.BottomLeft), styles.SwitcherBorder)
	c.set(right, bottom, firstRune(border.BottomRight), styles.SwitcherBorder)

	inner := box.Width - 4
	header := fmt.Sprintf("Windows %d/%d", l.Len(), len(l.Entries()))
	c.write(box.X+2, box.Y+1, inner, header, styles.SwitcherHeader)
	if len(visible) == 0 {
		c.write(box.X+2, box.Y+2, inner, "no match", styles.SwitcherItem)
		return
	}
	rows := make([][]string, len(visible))
	for i, e := range visible {
		rows[i] = append([]string{e.Label}, e.Detail...)
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight})
	for i, line := range formatted {
		y := box.Y + 2 + i
		if y >= bottom {
			break
		}
		st := styles.SwitcherItem
		if l.Offset+i == l.Cursor {
			st = styles.SwitcherActive
		}
		c.write(box.X+1, y, inner+2, table.Fit(" "+line, inner+2), st)
	}
}

// footerLine returns the status row: the prompt or switcher filter while
// they are open, then errors, then info, then key hints when the footer is
// enabled.
func (m *Model) footerLine() (string, bool) {
	var line string
	switch {
	case m.prompt != nil:
		line = styles.FilterPrompt.Render(promptLabel) + m.prompt.view()
	case m.switcher != nil:
		line = styles.FilterPrompt.Render("find › ") + m.filterView()
	case m.errMsg != "":
		line = styles.Error.Render(m.errMsg)
	case m.currentInfo() != "":
		line = styles.Info.Render(m.infoMsg)
	case m.showFooter:
		line = styles.Footer.Render(footerHints)
	default:
		return "", false
	}
	if lipgloss.Width(line) > m.width {
		line = truncate.StringWithTail(line, uint(max(m.width-1, 0)), "…")
	}
	return line, true
}

// filterView renders the switcher query with the cursor on its rune.
func (m *Model) filterView() string {
	l := m.switcher
	if l.Filter == "" {
		m.filterCursor.SetChar(" ")
		return m.filterCursor.View() + styles.FilterPlaceholder.Render("type to filter")
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	char := " "
	after := ""
	if pos < len(runes) {
		char = string(runes[pos])
		after = string(runes[pos+1:])
	}
	m.filterCursor.SetChar(char)
	return styles.Filter.Render(string(runes[:pos])) + m.filterCursor.View() + styles.Filter.Render(after)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
