package ui

import (
	"strings"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type cell struct {
	ch    rune
	style *lipgloss.Style
	// wide marks the second column of a double-width rune.
	wide bool
}

// canvas is a grid of styled cells painted back to front.
type canvas struct {
	width  int
	height int
	cells  []cell
}

func newCanvas(width, height int, bg *lipgloss.Style) *canvas {
	c := &canvas{width: max(width, 0), height: max(height, 0)}
	c.cells = make([]cell, c.width*c.height)
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', style: bg}
	}
	return c
}

func (c *canvas) bounds() geometry.Rect {
	return geometry.Rect{Width: c.width, Height: c.height}
}

func (c *canvas) set(x, y int, ch rune, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	i := y*c.width + x
	if c.cells[i].wide && x > 0 {
		c.cells[i-1].ch = ' '
	}
	if x+1 < c.width && c.cells[i+1].wide {
		c.cells[i+1] = cell{ch: ' ', style: c.cells[i+1].style}
	}
	c.cells[i] = cell{ch: ch, style: st}
}

// setTail marks (x, y) as the second column of the wide rune to its left.
func (c *canvas) setTail(x, y int, st *lipgloss.Style) {
	if x <= 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	i := y*c.width + x
	if x+1 < c.width && c.cells[i+1].wide {
		c.cells[i+1] = cell{ch: ' ', style: c.cells[i+1].style}
	}
	c.cells[i] = cell{ch: ' ', style: st, wide: true}
}

func (c *canvas) fill(r geometry.Rect, ch rune, st *lipgloss.Style) {
	r = r.Intersect(c.bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.set(x, y, ch, st)
		}
	}
}

// write paints s from (x, y), using at most limit columns. It returns the
// number of columns used.
func (c *canvas) write(x, y, limit int, s string, st *lipgloss.Style) int {
	used := 0
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		if used+w > limit {
			break
		}
		px := x + used
		c.set(px, y, r, st)
		if w == 2 {
			c.setTail(px+1, y, st)
		}
		used += w
	}
	return used
}

// lines renders each row, grouping runs of cells that share a style.
func (c *canvas) lines() []string {
	out := make([]string, c.height)
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		var row strings.Builder
		var current *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current != nil {
				row.WriteString(current.Render(run.String()))
			} else {
				row.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			cl := c.cells[y*c.width+x]
			if cl.wide {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.ch)
		}
		flush()
		out[y] = row.String()
	}
	return out
}
