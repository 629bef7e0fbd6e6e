package wm

import (
	"slices"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/logging/events"
)

type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
	PointerCaptureLost
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	case PointerCaptureLost:
		return "capture-lost"
	default:
		return "unknown"
	}
}

// PointerEvent is a host pointer notification in surface coordinates.
type PointerEvent struct {
	Kind       PointerKind
	Position   geometry.Point
	Button     Button
	ClickCount int
}

// Region is the part of a window under a point.
type Region int

const (
	RegionNone Region = iota
	RegionClient
	RegionTitleBar
	RegionBorder
)

func (r Region) String() string {
	switch r {
	case RegionClient:
		return "client"
	case RegionTitleBar:
		return "titlebar"
	case RegionBorder:
		return "border"
	default:
		return "none"
	}
}

type dragSession struct {
	last geometry.Point
}

type resizeSession struct {
	edge geometry.Edge
	last geometry.Point
}

// HitTest returns the topmost window containing p and the region hit.
func (m *Manager) HitTest(p geometry.Point) (*Window, Region) {
	ws := m.Windows()
	for _, w := range slices.Backward(ws) {
		if w.lifecycle != lifecycleShown || !w.geometry.Contains(p) {
			continue
		}
		return w, w.regionAt(p)
	}
	return nil, RegionNone
}

func (w *Window) regionAt(p geometry.Point) Region {
	border, _ := w.chromeMetrics()
	if w.decorations.Border && geometry.ClassifyEdge(p, w.geometry, border) != geometry.EdgeNone {
		return RegionBorder
	}
	if w.TitleBarBounds().Contains(p) {
		return RegionTitleBar
	}
	return RegionClient
}

// IsDragging reports whether a title bar drag session is active.
func (w *Window) IsDragging() bool { return w.drag != nil }

// IsResizing reports whether a border resize session is active.
func (w *Window) IsResizing() bool { return w.resize != nil }

// Captured returns the window holding pointer capture, if any.
func (m *Manager) Captured() *Window { return m.captured }

// HandlePointer routes a pointer event. It reports whether the event was
// consumed by a window.
func (m *Manager) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerPress:
		if c := m.captured; c != nil {
			c.endPointerSession()
		}
		w, region := m.HitTest(ev.Position)
		if w == nil {
			return false
		}
		return w.handlePress(ev, region)
	case PointerMove:
		if c := m.captured; c != nil {
			c.handleMove(ev.Position)
			return true
		}
		return false
	case PointerRelease, PointerCaptureLost:
		if c := m.captured; c != nil {
			c.endPointerSession()
			return true
		}
		return false
	}
	return false
}

func (w *Window) handlePress(ev PointerEvent, region Region) bool {
	m := w.manager
	w.kbMode = KeyboardNone
	if !m.allowsInteraction(w) {
		events.Dialog.Blocked(w.id)
		return true
	}
	if w.modalChild != nil {
		events.Dialog.Blocked(w.id)
		_ = w.deepestModal().Activate()
		return true
	}
	if !w.active {
		_ = w.Activate()
	}
	if ev.Button != ButtonPrimary {
		return true
	}
	switch region {
	case RegionTitleBar:
		if ev.ClickCount >= 2 {
			_ = w.ToggleMaximize()
			return true
		}
		if w.state == StateNormal {
			w.settleAnimation()
			w.drag = &dragSession{last: ev.Position}
			m.captured = w
			events.Window.Session(w.id, "drag", true)
		}
	case RegionBorder:
		if !w.caps.Resizable || w.state != StateNormal {
			return true
		}
		border, _ := w.chromeMetrics()
		edge := geometry.ClassifyEdge(ev.Position, w.geometry, border)
		if edge == geometry.EdgeNone {
			return true
		}
		w.settleAnimation()
		w.resize = &resizeSession{edge: edge, last: ev.Position}
		m.captured = w
		events.Window.Session(w.id, "resize", true)
	case RegionClient:
		if ev.ClickCount >= 2 && w.state == StateMinimized {
			_ = w.Restore()
		}
	}
	return true
}

func (w *Window) handleMove(p geometry.Point) {
	if w.modalChild != nil || w.state != StateNormal {
		w.endPointerSession()
		return
	}
	switch {
	case w.drag != nil:
		delta := p.Sub(w.drag.last)
		if delta.IsZero() {
			return
		}
		w.drag.last = p
		w.commitGeometry(w.geometry.Translate(delta), ResizeUser)
	case w.resize != nil:
		delta := p.Sub(w.resize.last)
		if delta.IsZero() {
			return
		}
		w.resize.last = p
		next := geometry.ApplyResize(w.geometry, w.resize.edge, delta.X, delta.Y, w.bounds)
		if next == w.geometry {
			return
		}
		w.sizeToContent = geometry.SizeManual
		w.commitGeometry(next, ResizeUser)
	}
}

func (w *Window) endPointerSession() {
	switch {
	case w.drag != nil:
		events.Window.Session(w.id, "drag", false)
	case w.resize != nil:
		events.Window.Session(w.id, "resize", false)
	}
	w.drag = nil
	w.resize = nil
	if m := w.manager; m != nil && m.captured == w {
		m.captured = nil
	}
}
