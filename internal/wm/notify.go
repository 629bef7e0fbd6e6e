package wm

import (
	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/logging/events"
)

// OnOpened registers fn to run after the window is shown. The returned
// function unregisters it.
func (w *Window) OnOpened(fn func(*Window)) func() { return w.opened.add(fn) }

// OnClosed registers fn to run exactly once when the window finishes closing.
func (w *Window) OnClosed(fn func(*Window)) func() { return w.closed.add(fn) }

func (w *Window) OnActivated(fn func(*Window)) func() { return w.activated.add(fn) }

func (w *Window) OnDeactivated(fn func(*Window)) func() { return w.deactivated.add(fn) }

// OnClosing registers a cancellable close handler.
func (w *Window) OnClosing(fn func(*ClosingEvent)) func() { return w.closing.add(fn) }

func (w *Window) OnPositionChanged(fn func(PositionChangedEvent)) func() {
	return w.positionChanged.add(fn)
}

func (w *Window) OnResized(fn func(ResizedEvent)) func() { return w.resized.add(fn) }

// OnStateChanged runs after every committed size-state transition.
func (w *Window) OnStateChanged(fn func(*Window)) func() { return w.stateChanged.add(fn) }

func (w *Window) publish(ev Event) {
	if w.manager == nil {
		return
	}
	ev.Window = w
	ev.State = w.state
	if ev.Bounds.IsEmpty() {
		ev.Bounds = w.geometry
	}
	w.manager.publish(ev)
}

func (w *Window) emitOpened() {
	events.Window.Opened(w.id, w.title, w.geometry.String(), w.state.String())
	w.opened.emit(w)
	w.publish(Event{Kind: EventOpened})
}

func (w *Window) emitActivated() {
	events.Window.Activated(w.id)
	w.activated.emit(w)
	w.publish(Event{Kind: EventActivated})
}

func (w *Window) emitDeactivated() {
	events.Window.Deactivated(w.id)
	w.deactivated.emit(w)
	w.publish(Event{Kind: EventDeactivated})
}

func (w *Window) emitClosing(ev *ClosingEvent) {
	events.Window.Closing(w.id, ev.Reason.String(), ev.Programmatic)
	w.closing.emit(ev)
}

func (w *Window) emitPositionChanged(p geometry.Point) {
	events.Window.Moved(w.id, p.X, p.Y)
	w.positionChanged.emit(PositionChangedEvent{Window: w, Position: p})
	w.publish(Event{Kind: EventPositionChanged})
}

func (w *Window) emitResized(s geometry.Size, reason ResizeReason) {
	events.Window.Resized(w.id, s.Width, s.Height, reason.String())
	w.resized.emit(ResizedEvent{Window: w, Size: s, Reason: reason})
	w.publish(Event{Kind: EventResized, Reason: reason})
}

func (w *Window) emitStateChanged(from WindowState) {
	events.Window.State(w.id, from.String(), w.state.String())
	w.stateChanged.emit(w)
	w.publish(Event{Kind: EventStateChanged})
}
