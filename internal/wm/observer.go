package wm

import (
	"slices"

	"github.com/atomicstack/vwm/internal/geometry"
)

// observers is a synchronous handler list invoked in registration order.
// Handlers added or removed during an emission take effect on the next one.
type observers[T any] struct {
	next    int
	entries []observer[T]
}

type observer[T any] struct {
	id int
	fn func(T)
}

func (o *observers[T]) add(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	o.next++
	id := o.next
	o.entries = append(o.entries, observer[T]{id: id, fn: fn})
	return func() {
		o.entries = slices.DeleteFunc(o.entries, func(e observer[T]) bool {
			return e.id == id
		})
	}
}

func (o *observers[T]) emit(v T) {
	for _, e := range slices.Clone(o.entries) {
		e.fn(v)
	}
}

// ClosingEvent is passed to Closing handlers. Setting Cancel vetoes the close.
type ClosingEvent struct {
	Window       *Window
	Reason       CloseReason
	Programmatic bool
	// Result is the value passed to CloseWithResult, if any.
	Result any
	Cancel bool
}

// NewClosingEvent builds a cancellable closing notification.
func NewClosingEvent(w *Window, reason CloseReason, programmatic bool) *ClosingEvent {
	return &ClosingEvent{Window: w, Reason: reason, Programmatic: programmatic}
}

// PositionChangedEvent reports a committed position change.
type PositionChangedEvent struct {
	Window   *Window
	Position geometry.Point
}

// ResizedEvent reports a committed size change.
type ResizedEvent struct {
	Window *Window
	Size   geometry.Size
	Reason ResizeReason
}

// EventKind identifies a manager-level notification.
type EventKind int

const (
	EventOpened EventKind = iota
	EventClosed
	EventActivated
	EventDeactivated
	EventPositionChanged
	EventResized
	EventStateChanged
	EventZOrderChanged
	EventSurfaceChanged
)

func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventClosed:
		return "closed"
	case EventActivated:
		return "activated"
	case EventDeactivated:
		return "deactivated"
	case EventPositionChanged:
		return "position-changed"
	case EventResized:
		return "resized"
	case EventStateChanged:
		return "state-changed"
	case EventZOrderChanged:
		return "zorder-changed"
	case EventSurfaceChanged:
		return "surface-changed"
	default:
		return "unknown"
	}
}

// Event is one entry of the manager notification stream. Window is nil for
// surface-wide events.
type Event struct {
	Kind   EventKind
	Window *Window
	State  WindowState
	Bounds geometry.Rect
	Reason ResizeReason
}
