package command

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/vwm/internal/logging/events"
	"github.com/atomicstack/vwm/internal/wm"
	tea "github.com/charmbracelet/bubbletea"
)

// Request describes a unit of work run off the update loop.
type Request struct {
	ID      string
	Label   string
	Handler func(ctx context.Context) tea.Msg
}

// Bus turns requests into Bubble Tea commands.
type Bus struct {
	timeout time.Duration
}

// New initialises a command bus. A positive timeout bounds each request.
func New(timeout time.Duration) *Bus {
	return &Bus{timeout: timeout}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		ctx := context.Background()
		if b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}
		msg := req.Handler(ctx)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

// Await returns a command that waits for fut and converts its outcome into a
// message with wrap.
func Await[T any](b *Bus, id, label string, fut *wm.Future[T], wrap func(T, error) tea.Msg) tea.Cmd {
	return b.Execute(Request{
		ID:    id,
		Label: label,
		Handler: func(ctx context.Context) tea.Msg {
			v, err := fut.Wait(ctx)
			return wrap(v, err)
		},
	})
}
