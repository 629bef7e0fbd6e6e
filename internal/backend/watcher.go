package backend

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/vwm/internal/layout"
	"github.com/atomicstack/vwm/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	// KindLayout carries a freshly loaded layout document, or the error that
	// prevented loading it.
	KindLayout Kind = iota
	// KindLayoutRemoved reports that the layout file disappeared.
	KindLayoutRemoved
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Path string
	Data *layout.Document
	Err  error
}

type stamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

// Watcher polls a layout file at a fixed interval and publishes an event
// whenever its size or modification time changes.
type Watcher struct {
	path     string
	interval time.Duration
	load     func(string) (*layout.Document, error)

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for path that polls every interval. The
// current state of the file is the baseline; only later changes are emitted.
func NewWatcher(path string, interval time.Duration) *Watcher {
	return newWatcher(path, interval, layout.Load)
}

func newWatcher(path string, interval time.Duration, load func(string) (*layout.Document, error)) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		load:     load,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.poll(statFile(path))

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current load
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func statFile(path string) stamp {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}
	}
	return stamp{exists: true, size: info.Size(), modTime: info.ModTime()}
}

func (w *Watcher) poll(last stamp) {
	defer w.wg.Done()

	throttle := newThrottle(w.interval / 2)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}
		current := statFile(w.path)
		if current == last {
			continue
		}
		last = current
		if !throttle.wait(w.ctx) {
			return
		}

		evt := Event{Kind: KindLayout, Path: w.path}
		if !current.exists {
			evt.Kind = KindLayoutRemoved
			evt.Err = fs.ErrNotExist
		} else {
			events.Layout.Changed(w.path)
			evt.Data, evt.Err = w.load(w.path)
			if errors.Is(evt.Err, fs.ErrNotExist) {
				evt.Kind = KindLayoutRemoved
			}
		}
		events.Layout.Error(w.path, evt.Err)

		select {
		case <-w.ctx.Done():
			return
		case w.events <- evt:
		}
	}
}
