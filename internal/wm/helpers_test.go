package wm

import (
	"testing"

	"github.com/atomicstack/vwm/internal/geometry"
)

func newTestManager() *Manager {
	return NewManager(Config{Width: 1000, Height: 800})
}

func showAt(t *testing.T, m *Manager, title string, r geometry.Rect, opts ...Option) *Window {
	t.Helper()
	opts = append([]Option{WithSize(r.Size())}, opts...)
	w := NewWindow(title, opts...)
	if err := m.ShowWindowAt(w, r.X, r.Y); err != nil {
		t.Fatalf("show %s: %v", title, err)
	}
	return w
}

func activeCount(m *Manager) int {
	n := 0
	for _, w := range m.Windows() {
		if w.IsActive() {
			n++
		}
	}
	return n
}

func titles(ws []*Window) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Title())
	}
	return out
}
