package wm

import (
	"fmt"
	"sort"

	"github.com/atomicstack/vwm/internal/logging/events"
)

// BringToTop raises w (and its owner chain) above every other non-minimized
// window. A minimized window is raised within the minimized band only.
func (m *Manager) BringToTop(w *Window) error {
	if w == nil || w.manager != m || !m.Contains(w) {
		return fmt.Errorf("bring %s to top: %w", w, ErrNotAttached)
	}
	m.bringToTop(w)
	return nil
}

// bringToTop reassigns every z-index: the minimized band first (oldest
// minimize lowest), then the other windows in their existing relative order,
// then the non-minimized owner chain of w oldest first, then w.
func (m *Manager) bringToTop(w *Window) {
	var chain []*Window
	if w.state != StateMinimized {
		for _, o := range w.ownerChain() {
			if o.state != StateMinimized {
				chain = append(chain, o)
			}
		}
		chain = append(chain, w)
	}
	inChain := make(map[*Window]bool, len(chain))
	for _, c := range chain {
		inChain[c] = true
	}

	var minimized, rest []*Window
	for _, win := range m.windows {
		switch {
		case win.state == StateMinimized:
			minimized = append(minimized, win)
		case !inChain[win]:
			rest = append(rest, win)
		}
	}
	sort.SliceStable(minimized, func(i, j int) bool {
		return minimized[i].minimizedSeq < minimized[j].minimizedSeq
	})
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].zIndex < rest[j].zIndex
	})

	order := make([]*Window, 0, len(m.windows))
	order = append(order, minimized...)
	order = append(order, rest...)
	order = append(order, chain...)

	changed := false
	ids := make([]uint64, 0, len(order))
	for i, win := range order {
		z := i + 1
		if win.zIndex != z {
			win.zIndex = z
			changed = true
		}
		ids = append(ids, win.id)
	}
	if !changed {
		return
	}
	events.Manager.ZOrder(ids)
	m.publish(Event{Kind: EventZOrderChanged, Window: w})
}
