package wm

import (
	"slices"
	"sort"

	"github.com/atomicstack/vwm/internal/logging/events"
)

// mruSnapshot returns the navigation order, oldest activation first. It is
// rebuilt lazily after any activation or key that is not navigation.
func (m *Manager) mruSnapshot() []*Window {
	if m.mru == nil {
		list := slices.Clone(m.windows)
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].activatedSeq != list[j].activatedSeq {
				return list[i].activatedSeq < list[j].activatedSeq
			}
			return list[i].zIndex < list[j].zIndex
		})
		m.mru = list
	}
	return m.mru
}

// ResetNavigation discards the navigation snapshot.
func (m *Manager) ResetNavigation() { m.mru = nil }

// NavigateNext activates the window after the active one in the MRU
// snapshot, wrapping to the first.
func (m *Manager) NavigateNext() bool { return m.navigate(1) }

// NavigatePrevious activates the window before the active one, wrapping to
// the last.
func (m *Manager) NavigatePrevious() bool { return m.navigate(-1) }

func (m *Manager) navigate(dir int) bool {
	list := m.mruSnapshot()
	n := len(list)
	if n == 0 {
		return false
	}
	cur := slices.Index(list, m.ActiveWindow())

	m.navigating = true
	defer func() { m.navigating = false }()

	for step := 1; step <= n; step++ {
		var idx int
		switch {
		case cur >= 0:
			idx = ((cur+dir*step)%n + n) % n
		case dir > 0:
			idx = step - 1
		default:
			idx = n - step
		}
		cand := list[idx]
		if idx == cur {
			return false
		}
		if !cand.canActivate() {
			continue
		}
		direction := "next"
		if dir < 0 {
			direction = "previous"
		}
		events.Manager.Navigate(direction, cand.id)
		return cand.Activate() == nil
	}
	return false
}
