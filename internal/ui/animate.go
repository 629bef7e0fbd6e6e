package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type animationTickMsg struct {
	at time.Time
}

func animationTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return animationTickMsg{at: t}
	})
}

// handleAnimationTickMsg advances the manager's animation clock by the time
// since the previous frame. finishUpdate schedules the next frame while
// anything is still moving.
func (m *Model) handleAnimationTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(animationTickMsg)
	if !ok {
		return nil
	}
	dt := tick.at.Sub(m.lastTick)
	if m.lastTick.IsZero() || dt <= 0 {
		dt = frameInterval
	}
	m.lastTick = tick.at
	m.ticking = false
	m.manager.Advance(dt)
	return nil
}
