package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/goal-tracker/internal/goals"
	"github.com/nhle/goal-tracker/internal/logging"
)

// eventBuffer bounds how many store events may queue up between renders.
const eventBuffer = 64

// storeEventMsg carries a goal store event into the Bubble Tea loop.
type storeEventMsg struct {
	event goals.Event
}

// subscribe forwards store events into a channel the UI drains with
// waitForEvent. Events are dropped when the UI falls behind; the next
// one triggers a full reload anyway.
func subscribe(s *goals.Store) (chan goals.Event, func()) {
	ch := make(chan goals.Event, eventBuffer)
	cancel := s.Subscribe(func(ev goals.Event) {
		select {
		case ch <- ev:
		default:
			logging.Debug(logTag, "event queue full, dropping %s", ev.Kind)
		}
	})
	return ch, cancel
}

// waitForEvent returns a tea.Cmd that waits for the next store event.
func waitForEvent(ch <-chan goals.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeEventMsg{event: ev}
	}
}
