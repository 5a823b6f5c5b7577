package goals

import (
	"time"

	"github.com/nhle/goal-tracker/internal/model"
)

// RunDailyReset rolls every daily-repeating goal that has not been reset
// today over to a fresh day: completed instances are archived to history
// and today's instances are regenerated from the surviving templates.
// It persists once if any goal changed and returns how many did. Calling
// it again on the same calendar day is a no-op.
func (s *Store) RunDailyReset() int {
	s.mu.Lock()
	now := s.now()
	n := 0
	for i := range s.goals {
		if resetGoal(&s.goals[i], now, s.keepCompleted) {
			n++
		}
	}
	if n > 0 {
		s.saveLocked()
	}
	s.mu.Unlock()

	if n > 0 {
		s.publish(Event{Kind: EventReset, At: now})
	}
	return n
}

// NeedsReset reports whether any daily-repeating goal is due for a reset.
func (s *Store) NeedsReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, g := range s.goals {
		if g.IsDailyRepeat && !model.SameDay(now, g.LastResetDate) {
			return true
		}
	}
	return false
}

func resetGoal(g *model.Goal, now time.Time, keepCompleted bool) bool {
	if !g.IsDailyRepeat || model.SameDay(now, g.LastResetDate) {
		return false
	}

	logged := make(map[string]bool, len(g.CompletedHistory))
	for _, h := range g.CompletedHistory {
		logged[h.ID] = true
	}

	var carried []model.Item
	since := model.StartOfDay(g.LastResetDate.In(now.Location()))
	for _, it := range g.Todos {
		if !it.IsCompleted {
			continue
		}
		if !logged[it.ID] {
			g.CompletedHistory = append(g.CompletedHistory, it.Clone())
			logged[it.ID] = true
		}
		if keepCompleted && it.CompletedAt != nil && !it.CompletedAt.Before(since) {
			carried = append(carried, it)
		}
	}

	today := model.WeekdayIndex(now)
	fresh := make([]model.Item, 0, len(carried)+len(g.BaseTodos))
	fresh = append(fresh, carried...)
	for _, base := range g.BaseTodos {
		if g.IsDeletedContent(base.Content) || !base.ActiveOn(today) {
			continue
		}
		fresh = append(fresh, base.Instantiate(now))
	}

	g.Todos = fresh
	g.LastResetDate = now
	return true
}
