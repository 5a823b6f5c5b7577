package goals

import (
	"fmt"
	"time"

	"github.com/nhle/goal-tracker/internal/model"
)

// CreateGoal appends a goal with empty collections. Titles are not
// validated here.
func (s *Store) CreateGoal(title, emoji, colorName string, isDailyRepeat bool) model.Goal {
	var created model.Goal
	_ = s.mutate(func(now time.Time) (Event, error) {
		g := model.NewGoal(title, emoji, colorName, isDailyRepeat, now)
		s.goals = append(s.goals, g)
		created = g.Clone()
		return Event{Kind: EventGoalCreated, GoalID: g.ID}, nil
	})
	return created
}

// UpdateGoal replaces the display fields of a goal. Turning daily repeat
// off flattens the goal into a plain list; turning it on promotes every
// current item to a full-week template with a linked day instance.
func (s *Store) UpdateGoal(goalID, title, emoji, colorName string, isDailyRepeat bool) error {
	return s.mutate(func(now time.Time) (Event, error) {
		g, err := s.goalByID(goalID)
		if err != nil {
			return Event{}, fmt.Errorf("updating goal %s: %w", goalID, err)
		}

		g.Title = title
		g.Emoji = emoji
		g.ColorName = colorName

		switch {
		case g.IsDailyRepeat && !isDailyRepeat:
			flatten(g)
		case !g.IsDailyRepeat && isDailyRepeat:
			promote(g, now)
		}
		g.IsDailyRepeat = isDailyRepeat

		return Event{Kind: EventGoalUpdated, GoalID: goalID}, nil
	})
}

// DeleteGoal removes a goal together with every item it owns.
func (s *Store) DeleteGoal(goalID string) error {
	return s.mutate(func(time.Time) (Event, error) {
		idx := s.goalIndex(goalID)
		if idx < 0 {
			return Event{}, fmt.Errorf("deleting goal %s: %w", goalID, ErrGoalNotFound)
		}
		s.goals = append(s.goals[:idx], s.goals[idx+1:]...)
		return Event{Kind: EventGoalDeleted, GoalID: goalID}, nil
	})
}

// MoveGoal moves a goal to position index, clamped to the valid range.
func (s *Store) MoveGoal(goalID string, index int) error {
	return s.mutate(func(time.Time) (Event, error) {
		from := s.goalIndex(goalID)
		if from < 0 {
			return Event{}, fmt.Errorf("moving goal %s: %w", goalID, ErrGoalNotFound)
		}
		s.goals = moveElem(s.goals, from, index)
		return Event{Kind: EventGoalMoved, GoalID: goalID}, nil
	})
}

func flatten(g *model.Goal) {
	for i := range g.Todos {
		g.Todos[i].RepeatDays = []int{}
		g.Todos[i].IsBase = false
		g.Todos[i].TemplateID = ""
	}
	g.BaseTodos = []model.Item{}
}

// promote turns a flat list into templates. The live items become today's
// instances, so the goal counts as already reset today. Promoted content is
// revived if an earlier delete tombstoned it.
func promote(g *model.Goal, now time.Time) {
	base := make([]model.Item, 0, len(g.Todos))
	for i := range g.Todos {
		it := &g.Todos[i]
		tmpl := model.NewTemplate(it.Content, it.Order, now)
		base = append(base, tmpl)
		g.DeletedContents = removeString(g.DeletedContents, it.Content)

		it.RepeatDays = model.AllWeekdays()
		it.IsBase = false
		it.TemplateID = tmpl.ID
	}
	g.BaseTodos = base
	g.LastResetDate = now
}

// moveElem returns items with the element at from moved to index to.
func moveElem[T any](items []T, from, to int) []T {
	if to < 0 {
		to = 0
	}
	if to > len(items)-1 {
		to = len(items) - 1
	}
	if from == to {
		return items
	}
	elem := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]T{elem}, items[to:]...)...)
	return items
}
