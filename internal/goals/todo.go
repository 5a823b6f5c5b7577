package goals

import (
	"fmt"
	"slices"
	"time"

	"github.com/nhle/goal-tracker/internal/model"
)

// AddTodo appends an item to a goal. On a daily-repeating goal it adds a
// full-week template and today's instance of it; repeatDays schedules the
// instance and defaults to every day. On a flat goal it adds one item
// without a schedule.
func (s *Store) AddTodo(goalID, content string, repeatDays []int) error {
	return s.mutate(func(now time.Time) (Event, error) {
		g, err := s.goalByID(goalID)
		if err != nil {
			return Event{}, fmt.Errorf("adding todo to %s: %w", goalID, err)
		}

		order := len(g.Todos)
		var added model.Item
		if g.IsDailyRepeat {
			tmpl := model.NewTemplate(content, order, now)
			days := repeatDays
			if len(days) == 0 {
				days = model.AllWeekdays()
			}
			added = model.NewItem(content, order, days, now)
			added.TemplateID = tmpl.ID

			g.BaseTodos = append(g.BaseTodos, tmpl)
			g.Todos = append(g.Todos, added)
			g.DeletedContents = removeString(g.DeletedContents, content)
		} else {
			added = model.NewItem(content, order, nil, now)
			g.Todos = append(g.Todos, added)
		}

		return Event{Kind: EventTodoAdded, GoalID: goalID, TodoID: added.ID}, nil
	})
}

// ToggleTodo flips the completion state of a day item. Completing an item
// stamps it, records today's weekday and logs a copy to the goal history;
// un-completing leaves earlier history entries in place.
func (s *Store) ToggleTodo(goalID, todoID string) error {
	return s.mutate(func(now time.Time) (Event, error) {
		g, err := s.goalByID(goalID)
		if err != nil {
			return Event{}, fmt.Errorf("toggling todo %s: %w", todoID, err)
		}
		ti := g.FindTodo(todoID)
		if ti < 0 {
			return Event{}, fmt.Errorf("toggling todo %s: %w", todoID, ErrTodoNotFound)
		}

		it := &g.Todos[ti]
		it.IsCompleted = !it.IsCompleted
		it.UpdatedAt = now
		if it.IsCompleted {
			at := now
			it.CompletedAt = &at

			day := model.WeekdayIndex(now)
			it.MarkCompletedDay(day)
			if g.IsDailyRepeat {
				if bi := g.TemplateFor(*it); bi >= 0 {
					g.BaseTodos[bi].MarkCompletedDay(day)
				}
			}
			g.CompletedHistory = append(g.CompletedHistory, it.Clone())
		} else {
			it.CompletedAt = nil
		}

		return Event{Kind: EventTodoToggled, GoalID: goalID, TodoID: todoID}, nil
	})
}

// DeleteTodo removes an item. On a daily-repeating goal the item's template
// and every instance generated from it go too, and the content is recorded
// so the reset pass never brings it back. Items that merely share the text
// are left alone.
func (s *Store) DeleteTodo(goalID, todoID string) error {
	return s.mutate(func(time.Time) (Event, error) {
		g, err := s.goalByID(goalID)
		if err != nil {
			return Event{}, fmt.Errorf("deleting todo %s: %w", todoID, err)
		}

		if !g.IsDailyRepeat {
			ti := g.FindTodo(todoID)
			if ti < 0 {
				return Event{}, fmt.Errorf("deleting todo %s: %w", todoID, ErrTodoNotFound)
			}
			g.Todos = slices.Delete(g.Todos, ti, ti+1)
			return Event{Kind: EventTodoDeleted, GoalID: goalID, TodoID: todoID}, nil
		}

		var target model.Item
		if ti := g.FindTodo(todoID); ti >= 0 {
			target = g.Todos[ti]
		} else if bi := g.FindTemplate(todoID); bi >= 0 {
			target = g.BaseTodos[bi]
		} else {
			return Event{}, fmt.Errorf("deleting todo %s: %w", todoID, ErrTodoNotFound)
		}

		templateID := ""
		if bi := g.TemplateFor(target); bi >= 0 {
			templateID = g.BaseTodos[bi].ID
		}

		g.BaseTodos = slices.DeleteFunc(g.BaseTodos, func(it model.Item) bool {
			return it.ID == target.ID || it.ID == templateID
		})
		g.Todos = slices.DeleteFunc(g.Todos, func(it model.Item) bool {
			return it.ID == target.ID || (templateID != "" && it.TemplateID == templateID)
		})

		// Another template with the same text keeps regenerating.
		if !hasTemplateContent(g, target.Content) && !g.IsDeletedContent(target.Content) {
			g.DeletedContents = append(g.DeletedContents, target.Content)
		}

		return Event{Kind: EventTodoDeleted, GoalID: goalID, TodoID: todoID}, nil
	})
}

// EditTodo changes the text and schedule of an item in place. On a
// daily-repeating goal the linked template is updated as well, so the next
// reset regenerates the edited row. A nil repeatDays keeps the schedule;
// flat goals ignore it.
func (s *Store) EditTodo(goalID, todoID, content string, repeatDays []int) error {
	return s.mutate(func(now time.Time) (Event, error) {
		g, err := s.goalByID(goalID)
		if err != nil {
			return Event{}, fmt.Errorf("editing todo %s: %w", todoID, err)
		}

		var it *model.Item
		if ti := g.FindTodo(todoID); ti >= 0 {
			it = &g.Todos[ti]
		} else if bi := g.FindTemplate(todoID); bi >= 0 && g.IsDailyRepeat {
			it = &g.BaseTodos[bi]
		} else {
			return Event{}, fmt.Errorf("editing todo %s: %w", todoID, ErrTodoNotFound)
		}

		var tmpl *model.Item
		if g.IsDailyRepeat && !it.IsBase {
			if bi := g.TemplateFor(*it); bi >= 0 {
				tmpl = &g.BaseTodos[bi]
			}
		}

		targets := []*model.Item{it}
		if tmpl != nil {
			targets = append(targets, tmpl)
		}
		for _, t := range targets {
			t.Content = content
			t.UpdatedAt = now
			if g.IsDailyRepeat && repeatDays != nil {
				t.RepeatDays = model.NormalizeDays(repeatDays)
				if len(t.RepeatDays) == 0 {
					t.RepeatDays = model.AllWeekdays()
				}
			}
		}
		if g.IsDailyRepeat {
			g.DeletedContents = removeString(g.DeletedContents, content)
		}

		return Event{Kind: EventTodoEdited, GoalID: goalID, TodoID: todoID}, nil
	})
}

// MoveTodo moves a day item to position index and renumbers Order for the
// whole list. Templates follow their instances' new order.
func (s *Store) MoveTodo(goalID, todoID string, index int) error {
	return s.mutate(func(time.Time) (Event, error) {
		g, err := s.goalByID(goalID)
		if err != nil {
			return Event{}, fmt.Errorf("moving todo %s: %w", todoID, err)
		}
		from := g.FindTodo(todoID)
		if from < 0 {
			return Event{}, fmt.Errorf("moving todo %s: %w", todoID, ErrTodoNotFound)
		}

		g.Todos = moveElem(g.Todos, from, index)
		for i := range g.Todos {
			g.Todos[i].Order = i
			if !g.IsDailyRepeat {
				continue
			}
			if bi := g.TemplateFor(g.Todos[i]); bi >= 0 {
				g.BaseTodos[bi].Order = i
			}
		}
		if g.IsDailyRepeat {
			slices.SortStableFunc(g.BaseTodos, func(a, b model.Item) int {
				return a.Order - b.Order
			})
		}

		return Event{Kind: EventTodoMoved, GoalID: goalID, TodoID: todoID}, nil
	})
}

func hasTemplateContent(g *model.Goal, content string) bool {
	for _, base := range g.BaseTodos {
		if base.Content == content {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	return slices.DeleteFunc(list, func(v string) bool { return v == s })
}
