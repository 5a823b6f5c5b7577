package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/goal-tracker/internal/goals"
	"github.com/nhle/goal-tracker/internal/logging"
	"github.com/nhle/goal-tracker/internal/model"
)

// goalsLoadedMsg carries a fresh snapshot of every goal.
type goalsLoadedMsg struct {
	goals []model.Goal
}

// historyLoadedMsg carries today's completions of one goal.
type historyLoadedMsg struct {
	goalID string
	items  []model.Item
}

// opErrMsg reports a failed store operation to the status bar.
type opErrMsg struct {
	err error
}

func (m Model) loadGoals() tea.Cmd {
	s := m.goals
	return func() tea.Msg {
		return goalsLoadedMsg{goals: s.Goals()}
	}
}

func (m Model) loadHistory(goalID string) tea.Cmd {
	s := m.goals
	now := m.now
	return func() tea.Msg {
		items, err := s.History(goalID, now())
		if err != nil {
			return opErrMsg{err: err}
		}
		return historyLoadedMsg{goalID: goalID, items: items}
	}
}

// run executes op off the update loop. Not-found errors mean the target
// vanished between render and keypress and are dropped silently; the
// store event that removed it already triggered a reload.
func run(op func() error) tea.Cmd {
	return func() tea.Msg {
		err := op()
		switch {
		case err == nil:
			return nil
		case errors.Is(err, goals.ErrGoalNotFound), errors.Is(err, goals.ErrTodoNotFound):
			logging.Debug(logTag, "ignoring stale target: %v", err)
			return nil
		default:
			return opErrMsg{err: err}
		}
	}
}

// resetDoneMsg reports how many goals a manual reset regenerated.
type resetDoneMsg struct {
	goals int
}

func (m Model) resetNow() tea.Cmd {
	s := m.goals
	return func() tea.Msg {
		return resetDoneMsg{goals: s.RunDailyReset()}
	}
}

func (m Model) createGoal(title, emoji, colorName string, daily bool) tea.Cmd {
	s := m.goals
	return run(func() error {
		s.CreateGoal(title, emoji, colorName, daily)
		return nil
	})
}

func (m Model) updateGoal(id, title, emoji, colorName string, daily bool) tea.Cmd {
	s := m.goals
	return run(func() error { return s.UpdateGoal(id, title, emoji, colorName, daily) })
}

func (m Model) deleteGoal(id string) tea.Cmd {
	s := m.goals
	return run(func() error { return s.DeleteGoal(id) })
}

func (m Model) moveGoal(id string, index int) tea.Cmd {
	s := m.goals
	return run(func() error { return s.MoveGoal(id, index) })
}

func (m Model) addTodo(goalID, content string, days []int) tea.Cmd {
	s := m.goals
	return run(func() error { return s.AddTodo(goalID, content, days) })
}

func (m Model) editTodo(goalID, todoID, content string, days []int) tea.Cmd {
	s := m.goals
	return run(func() error { return s.EditTodo(goalID, todoID, content, days) })
}

func (m Model) toggleTodo(goalID, todoID string) tea.Cmd {
	s := m.goals
	return run(func() error { return s.ToggleTodo(goalID, todoID) })
}

func (m Model) deleteTodo(goalID, todoID string) tea.Cmd {
	s := m.goals
	return run(func() error { return s.DeleteTodo(goalID, todoID) })
}

func (m Model) moveTodo(goalID, todoID string, index int) tea.Cmd {
	s := m.goals
	return run(func() error { return s.MoveTodo(goalID, todoID, index) })
}

// clearNoticeMsg clears the status notice if it is still the one set at
// the given instant.
type clearNoticeMsg struct {
	setAt time.Time
}

const noticeTTL = 5 * time.Second

func clearNoticeAfter(setAt time.Time) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{setAt: setAt}
	})
}
