package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/goal-tracker/internal/goals"
	appsync "github.com/nhle/goal-tracker/internal/sync"
	"github.com/nhle/goal-tracker/internal/ui/command"
	"github.com/nhle/goal-tracker/internal/ui/goaldetail"
	"github.com/nhle/goal-tracker/internal/ui/goalform"
	"github.com/nhle/goal-tracker/internal/ui/goallist"
	"github.com/nhle/goal-tracker/tests/testutil"
)

var wednesday = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (Model, *goals.Store, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(wednesday)
	s := goals.New(testutil.NewTestStore(t), goals.Options{Now: clock.Now})
	s.Open(context.Background())

	m := New(s, nil)
	m.now = clock.Now
	t.Cleanup(m.unsubscribe)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), s, clock
}

// step feeds msg to m and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestGoalSubmittedCreatesGoalAndPublishes(t *testing.T) {
	m, s, _ := newTestApp(t)
	m.currentView = ViewGoalForm
	m.previousView = ViewList

	m, cmd := step(t, m, goalform.GoalSubmittedMsg{Title: "Workout", Emoji: "💪", ColorName: "red", IsDailyRepeat: true})
	assert.Equal(t, ViewList, m.currentView)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	require.Len(t, s.Goals(), 1)

	msg := waitForEvent(m.events)()
	ev, ok := msg.(storeEventMsg)
	require.True(t, ok)
	assert.Equal(t, goals.EventGoalCreated, ev.event.Kind)

	m, cmd = step(t, m, ev)
	require.NotNil(t, cmd)
	m, _ = step(t, m, m.loadGoals()())
	assert.Len(t, m.snapshot, 1)
	assert.Equal(t, s.Goals()[0].ID, m.goalList.SelectedID())
}

func TestToggleFromDetail(t *testing.T) {
	m, s, _ := newTestApp(t)
	g := s.CreateGoal("Workout", "💪", "red", true)
	require.NoError(t, s.AddTodo(g.ID, "run", nil))
	m, _ = step(t, m, m.loadGoals()())

	m, _ = step(t, m, goallist.SelectedGoalMsg{GoalID: g.ID})
	require.Equal(t, ViewDetail, m.currentView)
	todoID := m.detail.SelectedID()
	require.NotEmpty(t, todoID)

	_, cmd := step(t, m, goaldetail.ToggleTodoMsg{GoalID: g.ID, TodoID: todoID})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	cur, _ := s.Goal(g.ID)
	assert.True(t, cur.Todos[0].IsCompleted)
}

func TestStaleTargetsAreIgnored(t *testing.T) {
	m, _, _ := newTestApp(t)

	_, cmd := step(t, m, goaldetail.DeleteTodoMsg{GoalID: "gone", TodoID: "gone"})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	_, cmd = step(t, m, goallist.SelectedGoalMsg{GoalID: "gone"})
	assert.Nil(t, cmd)
}

func TestDeletedGoalLeavesDetail(t *testing.T) {
	m, s, _ := newTestApp(t)
	g := s.CreateGoal("Workout", "💪", "red", false)
	m, _ = step(t, m, m.loadGoals()())
	m, _ = step(t, m, goallist.SelectedGoalMsg{GoalID: g.ID})

	require.NoError(t, s.DeleteGoal(g.ID))
	m, _ = step(t, m, m.loadGoals()())
	assert.Equal(t, ViewList, m.currentView)
}

func TestResetEventShowsNotice(t *testing.T) {
	m, s, clock := newTestApp(t)
	g := s.CreateGoal("Workout", "💪", "red", true)
	require.NoError(t, s.AddTodo(g.ID, "run", nil))

	clock.NextDay()
	require.Equal(t, 1, s.RunDailyReset())

	m, _ = step(t, m, storeEventMsg{event: goals.Event{Kind: goals.EventReset}})
	assert.Contains(t, m.keyHints(), "New day")

	m, _ = step(t, m, clearNoticeMsg{setAt: m.noticeAt})
	assert.NotContains(t, m.keyHints(), "New day")
}

func TestOpErrorIsShown(t *testing.T) {
	m, _, _ := newTestApp(t)
	m, cmd := step(t, m, opErrMsg{err: errors.New("disk full")})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.keyHints(), "disk full")
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestApp(t)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Equal(t, ViewHelp, m.currentView)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.currentView)
}

func TestHeaderStatus(t *testing.T) {
	m, s, _ := newTestApp(t)
	g := s.CreateGoal("Workout", "💪", "red", false)
	require.NoError(t, s.AddTodo(g.ID, "run", nil))
	require.NoError(t, s.AddTodo(g.ID, "swim", nil))
	cur, _ := s.Goal(g.ID)
	require.NoError(t, s.ToggleTodo(g.ID, cur.Todos[0].ID))

	m, _ = step(t, m, m.loadGoals()())
	assert.Equal(t, "Wed 14 Oct  1/2 done", m.headerStatus())
}

func TestHeaderStatusShowsRollover(t *testing.T) {
	m, s, clock := newTestApp(t)
	g := s.CreateGoal("Workout", "💪", "red", true)
	require.NoError(t, s.AddTodo(g.ID, "run", nil))

	w := appsync.New(s, time.Hour)
	m.watcher = w
	wait := w.Start()
	defer w.Stop()
	assert.NotContains(t, m.headerStatus(), "rolled over")

	clock.NextDay()
	w.CheckNow()
	msg, ok := wait().(appsync.RolloverMsg)
	require.True(t, ok)
	assert.Equal(t, 1, msg.Goals)
	assert.Contains(t, m.headerStatus(), "rolled over "+msg.At.Format("15:04"))
}

func TestEmptyListRendersCenteredHint(t *testing.T) {
	m, s, _ := newTestApp(t)
	assert.Contains(t, m.View(), "or : for commands")

	s.CreateGoal("Read", "📚", "blue", false)
	m, _ = step(t, m, m.loadGoals()())
	assert.NotContains(t, m.View(), "or : for commands")
	assert.Contains(t, m.View(), "Read")
}

func TestCommandPaletteOpensAndSwallowsKeys(t *testing.T) {
	m, _, _ := newTestApp(t)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	assert.Equal(t, ViewCommand, m.currentView)

	// "q" is text here, not quit.
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, ViewCommand, m.currentView)
	assert.Equal(t, "q", m.commandView.Value())

	m, _ = step(t, m, command.CancelMsg{})
	assert.Equal(t, ViewList, m.currentView)
}

func TestCommandQuickCreatesGoal(t *testing.T) {
	m, s, _ := newTestApp(t)
	m.previousView = ViewList
	m.currentView = ViewCommand

	m, cmd := step(t, m, command.CommandMsg{Name: "daily", Arg: "Drink water"})
	assert.Equal(t, ViewList, m.currentView)
	require.NotNil(t, cmd)
	cmd()

	list := s.Goals()
	require.Len(t, list, 1)
	assert.Equal(t, "Drink water", list[0].Title)
	assert.True(t, list[0].IsDailyRepeat)
	assert.Equal(t, "blue", list[0].ColorName)
}

func TestCommandResetAndUnknown(t *testing.T) {
	m, s, clock := newTestApp(t)
	g := s.CreateGoal("Workout", "💪", "red", true)
	require.NoError(t, s.AddTodo(g.ID, "run", nil))

	m.previousView = ViewList
	m.currentView = ViewCommand
	m, cmd := step(t, m, command.CommandMsg{Name: "reset"})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, resetDoneMsg{goals: 0}, msg)
	m, _ = step(t, m, msg)
	assert.Contains(t, m.keyHints(), "Nothing to reset")

	clock.NextDay()
	m.currentView = ViewCommand
	m, cmd = step(t, m, command.CommandMsg{Name: "reset"})
	assert.Equal(t, resetDoneMsg{goals: 1}, cmd())

	m.currentView = ViewCommand
	m, _ = step(t, m, command.CommandMsg{Name: "frobnicate"})
	assert.Equal(t, "Unknown command: frobnicate", m.keyHints())
}

func TestCommandTodoNeedsOpenGoal(t *testing.T) {
	m, s, _ := newTestApp(t)
	m.previousView = ViewList
	m.currentView = ViewCommand

	m, _ = step(t, m, command.CommandMsg{Name: "todo"})
	assert.Equal(t, ViewList, m.currentView)
	assert.Equal(t, "Open a goal to add items", m.keyHints())

	g := s.CreateGoal("Read", "📚", "blue", false)
	m, _ = step(t, m, goalsLoadedMsg{goals: s.Goals()})
	m, _ = step(t, m, goallist.SelectedGoalMsg{GoalID: g.ID})
	require.Equal(t, ViewDetail, m.currentView)

	m.previousView = ViewDetail
	m.currentView = ViewCommand
	m, _ = step(t, m, command.CommandMsg{Name: "todo"})
	assert.Equal(t, ViewTodoForm, m.currentView)
}
