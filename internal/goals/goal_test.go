package goals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/goal-tracker/internal/model"
)

func TestCreateGoal(t *testing.T) {
	s, _, _ := newTestGoals(t)

	g := s.CreateGoal("Workout", "💪", "red", true)

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Workout", g.Title)
	assert.True(t, g.IsDailyRepeat)
	assert.Equal(t, wednesday, g.LastResetDate)
	assert.NotNil(t, g.BaseTodos)
	assert.NotNil(t, g.Todos)
	assert.NotNil(t, g.CompletedHistory)
	assert.NotNil(t, g.DeletedContents)

	// Empty titles are accepted at this layer.
	empty := s.CreateGoal("", "", "", false)
	assert.NotEqual(t, g.ID, empty.ID)
	assert.Len(t, s.Goals(), 2)
}

func TestUpdateGoal_DisplayFields(t *testing.T) {
	s, _, _ := newTestGoals(t)
	g := s.CreateGoal("Workout", "💪", "red", false)

	require.NoError(t, s.UpdateGoal(g.ID, "Training", "🏋️", "blue", false))

	got, _ := s.Goal(g.ID)
	assert.Equal(t, "Training", got.Title)
	assert.Equal(t, "🏋️", got.Emoji)
	assert.Equal(t, "blue", got.ColorName)
}

func TestUpdateGoal_Flatten(t *testing.T) {
	s, clock, _ := newTestGoals(t)
	g := s.CreateGoal("Workout", "💪", "red", true)
	require.NoError(t, s.AddTodo(g.ID, "run", []int{0, 2}))

	require.NoError(t, s.UpdateGoal(g.ID, "Workout", "💪", "red", false))

	got, _ := s.Goal(g.ID)
	assert.False(t, got.IsDailyRepeat)
	assert.Empty(t, got.BaseTodos)
	require.Len(t, got.Todos, 1)
	assert.Empty(t, got.Todos[0].RepeatDays)
	assert.Empty(t, got.Todos[0].TemplateID)

	clock.NextDay()
	assert.Equal(t, 0, s.RunDailyReset())
}

func TestUpdateGoal_Promote(t *testing.T) {
	s, clock, _ := newTestGoals(t)
	g := s.CreateGoal("Chores", "🧹", "gray", false)
	require.NoError(t, s.AddTodo(g.ID, "dishes", nil))
	require.NoError(t, s.AddTodo(g.ID, "laundry", nil))

	require.NoError(t, s.UpdateGoal(g.ID, "Chores", "🧹", "gray", true))

	got, _ := s.Goal(g.ID)
	assert.True(t, got.IsDailyRepeat)
	require.Len(t, got.BaseTodos, 2)
	for i, tmpl := range got.BaseTodos {
		assert.True(t, tmpl.IsBase)
		assert.Equal(t, model.AllWeekdays(), tmpl.RepeatDays)
		assert.Equal(t, tmpl.ID, got.Todos[i].TemplateID)
		assert.Equal(t, tmpl.Content, got.Todos[i].Content)
	}
	assert.False(t, s.NeedsReset())

	clock.NextDay()
	require.Equal(t, 1, s.RunDailyReset())
	got, _ = s.Goal(g.ID)
	assert.Equal(t, []string{"dishes", "laundry"}, contents(got.Todos))
}

func TestUpdateGoal_PromoteRevivesDeletedContent(t *testing.T) {
	s, clock, _ := newTestGoals(t)
	g := s.CreateGoal("Workout", "💪", "red", true)
	require.NoError(t, s.AddTodo(g.ID, "run", nil))
	cur, _ := s.Goal(g.ID)
	require.NoError(t, s.DeleteTodo(g.ID, cur.Todos[0].ID))

	require.NoError(t, s.UpdateGoal(g.ID, "Workout", "💪", "red", false))
	require.NoError(t, s.AddTodo(g.ID, "run", nil))
	require.NoError(t, s.UpdateGoal(g.ID, "Workout", "💪", "red", true))

	got, _ := s.Goal(g.ID)
	assert.Empty(t, got.DeletedContents)

	clock.NextDay()
	require.Equal(t, 1, s.RunDailyReset())
	got, _ = s.Goal(g.ID)
	assert.Equal(t, []string{"run"}, contents(got.BaseTodos))
	assert.Equal(t, []string{"run"}, contents(got.Todos))
}

func TestDeleteGoal(t *testing.T) {
	s, _, _ := newTestGoals(t)
	a := s.CreateGoal("A", "", "", false)
	b := s.CreateGoal("B", "", "", true)

	require.NoError(t, s.DeleteGoal(a.ID))

	list := s.Goals()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	_, ok := s.Goal(a.ID)
	assert.False(t, ok)
}

func TestMoveGoal(t *testing.T) {
	s, _, _ := newTestGoals(t)
	a := s.CreateGoal("A", "", "", false)
	s.CreateGoal("B", "", "", false)
	s.CreateGoal("C", "", "", false)

	require.NoError(t, s.MoveGoal(a.ID, 2))
	assert.Equal(t, []string{"B", "C", "A"}, titles(s.Goals()))

	require.NoError(t, s.MoveGoal(a.ID, -5))
	assert.Equal(t, []string{"A", "B", "C"}, titles(s.Goals()))

	assert.ErrorIs(t, s.MoveGoal("missing", 0), ErrGoalNotFound)
}

func titles(list []model.Goal) []string {
	out := make([]string, 0, len(list))
	for _, g := range list {
		out = append(out, g.Title)
	}
	return out
}
