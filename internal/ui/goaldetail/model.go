package goaldetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/goal-tracker/internal/keys"
	"github.com/nhle/goal-tracker/internal/model"
	"github.com/nhle/goal-tracker/internal/theme"
)

// BackMsg is sent when the user leaves the detail view.
type BackMsg struct{}

// ToggleTodoMsg asks the root model to flip an item's completion.
type ToggleTodoMsg struct {
	GoalID string
	TodoID string
}

// DeleteTodoMsg asks the root model to delete an item.
type DeleteTodoMsg struct {
	GoalID string
	TodoID string
}

// MoveTodoMsg asks the root model to move an item to Index.
type MoveTodoMsg struct {
	GoalID string
	TodoID string
	Index  int
}

// NewTodoMsg asks the root model to open the item form for GoalID.
type NewTodoMsg struct {
	GoalID string
}

// EditTodoMsg asks the root model to open the item form for an item.
type EditTodoMsg struct {
	GoalID string
	TodoID string
}

// HistoryRequestMsg asks the root model for today's completions of GoalID.
type HistoryRequestMsg struct {
	GoalID string
}

// Model shows one goal's checklist for today.
type Model struct {
	goal        model.Goal
	loaded      bool
	cursor      int
	showHistory bool
	history     []model.Item
	keys        *keys.KeyMap
	width       int
	height      int
}

// New creates a new goal detail model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// SetGoal replaces the displayed goal. The cursor stays on the same item
// when the goal is refreshed.
func (m *Model) SetGoal(g model.Goal) {
	var selected string
	if m.loaded && m.goal.ID == g.ID {
		selected = m.SelectedID()
	} else {
		m.cursor = 0
		m.showHistory = false
		m.history = nil
	}
	m.goal = g
	m.loaded = true

	if selected != "" {
		if idx := g.FindTodo(selected); idx >= 0 {
			m.cursor = idx
		}
	}
	m.clampCursor()
}

// SetHistory sets the items shown in history mode.
func (m *Model) SetHistory(items []model.Item) {
	m.history = items
}

// GoalID returns the id of the displayed goal.
func (m Model) GoalID() string {
	return m.goal.ID
}

// SelectedID returns the id of the item under the cursor, or "".
func (m Model) SelectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.goal.Todos) {
		return ""
	}
	return m.goal.Todos[m.cursor].ID
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.goal.Todos) {
		m.cursor = len(m.goal.Todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles key input for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	goalID := m.goal.ID

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		if m.showHistory {
			m.showHistory = false
			return m, nil
		}
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			return m, func() tea.Msg { return HistoryRequestMsg{GoalID: goalID} }
		}
		return m, nil
	}

	if m.showHistory {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor++
		m.clampCursor()
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
		m.clampCursor()
		return m, nil

	case key.Matches(keyMsg, m.keys.New):
		return m, func() tea.Msg { return NewTodoMsg{GoalID: goalID} }
	}

	todoID := m.SelectedID()
	if todoID == "" {
		return m, nil
	}
	idx := m.cursor

	switch {
	case key.Matches(keyMsg, m.keys.Toggle), key.Matches(keyMsg, m.keys.Select):
		return m, func() tea.Msg { return ToggleTodoMsg{GoalID: goalID, TodoID: todoID} }
	case key.Matches(keyMsg, m.keys.Edit):
		return m, func() tea.Msg { return EditTodoMsg{GoalID: goalID, TodoID: todoID} }
	case key.Matches(keyMsg, m.keys.Delete):
		return m, func() tea.Msg { return DeleteTodoMsg{GoalID: goalID, TodoID: todoID} }
	case key.Matches(keyMsg, m.keys.MoveUp):
		m.cursor = max(idx-1, 0)
		return m, func() tea.Msg { return MoveTodoMsg{GoalID: goalID, TodoID: todoID, Index: idx - 1} }
	case key.Matches(keyMsg, m.keys.MoveDown):
		m.cursor = min(idx+1, len(m.goal.Todos)-1)
		return m, func() tea.Msg { return MoveTodoMsg{GoalID: goalID, TodoID: todoID, Index: idx + 1} }
	}

	return m, nil
}

// View renders the goal header and its checklist or history.
func (m Model) View() string {
	if !m.loaded {
		return ""
	}

	var body string
	if m.showHistory {
		body = m.renderHistory()
	} else {
		body = m.renderTodos()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), "", body)
	return theme.DetailPanelStyle.
		Width(max(m.width-4, 20)).
		Height(max(m.height-4, 5)).
		Render(content)
}

func (m Model) renderHeader() string {
	g := m.goal
	title := g.Title
	if g.Emoji != "" {
		title = g.Emoji + " " + title
	}

	parts := []string{theme.GoalTitleStyle(g.ColorName).Render(title)}
	if g.IsDailyRepeat {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorTeal).Render("↻ daily"))
	}
	parts = append(parts,
		theme.ProgressBar(g.Progress(), 20, g.ColorName),
		fmt.Sprintf("%d/%d", g.CompletedCount(), len(g.Todos)),
	)
	return strings.Join(parts, "  ")
}

func (m Model) renderTodos() string {
	if len(m.goal.Todos) == 0 {
		return theme.HelpStyle.Render("Nothing here yet. Press n to add an item.")
	}

	lines := make([]string, 0, len(m.goal.Todos))
	for i, it := range m.goal.Todos {
		box := "[ ]"
		text := it.Content
		if it.IsCompleted {
			box = "[x]"
			text = theme.CompletedStyle.Render(text)
		}

		line := box + " " + text
		if m.goal.IsDailyRepeat {
			if sched := scheduleLabel(it.RepeatDays); sched != "" {
				line += "  " + lipgloss.NewStyle().Foreground(theme.ColorGray).Render(sched)
			}
		}

		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHistory() string {
	title := lipgloss.NewStyle().Bold(true).Render("Completed today")
	if len(m.history) == 0 {
		return title + "\n" + theme.HelpStyle.Render("Nothing completed yet today.")
	}

	lines := []string{title}
	for _, it := range m.history {
		at := it.UpdatedAt
		if it.CompletedAt != nil {
			at = *it.CompletedAt
		}
		lines = append(lines, theme.ListItemStyle.Render(fmt.Sprintf("%s  %s", at.Format("15:04"), it.Content)))
	}
	return strings.Join(lines, "\n")
}

// scheduleLabel lists the weekdays of a partial schedule, e.g. "Mon Wed".
// Full-week and empty schedules render as "".
func scheduleLabel(days []int) string {
	if len(days) == 0 || len(days) == model.DaysPerWeek {
		return ""
	}
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = model.WeekdayLabel(d)
	}
	return strings.Join(labels, " ")
}
