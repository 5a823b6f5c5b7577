package goallist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/goal-tracker/internal/keys"
	"github.com/nhle/goal-tracker/internal/model"
	"github.com/nhle/goal-tracker/internal/theme"
)

// SelectedGoalMsg is sent when the user opens a goal.
type SelectedGoalMsg struct {
	GoalID string
}

// NewGoalMsg asks the root model to open the goal form in create mode.
type NewGoalMsg struct{}

// EditGoalMsg asks the root model to open the goal form for GoalID.
type EditGoalMsg struct {
	GoalID string
}

// DeleteGoalMsg asks the root model to delete GoalID.
type DeleteGoalMsg struct {
	GoalID string
}

// MoveGoalMsg asks the root model to move GoalID to Index.
type MoveGoalMsg struct {
	GoalID string
	Index  int
}

// Model is the goal overview: one line per goal with its progress.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new goal list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, GoalDelegate{}, width, height)
	l.Title = "Goals"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetGoals replaces the displayed goals, keeping the cursor on the same
// goal when it still exists.
func (m *Model) SetGoals(goals []model.Goal) tea.Cmd {
	selected := m.SelectedID()

	items := make([]list.Item, len(goals))
	cursor := m.list.Index()
	for i, g := range goals {
		items[i] = GoalItem{Goal: g}
		if g.ID == selected {
			cursor = i
		}
	}
	cmd := m.list.SetItems(items)
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	if cursor >= 0 {
		m.list.Select(cursor)
	}
	return cmd
}

// SelectedID returns the id of the goal under the cursor, or "".
func (m Model) SelectedID() string {
	item, ok := m.list.SelectedItem().(GoalItem)
	if !ok {
		return ""
	}
	return item.Goal.ID
}

// Update handles messages for the goal list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleKeys(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keys.New) {
		return func() tea.Msg { return NewGoalMsg{} }, true
	}

	id := m.SelectedID()
	if id == "" {
		return nil, false
	}
	idx := m.list.Index()

	switch {
	case key.Matches(msg, m.keys.Select):
		return func() tea.Msg { return SelectedGoalMsg{GoalID: id} }, true
	case key.Matches(msg, m.keys.Edit):
		return func() tea.Msg { return EditGoalMsg{GoalID: id} }, true
	case key.Matches(msg, m.keys.Delete):
		return func() tea.Msg { return DeleteGoalMsg{GoalID: id} }, true
	case key.Matches(msg, m.keys.MoveUp):
		return func() tea.Msg { return MoveGoalMsg{GoalID: id, Index: idx - 1} }, true
	case key.Matches(msg, m.keys.MoveDown):
		return func() tea.Msg { return MoveGoalMsg{GoalID: id, Index: idx + 1} }, true
	}
	return nil, false
}

// View renders the goal list view. The root model draws the empty state.
func (m Model) View() string {
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
