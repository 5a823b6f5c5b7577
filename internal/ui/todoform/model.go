package todoform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/goal-tracker/internal/model"
	"github.com/nhle/goal-tracker/internal/theme"
)

// TodoSubmittedMsg is dispatched when the form is completed. TodoID is
// empty when a new item is being added. RepeatDays is nil for flat goals.
type TodoSubmittedMsg struct {
	GoalID     string
	TodoID     string
	Content    string
	RepeatDays []int
}

// TodoFormCancelMsg is dispatched when the user cancels the form.
type TodoFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	content    string
	repeatDays []int
}

// Model is the Bubble Tea model for the item create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	goalID   string
	daily    bool
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new item form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for adding an item to g.
func (m *Model) StartCreate(g model.Goal) tea.Cmd {
	m.goalID = g.ID
	m.daily = g.IsDailyRepeat
	m.editMode = false
	m.editID = ""
	m.fb.content = ""
	m.fb.repeatDays = model.AllWeekdays()
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing item of g.
func (m *Model) StartEdit(g model.Goal, it model.Item) tea.Cmd {
	m.goalID = g.ID
	m.daily = g.IsDailyRepeat
	m.editMode = true
	m.editID = it.ID
	m.fb.content = it.Content
	m.fb.repeatDays = model.NormalizeDays(it.RepeatDays)
	if len(m.fb.repeatDays) == 0 {
		m.fb.repeatDays = model.AllWeekdays()
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the item form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the item form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Item"
	if m.editMode {
		titleText = "Edit Item"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Item").
			Placeholder("What needs to be done?").
			Value(&m.fb.content).
			Validate(validateRequired("Item")),
	}
	if m.daily {
		fields = append(fields, m.repeatDaysField())
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithKeyMap(formKeyMap())
}

func (m *Model) repeatDaysField() huh.Field {
	opts := make([]huh.Option[int], model.DaysPerWeek)
	for d := 0; d < model.DaysPerWeek; d++ {
		opts[d] = huh.NewOption(model.WeekdayLabel(d), d)
	}
	return huh.NewMultiSelect[int]().
		Title("Repeat on").
		Description(scheduleHint(m.editMode)).
		Options(opts...).
		Value(&m.fb.repeatDays)
}

// scheduleHint explains what the weekday selection changes. A new item
// always starts as an every-day routine; only editing reschedules it.
func scheduleHint(editMode bool) string {
	if editMode {
		return "Days the routine comes back on. None selected means every day."
	}
	return "Applies to today's item only. The routine repeats every day; edit the item to change its schedule."
}

func (m Model) handleSubmit() tea.Cmd {
	msg := TodoSubmittedMsg{
		GoalID:  m.goalID,
		Content: strings.TrimSpace(m.fb.content),
	}
	if m.daily {
		msg.RepeatDays = model.NormalizeDays(m.fb.repeatDays)
	}
	if m.editMode {
		msg.TodoID = m.editID
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// formKeyMap lets esc abort the form as well as ctrl+c.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"))
	return km
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
