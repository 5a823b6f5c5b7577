package goalform

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

// GoalSubmittedMsg is dispatched when the form is completed. GoalID is
// empty when a new goal is being created.
type GoalSubmittedMsg struct {
	GoalID        string
	Title         string
	Emoji         string
	ColorName     string
	IsDailyRepeat bool
}

// GoalFormCancelMsg is dispatched when the user cancels the form.
type GoalFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title         string
	emoji         string
	colorName     string
	isDailyRepeat bool
}

// Model is the Bubble Tea model for the goal create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new goal form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{colorName: theme.DefaultGoalColor},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new goal.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	*m.fb = formBindings{colorName: theme.DefaultGoalColor}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing goal's fields.
func (m *Model) StartEdit(g model.Goal) tea.Cmd {
	m.editMode = true
	m.editID = g.ID
	*m.fb = formBindings{
		title:         g.Title,
		emoji:         g.Emoji,
		colorName:     strings.ToLower(g.ColorName),
		isDailyRepeat: g.IsDailyRepeat,
	}
	if m.fb.colorName == "" {
		m.fb.colorName = theme.DefaultGoalColor
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the goal form.
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
		return m, func() tea.Msg { return GoalFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the goal form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Goal"
	if m.editMode {
		titleText = "Edit Goal"
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
	colors := theme.GoalColorNames()
	opts := make([]huh.Option[string], len(colors))
	for i, c := range colors {
		opts[i] = huh.NewOption(
			lipgloss.NewStyle().Foreground(theme.ColorForName(c)).Render("● "+c),
			c,
		)
	}

	dailyHint := "Items are regenerated every day at midnight."
	if m.editMode && m.fb.isDailyRepeat {
		dailyHint = "Turning this off keeps today's items and drops their schedules."
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What do you want to achieve?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewInput().
				Title("Emoji").
				Placeholder("Optional, e.g. 💪").
				CharLimit(8).
				Value(&m.fb.emoji),
			huh.NewSelect[string]().
				Title("Color").
				Options(opts...).
				Value(&m.fb.colorName),
			huh.NewConfirm().
				Title("Repeat daily?").
				Description(dailyHint).
				Affirmative("Yes").
				Negative("No").
				Value(&m.fb.isDailyRepeat),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithKeyMap(formKeyMap())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := GoalSubmittedMsg{
		Title:         strings.TrimSpace(m.fb.title),
		Emoji:         strings.TrimSpace(m.fb.emoji),
		ColorName:     m.fb.colorName,
		IsDailyRepeat: m.fb.isDailyRepeat,
	}
	if m.editMode {
		msg.GoalID = m.editID
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
