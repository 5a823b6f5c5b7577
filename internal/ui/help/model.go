package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/goal-tracker/internal/keys"
	"github.com/nhle/goal-tracker/internal/theme"
)

// section is one screen's worth of bindings.
type section struct {
	title    string
	bindings []key.Binding
}

// routineNotes explain how daily goals behave across days.
var routineNotes = []string{
	"Daily goals rebuild today's checklist from their routine at local midnight.",
	"Completed items move to the goal's history; h shows what you finished today.",
	"Deleting an item from a daily goal drops it from the routine for good.",
	"Days picked when adding an item shape today's row only; edit it to reschedule.",
}

// Model lists the key bindings grouped by the screen they act on.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width - 4
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Update is a no-op; the root model closes the view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) sections() []section {
	k := m.keys
	return []section{
		{"Goal list", []key.Binding{k.Up, k.Down, k.Select, k.New, k.Edit, k.Delete, k.MoveUp, k.MoveDown}},
		{"Today's checklist", []key.Binding{k.Toggle, k.New, k.Edit, k.Delete, k.MoveUp, k.MoveDown, k.History, k.Back}},
		{"Anywhere", []key.Binding{k.Command, k.Help, k.Quit}},
	}
}

// View renders the grouped shortcuts followed by the daily routine notes.
func (m Model) View() string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	parts := []string{heading.MarginBottom(1).Render("Keyboard Shortcuts by Screen")}
	for _, s := range m.sections() {
		parts = append(parts,
			heading.Render(s.title),
			m.help.ShortHelpView(s.bindings),
			"",
		)
	}

	parts = append(parts, heading.Render("Daily routines"))
	parts = append(parts, theme.HelpStyle.Render("• "+strings.Join(routineNotes, "\n• ")))

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
