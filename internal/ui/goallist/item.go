package goallist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/goal-tracker/internal/model"
	"github.com/nhle/goal-tracker/internal/theme"
)

const progressWidth = 12

// GoalItem wraps a model.Goal so it can be used in a bubbles/list.
type GoalItem struct {
	Goal model.Goal
}

// FilterValue returns the string used for fuzzy filtering.
func (i GoalItem) FilterValue() string { return i.Goal.Title }

// Title returns the goal title with its emoji.
func (i GoalItem) Title() string {
	if i.Goal.Emoji == "" {
		return i.Goal.Title
	}
	return i.Goal.Emoji + " " + i.Goal.Title
}

// Description returns a short progress summary.
func (i GoalItem) Description() string {
	return progressLabel(i.Goal)
}

// GoalDelegate implements list.ItemDelegate for rendering goals.
type GoalDelegate struct{}

// Height returns the number of lines each item takes.
func (d GoalDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d GoalDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d GoalDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single goal line: title, progress bar, counts and a
// daily marker.
func (d GoalDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(GoalItem)
	if !ok {
		return
	}
	g := gi.Goal

	title := theme.GoalTitleStyle(g.ColorName).Render(gi.Title())
	bar := theme.ProgressBar(g.Progress(), progressWidth, g.ColorName)
	counts := lipgloss.NewStyle().Foreground(theme.ColorGray).Render(progressLabel(g))

	daily := ""
	if g.IsDailyRepeat {
		daily = lipgloss.NewStyle().Foreground(theme.ColorTeal).Render(" ↻ daily")
	}

	line := fmt.Sprintf("%s  %s %s%s", title, bar, counts, daily)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

func progressLabel(g model.Goal) string {
	if len(g.Todos) == 0 {
		return "no items"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d", g.CompletedCount(), len(g.Todos))
	if g.CompletedCount() == len(g.Todos) {
		b.WriteString(" ✓")
	}
	return b.String()
}
