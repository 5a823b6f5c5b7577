package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/goal-tracker/internal/theme"
)

// Layout splits the terminal into a one-line header, the active view and a
// one-line status bar.
type Layout struct {
	Width  int
	Height int
}

const (
	headerLines    = 1
	statusBarLines = 1
)

// NewLayout creates a Layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth returns the width available to the active view.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the rows left between the header and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - headerLines - statusBarLines
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader draws the app title on the left and today's summary on the
// right, filling the row with the header background.
func (l Layout) RenderHeader(title, status string) string {
	return l.bar(theme.HeaderStyle, title, status)
}

// RenderStatusBar draws key hints or the current notice.
func (l Layout) RenderStatusBar(hints string) string {
	return l.bar(theme.StatusBarStyle, hints, "")
}

// bar renders left and right segments in style across the full width.
func (l Layout) bar(style lipgloss.Style, left, right string) string {
	segments := []string{style.Render(left)}
	if right != "" {
		segments = append(segments, style.Render(right))
	}

	used := 0
	for _, s := range segments {
		used += lipgloss.Width(s)
	}
	gap := max(l.Width-used, 0)
	fill := lipgloss.NewStyle().Width(gap).Background(style.GetBackground()).Render("")

	if len(segments) == 1 {
		return lipgloss.JoinHorizontal(lipgloss.Top, segments[0], fill)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments[0], fill, segments[1])
}

// RenderWithFrame stacks header, content and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// RenderCentered places msg in the middle of the content area, for empty
// states.
func (l Layout) RenderCentered(msg string) string {
	return lipgloss.NewStyle().
		Width(l.ContentWidth()).
		Height(l.ContentHeight()).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(msg)
}

// DayLabel formats the header status for the calendar day of t, e.g.
// "Wed 14 Oct".
func DayLabel(t time.Time) string {
	return t.Format("Mon 02 Jan")
}
