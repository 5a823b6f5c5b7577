package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestColorForName(t *testing.T) {
	assert.Equal(t, ColorRed, ColorForName("red"))
	assert.Equal(t, ColorMagenta, ColorForName(" Purple "))
	assert.Equal(t, ColorBlue, ColorForName("chartreuse"))
	assert.Equal(t, ColorBlue, ColorForName(""))
}

func TestGoalColorNames(t *testing.T) {
	names := GoalColorNames()
	assert.Len(t, names, 12)
	assert.Equal(t, "blue", names[0])
	assert.Contains(t, names, "teal")
}

func TestProgressBar(t *testing.T) {
	assert.Empty(t, ProgressBar(0.5, 0, "red"))
	assert.Equal(t, 10, lipgloss.Width(ProgressBar(0.5, 10, "red")))
	assert.Equal(t, 4, lipgloss.Width(ProgressBar(2, 4, "green")))
}
