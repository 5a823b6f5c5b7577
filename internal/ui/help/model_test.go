package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/goal-tracker/internal/keys"
)

func TestViewGroupsBindingsByScreen(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 160, 40)
	view := m.View()

	for _, title := range []string{"Goal list", "Today's checklist", "Anywhere", "Daily routines"} {
		assert.Contains(t, view, title)
	}
	assert.Contains(t, view, "toggle done")
	assert.Contains(t, view, "command palette")
}

func TestEverySectionHasBindings(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	for _, s := range m.sections() {
		assert.NotEmpty(t, s.bindings, s.title)
		for _, b := range s.bindings {
			assert.NotEmpty(t, b.Help().Key, s.title)
		}
	}
}
