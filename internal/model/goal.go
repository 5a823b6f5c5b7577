package model

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a user-defined objective with its checklist. A daily-repeating
// goal keeps templates in BaseTodos and regenerates Todos from them once
// per calendar day.
type Goal struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Emoji         string `json:"emoji" yaml:"emoji"`
	ColorName     string `json:"colorName" yaml:"color_name"`
	IsDailyRepeat bool   `json:"isDailyRepeat" yaml:"is_daily_repeat"`

	// LastResetDate is the day Todos was last regenerated from BaseTodos.
	LastResetDate time.Time `json:"lastResetDate" yaml:"last_reset_date"`

	BaseTodos []Item `json:"baseTodos" yaml:"base_todos"`
	Todos     []Item `json:"todos" yaml:"todos"`

	// CompletedHistory is append-only and survives resets.
	CompletedHistory []Item `json:"completedHistory" yaml:"completed_history"`

	// DeletedContents lists template texts the user removed; the reset
	// pass never regenerates a template whose content is listed here.
	DeletedContents []string `json:"deletedContents" yaml:"deleted_contents"`
}

// NewGoal returns a goal with empty collections, reset as of now.
func NewGoal(title, emoji, colorName string, isDailyRepeat bool, now time.Time) Goal {
	return Goal{
		ID:               uuid.New().String(),
		Title:            title,
		Emoji:            emoji,
		ColorName:        colorName,
		IsDailyRepeat:    isDailyRepeat,
		LastResetDate:    now,
		BaseTodos:        []Item{},
		Todos:            []Item{},
		CompletedHistory: []Item{},
		DeletedContents:  []string{},
	}
}

// CompletedCount is the number of completed items in Todos.
func (g Goal) CompletedCount() int {
	n := 0
	for _, t := range g.Todos {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// Progress returns the completed share of Todos in [0, 1].
func (g Goal) Progress() float64 {
	if len(g.Todos) == 0 {
		return 0
	}
	return float64(g.CompletedCount()) / float64(len(g.Todos))
}

// FindTodo returns the index of the item with id in Todos, or -1.
func (g Goal) FindTodo(id string) int {
	return indexByID(g.Todos, id)
}

// FindTemplate returns the index of the template with id in BaseTodos, or -1.
func (g Goal) FindTemplate(id string) int {
	return indexByID(g.BaseTodos, id)
}

// TemplateFor returns the index in BaseTodos of the template it came from,
// or -1. Rows written before instances carried a TemplateID are matched by
// content as a last resort.
func (g Goal) TemplateFor(it Item) int {
	if it.IsBase {
		return g.FindTemplate(it.ID)
	}
	if it.TemplateID != "" {
		return g.FindTemplate(it.TemplateID)
	}
	for idx, base := range g.BaseTodos {
		if base.Content == it.Content {
			return idx
		}
	}
	return -1
}

// IsDeletedContent reports whether content was removed by the user.
func (g Goal) IsDeletedContent(content string) bool {
	for _, c := range g.DeletedContents {
		if c == content {
			return true
		}
	}
	return false
}

// LinkTemplates upgrades legacy documents: each instance without a
// TemplateID is bound to the first unclaimed template with equal content.
// It reports whether anything changed.
func (g *Goal) LinkTemplates() bool {
	if !g.IsDailyRepeat {
		return false
	}
	changed := false
	for idx := range g.BaseTodos {
		if !g.BaseTodos[idx].IsBase {
			g.BaseTodos[idx].IsBase = true
			changed = true
		}
	}
	for idx := range g.Todos {
		it := &g.Todos[idx]
		if it.IsBase || it.TemplateID != "" {
			continue
		}
		for _, base := range g.BaseTodos {
			if base.Content != it.Content {
				continue
			}
			if base.ID == it.ID {
				// First-revision documents appended the very same row to
				// both collections; give the instance its own identity.
				it.ID = uuid.New().String()
			}
			it.TemplateID = base.ID
			changed = true
			break
		}
	}
	return changed
}

// Clone returns a deep copy of the goal.
func (g Goal) Clone() Goal {
	c := g
	c.BaseTodos = cloneItems(g.BaseTodos)
	c.Todos = cloneItems(g.Todos)
	c.CompletedHistory = cloneItems(g.CompletedHistory)
	c.DeletedContents = append(make([]string, 0, len(g.DeletedContents)), g.DeletedContents...)
	return c
}

func (g *Goal) normalize() {
	if g.BaseTodos == nil {
		g.BaseTodos = []Item{}
	}
	if g.Todos == nil {
		g.Todos = []Item{}
	}
	if g.CompletedHistory == nil {
		g.CompletedHistory = []Item{}
	}
	if g.DeletedContents == nil {
		g.DeletedContents = []string{}
	}
	for _, items := range [][]Item{g.BaseTodos, g.Todos, g.CompletedHistory} {
		for idx := range items {
			items[idx].normalize()
		}
	}
}

func indexByID(items []Item, id string) int {
	for idx, it := range items {
		if it.ID == id {
			return idx
		}
	}
	return -1
}
