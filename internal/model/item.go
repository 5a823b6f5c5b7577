package model

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Item is one checklist entry of a goal. On a daily-repeating goal an item
// is either a template (IsBase) or a day instance generated from one.
type Item struct {
	ID string `json:"id" yaml:"id"`

	// TemplateID links a day instance to the template it was generated
	// from. Empty for templates and for items of flat goals.
	TemplateID string `json:"templateId,omitempty" yaml:"template_id,omitempty"`

	Content     string `json:"content" yaml:"content"`
	IsCompleted bool   `json:"isCompleted" yaml:"is_completed"`

	// Order is the manual sort position among siblings. Gaps are allowed.
	Order int `json:"order" yaml:"order"`

	// RepeatDays and CompletedDays hold weekday indices (0 = Monday).
	RepeatDays    []int `json:"repeatDays" yaml:"repeat_days"`
	CompletedDays []int `json:"completedDays" yaml:"completed_days"`

	IsBase bool `json:"isBase" yaml:"is_base"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`

	// UpdatedAt is bumped on every completion-state change.
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updated_at"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completed_at,omitempty"`
}

// NewItem returns an open item with a fresh id, stamped at now.
func NewItem(content string, order int, repeatDays []int, now time.Time) Item {
	return Item{
		ID:            uuid.New().String(),
		Content:       content,
		Order:         order,
		RepeatDays:    NormalizeDays(repeatDays),
		CompletedDays: []int{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewTemplate returns a full-week template row.
func NewTemplate(content string, order int, now time.Time) Item {
	t := NewItem(content, order, AllWeekdays(), now)
	t.IsBase = true
	return t
}

// Instantiate generates a fresh, not-completed day instance of the
// template t. The instance never shares the template's id.
func (t Item) Instantiate(now time.Time) Item {
	inst := NewItem(t.Content, t.Order, t.RepeatDays, now)
	inst.TemplateID = t.ID
	return inst
}

// ActiveOn reports whether the item is scheduled on weekday index day.
// A template without a schedule repeats every day.
func (i Item) ActiveOn(day int) bool {
	if len(i.RepeatDays) == 0 {
		return i.IsBase
	}
	return containsDay(i.RepeatDays, day)
}

// CompletedOn reports whether the item has ever been completed on day.
func (i Item) CompletedOn(day int) bool {
	return containsDay(i.CompletedDays, day)
}

// MarkCompletedDay records day in CompletedDays.
func (i *Item) MarkCompletedDay(day int) {
	i.CompletedDays = NormalizeDays(append(i.CompletedDays, day))
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	c := i
	c.RepeatDays = cloneDays(i.RepeatDays)
	c.CompletedDays = cloneDays(i.CompletedDays)
	if i.CompletedAt != nil {
		at := *i.CompletedAt
		c.CompletedAt = &at
	}
	return c
}

// Equal reports whether both items have the same id and the same value for
// every other field.
func (i Item) Equal(o Item) bool {
	if i.ID != o.ID || i.TemplateID != o.TemplateID ||
		i.Content != o.Content || i.IsCompleted != o.IsCompleted ||
		i.Order != o.Order || i.IsBase != o.IsBase {
		return false
	}
	if !i.CreatedAt.Equal(o.CreatedAt) || !i.UpdatedAt.Equal(o.UpdatedAt) {
		return false
	}
	if (i.CompletedAt == nil) != (o.CompletedAt == nil) {
		return false
	}
	if i.CompletedAt != nil && !i.CompletedAt.Equal(*o.CompletedAt) {
		return false
	}
	return slices.Equal(i.RepeatDays, o.RepeatDays) &&
		slices.Equal(i.CompletedDays, o.CompletedDays)
}

// MarshalJSON writes the current layout plus the legacy "timestamp" key,
// set to UpdatedAt, for readers of the original document format.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		Timestamp time.Time `json:"timestamp"`
	}{plain: plain(i), Timestamp: i.UpdatedAt})
}

// UnmarshalJSON accepts both the current layout and documents written
// before createdAt/updatedAt existed, where a single "timestamp" key held
// the creation or last toggle time.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	aux := struct {
		*plain
		Timestamp *time.Time `json:"timestamp,omitempty"`
	}{plain: (*plain)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Timestamp != nil {
		if i.CreatedAt.IsZero() {
			i.CreatedAt = *aux.Timestamp
		}
		if i.UpdatedAt.IsZero() {
			i.UpdatedAt = *aux.Timestamp
		}
	}
	i.normalize()
	return nil
}

func (i *Item) normalize() {
	if i.RepeatDays == nil {
		i.RepeatDays = []int{}
	}
	if i.CompletedDays == nil {
		i.CompletedDays = []int{}
	}
}

func cloneDays(days []int) []int {
	if days == nil {
		return []int{}
	}
	return append(make([]int, 0, len(days)), days...)
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for idx, it := range items {
		out[idx] = it.Clone()
	}
	return out
}
