package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func TestInstantiate(t *testing.T) {
	tmpl := NewTemplate("read", 3, testNow.AddDate(0, 0, -7))
	tmpl.RepeatDays = []int{1, 3}
	tmpl.CompletedDays = []int{1}

	inst := tmpl.Instantiate(testNow)

	assert.NotEqual(t, tmpl.ID, inst.ID)
	assert.Equal(t, tmpl.ID, inst.TemplateID)
	assert.Equal(t, "read", inst.Content)
	assert.Equal(t, 3, inst.Order)
	assert.Equal(t, []int{1, 3}, inst.RepeatDays)
	assert.Empty(t, inst.CompletedDays)
	assert.False(t, inst.IsBase)
	assert.False(t, inst.IsCompleted)
	assert.Equal(t, testNow, inst.CreatedAt)

	// The instance owns its schedule.
	inst.RepeatDays[0] = 6
	assert.Equal(t, []int{1, 3}, tmpl.RepeatDays)
}

func TestActiveOn(t *testing.T) {
	it := NewItem("x", 0, []int{0, 4}, testNow)
	assert.True(t, it.ActiveOn(4))
	assert.False(t, it.ActiveOn(2))

	legacy := Item{ID: "t", IsBase: true}
	assert.True(t, legacy.ActiveOn(5))
	assert.False(t, Item{ID: "i"}.ActiveOn(5))
}

func TestItemEqual(t *testing.T) {
	a := NewItem("x", 0, []int{2}, testNow)
	b := a.Clone()
	assert.True(t, a.Equal(b))

	at := testNow
	b.CompletedAt = &at
	assert.False(t, a.Equal(b))

	c := a.Clone()
	c.MarkCompletedDay(2)
	assert.False(t, a.Equal(c))

	d := a.Clone()
	d.CreatedAt = a.CreatedAt.In(time.FixedZone("X", 3600))
	assert.True(t, a.Equal(d))
}

func TestItemUnmarshal_LegacyTimestamp(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"id":"a","timestamp":"2026-10-10T08:00:00Z","content":"run","isCompleted":true}`), &it)
	require.NoError(t, err)

	stamp := time.Date(2026, 10, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "a", it.ID)
	assert.True(t, it.IsCompleted)
	assert.True(t, stamp.Equal(it.CreatedAt))
	assert.True(t, stamp.Equal(it.UpdatedAt))
	assert.NotNil(t, it.RepeatDays)
	assert.NotNil(t, it.CompletedDays)
}

func TestItemUnmarshal_PrefersExplicitTimes(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"id":"a","timestamp":"2026-10-10T08:00:00Z","createdAt":"2026-10-01T08:00:00Z","updatedAt":"2026-10-11T08:00:00Z"}`), &it)
	require.NoError(t, err)

	assert.Equal(t, 1, it.CreatedAt.Day())
	assert.Equal(t, 11, it.UpdatedAt.Day())
}

func TestItemMarshal_WritesTimestamp(t *testing.T) {
	it := NewItem("run", 0, nil, testNow)
	it.UpdatedAt = testNow.Add(time.Hour)

	data, err := json.Marshal(it)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, it.UpdatedAt.Format(time.RFC3339Nano), raw["timestamp"])
	assert.Equal(t, "run", raw["content"])
	assert.Contains(t, raw, "updatedAt")

	var back Item
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, it.Equal(back))
}
