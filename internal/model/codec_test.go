package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncodeGoals_RoundTrip(t *testing.T) {
	g := NewGoal("Workout", "💪", "red", true, testNow)
	tmpl := NewTemplate("run", 0, testNow)
	inst := tmpl.Instantiate(testNow)
	inst.IsCompleted = true
	at := testNow
	inst.CompletedAt = &at
	inst.MarkCompletedDay(2)
	g.BaseTodos = []Item{tmpl}
	g.Todos = []Item{inst}
	g.CompletedHistory = []Item{inst.Clone()}
	g.DeletedContents = []string{"swim"}

	data, err := EncodeGoals([]Goal{g})
	require.NoError(t, err)

	decoded, err := DecodeGoals(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	got := decoded[0]
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, g.Title, got.Title)
	assert.True(t, g.LastResetDate.Equal(got.LastResetDate))
	assert.Equal(t, g.DeletedContents, got.DeletedContents)
	for i, pair := range [][2][]Item{{g.BaseTodos, got.BaseTodos}, {g.Todos, got.Todos}, {g.CompletedHistory, got.CompletedHistory}} {
		require.Len(t, pair[1], len(pair[0]), "collection %d", i)
		for j := range pair[0] {
			assert.True(t, pair[0][j].Equal(pair[1][j]), "collection %d item %d", i, j)
		}
	}
}

func TestEncodeGoals_EmptyCollectionsAreArrays(t *testing.T) {
	data, err := EncodeGoals([]Goal{{ID: "g", Title: "Empty"}})
	require.NoError(t, err)

	s := string(data)
	for _, key := range []string{"baseTodos", "todos", "completedHistory", "deletedContents"} {
		assert.Contains(t, s, `"`+key+`": []`)
	}
	assert.NotContains(t, s, "null")

	data, err = EncodeGoals(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeGoals(t *testing.T) {
	goals, err := DecodeGoals([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)

	goals, err = DecodeGoals([]byte(`[{"id":"g","title":"Bare"}]`))
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.NotNil(t, goals[0].BaseTodos)
	assert.NotNil(t, goals[0].Todos)
	assert.NotNil(t, goals[0].CompletedHistory)
	assert.NotNil(t, goals[0].DeletedContents)

	_, err = DecodeGoals([]byte("{"))
	assert.Error(t, err)
}

func TestEncodeGoalsYAML(t *testing.T) {
	g := NewGoal("Workout", "💪", "red", false, testNow)
	g.Todos = []Item{NewItem("run", 0, nil, testNow)}

	data, err := EncodeGoalsYAML([]Goal{g})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "title: Workout"))

	var back []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "red", back[0]["color_name"])
}
