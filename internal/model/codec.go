package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeGoals renders the persistence document: a JSON array of goals.
func EncodeGoals(goals []Goal) ([]byte, error) {
	if goals == nil {
		goals = []Goal{}
	}
	for idx := range goals {
		goals[idx].normalize()
	}
	data, err := json.MarshalIndent(goals, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling goals: %w", err)
	}
	return data, nil
}

// DecodeGoals parses a persistence document. Missing collections decode as
// empty slices, never nil.
func DecodeGoals(data []byte) ([]Goal, error) {
	var goals []Goal
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("parsing goals: %w", err)
	}
	if goals == nil {
		goals = []Goal{}
	}
	for idx := range goals {
		goals[idx].normalize()
	}
	return goals, nil
}

// EncodeGoalsYAML renders goals as YAML for human-readable export.
func EncodeGoalsYAML(goals []Goal) ([]byte, error) {
	if goals == nil {
		goals = []Goal{}
	}
	data, err := yaml.Marshal(goals)
	if err != nil {
		return nil, fmt.Errorf("marshaling goals to yaml: %w", err)
	}
	return data, nil
}
