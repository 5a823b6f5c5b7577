package app

import "github.com/nhle/goal-tracker/internal/keys"

// KeyMap is re-exported from the keys package so callers that build the
// root model need only this package.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
