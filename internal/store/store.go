package store

import (
	"context"
	"errors"

	"github.com/nhle/goal-tracker/internal/model"
)

// ErrNotFound is returned by Load when no goal document has been saved yet.
var ErrNotFound = errors.New("goal document not found")

// documentKey names the goal document in key/value backends.
const documentKey = "goals"

// Store persists the whole goal collection as a single document. Every
// Save rewrites the document in full.
type Store interface {
	// Load returns the saved goals, or ErrNotFound when nothing was saved.
	Load(ctx context.Context) ([]model.Goal, error)

	// Save replaces the stored document with goals.
	Save(ctx context.Context, goals []model.Goal) error

	// Close releases any underlying resources.
	Close() error
}

// Location returns where st keeps the goal document, or "" when the
// backend has no single file.
func Location(st Store) string {
	if p, ok := st.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}
