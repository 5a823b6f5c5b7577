package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nhle/goal-tracker/internal/model"
)

// DocumentFilename is the name of the JSON goal document inside the data dir.
const DocumentFilename = "goals.json"

// FileStore implements Store with one JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a store whose document lives in dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("empty data dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, DocumentFilename)}, nil
}

// Path returns the document location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the goal document.
func (s *FileStore) Load(ctx context.Context) ([]model.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return model.DecodeGoals(data)
}

// Save atomically replaces the document: the new content is written to a
// temp file in the same directory and renamed over the old one.
func (s *FileStore) Save(ctx context.Context, goals []model.Goal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := model.EncodeGoals(goals)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "goals-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
