package goals

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nhle/goal-tracker/internal/logging"
	"github.com/nhle/goal-tracker/internal/model"
	"github.com/nhle/goal-tracker/internal/store"
)

const logTag = "goals"

// Not-found conditions. UI callers treat them as silent no-ops.
var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrTodoNotFound = errors.New("todo not found")
)

// Options configures a Store.
type Options struct {
	// Now returns the current instant; its location decides calendar days.
	// Defaults to time.Now.
	Now func() time.Time

	// KeepCompleted makes the reset pass keep instances completed since the
	// previous reset at the top of the regenerated list.
	KeepCompleted bool
}

// Store is the goal state engine. It owns the in-memory goal collection,
// applies every mutation, and writes the full collection through the
// persistence adapter after each one.
type Store struct {
	mu            sync.Mutex
	persist       store.Store
	goals         []model.Goal
	now           func() time.Time
	keepCompleted bool

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// New creates an empty engine backed by st. Call Open before use.
func New(st store.Store, opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		persist:       st,
		goals:         []model.Goal{},
		now:           now,
		keepCompleted: opts.KeepCompleted,
		subs:          make(map[int]func(Event)),
	}
}

// Open loads the persisted goals and runs the daily reset pass. A missing
// or unreadable document leaves the store empty; read failures are logged,
// never returned.
func (s *Store) Open(ctx context.Context) {
	loaded, err := s.persist.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		logging.Debug(logTag, "no saved goals, starting empty")
		loaded = []model.Goal{}
	case err != nil:
		logging.Error(logTag, "loading goals: %v", err)
		loaded = []model.Goal{}
	}

	upgraded := false
	for i := range loaded {
		if loaded[i].LinkTemplates() {
			upgraded = true
		}
	}

	s.mu.Lock()
	s.goals = loaded
	if upgraded {
		logging.Info(logTag, "linked legacy day instances to their templates")
		s.saveLocked()
	}
	s.mu.Unlock()

	if n := s.RunDailyReset(); n > 0 {
		logging.Info(logTag, "daily reset regenerated %d goal(s)", n)
	}
}

// Goals returns a deep copy of every goal in display order.
func (s *Store) Goals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Goal, len(s.goals))
	for i, g := range s.goals {
		out[i] = g.Clone()
	}
	return out
}

// Goal returns a deep copy of the goal with id.
func (s *Store) Goal(id string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.goalIndex(id)
	if idx < 0 {
		return model.Goal{}, false
	}
	return s.goals[idx].Clone(), true
}

// History returns the distinct items of a goal completed on the calendar
// day of day, oldest first.
func (s *Store) History(goalID string, day time.Time) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.goalIndex(goalID)
	if idx < 0 {
		return nil, ErrGoalNotFound
	}

	var out []model.Item
	seen := make(map[string]int)
	for _, h := range s.goals[idx].CompletedHistory {
		at := h.UpdatedAt
		if h.CompletedAt != nil {
			at = *h.CompletedAt
		}
		if !model.SameDay(day, at) {
			continue
		}
		if pos, ok := seen[h.ID]; ok {
			out[pos] = h.Clone()
			continue
		}
		seen[h.ID] = len(out)
		out = append(out, h.Clone())
	}
	return out, nil
}

// mutate runs fn under the lock with the current time. When fn succeeds
// the whole collection is persisted and the returned event published.
func (s *Store) mutate(fn func(now time.Time) (Event, error)) error {
	s.mu.Lock()
	now := s.now()
	ev, err := fn(now)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.saveLocked()
	s.mu.Unlock()

	ev.At = now
	s.publish(ev)
	return nil
}

// saveLocked writes the full document. Failures leave memory ahead of disk
// until the next successful save.
func (s *Store) saveLocked() {
	if err := s.persist.Save(context.Background(), s.goals); err != nil {
		logging.Error(logTag, "saving goals: %v", err)
	}
}

func (s *Store) goalIndex(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) goalByID(id string) (*model.Goal, error) {
	idx := s.goalIndex(id)
	if idx < 0 {
		return nil, ErrGoalNotFound
	}
	return &s.goals[idx], nil
}
