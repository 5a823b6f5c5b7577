package goals

import "time"

// EventKind names a state transition of the goal store.
type EventKind string

const (
	EventGoalCreated EventKind = "goal_created"
	EventGoalUpdated EventKind = "goal_updated"
	EventGoalDeleted EventKind = "goal_deleted"
	EventGoalMoved   EventKind = "goal_moved"
	EventTodoAdded   EventKind = "todo_added"
	EventTodoToggled EventKind = "todo_toggled"
	EventTodoEdited  EventKind = "todo_edited"
	EventTodoDeleted EventKind = "todo_deleted"
	EventTodoMoved   EventKind = "todo_moved"
	EventReset       EventKind = "reset"
)

// Event is delivered to subscribers after a mutation has been applied and
// persisted. GoalID and TodoID are empty when they do not apply.
type Event struct {
	Kind   EventKind
	GoalID string
	TodoID string
	At     time.Time
}

// Subscribe registers fn to receive every subsequent event. Callbacks run
// on the goroutine that performed the mutation, after the store lock has
// been released, so they may call back into the store. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
