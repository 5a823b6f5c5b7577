package sync

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/goal-tracker/internal/logging"
)

const logTag = "rollover"

// defaultInterval is used when the configured check interval is not positive.
const defaultInterval = 60 * time.Second

// Resetter is the part of the goal engine the watcher drives.
type Resetter interface {
	NeedsReset() bool
	RunDailyReset() int
}

// RolloverMsg is a tea.Msg sent after a check regenerated at least one goal.
type RolloverMsg struct {
	Goals int
	At    time.Time
}

// RolloverStatus describes the watcher's last activity.
type RolloverStatus struct {
	Running   bool
	LastCheck time.Time
	LastReset time.Time
	Resets    int
}

// Watcher periodically checks whether the calendar day changed while the
// app is running and triggers the daily reset when it has.
type Watcher struct {
	goals     Resetter
	interval  time.Duration
	now       func() time.Time
	resultCh  chan RolloverMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
	status    RolloverStatus
}

// New creates a watcher that checks r every interval.
func New(r Resetter, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{
		goals:     r,
		interval:  interval,
		now:       time.Now,
		resultCh:  make(chan RolloverMsg, 4),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the check loop and returns a tea.Cmd that waits for the
// first RolloverMsg. Calling Start on a running watcher returns nil.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.status.Running = true
	w.mu.Unlock()

	go w.loop()

	return w.waitForResult()
}

// Stop halts the check loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	close(w.stopCh)
	w.running = false
	w.status.Running = false
}

// CheckNow asks the loop to check immediately, e.g. when the terminal
// regains focus after a long suspend.
func (w *Watcher) CheckNow() {
	select {
	case w.triggerCh <- struct{}{}:
	default:
		// A check is already pending.
	}
}

// Status returns a snapshot of the watcher state.
func (w *Watcher) Status() RolloverStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Watcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.check()
		case <-w.triggerCh:
			w.check()
		}
	}
}

// check runs one reset pass if the day changed and reports the result.
func (w *Watcher) check() {
	at := w.now()

	w.mu.Lock()
	w.status.LastCheck = at
	w.mu.Unlock()

	if !w.goals.NeedsReset() {
		return
	}

	n := w.goals.RunDailyReset()
	if n == 0 {
		return
	}
	logging.Info(logTag, "new day detected, regenerated %d goal(s)", n)

	w.mu.Lock()
	w.status.LastReset = at
	w.status.Resets++
	w.mu.Unlock()

	select {
	case w.resultCh <- RolloverMsg{Goals: n, At: at}:
	default:
		logging.Debug(logTag, "dropping rollover message, receiver busy")
	}
}

func (w *Watcher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-w.resultCh
		if !ok {
			return nil
		}
		return msg
	}
}

// WaitForNext returns a tea.Cmd that waits for the next RolloverMsg.
// Call it after handling a RolloverMsg to keep listening.
func (w *Watcher) WaitForNext() tea.Cmd {
	return w.waitForResult()
}
