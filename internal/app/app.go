package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/goal-tracker/internal/goals"
	"github.com/nhle/goal-tracker/internal/logging"
	"github.com/nhle/goal-tracker/internal/model"
	appsync "github.com/nhle/goal-tracker/internal/sync"
	"github.com/nhle/goal-tracker/internal/theme"
	"github.com/nhle/goal-tracker/internal/ui"
	"github.com/nhle/goal-tracker/internal/ui/command"
	"github.com/nhle/goal-tracker/internal/ui/goaldetail"
	"github.com/nhle/goal-tracker/internal/ui/goalform"
	"github.com/nhle/goal-tracker/internal/ui/goallist"
	helpview "github.com/nhle/goal-tracker/internal/ui/help"
	"github.com/nhle/goal-tracker/internal/ui/todoform"
)

const logTag = "app"

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewGoalForm
	ViewTodoForm
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the goal engine.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	goals        *goals.Store
	watcher      *appsync.Watcher
	keys         *KeyMap
	goalList     goallist.Model
	detail       goaldetail.Model
	helpView     helpview.Model
	goalForm     goalform.Model
	todoForm     todoform.Model
	commandView  command.Model
	snapshot     []model.Goal
	events       chan goals.Event
	unsubscribe  func()
	now          func() time.Time
	ready        bool
	notice       string
	noticeAt     time.Time
}

// New creates the root model on top of an opened goal store. w may be nil
// to disable the background rollover check.
func New(s *goals.Store, w *appsync.Watcher) Model {
	keys := DefaultKeyMap()
	events, cancel := subscribe(s)

	return Model{
		currentView: ViewList,
		goals:       s,
		watcher:     w,
		keys:        keys,
		goalList:    goallist.New(keys, 80, 24),
		detail:      goaldetail.New(keys, 80, 24),
		helpView:    helpview.New(keys, 80, 24),
		goalForm:    goalform.New(80, 24),
		todoForm:    todoform.New(80, 24),
		commandView: command.New(80, 24),
		snapshot:    s.Goals(),
		events:      events,
		unsubscribe: cancel,
		now:         time.Now,
	}
}

// Init loads the goals, starts listening for store events and starts the
// rollover watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadGoals(), waitForEvent(m.events)}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.goalList.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.goalForm.SetSize(w, h)
		m.todoForm.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case tea.FocusMsg:
		if m.watcher != nil {
			m.watcher.CheckNow()
		}
		return m, nil

	case goalsLoadedMsg:
		m.snapshot = msg.goals
		cmd := m.goalList.SetGoals(msg.goals)
		if m.currentView == ViewDetail {
			g, ok := m.findGoal(m.detail.GoalID())
			if !ok {
				m.currentView = ViewList
				return m, cmd
			}
			m.detail.SetGoal(g)
		}
		return m, cmd

	case storeEventMsg:
		cmds := []tea.Cmd{m.loadGoals(), waitForEvent(m.events)}
		if msg.event.Kind == goals.EventReset {
			cmds = append(cmds, m.setNotice("New day: daily checklists were reset"))
		}
		if m.currentView == ViewDetail && msg.event.GoalID == m.detail.GoalID() {
			cmds = append(cmds, m.loadHistory(m.detail.GoalID()))
		}
		return m, tea.Batch(cmds...)

	case appsync.RolloverMsg:
		logging.Debug(logTag, "rollover reset %d goal(s)", msg.Goals)
		return m, m.watcher.WaitForNext()

	case historyLoadedMsg:
		if msg.goalID == m.detail.GoalID() {
			m.detail.SetHistory(msg.items)
		}
		return m, nil

	case resetDoneMsg:
		if msg.goals == 0 {
			return m, m.setNotice("Nothing to reset: already up to date for today")
		}
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case opErrMsg:
		logging.Error(logTag, "%v", msg.err)
		return m, m.setNotice("Error: " + msg.err.Error())

	case clearNoticeMsg:
		if msg.setAt.Equal(m.noticeAt) {
			m.notice = ""
		}
		return m, nil

	case goallist.SelectedGoalMsg:
		g, ok := m.findGoal(msg.GoalID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetGoal(g)
		return m, nil

	case goallist.NewGoalMsg:
		m.previousView = m.currentView
		m.currentView = ViewGoalForm
		return m, m.goalForm.StartCreate()

	case goallist.EditGoalMsg:
		g, ok := m.findGoal(msg.GoalID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewGoalForm
		return m, m.goalForm.StartEdit(g)

	case goallist.DeleteGoalMsg:
		return m, m.deleteGoal(msg.GoalID)

	case goallist.MoveGoalMsg:
		return m, m.moveGoal(msg.GoalID, msg.Index)

	case goalform.GoalSubmittedMsg:
		m.currentView = m.previousView
		if msg.GoalID == "" {
			return m, m.createGoal(msg.Title, msg.Emoji, msg.ColorName, msg.IsDailyRepeat)
		}
		return m, m.updateGoal(msg.GoalID, msg.Title, msg.Emoji, msg.ColorName, msg.IsDailyRepeat)

	case goalform.GoalFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case goaldetail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case goaldetail.ToggleTodoMsg:
		return m, m.toggleTodo(msg.GoalID, msg.TodoID)

	case goaldetail.DeleteTodoMsg:
		return m, m.deleteTodo(msg.GoalID, msg.TodoID)

	case goaldetail.MoveTodoMsg:
		return m, m.moveTodo(msg.GoalID, msg.TodoID, msg.Index)

	case goaldetail.HistoryRequestMsg:
		return m, m.loadHistory(msg.GoalID)

	case goaldetail.NewTodoMsg:
		g, ok := m.findGoal(msg.GoalID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewTodoForm
		return m, m.todoForm.StartCreate(g)

	case goaldetail.EditTodoMsg:
		g, ok := m.findGoal(msg.GoalID)
		if !ok {
			return m, nil
		}
		idx := g.FindTodo(msg.TodoID)
		if idx < 0 {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewTodoForm
		return m, m.todoForm.StartEdit(g, g.Todos[idx])

	case todoform.TodoSubmittedMsg:
		m.currentView = m.previousView
		if msg.TodoID == "" {
			return m, m.addTodo(msg.GoalID, msg.Content, msg.RepeatDays)
		}
		return m, m.editTodo(msg.GoalID, msg.TodoID, msg.Content, msg.RepeatDays)

	case todoform.TodoFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if m.inForm() {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.currentView == ViewList {
				return m, m.quit()
			}

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}

		case ":":
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.goalList, cmd = m.goalList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewGoalForm:
		m.goalForm, cmd = m.goalForm.Update(msg)
	case ViewTodoForm:
		m.todoForm, cmd = m.todoForm.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// inForm reports whether a text-entry view owns the keyboard.
func (m Model) inForm() bool {
	switch m.currentView {
	case ViewGoalForm, ViewTodoForm, ViewCommand:
		return true
	}
	return false
}

// executeCommand handles a line from the command palette.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	switch c.Name {
	case "reset":
		return m.resetNow()
	case "goal", "daily":
		if c.Arg == "" {
			m.previousView = m.currentView
			m.currentView = ViewGoalForm
			return m.goalForm.StartCreate()
		}
		return m.createGoal(c.Arg, "", theme.DefaultGoalColor, c.Name == "daily")
	case "new":
		m.previousView = m.currentView
		m.currentView = ViewGoalForm
		return m.goalForm.StartCreate()
	case "todo", "add":
		g, ok := m.findGoal(m.detail.GoalID())
		if m.currentView != ViewDetail || !ok {
			return m.setNotice("Open a goal to add items")
		}
		m.previousView = m.currentView
		m.currentView = ViewTodoForm
		return m.todoForm.StartCreate(g)
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case "quit", "q":
		return m.quit()
	default:
		return m.setNotice("Unknown command: " + c.Name)
	}
}

func (m Model) quit() tea.Cmd {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return tea.Quit
}

func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeAt = m.now()
	return clearNoticeAfter(m.noticeAt)
}

func (m Model) findGoal(id string) (model.Goal, bool) {
	for _, g := range m.snapshot {
		if g.ID == id {
			return g, true
		}
	}
	return m.goals.Goal(id)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Goal Tracker", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		if len(m.snapshot) == 0 {
			return m.layout.RenderCentered("No goals yet.\n\nPress n to create one, or : for commands.")
		}
		return m.goalList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewGoalForm:
		return m.goalForm.View()
	case ViewTodoForm:
		return m.todoForm.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// headerStatus summarizes today's progress across all goals.
func (m Model) headerStatus() string {
	done, total := 0, 0
	for _, g := range m.snapshot {
		done += g.CompletedCount()
		total += len(g.Todos)
	}
	status := fmt.Sprintf("%s  %d/%d done", ui.DayLabel(m.now()), done, total)
	if m.watcher != nil {
		if last := m.watcher.Status().LastReset; !last.IsZero() {
			status += "  rolled over " + last.Format("15:04")
		}
	}
	return status
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" {
		return m.notice
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "space toggle | n new | e edit | d delete | J/K move | h history | esc back"
	case ViewGoalForm, ViewTodoForm:
		return "enter submit | esc cancel"
	case ViewCommand:
		return "enter run | esc cancel"
	default:
		return "q quit | ? help | : command | enter open | n new | e edit | d delete | J/K move"
	}
}
