package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/tasks"
)

// tasksLoadedMsg carries the result of a full list fetch.
type tasksLoadedMsg struct {
	list []service.Task
	err  error
}

// boardOp identifies which mutation a result belongs to.
type boardOp int

const (
	opAdd boardOp = iota
	opToggle
	opDelete
)

// mutationDoneMsg is delivered when a mutating call completes. A
// successful mutation is always followed by a fresh fetch; the fetch
// never starts before this message arrives.
type mutationDoneMsg struct {
	op  boardOp
	err error
}

// BoardModel is the task screen: an input row for new tasks, filter
// tabs, the task rows from the last successful fetch, and the progress
// line. The local list is only ever replaced wholesale by a fetch;
// it is never edited in place.
type BoardModel struct {
	svc   service.Service
	store *session.Store
	theme Theme

	input textinput.Model
	bar   progress.Model

	list   []service.Task
	filter tasks.Filter
	cursor int

	focusInput bool
	busy       bool // one request-then-refetch pair in flight
	loading    bool

	notice   string
	noticeOK bool

	// confirmID holds the task pending delete confirmation; empty
	// means no confirmation is showing.
	confirmID string

	width  int
	height int
}

func newBoardModel(svc service.Service, store *session.Store, theme Theme) BoardModel {
	input := textinput.New()
	input.Placeholder = "new task"
	input.CharLimit = 500
	input.Width = 40
	input.Focus()

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return BoardModel{
		svc:        svc,
		store:      store,
		theme:      theme,
		input:      input,
		bar:        bar,
		focusInput: true,
	}
}

func (m BoardModel) setSize(width, height int) BoardModel {
	m.width, m.height = width, height
	return m
}

// loadCmd fetches the full task list.
func (m BoardModel) loadCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		list, err := svc.ListTasks(context.Background())
		return tasksLoadedMsg{list: list, err: err}
	}
}

func (m BoardModel) addCmd(text string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return mutationDoneMsg{op: opAdd, err: svc.CreateTask(context.Background(), text)}
	}
}

func (m BoardModel) toggleCmd(id string, currentStatus bool) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return mutationDoneMsg{op: opToggle, err: svc.SetComplete(context.Background(), id, !currentStatus)}
	}
}

func (m BoardModel) deleteCmd(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return mutationDoneMsg{op: opDelete, err: svc.DeleteTask(context.Background(), id)}
	}
}

// visible returns the rows currently shown: last fetch, narrowed by
// the filter.
func (m BoardModel) visible() []service.Task {
	return tasks.Apply(m.list, m.filter)
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.busy = false
		m.loading = false
		if msg.err != nil {
			// Keep the previous list; the view may be stale but it is
			// still the last server truth we saw.
			m.notice = "could not load tasks"
			m.noticeOK = false
			return m, nil
		}
		m.list = msg.list
		if n := len(m.visible()); n == 0 {
			m.cursor = 0
		} else if m.cursor >= n {
			m.cursor = n - 1
		}
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.busy = false
			m.notice = mutationErrorText(msg.op)
			m.noticeOK = false
			return m, nil
		}
		if msg.op == opAdd {
			// Cleared only now that the server confirmed the add.
			m.input.SetValue("")
		}
		m.loading = true
		return m, m.loadCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	// A pending delete confirmation swallows all keys.
	if m.confirmID != "" {
		id := m.confirmID
		m.confirmID = ""
		if msg.String() == "y" {
			m.busy = true
			return m, m.deleteCmd(id)
		}
		return m, nil
	}

	if m.focusInput {
		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.notice = "task text required"
				m.noticeOK = false
				return m, nil
			}
			m.busy = true
			m.notice = ""
			return m, m.addCmd(text)
		case "esc", "tab":
			m.focusInput = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a", "i", "tab":
		m.focusInput = true
		return m, m.input.Focus()
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "f":
		m.filter = m.filter.Next()
		m.cursor = 0
		return m, nil
	case " ", "enter":
		if m.busy {
			return m, nil
		}
		rows := m.visible()
		if m.cursor >= len(rows) {
			return m, nil
		}
		t := rows[m.cursor]
		m.busy = true
		m.notice = ""
		return m, m.toggleCmd(t.ID, t.IsComplete)
	case "d":
		if m.busy {
			return m, nil
		}
		rows := m.visible()
		if m.cursor >= len(rows) {
			return m, nil
		}
		t := rows[m.cursor]
		// Author gate: a foreign task never reaches the network.
		if t.Author != nil {
			if user, ok := m.store.Current(); !ok || user.ID != t.Author.ID {
				m.notice = "you can only delete your own tasks"
				m.noticeOK = false
				return m, nil
			}
		}
		m.confirmID = t.ID
		return m, nil
	case "r":
		if m.busy {
			return m, nil
		}
		m.loading = true
		return m, m.loadCmd()
	case "ctrl+l":
		if err := m.store.Clear(); err != nil {
			m.notice = "could not clear session"
			m.noticeOK = false
			return m, nil
		}
		return m, navigate(viewLogin)
	}
	return m, nil
}

func mutationErrorText(op boardOp) string {
	switch op {
	case opAdd:
		return "could not add task"
	case opToggle:
		return "could not update task"
	default:
		return "could not delete task"
	}
}

// View renders the board.
func (m BoardModel) View() string {
	t := m.theme
	counts := tasks.Count(m.list)

	name := ""
	if user, ok := m.store.Current(); ok {
		name = user.Name
	}

	header := t.Title.Render("todos") + t.Faint.Render(" · "+name)

	tabs := m.renderTabs(counts)

	var rows []string
	visible := m.visible()
	if len(visible) == 0 {
		rows = append(rows, t.Faint.Render("  nothing here"))
	}
	for i, task := range visible {
		mark := "[ ]"
		text := task.Text
		if task.IsComplete {
			mark = "[x]"
			text = t.Done.Render(text)
		}
		line := fmt.Sprintf("  %s %s", mark, text)
		if !task.CreatedAt.IsZero() {
			line += t.Faint.Render("  " + task.CreatedAt.Format("2006-01-02 15:04"))
		}
		if i == m.cursor && !m.focusInput {
			line = t.Selected.Render(line)
		}
		rows = append(rows, line)
	}

	statsLine := fmt.Sprintf("%d/%d done · %d remaining", counts.Completed, counts.Total, counts.Remaining)
	progressLine := m.bar.ViewAs(counts.Progress() / 100)

	status := ""
	switch {
	case m.confirmID != "":
		status = t.Error.Render(`delete this task? y/n`)
	case m.busy || m.loading:
		status = t.Faint.Render("syncing...")
	case m.notice != "":
		if m.noticeOK {
			status = t.Notice.Render(m.notice)
		} else {
			status = t.Error.Render(m.notice)
		}
	}

	help := "enter add · tab list/input · space toggle · d delete · f filter · r refresh · ctrl+l logout · q quit"

	sections := []string{
		header,
		"",
		"> " + m.input.View(),
		"",
		tabs,
		"",
	}
	sections = append(sections, rows...)
	sections = append(sections,
		"",
		progressLine,
		t.Label.Render(statsLine),
		"",
		status,
		t.Help.Render(help),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m BoardModel) renderTabs(counts tasks.Counts) string {
	t := m.theme
	render := func(f tasks.Filter, label string, n int) string {
		s := fmt.Sprintf("%s (%d)", label, n)
		if m.filter == f {
			return t.TabOn.Render(s)
		}
		return t.TabOff.Render(s)
	}
	return strings.Join([]string{
		render(tasks.FilterAll, "all", counts.Total),
		render(tasks.FilterActive, "active", counts.Remaining),
		render(tasks.FilterCompleted, "completed", counts.Completed),
	}, "  ")
}
