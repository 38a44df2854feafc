package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todoctl/internal/auth"
	"todoctl/internal/service"
)

// registerRedirectDelay is how long the success notice stays on screen
// before the login screen replaces it.
const registerRedirectDelay = 1500 * time.Millisecond

// emailCheckTickMsg fires when the availability-check debounce window
// ends. Carries the edit sequence it was scheduled for; a tick whose
// sequence is stale (the email changed again) is dropped, which is
// what cancels the pending check.
type emailCheckTickMsg struct {
	seq int
}

// emailCheckedMsg is delivered when the availability call completes.
type emailCheckedMsg struct {
	seq       int
	available bool
	notice    string
}

// registerResultMsg is delivered when the join call completes.
type registerResultMsg struct {
	err     error
	message string
}

// registerRedirectMsg fires after the post-success display delay.
type registerRedirectMsg struct{}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// RegisterModel is the registration screen. The email-availability
// check runs independently of submission, debounced behind the last
// keystroke; submission is refused locally until every field and the
// availability flag check out.
type RegisterModel struct {
	svc   service.Service
	theme Theme

	inputs [fieldCount]textinput.Model
	focus  int

	// checkSeq increments on every email edit. Only the tick and the
	// check result stamped with the current value are honored.
	checkSeq       int
	checking       bool
	emailAvailable bool

	submitting bool
	done       bool // success notice showing, redirect pending

	notice   string
	noticeOK bool

	width  int
	height int
}

func newRegisterModel(svc service.Service, theme Theme) RegisterModel {
	mk := func(placeholder string, echo textinput.EchoMode) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.EchoMode = echo
		in.CharLimit = 120
		in.Width = 36
		return in
	}

	m := RegisterModel{
		svc:   svc,
		theme: theme,
		inputs: [fieldCount]textinput.Model{
			mk("name", textinput.EchoNormal),
			mk("you@example.com", textinput.EchoNormal),
			mk("password", textinput.EchoPassword),
			mk("confirm password", textinput.EchoPassword),
		},
	}
	m.inputs[fieldName].Focus()
	return m
}

func (m RegisterModel) setSize(width, height int) RegisterModel {
	m.width, m.height = width, height
	return m
}

// Init implements the screen contract.
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// checkCmd runs the availability call for the given email. The result
// carries the sequence so a response for an outdated address is
// ignored.
func (m RegisterModel) checkCmd(seq int, email string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		flow := auth.NewRegisterFlow(svc)
		flow.SetEmail(email)
		available, notice := flow.CheckEmail(context.Background())
		return emailCheckedMsg{seq: seq, available: available, notice: notice}
	}
}

// submitCmd runs the registration flow off the message loop.
func (m RegisterModel) submitCmd() tea.Cmd {
	svc := m.svc
	name := m.inputs[fieldName].Value()
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()
	confirm := m.inputs[fieldConfirm].Value()
	available := m.emailAvailable

	return func() tea.Msg {
		flow := auth.NewRegisterFlow(svc)
		flow.SetName(name)
		flow.SetEmail(email)
		flow.SetPassword(password)
		flow.SetConfirm(confirm)
		flow.SetEmailAvailable(available)
		if err := flow.Submit(context.Background()); err != nil {
			return registerResultMsg{err: err, message: flow.ErrorMessage()}
		}
		return registerResultMsg{}
	}
}

// Update handles messages for the registration screen.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case emailCheckTickMsg:
		if msg.seq != m.checkSeq {
			return m, nil // superseded by a later edit
		}
		m.checking = true
		return m, m.checkCmd(msg.seq, m.inputs[fieldEmail].Value())

	case emailCheckedMsg:
		if msg.seq != m.checkSeq {
			return m, nil
		}
		m.checking = false
		m.emailAvailable = msg.available
		m.notice = msg.notice
		m.noticeOK = msg.available
		return m, nil

	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.notice = msg.message
			m.noticeOK = false
			return m, nil
		}
		m.done = true
		m.notice = "registered; taking you to log in..."
		m.noticeOK = true
		return m, tea.Tick(registerRedirectDelay, func(time.Time) tea.Msg {
			return registerRedirectMsg{}
		})

	case registerRedirectMsg:
		return m, navigate(viewLogin)

	case tea.KeyMsg:
		if m.submitting || m.done {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			if m.focus < fieldCount-1 {
				return m.setFocus(m.focus + 1), nil
			}
			m.submitting = true
			m.notice = ""
			return m, m.submitCmd()
		case "tab", "down":
			return m.setFocus((m.focus + 1) % fieldCount), nil
		case "shift+tab", "up":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
		case "esc":
			return m, navigate(viewLogin)
		}
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	// Any edit to the email invalidates the availability flag and
	// restarts the debounce window.
	if m.focus == fieldEmail && m.inputs[fieldEmail].Value() != before {
		m.emailAvailable = false
		m.checking = false
		m.checkSeq++
		seq := m.checkSeq
		tick := tea.Tick(auth.CheckDebounce, func(time.Time) tea.Msg {
			return emailCheckTickMsg{seq: seq}
		})
		return m, tea.Batch(cmd, tick)
	}

	return m, cmd
}

func (m RegisterModel) setFocus(focus int) RegisterModel {
	m.inputs[m.focus].Blur()
	m.focus = focus
	m.inputs[m.focus].Focus()
	return m
}

// View renders the registration screen.
func (m RegisterModel) View() string {
	t := m.theme

	labels := [fieldCount]string{"name", "email", "password", "confirm password"}

	rows := []string{
		t.Title.Render("todoctl · create an account"),
		"",
	}
	for i := 0; i < fieldCount; i++ {
		label := labels[i]
		if i == fieldEmail {
			switch {
			case m.checking:
				label += t.Faint.Render("  checking...")
			case m.emailAvailable:
				label += t.Notice.Render("  available")
			}
		}
		rows = append(rows, t.Label.Render(label), m.inputs[i].View(), "")
	}

	status := ""
	switch {
	case m.submitting:
		status = t.Faint.Render("registering...")
	case m.notice != "":
		if m.noticeOK {
			status = t.Notice.Render(m.notice)
		} else {
			status = t.Error.Render(m.notice)
		}
	}
	rows = append(rows, status, "",
		t.Help.Render("enter next/submit · tab next field · esc back to login · ctrl+c quit"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}
