package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todoctl/internal/auth"
	"todoctl/internal/service"
	"todoctl/internal/session"
)

// loginResultMsg is delivered when the login call completes.
type loginResultMsg struct {
	err     error
	message string // user-facing text when err is non-nil
}

// LoginModel is the login screen: two fields and a submit driven by
// the login flow. The submitting flag doubles as the double-submit
// guard; input is ignored while a call is in flight.
type LoginModel struct {
	svc   service.Service
	store *session.Store
	theme Theme

	inputs [2]textinput.Model // email, password
	focus  int

	submitting bool
	errText    string

	width  int
	height int
}

func newLoginModel(svc service.Service, store *session.Store, theme Theme) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 36

	return LoginModel{
		svc:    svc,
		store:  store,
		theme:  theme,
		inputs: [2]textinput.Model{email, password},
	}
}

func (m LoginModel) setSize(width, height int) LoginModel {
	m.width, m.height = width, height
	return m
}

// Init implements the screen contract.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// submitCmd runs the login flow off the message loop. The flow is
// local to the command, so nothing shares it with the model.
func (m LoginModel) submitCmd() tea.Cmd {
	svc, store := m.svc, m.store
	email := m.inputs[0].Value()
	password := m.inputs[1].Value()

	return func() tea.Msg {
		flow := auth.NewLoginFlow(svc, store)
		flow.SetEmail(email)
		flow.SetPassword(password)
		if err := flow.Submit(context.Background()); err != nil {
			return loginResultMsg{err: err, message: flow.ErrorMessage()}
		}
		return loginResultMsg{}
	}
}

// Update handles messages for the login screen.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = msg.message
			return m, nil
		}
		return m, navigate(viewBoard)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			if m.focus < len(m.inputs)-1 {
				return m.setFocus(m.focus + 1), nil
			}
			m.submitting = true
			m.errText = ""
			return m, m.submitCmd()
		case "tab", "down":
			return m.setFocus((m.focus + 1) % len(m.inputs)), nil
		case "shift+tab", "up":
			return m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs)), nil
		case "ctrl+r":
			return m, navigate(viewRegister)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m LoginModel) setFocus(focus int) LoginModel {
	m.inputs[m.focus].Blur()
	m.focus = focus
	m.inputs[m.focus].Focus()
	return m
}

// View renders the login screen.
func (m LoginModel) View() string {
	t := m.theme

	status := ""
	switch {
	case m.submitting:
		status = t.Faint.Render("logging in...")
	case m.errText != "":
		status = t.Error.Render(m.errText)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render("todoctl · log in"),
		"",
		t.Label.Render("email"),
		m.inputs[0].View(),
		"",
		t.Label.Render("password"),
		m.inputs[1].View(),
		"",
		status,
		"",
		t.Help.Render("enter submit · tab next field · ctrl+r register · ctrl+c quit"),
	)
	return body + "\n"
}
