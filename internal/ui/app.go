package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"todoctl/internal/service"
	"todoctl/internal/session"
)

// view identifies which screen is visible.
type view int

const (
	viewLogin view = iota
	viewRegister
	viewBoard
)

// navigateMsg asks the root model to switch screens. The guard in
// route runs on every navigation before the requested view becomes
// visible.
type navigateMsg struct {
	to view
}

// navigate returns a command delivering a navigateMsg.
func navigate(to view) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// App is the root bubbletea model. It owns screen routing; all session
// reads go through the store, which only the auth flows and logout
// write.
type App struct {
	svc   service.Service
	store *session.Store
	theme Theme

	width  int
	height int

	current  view
	login    LoginModel
	register RegisterModel
	board    BoardModel
}

// NewApp creates the root model. The caller is expected to have
// attempted a session load already; a restored session lands directly
// on the board.
func NewApp(svc service.Service, store *session.Store) App {
	theme := DefaultTheme
	app := App{
		svc:      svc,
		store:    store,
		theme:    theme,
		login:    newLoginModel(svc, store, theme),
		register: newRegisterModel(svc, theme),
		board:    newBoardModel(svc, store, theme),
	}
	app.current = app.route(viewBoard)
	return app
}

// route applies the guard: unauthenticated navigation lands on the
// auth screens, and a logged-in user is kept off them.
func (a App) route(requested view) view {
	if _, ok := a.store.Current(); ok {
		if requested == viewLogin || requested == viewRegister {
			return viewBoard
		}
		return requested
	}
	if requested == viewRegister {
		return viewRegister
	}
	return viewLogin
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.current == viewBoard {
		return a.board.loadCmd()
	}
	return a.login.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.login = a.login.setSize(msg.Width, msg.Height)
		a.register = a.register.setSize(msg.Width, msg.Height)
		a.board = a.board.setSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case navigateMsg:
		a.current = a.route(msg.to)
		switch a.current {
		case viewBoard:
			// Fresh board state on entry: filter back to all, list
			// refetched from the server.
			a.board = newBoardModel(a.svc, a.store, a.theme).setSize(a.width, a.height)
			return a, a.board.loadCmd()
		case viewLogin:
			a.login = newLoginModel(a.svc, a.store, a.theme).setSize(a.width, a.height)
			return a, a.login.Init()
		case viewRegister:
			a.register = newRegisterModel(a.svc, a.theme).setSize(a.width, a.height)
			return a, a.register.Init()
		}
		return a, nil
	}

	// Everything else goes to the active screen.
	switch a.current {
	case viewLogin:
		m, cmd := a.login.Update(msg)
		a.login = m
		return a, cmd
	case viewRegister:
		m, cmd := a.register.Update(msg)
		a.register = m
		return a, cmd
	default:
		m, cmd := a.board.Update(msg)
		a.board = m
		return a, cmd
	}
}

// View implements tea.Model.
func (a App) View() string {
	switch a.current {
	case viewLogin:
		return a.login.View()
	case viewRegister:
		return a.register.View()
	default:
		return a.board.View()
	}
}
