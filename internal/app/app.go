// Package app wires the whole terminal client together: the login gate,
// the sidebar menu, the entity screens and the global key bindings.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rivo/tview"
	"go.uber.org/zap"

	"backoffice/internal/api"
	"backoffice/internal/screen"
	"backoffice/internal/session"
	"backoffice/internal/ui"
)

const (
	pageLogin = "login"
	pageMain  = "main"

	menuOverview = "Overview"
	menuLogout   = "Logout"
)

// CreateApp builds the application. A valid stored session skips the login
// page; anything else (no session, expired session) lands on it.
func CreateApp(deps Deps) (*State, error) {
	ui.SetupTheme()

	state := &State{
		App:     tview.NewApplication(),
		Root:    tview.NewPages(),
		Content: tview.NewPages(),
		Screens: make(map[string]*screen.Screen),
		Client:  deps.Client,
		Store:   deps.Store,
		Logger:  deps.Logger,
		Timeout: deps.Timeout,
	}

	env := screen.Env{
		Client: state.Client,
		Logger: state.Logger,
		Post: func(fn func()) {
			state.App.QueueUpdateDraw(fn)
		},
		SetFocus: func(p tview.Primitive) {
			state.App.SetFocus(p)
		},
		Timeout: state.Timeout,
	}

	state.InfoPanel = screen.NewInfoPanel(env)
	state.Content.AddPage(menuOverview, state.InfoPanel.Root(), true, true)

	items := []string{menuOverview}
	for _, def := range screen.Definitions() {
		s := screen.New(def, env)
		state.Screens[def.Title] = s
		state.Content.AddPage(def.Title, s.Root(), true, false)
		items = append(items, def.Title)
	}
	items = append(items, menuLogout)

	state.Header = ui.CreateHeader()
	state.Footer = ui.CreateFooter()
	state.Menu = ui.CreateMenu(items, func(selection string) {
		state.selectSection(selection)
	})

	grid := ui.SetupGrid(state.Header, state.Footer, state.Menu, state.Content)

	loginForm := ui.BuildLoginForm(state.login, state.App.Stop)
	state.Root.AddPage(pageLogin, ui.CenterPrimitive(loginForm, 50, 11), true, false)
	state.Root.AddPage(pageMain, grid, true, false)

	state.App.SetRoot(state.Root, true)
	SetupKeyBindings(state)

	sess, err := state.Store.Current()
	if err != nil {
		return nil, err
	}
	if sess != nil {
		state.enterMain(sess)
	} else {
		state.showLogin()
	}

	return state, nil
}

// Run hands control to tview until quit.
func (state *State) Run() error {
	return state.App.Run()
}

func (state *State) showLogin() {
	loginForm := ui.BuildLoginForm(state.login, state.App.Stop)
	state.Root.RemovePage(pageLogin)
	state.Root.AddPage(pageLogin, ui.CenterPrimitive(loginForm, 50, 11), true, false)
	state.Root.SwitchToPage(pageLogin)
	state.App.SetFocus(loginForm.Form)
}

// login exchanges credentials for a token and persists the session. The
// stored login time anchors expiry checks across restarts.
func (state *State) login(email, password string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), state.Timeout)
		defer cancel()
		resp, err := state.Client.Login(ctx, email, password)
		var sess session.Session
		if err == nil {
			sess = session.Session{
				Token:     resp.Token,
				Email:     resp.UserEmail,
				Role:      resp.UserRole,
				TokenType: resp.TokenType,
				ExpiresIn: resp.ExpiresIn,
				LoginTime: time.Now(),
			}
			err = state.Store.Save(sess)
		}

		state.App.QueueUpdateDraw(func() {
			if err != nil {
				state.Logger.Warn("login failed",
					zap.String("email", email),
					zap.Error(err))
				state.showLoginError(api.AsAPIError(err).Message)
				return
			}
			state.Logger.Info("logged in", zap.String("email", email))
			state.enterMain(&sess)
		})
	}()
}

func (state *State) showLoginError(message string) {
	loginForm := ui.BuildLoginForm(state.login, state.App.Stop)
	loginForm.SetError(message)
	state.Root.RemovePage(pageLogin)
	state.Root.AddPage(pageLogin, ui.CenterPrimitive(loginForm, 50, 11), true, true)
	state.App.SetFocus(loginForm.Form)
}

func (state *State) enterMain(sess *session.Session) {
	state.Header.SetText(fmt.Sprintf("Back Office | %s (%s)", sess.Email, sess.Role))
	state.Root.SwitchToPage(pageMain)
	state.App.SetFocus(state.Menu)
	state.selectSection(menuOverview)
}

func (state *State) logout() {
	if err := state.Store.Clear(); err != nil {
		state.Logger.Warn("session clear failed", zap.Error(err))
	}
	state.Logger.Info("logged out")
	state.showLogin()
}

// selectSection switches the content pane. Entity screens reload on every
// visit; nothing is cached across section switches.
func (state *State) selectSection(section string) {
	switch section {
	case menuLogout:
		state.logout()
		return
	case menuOverview:
		state.Content.SwitchToPage(menuOverview)
		state.InfoPanel.Reload()
		return
	}
	s, ok := state.Screens[section]
	if !ok {
		return
	}
	state.Content.SwitchToPage(section)
	s.Reload()
	s.Focus()
}
