package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"zenban/internal/auth"
	"zenban/internal/domain"
)

// loginCompletedMsg signals a login attempt settled.
type loginCompletedMsg struct {
	username string
	err      error
}

// loginView collects credentials and establishes a session. It is pushed
// when the stored session is rejected mid-flight, so on success it
// refreshes whatever views are underneath instead of navigating.
type loginView struct {
	state    *SharedState
	form     *huh.Form
	username string
	password string
	busy     bool
	done     bool
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state}
	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Validate(requireNonEmpty).
				Value(&v.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(requireNonEmpty).
				Value(&v.password),
		),
	)
	return v
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Sign in" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
	}
}

func (v *loginView) Init() tea.Cmd { return v.form.Init() }

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(loginCompletedMsg); ok {
		v.busy = false
		if msg.err != nil {
			// Start over with a blank form; the old one is spent.
			nv := newLoginView(v.state)
			return nv, tea.Batch(nv.form.Init(), notify(api403Notice(msg.err, "Login failed."), true))
		}
		v.done = true
		return v, tea.Batch(
			replaceView(newBoardPickerView(v.state)),
			notify("Signed in as "+msg.username+".", false),
		)
	}

	if v.busy || v.done {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		v.busy = true
		return v, tea.Batch(cmd, v.login(v.username, v.password))
	}
	return v, cmd
}

func (v *loginView) login(username, password string) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		res, err := app.Accounts.Login(context.Background(), username, password)
		if err != nil {
			return loginCompletedMsg{username: username, err: err}
		}
		sess := &auth.Session{
			Access:  res.Access,
			Refresh: res.Refresh,
			Profile: domain.User{Username: username},
		}
		if err := app.Session.Save(sess); err != nil {
			return loginCompletedMsg{username: username, err: err}
		}
		return loginCompletedMsg{username: username}
	}
}

func (v *loginView) View() string {
	if v.busy {
		return "\n  Signing in…\n"
	}
	return "\n" + v.form.View()
}
