package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data,
// so underlying views pick up mutations made in views above them.
type refreshViewMsg struct{}

// noticeMsg shows a transient auto-dismissing message in the status area.
type noticeMsg struct {
	text  string
	isErr bool
}

// noticeExpiredMsg clears a notice after its TTL. Stale timers carry an
// old seq and are ignored.
type noticeExpiredMsg struct{ seq int }

// sessionExpiredMsg forces the TUI back to the login view after an
// irrecoverable refresh failure.
type sessionExpiredMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// notify returns a tea.Cmd that shows a transient notice.
func notify(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isErr: isErr} }
}
