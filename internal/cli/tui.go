package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"zenban/internal/domain"
)

// runTUI opens the interactive session at the board picker.
func runTUI(app *App) error {
	m := newAppModel(app, nil)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// runTUIAt opens the interactive session directly on one board.
func runTUIAt(app *App, b *domain.Board) error {
	m := newAppModel(app, func(state *SharedState) View {
		state.SetActiveBoard(b)
		return newBoardView(state)
	})
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
