package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"zenban/internal/cli/formatter"
	"zenban/internal/domain"
)

// boardsLoadedMsg signals that the board list has been loaded.
type boardsLoadedMsg struct {
	boards []domain.Board
	err    error
}

// boardPickerView is the home screen of the TUI: the user's boards,
// one of which can be opened as the active board.
type boardPickerView struct {
	state   *SharedState
	boards  []domain.Board
	cursor  int
	loading bool
	err     error
}

func newBoardPickerView(state *SharedState) *boardPickerView {
	return &boardPickerView{state: state, loading: true}
}

func (v *boardPickerView) ID() ViewID    { return ViewBoardPicker }
func (v *boardPickerView) Title() string { return "Boards" }

func (v *boardPickerView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *boardPickerView) Init() tea.Cmd {
	return v.loadBoards()
}

func (v *boardPickerView) loadBoards() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		boards, err := app.Boards.ListBoards(context.Background())
		if err == nil && app.Cache != nil {
			// Cache failures never block the listing.
			_ = app.Cache.Put(boards)
		}
		return boardsLoadedMsg{boards: boards, err: err}
	}
}

func (v *boardPickerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, sessionExpiredCmd(msg.err, "Could not load boards.")
		}
		v.err = nil
		v.boards = msg.boards
		if v.cursor >= len(v.boards) {
			v.cursor = maxInt(len(v.boards)-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadBoards()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardPickerView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.boards)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.boards) {
			b := v.boards[v.cursor]
			v.state.SetActiveBoard(&b)
			return v, pushView(newBoardView(v.state))
		}
	case "c":
		return v, pushView(newNameFormView(v.state, "New Board", "Board name", func(ctx context.Context, name string) error {
			_, err := v.state.App.Boards.CreateBoard(ctx, name)
			return err
		}))
	case "x":
		if v.cursor < len(v.boards) {
			b := v.boards[v.cursor]
			return v, v.deleteBoard(b.ID)
		}
	case "r":
		v.loading = true
		return v, v.loadBoards()
	}
	return v, nil
}

func (v *boardPickerView) deleteBoard(id int) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if err := app.Boards.DeleteBoard(context.Background(), id); err != nil {
			return noticeMsg{text: deleteBoardFailure(err), isErr: true}
		}
		return refreshViewMsg{}
	}
}

func (v *boardPickerView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading boards…")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Could not load boards.") +
			"\n  " + formatter.Dim(v.err.Error())
	}
	if len(v.boards) == 0 {
		return "\n  " + formatter.Dim("No boards yet. Press c to create one.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, board := range v.boards {
		cursor := "  "
		name := board.Name
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
			name = formatter.Bold(name)
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, name,
			formatter.Dim(fmt.Sprintf("(%s)", board.Owner))))
	}
	return b.String()
}
