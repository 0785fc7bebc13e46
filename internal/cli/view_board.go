package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zenban/internal/board"
	"zenban/internal/cli/formatter"
	"zenban/internal/domain"
)

// boardLoadedMsg signals that the full board detail has been loaded.
type boardLoadedMsg struct {
	board    *domain.Board
	columns  []domain.Column
	tasks    map[int][]domain.Task
	members  []domain.Member
	err      error
}

// dropConfirmedMsg signals that a gesture's confirmation calls finished.
// Failures were already reported through the engine's error sink.
type dropConfirmedMsg struct{}

// boardView renders one board's columns side by side and turns keyboard
// grab/place gestures into engine drags.
type boardView struct {
	state   *SharedState
	bstate  *board.State
	engine  *board.Engine
	members []domain.Member

	colCursor  int
	taskCursor int
	grabbed    bool

	loading bool
	err     error
}

func newBoardView(state *SharedState) *boardView {
	return &boardView{state: state, loading: true}
}

func (v *boardView) ID() ViewID    { return ViewBoard }
func (v *boardView) Title() string { return v.state.ActiveBoardName }

func (v *boardView) ShortHelp() []key.Binding {
	if v.grabbed {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tags")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new column")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.loadBoard()
}

// grabbing reports whether a grab gesture is in progress; the app model
// routes esc here while it is.
func (v *boardView) grabbing() bool { return v.grabbed }

// loadBoard fetches the board, its columns, every column's tasks, and
// the membership list.
func (v *boardView) loadBoard() tea.Cmd {
	app := v.state.App
	boardID := v.state.ActiveBoardID
	return func() tea.Msg {
		ctx := context.Background()

		b, err := app.Boards.GetBoard(ctx, boardID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		columns, err := app.Columns.ListColumns(ctx, boardID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		tasks := make(map[int][]domain.Task, len(columns))
		for _, col := range columns {
			list, err := app.Tasks.ListTasks(ctx, col.ID)
			if err != nil {
				return boardLoadedMsg{err: err}
			}
			tasks[col.ID] = list
		}
		members, err := app.Members.ListMembers(ctx, boardID)
		if err != nil {
			// Membership is auxiliary; the board still renders.
			members = nil
		}
		return boardLoadedMsg{board: b, columns: columns, tasks: tasks, members: members}
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, sessionExpiredCmd(msg.err, "Could not load board.")
		}
		v.err = nil
		v.state.SetActiveBoard(msg.board)
		v.bstate = board.NewState(msg.columns, msg.tasks)
		v.engine = board.NewEngine(v.bstate, v.state.App.Tasks, nil)
		v.members = msg.members
		v.clampCursor()
		return v, nil

	case refreshViewMsg:
		v.loading = true
		v.grabbed = false
		return v, v.loadBoard()

	case dropConfirmedMsg:
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.bstate == nil {
		return v, nil
	}

	switch msg.String() {
	case "left", "h":
		if v.colCursor > 0 {
			v.colCursor--
			v.clampCursor()
		}
	case "right", "l":
		if v.colCursor < len(v.bstate.Columns())-1 {
			v.colCursor++
			v.clampCursor()
		}
	case "up", "k":
		if v.taskCursor > 0 {
			v.taskCursor--
		}
	case "down", "j":
		if v.taskCursor < v.dropSlots()-1 {
			v.taskCursor++
		}
	case "g":
		if !v.grabbed {
			if task, ok := v.selectedTask(); ok {
				v.engine.DragStart(task.ID)
				if _, dragging := v.engine.Dragging(); dragging {
					v.grabbed = true
				}
			}
		}
	case "enter":
		if v.grabbed {
			return v, v.drop()
		}
	case "esc":
		if v.grabbed {
			v.engine.Cancel()
			v.grabbed = false
		}
	case "a":
		col, ok := v.selectedColumn()
		if !ok {
			return v, nil
		}
		return v, pushView(newTaskFormView(v.state, col.ID))
	case "x":
		if task, ok := v.selectedTask(); ok {
			return v, v.deleteTask(task.ID)
		}
	case "n":
		boardID := v.state.ActiveBoardID
		return v, pushView(newNameFormView(v.state, "New Column", "Column name", func(ctx context.Context, name string) error {
			_, err := v.state.App.Columns.CreateColumn(ctx, boardID, name)
			return err
		}))
	case "R":
		if col, ok := v.selectedColumn(); ok {
			colID := col.ID
			return v, pushView(newNameFormView(v.state, "Rename Column", "Column name", func(ctx context.Context, name string) error {
				_, err := v.state.App.Columns.UpdateColumn(ctx, colID, name)
				return err
			}))
		}
	case "X":
		if col, ok := v.selectedColumn(); ok {
			return v, v.deleteColumn(col.ID)
		}
	case "t":
		if task, ok := v.selectedTask(); ok {
			return v, pushView(newTagsView(v.state, task))
		}
	case "A":
		if task, ok := v.selectedTask(); ok {
			taskID := task.ID
			return v, pushView(newNameFormView(v.state, "Assign Member", "Username", func(ctx context.Context, username string) error {
				return v.state.App.Assignees.AddAssignee(ctx, taskID, username)
			}))
		}
	case "r":
		v.loading = true
		return v, v.loadBoard()
	}
	return v, nil
}

// drop completes the grab gesture at the cursor position. The engine
// mutates the board state synchronously; the confirmation calls run as
// an asynchronous command.
func (v *boardView) drop() tea.Cmd {
	v.grabbed = false
	task, dragging := v.engine.Dragging()
	if !dragging {
		return nil
	}

	target, ok := v.dropTarget()
	if !ok {
		v.engine.Cancel()
		return nil
	}

	conf := v.engine.DragEnd(task.ID, target)
	v.clampCursor()
	if conf == nil {
		return nil
	}
	return func() tea.Msg {
		conf.Run(context.Background())
		return dropConfirmedMsg{}
	}
}

// dropTarget resolves the cursor position to a drop target: the task
// under the cursor, or the column itself when it has no task there.
func (v *boardView) dropTarget() (board.DropTarget, bool) {
	col, ok := v.selectedColumn()
	if !ok {
		return board.DropTarget{}, false
	}
	tasks := v.bstate.Tasks(col.ID)
	if v.taskCursor < len(tasks) {
		return board.DropTarget{TaskID: tasks[v.taskCursor].ID}, true
	}
	return board.DropTarget{ColumnID: col.ID}, true
}

func (v *boardView) deleteTask(taskID int) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if err := app.Tasks.DeleteTask(context.Background(), taskID); err != nil {
			return noticeMsg{text: api403Notice(err, "Could not delete task."), isErr: true}
		}
		return refreshViewMsg{}
	}
}

func (v *boardView) deleteColumn(colID int) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if err := app.Columns.DeleteColumn(context.Background(), colID); err != nil {
			return noticeMsg{text: api403Notice(err, "Could not delete column."), isErr: true}
		}
		return refreshViewMsg{}
	}
}

// ── cursor helpers ───────────────────────────────────────────────────────────

func (v *boardView) selectedColumn() (domain.Column, bool) {
	cols := v.bstate.Columns()
	if v.colCursor < 0 || v.colCursor >= len(cols) {
		return domain.Column{}, false
	}
	return cols[v.colCursor], true
}

func (v *boardView) selectedTask() (domain.Task, bool) {
	col, ok := v.selectedColumn()
	if !ok {
		return domain.Task{}, false
	}
	tasks := v.bstate.Tasks(col.ID)
	if v.taskCursor < 0 || v.taskCursor >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[v.taskCursor], true
}

// dropSlots is how far the task cursor may travel in the selected
// column: one past the last task while grabbing (the append slot).
func (v *boardView) dropSlots() int {
	col, ok := v.selectedColumn()
	if !ok {
		return 0
	}
	n := len(v.bstate.Tasks(col.ID))
	if v.grabbed {
		return n + 1
	}
	return maxInt(n, 1)
}

func (v *boardView) clampCursor() {
	if v.bstate == nil {
		return
	}
	if n := len(v.bstate.Columns()); v.colCursor >= n {
		v.colCursor = maxInt(n-1, 0)
	}
	if slots := v.dropSlots(); v.taskCursor >= slots {
		v.taskCursor = maxInt(slots-1, 0)
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *boardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading board…")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Could not load board.") +
			"\n  " + formatter.Dim(v.err.Error())
	}
	cols := v.bstate.Columns()
	if len(cols) == 0 {
		return "\n  " + formatter.Dim("No columns yet. Press n to create one.")
	}

	colWidth := v.columnWidth(len(cols))
	rendered := make([]string, 0, len(cols))
	for i, col := range cols {
		rendered = append(rendered, v.renderColumn(i, col, colWidth))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if line := v.renderMembers(); line != "" {
		out += "\n" + line
	}
	return out
}

func (v *boardView) renderMembers() string {
	if len(v.members) == 0 {
		return ""
	}
	parts := make([]string, 0, len(v.members))
	for _, m := range v.members {
		parts = append(parts, fmt.Sprintf("%s (%s)", m.User.Username, m.Role))
	}
	return "  " + formatter.Dim("Members: "+strings.Join(parts, ", "))
}

func (v *boardView) renderColumn(i int, col domain.Column, width int) string {
	accent := formatter.ColumnAccent(i)
	tasks := v.bstate.Tasks(col.ID)
	selected := i == v.colCursor

	headerStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	header := headerStyle.Render(fmt.Sprintf("%s (%d)", col.Name, len(tasks)))

	var lines []string
	lines = append(lines, header)
	grabbedTask, dragging := v.engine.Dragging()

	for j, t := range tasks {
		marker := "  "
		title := t.Title
		if dragging && v.grabbed && t.ID == grabbedTask.ID {
			marker = formatter.StyleYellow.Render("◆ ")
		} else if selected && j == v.taskCursor {
			marker = headerStyle.Render("▸ ")
			title = formatter.Bold(title)
		}
		if len(t.Assignees) > 0 {
			title += " " + formatter.Dim(fmt.Sprintf("@%s", t.Assignees[0].Username))
		}
		lines = append(lines, marker+title)
	}
	if v.grabbed && selected && v.taskCursor == len(tasks) {
		lines = append(lines, formatter.StyleYellow.Render("▸ ")+formatter.Dim("(end)"))
	}
	if len(tasks) == 0 && !v.grabbed {
		lines = append(lines, formatter.Dim("  (empty)"))
	}

	borderColor := formatter.ColorDim
	if selected {
		borderColor = accent
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

func (v *boardView) columnWidth(n int) int {
	if n == 0 {
		return 24
	}
	w := (v.state.Width / n) - 4
	if w < 16 {
		w = 16
	}
	if w > 32 {
		w = 32
	}
	return w
}
