package cli

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenban/internal/api"
	"zenban/internal/auth"
	"zenban/internal/domain"
	"zenban/internal/teatest"
)

// fakeServices backs every service interface with canned data and
// recorded mutations.
type fakeServices struct {
	mu sync.Mutex

	boards  []domain.Board
	columns []domain.Column
	tasks   map[int][]domain.Task
	members []domain.Member

	listErr error

	reorders [][]int
	moves    []fakeMove
}

type fakeMove struct {
	taskID   int
	columnID int
	beforeID *int
	afterID  *int
}

func (f *fakeServices) Login(ctx context.Context, username, password string) (*api.LoginResult, error) {
	return &api.LoginResult{Access: "a", Refresh: "r"}, nil
}

func (f *fakeServices) Register(ctx context.Context, req api.RegisterRequest) error { return nil }

func (f *fakeServices) ListBoards(ctx context.Context) ([]domain.Board, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.boards, nil
}

func (f *fakeServices) CreateBoard(ctx context.Context, name string) (*domain.Board, error) {
	b := domain.Board{ID: len(f.boards) + 1, Name: name}
	f.boards = append(f.boards, b)
	return &b, nil
}

func (f *fakeServices) GetBoard(ctx context.Context, id int) (*domain.Board, error) {
	for _, b := range f.boards {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, &api.APIError{Status: 404, Detail: "Not found."}
}

func (f *fakeServices) UpdateBoard(ctx context.Context, id int, name string) (*domain.Board, error) {
	return &domain.Board{ID: id, Name: name}, nil
}

func (f *fakeServices) DeleteBoard(ctx context.Context, id int) error { return nil }

func (f *fakeServices) ListColumns(ctx context.Context, boardID int) ([]domain.Column, error) {
	return f.columns, nil
}

func (f *fakeServices) CreateColumn(ctx context.Context, boardID int, name string) (*domain.Column, error) {
	return &domain.Column{ID: len(f.columns) + 1, BoardID: boardID, Name: name}, nil
}

func (f *fakeServices) UpdateColumn(ctx context.Context, id int, name string) (*domain.Column, error) {
	return &domain.Column{ID: id, Name: name}, nil
}

func (f *fakeServices) DeleteColumn(ctx context.Context, id int) error { return nil }

func (f *fakeServices) ListTasks(ctx context.Context, columnID int) ([]domain.Task, error) {
	return f.tasks[columnID], nil
}

func (f *fakeServices) CreateTask(ctx context.Context, columnID int, title, description string) (*domain.Task, error) {
	return &domain.Task{ID: 999, ColumnID: columnID, Title: title, Description: description}, nil
}

func (f *fakeServices) UpdateTask(ctx context.Context, id int, patch api.TaskPatch) (*domain.Task, error) {
	return &domain.Task{ID: id}, nil
}

func (f *fakeServices) DeleteTask(ctx context.Context, id int) error { return nil }

func (f *fakeServices) ReorderTasks(ctx context.Context, columnID int, ids []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reorders = append(f.reorders, ids)
	return nil
}

func (f *fakeServices) MoveTask(ctx context.Context, taskID, columnID int, beforeID, afterID *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, fakeMove{taskID: taskID, columnID: columnID, beforeID: beforeID, afterID: afterID})
	return nil
}

func (f *fakeServices) ListBoardTags(ctx context.Context, boardID int) ([]domain.Tag, error) {
	return nil, nil
}

func (f *fakeServices) CreateBoardTag(ctx context.Context, boardID int, name, color string) (*domain.Tag, error) {
	return &domain.Tag{ID: 1, Name: name, Color: color}, nil
}

func (f *fakeServices) ListTaskTags(ctx context.Context, taskID int) ([]domain.TagRef, error) {
	return nil, nil
}

func (f *fakeServices) AddTaskTag(ctx context.Context, taskID, tagID int) error    { return nil }
func (f *fakeServices) RemoveTaskTag(ctx context.Context, taskID, tagID int) error { return nil }

func (f *fakeServices) ListMembers(ctx context.Context, boardID int) ([]domain.Member, error) {
	return f.members, nil
}

func (f *fakeServices) InviteMember(ctx context.Context, boardID int, username string, role domain.Role) (*domain.Member, error) {
	return &domain.Member{ID: 1, User: domain.User{Username: username}, Role: role}, nil
}

func (f *fakeServices) UpdateMemberRole(ctx context.Context, boardID, memberID int, role domain.Role) (*domain.Member, error) {
	return &domain.Member{ID: memberID, Role: role}, nil
}

func (f *fakeServices) RemoveMember(ctx context.Context, boardID, memberID int) error { return nil }

func (f *fakeServices) ListAssignees(ctx context.Context, taskID int) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeServices) AddAssignee(ctx context.Context, taskID int, username string) error {
	return nil
}

func (f *fakeServices) RemoveAssignee(ctx context.Context, taskID, userID int) error { return nil }

// memSession is an in-memory auth.Store for TUI tests.
type memSession struct{ sess *auth.Session }

func (m *memSession) Load() (*auth.Session, error) { return m.sess, nil }
func (m *memSession) Save(s *auth.Session) error   { m.sess = s; return nil }
func (m *memSession) Clear() error                 { m.sess = nil; return nil }

func newTestApp(fake *fakeServices) *App {
	return &App{
		Accounts:  fake,
		Boards:    fake,
		Columns:   fake,
		Tasks:     fake,
		Tags:      fake,
		Members:   fake,
		Assignees: fake,
		Session:   &memSession{},
	}
}

func kanbanFixture() *fakeServices {
	return &fakeServices{
		boards: []domain.Board{
			{ID: 1, Name: "Roadmap", Owner: "ada"},
			{ID: 2, Name: "Chores", Owner: "ada"},
		},
		columns: []domain.Column{
			{ID: 10, BoardID: 1, Name: "Todo", Order: 1},
			{ID: 20, BoardID: 1, Name: "Done", Order: 2},
		},
		tasks: map[int][]domain.Task{
			10: {
				{ID: 1, ColumnID: 10, Title: "Write docs", Order: 1},
				{ID: 2, ColumnID: 10, Title: "Fix login", Order: 2},
			},
			20: {
				{ID: 3, ColumnID: 20, Title: "Ship beta", Order: 1},
			},
		},
	}
}

func newDriver(t *testing.T, fake *fakeServices) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(newTestApp(fake), nil))
	d.Resize(120, 40)
	d.Init()
	return d
}

func TestTUI_BoardPickerListsBoards(t *testing.T) {
	d := newDriver(t, kanbanFixture())

	view := d.View()
	assert.Contains(t, view, "Roadmap")
	assert.Contains(t, view, "Chores")
	assert.Contains(t, view, "ada")
}

func TestTUI_OpenBoardShowsColumnsAndTasks(t *testing.T) {
	d := newDriver(t, kanbanFixture())

	d.Enter() // open "Roadmap"

	view := d.View()
	assert.Contains(t, view, "Todo")
	assert.Contains(t, view, "Done")
	assert.Contains(t, view, "Write docs")
	assert.Contains(t, view, "Ship beta")
	// Breadcrumb reflects the active board.
	assert.Contains(t, view, "Roadmap")
}

func TestTUI_EscReturnsToBoardPicker(t *testing.T) {
	d := newDriver(t, kanbanFixture())

	d.Enter()
	require.Contains(t, d.View(), "Todo")

	d.Esc()
	view := d.View()
	assert.Contains(t, view, "Chores")
	assert.NotContains(t, view, "Write docs")
}

func TestTUI_GrabAndDropAcrossColumns(t *testing.T) {
	fake := kanbanFixture()
	d := newDriver(t, fake)

	d.Enter()     // open board
	d.Press('g')  // grab "Write docs" (task 1)
	d.Press('l')  // move to the Done column
	d.Enter()     // drop on "Ship beta" (task 3)

	// Optimistic mutation is visible immediately.
	view := d.View()
	assert.Contains(t, view, "Write docs")

	// The confirmation ran: one move with the successor neighbor, then a
	// full reorder of the target column.
	require.Len(t, fake.moves, 1)
	move := fake.moves[0]
	assert.Equal(t, 1, move.taskID)
	assert.Equal(t, 20, move.columnID)
	require.NotNil(t, move.beforeID)
	assert.Equal(t, 3, *move.beforeID)
	assert.Nil(t, move.afterID)

	require.Len(t, fake.reorders, 1)
	assert.Equal(t, []int{1, 3}, fake.reorders[0])
}

func TestTUI_EscCancelsGrabBeforePopping(t *testing.T) {
	fake := kanbanFixture()
	d := newDriver(t, fake)

	d.Enter()
	d.Press('g')
	d.Esc() // cancels the grab, stays on the board

	view := d.View()
	assert.Contains(t, view, "Todo")

	d.Esc() // now pops back to the picker
	assert.Contains(t, d.View(), "Chores")
	assert.Empty(t, fake.moves)
	assert.Empty(t, fake.reorders)
}

func TestTUI_ReorderWithinColumn(t *testing.T) {
	fake := kanbanFixture()
	d := newDriver(t, fake)

	d.Enter()
	d.Press('g') // grab "Write docs"
	d.Press('j') // cursor onto "Fix login"
	d.Enter()    // drop

	require.Len(t, fake.reorders, 1)
	assert.Equal(t, []int{2, 1}, fake.reorders[0])
	assert.Empty(t, fake.moves)
}

func TestTUI_SessionExpiryRoutesToLogin(t *testing.T) {
	fake := kanbanFixture()
	fake.listErr = api.ErrSessionExpired
	d := newDriver(t, fake)

	view := d.View()
	assert.Contains(t, view, "Username")
	assert.Contains(t, view, "Session expired")
}
