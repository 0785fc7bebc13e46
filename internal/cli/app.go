package cli

import (
	"context"
	"time"

	"zenban/internal/api"
	"zenban/internal/auth"
	"zenban/internal/cache"
	"zenban/internal/domain"
)

// AccountService covers login and registration.
type AccountService interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	Register(ctx context.Context, req api.RegisterRequest) error
}

// BoardService covers board CRUD.
type BoardService interface {
	ListBoards(ctx context.Context) ([]domain.Board, error)
	CreateBoard(ctx context.Context, name string) (*domain.Board, error)
	GetBoard(ctx context.Context, id int) (*domain.Board, error)
	UpdateBoard(ctx context.Context, id int, name string) (*domain.Board, error)
	DeleteBoard(ctx context.Context, id int) error
}

// ColumnService covers column CRUD within a board.
type ColumnService interface {
	ListColumns(ctx context.Context, boardID int) ([]domain.Column, error)
	CreateColumn(ctx context.Context, boardID int, name string) (*domain.Column, error)
	UpdateColumn(ctx context.Context, id int, name string) (*domain.Column, error)
	DeleteColumn(ctx context.Context, id int) error
}

// TaskService covers task CRUD plus the reorder/move confirmations.
type TaskService interface {
	ListTasks(ctx context.Context, columnID int) ([]domain.Task, error)
	CreateTask(ctx context.Context, columnID int, title, description string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int, patch api.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int) error
	ReorderTasks(ctx context.Context, columnID int, ids []int) error
	MoveTask(ctx context.Context, taskID, columnID int, beforeID, afterID *int) error
}

// TagService covers board tags and task-tag assignments.
type TagService interface {
	ListBoardTags(ctx context.Context, boardID int) ([]domain.Tag, error)
	CreateBoardTag(ctx context.Context, boardID int, name, color string) (*domain.Tag, error)
	ListTaskTags(ctx context.Context, taskID int) ([]domain.TagRef, error)
	AddTaskTag(ctx context.Context, taskID, tagID int) error
	RemoveTaskTag(ctx context.Context, taskID, tagID int) error
}

// MemberService covers board membership.
type MemberService interface {
	ListMembers(ctx context.Context, boardID int) ([]domain.Member, error)
	InviteMember(ctx context.Context, boardID int, username string, role domain.Role) (*domain.Member, error)
	UpdateMemberRole(ctx context.Context, boardID, memberID int, role domain.Role) (*domain.Member, error)
	RemoveMember(ctx context.Context, boardID, memberID int) error
}

// AssigneeService covers task assignees.
type AssigneeService interface {
	ListAssignees(ctx context.Context, taskID int) ([]domain.User, error)
	AddAssignee(ctx context.Context, taskID int, username string) error
	RemoveAssignee(ctx context.Context, taskID, userID int) error
}

// App holds references to all service interfaces used by CLI commands
// and TUI views.
type App struct {
	Accounts  AccountService
	Boards    BoardService
	Columns   ColumnService
	Tasks     TaskService
	Tags      TagService
	Members   MemberService
	Assignees AssigneeService

	Session auth.Store
	Cache   *cache.BoardCache

	// IsInteractive reports whether stdin is a terminal; the TUI only
	// starts when it is.
	IsInteractive func() bool
}

// SharedState holds context shared across all TUI views via pointer.
type SharedState struct {
	App *App

	// Active board context
	ActiveBoardID   int
	ActiveBoardName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveBoard records the board the TUI is working in.
func (s *SharedState) SetActiveBoard(b *domain.Board) {
	s.ActiveBoardID = b.ID
	s.ActiveBoardName = b.Name
}

// ClearActiveBoard resets the active board context.
func (s *SharedState) ClearActiveBoard() {
	s.ActiveBoardID = 0
	s.ActiveBoardName = ""
}

// ContentHeight returns the available height for view content,
// accounting for the header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}

// noticeTTL is how long transient notices stay on screen.
const noticeTTL = 4 * time.Second
