package domain

// Board is a top-level container of columns.
type Board struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Owner     string `json:"owner"` // username of the owning user
	CreatedAt string `json:"created_at"`
}

// Column is an ordered sub-container of tasks within a board.
// The server assigns Order; clients never compute it.
type Column struct {
	ID      int    `json:"id"`
	BoardID int    `json:"board"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
}

// Task is a unit of work. It belongs to exactly one column at any time.
type Task struct {
	ID          int    `json:"id"`
	ColumnID    int    `json:"column"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	CreatedAt   string `json:"created_at"`
	Assignees   []User `json:"assignees,omitempty"`
}

// User is the lite user representation embedded in members and assignees.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Role is a board membership role.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Member is a user's membership on a board.
type Member struct {
	ID       int    `json:"id"`
	BoardID  int    `json:"board"`
	User     User   `json:"user"`
	Role     Role   `json:"role"`
	JoinedAt string `json:"joined_at"`
}
