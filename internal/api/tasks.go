package api

import (
	"context"
	"fmt"
	"net/http"

	"zenban/internal/domain"
)

// ListTasks returns a column's tasks in server order.
func (c *Client) ListTasks(ctx context.Context, columnID int) ([]domain.Task, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/columns/%d/tasks/", columnID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Task](body), nil
}

// CreateTask appends a task to a column.
func (c *Client) CreateTask(ctx context.Context, columnID int, title, description string) (*domain.Task, error) {
	payload := map[string]string{"title": title, "description": description}
	var out domain.Task
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/columns/%d/tasks/", columnID), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id int, patch TaskPatch) (*domain.Task, error) {
	var out domain.Task
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d/", id), nil, nil)
}

// ReorderTasks persists the full ordering of a column as an id sequence.
// The server recomputes dense order values from it.
func (c *Client) ReorderTasks(ctx context.Context, columnID int, ids []int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/columns/%d/tasks/reorder/", columnID), map[string][]int{"ids": ids}, nil)
}

// MoveTask moves a task into a column, positioned between the given
// neighbors. A nil neighbor means the task sits at that boundary.
func (c *Client) MoveTask(ctx context.Context, taskID, columnID int, beforeID, afterID *int) error {
	payload := map[string]any{
		"column_id": columnID,
		"before_id": beforeID,
		"after_id":  afterID,
	}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/tasks/%d/move/", taskID), payload, nil)
}
