package api

import (
	"context"
	"fmt"
	"net/http"

	"zenban/internal/domain"
)

// ListAssignees returns the users assigned to a task.
func (c *Client) ListAssignees(ctx context.Context, taskID int) ([]domain.User, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d/assignees/", taskID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.User](body), nil
}

// AddAssignee assigns a board member to a task by username.
func (c *Client) AddAssignee(ctx context.Context, taskID int, username string) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/tasks/%d/assignees/", taskID), map[string]string{"username": username}, nil)
}

// RemoveAssignee unassigns a user from a task.
func (c *Client) RemoveAssignee(ctx context.Context, taskID, userID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d/assignees/%d/", taskID, userID), nil, nil)
}
