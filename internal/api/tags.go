package api

import (
	"context"
	"fmt"
	"net/http"

	"zenban/internal/domain"
)

// ListBoardTags returns the tags defined on a board.
func (c *Client) ListBoardTags(ctx context.Context, boardID int) ([]domain.Tag, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d/tags/", boardID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Tag](body), nil
}

// CreateBoardTag defines a new tag on a board.
func (c *Client) CreateBoardTag(ctx context.Context, boardID int, name, color string) (*domain.Tag, error) {
	payload := map[string]string{"name": name, "color": color}
	var out domain.Tag
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/boards/%d/tags/", boardID), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTaskTags returns the tags attached to a task. Records come back in
// either the bare or the wrapped shape; TagRef normalizes both.
func (c *Client) ListTaskTags(ctx context.Context, taskID int) ([]domain.TagRef, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d/tags/", taskID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TagRef](body), nil
}

// AddTaskTag attaches an existing board tag to a task.
func (c *Client) AddTaskTag(ctx context.Context, taskID, tagID int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/tasks/%d/tags/", taskID), map[string]int{"tag_id": tagID}, nil)
}

// RemoveTaskTag detaches a tag from a task.
func (c *Client) RemoveTaskTag(ctx context.Context, taskID, tagID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d/tags/%d/", taskID, tagID), nil, nil)
}
