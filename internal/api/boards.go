package api

import (
	"context"
	"fmt"
	"net/http"

	"zenban/internal/domain"
)

// ListBoards returns the boards visible to the current user.
func (c *Client) ListBoards(ctx context.Context) ([]domain.Board, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/boards/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Board](body), nil
}

// CreateBoard creates a board owned by the current user.
func (c *Client) CreateBoard(ctx context.Context, name string) (*domain.Board, error) {
	var out domain.Board
	if err := c.doJSON(ctx, http.MethodPost, "/api/boards/", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBoard fetches a single board.
func (c *Client) GetBoard(ctx context.Context, id int) (*domain.Board, error) {
	var out domain.Board
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBoard renames a board.
func (c *Client) UpdateBoard(ctx context.Context, id int, name string) (*domain.Board, error) {
	var out domain.Board
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/boards/%d/", id), map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBoard deletes a board and everything under it.
func (c *Client) DeleteBoard(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/boards/%d/", id), nil, nil)
}
