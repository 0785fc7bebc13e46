package api

import (
	"context"
	"fmt"
	"net/http"

	"zenban/internal/domain"
)

// ListColumns returns a board's columns in server order.
func (c *Client) ListColumns(ctx context.Context, boardID int) ([]domain.Column, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d/columns/", boardID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Column](body), nil
}

// CreateColumn appends a column to a board. The server assigns order.
func (c *Client) CreateColumn(ctx context.Context, boardID int, name string) (*domain.Column, error) {
	var out domain.Column
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/boards/%d/columns/", boardID), map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateColumn renames a column.
func (c *Client) UpdateColumn(ctx context.Context, id int, name string) (*domain.Column, error) {
	var out domain.Column
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/columns/%d/", id), map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteColumn deletes a column and its tasks.
func (c *Client) DeleteColumn(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/columns/%d/", id), nil, nil)
}
