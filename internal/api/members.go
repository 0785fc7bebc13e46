package api

import (
	"context"
	"fmt"
	"net/http"

	"zenban/internal/domain"
)

// ListMembers returns a board's membership list.
func (c *Client) ListMembers(ctx context.Context, boardID int) ([]domain.Member, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d/members/", boardID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Member](body), nil
}

// InviteMember adds a user to a board by username.
func (c *Client) InviteMember(ctx context.Context, boardID int, username string, role domain.Role) (*domain.Member, error) {
	payload := map[string]string{"username": username, "role": string(role)}
	var out domain.Member
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/boards/%d/members/", boardID), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMemberRole changes a member's role.
func (c *Client) UpdateMemberRole(ctx context.Context, boardID, memberID int, role domain.Role) (*domain.Member, error) {
	payload := map[string]string{"role": string(role)}
	var out domain.Member
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/boards/%d/members/%d/", boardID, memberID), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember removes a member from a board.
func (c *Client) RemoveMember(ctx context.Context, boardID, memberID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/boards/%d/members/%d/", boardID, memberID), nil, nil)
}
