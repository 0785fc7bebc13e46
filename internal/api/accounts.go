package api

import (
	"context"
	"net/http"
)

// LoginResult is the token pair returned by the login endpoint.
type LoginResult struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair. It does not persist the
// session; that is the caller's decision.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/accounts/login/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterRequest is the payload for account creation. Password2 must
// match Password; the server enforces it.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/accounts/register/", req, nil)
}
