package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/plx-dev/plx/internal/models"
)

// LoginResult is the outcome of a successful login: the session token to
// persist plus the authenticated user.
type LoginResult struct {
	Token string
	User  models.User
}

// Login exchanges credentials for a session token.
//
// Credentials are expected to be validated locally before calling; the
// backend's message (when any) is surfaced through the returned error.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	body := loginRequest{Email: creds.Email, Password: creds.Password}

	var resp loginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}

	return &LoginResult{Token: resp.Token, User: resp.User.toModel()}, nil
}

// Register creates a new account. The backend returns no payload on success.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	body := registerRequest{Name: reg.Name, Email: reg.Email, Password: reg.Password}
	return c.doRequest(ctx, http.MethodPost, "/auth/register", body, nil, false)
}
