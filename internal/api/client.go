package api

import (
	"context"
	"net/http"
	"strings"

	"recall/internal/gateway"
	"recall/internal/services"
	"recall/internal/session"
)

// Client wraps the gateway with typed endpoint operations.
type Client struct {
	gw *gateway.Client
}

// NewClient builds a typed API client on top of the gateway.
func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and persists the resulting session.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", username, password)
}

// Register creates an account and persists the resulting session.
func (c *Client) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/auth/register", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, services.Wrap(services.ErrValidation, "api", "authenticate", "username and password are required", nil)
	}

	var result AuthResult
	if err := c.gw.Do(ctx, http.MethodPost, path, credentials{Username: username, Password: password}, &result); err != nil {
		return nil, err
	}

	user := result.User
	next := session.Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         &user,
	}
	if err := c.gw.Sessions().SetSession(next); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the refresh artifact server-side and clears the local
// session. The local clear happens even when the server call fails: a
// half-logged-out client must never keep a usable credential around.
func (c *Client) Logout(ctx context.Context) error {
	callErr := c.gw.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err := c.gw.Sessions().Clear(); err != nil {
		return err
	}
	if callErr != nil && !services.IsAuthFailure(callErr) {
		return callErr
	}
	return nil
}

// Me fetches the current identity from the backend.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := c.gw.Do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
