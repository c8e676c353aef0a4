// ABOUTME: Authentication and profile endpoints
// ABOUTME: Login, register, logout, current user and self-service profile update

package client

import (
	"context"
	"net/http"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

// Login exchanges credentials for tokens and the user record
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.LoginResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/users/login/", body: req, anonymous: true}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. The caller logs in separately.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var user models.User
	err := c.do(ctx, request{method: http.MethodPost, path: "/users/register/", body: req, anonymous: true}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout blacklists the refresh token on the server
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/users/logout/",
		body:      models.RefreshRequest{Refresh: refreshToken},
		anonymous: true,
	}, nil)
}

// CurrentUser fetches the authenticated user, including admin status
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/user-info/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the current user's own profile
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.patch(ctx, "/users/user-update/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
