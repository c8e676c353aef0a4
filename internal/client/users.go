// ABOUTME: Admin user management endpoints
// ABOUTME: The backend refuses to modify the caller's own account through these calls

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

const userManagePath = "/users/user-manage/"

// UserQuery filters and pages the admin user listing
type UserQuery struct {
	Search   string
	Page     int
	PageSize int
}

func (q UserQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// ListUsers returns one page of accounts. Backends that return a bare
// array are reported as a single page holding every user.
func (c *Client) ListUsers(ctx context.Context, q UserQuery) (*models.UserPage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, userManagePath, q.values(), &raw); err != nil {
		return nil, err
	}

	var list []models.User
	if err := json.Unmarshal(raw, &list); err == nil {
		return &models.UserPage{Results: list, Count: len(list)}, nil
	}

	var page models.UserPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &page, nil
}

// CreateUser adds an account
func (c *Client) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := in.ValidateCreate(); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.post(ctx, userManagePath, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser changes another account; in.UserID selects it
func (c *Client) UpdateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := in.ValidateUpdate(); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.put(ctx, userManagePath, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes another account
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	if userID <= 0 {
		return &ValidationError{Field: "user_id", Message: "is required"}
	}
	return c.delete(ctx, userManagePath, models.UserInput{UserID: userID})
}
