// ABOUTME: Admin user management hook with server-side paging
// ABOUTME: Refuses to delete or demote the signed-in administrator

package hooks

import (
	"context"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

// DefaultPageSize is the admin listing page size
const DefaultPageSize = 10

// ErrSelfAction protects the signed-in admin from locking themselves out
var ErrSelfAction = &models.ValidationError{Field: "user_id", Message: "you cannot delete or demote your own account"}

type UserAPI interface {
	ListUsers(ctx context.Context, q client.UserQuery) (*models.UserPage, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, userID int) error
}

type Users struct {
	*Resource[models.User]
	api    UserAPI
	selfID int

	query client.UserQuery
	total int
}

// NewUsers creates the listing for the admin with selfID. Pages are not
// cached since the total comes with each response.
func NewUsers(api UserAPI, selfID int) *Users {
	h := &Users{api: api, selfID: selfID, query: client.UserQuery{Page: 1, PageSize: DefaultPageSize}}
	h.Resource = newCommitResource("users", nil, h.fetchPage)
	return h
}

// fetchPage defers the total to the commit so a dropped page cannot
// overwrite the count of a newer query
func (h *Users) fetchPage(ctx context.Context) ([]models.User, func(), error) {
	h.mu.Lock()
	q := h.query
	h.mu.Unlock()

	page, err := h.api.ListUsers(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	return page.Results, func() { h.total = page.Count }, nil
}

func (h *Users) Page() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.query.Page
}

func (h *Users) PageSize() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.query.PageSize
}

// Total is the server's count of matching users
func (h *Users) Total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

// Pages is the number of pages, at least 1
func (h *Users) Pages() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.total <= 0 || h.query.PageSize <= 0 {
		return 1
	}
	return (h.total + h.query.PageSize - 1) / h.query.PageSize
}

// GoTo loads page n, clamped to the known range
func (h *Users) GoTo(ctx context.Context, n int) error {
	pages := h.Pages()
	if n > pages {
		n = pages
	}
	if n < 1 {
		n = 1
	}
	h.mu.Lock()
	h.query.Page = n
	h.mu.Unlock()
	return h.Load(ctx)
}

func (h *Users) Next(ctx context.Context) error { return h.GoTo(ctx, h.Page()+1) }
func (h *Users) Prev(ctx context.Context) error { return h.GoTo(ctx, h.Page()-1) }

// Query asks the server to filter by term and starts again at page 1
func (h *Users) Query(ctx context.Context, term string) error {
	h.mu.Lock()
	h.query.Search = strings.TrimSpace(term)
	h.query.Page = 1
	h.mu.Unlock()
	return h.Load(ctx)
}

// Search filters the loaded page by username, full name or email
func (h *Users) Search(term string) []models.User {
	term = strings.ToLower(strings.TrimSpace(term))
	return h.filter(func(u models.User) bool {
		return strings.Contains(strings.ToLower(u.Username), term) ||
			strings.Contains(strings.ToLower(u.FullName), term) ||
			strings.Contains(strings.ToLower(u.Email), term)
	})
}

func (h *Users) Create(ctx context.Context, in models.UserInput) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateUser(ctx, in)
		return err
	})
}

func (h *Users) Update(ctx context.Context, in models.UserInput) error {
	if in.UserID == h.selfID && in.IsAdmin != nil && !*in.IsAdmin {
		h.fail(ErrSelfAction)
		return ErrSelfAction
	}
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.UpdateUser(ctx, in)
		return err
	})
}

func (h *Users) Delete(ctx context.Context, id int) error {
	if id == h.selfID {
		h.fail(ErrSelfAction)
		return ErrSelfAction
	}
	return h.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteUser(ctx, id)
	})
}

// SetAdmin grants or revokes admin rights for another account
func (h *Users) SetAdmin(ctx context.Context, id int, admin bool) error {
	return h.Update(ctx, models.UserInput{UserID: id, IsAdmin: &admin})
}
