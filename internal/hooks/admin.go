// ABOUTME: Admin back-office hooks for inventory categories and moderation
// ABOUTME: Both follow the write, invalidate, refetch cycle

package hooks

import (
	"context"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type Categories struct {
	*Resource[models.Category]
	api CategoryAPI
}

func NewCategories(api CategoryAPI, c *cache.Cache) *Categories {
	return &Categories{Resource: NewResource("categories", c, api.ListCategories), api: api}
}

// Create adds a category unless one with the same name is already loaded
func (h *Categories) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if _, dup := h.find(func(c models.Category) bool { return strings.EqualFold(c.Name, name) }); dup {
		err := &models.ValidationError{Field: "name", Message: "category already exists"}
		h.fail(err)
		return err
	}
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateCategory(ctx, models.CategoryInput{Name: name})
		return err
	})
}

func (h *Categories) Delete(ctx context.Context, id int) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteCategory(ctx, id)
	})
}

// Names returns the loaded category names
func (h *Categories) Names() []string {
	items := h.Items()
	names := make([]string, len(items))
	for i, c := range items {
		names[i] = c.Name
	}
	return names
}

type ModerationAPI interface {
	ListModeration(ctx context.Context, status models.ModerationStatus) ([]models.ModerationItem, error)
	ApproveContent(ctx context.Context, id int) (*models.ModerationItem, error)
	RejectContent(ctx context.Context, id int, in models.RejectInput) (*models.ModerationItem, error)
}

// Moderation is the admin review queue filtered by one status
type Moderation struct {
	*Resource[models.ModerationItem]
	api    ModerationAPI
	status models.ModerationStatus
}

func NewModeration(api ModerationAPI, c *cache.Cache, status models.ModerationStatus) *Moderation {
	h := &Moderation{api: api, status: status}
	h.Resource = NewResource("moderation", c, func(ctx context.Context) ([]models.ModerationItem, error) {
		return api.ListModeration(ctx, h.Status())
	})
	h.key = func() string { return "moderation:" + string(h.status) }
	return h
}

func (h *Moderation) Status() models.ModerationStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Filter switches the status shown and reloads
func (h *Moderation) Filter(ctx context.Context, status models.ModerationStatus) error {
	if _, err := models.ParseModerationStatus(string(status)); err != nil {
		h.fail(err)
		return err
	}
	h.mu.Lock()
	h.status = status
	h.mu.Unlock()
	return h.Load(ctx)
}

func (h *Moderation) Approve(ctx context.Context, id int) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.ApproveContent(ctx, id)
		return err
	})
}

func (h *Moderation) Reject(ctx context.Context, id int, reason string) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.RejectContent(ctx, id, models.RejectInput{Reason: reason})
		return err
	})
}
