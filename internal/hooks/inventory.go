// ABOUTME: Inventory hook over both fridge compartments
// ABOUTME: Near-expiry, expired and name search are computed locally

package hooks

import (
	"context"
	"strings"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

// InventoryAPI is the part of the client the inventory hook uses
type InventoryAPI interface {
	ListAllInventory(ctx context.Context) ([]models.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, in models.InventoryInput) (*models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id int, in models.InventoryInput) (*models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int) error
}

type Inventory struct {
	*Resource[models.InventoryItem]
	api InventoryAPI
	now Clock
}

func NewInventory(api InventoryAPI, c *cache.Cache, now Clock) *Inventory {
	if now == nil {
		now = time.Now
	}
	return &Inventory{
		Resource: NewResource("inventory", c, api.ListAllInventory),
		api:      api,
		now:      now,
	}
}

// Add creates an item. A blank category is filled from the item name.
func (h *Inventory) Add(ctx context.Context, in models.InventoryInput) error {
	if strings.TrimSpace(in.Category) == "" {
		in.Category = models.SuggestCategory(in.Name)
	}
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateInventoryItem(ctx, in)
		return err
	})
}

func (h *Inventory) Update(ctx context.Context, id int, in models.InventoryInput) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.UpdateInventoryItem(ctx, id, in)
		return err
	})
}

func (h *Inventory) Delete(ctx context.Context, id int) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteInventoryItem(ctx, id)
	})
}

// NearExpiry returns items expiring within days, today included.
// Already expired items and items with unreadable dates are excluded.
func (h *Inventory) NearExpiry(days int) []models.InventoryItem {
	now := h.now()
	return h.filter(func(item models.InventoryItem) bool {
		return item.IsNearExpiry(now, days)
	})
}

// Expired returns items whose expiry date is before today
func (h *Inventory) Expired() []models.InventoryItem {
	now := h.now()
	return h.filter(func(item models.InventoryItem) bool {
		return item.IsExpired(now)
	})
}

// Search matches term against item names, ignoring case
func (h *Inventory) Search(term string) []models.InventoryItem {
	term = strings.ToLower(strings.TrimSpace(term))
	return h.filter(func(item models.InventoryItem) bool {
		return strings.Contains(strings.ToLower(item.Name), term)
	})
}

func (h *Inventory) InCompartment(c models.Compartment) []models.InventoryItem {
	return h.filter(func(item models.InventoryItem) bool {
		return item.Compartment == c
	})
}

// Get returns the item with id from the loaded collection
func (h *Inventory) Get(id int) (models.InventoryItem, bool) {
	return h.find(func(item models.InventoryItem) bool { return item.ID == id })
}
