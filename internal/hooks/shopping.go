// ABOUTME: Shopping list and shopping item hooks
// ABOUTME: Items are loaded per list; toggling adopts the server's copy of the item

package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

// ErrNoFamily is returned when a list is created by a user without a family
var ErrNoFamily = &models.ValidationError{Field: "family_id", Message: "join or create a family before creating a list"}

// ShoppingAPI is the part of the client the shopping hooks use
type ShoppingAPI interface {
	ListShoppingLists(ctx context.Context) ([]models.ShoppingList, error)
	CreateShoppingList(ctx context.Context, in models.ShoppingListInput) (*models.ShoppingList, error)
	RenameShoppingList(ctx context.Context, id int, name string) (*models.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, id int) error

	ListShoppingItems(ctx context.Context, listID int) ([]models.ShoppingListItem, error)
	CreateShoppingItem(ctx context.Context, in models.ShoppingItemInput) (*models.ShoppingListItem, error)
	UpdateShoppingItem(ctx context.Context, id int, in models.ShoppingItemInput) (*models.ShoppingListItem, error)
	DeleteShoppingItem(ctx context.Context, id int) error
}

type ShoppingLists struct {
	*Resource[models.ShoppingList]
	api ShoppingAPI
}

func NewShoppingLists(api ShoppingAPI, c *cache.Cache) *ShoppingLists {
	return &ShoppingLists{
		Resource: NewResource("shopping:lists", c, api.ListShoppingLists),
		api:      api,
	}
}

// Create makes a list owned by the user's family
func (h *ShoppingLists) Create(ctx context.Context, name string, owner *models.User) error {
	if !owner.HasFamily() {
		h.fail(ErrNoFamily)
		return ErrNoFamily
	}
	in := models.ShoppingListInput{Name: name, FamilyID: *owner.FamilyID, CreatedBy: owner.ID}
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateShoppingList(ctx, in)
		return err
	})
}

func (h *ShoppingLists) Rename(ctx context.Context, id int, name string) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.RenameShoppingList(ctx, id, name)
		return err
	})
}

func (h *ShoppingLists) Delete(ctx context.Context, id int) error {
	err := h.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteShoppingList(ctx, id)
	})
	if err == nil && h.cache != nil {
		h.cache.Invalidate(itemsKey(id))
	}
	return err
}

// ShoppingItems holds the items of one list
type ShoppingItems struct {
	*Resource[models.ShoppingListItem]
	api    ShoppingAPI
	listID int
}

func itemsKey(listID int) string {
	return fmt.Sprintf("shopping:items:%d", listID)
}

func NewShoppingItems(api ShoppingAPI, c *cache.Cache, listID int) *ShoppingItems {
	h := &ShoppingItems{api: api, listID: listID}
	h.Resource = NewResource(itemsKey(listID), c, func(ctx context.Context) ([]models.ShoppingListItem, error) {
		return api.ListShoppingItems(ctx, listID)
	})
	return h
}

func (h *ShoppingItems) ListID() int {
	return h.listID
}

// Add puts a pending item on the list, suggesting a category when blank
func (h *ShoppingItems) Add(ctx context.Context, in models.ShoppingItemInput) error {
	in.ShoppingListID = h.listID
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if strings.TrimSpace(in.Category) == "" {
		in.Category = models.SuggestCategory(in.Item)
	}
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateShoppingItem(ctx, in)
		return err
	})
}

func (h *ShoppingItems) Update(ctx context.Context, id int, in models.ShoppingItemInput) error {
	in.ShoppingListID = h.listID
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.UpdateShoppingItem(ctx, id, in)
		return err
	})
}

func (h *ShoppingItems) Delete(ctx context.Context, id int) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteShoppingItem(ctx, id)
	})
}

// Toggle flips an item between pending and bought and replaces the local
// record with the one the server returns
func (h *ShoppingItems) Toggle(ctx context.Context, id int) error {
	item, ok := h.find(func(i models.ShoppingListItem) bool { return i.ID == id })
	if !ok {
		err := fmt.Errorf("shopping item %d is not on list %d", id, h.listID)
		h.fail(err)
		return err
	}

	in := item.Input()
	in.ShoppingListID = h.listID
	in.Status = item.Status.Toggled()
	updated, err := h.api.UpdateShoppingItem(ctx, id, in)
	if err != nil {
		h.fail(err)
		return err
	}
	h.replace(func(i models.ShoppingListItem) bool { return i.ID == id }, *updated)
	return nil
}

func (h *ShoppingItems) ByStatus(status models.ItemStatus) []models.ShoppingListItem {
	return h.filter(func(i models.ShoppingListItem) bool { return i.Status == status })
}

func (h *ShoppingItems) ByPriority(p models.Priority) []models.ShoppingListItem {
	return h.filter(func(i models.ShoppingListItem) bool { return i.Priority == p })
}

// Progress returns how many items are bought out of the total
func (h *ShoppingItems) Progress() (bought, total int) {
	for _, i := range h.Items() {
		if i.Status == models.StatusBought {
			bought++
		}
		total++
	}
	return bought, total
}
