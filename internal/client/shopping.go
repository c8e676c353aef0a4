// ABOUTME: Shopping list and shopping list item endpoints
// ABOUTME: Items are filtered by shopping_list_id on the server

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

const (
	shoppingListsPath = "/shopping/shopping-lists/"
	shoppingItemsPath = "/shopping/shopping-list-items/"
)

// ListShoppingLists returns the lists visible to the current user
func (c *Client) ListShoppingLists(ctx context.Context) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := c.get(ctx, shoppingListsPath, nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateShoppingList creates a list owned by in.FamilyID
func (c *Client) CreateShoppingList(ctx context.Context, in models.ShoppingListInput) (*models.ShoppingList, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.FamilyID <= 0 {
		return nil, &ValidationError{Field: "family_id", Message: "join or create a family before creating a list"}
	}
	var list models.ShoppingList
	if err := c.post(ctx, shoppingListsPath, in, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// RenameShoppingList changes a list's name
func (c *Client) RenameShoppingList(ctx context.Context, id int, name string) (*models.ShoppingList, error) {
	in := models.ShoppingListInput{Name: name}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var list models.ShoppingList
	if err := c.patch(ctx, idPath(shoppingListsPath, id), in, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteShoppingList removes a list and its items
func (c *Client) DeleteShoppingList(ctx context.Context, id int) error {
	return c.delete(ctx, idPath(shoppingListsPath, id), nil)
}

// ListShoppingItems returns the items of one list
func (c *Client) ListShoppingItems(ctx context.Context, listID int) ([]models.ShoppingListItem, error) {
	if listID <= 0 {
		return nil, &ValidationError{Field: "shopping_list_id", Message: "is required"}
	}
	q := url.Values{"shopping_list_id": {strconv.Itoa(listID)}}
	var items []models.ShoppingListItem
	if err := c.get(ctx, shoppingItemsPath, q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateShoppingItem adds an item to a list
func (c *Client) CreateShoppingItem(ctx context.Context, in models.ShoppingItemInput) (*models.ShoppingListItem, error) {
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var item models.ShoppingListItem
	if err := c.post(ctx, shoppingItemsPath, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateShoppingItem edits an item and returns the server's copy
func (c *Client) UpdateShoppingItem(ctx context.Context, id int, in models.ShoppingItemInput) (*models.ShoppingListItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var item models.ShoppingListItem
	if err := c.patch(ctx, idPath(shoppingItemsPath, id), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteShoppingItem removes an item
func (c *Client) DeleteShoppingItem(ctx context.Context, id int) error {
	return c.delete(ctx, idPath(shoppingItemsPath, id), nil)
}
