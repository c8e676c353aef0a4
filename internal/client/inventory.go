// ABOUTME: Fridge inventory and category endpoints
// ABOUTME: Items are listed per compartment; writes return a status envelope

package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

const (
	foodsPath      = "/fridge/foods/"
	categoriesPath = "/fridge/categories/"
)

type foodsResponse struct {
	Foods []models.InventoryItem `json:"foods"`
}

// foodEnvelope is the {status, message, data} shape of write responses
type foodEnvelope struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Data    models.InventoryItem `json:"data"`
}

// ListInventory returns the items in one compartment. search, when set,
// is passed through to the server's name filter.
func (c *Client) ListInventory(ctx context.Context, compartment models.Compartment, search string) ([]models.InventoryItem, error) {
	comp, err := models.ParseCompartment(string(compartment))
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}

	var resp foodsResponse
	if err := c.get(ctx, fmt.Sprintf("%s%s/", foodsPath, comp), q, &resp); err != nil {
		return nil, err
	}
	return resp.Foods, nil
}

// ListAllInventory returns the items of every compartment, cooler first
func (c *Client) ListAllInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var all []models.InventoryItem
	for _, comp := range models.Compartments {
		items, err := c.ListInventory(ctx, comp, "")
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// CreateInventoryItem stores a new food item
func (c *Client) CreateInventoryItem(ctx context.Context, in models.InventoryInput) (*models.InventoryItem, error) {
	if err := in.Validate(c.now()); err != nil {
		return nil, err
	}
	var env foodEnvelope
	if err := c.post(ctx, foodsPath, in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateInventoryItem replaces an item
func (c *Client) UpdateInventoryItem(ctx context.Context, id int, in models.InventoryInput) (*models.InventoryItem, error) {
	if err := in.Validate(c.now()); err != nil {
		return nil, err
	}
	var env foodEnvelope
	if err := c.put(ctx, idPath(foodsPath, id), in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteInventoryItem removes an item
func (c *Client) DeleteInventoryItem(ctx context.Context, id int) error {
	return c.delete(ctx, idPath(foodsPath, id), nil)
}

// ListCategories returns the inventory categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.get(ctx, categoriesPath, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory adds an inventory category
func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var cat models.Category
	if err := c.post(ctx, categoriesPath, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes an inventory category
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.delete(ctx, idPath(categoriesPath, id), nil)
}
