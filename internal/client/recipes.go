// ABOUTME: Recipe endpoints
// ABOUTME: CRUD plus server-side search and category listing

package client

import (
	"context"
	"net/url"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

const recipesPath = "/recipes/"

// ListRecipes returns every recipe
func (c *Client) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := c.get(ctx, recipesPath, nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe returns one recipe
func (c *Client) GetRecipe(ctx context.Context, id int) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.get(ctx, idPath(recipesPath, id), nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SearchRecipes asks the server for recipes matching q
func (c *Client) SearchRecipes(ctx context.Context, q string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := c.get(ctx, recipesPath+"search/", url.Values{"q": {q}}, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecipesByCategory lists the recipes of one category
func (c *Client) RecipesByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	if category == "" {
		return nil, &ValidationError{Field: "category", Message: "is required"}
	}
	var recipes []models.Recipe
	if err := c.get(ctx, recipesPath+"category/"+url.PathEscape(category)+"/", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CreateRecipe adds a recipe
func (c *Client) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var recipe models.Recipe
	if err := c.post(ctx, recipesPath, in, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces a recipe
func (c *Client) UpdateRecipe(ctx context.Context, id int, in models.RecipeInput) (*models.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var recipe models.Recipe
	if err := c.put(ctx, idPath(recipesPath, id), in, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe
func (c *Client) DeleteRecipe(ctx context.Context, id int) error {
	return c.delete(ctx, idPath(recipesPath, id), nil)
}
