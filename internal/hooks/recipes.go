// ABOUTME: Recipe hook with local search and filters
// ABOUTME: Writes go through the client then refetch the collection

package hooks

import (
	"context"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

type RecipeAPI interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int, in models.RecipeInput) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int) error
}

type Recipes struct {
	*Resource[models.Recipe]
	api RecipeAPI
}

func NewRecipes(api RecipeAPI, c *cache.Cache) *Recipes {
	return &Recipes{
		Resource: NewResource("recipes", c, api.ListRecipes),
		api:      api,
	}
}

func (h *Recipes) Create(ctx context.Context, in models.RecipeInput) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateRecipe(ctx, in)
		return err
	})
}

func (h *Recipes) Update(ctx context.Context, id int, in models.RecipeInput) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.UpdateRecipe(ctx, id, in)
		return err
	})
}

func (h *Recipes) Delete(ctx context.Context, id int) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteRecipe(ctx, id)
	})
}

// Search matches term against recipe names, ignoring case
func (h *Recipes) Search(term string) []models.Recipe {
	term = strings.ToLower(strings.TrimSpace(term))
	return h.filter(func(r models.Recipe) bool {
		return strings.Contains(strings.ToLower(r.Name), term)
	})
}

func (h *Recipes) ByCategory(category string) []models.Recipe {
	return h.filter(func(r models.Recipe) bool { return r.HasCategory(category) })
}

func (h *Recipes) ByDifficulty(d models.Difficulty) []models.Recipe {
	return h.filter(func(r models.Recipe) bool { return r.Difficulty == d })
}

func (h *Recipes) Get(id int) (models.Recipe, bool) {
	return h.find(func(r models.Recipe) bool { return r.ID == id })
}

// Categories lists every category used by a loaded recipe, in first-seen order
func (h *Recipes) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range h.Items() {
		for _, c := range r.Category {
			key := strings.ToLower(c)
			if c == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}
