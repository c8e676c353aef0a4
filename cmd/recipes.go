// ABOUTME: Recipe commands for the grocery CLI
// ABOUTME: Browses, adds and deletes recipes

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/spf13/cobra"
)

var (
	recipeSearch     string
	recipeCategory   string
	recipeDifficulty string

	recipeInput models.RecipeInput
)

var recipesCmd = &cobra.Command{
	Use:     "recipes",
	Aliases: []string{"recipe"},
	Short:   "Browse and manage recipes",
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runRecipesList)
	},
}

var recipesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a recipe with ingredients and steps",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runRecipesShow(ctx, w, args[0])
		})
	},
}

var recipesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recipe",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runRecipesAdd)
	},
}

var recipesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runRecipesDelete(ctx, w, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(recipesCmd)
	recipesCmd.AddCommand(recipesListCmd, recipesShowCmd, recipesAddCmd, recipesDeleteCmd)

	recipesListCmd.Flags().StringVar(&recipeSearch, "search", "", "Filter by name")
	recipesListCmd.Flags().StringVar(&recipeCategory, "category", "", "Only recipes in this category")
	recipesListCmd.Flags().StringVar(&recipeDifficulty, "difficulty", "", "easy, medium or hard")

	f := recipesAddCmd.Flags()
	f.StringVar(&recipeInput.Name, "name", "", "Recipe name")
	f.StringVar(&recipeInput.Description, "description", "", "Short description")
	f.StringArrayVar(&recipeInput.Ingredients, "ingredient", nil, "Ingredient (repeatable)")
	f.StringArrayVar(&recipeInput.Instructions, "step", nil, "Instruction step (repeatable)")
	f.IntVar(&recipeInput.PrepTime, "prep", 0, "Prep time in minutes")
	f.IntVar(&recipeInput.CookTime, "cook", 0, "Cook time in minutes")
	f.IntVar(&recipeInput.Servings, "servings", 2, "Servings")
	f.StringVar((*string)(&recipeInput.Difficulty), "difficulty", string(models.DifficultyEasy), "easy, medium or hard")
	f.StringSliceVar(&recipeInput.Category, "category", nil, "Categories (comma separated)")
}

func runRecipesList(ctx context.Context, w io.Writer) int {
	var difficulty models.Difficulty
	if recipeDifficulty != "" {
		d, err := models.ParseDifficulty(recipeDifficulty)
		if err != nil {
			return fail(w, err)
		}
		difficulty = d
	}

	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	var recipes []models.Recipe
	if recipeCategory != "" {
		recipes, err = e.client.RecipesByCategory(ctx, recipeCategory)
		if err != nil {
			return fail(w, err)
		}
	} else {
		h := hooks.NewRecipes(e.client, e.cache)
		if err := h.Load(ctx); err != nil {
			return fail(w, err)
		}
		recipes = h.Search(recipeSearch)
	}
	recipes = filterRecipes(recipes, recipeSearch, difficulty)

	if IsJSONOutput() {
		writeJSON(w, recipes)
	} else {
		fmt.Fprintln(w, formatRecipesHuman(recipes))
	}
	return exitOK
}

// filterRecipes applies the name and difficulty filters
func filterRecipes(recipes []models.Recipe, search string, difficulty models.Difficulty) []models.Recipe {
	search = strings.ToLower(strings.TrimSpace(search))
	var out []models.Recipe
	for _, r := range recipes {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if difficulty != "" && r.Difficulty != difficulty {
			continue
		}
		out = append(out, r)
	}
	return out
}

func runRecipesShow(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		return fail(w, err)
	}
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	recipe, err := e.client.GetRecipe(ctx, id)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, recipe)
	} else {
		fmt.Fprintln(w, formatRecipeDetail(recipe))
	}
	return exitOK
}

func runRecipesAdd(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	h := hooks.NewRecipes(e.client, e.cache)
	if err := h.Create(ctx, recipeInput); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Added recipe %s\n", recipeInput.Name)
	return exitOK
}

func runRecipesDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		return fail(w, err)
	}
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	if err := e.client.DeleteRecipe(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted recipe %d\n", id)
	return exitOK
}

func formatRecipesHuman(recipes []models.Recipe) string {
	if len(recipes) == 0 {
		return "No recipes found"
	}
	rows := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			truncate(r.Name, 32),
			string(r.Difficulty),
			fmt.Sprintf("%d min", r.TotalTime()),
			strconv.Itoa(r.Servings),
			strings.Join(r.Category, ", "),
		})
	}
	return formatTable([]string{"ID", "NAME", "DIFFICULTY", "TIME", "SERVES", "CATEGORIES"}, rows)
}

func formatRecipeDetail(r *models.Recipe) string {
	var sb strings.Builder
	sb.WriteString(r.Name + "\n")
	if r.Description != "" {
		sb.WriteString(r.Description + "\n")
	}
	sb.WriteString(fmt.Sprintf("\nDifficulty: %s   Prep: %d min   Cook: %d min   Serves: %d\n",
		r.Difficulty, r.PrepTime, r.CookTime, r.Servings))
	if len(r.Category) > 0 {
		sb.WriteString("Categories: " + strings.Join(r.Category, ", ") + "\n")
	}

	sb.WriteString("\nIngredients:\n")
	for _, ing := range r.Ingredients {
		sb.WriteString("  - " + ing + "\n")
	}
	sb.WriteString("\nSteps:\n")
	for i, step := range r.Instructions {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
	}
	return strings.TrimRight(sb.String(), "\n")
}
