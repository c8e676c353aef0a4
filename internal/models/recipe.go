// ABOUTME: Recipe model and its create/update payload
// ABOUTME: Difficulty is limited to easy, medium and hard

package models

import "strings"

// Difficulty grades how demanding a recipe is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Recipe is a dish that can be scheduled into meal plans
type Recipe struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     int        `json:"prep_time"`
	CookTime     int        `json:"cook_time"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Category     []string   `json:"category"`
}

// TotalTime is prep plus cook time in minutes
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// HasCategory matches case-insensitively
func (r Recipe) HasCategory(category string) bool {
	for _, c := range r.Category {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// Input converts a recipe into its update payload
func (r Recipe) Input() RecipeInput {
	return RecipeInput{
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Category:     r.Category,
	}
}

// RecipeInput creates or replaces a recipe
type RecipeInput struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     int        `json:"prep_time"`
	CookTime     int        `json:"cook_time"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Category     []string   `json:"category"`
}

func (in RecipeInput) Validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if err := maxLen("name", in.Name, 255); err != nil {
		return err
	}
	if len(in.Ingredients) == 0 {
		return invalid("ingredients", "at least one ingredient is required")
	}
	if len(in.Instructions) == 0 {
		return invalid("instructions", "at least one step is required")
	}
	if in.PrepTime < 0 {
		return invalid("prep_time", "must not be negative")
	}
	if in.CookTime < 0 {
		return invalid("cook_time", "must not be negative")
	}
	if in.Servings <= 0 {
		return invalid("servings", "must be greater than 0")
	}
	if _, err := ParseDifficulty(string(in.Difficulty)); err != nil {
		return err
	}
	return nil
}

// ParseDifficulty accepts the wire value case-insensitively
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", invalid("difficulty", "must be easy, medium or hard, got %q", SanitizeForLog(s))
}
