// ABOUTME: Meal plan endpoints
// ABOUTME: Plans are fetched a week at a time starting from a given date

package client

import (
	"context"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

const mealPlansPath = "/meal_plans/"

// WeeklyMealPlans returns the plans for the seven days starting at start
func (c *Client) WeeklyMealPlans(ctx context.Context, start time.Time) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	path := mealPlansPath + "weekly/" + start.Format(models.DateLayout) + "/"
	if err := c.get(ctx, path, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreateMealPlan creates the plan for a date
func (c *Client) CreateMealPlan(ctx context.Context, in models.MealPlanInput) (*models.MealPlan, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var plan models.MealPlan
	if err := c.post(ctx, mealPlansPath, in, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateMealPlan replaces the meals of an existing plan
func (c *Client) UpdateMealPlan(ctx context.Context, id int, in models.MealPlanInput) (*models.MealPlan, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var plan models.MealPlan
	if err := c.put(ctx, idPath(mealPlansPath, id), in, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// DeleteMealPlan removes a plan
func (c *Client) DeleteMealPlan(ctx context.Context, id int) error {
	return c.delete(ctx, idPath(mealPlansPath, id), nil)
}
