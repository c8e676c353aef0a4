// ABOUTME: Weekly meal plan hook
// ABOUTME: Setting or clearing a slot creates, updates or deletes the day's plan

package hooks

import (
	"context"
	"fmt"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

type MealPlanAPI interface {
	WeeklyMealPlans(ctx context.Context, start time.Time) ([]models.MealPlan, error)
	CreateMealPlan(ctx context.Context, in models.MealPlanInput) (*models.MealPlan, error)
	UpdateMealPlan(ctx context.Context, id int, in models.MealPlanInput) (*models.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id int) error
}

// WeekStart returns the Sunday on or before t, at midnight
func WeekStart(t time.Time) time.Time {
	day := models.Truncate(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

type MealPlans struct {
	*Resource[models.MealPlan]
	api   MealPlanAPI
	start time.Time
}

func NewMealPlans(api MealPlanAPI, c *cache.Cache, now Clock) *MealPlans {
	if now == nil {
		now = time.Now
	}
	h := &MealPlans{api: api, start: WeekStart(now())}
	h.Resource = NewResource("mealplans", c, func(ctx context.Context) ([]models.MealPlan, error) {
		return api.WeeklyMealPlans(ctx, h.Start())
	})
	h.key = func() string { return "mealplans:" + h.start.Format(models.DateLayout) }
	return h
}

// Start is the first day of the loaded week
func (h *MealPlans) Start() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.start
}

// Days returns the seven dates of the current week
func (h *MealPlans) Days() []string {
	start := h.Start()
	days := make([]string, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i).Format(models.DateLayout)
	}
	return days
}

// ShiftWeek moves the window by n weeks and loads it
func (h *MealPlans) ShiftWeek(ctx context.Context, n int) error {
	h.mu.Lock()
	h.start = h.start.AddDate(0, 0, 7*n)
	h.mu.Unlock()
	return h.Load(ctx)
}

// ForDate returns the plan for a YYYY-MM-DD date
func (h *MealPlans) ForDate(date string) (models.MealPlan, bool) {
	return h.find(func(p models.MealPlan) bool { return p.Date == date })
}

// SetMeal puts recipe in a slot, creating the day's plan when there is none
func (h *MealPlans) SetMeal(ctx context.Context, date string, slot models.MealSlot, recipe models.Recipe) error {
	if _, err := models.ParseMealSlot(string(slot)); err != nil {
		h.fail(err)
		return err
	}
	plan, exists := h.ForDate(date)
	in := models.MealPlanInput{Date: date, Meals: plan.Meals.With(slot, &recipe)}
	return h.Mutate(ctx, func(ctx context.Context) error {
		var err error
		if exists {
			_, err = h.api.UpdateMealPlan(ctx, plan.ID, in)
		} else {
			_, err = h.api.CreateMealPlan(ctx, in)
		}
		return err
	})
}

// ClearMeal empties a slot. The plan is deleted once no meals remain.
func (h *MealPlans) ClearMeal(ctx context.Context, date string, slot models.MealSlot) error {
	plan, exists := h.ForDate(date)
	if !exists {
		err := fmt.Errorf("no meal plan for %s", date)
		h.fail(err)
		return err
	}
	meals := plan.Meals.With(slot, nil)
	return h.Mutate(ctx, func(ctx context.Context) error {
		if meals.Empty() {
			return h.api.DeleteMealPlan(ctx, plan.ID)
		}
		_, err := h.api.UpdateMealPlan(ctx, plan.ID, models.MealPlanInput{Date: date, Meals: meals})
		return err
	})
}
