// ABOUTME: Meal plan model with breakfast, lunch and dinner slots
// ABOUTME: Each slot holds a recipe by value

package models

import "strings"

// MealSlot names one of the three daily meals
type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
)

// MealSlots lists the slots in serving order
var MealSlots = []MealSlot{Breakfast, Lunch, Dinner}

// ParseMealSlot accepts the wire value case-insensitively
func ParseMealSlot(s string) (MealSlot, error) {
	slot := MealSlot(strings.ToLower(strings.TrimSpace(s)))
	switch slot {
	case Breakfast, Lunch, Dinner:
		return slot, nil
	}
	return "", invalid("meal", "must be breakfast, lunch or dinner, got %q", SanitizeForLog(s))
}

// Meals holds the optional recipe for each slot
type Meals struct {
	Breakfast *Recipe `json:"breakfast,omitempty"`
	Lunch     *Recipe `json:"lunch,omitempty"`
	Dinner    *Recipe `json:"dinner,omitempty"`
}

// Get returns the recipe in a slot, or nil
func (m Meals) Get(slot MealSlot) *Recipe {
	switch slot {
	case Breakfast:
		return m.Breakfast
	case Lunch:
		return m.Lunch
	case Dinner:
		return m.Dinner
	}
	return nil
}

// With returns a copy with the slot set to recipe (nil clears it)
func (m Meals) With(slot MealSlot, recipe *Recipe) Meals {
	switch slot {
	case Breakfast:
		m.Breakfast = recipe
	case Lunch:
		m.Lunch = recipe
	case Dinner:
		m.Dinner = recipe
	}
	return m
}

// Empty reports whether no slot is filled
func (m Meals) Empty() bool {
	return m.Breakfast == nil && m.Lunch == nil && m.Dinner == nil
}

// MealPlan is the set of meals scheduled for one date
type MealPlan struct {
	ID    int    `json:"id"`
	Date  string `json:"date"`
	Meals Meals  `json:"meals"`
}

// MealPlanInput creates or replaces a plan
type MealPlanInput struct {
	Date  string `json:"date"`
	Meals Meals  `json:"meals"`
}

func (in MealPlanInput) Validate() error {
	return validDate("date", in.Date)
}
