// ABOUTME: Meal plan commands for the grocery CLI
// ABOUTME: Shows the week and schedules recipes into breakfast, lunch and dinner

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/spf13/cobra"
)

var mealWeekDate string

var mealplanCmd = &cobra.Command{
	Use:     "mealplan",
	Aliases: []string{"meals"},
	Short:   "Plan meals for the week",
}

var mealplanWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the meals planned for a week (Sunday to Saturday)",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runMealplanWeek)
	},
}

var mealplanSetCmd = &cobra.Command{
	Use:   "set DATE SLOT RECIPE_ID",
	Short: "Schedule a recipe, e.g. set 2026-03-10 dinner 7",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runMealplanSet(ctx, w, args[0], args[1], args[2])
		})
	},
}

var mealplanClearCmd = &cobra.Command{
	Use:   "clear DATE SLOT",
	Short: "Remove the recipe from a slot",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runMealplanClear(ctx, w, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(mealplanCmd)
	mealplanCmd.AddCommand(mealplanWeekCmd, mealplanSetCmd, mealplanClearCmd)

	mealplanWeekCmd.Flags().StringVar(&mealWeekDate, "date", "", "Any date in the week to show (default today)")
}

// weekOf returns a clock pinned to date, or the current time when empty
func weekOf(date string) (hooks.Clock, error) {
	if date == "" {
		return now, nil
	}
	t, err := models.ParseDate(date)
	if err != nil {
		return nil, &models.ValidationError{Field: "date", Message: "must be a date in the form YYYY-MM-DD"}
	}
	return func() time.Time { return t }, nil
}

func runMealplanWeek(ctx context.Context, w io.Writer) int {
	clock, err := weekOf(mealWeekDate)
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

	plans := hooks.NewMealPlans(e.client, e.cache, clock)
	if err := plans.Load(ctx); err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, plans.Items())
	} else {
		fmt.Fprintln(w, formatWeekHuman(plans))
	}
	return exitOK
}

func runMealplanSet(ctx context.Context, w io.Writer, date, rawSlot, rawRecipeID string) int {
	clock, err := weekOf(date)
	if err != nil {
		return fail(w, err)
	}
	slot, err := models.ParseMealSlot(rawSlot)
	if err != nil {
		return fail(w, err)
	}
	recipeID, err := parseID(rawRecipeID)
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

	recipe, err := e.client.GetRecipe(ctx, recipeID)
	if err != nil {
		return fail(w, err)
	}
	plans := hooks.NewMealPlans(e.client, e.cache, clock)
	if err := plans.Load(ctx); err != nil {
		return fail(w, err)
	}
	if err := plans.SetMeal(ctx, date, slot, *recipe); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "%s on %s: %s\n", slotLabel(slot), date, recipe.Name)
	return exitOK
}

func runMealplanClear(ctx context.Context, w io.Writer, date, rawSlot string) int {
	clock, err := weekOf(date)
	if err != nil {
		return fail(w, err)
	}
	slot, err := models.ParseMealSlot(rawSlot)
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

	plans := hooks.NewMealPlans(e.client, e.cache, clock)
	if err := plans.Load(ctx); err != nil {
		return fail(w, err)
	}
	if err := plans.ClearMeal(ctx, date, slot); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Cleared %s on %s\n", slot, date)
	return exitOK
}

// formatWeekHuman renders one row per day with the three slots
func formatWeekHuman(plans *hooks.MealPlans) string {
	rows := make([][]string, 0, 7)
	for _, date := range plans.Days() {
		t, _ := models.ParseDate(date)
		row := []string{t.Format("Mon 01-02")}
		plan, _ := plans.ForDate(date)
		for _, slot := range models.MealSlots {
			name := "-"
			if r := plan.Meals.Get(slot); r != nil {
				name = truncate(r.Name, 24)
			}
			row = append(row, name)
		}
		rows = append(rows, row)
	}
	header := fmt.Sprintf("Week of %s\n\n", plans.Start().Format("Jan 2, 2006"))
	return header + formatTable([]string{"DAY", "BREAKFAST", "LUNCH", "DINNER"}, rows)
}

func slotLabel(slot models.MealSlot) string {
	s := string(slot)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
