// ABOUTME: Status command for the grocery CLI
// ABOUTME: Shows the session and the household dashboard summary

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"dashboard"},
	Short:   "Show the household dashboard",
	Long:    `Display the session and the dashboard summary: expiring food, open shopping entries and planned meals.`,
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runStatus)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusReport is what the status command prints
type statusReport struct {
	Backend      string            `json:"backend"`
	User         string            `json:"user"`
	Admin        bool              `json:"admin"`
	TokenExpires string            `json:"token_expires,omitempty"`
	Dashboard    *models.Dashboard `json:"dashboard"`
}

// runStatus executes the status check and returns exit code
func runStatus(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	dash := hooks.NewDashboard(e.client, e.cache)
	if err := dash.Load(ctx); err != nil {
		return fail(w, err)
	}

	report := newStatusReport(e.client.BaseURL(), e.store.Load(), dash.Summary())
	if access, _ := e.store.Tokens(); access != "" {
		if exp, ok := client.TokenExpiry(access); ok {
			report.TokenExpires = exp.Format(time.RFC3339)
		}
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatStatusJSON(report))
	} else {
		fmt.Fprintln(w, formatStatusHuman(report))
	}
	return exitOK
}

func newStatusReport(backend string, state session.State, d *models.Dashboard) statusReport {
	r := statusReport{Backend: backend, Dashboard: d}
	if state.User != nil {
		r.User = state.User.Username
		r.Admin = state.IsAdmin()
	}
	if r.Dashboard == nil {
		r.Dashboard = &models.Dashboard{}
	}
	return r
}

// formatStatusHuman formats the status report for human readability
func formatStatusHuman(r statusReport) string {
	d := r.Dashboard
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Backend:          %s\n", r.Backend))
	sb.WriteString(fmt.Sprintf("User:             %s\n", r.User))
	if r.TokenExpires != "" {
		sb.WriteString(fmt.Sprintf("Token expires:    %s\n", r.TokenExpires))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Fridge items:     %d\n", len(d.FridgeItems)))
	sb.WriteString(fmt.Sprintf("Expiring soon:    %d\n", len(d.ExpiringItems)))
	sb.WriteString(fmt.Sprintf("Shopping pending: %d\n", d.PendingShopping()))
	sb.WriteString(fmt.Sprintf("Wasted food:      %d\n", len(d.WastedFood)))
	sb.WriteString(fmt.Sprintf("Purchases:        %.2f\n", d.PurchaseTotal()))

	if len(d.ExpiringItems) > 0 {
		sb.WriteString("\nExpiring:\n")
		for _, f := range d.ExpiringItems {
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", f.Name, f.ExpiryDate))
		}
	}

	if len(d.MealPlans) > 0 {
		sb.WriteString("\nMeals:\n")
		for _, p := range d.MealPlans {
			var meals []string
			for _, m := range p.Meals {
				meals = append(meals, fmt.Sprintf("%s: %s", m.Type, m.Recipe.Name))
			}
			sb.WriteString(fmt.Sprintf("  %s  %s\n", p.Date, strings.Join(meals, ", ")))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatStatusJSON formats the status report as JSON
func formatStatusJSON(r statusReport) string {
	data, _ := json.MarshalIndent(r, "", "  ")
	return string(data)
}
