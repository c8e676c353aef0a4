// ABOUTME: Check command for the grocery CLI
// ABOUTME: Exits non-zero when stored food is expired or too much is about to expire

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/spf13/cobra"
)

var (
	checkDays        int
	checkMaxExpiring int
	checkMaxExpired  int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check inventory expiry thresholds",
	Long: `Check the inventory for expired and soon-to-expire food and exit
non-zero if any threshold is exceeded. Suitable for cron jobs.

Exit codes:
  0 - All checks passed
  1 - One or more thresholds exceeded
  2 - Error (connectivity, invalid input)
  3 - Not logged in or session expired`,
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runCheck)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&checkDays, "days", 0, "Expiring-soon window in days (default from GROCERY_NEAR_EXPIRY_DAYS)")
	checkCmd.Flags().IntVar(&checkMaxExpiring, "max-expiring", 5, "Maximum number of items allowed to expire within the window")
	checkCmd.Flags().IntVar(&checkMaxExpired, "max-expired", 0, "Maximum number of expired items allowed")
}

// checkResult represents the result of a single threshold check
type checkResult struct {
	name      string
	value     int
	threshold int
	items     []string
	passed    bool
}

// runCheck executes the threshold checks and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	if err := validateThresholds(checkDays, checkMaxExpiring, checkMaxExpired); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	inv := hooks.NewInventory(e.client, e.cache, now)
	if err := inv.Load(ctx); err != nil {
		return fail(w, err)
	}

	days := checkDays
	if days == 0 {
		days = e.cfg.NearExpiryDays
	}
	results := performChecks(inv, days)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return exitFailure
	}
	return exitOK
}

// validateThresholds ensures threshold values are valid
func validateThresholds(days, maxExpiring, maxExpired int) error {
	if days < 0 || days > 365 {
		return fmt.Errorf("--days must be between 0 and 365")
	}
	if maxExpiring < 0 {
		return fmt.Errorf("--max-expiring must not be negative")
	}
	if maxExpired < 0 {
		return fmt.Errorf("--max-expired must not be negative")
	}
	return nil
}

// performChecks runs all threshold checks against the loaded inventory
func performChecks(inv *hooks.Inventory, days int) []checkResult {
	var results []checkResult

	var expired []string
	for _, item := range inv.Expired() {
		expired = append(expired, item.Name)
	}
	results = append(results, checkResult{
		name:      "Expired items",
		value:     len(expired),
		threshold: checkMaxExpired,
		items:     expired,
		passed:    len(expired) <= checkMaxExpired,
	})

	var expiring []string
	for _, item := range inv.NearExpiry(days) {
		expiring = append(expiring, item.Name)
	}
	results = append(results, checkResult{
		name:      fmt.Sprintf("Expiring within %d days", days),
		value:     len(expiring),
		threshold: checkMaxExpiring,
		items:     expiring,
		passed:    len(expiring) <= checkMaxExpiring,
	})

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %d (threshold: %d)\n", symbol, r.name, r.value, r.threshold)
		if !r.passed {
			for _, name := range r.items {
				output += fmt.Sprintf("    - %s\n", name)
			}
		}
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) exceeded threshold", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) within thresholds", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		items := r.items
		if items == nil {
			items = []string{}
		}
		checks[i] = map[string]interface{}{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"items":     items,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
