// ABOUTME: Inventory commands for the grocery CLI
// ABOUTME: Lists, adds, updates and deletes fridge and freezer items

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/spf13/cobra"
)

var (
	invCompartment string
	invSearch      string
	invExpiring    bool
	invExpired     bool
	invDays        int

	invInput models.InventoryInput
)

// now is swapped in tests
var now = time.Now

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"inv", "fridge"},
	Short:   "Manage fridge and freezer contents",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored items",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runInventoryList)
	},
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item",
	Long: `Add an item to the cooler or freezer.

When --category is omitted a category is suggested from the item name.`,
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runInventoryAdd)
	},
}

var inventoryUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change fields of an item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		changed := changedInventoryFields(cmd)
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runInventoryUpdate(ctx, w, args[0], changed)
		})
	},
}

var inventoryDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runInventoryDelete(ctx, w, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(inventoryListCmd, inventoryAddCmd, inventoryUpdateCmd, inventoryDeleteCmd)

	inventoryListCmd.Flags().StringVar(&invCompartment, "compartment", "", "Only show cooler or freezer")
	inventoryListCmd.Flags().StringVar(&invSearch, "search", "", "Filter by name")
	inventoryListCmd.Flags().BoolVar(&invExpiring, "expiring", false, "Only show items expiring soon")
	inventoryListCmd.Flags().BoolVar(&invExpired, "expired", false, "Only show expired items")
	inventoryListCmd.Flags().IntVar(&invDays, "days", 0, "Expiring-soon window in days (default from GROCERY_NEAR_EXPIRY_DAYS)")

	for _, c := range []*cobra.Command{inventoryAddCmd, inventoryUpdateCmd} {
		c.Flags().StringVar(&invInput.Name, "name", "", "Item name")
		c.Flags().StringVar(&invInput.Category, "category", "", "Category")
		c.Flags().StringVar((*string)(&invInput.Compartment), "compartment", string(models.Cooler), "cooler or freezer")
		c.Flags().StringVar(&invInput.Location, "location", "", "Shelf or drawer")
		c.Flags().IntVar(&invInput.Quantity, "quantity", 1, "Quantity")
		c.Flags().StringVar(&invInput.ExpiryDate, "expiry", "", "Expiry date (YYYY-MM-DD)")
		c.Flags().StringVar(&invInput.Note, "note", "", "Free-form note")
	}
}

func runInventoryList(ctx context.Context, w io.Writer) int {
	if invExpiring && invExpired {
		fmt.Fprintln(w, "Error: --expiring and --expired are mutually exclusive")
		return exitUsage
	}
	var compartment models.Compartment
	if invCompartment != "" {
		c, err := models.ParseCompartment(invCompartment)
		if err != nil {
			return fail(w, err)
		}
		compartment = c
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

	days := invDays
	if days <= 0 {
		days = e.cfg.NearExpiryDays
	}
	items := selectInventory(inv, compartment, days)

	if IsJSONOutput() {
		writeJSON(w, items)
	} else {
		fmt.Fprintln(w, formatInventoryHuman(items, now()))
	}
	return exitOK
}

// selectInventory applies the list flags to the loaded collection
func selectInventory(inv *hooks.Inventory, compartment models.Compartment, days int) []models.InventoryItem {
	var items []models.InventoryItem
	switch {
	case invExpired:
		items = inv.Expired()
	case invExpiring:
		items = inv.NearExpiry(days)
	default:
		items = inv.Items()
	}

	search := strings.ToLower(strings.TrimSpace(invSearch))
	out := items[:0]
	for _, item := range items {
		if compartment != "" && item.Compartment != compartment {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func runInventoryAdd(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	inv := hooks.NewInventory(e.client, e.cache, now)
	if err := inv.Add(ctx, invInput); err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, inv.Search(invInput.Name))
	} else {
		fmt.Fprintf(w, "Added %s to the %s\n", invInput.Name, invInput.Compartment)
	}
	return exitOK
}

// changedInventoryFields records which update flags were given
func changedInventoryFields(cmd *cobra.Command) map[string]bool {
	changed := make(map[string]bool)
	for _, name := range []string{"name", "category", "compartment", "location", "quantity", "expiry", "note"} {
		changed[name] = cmd.Flags().Changed(name)
	}
	return changed
}

// mergeInventoryInput overlays the changed flags onto the current item
func mergeInventoryInput(item models.InventoryItem, changed map[string]bool) models.InventoryInput {
	in := item.Input()
	if changed["name"] {
		in.Name = invInput.Name
	}
	if changed["category"] {
		in.Category = invInput.Category
	}
	if changed["compartment"] {
		in.Compartment = invInput.Compartment
	}
	if changed["location"] {
		in.Location = invInput.Location
	}
	if changed["quantity"] {
		in.Quantity = invInput.Quantity
	}
	if changed["expiry"] {
		in.ExpiryDate = invInput.ExpiryDate
	}
	if changed["note"] {
		in.Note = invInput.Note
	}
	return in
}

func runInventoryUpdate(ctx context.Context, w io.Writer, rawID string, changed map[string]bool) int {
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

	inv := hooks.NewInventory(e.client, e.cache, now)
	if err := inv.Load(ctx); err != nil {
		return fail(w, err)
	}
	item, ok := inv.Get(id)
	if !ok {
		fmt.Fprintf(w, "Error: no inventory item with id %d\n", id)
		return exitFailure
	}
	if err := inv.Update(ctx, id, mergeInventoryInput(item, changed)); err != nil {
		return fail(w, err)
	}

	fmt.Fprintf(w, "Updated %s\n", item.Name)
	return exitOK
}

func runInventoryDelete(ctx context.Context, w io.Writer, rawID string) int {
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

	if err := e.client.DeleteInventoryItem(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted item %d\n", id)
	return exitOK
}

// formatInventoryHuman formats inventory items for human readability
func formatInventoryHuman(items []models.InventoryItem, at time.Time) string {
	if len(items) == 0 {
		return "No items found"
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(item.ID),
			truncate(item.Name, 30),
			item.Category,
			string(item.Compartment),
			item.Location,
			strconv.Itoa(item.Quantity),
			item.ExpiryDate,
			item.ExpiryLabel(at),
		})
	}
	return formatTable([]string{"ID", "NAME", "CATEGORY", "WHERE", "LOCATION", "QTY", "EXPIRES", "LEFT"}, rows)
}

// parseID validates a positional record id
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a valid id", raw)}
	}
	return id, nil
}
