// ABOUTME: Shopping list commands for the grocery CLI
// ABOUTME: Manages family shopping lists and toggles items between pending and bought

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/spf13/cobra"
)

var (
	shopItemInput models.ShoppingItemInput
	shopPriority  string
	shopPending   bool
)

var shoppingCmd = &cobra.Command{
	Use:     "shopping",
	Aliases: []string{"shop"},
	Short:   "Manage family shopping lists",
}

var shoppingListsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show shopping lists",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runShoppingLists)
	},
}

var shoppingCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a list for your family",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runShoppingCreate(ctx, w, args[0])
		})
	},
}

var shoppingDeleteCmd = &cobra.Command{
	Use:   "delete LIST_ID",
	Short: "Delete a list and its items",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runShoppingDelete(ctx, w, args[0])
		})
	},
}

var shoppingItemsCmd = &cobra.Command{
	Use:   "items LIST_ID",
	Short: "Show the items of a list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runShoppingItems(ctx, w, args[0])
		})
	},
}

var shoppingAddCmd = &cobra.Command{
	Use:   "add LIST_ID ITEM",
	Short: "Put an item on a list",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runShoppingAdd(ctx, w, args[0], args[1])
		})
	},
}

var shoppingToggleCmd = &cobra.Command{
	Use:   "toggle LIST_ID ITEM_ID",
	Short: "Mark an item bought, or pending again",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runShoppingToggle(ctx, w, args[0], args[1])
		})
	},
}

var shoppingRemoveCmd = &cobra.Command{
	Use:   "remove LIST_ID ITEM_ID",
	Short: "Take an item off a list",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runShoppingRemove(ctx, w, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(shoppingCmd)
	shoppingCmd.AddCommand(shoppingListsCmd, shoppingCreateCmd, shoppingDeleteCmd,
		shoppingItemsCmd, shoppingAddCmd, shoppingToggleCmd, shoppingRemoveCmd)

	shoppingItemsCmd.Flags().BoolVar(&shopPending, "pending", false, "Only show items not yet bought")

	shoppingAddCmd.Flags().IntVar(&shopItemInput.Quantity, "quantity", 1, "Quantity")
	shoppingAddCmd.Flags().StringVar(&shopItemInput.Category, "category", "", "Category (suggested from the name when omitted)")
	shoppingAddCmd.Flags().StringVar(&shopPriority, "priority", "", "low, medium or high")
}

func runShoppingLists(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	lists := hooks.NewShoppingLists(e.client, e.cache)
	if err := lists.Load(ctx); err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, lists.Items())
	} else {
		fmt.Fprintln(w, formatShoppingListsHuman(lists.Items()))
	}
	return exitOK
}

func runShoppingCreate(ctx context.Context, w io.Writer, name string) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	state, ok := e.requireSession(w)
	if !ok {
		return exitReauth
	}

	lists := hooks.NewShoppingLists(e.client, e.cache)
	if err := lists.Create(ctx, name, state.User); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Created list %s\n", name)
	return exitOK
}

func runShoppingDelete(ctx context.Context, w io.Writer, rawID string) int {
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

	lists := hooks.NewShoppingLists(e.client, e.cache)
	if err := lists.Delete(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted list %d\n", id)
	return exitOK
}

// loadShoppingItems is shared by the per-list commands
func loadShoppingItems(ctx context.Context, e *env, rawListID string) (*hooks.ShoppingItems, error) {
	listID, err := parseID(rawListID)
	if err != nil {
		return nil, err
	}
	items := hooks.NewShoppingItems(e.client, e.cache, listID)
	if err := items.Load(ctx); err != nil {
		return nil, err
	}
	return items, nil
}

func runShoppingItems(ctx context.Context, w io.Writer, rawListID string) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	items, err := loadShoppingItems(ctx, e, rawListID)
	if err != nil {
		return fail(w, err)
	}
	shown := items.Items()
	if shopPending {
		shown = items.ByStatus(models.StatusPending)
	}

	if IsJSONOutput() {
		writeJSON(w, shown)
		return exitOK
	}
	bought, total := items.Progress()
	fmt.Fprintln(w, formatShoppingItemsHuman(shown))
	fmt.Fprintf(w, "\n%d of %d bought\n", bought, total)
	return exitOK
}

func runShoppingAdd(ctx context.Context, w io.Writer, rawListID, name string) int {
	in := shopItemInput
	in.Item = name
	if shopPriority != "" {
		p, err := models.ParsePriority(shopPriority)
		if err != nil {
			return fail(w, err)
		}
		in.Priority = p
	}

	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	listID, err := parseID(rawListID)
	if err != nil {
		return fail(w, err)
	}
	items := hooks.NewShoppingItems(e.client, e.cache, listID)
	if err := items.Add(ctx, in); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Added %s to list %d\n", name, listID)
	return exitOK
}

func runShoppingToggle(ctx context.Context, w io.Writer, rawListID, rawItemID string) int {
	itemID, err := parseID(rawItemID)
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

	items, err := loadShoppingItems(ctx, e, rawListID)
	if err != nil {
		return fail(w, err)
	}
	if err := items.Toggle(ctx, itemID); err != nil {
		return fail(w, err)
	}

	for _, item := range items.Items() {
		if item.ID == itemID {
			if IsJSONOutput() {
				writeJSON(w, item)
			} else {
				fmt.Fprintf(w, "%s is now %s\n", item.Item, item.Status)
			}
		}
	}
	return exitOK
}

func runShoppingRemove(ctx context.Context, w io.Writer, rawListID, rawItemID string) int {
	itemID, err := parseID(rawItemID)
	if err != nil {
		return fail(w, err)
	}
	listID, err := parseID(rawListID)
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

	items := hooks.NewShoppingItems(e.client, e.cache, listID)
	if err := items.Delete(ctx, itemID); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Removed item %d\n", itemID)
	return exitOK
}

func formatShoppingListsHuman(lists []models.ShoppingList) string {
	if len(lists) == 0 {
		return "No shopping lists yet. Create one with `grocery shopping create NAME`."
	}
	rows := make([][]string, 0, len(lists))
	for _, l := range lists {
		family := ""
		if l.Family != nil {
			family = l.Family.Name
		} else if id := l.OwnerFamilyID(); id > 0 {
			family = strconv.Itoa(id)
		}
		rows = append(rows, []string{strconv.Itoa(l.ID), l.Name, family})
	}
	return formatTable([]string{"ID", "NAME", "FAMILY"}, rows)
}

func formatShoppingItemsHuman(items []models.ShoppingListItem) string {
	if len(items) == 0 {
		return "No items on this list"
	}
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		mark := "[ ]"
		if i.Status == models.StatusBought {
			mark = "[x]"
		}
		rows = append(rows, []string{mark, strconv.Itoa(i.ID), i.Item, strconv.Itoa(i.Quantity), i.Category, string(i.Priority)})
	}
	return formatTable([]string{"", "ID", "ITEM", "QTY", "CATEGORY", "PRIORITY"}, rows)
}
