// ABOUTME: Admin commands for the grocery CLI
// ABOUTME: User management, inventory categories and content moderation behind the admin guard

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/guard"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
	"github.com/spf13/cobra"
)

var (
	adminPage         int
	adminSearch       string
	adminStatus       string
	adminRejectReason string
	adminUserInput    models.UserInput
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator tools",
	Long: `Administrator tools. Every subcommand re-verifies the session with
the server and requires an administrator account.`,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runAdminUsers)
	},
}

var adminCreateUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runAdminCreateUser)
	},
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user ID",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runAdminDeleteUser(ctx, w, args[0])
		})
	},
}

var adminPromoteCmd = &cobra.Command{
	Use:   "promote ID",
	Short: "Grant administrator rights",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runAdminSetAdmin(ctx, w, args[0], true)
		})
	},
}

var adminDemoteCmd = &cobra.Command{
	Use:   "demote ID",
	Short: "Revoke administrator rights",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runAdminSetAdmin(ctx, w, args[0], false)
		})
	},
}

var adminCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List inventory categories",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runAdminCategories)
	},
}

var adminAddCategoryCmd = &cobra.Command{
	Use:   "add-category NAME",
	Short: "Add an inventory category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runAdminAddCategory(ctx, w, args[0])
		})
	},
}

var adminDeleteCategoryCmd = &cobra.Command{
	Use:   "delete-category ID",
	Short: "Delete an inventory category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runAdminDeleteCategory(ctx, w, args[0])
		})
	},
}

var adminModerationCmd = &cobra.Command{
	Use:   "moderation",
	Short: "Show the content review queue",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runAdminModeration)
	},
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve ID",
	Short: "Approve reported content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runAdminReview(ctx, w, args[0], true)
		})
	},
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject ID",
	Short: "Reject reported content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runAdminReview(ctx, w, args[0], false)
		})
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd, adminCreateUserCmd, adminDeleteUserCmd, adminPromoteCmd, adminDemoteCmd,
		adminCategoriesCmd, adminAddCategoryCmd, adminDeleteCategoryCmd,
		adminModerationCmd, adminApproveCmd, adminRejectCmd)

	adminUsersCmd.Flags().IntVar(&adminPage, "page", 1, "Page number")
	adminUsersCmd.Flags().StringVar(&adminSearch, "search", "", "Server-side search on username, name or email")

	f := adminCreateUserCmd.Flags()
	f.StringVar(&adminUserInput.Username, "username", "", "Username")
	f.StringVar(&adminUserInput.Password, "password", "", "Initial password")
	f.StringVar(&adminUserInput.Email, "email", "", "Email address")
	f.StringVar(&adminUserInput.FullName, "full-name", "", "Full name")

	adminModerationCmd.Flags().StringVar(&adminStatus, "status", string(models.ModerationPending), "pending, approved or rejected")
	adminRejectCmd.Flags().StringVar(&adminRejectReason, "reason", "", "Reason shown to the author")
}

// requireAdmin verifies the session with the server and applies the
// route guard for path. ok is false once a message has been written.
func (e *env) requireAdmin(ctx context.Context, w io.Writer, path string) (session.State, int, bool) {
	if _, ok := e.requireSession(w); !ok {
		return session.State{}, exitReauth, false
	}
	state, err := e.store.Verify(ctx)
	if err != nil {
		return state, fail(w, err), false
	}

	d := guard.Decide(path, state)
	if d.Allowed {
		return state, exitOK, true
	}
	if d.Redirect == guard.LoginPath {
		fmt.Fprintln(w, "Error: session expired, run `grocery login`.")
		return state, exitReauth, false
	}
	fmt.Fprintln(w, "Error: administrator access required")
	return state, exitFailure, false
}

func runAdminUsers(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	state, code, ok := e.requireAdmin(ctx, w, "/admin/users")
	if !ok {
		return code
	}

	users := hooks.NewUsers(e.client, state.User.ID)
	if err := users.Query(ctx, adminSearch); err != nil {
		return fail(w, err)
	}
	if adminPage > 1 {
		if err := users.GoTo(ctx, adminPage); err != nil {
			return fail(w, err)
		}
	}

	if IsJSONOutput() {
		writeJSON(w, map[string]interface{}{
			"page":    users.Page(),
			"pages":   users.Pages(),
			"total":   users.Total(),
			"results": users.Items(),
		})
		return exitOK
	}
	fmt.Fprintln(w, formatUsersHuman(users.Items()))
	fmt.Fprintf(w, "\nPage %d of %d (%d users)\n", users.Page(), users.Pages(), users.Total())
	return exitOK
}

func runAdminCreateUser(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	state, code, ok := e.requireAdmin(ctx, w, "/admin/users")
	if !ok {
		return code
	}

	users := hooks.NewUsers(e.client, state.User.ID)
	if err := users.Create(ctx, adminUserInput); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Created user %s\n", adminUserInput.Username)
	return exitOK
}

func runAdminDeleteUser(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		return fail(w, err)
	}
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	state, code, ok := e.requireAdmin(ctx, w, "/admin/users")
	if !ok {
		return code
	}

	users := hooks.NewUsers(e.client, state.User.ID)
	if err := users.Delete(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted user %d\n", id)
	return exitOK
}

func runAdminSetAdmin(ctx context.Context, w io.Writer, rawID string, admin bool) int {
	id, err := parseID(rawID)
	if err != nil {
		return fail(w, err)
	}
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	state, code, ok := e.requireAdmin(ctx, w, "/admin/users")
	if !ok {
		return code
	}

	users := hooks.NewUsers(e.client, state.User.ID)
	if err := users.SetAdmin(ctx, id, admin); err != nil {
		return fail(w, err)
	}
	if admin {
		fmt.Fprintf(w, "User %d is now an administrator\n", id)
	} else {
		fmt.Fprintf(w, "User %d is no longer an administrator\n", id)
	}
	return exitOK
}

func runAdminCategories(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, code, ok := e.requireAdmin(ctx, w, "/admin/categories"); !ok {
		return code
	}

	cats := hooks.NewCategories(e.client, e.cache)
	if err := cats.Load(ctx); err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, cats.Items())
		return exitOK
	}
	rows := make([][]string, 0, cats.Len())
	for _, c := range cats.Items() {
		rows = append(rows, []string{strconv.Itoa(c.ID), c.Name})
	}
	fmt.Fprintln(w, formatTable([]string{"ID", "NAME"}, rows))
	return exitOK
}

func runAdminAddCategory(ctx context.Context, w io.Writer, name string) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, code, ok := e.requireAdmin(ctx, w, "/admin/categories"); !ok {
		return code
	}

	cats := hooks.NewCategories(e.client, e.cache)
	if err := cats.Load(ctx); err != nil {
		return fail(w, err)
	}
	if err := cats.Create(ctx, name); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Added category %s\n", name)
	return exitOK
}

func runAdminDeleteCategory(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		return fail(w, err)
	}
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, code, ok := e.requireAdmin(ctx, w, "/admin/categories"); !ok {
		return code
	}

	cats := hooks.NewCategories(e.client, e.cache)
	if err := cats.Delete(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted category %d\n", id)
	return exitOK
}

func runAdminModeration(ctx context.Context, w io.Writer) int {
	status, err := models.ParseModerationStatus(adminStatus)
	if err != nil {
		return fail(w, err)
	}
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, code, ok := e.requireAdmin(ctx, w, "/admin/moderation"); !ok {
		return code
	}

	queue := hooks.NewModeration(e.client, e.cache, status)
	if err := queue.Load(ctx); err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, queue.Items())
		return exitOK
	}
	if queue.Len() == 0 {
		fmt.Fprintf(w, "No %s content\n", status)
		return exitOK
	}
	rows := make([][]string, 0, queue.Len())
	for _, item := range queue.Items() {
		rows = append(rows, []string{strconv.Itoa(item.ID), item.Kind, item.Author, truncate(item.Content, 48)})
	}
	fmt.Fprintln(w, formatTable([]string{"ID", "KIND", "AUTHOR", "CONTENT"}, rows))
	return exitOK
}

func runAdminReview(ctx context.Context, w io.Writer, rawID string, approve bool) int {
	id, err := parseID(rawID)
	if err != nil {
		return fail(w, err)
	}
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, code, ok := e.requireAdmin(ctx, w, "/admin/moderation"); !ok {
		return code
	}

	queue := hooks.NewModeration(e.client, e.cache, models.ModerationPending)
	if approve {
		err = queue.Approve(ctx, id)
	} else {
		err = queue.Reject(ctx, id, adminRejectReason)
	}
	if err != nil {
		return fail(w, err)
	}

	verb := "Rejected"
	if approve {
		verb = "Approved"
	}
	fmt.Fprintf(w, "%s item %d\n", verb, id)
	return exitOK
}

func formatUsersHuman(users []models.User) string {
	if len(users) == 0 {
		return "No users found"
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		role := "member"
		if u.IsAdmin {
			role = "admin"
		}
		rows = append(rows, []string{strconv.Itoa(u.ID), u.Username, u.FullName, u.Email, role})
	}
	return formatTable([]string{"ID", "USERNAME", "NAME", "EMAIL", "ROLE"}, rows)
}
