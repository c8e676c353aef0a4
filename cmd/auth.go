// ABOUTME: Session commands for the grocery CLI
// ABOUTME: login, logout, register, whoami and profile

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string

	registerInput models.RegisterRequest
	profileInput  models.ProfileUpdate
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long: `Log in to the backend and store the session tokens locally.

The password is prompted for when --password is omitted.`,
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			if loginUsername == "" || loginPassword == "" {
				if err := promptCredentials(&loginUsername, &loginPassword); err != nil {
					fmt.Fprintf(w, "Error: %v\n", err)
					return exitUsage
				}
			}
			return runLogin(ctx, w)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runLogout)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runRegister)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user as the server sees it",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runWhoami)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your own profile",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runProfile)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd, profileCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerInput.Username, "username", "", "Username")
	registerCmd.Flags().StringVar(&registerInput.Password, "password", "", "Password")
	registerCmd.Flags().StringVar(&registerInput.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerInput.FullName, "full-name", "", "Full name")
	registerCmd.Flags().IntVar(&registerInput.Age, "age", 0, "Age")
	registerCmd.Flags().StringVar(&registerInput.PhoneNumber, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&registerInput.Address, "address", "", "Address")

	profileCmd.Flags().StringVar(&profileInput.FullName, "full-name", "", "Full name")
	profileCmd.Flags().StringVar(&profileInput.Email, "email", "", "Email address")
	profileCmd.Flags().IntVar(&profileInput.Age, "age", 0, "Age")
	profileCmd.Flags().StringVar(&profileInput.PhoneNumber, "phone", "", "Phone number")
	profileCmd.Flags().StringVar(&profileInput.Address, "address", "", "Address")
}

// promptCredentials asks for whichever of username and password is missing
func promptCredentials(username, password *string) error {
	var fields []huh.Field
	if *username == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(username))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func runLogin(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()

	state := e.store.Login(ctx, loginUsername, loginPassword)
	if !state.IsAuthenticated() {
		fmt.Fprintf(w, "Error: login failed: %s\n", state.Reason)
		return exitFailure
	}

	if IsJSONOutput() {
		writeJSON(w, state.User)
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", state.User.DisplayName())
	}
	return exitOK
}

func runLogout(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()

	if err := e.store.Logout(ctx); err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "Logged out")
	return exitOK
}

func runRegister(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()

	user, err := e.client.Register(ctx, registerInput)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, user)
	} else {
		fmt.Fprintf(w, "Registered %s. Run `grocery login` to sign in.\n", user.Username)
	}
	return exitOK
}

func runWhoami(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()

	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}
	state, err := e.store.Verify(ctx)
	if err != nil {
		return fail(w, err)
	}
	if !state.IsAuthenticated() {
		fmt.Fprintln(w, "Error: session expired, run `grocery login`.")
		return exitReauth
	}

	if IsJSONOutput() {
		writeJSON(w, state.User)
	} else {
		fmt.Fprintln(w, formatUserHuman(state))
	}
	return exitOK
}

func runProfile(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()

	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}
	user, err := e.client.UpdateProfile(ctx, profileInput)
	if err != nil {
		return fail(w, err)
	}
	if err := e.store.SetUser(user); err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, user)
	} else {
		fmt.Fprintln(w, "Profile updated")
	}
	return exitOK
}

// formatUserHuman formats the session user for human readability
func formatUserHuman(state session.State) string {
	u := state.User
	role := "member"
	if state.IsAdmin() {
		role = "admin"
	}
	family := "none"
	if u.HasFamily() {
		family = fmt.Sprintf("%d", *u.FamilyID)
	}

	lines := []string{
		fmt.Sprintf("Username:  %s", u.Username),
		fmt.Sprintf("Name:      %s", u.DisplayName()),
		fmt.Sprintf("Email:     %s", u.Email),
		fmt.Sprintf("Role:      %s", role),
		fmt.Sprintf("Family:    %s", family),
	}
	return strings.Join(lines, "\n")
}
