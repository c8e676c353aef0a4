// ABOUTME: Family commands for the grocery CLI
// ABOUTME: Lists families with their members and manages membership records

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var memberInput models.FamilyMemberInput

var familyCmd = &cobra.Command{
	Use:   "family",
	Short: "Manage families and their members",
}

var familyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show families and members",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runFamilyList)
	},
}

var familyCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a family",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runFamilyCreate(ctx, w, args[0])
		})
	},
}

var familyAddMemberCmd = &cobra.Command{
	Use:   "add-member",
	Short: "Add a member record to a family",
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(runFamilyAddMember)
	},
}

var familyRemoveMemberCmd = &cobra.Command{
	Use:   "remove-member ID",
	Short: "Remove a member record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAndExit(func(ctx context.Context, w io.Writer) int {
			return runFamilyRemoveMember(ctx, w, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(familyCmd)
	familyCmd.AddCommand(familyListCmd, familyCreateCmd, familyAddMemberCmd, familyRemoveMemberCmd)

	f := familyAddMemberCmd.Flags()
	f.StringVar(&memberInput.Name, "name", "", "Member name")
	f.StringVar(&memberInput.Email, "email", "", "Email address")
	f.StringVar(&memberInput.Relationship, "relationship", "", "e.g. parent, child, spouse")
	f.IntVar(&memberInput.Age, "age", 0, "Age")
	f.IntVar(&memberInput.FamilyID, "family", 0, "Family id (default: your own family)")
}

func runFamilyList(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	families := hooks.NewFamilies(e.client, e.cache)
	members := hooks.NewFamilyMembers(e.client, e.cache)

	var g errgroup.Group
	g.Go(func() error { return families.Load(ctx) })
	g.Go(func() error { return members.Load(ctx) })
	if err := g.Wait(); err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, map[string]interface{}{
			"families": families.Items(),
			"members":  members.Items(),
		})
	} else {
		fmt.Fprintln(w, formatFamiliesHuman(families, members.ByFamily()))
	}
	return exitOK
}

func runFamilyCreate(ctx context.Context, w io.Writer, name string) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	if _, ok := e.requireSession(w); !ok {
		return exitReauth
	}

	families := hooks.NewFamilies(e.client, e.cache)
	if err := families.Create(ctx, name); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Created family %s\n", name)
	return exitOK
}

func runFamilyAddMember(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()
	state, ok := e.requireSession(w)
	if !ok {
		return exitReauth
	}

	in := memberInput
	if in.FamilyID == 0 && state.User.HasFamily() {
		in.FamilyID = *state.User.FamilyID
	}
	members := hooks.NewFamilyMembers(e.client, e.cache)
	if err := members.Add(ctx, in); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Added %s to family %d\n", in.Name, in.FamilyID)
	return exitOK
}

func runFamilyRemoveMember(ctx context.Context, w io.Writer, rawID string) int {
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

	if err := e.client.DeleteFamilyMember(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Removed member %d\n", id)
	return exitOK
}

// formatFamiliesHuman lists each family followed by its members
func formatFamiliesHuman(families *hooks.Families, groups []hooks.FamilyGroup) string {
	if families.Len() == 0 && len(groups) == 0 {
		return "No families yet. Create one with `grocery family create NAME`."
	}

	byID := make(map[int][]models.FamilyMember, len(groups))
	for _, g := range groups {
		byID[g.FamilyID] = g.Members
	}

	var sb strings.Builder
	for _, f := range families.Items() {
		sb.WriteString(fmt.Sprintf("%s (id %d)\n", f.Name, f.ID))
		members := byID[f.ID]
		if len(members) == 0 {
			sb.WriteString("  no members\n")
		}
		for _, m := range members {
			sb.WriteString(fmt.Sprintf("  %-4s %-20s %-12s %s\n", strconv.Itoa(m.ID), m.Name, m.Relationship, m.Email))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
