// ABOUTME: Header and footer chrome drawn around every screen
// ABOUTME: Shows the signed-in user, the current view and its key bindings

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/guard"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/icons"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// frameWidth is one column short of the terminal so the last column never
// wraps, but never below minTerminalWidth
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Smart Grocery"))

	var crumbs []string
	if r, ok := guard.Lookup(a.route); ok && a.screen != ScreenMenu {
		crumbs = append(crumbs, r.Title)
	}
	if a.state.IsAuthenticated() {
		user := a.state.User.Username
		if a.state.IsAdmin() {
			user += " (admin)"
		}
		crumbs = append(crumbs, user)
	}
	rightText := ""
	if len(crumbs) > 0 {
		rightText = " " + contextStyle.Render(strings.Join(crumbs, " | ")) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// shortcuts lists the key bindings for what currently has the keyboard
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenMenu:
		return []string{"↑↓ Navigate", "Enter Open", "Esc Close"}
	case ScreenForm:
		return []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	}
	if a.searching {
		return []string{"Enter Search", "Esc Cancel"}
	}

	var keys []string
	switch a.route {
	case routeInventory:
		keys = []string{"a Add", "e Edit", "d Delete", "Tab Compartment", "w Expiring", "x Expired", "/ Search"}
	case routeShopping:
		if a.items != nil {
			keys = []string{"a Add", "Space Toggle", "d Remove", "b Back"}
		} else {
			keys = []string{"Enter Open", "n New", "d Delete"}
		}
	case routeRecipes:
		keys = []string{"Enter Details", "a Add", "d Delete", "/ Search"}
	case routeMeals:
		keys = []string{"s Plan", "1-3 Clear", "[ ] Week"}
	case routeFamily:
		keys = []string{"n New family", "a Add member", "d Remove"}
	case routeProfile:
		keys = []string{"e Edit"}
	case routeAdmin:
		keys = []string{"u Users", "c Categories", "v Moderation", "p Performance"}
	case routeUsers:
		keys = []string{"a Add", "d Delete", "A Admin", "←→ Page", "/ Search"}
	case routeCategories:
		keys = []string{"a Add", "d Delete"}
	case routeModeration:
		keys = []string{"y Approve", "n Reject", "Tab Filter"}
	}
	return append(keys, "r Refresh", "m Menu", "L Logout", "q Quit")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	// Right side status (last update time)
	rightText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenView {
		rightText = statusStyle.Render("Updated "+a.formatTimeSince(a.lastUpdate)) + " "
	}

	// Drop trailing shortcuts until the line fits
	shortcuts := a.shortcuts()
	var leftText string
	for len(shortcuts) > 0 {
		var styled []string
		for _, s := range shortcuts {
			parts := strings.SplitN(s, " ", 2)
			if len(parts) == 2 {
				styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
			} else {
				styled = append(styled, s)
			}
		}
		leftText = " " + strings.Join(styled, "  ") + " "
		if lipgloss.Width(leftText)+lipgloss.Width(rightText)+4 <= width {
			break
		}
		shortcuts = shortcuts[:len(shortcuts)-1]
		leftText = ""
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := a.now().Sub(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}

	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}
