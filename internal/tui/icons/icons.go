// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	if env := os.Getenv("GROCERY_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Views
	Fridge   = Icon{"󰍔", "▤"} // nf-md-fridge
	Freezer  = Icon{"󰜗", "❄"} // nf-md-snowflake
	Cart     = Icon{"󰄐", "▣"} // nf-md-cart
	Recipe   = Icon{"󰩰", "≡"} // nf-md-chef_hat
	Calendar = Icon{"󰃭", "▦"} // nf-md-calendar
	Family   = Icon{"󰀎", "☺"} // nf-md-account_group
	User     = Icon{"󰀄", "◉"} // nf-md-account
	Shield   = Icon{"󰒃", "⛊"} // nf-md-shield_check
	Tag      = Icon{"󰓹", "#"} // nf-md-tag
	Inbox    = Icon{"󰚇", "✉"} // nf-md-inbox
	Gauge    = Icon{"󰓅", "◐"} // nf-md-gauge
	Trash    = Icon{"󰩹", "⌫"} // nf-md-trash_can
	Money    = Icon{"󰄔", "$"} // nf-md-cash

	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Menu    = Icon{"󰍜", "☰"} // nf-md-menu

	App = Icon{"󰁩", "◈"} // nf-md-basket
)
