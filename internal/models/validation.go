// ABOUTME: Client-side validation helpers shared by all write payloads
// ABOUTME: Validation failures are reported before any request is sent

package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format used by the backend
const DateLayout = "2006-01-02"

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.@+-]{3,150}$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)
)

// ValidationError reports a missing or malformed field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// SanitizeForLog removes control characters from strings to prevent log
// injection when including user input in messages
func SanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func maxLen(field, value string, n int) error {
	if len(value) > n {
		return invalid(field, "must be at most %d characters", n)
	}
	return nil
}

// ValidateEmail checks the email shape; empty is rejected
func ValidateEmail(field, email string) error {
	if err := required(field, email); err != nil {
		return err
	}
	if !emailPattern.MatchString(email) {
		return invalid(field, "invalid email address: %s", SanitizeForLog(email))
	}
	return nil
}

// ValidateUsername checks the username charset and length
func ValidateUsername(username string) error {
	if err := required("username", username); err != nil {
		return err
	}
	if !usernamePattern.MatchString(username) {
		return invalid("username", "must be 3-150 letters, digits or _.@+-")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date in the local time zone
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func validDate(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if _, err := ParseDate(value); err != nil {
		return invalid(field, "must be a date in YYYY-MM-DD form, got %q", SanitizeForLog(value))
	}
	return nil
}

// Truncate returns the calendar day containing t
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
