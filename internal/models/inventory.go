// ABOUTME: Fridge inventory models and expiry date arithmetic
// ABOUTME: Near-expiry and expired status are derived from expiry_date, never stored

package models

import (
	"fmt"
	"strings"
	"time"
)

// Compartment is the fridge section an item is stored in
type Compartment string

const (
	Cooler  Compartment = "cooler"
	Freezer Compartment = "freezer"
)

// Compartments lists every valid compartment in display order
var Compartments = []Compartment{Cooler, Freezer}

// ParseCompartment accepts the wire value case-insensitively
func ParseCompartment(s string) (Compartment, error) {
	switch Compartment(strings.ToLower(strings.TrimSpace(s))) {
	case Cooler:
		return Cooler, nil
	case Freezer:
		return Freezer, nil
	}
	return "", invalid("compartment", "must be cooler or freezer, got %q", SanitizeForLog(s))
}

// InventoryItem is one food entry in the fridge
type InventoryItem struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	Compartment    Compartment `json:"compartment"`
	Location       string      `json:"location"`
	Quantity       int         `json:"quantity"`
	RegisteredDate string      `json:"registered_date,omitempty"`
	ExpiryDate     string      `json:"expiry_date"`
	Note           string      `json:"note"`
}

// DaysUntilExpiry returns ceil((expiry - now) / 1 day). An item expiring
// later today yields 0 and one that expired yesterday yields -1.
func (i InventoryItem) DaysUntilExpiry(now time.Time) (int, error) {
	expiry, err := ParseDate(i.ExpiryDate)
	if err != nil {
		return 0, fmt.Errorf("item %d has invalid expiry date %q: %w", i.ID, SanitizeForLog(i.ExpiryDate), err)
	}
	return daysBetween(Truncate(now), expiry), nil
}

// IsExpired reports expiry < today on the calendar
func (i InventoryItem) IsExpired(now time.Time) bool {
	days, err := i.DaysUntilExpiry(now)
	return err == nil && days < 0
}

// IsNearExpiry reports 0 <= days until expiry <= window
func (i InventoryItem) IsNearExpiry(now time.Time, window int) bool {
	days, err := i.DaysUntilExpiry(now)
	return err == nil && days >= 0 && days <= window
}

// ExpiryLabel renders the D-N / D-Day / D+N countdown shown next to items
func (i InventoryItem) ExpiryLabel(now time.Time) string {
	days, err := i.DaysUntilExpiry(now)
	switch {
	case err != nil:
		return "?"
	case days == 0:
		return "D-Day"
	case days > 0:
		return fmt.Sprintf("D-%d", days)
	default:
		return fmt.Sprintf("D+%d", -days)
	}
}

// InventoryInput is the create/update payload for an inventory item
type InventoryInput struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Compartment Compartment `json:"compartment"`
	Location    string      `json:"location"`
	Quantity    int         `json:"quantity"`
	ExpiryDate  string      `json:"expiry_date"`
	Note        string      `json:"note"`
}

// Validate mirrors the server rules: quantity above zero and an expiry
// date that is not already in the past.
func (in InventoryInput) Validate(now time.Time) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if err := maxLen("name", in.Name, 100); err != nil {
		return err
	}
	if err := required("category", in.Category); err != nil {
		return err
	}
	if _, err := ParseCompartment(string(in.Compartment)); err != nil {
		return err
	}
	if err := required("location", in.Location); err != nil {
		return err
	}
	if err := maxLen("location", in.Location, 50); err != nil {
		return err
	}
	if in.Quantity <= 0 {
		return invalid("quantity", "must be greater than 0")
	}
	if err := validDate("expiry_date", in.ExpiryDate); err != nil {
		return err
	}
	expiry, _ := ParseDate(in.ExpiryDate)
	if expiry.Before(Truncate(now)) {
		return invalid("expiry_date", "must not be in the past")
	}
	return nil
}

// Input converts an existing item into an update payload
func (i InventoryItem) Input() InventoryInput {
	return InventoryInput{
		Name:        i.Name,
		Category:    i.Category,
		Compartment: i.Compartment,
		Location:    i.Location,
		Quantity:    i.Quantity,
		ExpiryDate:  i.ExpiryDate,
		Note:        i.Note,
	}
}

// Category is an inventory category managed by admins
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryInput creates a category
type CategoryInput struct {
	Name string `json:"name"`
}

func (c CategoryInput) Validate() error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	return maxLen("name", c.Name, 50)
}

func daysBetween(from, to time.Time) int {
	// Compare in UTC to avoid DST making a day 23 or 25 hours long
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
