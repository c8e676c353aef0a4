// ABOUTME: Shopping list and shopping list item models
// ABOUTME: Items belong to exactly one list and move between pending and bought

package models

import "strings"

// ItemStatus is the purchase state of a shopping list item
type ItemStatus string

const (
	StatusPending ItemStatus = "pending"
	StatusBought  ItemStatus = "bought"
)

// Toggled returns the opposite status
func (s ItemStatus) Toggled() ItemStatus {
	if s == StatusBought {
		return StatusPending
	}
	return StatusBought
}

// Priority is an optional urgency marker on shopping items
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ShoppingList groups items for a family
type ShoppingList struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Family    *Family `json:"family,omitempty"`
	FamilyID  int     `json:"family_id,omitempty"`
	CreatedBy *User   `json:"created_by,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// OwnerFamilyID returns the owning family from either the nested record or the id field
func (l ShoppingList) OwnerFamilyID() int {
	if l.Family != nil {
		return l.Family.ID
	}
	return l.FamilyID
}

// ShoppingListInput creates or renames a list
type ShoppingListInput struct {
	Name      string `json:"name"`
	FamilyID  int    `json:"family_id,omitempty"`
	CreatedBy int    `json:"created_by,omitempty"`
}

func (in ShoppingListInput) Validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	return maxLen("name", in.Name, 255)
}

// ShoppingListItem is a single entry on a list
type ShoppingListItem struct {
	ID             int           `json:"id"`
	ShoppingListID int           `json:"shopping_list_id,omitempty"`
	ShoppingList   *ShoppingList `json:"shopping_list,omitempty"`
	Item           string        `json:"item"`
	Quantity       int           `json:"quantity"`
	Category       string        `json:"category,omitempty"`
	Status         ItemStatus    `json:"status"`
	Priority       Priority      `json:"priority,omitempty"`
}

// ListID returns the owning list from either the id field or the nested record
func (i ShoppingListItem) ListID() int {
	if i.ShoppingListID != 0 {
		return i.ShoppingListID
	}
	if i.ShoppingList != nil {
		return i.ShoppingList.ID
	}
	return 0
}

// Input converts an item into its update payload
func (i ShoppingListItem) Input() ShoppingItemInput {
	return ShoppingItemInput{
		ShoppingListID: i.ListID(),
		Item:           i.Item,
		Quantity:       i.Quantity,
		Category:       i.Category,
		Status:         i.Status,
		Priority:       i.Priority,
	}
}

// ShoppingItemInput creates or updates an item
type ShoppingItemInput struct {
	ShoppingListID int        `json:"shopping_list_id"`
	Item           string     `json:"item"`
	Quantity       int        `json:"quantity"`
	Category       string     `json:"category,omitempty"`
	Status         ItemStatus `json:"status,omitempty"`
	Priority       Priority   `json:"priority,omitempty"`
}

func (in ShoppingItemInput) Validate() error {
	if in.ShoppingListID <= 0 {
		return invalid("shopping_list_id", "is required")
	}
	if err := required("item", in.Item); err != nil {
		return err
	}
	if err := maxLen("item", in.Item, 255); err != nil {
		return err
	}
	if in.Quantity <= 0 {
		return invalid("quantity", "must be greater than 0")
	}
	switch in.Status {
	case "", StatusPending, StatusBought:
	default:
		return invalid("status", "must be pending or bought")
	}
	switch in.Priority {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return invalid("priority", "must be low, medium or high")
	}
	return nil
}

// ParsePriority accepts the wire value case-insensitively; empty is allowed
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", invalid("priority", "must be low, medium or high")
}
