package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.Local)

func daysFromNow(n int) string {
	return testNow.AddDate(0, 0, n).Format(DateLayout)
}

func TestDaysUntilExpiry(t *testing.T) {
	tests := []struct {
		offset int
		want   int
	}{
		{-1, -1},
		{0, 0},
		{1, 1},
		{3, 3},
		{30, 30},
	}
	for _, tt := range tests {
		item := InventoryItem{ID: 1, ExpiryDate: daysFromNow(tt.offset)}
		got, err := item.DaysUntilExpiry(testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("DaysUntilExpiry(today%+d) = %d, expected %d", tt.offset, got, tt.want)
		}
	}
}

func TestDaysUntilExpiry_InvalidDate(t *testing.T) {
	item := InventoryItem{ID: 7, ExpiryDate: "next week"}
	if _, err := item.DaysUntilExpiry(testNow); err == nil {
		t.Error("expected error for malformed expiry date")
	}
	if item.IsExpired(testNow) || item.IsNearExpiry(testNow, 3) {
		t.Error("expected malformed expiry date to match neither expired nor near-expiry")
	}
}

func TestExpiredIsNotNearExpiry(t *testing.T) {
	item := InventoryItem{ID: 1, ExpiryDate: daysFromNow(-1)}
	if !item.IsExpired(testNow) {
		t.Error("expected item that expired yesterday to be expired")
	}
	if item.IsNearExpiry(testNow, 3) {
		t.Error("expected item that expired yesterday not to be near-expiry")
	}
}

func TestExpiryLabel(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "D-Day"},
		{3, "D-3"},
		{-2, "D+2"},
	}
	for _, tt := range tests {
		item := InventoryItem{ExpiryDate: daysFromNow(tt.offset)}
		if got := item.ExpiryLabel(testNow); got != tt.want {
			t.Errorf("ExpiryLabel(today%+d) = %q, expected %q", tt.offset, got, tt.want)
		}
	}
}

func TestInventoryInputValidate(t *testing.T) {
	valid := InventoryInput{
		Name:        "Milk",
		Category:    "Dairy",
		Compartment: Cooler,
		Location:    "door",
		Quantity:    2,
		ExpiryDate:  daysFromNow(5),
	}
	if err := valid.Validate(testNow); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	tests := []struct {
		name  string
		mod   func(*InventoryInput)
		field string
	}{
		{"missing name", func(in *InventoryInput) { in.Name = " " }, "name"},
		{"bad compartment", func(in *InventoryInput) { in.Compartment = "pantry" }, "compartment"},
		{"zero quantity", func(in *InventoryInput) { in.Quantity = 0 }, "quantity"},
		{"past expiry", func(in *InventoryInput) { in.ExpiryDate = daysFromNow(-1) }, "expiry_date"},
		{"malformed expiry", func(in *InventoryInput) { in.ExpiryDate = "10/03/2026" }, "expiry_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mod(&in)
			err := in.Validate(testNow)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}

func TestExpiryTodayIsAccepted(t *testing.T) {
	in := InventoryInput{Name: "Tofu", Category: "Protein", Compartment: Cooler, Location: "shelf", Quantity: 1, ExpiryDate: daysFromNow(0)}
	if err := in.Validate(testNow); err != nil {
		t.Errorf("expected expiry today to be accepted, got %v", err)
	}
}

func TestItemStatusToggled(t *testing.T) {
	if StatusPending.Toggled() != StatusBought {
		t.Error("expected pending to toggle to bought")
	}
	if StatusBought.Toggled().Toggled() != StatusBought {
		t.Error("expected two toggles to return to bought")
	}
}

func TestShoppingItemInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      ShoppingItemInput
		wantErr bool
	}{
		{"valid", ShoppingItemInput{ShoppingListID: 1, Item: "Eggs", Quantity: 12}, false},
		{"no list", ShoppingItemInput{Item: "Eggs", Quantity: 12}, true},
		{"no item", ShoppingItemInput{ShoppingListID: 1, Quantity: 1}, true},
		{"zero quantity", ShoppingItemInput{ShoppingListID: 1, Item: "Eggs"}, true},
		{"bad status", ShoppingItemInput{ShoppingListID: 1, Item: "Eggs", Quantity: 1, Status: "lost"}, true},
		{"bad priority", ShoppingItemInput{ShoppingListID: 1, Item: "Eggs", Quantity: 1, Priority: "urgent"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestShoppingListItemListID(t *testing.T) {
	var item ShoppingListItem
	if err := json.Unmarshal([]byte(`{"id":3,"item":"Eggs","quantity":12,"status":"pending","shopping_list":{"id":9,"name":"Weekly"}}`), &item); err != nil {
		t.Fatal(err)
	}
	if item.ListID() != 9 {
		t.Errorf("expected list id from nested record, got %d", item.ListID())
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	ok := RegisterRequest{Username: "alice", Password: "correct-horse", Email: "alice@example.com"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}

	short := ok
	short.Password = "123"
	if err := short.Validate(); err == nil {
		t.Error("expected short password to fail")
	}

	badEmail := ok
	badEmail.Email = "alice"
	if err := badEmail.Validate(); err == nil {
		t.Error("expected malformed email to fail")
	}

	badUser := ok
	badUser.Username = "a b"
	if err := badUser.Validate(); err == nil {
		t.Error("expected username with space to fail")
	}
}

func TestUserValid(t *testing.T) {
	var nilUser *User
	if nilUser.Valid() {
		t.Error("expected nil user to be invalid")
	}
	if (&User{Username: "bob"}).Valid() {
		t.Error("expected user without id to be invalid")
	}
	if !(&User{ID: 1, Username: "bob"}).Valid() {
		t.Error("expected user with id and username to be valid")
	}
}

func TestMealsWith(t *testing.T) {
	pho := &Recipe{ID: 1, Name: "Pho"}
	var m Meals
	if !m.Empty() {
		t.Error("expected zero meals to be empty")
	}
	m = m.With(Dinner, pho)
	if m.Get(Dinner) != pho {
		t.Error("expected dinner to be set")
	}
	if m.Empty() {
		t.Error("expected meals with dinner not to be empty")
	}
	if m.With(Dinner, nil).Empty() != true {
		t.Error("expected clearing the only slot to leave meals empty")
	}
}

func TestRecipeInputValidate(t *testing.T) {
	in := RecipeInput{
		Name:         "Omelette",
		Ingredients:  []string{"eggs"},
		Instructions: []string{"whisk", "fry"},
		Servings:     1,
		Difficulty:   DifficultyEasy,
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid recipe, got %v", err)
	}
	in.Difficulty = "extreme"
	if err := in.Validate(); err == nil {
		t.Error("expected unknown difficulty to fail")
	}
}

func TestSuggestCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Milk", "Dairy"},
		{"almond milk", "Dairy"},
		{"vanilla ice cream", "Frozen"},
		{"chicken breast", "Meat"},
		{"strawberries", "Fruit"},
		{"", DefaultCategory},
		{"batteries", DefaultCategory},
	}
	for _, tt := range tests {
		if got := SuggestCategory(tt.in); got != tt.want {
			t.Errorf("SuggestCategory(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := SanitizeForLog("bad\nvalue\x7f"); got != "badvalue" {
		t.Errorf("expected control characters removed, got %q", got)
	}
}
