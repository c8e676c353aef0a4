// ABOUTME: Form definitions for every create and edit flow in the TUI
// ABOUTME: Field validators catch obvious mistakes before the client validates again

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/charmbracelet/huh"
)

// Field keys shared with the app
const (
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldEmail        = "email"
	FieldFullName     = "full_name"
	FieldAge          = "age"
	FieldPhone        = "phone_number"
	FieldAddress      = "address"
	FieldName         = "name"
	FieldCategory     = "category"
	FieldCompartment  = "compartment"
	FieldLocation     = "location"
	FieldQuantity     = "quantity"
	FieldExpiry       = "expiry_date"
	FieldNote         = "note"
	FieldPriority     = "priority"
	FieldDescription  = "description"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
	FieldPrepTime     = "prep_time"
	FieldCookTime     = "cook_time"
	FieldServings     = "servings"
	FieldDifficulty   = "difficulty"
	FieldDate         = "date"
	FieldSlot         = "slot"
	FieldRecipe       = "recipe"
	FieldRelationship = "relationship"
	FieldRole         = "role"
	FieldReason       = "reason"
)

// Login asks for credentials. username pre-fills the last used account and
// known accounts are offered as completions.
func Login(username string, known ...string) *Wizard {
	w := newWizard(KindLogin, 0)
	user := huh.NewInput().
		Title("Username").
		Value(w.bind(FieldUsername, username)).
		Validate(requiredField)
	if len(known) > 0 {
		user = user.Suggestions(known)
	}
	w.addStep("Log in", "Log in", "Sign in to your Smart Grocery account",
		user,
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(w.bind(FieldPassword, "")).
			Validate(requiredField),
	)
	return w
}

// Register collects a new account over two steps
func Register() *Wizard {
	w := newWizard(KindRegister, 0)
	w.addStep("Account", "Account", "Choose how you sign in",
		huh.NewInput().
			Title("Username").
			Description("Letters, digits and @.+-_ only").
			Value(w.bind(FieldUsername, "")).
			Validate(models.ValidateUsername),
		huh.NewInput().
			Title("Email").
			Value(w.bind(FieldEmail, "")).
			Validate(func(s string) error { return models.ValidateEmail(FieldEmail, s) }),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(w.bind(FieldPassword, "")).
			Validate(requiredField),
	)
	w.addStep("Profile", "Profile", "Optional details shown to your family",
		huh.NewInput().
			Title("Full name").
			Value(w.bind(FieldFullName, "")),
		huh.NewInput().
			Title("Age").
			CharLimit(3).
			Value(w.bind(FieldAge, "")).
			Validate(optionalNonNegative),
		huh.NewInput().
			Title("Phone number").
			Value(w.bind(FieldPhone, "")),
	)
	return w
}

// Profile edits the signed-in user's own details
func Profile(u *models.User) *Wizard {
	if u == nil {
		u = &models.User{}
	}
	age := ""
	if u.Age > 0 {
		age = strconv.Itoa(u.Age)
	}
	w := newWizard(KindProfile, u.ID)
	w.addStep("Profile", "Edit profile", "Blank fields are left unchanged",
		huh.NewInput().
			Title("Full name").
			Value(w.bind(FieldFullName, u.FullName)),
		huh.NewInput().
			Title("Email").
			Value(w.bind(FieldEmail, u.Email)).
			Validate(optional(func(s string) error { return models.ValidateEmail(FieldEmail, s) })),
		huh.NewInput().
			Title("Age").
			CharLimit(3).
			Value(w.bind(FieldAge, age)).
			Validate(optionalNonNegative),
		huh.NewInput().
			Title("Phone number").
			Value(w.bind(FieldPhone, u.PhoneNumber)),
		huh.NewInput().
			Title("Address").
			Value(w.bind(FieldAddress, u.Address)),
	)
	return w
}

// InventoryItem adds a new item, or edits item when it is non-nil. The
// category may be left blank to have one suggested from the name.
func InventoryItem(item *models.InventoryItem, categories []string) *Wizard {
	var cur models.InventoryItem
	if item != nil {
		cur = *item
	} else {
		cur = models.InventoryItem{Compartment: models.Cooler, Quantity: 1}
	}

	w := newWizard(KindInventory, cur.ID)
	compartments := make([]huh.Option[string], 0, len(models.Compartments))
	for _, c := range models.Compartments {
		compartments = append(compartments, huh.NewOption(titleCase(string(c)), string(c)))
	}

	categoryDesc := "Leave blank to suggest one from the name"
	if len(categories) > 0 {
		categoryDesc = "e.g. " + strings.Join(firstN(categories, 4), ", ")
	}

	w.addStep("Item", "What is it", "",
		huh.NewInput().
			Title("Name").
			Value(w.bind(FieldName, cur.Name)).
			Validate(requiredField),
		huh.NewInput().
			Title("Category").
			Description(categoryDesc).
			Value(w.bind(FieldCategory, cur.Category)),
		huh.NewInput().
			Title("Quantity").
			CharLimit(5).
			Value(w.bind(FieldQuantity, strconv.Itoa(cur.Quantity))).
			Validate(validatePositiveInt),
	)
	w.addStep("Storage", "Where and until when", "",
		huh.NewSelect[string]().
			Title("Compartment").
			Options(compartments...).
			Value(w.bind(FieldCompartment, string(cur.Compartment))),
		huh.NewInput().
			Title("Location").
			Placeholder("e.g. top shelf").
			Value(w.bind(FieldLocation, cur.Location)),
		huh.NewInput().
			Title("Expiry date").
			Placeholder(models.DateLayout).
			Value(w.bind(FieldExpiry, cur.ExpiryDate)).
			Validate(validateDate),
		huh.NewInput().
			Title("Note").
			Value(w.bind(FieldNote, cur.Note)),
	)
	return w
}

// ShoppingItem adds an item to a list
func ShoppingItem(listID int) *Wizard {
	w := newWizard(KindShoppingItem, listID)
	w.addStep("Item", "Add to list", "",
		huh.NewInput().
			Title("Item").
			Value(w.bind(FieldName, "")).
			Validate(requiredField),
		huh.NewInput().
			Title("Quantity").
			CharLimit(5).
			Value(w.bind(FieldQuantity, "1")).
			Validate(validatePositiveInt),
		huh.NewInput().
			Title("Category").
			Value(w.bind(FieldCategory, "")),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("None", ""),
				huh.NewOption("Low", string(models.PriorityLow)),
				huh.NewOption("Medium", string(models.PriorityMedium)),
				huh.NewOption("High", string(models.PriorityHigh)),
			).
			Value(w.bind(FieldPriority, "")),
	)
	return w
}

// Recipe creates a recipe over three steps
func Recipe() *Wizard {
	w := newWizard(KindRecipe, 0)
	w.addStep("Basics", "Basics", "",
		huh.NewInput().
			Title("Name").
			Value(w.bind(FieldName, "")).
			Validate(requiredField),
		huh.NewInput().
			Title("Description").
			Value(w.bind(FieldDescription, "")),
		huh.NewInput().
			Title("Categories").
			Description("Comma separated").
			Value(w.bind(FieldCategory, "")),
		huh.NewSelect[string]().
			Title("Difficulty").
			Options(
				huh.NewOption("Easy", string(models.DifficultyEasy)),
				huh.NewOption("Medium", string(models.DifficultyMedium)),
				huh.NewOption("Hard", string(models.DifficultyHard)),
			).
			Value(w.bind(FieldDifficulty, string(models.DifficultyEasy))),
	)
	w.addStep("Ingredients", "Ingredients", "One per line",
		huh.NewText().
			Title("Ingredients").
			Value(w.bind(FieldIngredients, "")).
			Validate(requiredField),
		huh.NewText().
			Title("Steps").
			Value(w.bind(FieldInstructions, "")).
			Validate(requiredField),
	)
	w.addStep("Timing", "Timing", "Minutes",
		huh.NewInput().
			Title("Prep time").
			Value(w.bind(FieldPrepTime, "10")).
			Validate(optionalNonNegative),
		huh.NewInput().
			Title("Cook time").
			Value(w.bind(FieldCookTime, "20")).
			Validate(optionalNonNegative),
		huh.NewInput().
			Title("Servings").
			Value(w.bind(FieldServings, "2")).
			Validate(validatePositiveInt),
	)
	return w
}

// MealSlot schedules one of recipes into a slot on date
func MealSlot(date string, recipes []models.Recipe) *Wizard {
	w := newWizard(KindMealSlot, 0)
	slots := make([]huh.Option[string], 0, len(models.MealSlots))
	for _, s := range models.MealSlots {
		slots = append(slots, huh.NewOption(titleCase(string(s)), string(s)))
	}
	options := make([]huh.Option[string], 0, len(recipes))
	for _, r := range recipes {
		options = append(options, huh.NewOption(r.Name, strconv.Itoa(r.ID)))
	}
	initial := ""
	if len(recipes) > 0 {
		initial = strconv.Itoa(recipes[0].ID)
	}

	w.addStep("Meal", "Plan a meal", "",
		huh.NewInput().
			Title("Date").
			Value(w.bind(FieldDate, date)).
			Validate(validateDate),
		huh.NewSelect[string]().
			Title("Meal").
			Options(slots...).
			Value(w.bind(FieldSlot, string(models.Dinner))),
		huh.NewSelect[string]().
			Title("Recipe").
			Options(options...).
			Height(8).
			Value(w.bind(FieldRecipe, initial)).
			Validate(requiredField),
	)
	return w
}

// Member adds a person to familyID
func Member(familyID int) *Wizard {
	w := newWizard(KindMember, familyID)
	w.addStep("Member", "Add family member", "",
		huh.NewInput().
			Title("Name").
			Value(w.bind(FieldName, "")).
			Validate(requiredField),
		huh.NewInput().
			Title("Relationship").
			Placeholder("e.g. daughter").
			Value(w.bind(FieldRelationship, "")).
			Validate(requiredField),
		huh.NewInput().
			Title("Email").
			Value(w.bind(FieldEmail, "")).
			Validate(optional(func(s string) error { return models.ValidateEmail(FieldEmail, s) })),
		huh.NewInput().
			Title("Age").
			CharLimit(3).
			Value(w.bind(FieldAge, "")).
			Validate(optionalNonNegative),
	)
	return w
}

// User creates an account from the admin screen
func User() *Wizard {
	w := newWizard(KindUser, 0)
	w.addStep("Account", "Create user", "",
		huh.NewInput().
			Title("Username").
			Value(w.bind(FieldUsername, "")).
			Validate(models.ValidateUsername),
		huh.NewInput().
			Title("Email").
			Value(w.bind(FieldEmail, "")).
			Validate(func(s string) error { return models.ValidateEmail(FieldEmail, s) }),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(w.bind(FieldPassword, "")).
			Validate(requiredField),
		huh.NewSelect[string]().
			Title("Role").
			Options(huh.NewOption("Member", "member"), huh.NewOption("Administrator", "admin")).
			Value(w.bind(FieldRole, "member")),
	)
	return w
}

// Name is a single-field form for lists, families and categories
func Name(kind Kind, title string) *Wizard {
	w := newWizard(kind, 0)
	w.addStep(title, title, "",
		huh.NewInput().
			Title("Name").
			CharLimit(100).
			Value(w.bind(FieldName, "")).
			Validate(requiredField),
	)
	return w
}

// Reject asks why item id is being rejected
func Reject(id int) *Wizard {
	w := newWizard(KindReject, id)
	w.addStep("Reason", fmt.Sprintf("Reject item %d", id), "The author will see this",
		huh.NewText().
			Title("Reason").
			Value(w.bind(FieldReason, "")).
			Validate(requiredField),
	)
	return w
}

func requiredField(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func optionalNonNegative(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := models.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use %s", models.DateLayout)
	}
	return nil
}

func optional(fn func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return fn(s)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
