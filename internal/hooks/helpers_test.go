// ABOUTME: In-memory backend fake shared by hook tests
// ABOUTME: Implements every hook API interface and counts list calls

package hooks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)

func fixedClock() time.Time { return testNow }

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format(models.DateLayout)
}

var errServer = &client.APIError{Status: 500, Code: client.CodeInternal, Message: "database unavailable"}

type fakeBackend struct {
	mu     sync.Mutex
	nextID int
	fail   error
	lists  int

	inventory  []models.InventoryItem
	shopping   []models.ShoppingListItem
	recipes    []models.Recipe
	members    []models.FamilyMember
	plans      []models.MealPlan
	users      []models.User
	categories []models.Category
	deleted    []int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 100}
}

func (f *fakeBackend) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeBackend) listed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeBackend) ListAllInventory(ctx context.Context) ([]models.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]models.InventoryItem(nil), f.inventory...), nil
}

func (f *fakeBackend) CreateInventoryItem(ctx context.Context, in models.InventoryInput) (*models.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	item := models.InventoryItem{ID: f.id(), Name: in.Name, Category: in.Category, Compartment: in.Compartment, Quantity: in.Quantity, ExpiryDate: in.ExpiryDate}
	f.inventory = append(f.inventory, item)
	return &item, nil
}

func (f *fakeBackend) UpdateInventoryItem(ctx context.Context, id int, in models.InventoryInput) (*models.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.inventory {
		if f.inventory[i].ID == id {
			f.inventory[i].Name = in.Name
			f.inventory[i].Quantity = in.Quantity
			return &f.inventory[i], nil
		}
	}
	return nil, &client.APIError{Status: 404, Code: client.CodeNotFound}
}

func (f *fakeBackend) DeleteInventoryItem(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) ListShoppingLists(ctx context.Context) ([]models.ShoppingList, error) {
	return []models.ShoppingList{{ID: 1, Name: "Weekly"}}, nil
}

func (f *fakeBackend) CreateShoppingList(ctx context.Context, in models.ShoppingListInput) (*models.ShoppingList, error) {
	return &models.ShoppingList{ID: 2, Name: in.Name, FamilyID: in.FamilyID}, nil
}

func (f *fakeBackend) RenameShoppingList(ctx context.Context, id int, name string) (*models.ShoppingList, error) {
	return &models.ShoppingList{ID: id, Name: name}, nil
}

func (f *fakeBackend) DeleteShoppingList(ctx context.Context, id int) error { return nil }

func (f *fakeBackend) ListShoppingItems(ctx context.Context, listID int) ([]models.ShoppingListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	var out []models.ShoppingListItem
	for _, i := range f.shopping {
		if i.ListID() == listID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateShoppingItem(ctx context.Context, in models.ShoppingItemInput) (*models.ShoppingListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := models.ShoppingListItem{ID: f.id(), ShoppingListID: in.ShoppingListID, Item: in.Item, Quantity: in.Quantity, Category: in.Category, Status: in.Status, Priority: in.Priority}
	f.shopping = append(f.shopping, item)
	return &item, nil
}

func (f *fakeBackend) UpdateShoppingItem(ctx context.Context, id int, in models.ShoppingItemInput) (*models.ShoppingListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for i := range f.shopping {
		if f.shopping[i].ID == id {
			f.shopping[i].Status = in.Status
			f.shopping[i].Quantity = in.Quantity
			return &f.shopping[i], nil
		}
	}
	return nil, &client.APIError{Status: 404, Code: client.CodeNotFound}
}

func (f *fakeBackend) DeleteShoppingItem(ctx context.Context, id int) error { return nil }

func (f *fakeBackend) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return f.recipes, nil
}

func (f *fakeBackend) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	return &models.Recipe{ID: 1, Name: in.Name}, nil
}

func (f *fakeBackend) UpdateRecipe(ctx context.Context, id int, in models.RecipeInput) (*models.Recipe, error) {
	return &models.Recipe{ID: id, Name: in.Name}, nil
}

func (f *fakeBackend) DeleteRecipe(ctx context.Context, id int) error { return nil }

func (f *fakeBackend) ListFamilies(ctx context.Context) ([]models.Family, error) {
	return []models.Family{{ID: 1, Name: "Nguyen"}, {ID: 2, Name: "Tran"}}, nil
}

func (f *fakeBackend) CreateFamily(ctx context.Context, in models.FamilyInput) (*models.Family, error) {
	return &models.Family{ID: 3, Name: in.Name}, nil
}

func (f *fakeBackend) RenameFamily(ctx context.Context, id int, in models.FamilyInput) (*models.Family, error) {
	return &models.Family{ID: id, Name: in.Name}, nil
}

func (f *fakeBackend) DeleteFamily(ctx context.Context, id int) error { return nil }

func (f *fakeBackend) CreateFamilyMember(ctx context.Context, in models.FamilyMemberInput) (*models.FamilyMember, error) {
	return &models.FamilyMember{ID: 9, Name: in.Name, FamilyID: in.FamilyID}, nil
}

func (f *fakeBackend) UpdateFamilyMember(ctx context.Context, id int, in models.FamilyMemberInput) (*models.FamilyMember, error) {
	return &models.FamilyMember{ID: id, Name: in.Name, FamilyID: in.FamilyID}, nil
}

func (f *fakeBackend) DeleteFamilyMember(ctx context.Context, id int) error { return nil }

func (f *fakeBackend) ListFamilyMembers(ctx context.Context) ([]models.FamilyMember, error) {
	return f.members, nil
}

func (f *fakeBackend) WeeklyMealPlans(ctx context.Context, start time.Time) ([]models.MealPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MealPlan(nil), f.plans...), nil
}

func (f *fakeBackend) CreateMealPlan(ctx context.Context, in models.MealPlanInput) (*models.MealPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan := models.MealPlan{ID: f.id(), Date: in.Date, Meals: in.Meals}
	f.plans = append(f.plans, plan)
	return &plan, nil
}

func (f *fakeBackend) UpdateMealPlan(ctx context.Context, id int, in models.MealPlanInput) (*models.MealPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.plans[i].Meals = in.Meals
			return &f.plans[i], nil
		}
	}
	return nil, &client.APIError{Status: 404, Code: client.CodeNotFound}
}

func (f *fakeBackend) DeleteMealPlan(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.plans = append(f.plans[:i], f.plans[i+1:]...)
			break
		}
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) ListUsers(ctx context.Context, q client.UserQuery) (*models.UserPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	start := (q.Page - 1) * q.PageSize
	if start > len(f.users) {
		start = len(f.users)
	}
	end := start + q.PageSize
	if end > len(f.users) {
		end = len(f.users)
	}
	return &models.UserPage{Results: f.users[start:end], Count: len(f.users)}, nil
}

func (f *fakeBackend) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	return &models.User{ID: 1, Username: in.Username}, nil
}

func (f *fakeBackend) UpdateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	return &models.User{ID: in.UserID}, nil
}

func (f *fakeBackend) DeleteUser(ctx context.Context, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, userID)
	return nil
}

func (f *fakeBackend) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeBackend) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cat := models.Category{ID: f.id(), Name: in.Name}
	f.categories = append(f.categories, cat)
	return &cat, nil
}

func (f *fakeBackend) DeleteCategory(ctx context.Context, id int) error { return nil }

func (f *fakeBackend) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	return nil, errors.New("dashboard offline")
}
