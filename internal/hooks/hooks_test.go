// ABOUTME: Tests for the per-resource hooks
// ABOUTME: Derived views, shopping toggles, meal slots, paging and self-protection

package hooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = name(item)
	}
	return out
}

func itemName(i models.InventoryItem) string { return i.Name }

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func loadedInventory(t *testing.T, items ...models.InventoryItem) *Inventory {
	t.Helper()
	api := newFakeBackend()
	api.inventory = items
	h := NewInventory(api, nil, fixedClock)
	if err := h.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func TestInventory_NearExpiry(t *testing.T) {
	h := loadedInventory(t,
		models.InventoryItem{ID: 1, Name: "today", ExpiryDate: day(0)},
		models.InventoryItem{ID: 2, Name: "in three", ExpiryDate: day(3)},
		models.InventoryItem{ID: 3, Name: "in four", ExpiryDate: day(4)},
		models.InventoryItem{ID: 4, Name: "yesterday", ExpiryDate: day(-1)},
		models.InventoryItem{ID: 5, Name: "garbled", ExpiryDate: "soon"},
	)

	got := names(h.NearExpiry(3), itemName)
	if !equal(got, []string{"today", "in three"}) {
		t.Errorf("expected [today in three], got %v", got)
	}

	expired := names(h.Expired(), itemName)
	if !equal(expired, []string{"yesterday"}) {
		t.Errorf("expected [yesterday], got %v", expired)
	}
}

func TestInventory_Search(t *testing.T) {
	h := loadedInventory(t,
		models.InventoryItem{ID: 1, Name: "Milk", Category: "Dairy"},
		models.InventoryItem{ID: 2, Name: "Almond Milk"},
		models.InventoryItem{ID: 3, Name: "Bread", Note: "milk bread"},
	)

	got := names(h.Search("milk"), itemName)
	if !equal(got, []string{"Milk", "Almond Milk"}) {
		t.Errorf("expected [Milk Almond Milk], got %v", got)
	}
}

func TestInventory_AddSuggestsCategory(t *testing.T) {
	api := newFakeBackend()
	h := NewInventory(api, nil, fixedClock)

	err := h.Add(context.Background(), models.InventoryInput{Name: "Salmon", Compartment: models.Freezer, Quantity: 1, ExpiryDate: day(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := h.Items()
	if len(items) != 1 || items[0].Category != "Seafood" {
		t.Errorf("expected refetched item with category Seafood, got %+v", items)
	}
}

func TestInventory_AddFailureKeepsCollection(t *testing.T) {
	api := newFakeBackend()
	api.inventory = []models.InventoryItem{{ID: 1, Name: "Milk"}}
	h := NewInventory(api, nil, fixedClock)
	h.Load(context.Background())

	api.fail = errServer
	if err := h.Add(context.Background(), models.InventoryInput{Name: "Eggs"}); err == nil {
		t.Fatal("expected error")
	}
	if h.Len() != 1 {
		t.Errorf("expected 1 item, got %d", h.Len())
	}
	if h.Err() != "database unavailable" {
		t.Errorf("expected server message, got %q", h.Err())
	}
}

func TestShopping_ToggleTwiceReturnsPending(t *testing.T) {
	api := newFakeBackend()
	h := NewShoppingItems(api, nil, 1)
	ctx := context.Background()

	if err := h.Add(ctx, models.ShoppingItemInput{Item: "Eggs", Quantity: 12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := h.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	id := items[0].ID
	if items[0].Status != models.StatusPending {
		t.Errorf("expected new item pending, got %s", items[0].Status)
	}
	if items[0].Category != "Dairy" {
		t.Errorf("expected suggested category Dairy, got %s", items[0].Category)
	}

	if err := h.Toggle(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := h.ByStatus(models.StatusBought); len(got) != 1 {
		t.Errorf("expected 1 bought item, got %d", len(got))
	}
	if err := h.Toggle(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items = h.Items()
	if items[0].Status != models.StatusPending {
		t.Errorf("expected pending after two toggles, got %s", items[0].Status)
	}
	if bought, total := h.Progress(); bought != 0 || total != 1 {
		t.Errorf("expected 0/1, got %d/%d", bought, total)
	}
}

func TestShopping_ToggleFailureKeepsStatus(t *testing.T) {
	api := newFakeBackend()
	api.shopping = []models.ShoppingListItem{{ID: 7, ShoppingListID: 1, Item: "Rice", Quantity: 1, Status: models.StatusPending}}
	h := NewShoppingItems(api, nil, 1)
	h.Load(context.Background())

	api.fail = errServer
	if err := h.Toggle(context.Background(), 7); err == nil {
		t.Fatal("expected error")
	}
	if h.Items()[0].Status != models.StatusPending {
		t.Error("expected status unchanged after failed toggle")
	}
	if h.Err() == "" {
		t.Error("expected error message")
	}
}

func TestShopping_ByPriority(t *testing.T) {
	api := newFakeBackend()
	api.shopping = []models.ShoppingListItem{
		{ID: 1, ShoppingListID: 3, Item: "Milk", Priority: models.PriorityHigh},
		{ID: 2, ShoppingListID: 3, Item: "Tea", Priority: models.PriorityLow},
		{ID: 3, ShoppingListID: 4, Item: "Salt", Priority: models.PriorityHigh},
	}
	h := NewShoppingItems(api, nil, 3)
	h.Load(context.Background())

	high := h.ByPriority(models.PriorityHigh)
	if len(high) != 1 || high[0].Item != "Milk" {
		t.Errorf("expected only Milk from list 3, got %+v", high)
	}
}

func TestShoppingLists_CreateRequiresFamily(t *testing.T) {
	h := NewShoppingLists(newFakeBackend(), nil)

	err := h.Create(context.Background(), "Weekly", &models.User{ID: 1, Username: "a"})
	if !errors.Is(err, ErrNoFamily) {
		t.Errorf("expected ErrNoFamily, got %v", err)
	}

	family := 5
	if err := h.Create(context.Background(), "Weekly", &models.User{ID: 1, Username: "a", FamilyID: &family}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestShoppingItems_CacheKeysArePerList(t *testing.T) {
	c := cache.New(time.Minute)
	defer c.Stop()

	api := newFakeBackend()
	one := NewShoppingItems(api, c, 1)
	twelve := NewShoppingItems(api, c, 12)
	ctx := context.Background()
	one.Load(ctx)
	twelve.Load(ctx)

	one.Add(ctx, models.ShoppingItemInput{Item: "Eggs", Quantity: 1})
	before := api.listed()
	twelve.Load(ctx)
	if api.listed() != before {
		t.Error("expected list 12 to stay cached after a write to list 1")
	}
}

func TestRecipes_Views(t *testing.T) {
	api := newFakeBackend()
	api.recipes = []models.Recipe{
		{ID: 1, Name: "Tomato Soup", Difficulty: models.DifficultyEasy, Category: []string{"Soup", "Vegetarian"}},
		{ID: 2, Name: "Beef Stew", Difficulty: models.DifficultyHard, Category: []string{"soup"}},
		{ID: 3, Name: "Pancakes", Difficulty: models.DifficultyEasy, Category: []string{"Breakfast"}},
	}
	h := NewRecipes(api, nil)
	h.Load(context.Background())

	if got := h.Search("SOUP"); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected name search to match Tomato Soup only, got %+v", got)
	}
	if got := h.ByCategory("Soup"); len(got) != 2 {
		t.Errorf("expected 2 soups, got %d", len(got))
	}
	if got := h.ByDifficulty(models.DifficultyEasy); len(got) != 2 {
		t.Errorf("expected 2 easy recipes, got %d", len(got))
	}
	if got := h.Categories(); !equal(got, []string{"Soup", "Vegetarian", "Breakfast"}) {
		t.Errorf("unexpected categories %v", got)
	}
}

func TestFamilyMembers_ByFamily(t *testing.T) {
	api := newFakeBackend()
	api.members = []models.FamilyMember{
		{ID: 1, Name: "Ana", FamilyID: 2},
		{ID: 2, Name: "Ben", FamilyID: 1},
		{ID: 3, Name: "Cy", FamilyID: 2},
	}
	h := NewFamilyMembers(api, nil)
	h.Load(context.Background())

	groups := h.ByFamily()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].FamilyID != 1 || len(groups[1].Members) != 2 {
		t.Errorf("unexpected grouping %+v", groups)
	}
}

func TestWeekStart(t *testing.T) {
	// 2026-03-10 is a Tuesday
	got := WeekStart(testNow).Format(models.DateLayout)
	if got != "2026-03-08" {
		t.Errorf("expected Sunday 2026-03-08, got %s", got)
	}
}

func TestMealPlans_SetAndClear(t *testing.T) {
	api := newFakeBackend()
	h := NewMealPlans(api, nil, fixedClock)
	ctx := context.Background()
	date := day(1)
	soup := models.Recipe{ID: 1, Name: "Soup"}
	eggs := models.Recipe{ID: 2, Name: "Eggs"}

	if err := h.SetMeal(ctx, date, models.Dinner, soup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.plans) != 1 {
		t.Fatalf("expected plan created, got %d", len(api.plans))
	}

	if err := h.SetMeal(ctx, date, models.Breakfast, eggs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan, ok := h.ForDate(date)
	if !ok || plan.Meals.Breakfast == nil || plan.Meals.Dinner == nil {
		t.Fatalf("expected breakfast and dinner on %s, got %+v", date, plan)
	}
	if len(api.plans) != 1 {
		t.Errorf("expected existing plan updated, got %d plans", len(api.plans))
	}

	if err := h.ClearMeal(ctx, date, models.Dinner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.plans) != 1 {
		t.Error("expected plan kept while breakfast remains")
	}
	if err := h.ClearMeal(ctx, date, models.Breakfast); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.plans) != 0 {
		t.Errorf("expected empty plan deleted, got %d", len(api.plans))
	}
	if _, ok := h.ForDate(date); ok {
		t.Error("expected no plan after clearing every meal")
	}
}

func TestMealPlans_ClearMissingPlan(t *testing.T) {
	h := NewMealPlans(newFakeBackend(), nil, fixedClock)
	if err := h.ClearMeal(context.Background(), day(2), models.Lunch); err == nil {
		t.Error("expected error for a date without a plan")
	}
}

func TestMealPlans_Days(t *testing.T) {
	h := NewMealPlans(newFakeBackend(), nil, fixedClock)
	days := h.Days()
	if len(days) != 7 || days[0] != "2026-03-08" || days[6] != "2026-03-14" {
		t.Errorf("unexpected week %v", days)
	}
	h.ShiftWeek(context.Background(), 1)
	if got := h.Days()[0]; got != "2026-03-15" {
		t.Errorf("expected next week to start 2026-03-15, got %s", got)
	}
}

func adminUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{ID: i + 1, Username: "user" + string(rune('a'+i%26))}
	}
	return users
}

func TestUsers_Paging(t *testing.T) {
	api := newFakeBackend()
	api.users = adminUsers(23)
	h := NewUsers(api, 1)
	ctx := context.Background()

	if err := h.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Total() != 23 || h.Pages() != 3 || h.Len() != DefaultPageSize {
		t.Errorf("expected 23 users over 3 pages, got total=%d pages=%d len=%d", h.Total(), h.Pages(), h.Len())
	}

	h.GoTo(ctx, 9)
	if h.Page() != 3 || h.Len() != 3 {
		t.Errorf("expected clamped to last page of 3, got page=%d len=%d", h.Page(), h.Len())
	}
	h.Prev(ctx)
	h.Prev(ctx)
	h.Prev(ctx)
	if h.Page() != 1 {
		t.Errorf("expected page 1, got %d", h.Page())
	}
}

// slowListing holds the unfiltered listing until release is closed
type slowListing struct {
	*fakeBackend
	started chan struct{}
	release chan struct{}
}

func (s *slowListing) ListUsers(ctx context.Context, q client.UserQuery) (*models.UserPage, error) {
	if q.Search == "" {
		close(s.started)
		<-s.release
		return &models.UserPage{Results: adminUsers(DefaultPageSize), Count: 95}, nil
	}
	return &models.UserPage{Results: []models.User{{ID: 7, Username: "zed"}}, Count: 1}, nil
}

func TestUsers_StalePageKeepsNewerTotal(t *testing.T) {
	api := &slowListing{fakeBackend: newFakeBackend(), started: make(chan struct{}), release: make(chan struct{})}
	h := NewUsers(api, 1)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		h.Load(ctx)
		close(done)
	}()
	<-api.started

	if err := h.Query(ctx, "zed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(api.release)
	<-done

	if h.Len() != 1 || h.Items()[0].Username != "zed" {
		t.Errorf("expected the searched page, got %v", h.Items())
	}
	if h.Total() != 1 || h.Pages() != 1 {
		t.Errorf("expected total 1 over 1 page, got total=%d pages=%d", h.Total(), h.Pages())
	}
}

func TestUsers_SelfProtection(t *testing.T) {
	api := newFakeBackend()
	h := NewUsers(api, 1)
	ctx := context.Background()

	if err := h.Delete(ctx, 1); !errors.Is(err, ErrSelfAction) {
		t.Errorf("expected ErrSelfAction deleting self, got %v", err)
	}
	if err := h.SetAdmin(ctx, 1, false); !errors.Is(err, ErrSelfAction) {
		t.Errorf("expected ErrSelfAction demoting self, got %v", err)
	}
	if len(api.deleted) != 0 {
		t.Error("expected no server call for self actions")
	}

	if err := h.Delete(ctx, 2); err != nil {
		t.Errorf("unexpected error deleting another user: %v", err)
	}
	if err := h.SetAdmin(ctx, 1, true); err != nil {
		t.Errorf("granting admin to self is harmless, got %v", err)
	}
}

func TestUsers_Search(t *testing.T) {
	api := newFakeBackend()
	api.users = []models.User{
		{ID: 1, Username: "alice", Email: "a@example.com"},
		{ID: 2, Username: "bob", FullName: "Bob Alison"},
		{ID: 3, Username: "carol", Email: "carol@example.com"},
	}
	h := NewUsers(api, 1)
	h.Load(context.Background())

	if got := h.Search("ALI"); len(got) != 2 {
		t.Errorf("expected alice and Bob Alison, got %d", len(got))
	}
	if got := h.Search("carol@"); len(got) != 1 {
		t.Errorf("expected carol by email, got %d", len(got))
	}
}

func TestCategories_RejectsDuplicate(t *testing.T) {
	api := newFakeBackend()
	api.categories = []models.Category{{ID: 1, Name: "Dairy"}}
	h := NewCategories(api, nil)
	h.Load(context.Background())

	if err := h.Create(context.Background(), " dairy "); err == nil {
		t.Error("expected duplicate category to be rejected")
	}
	if err := h.Create(context.Background(), "Frozen"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equal(h.Names(), []string{"Dairy", "Frozen"}) {
		t.Errorf("unexpected names %v", h.Names())
	}
}

func TestLoadAll_ReportsFailure(t *testing.T) {
	api := newFakeBackend()
	api.inventory = []models.InventoryItem{{ID: 1, Name: "Milk"}}
	inv := NewInventory(api, nil, fixedClock)
	dash := NewDashboard(api, nil)

	err := LoadAll(context.Background(), inv, dash)
	if err == nil {
		t.Fatal("expected dashboard error")
	}
	if inv.Len() != 1 {
		t.Errorf("expected inventory loaded despite dashboard failure, got %d", inv.Len())
	}
	if dash.Summary() != nil {
		t.Error("expected no dashboard summary")
	}
	if dash.Err() != "dashboard offline" {
		t.Errorf("expected dashboard error message, got %q", dash.Err())
	}
}
