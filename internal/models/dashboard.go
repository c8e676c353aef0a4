// ABOUTME: Dashboard aggregate returned by the backend
// ABOUTME: Summarizes expiring food, shopping, meal plans and consumption

package models

// DashboardFood is the compact item shape used across dashboard panels
type DashboardFood struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit,omitempty"`
	ExpiryDate      string  `json:"expiryDate,omitempty"`
	PurchaseDate    string  `json:"purchaseDate,omitempty"`
	ConsumptionDate string  `json:"consumptionDate,omitempty"`
	WasteDate       string  `json:"wasteDate,omitempty"`
	Price           float64 `json:"price,omitempty"`
	Completed       bool    `json:"completed,omitempty"`
}

// DashboardMeal is one scheduled meal in the dashboard summary
type DashboardMeal struct {
	Type   string `json:"type"`
	Recipe struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"recipe"`
}

// DashboardMealPlan groups meals by date
type DashboardMealPlan struct {
	ID    int             `json:"id"`
	Date  string          `json:"date"`
	Meals []DashboardMeal `json:"meals"`
}

// Dashboard is the /dashboard/ payload
type Dashboard struct {
	ExpiringItems     []DashboardFood     `json:"expiringItems"`
	ShoppingList      []DashboardFood     `json:"shoppingList"`
	FridgeItems       []DashboardFood     `json:"fridgeItems"`
	MealPlans         []DashboardMealPlan `json:"mealPlans"`
	FoodPurchases     []DashboardFood     `json:"foodPurchases"`
	ConsumptionTrends []DashboardFood     `json:"consumptionTrends"`
	WastedFood        []DashboardFood     `json:"wastedFood"`
}

// PendingShopping counts shopping entries not yet completed
func (d *Dashboard) PendingShopping() int {
	n := 0
	for _, item := range d.ShoppingList {
		if !item.Completed {
			n++
		}
	}
	return n
}

// PurchaseTotal sums the price of recorded purchases
func (d *Dashboard) PurchaseTotal() float64 {
	var total float64
	for _, p := range d.FoodPurchases {
		total += p.Price
	}
	return total
}

// ConsumptionSeries returns quantities in the order the server reported them
func (d *Dashboard) ConsumptionSeries() []float64 {
	series := make([]float64, 0, len(d.ConsumptionTrends))
	for _, c := range d.ConsumptionTrends {
		series = append(series, c.Quantity)
	}
	return series
}
