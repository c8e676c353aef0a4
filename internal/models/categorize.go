// ABOUTME: Category suggestion for new shopping and inventory items
// ABOUTME: Exact keyword match first, then substring match, then "Other"

package models

import "strings"

// DefaultCategory is used when nothing matches
const DefaultCategory = "Other"

// SuggestCategory guesses a category from an item name. Matching is
// case-insensitive: exact keyword first, then the first keyword contained
// in the name, falling back to DefaultCategory.
func SuggestCategory(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return DefaultCategory
	}

	if cat, ok := categoryExact[n]; ok {
		return cat
	}

	for _, kw := range categoryKeywords {
		if strings.Contains(n, kw.word) {
			return kw.category
		}
	}

	return DefaultCategory
}

var categoryExact = map[string]string{
	"milk":    "Dairy",
	"butter":  "Dairy",
	"cheese":  "Dairy",
	"yogurt":  "Dairy",
	"cream":   "Dairy",
	"eggs":    "Dairy",
	"egg":     "Dairy",
	"tofu":    "Protein",
	"beef":    "Meat",
	"pork":    "Meat",
	"chicken": "Meat",
	"fish":    "Seafood",
	"shrimp":  "Seafood",
	"salmon":  "Seafood",
	"rice":    "Grains",
	"bread":   "Bakery",
	"noodles": "Grains",
	"pasta":   "Grains",
	"apple":   "Fruit",
	"banana":  "Fruit",
	"orange":  "Fruit",
	"lemon":   "Fruit",
	"grapes":  "Fruit",
	"onion":   "Vegetables",
	"garlic":  "Vegetables",
	"carrot":  "Vegetables",
	"cabbage": "Vegetables",
	"tomato":  "Vegetables",
	"potato":  "Vegetables",
	"lettuce": "Vegetables",
	"water":   "Beverages",
	"juice":   "Beverages",
	"coffee":  "Beverages",
	"tea":     "Beverages",
	"salt":    "Condiments",
	"sugar":   "Condiments",
	"pepper":  "Condiments",
}

// Ordered longer and more specific first so "ice cream" wins over "cream"
var categoryKeywords = []struct {
	word     string
	category string
}{
	{"ice cream", "Frozen"},
	{"frozen", "Frozen"},
	{"fish sauce", "Condiments"},
	{"soy sauce", "Condiments"},
	{"sauce", "Condiments"},
	{"oil", "Condiments"},
	{"vinegar", "Condiments"},
	{"milk", "Dairy"},
	{"cheese", "Dairy"},
	{"yogurt", "Dairy"},
	{"egg", "Dairy"},
	{"chicken", "Meat"},
	{"beef", "Meat"},
	{"pork", "Meat"},
	{"sausage", "Meat"},
	{"bacon", "Meat"},
	{"shrimp", "Seafood"},
	{"salmon", "Seafood"},
	{"tuna", "Seafood"},
	{"fish", "Seafood"},
	{"bread", "Bakery"},
	{"cake", "Bakery"},
	{"rice", "Grains"},
	{"noodle", "Grains"},
	{"flour", "Grains"},
	{"berr", "Fruit"},
	{"apple", "Fruit"},
	{"mango", "Fruit"},
	{"melon", "Fruit"},
	{"lettuce", "Vegetables"},
	{"spinach", "Vegetables"},
	{"mushroom", "Vegetables"},
	{"pepper", "Vegetables"},
	{"bean", "Vegetables"},
	{"juice", "Beverages"},
	{"soda", "Beverages"},
	{"beer", "Beverages"},
	{"water", "Beverages"},
}
