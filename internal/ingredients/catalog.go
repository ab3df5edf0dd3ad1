// Package ingredients is a static catalog of common ingredients used for
// suggestions and substitutes.
package ingredients

import "strings"

// DefaultSearchLimit caps Search results when no limit is given.
const DefaultSearchLimit = 10

// Category names in display order.
var categoryOrder = []string{"proteins", "vegetables", "grains", "dairy", "pantry", "fruits"}

var categories = map[string][]string{
	"proteins": {
		"Chicken breast", "Salmon", "Tuna", "Eggs", "Greek yogurt", "Tofu", "Lentils",
		"Black beans", "Chickpeas", "Ground turkey", "Shrimp", "Cottage cheese",
		"Quinoa", "Almonds", "Peanut butter",
	},
	"vegetables": {
		"Spinach", "Broccoli", "Bell peppers", "Tomatoes", "Onions", "Garlic",
		"Carrots", "Zucchini", "Mushrooms", "Avocado", "Cucumber", "Kale",
		"Sweet potato", "Cauliflower", "Asparagus",
	},
	"grains": {
		"Brown rice", "Oats", "Whole wheat pasta", "Quinoa", "Barley", "Bulgur",
		"Wild rice", "Whole wheat bread", "Couscous", "Farro",
	},
	"dairy": {
		"Milk", "Greek yogurt", "Cheese", "Butter", "Cream cheese", "Mozzarella",
		"Parmesan", "Cheddar", "Feta", "Ricotta",
	},
	"pantry": {
		"Olive oil", "Coconut oil", "Honey", "Maple syrup", "Soy sauce", "Balsamic vinegar",
		"Lemon", "Lime", "Ginger", "Basil", "Oregano", "Thyme", "Paprika", "Cumin",
	},
	"fruits": {
		"Bananas", "Apples", "Berries", "Oranges", "Lemons", "Limes", "Strawberries",
		"Blueberries", "Mango", "Pineapple", "Grapes", "Peaches",
	},
}

var substitutes = map[string][]string{
	"Eggs":           {"Flax eggs", "Chia eggs", "Applesauce", "Mashed banana"},
	"Butter":         {"Coconut oil", "Olive oil", "Avocado", "Greek yogurt"},
	"Milk":           {"Almond milk", "Oat milk", "Coconut milk", "Soy milk"},
	"Sugar":          {"Honey", "Maple syrup", "Stevia", "Dates"},
	"Flour":          {"Almond flour", "Coconut flour", "Oat flour", "Rice flour"},
	"Chicken breast": {"Turkey breast", "Tofu", "Tempeh", "Seitan"},
	"Ground beef":    {"Ground turkey", "Lentils", "Mushrooms", "Black beans"},
}

// Category is a named group of ingredients.
type Category struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		out = append(out, Category{Name: name, Ingredients: append([]string(nil), categories[name]...)})
	}
	return out
}

// All returns every catalog ingredient once, in category order.
func All() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range categoryOrder {
		for _, ing := range categories[name] {
			if !seen[ing] {
				seen[ing] = true
				out = append(out, ing)
			}
		}
	}
	return out
}

// Search returns up to limit ingredients whose name contains query,
// ignoring case. A limit below 1 means DefaultSearchLimit.
func Search(query string, limit int) []string {
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(query)

	out := []string{}
	for _, ing := range All() {
		if strings.Contains(strings.ToLower(ing), q) {
			out = append(out, ing)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Substitutes returns known replacements for an ingredient. The lookup is
// exact; unknown ingredients have none.
func Substitutes(ingredient string) []string {
	return append([]string{}, substitutes[ingredient]...)
}
