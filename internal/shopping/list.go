// Package shopping merges recipe ingredients into a shopping list.
package shopping

import (
	"errors"
	"strings"

	"pantrychef/internal/recipe"
)

// ErrIndexOutOfRange is returned when an item index does not exist.
var ErrIndexOutOfRange = errors.New("shopping list index out of range")

// Item is one line on the shopping list.
type Item struct {
	Ingredient string  `json:"ingredient"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
	Checked    bool    `json:"checked"`
	RecipeID   string  `json:"recipeId"`
	RecipeName string  `json:"recipeName"`
}

// List is an ordered shopping list. Operations return a new List and leave
// the receiver untouched.
type List []Item

// ItemsFromRecipe turns a recipe's ingredients into unchecked list items.
// Free-text lines become one "portion" of the whole line.
func ItemsFromRecipe(r *recipe.Recipe, recipeID string) []Item {
	items := make([]Item, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		item := Item{RecipeID: recipeID, RecipeName: r.Title}
		if ing.Kind == recipe.Structured {
			item.Ingredient, item.Amount, item.Unit = ing.Name, ing.Amount, ing.Unit
		} else {
			item.Ingredient, item.Amount, item.Unit = ing.String(), 1, "portion"
		}
		items = append(items, item)
	}
	return items
}

// Merge adds items to the list. An item whose name (ignoring case) and unit
// match an existing entry adds to that entry's amount; anything else is
// appended.
func (l List) Merge(items ...Item) List {
	out := l.clone()
	for _, item := range items {
		if i := out.find(item.Ingredient, item.Unit); i >= 0 {
			out[i].Amount += item.Amount
			continue
		}
		out = append(out, item)
	}
	return out
}

// Toggle flips the checked state of the item at index.
func (l List) Toggle(index int) (List, error) {
	if index < 0 || index >= len(l) {
		return nil, ErrIndexOutOfRange
	}
	out := l.clone()
	out[index].Checked = !out[index].Checked
	return out, nil
}

// Remove deletes the item at index.
func (l List) Remove(index int) (List, error) {
	if index < 0 || index >= len(l) {
		return nil, ErrIndexOutOfRange
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:index]...)
	return append(out, l[index+1:]...), nil
}

// ClearChecked drops every checked item.
func (l List) ClearChecked() List {
	out := make(List, 0, len(l))
	for _, item := range l {
		if !item.Checked {
			out = append(out, item)
		}
	}
	return out
}

// CheckedCount returns how many items are checked.
func (l List) CheckedCount() int {
	n := 0
	for _, item := range l {
		if item.Checked {
			n++
		}
	}
	return n
}

func (l List) find(name, unit string) int {
	for i, item := range l {
		if strings.EqualFold(item.Ingredient, name) && item.Unit == unit {
			return i
		}
	}
	return -1
}

func (l List) clone() List {
	return append(List{}, l...)
}
