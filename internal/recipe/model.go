package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Difficulty is the coarse effort rating a recipe can carry.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Recipe represents the structure of a generated recipe.
type Recipe struct {
	ID           string       `json:"id,omitempty"`
	Title        string       `json:"title"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []Step       `json:"instructions"`
	Calories     float64      `json:"calories"`
	Macros       Macros       `json:"macros"`
	CookTime     string       `json:"cookTime"`
	PrepTime     string       `json:"prepTime,omitempty"`
	TotalTime    string       `json:"totalTime,omitempty"`
	Servings     int          `json:"servings"`
	Difficulty   Difficulty   `json:"difficulty,omitempty"`
	Cuisine      string       `json:"cuisine,omitempty"`
	Equipment    []string     `json:"equipment,omitempty"`
	Tips         []string     `json:"tips,omitempty"`
	ChefName     string       `json:"chefName,omitempty"`
	SavedAt      *time.Time   `json:"savedAt,omitempty"`
}

// Macros holds grams of each macronutrient for the whole recipe. Sodium is in mg.
type Macros struct {
	Protein float64  `json:"protein"`
	Carbs   float64  `json:"carbs"`
	Fat     float64  `json:"fat"`
	Fiber   float64  `json:"fiber"`
	Sugar   *float64 `json:"sugar,omitempty"`
	Sodium  *float64 `json:"sodium,omitempty"`
}

// IngredientKind tells which representation an Ingredient holds.
type IngredientKind int

const (
	FreeText IngredientKind = iota
	Structured
)

// Ingredient is either a free-text line ("2 large eggs") or a structured
// name/amount/unit triple. On the wire it is a JSON string or object.
type Ingredient struct {
	Kind   IngredientKind
	Text   string
	Name   string
	Amount float64
	Unit   string
}

// Line returns a free-text ingredient.
func Line(text string) Ingredient {
	return Ingredient{Kind: FreeText, Text: text}
}

// Measured returns a structured ingredient.
func Measured(name string, amount float64, unit string) Ingredient {
	return Ingredient{Kind: Structured, Name: name, Amount: amount, Unit: unit}
}

// String renders the ingredient as a single display line.
func (i Ingredient) String() string {
	if i.Kind == FreeText {
		return i.Text
	}
	parts := []string{formatAmount(i.Amount)}
	if i.Unit != "" {
		parts = append(parts, i.Unit)
	}
	return strings.Join(append(parts, i.Name), " ")
}

type structuredIngredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// MarshalJSON implements the json.Marshaler interface for Ingredient.
func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.Kind == FreeText {
		return json.Marshal(i.Text)
	}
	return json.Marshal(structuredIngredient{Name: i.Name, Amount: i.Amount, Unit: i.Unit})
}

// UnmarshalJSON implements the json.Unmarshaler interface for Ingredient.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*i = Line(text)
		return nil
	}

	var s structuredIngredient
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ingredient must be a string or an object: %w", err)
	}
	if s.Amount < 0 {
		return fmt.Errorf("ingredient %q has negative amount", s.Name)
	}
	*i = Measured(s.Name, s.Amount, s.Unit)
	return nil
}

// Step is one numbered cooking instruction. Time is in minutes, zero when unknown.
type Step struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
	Time        int    `json:"time,omitempty"`
}

// UnmarshalJSON accepts either a plain instruction string or a step object.
func (s *Step) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Step{Instruction: text}
		return nil
	}

	type Alias Step // Create an alias to avoid infinite recursion
	var aux Alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Step(aux)
	return nil
}

// HasFreeText reports whether any ingredient is a free-text line.
func (r *Recipe) HasFreeText() bool {
	for _, ing := range r.Ingredients {
		if ing.Kind == FreeText {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the recipe.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	c.Instructions = append([]Step(nil), r.Instructions...)
	c.Equipment = append([]string(nil), r.Equipment...)
	c.Tips = append([]string(nil), r.Tips...)
	if r.Macros.Sugar != nil {
		v := *r.Macros.Sugar
		c.Macros.Sugar = &v
	}
	if r.Macros.Sodium != nil {
		v := *r.Macros.Sodium
		c.Macros.Sodium = &v
	}
	if r.SavedAt != nil {
		t := *r.SavedAt
		c.SavedAt = &t
	}
	return &c
}

func formatAmount(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
