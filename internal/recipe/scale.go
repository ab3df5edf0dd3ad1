package recipe

import (
	"errors"
	"math"
)

// ErrUnscalableRecipe is returned when a recipe cannot be rescaled, either
// because an ingredient is a free-text line or its serving count is unusable.
var ErrUnscalableRecipe = errors.New("recipe cannot be scaled")

// Scale returns a copy of r adjusted to the given number of servings.
// A servings value below 1 is ignored and r is returned as is.
func Scale(r *Recipe, servings int) (*Recipe, error) {
	if servings < 1 {
		return r, nil
	}
	if r.Servings < 1 || r.HasFreeText() {
		return nil, ErrUnscalableRecipe
	}

	factor := float64(servings) / float64(r.Servings)

	scaled := r.Clone()
	scaled.Servings = servings
	for i, ing := range scaled.Ingredients {
		scaled.Ingredients[i].Amount = round2(ing.Amount * factor)
	}

	scaled.Calories = math.Round(r.Calories * factor)
	scaled.Macros.Protein = math.Round(r.Macros.Protein * factor)
	scaled.Macros.Carbs = math.Round(r.Macros.Carbs * factor)
	scaled.Macros.Fat = math.Round(r.Macros.Fat * factor)
	scaled.Macros.Fiber = math.Round(r.Macros.Fiber * factor)
	if r.Macros.Sugar != nil {
		v := math.Round(*r.Macros.Sugar * factor)
		scaled.Macros.Sugar = &v
	}
	if r.Macros.Sodium != nil {
		v := math.Round(*r.Macros.Sodium * factor)
		scaled.Macros.Sodium = &v
	}

	return scaled, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
