package nutrition

import (
	"math"

	"pantrychef/internal/recipe"
)

// Assumed serving weight in grams for the calorie density factor.
const servingGrams = 500

// MacroSplit is the share of calories from each macro, in percent.
// Values above 100 are possible when the model's figures don't balance.
type MacroSplit struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// MacroPercentages returns the calorie share of each macro. All zero when
// the recipe has no calories.
func MacroPercentages(r *recipe.Recipe) MacroSplit {
	if r.Calories <= 0 {
		return MacroSplit{}
	}
	return MacroSplit{
		Protein: r.Macros.Protein * 4 / r.Calories * 100,
		Carbs:   r.Macros.Carbs * 4 / r.Calories * 100,
		Fat:     r.Macros.Fat * 9 / r.Calories * 100,
	}
}

// Score rates a recipe from 0 to 100 by summing capped points for protein,
// fiber, calorie density, sodium, sugar and macro balance.
func Score(r *recipe.Recipe) int {
	score := proteinPoints(r) +
		fiberPoints(r.Macros.Fiber) +
		densityPoints(r.Calories) +
		sodiumPoints(r.Macros.Sodium) +
		sugarPoints(r.Macros.Sugar) +
		balancePoints(r)

	return int(math.Min(100, math.Round(score)))
}

func proteinPoints(r *recipe.Recipe) float64 {
	if r.Calories <= 0 {
		return 0
	}
	ratio := r.Macros.Protein / (r.Calories / 4)
	return clamp(ratio*100, 25)
}

func fiberPoints(fiber float64) float64 {
	return clamp(fiber/25*20, 20)
}

func densityPoints(calories float64) float64 {
	if calories <= 0 {
		return 0
	}
	density := calories / servingGrams
	switch {
	case density < 1.5:
		return 20
	case density < 2.5:
		return 15
	case density < 4:
		return 10
	}
	return 0
}

// Missing sodium or sugar earns nothing for that factor.
func sodiumPoints(sodium *float64) float64 {
	if sodium == nil {
		return 0
	}
	switch {
	case *sodium < 600:
		return 15
	case *sodium < 1000:
		return 10
	case *sodium < 1500:
		return 5
	}
	return 0
}

func sugarPoints(sugar *float64) float64 {
	if sugar == nil {
		return 0
	}
	switch {
	case *sugar < 10:
		return 10
	case *sugar < 20:
		return 5
	}
	return 0
}

// balancePoints applies one rubric to every recipe, low-carb diets included.
func balancePoints(r *recipe.Recipe) float64 {
	if r.Calories <= 0 {
		return 0
	}
	p := MacroPercentages(r)
	if within(p.Protein, 15, 35) && within(p.Carbs, 25, 65) && within(p.Fat, 20, 35) {
		return 10
	}
	return 0
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func clamp(v, limit float64) float64 {
	return math.Max(0, math.Min(limit, v))
}
