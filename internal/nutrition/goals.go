// Package nutrition computes daily nutrition goals from a user profile and a
// heuristic 0-100 score for a recipe.
package nutrition

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ActivityLevel is how active the user is on a typical day.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very-active"
)

// Goal is the user's weight goal.
type Goal string

const (
	Maintain Goal = "maintain"
	Lose     Goal = "lose"
	Gain     Goal = "gain"
)

// UserProfile drives the goal calculation. Weight is in kg, height in cm.
type UserProfile struct {
	Age           int           `json:"age" validate:"required,gt=0"`
	Gender        string        `json:"gender" validate:"required,oneof=male female"`
	Weight        float64       `json:"weight" validate:"required,gt=0"`
	Height        float64       `json:"height" validate:"required,gt=0"`
	ActivityLevel ActivityLevel `json:"activityLevel" validate:"required,oneof=sedentary light moderate active very-active"`
	Goal          Goal          `json:"goal" validate:"required,oneof=maintain lose gain"`
}

// Goals are the derived daily targets. Macros are in grams.
type Goals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
}

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

var validate = validator.New()

// Validate checks that every profile field is present and in range.
func (p UserProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

// BMR returns the Mifflin-St Jeor basal metabolic rate.
func BMR(p UserProfile) float64 {
	base := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	if p.Gender == "male" {
		return base + 5
	}
	return base - 161
}

// ComputeGoals derives daily calorie and macro targets from a validated profile.
// Each figure is rounded on its own, so macros need not add up to the calories.
func ComputeGoals(p UserProfile) Goals {
	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers[Sedentary]
	}
	calories := BMR(p) * multiplier

	switch p.Goal {
	case Lose:
		calories -= 500
	case Gain:
		calories += 500
	}

	// 30% protein, 40% carbs, 30% fat.
	return Goals{
		Calories: int(math.Round(calories)),
		Protein:  int(math.Round(calories * 0.3 / 4)),
		Carbs:    int(math.Round(calories * 0.4 / 4)),
		Fat:      int(math.Round(calories * 0.3 / 9)),
		Fiber:    int(math.Round(calories / 1000 * 14)),
	}
}
