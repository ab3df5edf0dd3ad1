package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Recipe {
	sugar, sodium := 6.0, 320.0
	return &Recipe{
		Title: "Omelette",
		Ingredients: []Ingredient{
			Measured("milk", 2, "cup"),
			Measured("eggs", 3, ""),
			Measured("salt", 0.25, "tsp"),
		},
		Instructions: []Step{{Step: 1, Instruction: "Cook for 5 min", Time: 5}},
		Calories:     285,
		Macros:       Macros{Protein: 22, Carbs: 8, Fat: 18, Fiber: 4, Sugar: &sugar, Sodium: &sodium},
		CookTime:     "15 minutes",
		Servings:     2,
	}
}

func TestScale_Double(t *testing.T) {
	orig := sample()

	scaled, err := Scale(orig, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, scaled.Servings)
	assert.Equal(t, Measured("milk", 4, "cup"), scaled.Ingredients[0])
	assert.Equal(t, 6.0, scaled.Ingredients[1].Amount)
	assert.Equal(t, 0.5, scaled.Ingredients[2].Amount)
	assert.Equal(t, 570.0, scaled.Calories)
	assert.Equal(t, 44.0, scaled.Macros.Protein)
	assert.Equal(t, 640.0, *scaled.Macros.Sodium)

	// input untouched
	assert.Equal(t, sample(), orig)
}

func TestScale_RoundsIndependently(t *testing.T) {
	scaled, err := Scale(sample(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3.0, scaled.Ingredients[0].Amount)
	assert.Equal(t, 0.38, scaled.Ingredients[2].Amount) // 0.375
	assert.Equal(t, 428.0, scaled.Calories)            // 427.5
	assert.Equal(t, 27.0, scaled.Macros.Fat)
	assert.Equal(t, 9.0, *scaled.Macros.Sugar)
}

func TestScale_BelowOneIsNoop(t *testing.T) {
	orig := sample()
	for _, n := range []int{0, -3} {
		got, err := Scale(orig, n)
		require.NoError(t, err)
		assert.Same(t, orig, got)
	}
}

func TestScale_SameServings(t *testing.T) {
	orig := sample()
	got, err := Scale(orig, orig.Servings)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
	assert.NotSame(t, orig, got)
}

func TestScale_FreeTextRejected(t *testing.T) {
	r := sample()
	r.Ingredients = append(r.Ingredients, Line("a pinch of pepper"))

	_, err := Scale(r, 4)
	assert.ErrorIs(t, err, ErrUnscalableRecipe)
}

func TestScale_ZeroServingsRejected(t *testing.T) {
	r := sample()
	r.Servings = 0

	_, err := Scale(r, 4)
	assert.ErrorIs(t, err, ErrUnscalableRecipe)
}
