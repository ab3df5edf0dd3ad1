package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRecipePrompt_KnownFilters(t *testing.T) {
	for filter, phrase := range filterInstructions {
		t.Run(filter, func(t *testing.T) {
			p := BuildRecipePrompt([]string{"eggs"}, filter)
			assert.Contains(t, p, "Make the recipe "+phrase+".")
		})
	}
}

func TestBuildRecipePrompt_UnknownFilterFallsBack(t *testing.T) {
	for _, filter := range []string{"", "paleo", "KETO", "carnivore"} {
		p := BuildRecipePrompt([]string{"eggs"}, filter)
		assert.Contains(t, p, "Make the recipe balanced and nutritious.")
	}
}

func TestBuildRecipePrompt_IngredientsJoined(t *testing.T) {
	p := BuildRecipePrompt([]string{"eggs", "baby spinach", "feta cheese"}, "vegan")
	assert.Contains(t, p, "these ingredients: eggs, baby spinach, feta cheese.")
}

func TestBuildRecipePrompt_Deterministic(t *testing.T) {
	a := BuildRecipePrompt([]string{"tofu", "rice"}, "high-protein")
	b := BuildRecipePrompt([]string{"tofu", "rice"}, "high-protein")
	assert.Equal(t, a, b)
	assert.Contains(t, a, `"cookTime": "15 minutes"`)
	assert.Contains(t, a, "Provide 5-8 clear, detailed cooking steps")
	assert.Contains(t, a, "Include 2-4 helpful cooking tips")
	assert.Contains(t, a, "List essential equipment needed")
}

func TestFilterOptions(t *testing.T) {
	opts := FilterOptions()
	assert.Len(t, opts, len(filterInstructions))
	for _, o := range opts {
		_, ok := filterInstructions[o.Value]
		assert.True(t, ok, o.Value)
	}

	opts[0].Label = "changed"
	assert.Equal(t, "Balanced & Nutritious", FilterOptions()[0].Label)
}
