package library

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pantrychef/internal/nutrition"
	"pantrychef/internal/recipe"
	"pantrychef/internal/store"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestLibrary() *Library {
	n := 0
	return New(store.NewMemoryStore(), zap.NewNop(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func pancakes() *recipe.Recipe {
	return &recipe.Recipe{
		Title: "Pancakes",
		Ingredients: []recipe.Ingredient{
			recipe.Measured("flour", 200, "g"),
			recipe.Measured("eggs", 2, ""),
		},
		Instructions: []recipe.Step{{Step: 1, Instruction: "Mix"}},
		Calories:     600,
		Servings:     2,
	}
}

func TestSaveRecipe(t *testing.T) {
	lib := newTestLibrary()
	ctx := context.Background()

	saved, created, err := lib.SaveRecipe(ctx, pancakes(), "Chef Marco")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "id-1", saved.ID)
	assert.Equal(t, "Chef Marco", saved.ChefName)
	require.NotNil(t, saved.SavedAt)
	assert.True(t, fixedNow.Equal(*saved.SavedAt))

	again := pancakes()
	again.Title = "pancakes"
	dup, created, err := lib.SaveRecipe(ctx, again, "Chef Emma")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "id-1", dup.ID)

	all, err := lib.SavedRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteRecipe(t *testing.T) {
	lib := newTestLibrary()
	ctx := context.Background()

	saved, _, err := lib.SaveRecipe(ctx, pancakes(), "")
	require.NoError(t, err)

	assert.ErrorIs(t, lib.DeleteRecipe(ctx, "missing"), ErrRecipeNotFound)
	require.NoError(t, lib.DeleteRecipe(ctx, saved.ID))

	all, err := lib.SavedRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistory_NewestFirstAndCapped(t *testing.T) {
	lib := newTestLibrary()
	ctx := context.Background()

	for i := 0; i < HistoryLimit+3; i++ {
		r := pancakes()
		r.Title = fmt.Sprintf("Recipe %d", i)
		require.NoError(t, lib.AppendHistory(ctx, r, "Chef Aiko"))
	}

	history, err := lib.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, HistoryLimit)
	assert.Equal(t, "Recipe 12", history[0].Title)
	assert.Equal(t, "Recipe 3", history[HistoryLimit-1].Title)
	assert.Equal(t, "Chef Aiko", history[0].ChefName)

	require.NoError(t, lib.ClearHistory(ctx))
	history, err = lib.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestProfile(t *testing.T) {
	lib := newTestLibrary()
	ctx := context.Background()

	_, err := lib.Profile(ctx)
	assert.ErrorIs(t, err, ErrNoProfile)

	assert.Error(t, lib.SaveProfile(ctx, nutrition.UserProfile{Age: 30}))

	p := nutrition.UserProfile{
		Age:           30,
		Gender:        "male",
		Weight:        70,
		Height:        170,
		ActivityLevel: nutrition.Moderate,
		Goal:          nutrition.Maintain,
	}
	require.NoError(t, lib.SaveProfile(ctx, p))

	got, err := lib.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestShoppingList(t *testing.T) {
	lib := newTestLibrary()
	ctx := context.Background()

	list, err := lib.ShoppingList(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = lib.AddToShoppingList(ctx, pancakes(), "r1")
	require.NoError(t, err)
	list, err = lib.AddToShoppingList(ctx, pancakes(), "r1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 400.0, list[0].Amount)

	list, err = lib.ToggleShoppingItem(ctx, 0)
	require.NoError(t, err)
	assert.True(t, list[0].Checked)

	_, err = lib.ToggleShoppingItem(ctx, 5)
	assert.Error(t, err)

	list, err = lib.ClearShoppingList(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "eggs", list[0].Ingredient)

	list, err = lib.RemoveShoppingItem(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = lib.AddToShoppingList(ctx, pancakes(), "r1")
	require.NoError(t, err)
	list, err = lib.ClearShoppingList(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, list)

	stored, err := lib.ShoppingList(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
