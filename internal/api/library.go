package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantrychef/internal/library"
	"pantrychef/internal/nutrition"
	"pantrychef/internal/recipe"
	"pantrychef/internal/shopping"
)

const msgStorage = "Failed to access saved data. Please try again."

// ListSaved returns every saved recipe.
func (h *Handler) ListSaved(c *gin.Context) {
	recipes, err := h.Library.SavedRecipes(c.Request.Context())
	if err != nil {
		h.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

type saveRequest struct {
	Recipe   *recipe.Recipe `json:"recipe" binding:"required"`
	ChefName string         `json:"chefName"`
}

// SaveRecipe saves a recipe. Saving a title that already exists returns the
// existing entry with 200 instead of 201.
func (h *Handler) SaveRecipe(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	saved, created, err := h.Library.SaveRecipe(c.Request.Context(), req.Recipe, req.ChefName)
	if err != nil {
		h.storageError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, saved)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteSaved removes a saved recipe by id.
func (h *Handler) DeleteSaved(c *gin.Context) {
	err := h.Library.DeleteRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, library.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.storageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// History returns recent generations, newest first.
func (h *Handler) History(c *gin.Context) {
	recipes, err := h.Library.History(c.Request.Context())
	if err != nil {
		h.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// ClearHistory forgets recent generations.
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.Library.ClearHistory(c.Request.Context()); err != nil {
		h.storageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfile returns the stored nutrition profile.
func (h *Handler) GetProfile(c *gin.Context) {
	p, ok := h.loadProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// PutProfile validates and stores the nutrition profile.
func (h *Handler) PutProfile(c *gin.Context) {
	var p nutrition.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Library.SaveProfile(c.Request.Context(), p); err != nil {
		h.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ProfileGoals returns the daily goals for the stored profile.
func (h *Handler) ProfileGoals(c *gin.Context) {
	p, ok := h.loadProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, nutrition.ComputeGoals(*p))
}

func (h *Handler) loadProfile(c *gin.Context) (*nutrition.UserProfile, bool) {
	p, err := h.Library.Profile(c.Request.Context())
	if err != nil {
		if errors.Is(err, library.ErrNoProfile) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not set"})
			return nil, false
		}
		h.storageError(c, err)
		return nil, false
	}
	return p, true
}

// ShoppingList returns the shopping list.
func (h *Handler) ShoppingList(c *gin.Context) {
	list, err := h.Library.ShoppingList(c.Request.Context())
	if err != nil {
		h.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ShoppingSummary returns how many items are on the list and how many are checked.
func (h *Handler) ShoppingSummary(c *gin.Context) {
	list, err := h.Library.ShoppingList(c.Request.Context())
	if err != nil {
		h.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   len(list),
		"checked": list.CheckedCount(),
	})
}

type shoppingAddRequest struct {
	Recipe   *recipe.Recipe `json:"recipe" binding:"required"`
	RecipeID string         `json:"recipeId"`
}

// AddToShoppingList merges a recipe's ingredients into the list.
func (h *Handler) AddToShoppingList(c *gin.Context) {
	var req shoppingAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	list, err := h.Library.AddToShoppingList(c.Request.Context(), req.Recipe, req.RecipeID)
	h.shoppingResult(c, list, err)
}

// ToggleShoppingItem flips an item's checked state.
func (h *Handler) ToggleShoppingItem(c *gin.Context) {
	index, ok := shoppingIndex(c)
	if !ok {
		return
	}
	list, err := h.Library.ToggleShoppingItem(c.Request.Context(), index)
	h.shoppingResult(c, list, err)
}

// RemoveShoppingItem deletes an item.
func (h *Handler) RemoveShoppingItem(c *gin.Context) {
	index, ok := shoppingIndex(c)
	if !ok {
		return
	}
	list, err := h.Library.RemoveShoppingItem(c.Request.Context(), index)
	h.shoppingResult(c, list, err)
}

// ClearShoppingList drops checked items, or every item with scope=all.
func (h *Handler) ClearShoppingList(c *gin.Context) {
	var all bool
	switch c.DefaultQuery("scope", "checked") {
	case "checked":
	case "all":
		all = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be checked or all"})
		return
	}
	list, err := h.Library.ClearShoppingList(c.Request.Context(), all)
	h.shoppingResult(c, list, err)
}

func (h *Handler) shoppingResult(c *gin.Context, list shopping.List, err error) {
	if err != nil {
		if errors.Is(err, shopping.ErrIndexOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list item not found"})
			return
		}
		h.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func shoppingIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a number"})
		return 0, false
	}
	return index, true
}

func (h *Handler) storageError(c *gin.Context, err error) {
	h.log.Error("storage error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorage})
}
