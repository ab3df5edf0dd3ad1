package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantrychef/internal/ingredients"
)

// SearchIngredients returns catalog ingredients matching q.
func (h *Handler) SearchIngredients(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
		return
	}
	c.JSON(http.StatusOK, ingredients.Search(c.Query("q"), limit))
}

// Substitutes returns known replacements for an ingredient.
func (h *Handler) Substitutes(c *gin.Context) {
	name := c.Param("name")
	c.JSON(http.StatusOK, gin.H{
		"ingredient":  name,
		"substitutes": ingredients.Substitutes(name),
	})
}

// IngredientCategories returns the catalog grouped by category.
func (h *Handler) IngredientCategories(c *gin.Context) {
	c.JSON(http.StatusOK, ingredients.Categories())
}
