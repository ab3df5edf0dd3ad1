package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantrychef/internal/generator"
	"pantrychef/internal/nutrition"
	"pantrychef/internal/prompt"
	"pantrychef/internal/recipe"
	"pantrychef/internal/shopping"
	"pantrychef/internal/timer"
)

// DefaultGenerateTimeout bounds a single recipe generation including the model call.
const DefaultGenerateTimeout = 45 * time.Second

const msgInvalidBody = "Invalid request body"

// RecipeGenerator defines the interface for generating recipes.
type RecipeGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// Library defines the interface for the user's persisted recipe data.
type Library interface {
	SavedRecipes(ctx context.Context) ([]recipe.Recipe, error)
	SaveRecipe(ctx context.Context, r *recipe.Recipe, chefName string) (*recipe.Recipe, bool, error)
	DeleteRecipe(ctx context.Context, id string) error
	History(ctx context.Context) ([]recipe.Recipe, error)
	AppendHistory(ctx context.Context, r *recipe.Recipe, chefName string) error
	ClearHistory(ctx context.Context) error
	Profile(ctx context.Context) (*nutrition.UserProfile, error)
	SaveProfile(ctx context.Context, p nutrition.UserProfile) error
	ShoppingList(ctx context.Context) (shopping.List, error)
	AddToShoppingList(ctx context.Context, r *recipe.Recipe, recipeID string) (shopping.List, error)
	ToggleShoppingItem(ctx context.Context, index int) (shopping.List, error)
	RemoveShoppingItem(ctx context.Context, index int) (shopping.List, error)
	ClearShoppingList(ctx context.Context, all bool) (shopping.List, error)
}

// TimerBoard defines the interface for managing cooking timers.
type TimerBoard interface {
	Add(name string, minutes int) (timer.Timer, error)
	AddFromStep(step recipe.Step) (timer.Timer, error)
	Start(id string) (timer.Timer, error)
	Pause(id string) (timer.Timer, error)
	Remove(id string) error
	List() []timer.Timer
}

// Handler handles HTTP requests.
type Handler struct {
	Generator       RecipeGenerator
	Library         Library
	Timers          TimerBoard
	GenerateTimeout time.Duration
	log             *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(gen RecipeGenerator, library Library, timers TimerBoard, log *zap.Logger) *Handler {
	return &Handler{
		Generator:       gen,
		Library:         library,
		Timers:          timers,
		GenerateTimeout: DefaultGenerateTimeout,
		log:             log,
	}
}

// Generate handles recipe generation from a list of ingredients.
func (h *Handler) Generate(c *gin.Context) {
	var req generator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	// Create a context with a timeout for the model call
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.GenerateTimeout)
	defer cancel()

	res, err := h.Generator.Generate(ctx, req)
	if err != nil {
		var genErr *generator.Error
		if errors.As(err, &genErr) {
			c.JSON(genErr.StatusCode(), gin.H{"error": genErr.Message})
			return
		}
		h.log.Error("unclassified generation error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": generator.MsgGenerationFailed})
		return
	}

	if err := h.Library.AppendHistory(c.Request.Context(), res.Recipe, res.ChefName); err != nil {
		h.log.Warn("failed to record recipe history", zap.Error(err))
	}

	c.JSON(http.StatusOK, res)
}

// Filters lists the supported health filters.
func (h *Handler) Filters(c *gin.Context) {
	c.JSON(http.StatusOK, prompt.FilterOptions())
}

type scaleRequest struct {
	Recipe   *recipe.Recipe `json:"recipe" binding:"required"`
	Servings int            `json:"servings"`
}

// ScaleRecipe rescales a recipe to a new serving count.
func (h *Handler) ScaleRecipe(c *gin.Context) {
	var req scaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	scaled, err := recipe.Scale(req.Recipe, req.Servings)
	if err != nil {
		if errors.Is(err, recipe.ErrUnscalableRecipe) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scaled)
}

type scoreRequest struct {
	Recipe *recipe.Recipe `json:"recipe" binding:"required"`
}

// ScoreRecipe rates a recipe's nutrition.
func (h *Handler) ScoreRecipe(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":            nutrition.Score(req.Recipe),
		"macroPercentages": nutrition.MacroPercentages(req.Recipe),
	})
}

// ComputeGoals derives daily nutrition goals from the posted profile.
func (h *Handler) ComputeGoals(c *gin.Context) {
	var p nutrition.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, nutrition.ComputeGoals(p))
}
