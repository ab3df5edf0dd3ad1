package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantrychef/internal/recipe"
	"pantrychef/internal/timer"
)

type timerRequest struct {
	Name    string       `json:"name"`
	Minutes int          `json:"minutes"`
	Step    *recipe.Step `json:"step"`
}

// ListTimers returns every timer.
func (h *Handler) ListTimers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Timers.List())
}

// AddTimer creates a paused timer, either named with a length in minutes or
// taken from a recipe step.
func (h *Handler) AddTimer(c *gin.Context) {
	var req timerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	var t timer.Timer
	var err error
	if req.Step != nil {
		t, err = h.Timers.AddFromStep(*req.Step)
	} else {
		t, err = h.Timers.Add(req.Name, req.Minutes)
	}
	if err != nil {
		timerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// StartTimer resumes a timer.
func (h *Handler) StartTimer(c *gin.Context) {
	t, err := h.Timers.Start(c.Param("id"))
	if err != nil {
		timerError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// PauseTimer pauses a timer.
func (h *Handler) PauseTimer(c *gin.Context) {
	t, err := h.Timers.Pause(c.Param("id"))
	if err != nil {
		timerError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// RemoveTimer deletes a timer.
func (h *Handler) RemoveTimer(c *gin.Context) {
	if err := h.Timers.Remove(c.Param("id")); err != nil {
		timerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func timerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, timer.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, timer.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, timer.ErrCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
