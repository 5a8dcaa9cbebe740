package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

// ActivityController receives the client's app-state transitions and
// feeds them to the streak tracker.
type ActivityController struct {
	Tracker *services.ActivityTracker
}

func NewActivityController(tracker *services.ActivityTracker) *ActivityController {
	return &ActivityController{Tracker: tracker}
}

// POST /activity/foreground
func (ac *ActivityController) Foreground(c *gin.Context) {
	if err := ac.Tracker.Foreground(c.GetString("uid")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tracking"})
}

// POST /activity/background
func (ac *ActivityController) Background(c *gin.Context) {
	if err := ac.Tracker.Background(c.GetString("uid")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stopped"})
}
