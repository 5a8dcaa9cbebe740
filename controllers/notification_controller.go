package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Users *services.UserService
}

func NewNotificationController(users *services.UserService) *NotificationController {
	return &NotificationController{Users: users}
}

type toggleReq struct {
	Enabled   bool   `json:"enabled"`
	PushToken string `json:"pushToken"`
	Platform  string `json:"platform"`
}

// POST /user/notifications/toggle
func (nc *NotificationController) Toggle(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	snap, err := nc.Users.ToggleNotifications(c.Request.Context(), c.GetString("uid"), req.Enabled, req.PushToken, req.Platform)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": snap.NotificationsEnabled,
	})
}
