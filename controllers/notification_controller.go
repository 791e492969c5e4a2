package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/services"
)

type NotificationController struct {
	Push   *services.PushService
	Alerts *services.AlertBus
}

func NewNotificationController(p *services.PushService, a *services.AlertBus) *NotificationController {
	return &NotificationController{Push: p, Alerts: a}
}

type toggleReq struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// POST /user/notifications/toggle
func (nc *NotificationController) Toggle(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	// applies to every device the user registered
	if err := nc.Push.SetNotifications(c.Request.Context(), uid, *req.Enabled); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": *req.Enabled,
	})
}

// GET /alerts
func (nc *NotificationController) ListAlerts(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	alerts, err := nc.Alerts.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}
