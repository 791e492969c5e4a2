package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/services"
)

// DeviceController registers phones for over-target push alerts.
type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{Push: ps}
}

// POST /user/devices  { "platform": "android"|"ios", "token": "<fcm/apns token>" }
// Registering a token again refreshes its SNS endpoint and keeps the
// notification setting.
func (dc *DeviceController) Register(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// unknown platform is 400, SNS not configured or failing is 502
	dev, err := dc.Push.RegisterDevice(c.Request.Context(), uid, req.Platform, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id":    dev.ID,
		"platform":     dev.Platform,
		"enabled":      dev.Enabled,
		"endpoint_arn": dev.EndpointARN,
	})
}
