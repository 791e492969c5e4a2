package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/services"
)

// DevController backs the non-production helper routes.
type DevController struct {
	Push     *services.PushService
	Uploader services.ImageUploader
}

func NewDevController(p *services.PushService, u services.ImageUploader) *DevController {
	return &DevController{Push: p, Uploader: u}
}

type pushReq struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// POST /dev/push-test
func (d *DevController) PushTest(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var req pushReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		req.Title = "Test alert"
	}
	if req.Body == "" {
		req.Body = "This is only a test."
	}
	if req.Data == nil {
		req.Data = map[string]string{"type": "info"}
	}

	d.Push.PushToUser(c.Request.Context(), uid, req.Title, req.Body, req.Data)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /dev/upload
func (d *DevController) UploadImage(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if d.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}

	url, err := d.Uploader.UploadBase64Image(c.Request.Context(), req.ImageBase64, "general/dev-upload")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
