package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/services"
)

type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(p *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: p}
}

// GET /user/profile
func (pc *ProfileController) GetProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := pc.Profiles.View(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /user/profile
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := pc.Profiles.Update(c.Request.Context(), uid, input); err != nil {
		respondError(c, err)
		return
	}
	view, err := pc.Profiles.View(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
