package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/services"
)

type FoodController struct {
	Foods *services.FoodService
}

func NewFoodController(f *services.FoodService) *FoodController {
	return &FoodController{Foods: f}
}

// GET /foods/search?q=apple&page=1
func (fc *FoodController) Search(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	out, err := fc.Foods.Search(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (fc *FoodController) Import(c *gin.Context) {
	var req services.ImportFoodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	food, err := fc.Foods.Import(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (fc *FoodController) CreateCustom(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.CustomFoodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	food, err := fc.Foods.CreateCustom(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

// POST /foods/recognize  { "image_base64": "data:…"}
func (fc *FoodController) Recognize(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	out, err := fc.Foods.Recognize(c.Request.Context(), req.ImageBase64)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (fc *FoodController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	food, err := fc.Foods.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}
