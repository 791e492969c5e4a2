package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/services"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(m *services.MealService) *MealController {
	return &MealController{Meals: m}
}

type logFoodReq struct {
	FoodID   uint            `json:"food_id" binding:"required"`
	AmountG  float64         `json:"amount_g"`
	MealType models.MealType `json:"meal_type"`
	Date     string          `json:"date"`
}

type logRecipeReq struct {
	RecipeID uint            `json:"recipe_id" binding:"required"`
	MealType models.MealType `json:"meal_type"`
	Date     string          `json:"date"`
}

// bodyDate parses an optional YYYY-MM-DD; empty means today.
func bodyDate(c *gin.Context, v string) (*time.Time, bool) {
	if v == "" {
		return nil, true
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}

// GET /meals?date=YYYY-MM-DD
func (mc *MealController) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date", time.Now())
	if !ok {
		return
	}
	meals, err := mc.Meals.ListByDate(c.Request.Context(), uid, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":                date.Format(dateLayout),
		"meals":               meals,
		"suggested_meal_type": mc.Meals.SuggestedMealType(),
	})
}

func (mc *MealController) LogFood(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var body logFoodReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, ok := bodyDate(c, body.Date)
	if !ok {
		return
	}

	meal, err := mc.Meals.LogFood(c.Request.Context(), uid, services.LogFoodInput{
		FoodID: body.FoodID, AmountG: body.AmountG, MealType: body.MealType, Date: date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (mc *MealController) LogRecipe(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var body logRecipeReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, ok := bodyDate(c, body.Date)
	if !ok {
		return
	}

	meal, err := mc.Meals.LogRecipe(c.Request.Context(), uid, services.LogRecipeInput{
		RecipeID: body.RecipeID, MealType: body.MealType, Date: date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (mc *MealController) Delete(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := mc.Meals.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
