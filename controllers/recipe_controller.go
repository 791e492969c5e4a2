package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/services"
	"github.com/zachariahbioto-bot/Nutrition/utils"
)

type RecipeController struct {
	Recipes *services.RecipeService
}

func NewRecipeController(r *services.RecipeService) *RecipeController {
	return &RecipeController{Recipes: r}
}

// POST /recipes/generate
// A provider outage is not a client error: it answers 200 with no candidates.
func (rc *RecipeController) Generate(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.GenerateRecipesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := rc.Recipes.Generate(c.Request.Context(), uid, req)
	if errors.Is(err, utils.ErrExternalService) {
		c.JSON(http.StatusOK, gin.H{
			"candidates": []services.RecipeCandidate{},
			"message":    "Recipe suggestions are unavailable right now, try again shortly.",
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// GET /recipes/pending
func (rc *RecipeController) Pending(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	sess, err := rc.Recipes.Pending(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// POST /recipes/select
func (rc *RecipeController) Select(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.SelectRecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, meal, err := rc.Recipes.Select(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe, "meal": meal})
}

// DELETE /recipes/pending
func (rc *RecipeController) Discard(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	rc.Recipes.Discard(uid)
	c.Status(http.StatusNoContent)
}

func (rc *RecipeController) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := rc.Recipes.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (rc *RecipeController) Delete(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := rc.Recipes.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
