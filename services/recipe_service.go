package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const defaultMealCalories = 600.0

var errNoPendingRecipes = fmt.Errorf("no pending recipes, generate some first: %w", utils.ErrNotFound)

type RecipeGenerator interface {
	GenerateRecipes(ctx context.Context, ingredients string, mealType models.MealType, servings int, targetPerServing float64) ([]RecipeCandidate, error)
}

type RecipeLogger interface {
	LogRecipe(ctx context.Context, userID uint, in LogRecipeInput) (*models.MealLog, error)
}

type GenerateRecipesInput struct {
	Ingredients string          `json:"ingredients" binding:"required"`
	MealType    models.MealType `json:"meal_type"`
	Servings    int             `json:"servings"`
}

type SelectRecipeInput struct {
	Token    string          `json:"token"`
	Index    *int            `json:"index" binding:"required"`
	MealType models.MealType `json:"meal_type"`
	LogNow   bool            `json:"log_now"`
}

type RecipeService struct {
	recipes  RecipeStore
	profiles ProfileStore
	gen      RecipeGenerator
	slots    *CandidateSlots
	meals    RecipeLogger
}

func NewRecipeService(recipes RecipeStore, profiles ProfileStore, gen RecipeGenerator, slots *CandidateSlots, meals RecipeLogger) *RecipeService {
	return &RecipeService{recipes: recipes, profiles: profiles, gen: gen, slots: slots, meals: meals}
}

// caloriesPerServing splits a third of the daily target across servings.
func (s *RecipeService) caloriesPerServing(ctx context.Context, userID uint, servings int) float64 {
	perMeal := defaultMealCalories
	if p, err := s.profiles.FindByUserID(ctx, userID); err == nil && p.TargetCalories > 0 {
		perMeal = p.TargetCalories / 3
	}
	return perMeal / float64(servings)
}

// Generate asks for new candidates and parks them in the user's slot,
// replacing any pending set. An unparseable reply clears the slot; a provider
// outage leaves it alone.
func (s *RecipeService) Generate(ctx context.Context, userID uint, in GenerateRecipesInput) (*CandidateSession, error) {
	in.Ingredients = strings.TrimSpace(in.Ingredients)
	if in.Ingredients == "" {
		return nil, fmt.Errorf("ingredients are required: %w", utils.ErrValidation)
	}
	if in.Servings == 0 {
		in.Servings = 1
	}
	if in.Servings < 1 {
		return nil, fmt.Errorf("servings must be at least 1: %w", utils.ErrValidation)
	}
	if in.MealType == "" {
		in.MealType = models.MealLunch
	}
	if !in.MealType.Valid() {
		return nil, fmt.Errorf("unknown meal type %q: %w", in.MealType, utils.ErrValidation)
	}

	target := s.caloriesPerServing(ctx, userID, in.Servings)
	candidates, err := s.gen.GenerateRecipes(ctx, in.Ingredients, in.MealType, in.Servings, target)
	if err != nil {
		if errors.Is(err, utils.ErrParse) {
			s.slots.Clear(userID)
		}
		logger.Warn("recipe generation failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return s.slots.Put(userID, CandidateSession{
		Ingredients: in.Ingredients,
		MealType:    in.MealType,
		Servings:    in.Servings,
		Candidates:  candidates,
	}), nil
}

func (s *RecipeService) Pending(userID uint) (*CandidateSession, error) {
	sess, ok := s.slots.Get(userID)
	if !ok {
		return nil, errNoPendingRecipes
	}
	return sess, nil
}

// Select saves one pending candidate as a recipe, consuming the slot, and
// optionally logs it for today.
func (s *RecipeService) Select(ctx context.Context, userID uint, in SelectRecipeInput) (*models.Recipe, *models.MealLog, error) {
	if in.Index == nil || *in.Index < 0 {
		return nil, nil, fmt.Errorf("recipe index out of range: %w", utils.ErrValidation)
	}
	if in.MealType != "" && !in.MealType.Valid() {
		return nil, nil, fmt.Errorf("unknown meal type %q: %w", in.MealType, utils.ErrValidation)
	}
	sess, err := s.slots.Take(userID, in.Token)
	if err != nil {
		return nil, nil, err
	}
	// the index is checked against the session actually taken
	if *in.Index >= len(sess.Candidates) {
		s.slots.Restore(userID, sess)
		return nil, nil, fmt.Errorf("recipe index out of range: %w", utils.ErrValidation)
	}

	c := sess.Candidates[*in.Index]
	mealType := in.MealType
	if mealType == "" {
		mealType = sess.MealType
	}
	ingredients, _ := json.Marshal(map[string]string{"source": "ai_generated", "raw": sess.Ingredients})

	rec := &models.Recipe{
		UserID:          userID,
		Title:           c.Name,
		MealType:        mealType,
		Instructions:    c.Instructions,
		IngredientsData: datatypes.JSON(ingredients),
		TotalCalories:   c.Calories,
		TotalProteinG:   c.ProteinG,
		TotalCarbsG:     c.CarbsG,
		TotalFatsG:      c.FatsG,
		PrepTimeMinutes: c.PrepTime + c.CookTime,
		Servings:        1,
		IsAIGenerated:   true,
	}
	if err := s.recipes.Create(ctx, rec); err != nil {
		return nil, nil, err
	}

	if !in.LogNow {
		return rec, nil, nil
	}
	meal, err := s.meals.LogRecipe(ctx, userID, LogRecipeInput{RecipeID: rec.ID, MealType: mealType})
	if err != nil {
		return rec, nil, err
	}
	return rec, meal, nil
}

func (s *RecipeService) Discard(userID uint) {
	s.slots.Clear(userID)
}

func (s *RecipeService) List(ctx context.Context, userID uint) ([]models.Recipe, error) {
	return s.recipes.ListByUser(ctx, userID)
}

// Delete removes one of the user's recipes. Meals logged from it keep their
// nutrition and lose the link.
func (s *RecipeService) Delete(ctx context.Context, userID, id uint) error {
	rec, err := s.recipes.FindForUser(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.recipes.Delete(ctx, rec)
}
