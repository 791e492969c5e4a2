package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
	"go.uber.org/zap"
)

type StatsRecomputer interface {
	Recompute(ctx context.Context, userID uint, date time.Time) (*models.DailyStats, error)
}

type LogFoodInput struct {
	FoodID   uint            `json:"food_id" binding:"required"`
	AmountG  float64         `json:"amount_g"`
	MealType models.MealType `json:"meal_type"`
	Date     *time.Time      `json:"-"`
}

type LogRecipeInput struct {
	RecipeID uint            `json:"recipe_id" binding:"required"`
	MealType models.MealType `json:"meal_type"`
	Date     *time.Time      `json:"-"`
}

type MealService struct {
	meals   MealLogStore
	foods   FoodStore
	recipes RecipeStore
	stats   StatsRecomputer
	now     func() time.Time
}

func NewMealService(meals MealLogStore, foods FoodStore, recipes RecipeStore, stats StatsRecomputer) *MealService {
	return &MealService{meals: meals, foods: foods, recipes: recipes, stats: stats, now: time.Now}
}

func (s *MealService) mealType(t models.MealType) (models.MealType, error) {
	if t == "" {
		return utils.SuggestMealType(s.now().Hour()), nil
	}
	if !t.Valid() {
		return "", fmt.Errorf("unknown meal type %q: %w", t, utils.ErrValidation)
	}
	return t, nil
}

func (s *MealService) mealDate(d *time.Time) time.Time {
	if d == nil {
		return utils.DateOnly(s.now())
	}
	return utils.DateOnly(*d)
}

// refresh recomputes the day's stats. The meal change is already committed,
// so a failure here is logged and the stale row is left for the next recompute.
func (s *MealService) refresh(ctx context.Context, userID uint, date time.Time) {
	if _, err := s.stats.Recompute(ctx, userID, date); err != nil {
		logger.Error("recompute daily stats",
			zap.Uint("user_id", userID), zap.Time("date", date), zap.Error(err))
	}
}

// LogFood snapshots amount_g of a food into a new meal log.
func (s *MealService) LogFood(ctx context.Context, userID uint, in LogFoodInput) (*models.MealLog, error) {
	if in.AmountG <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", utils.ErrValidation)
	}
	mt, err := s.mealType(in.MealType)
	if err != nil {
		return nil, err
	}
	food, err := s.foods.FindByID(ctx, in.FoodID)
	if err != nil {
		return nil, err
	}

	snap := utils.ScaleNutrition(food, in.AmountG)
	amount := in.AmountG
	m := &models.MealLog{
		UserID:   userID,
		MealType: mt,
		FoodID:   &food.ID,
		AmountG:  &amount,
		Calories: snap.Calories,
		ProteinG: snap.ProteinG,
		CarbsG:   snap.CarbsG,
		FatsG:    snap.FatsG,
		LoggedAt: s.now(),
		MealDate: s.mealDate(in.Date),
	}
	if err := s.meals.Create(ctx, m); err != nil {
		return nil, err
	}
	m.Food = food

	s.refresh(ctx, userID, m.MealDate)
	return m, nil
}

// LogRecipe logs one serving of a saved recipe using its stored totals.
func (s *MealService) LogRecipe(ctx context.Context, userID uint, in LogRecipeInput) (*models.MealLog, error) {
	rec, err := s.recipes.FindForUser(ctx, userID, in.RecipeID)
	if err != nil {
		return nil, err
	}
	if in.MealType == "" && rec.MealType.Valid() {
		in.MealType = rec.MealType
	}
	mt, err := s.mealType(in.MealType)
	if err != nil {
		return nil, err
	}

	m := &models.MealLog{
		UserID:   userID,
		MealType: mt,
		RecipeID: &rec.ID,
		Calories: rec.TotalCalories,
		ProteinG: rec.TotalProteinG,
		CarbsG:   rec.TotalCarbsG,
		FatsG:    rec.TotalFatsG,
		LoggedAt: s.now(),
		MealDate: s.mealDate(in.Date),
	}
	if err := s.meals.Create(ctx, m); err != nil {
		return nil, err
	}
	m.Recipe = rec

	s.refresh(ctx, userID, m.MealDate)
	return m, nil
}

func (s *MealService) ListByDate(ctx context.Context, userID uint, date time.Time) ([]models.MealLog, error) {
	return s.meals.FindByUserDate(ctx, userID, utils.DateOnly(date))
}

// Delete removes one of the user's meals and recomputes that meal's day.
func (s *MealService) Delete(ctx context.Context, userID, mealID uint) error {
	m, err := s.meals.FindForUser(ctx, userID, mealID)
	if err != nil {
		return err
	}
	if err := s.meals.Delete(ctx, m); err != nil {
		return err
	}
	s.refresh(ctx, userID, m.MealDate)
	return nil
}

func (s *MealService) SuggestedMealType() models.MealType {
	return utils.SuggestMealType(s.now().Hour())
}
