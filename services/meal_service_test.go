package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
)

var lunchTime = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

type mealEnv struct {
	profiles *memProfiles
	foods    *memFoods
	meals    *memMeals
	recipes  *memRecipes
	stats    *memStats
	alerts   *memAlerts
	rt       *fakeBroadcaster
	push     *fakePusher
	statsSvc *DailyStatsService
	mealSvc  *MealService
}

func newMealEnv() *mealEnv {
	e := &mealEnv{
		profiles: newMemProfiles(),
		foods: newMemFoods(models.Food{
			Name: "Granola", Calories: 200, ProteinG: 10, CarbsG: 30, FatsG: 5,
		}),
		meals:  newMemMeals(),
		stats:  newMemStats(),
		alerts: &memAlerts{},
		rt:     &fakeBroadcaster{},
		push:   &fakePusher{},
	}
	e.recipes = newMemRecipes(e.meals)
	bus := NewAlertBus(e.alerts, e.rt, e.push)
	e.statsSvc = NewDailyStatsService(e.profiles, e.meals, e.stats, bus)
	e.mealSvc = NewMealService(e.meals, e.foods, e.recipes, e.statsSvc)
	e.mealSvc.now = fixedClock(lunchTime)
	return e
}

func (e *mealEnv) row(t *testing.T, userID uint, date time.Time) *models.DailyStats {
	t.Helper()
	r, err := e.stats.Find(context.Background(), userID, utils.DateOnly(date))
	require.NoError(t, err)
	return r
}

func TestLogFood_ScalesAndRecomputes(t *testing.T) {
	e := newMealEnv()
	seedProfile(e.profiles, 1, models.GoalMaintain)

	m, err := e.mealSvc.LogFood(context.Background(), 1, LogFoodInput{FoodID: 1, AmountG: 150, MealType: models.MealBreakfast})
	require.NoError(t, err)
	assert.InDelta(t, 300, m.Calories, 1e-9)
	assert.InDelta(t, 15, m.ProteinG, 1e-9)
	assert.InDelta(t, 45, m.CarbsG, 1e-9)
	assert.InDelta(t, 7.5, m.FatsG, 1e-9)
	assert.Equal(t, 150.0, *m.AmountG)
	assert.Equal(t, utils.DateOnly(lunchTime), m.MealDate)
	assert.Equal(t, models.MealBreakfast, m.MealType)

	row := e.row(t, 1, lunchTime)
	assert.InDelta(t, 300, row.TotalCalories, 1e-9)
	assert.Equal(t, 1, row.MealsLogged)
	assert.Equal(t, 2008.2, row.TargetCalories)
	assert.InDelta(t, 150.615, row.TargetProteinG, 1e-9)
	assert.InDelta(t, 200.82, row.TargetCarbsG, 1e-9)
	assert.InDelta(t, 66.94, row.TargetFatsG, 1e-9)
}

func TestLogFood_DefaultsMealTypeFromClock(t *testing.T) {
	e := newMealEnv()
	m, err := e.mealSvc.LogFood(context.Background(), 1, LogFoodInput{FoodID: 1, AmountG: 100})
	require.NoError(t, err)
	assert.Equal(t, models.MealLunch, m.MealType)
}

func TestLogFood_Rejects(t *testing.T) {
	e := newMealEnv()
	seedProfile(e.profiles, 1, models.GoalMaintain)
	ctx := context.Background()

	_, err := e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 99, AmountG: 100})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	for _, amt := range []float64{0, -5} {
		_, err = e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: amt})
		assert.ErrorIs(t, err, utils.ErrValidation)
	}

	_, err = e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 100, MealType: "brunch"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	assert.Empty(t, e.meals.meals)
	assert.Zero(t, e.stats.upserts)
}

func TestRecompute_Idempotent(t *testing.T) {
	e := newMealEnv()
	seedProfile(e.profiles, 1, models.GoalLose)
	ctx := context.Background()

	_, err := e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 80})
	require.NoError(t, err)

	first, err := e.statsSvc.Recompute(ctx, 1, lunchTime)
	require.NoError(t, err)
	second, err := e.statsSvc.Recompute(ctx, 1, lunchTime)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, e.stats.rows, 1)
	assert.Equal(t, 1508.2, second.TargetCalories)
}

func TestRecompute_EmptyDay(t *testing.T) {
	e := newMealEnv()
	seedProfile(e.profiles, 1, models.GoalMaintain)

	row, err := e.statsSvc.Recompute(context.Background(), 1, lunchTime)
	require.NoError(t, err)
	assert.Zero(t, row.TotalCalories)
	assert.Zero(t, row.TotalProteinG)
	assert.Zero(t, row.TotalCarbsG)
	assert.Zero(t, row.TotalFatsG)
	assert.Zero(t, row.MealsLogged)
	assert.Equal(t, 2008.2, row.TargetCalories)
	assert.Equal(t, utils.DateOnly(lunchTime), row.Date)
}

func TestRecompute_NoProfileIsNoop(t *testing.T) {
	e := newMealEnv()

	_, err := e.mealSvc.LogFood(context.Background(), 1, LogFoodInput{FoodID: 1, AmountG: 100})
	require.NoError(t, err)

	row, err := e.statsSvc.Recompute(context.Background(), 1, lunchTime)
	assert.NoError(t, err)
	assert.Nil(t, row)
	assert.Empty(t, e.stats.rows)
}

func TestDeleteMeal_RestoresStats(t *testing.T) {
	e := newMealEnv()
	seedProfile(e.profiles, 1, models.GoalMaintain)
	ctx := context.Background()

	_, err := e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 120})
	require.NoError(t, err)
	before := *e.row(t, 1, lunchTime)

	extra, err := e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 60, MealType: models.MealSnack})
	require.NoError(t, err)
	assert.Equal(t, 2, e.row(t, 1, lunchTime).MealsLogged)

	require.NoError(t, e.mealSvc.Delete(ctx, 1, extra.ID))
	after := e.row(t, 1, lunchTime)
	assert.InDelta(t, before.TotalCalories, after.TotalCalories, 1e-9)
	assert.InDelta(t, before.TotalProteinG, after.TotalProteinG, 1e-9)
	assert.InDelta(t, before.TotalCarbsG, after.TotalCarbsG, 1e-9)
	assert.InDelta(t, before.TotalFatsG, after.TotalFatsG, 1e-9)
	assert.Equal(t, before.MealsLogged, after.MealsLogged)
}

func TestDeleteMeal_RecomputesTheMealsOwnDate(t *testing.T) {
	e := newMealEnv()
	seedProfile(e.profiles, 1, models.GoalMaintain)
	ctx := context.Background()
	yesterday := lunchTime.AddDate(0, 0, -1)

	m, err := e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 100, Date: &yesterday})
	require.NoError(t, err)
	assert.Equal(t, 1, e.row(t, 1, yesterday).MealsLogged)

	require.NoError(t, e.mealSvc.Delete(ctx, 1, m.ID))
	assert.Zero(t, e.row(t, 1, yesterday).MealsLogged)
	_, err = e.stats.Find(ctx, 1, utils.DateOnly(lunchTime))
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteMeal_OtherUser(t *testing.T) {
	e := newMealEnv()
	m, err := e.mealSvc.LogFood(context.Background(), 1, LogFoodInput{FoodID: 1, AmountG: 100})
	require.NoError(t, err)

	err = e.mealSvc.Delete(context.Background(), 2, m.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Len(t, e.meals.meals, 1)
}

func TestOverTargetAlertFiresOnCrossing(t *testing.T) {
	e := newMealEnv()
	seedProfile(e.profiles, 1, models.GoalMaintain)
	ctx := context.Background()

	_, err := e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 1000}) // 2000 kcal
	require.NoError(t, err)
	assert.Empty(t, e.alerts.alerts)

	_, err = e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 50}) // 2100 kcal
	require.NoError(t, err)
	require.Len(t, e.alerts.alerts, 1)
	assert.Equal(t, "warning", e.alerts.alerts[0].Type)
	assert.Contains(t, e.alerts.alerts[0].Message, "2008 kcal")

	_, err = e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 50}) // still over
	require.NoError(t, err)
	assert.Len(t, e.alerts.alerts, 1)
	assert.Len(t, e.push.bodies, 1)
	assert.Equal(t, []string{"stats.updated", "stats.updated", "alert.created", "stats.updated"}, e.rt.kinds())
}

func TestLogRecipe_UsesRecipeTotalsAndSurvivesRecipeDelete(t *testing.T) {
	e := newMealEnv()
	seedProfile(e.profiles, 1, models.GoalMaintain)
	ctx := context.Background()

	rec := &models.Recipe{UserID: 1, Title: "Oat bowl", MealType: models.MealBreakfast,
		TotalCalories: 420, TotalProteinG: 18, TotalCarbsG: 60, TotalFatsG: 11}
	require.NoError(t, e.recipes.Create(ctx, rec))

	m, err := e.mealSvc.LogRecipe(ctx, 1, LogRecipeInput{RecipeID: rec.ID})
	require.NoError(t, err)
	assert.Equal(t, models.MealBreakfast, m.MealType)
	assert.Equal(t, 420.0, m.Calories)
	assert.Nil(t, m.AmountG)
	assert.Nil(t, m.FoodID)

	_, err = e.mealSvc.LogRecipe(ctx, 2, LogRecipeInput{RecipeID: rec.ID})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	recipeSvc := NewRecipeService(e.recipes, e.profiles, nil, NewCandidateSlots(0), e.mealSvc)
	require.NoError(t, recipeSvc.Delete(ctx, 1, rec.ID))

	stored, err := e.meals.FindForUser(ctx, 1, m.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RecipeID)
	assert.Equal(t, 420.0, stored.Calories)
	assert.Equal(t, 420.0, e.row(t, 1, lunchTime).TotalCalories)
}

func TestListByDate(t *testing.T) {
	e := newMealEnv()
	ctx := context.Background()
	other := lunchTime.AddDate(0, 0, 2)

	_, err := e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 100})
	require.NoError(t, err)
	_, err = e.mealSvc.LogFood(ctx, 1, LogFoodInput{FoodID: 1, AmountG: 100, Date: &other})
	require.NoError(t, err)

	meals, err := e.mealSvc.ListByDate(ctx, 1, lunchTime.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Len(t, meals, 1)
}
