package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachariahbioto-bot/Nutrition/models"
)

func referenceProfile(goal models.Goal) *models.Profile {
	return &models.Profile{
		Age:            25,
		Gender:         models.GenderMale,
		HeightCm:       170,
		WeightKg:       70,
		ActivityFactor: 1.2,
		Goal:           goal,
	}
}

func TestComputeEnergyTargets_Goals(t *testing.T) {
	cases := []struct {
		goal   models.Goal
		target float64
	}{
		{models.GoalMaintain, 2008.2},
		{models.GoalLose, 1508.2},
		{models.GoalGain, 2308.2},
		{models.Goal("unknown"), 2008.2},
	}
	for _, tc := range cases {
		t.Run(string(tc.goal), func(t *testing.T) {
			got, ok := ComputeEnergyTargets(referenceProfile(tc.goal))
			require.True(t, ok)
			assert.InDelta(t, 1673.5, got.BMR, 1e-9)
			assert.InDelta(t, 2008.2, got.TDEE, 1e-9)
			assert.InDelta(t, tc.target, got.TargetCalories, 1e-9)
		})
	}
}

func TestComputeEnergyTargets_Female(t *testing.T) {
	p := referenceProfile(models.GoalMaintain)
	p.Gender = models.GenderFemale

	got, ok := ComputeEnergyTargets(p)
	require.True(t, ok)
	// 10*70 + 6.25*170 - 5*25 - 161
	assert.InDelta(t, 1507.5, got.BMR, 1e-9)
	assert.InDelta(t, 1809.0, got.TDEE, 1e-9)
}

func TestComputeEnergyTargets_IsPure(t *testing.T) {
	p := referenceProfile(models.GoalLose)
	first, _ := ComputeEnergyTargets(p)
	second, _ := ComputeEnergyTargets(p)
	assert.Equal(t, first, second)
}

func TestComputeEnergyTargets_MissingInputs(t *testing.T) {
	cases := []struct {
		name string
		mut  func(p *models.Profile)
	}{
		{"no age", func(p *models.Profile) { p.Age = 0 }},
		{"no weight", func(p *models.Profile) { p.WeightKg = 0 }},
		{"no height", func(p *models.Profile) { p.HeightCm = 0 }},
		{"no gender", func(p *models.Profile) { p.Gender = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := referenceProfile(models.GoalMaintain)
			p.BMR, p.TDEE, p.TargetCalories = 1, 2, 3
			tc.mut(p)

			_, ok := ComputeEnergyTargets(p)
			assert.False(t, ok)
			assert.False(t, ApplyEnergyTargets(p))
			assert.Equal(t, []float64{1, 2, 3}, []float64{p.BMR, p.TDEE, p.TargetCalories})
		})
	}
	_, ok := ComputeEnergyTargets(nil)
	assert.False(t, ok)
}

func TestComputeEnergyTargets_ZeroActivity(t *testing.T) {
	p := referenceProfile(models.GoalLose)
	p.ActivityFactor = 0

	got, ok := ComputeEnergyTargets(p)
	require.True(t, ok)
	assert.Equal(t, 0.0, got.TDEE)
	assert.Equal(t, -500.0, got.TargetCalories)
}

func TestApplyEnergyTargets(t *testing.T) {
	p := referenceProfile(models.GoalGain)
	require.True(t, ApplyEnergyTargets(p))
	assert.InDelta(t, 1673.5, p.BMR, 1e-9)
	assert.InDelta(t, 2008.2, p.TDEE, 1e-9)
	assert.InDelta(t, 2308.2, p.TargetCalories, 1e-9)
}

func TestAllocateMacros(t *testing.T) {
	got := AllocateMacros(2000, MacroRatios{Protein: 30, Carbs: 40, Fats: 30})
	assert.InDelta(t, 150, got.ProteinG, 1e-9)
	assert.InDelta(t, 200, got.CarbsG, 1e-9)
	assert.InDelta(t, 66.67, got.FatsG, 0.01)

	assert.Equal(t, MacroGrams{}, AllocateMacros(0, MacroRatios{Protein: 30, Carbs: 40, Fats: 30}))

	// ratios are not normalized
	over := AllocateMacros(1000, MacroRatios{Protein: 100, Carbs: 100, Fats: 0})
	assert.InDelta(t, 250, over.ProteinG, 1e-9)
	assert.InDelta(t, 250, over.CarbsG, 1e-9)
	assert.Equal(t, 0.0, over.FatsG)
}

func TestScaleNutrition(t *testing.T) {
	food := &models.Food{Calories: 200, ProteinG: 10, CarbsG: 20, FatsG: 8}

	got := ScaleNutrition(food, 150)
	assert.InDelta(t, 300, got.Calories, 1e-9)
	assert.InDelta(t, 15, got.ProteinG, 1e-9)
	assert.InDelta(t, 30, got.CarbsG, 1e-9)
	assert.InDelta(t, 12, got.FatsG, 1e-9)

	assert.Equal(t, NutritionSnapshot{}, ScaleNutrition(food, 0))
}

func TestSumMeals(t *testing.T) {
	assert.Equal(t, NutritionSnapshot{}, SumMeals(nil))

	got := SumMeals([]models.MealLog{
		{Calories: 100, ProteinG: 1, CarbsG: 2, FatsG: 3},
		{Calories: 50.5, ProteinG: 4, CarbsG: 5, FatsG: 6},
	})
	assert.InDelta(t, 150.5, got.Calories, 1e-9)
	assert.InDelta(t, 5, got.ProteinG, 1e-9)
	assert.InDelta(t, 7, got.CarbsG, 1e-9)
	assert.InDelta(t, 9, got.FatsG, 1e-9)
}

func TestNewProgress(t *testing.T) {
	t.Run("zero target", func(t *testing.T) {
		p := NewProgress(350, 0)
		assert.Equal(t, 0.0, p.Percent)
		assert.Equal(t, -350.0, p.Remaining)
	})
	t.Run("under target", func(t *testing.T) {
		p := NewProgress(500, 2008.2)
		assert.Equal(t, 24.9, p.Percent)
		assert.Equal(t, 1508.2, p.Remaining)
	})
	t.Run("over target is not clamped", func(t *testing.T) {
		p := NewProgress(2500, 2000)
		assert.Equal(t, 125.0, p.Percent)
		assert.Equal(t, -500.0, p.Remaining)
	})
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2026, 10, 18, 23, 45, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), DateOnly(in))
}

func TestSuggestMealType(t *testing.T) {
	cases := map[int]models.MealType{
		5:  models.MealSnack,
		6:  models.MealBreakfast,
		10: models.MealBreakfast,
		11: models.MealLunch,
		15: models.MealSnack,
		17: models.MealDinner,
		21: models.MealSnack,
	}
	for hour, want := range cases {
		assert.Equal(t, want, SuggestMealType(hour), "hour %d", hour)
	}
}

func TestIsValidActivityFactor(t *testing.T) {
	assert.True(t, IsValidActivityFactor(1.375))
	assert.False(t, IsValidActivityFactor(1.3))
}

func TestProfileBMI(t *testing.T) {
	got := ProfileBMI(&models.Profile{HeightCm: 170, WeightKg: 70})
	require.NotNil(t, got)
	assert.Equal(t, 24.2, got.Value)
	assert.Equal(t, "Normal weight", got.Category)

	assert.Nil(t, ProfileBMI(&models.Profile{}))
}
