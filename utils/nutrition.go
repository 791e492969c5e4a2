package utils

import (
	"math"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/models"
)

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0

	loseDeficitKcal = 500.0 // ~0.5 kg/week
	gainSurplusKcal = 300.0 // lean bulk
)

// EnergyTargets is the derived part of a profile.
type EnergyTargets struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories float64 `json:"target_calories"`
}

// MacroRatios are percentages of the calorie target. They are not required to sum to 100.
type MacroRatios struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// MacroGrams is a gram allocation of protein, carbohydrate and fat.
type MacroGrams struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// NutritionSnapshot is what a MealLog copies at log time.
type NutritionSnapshot struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// Progress is a consumed-vs-target pair ready for display.
type Progress struct {
	Consumed  float64 `json:"consumed"`
	Target    float64 `json:"target"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
}

func Round2(x float64) float64 { return math.Round(x*100) / 100 }
func Round1(x float64) float64 { return math.Round(x*10) / 10 }

// IsValidActivityFactor reports whether f is one of models.ActivityFactors.
func IsValidActivityFactor(f float64) bool {
	for _, v := range models.ActivityFactors {
		if v == f {
			return true
		}
	}
	return false
}

// CalculateBMR uses Mifflin-St Jeor. Anything other than female takes the male constant.
func CalculateBMR(gender models.Gender, age int, heightCm, weightKg float64) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == models.GenderFemale {
		bmr -= 161
	} else {
		bmr += 5
	}
	return Round2(bmr)
}

func CalculateTDEE(bmr, activityFactor float64) float64 {
	if bmr == 0 || activityFactor == 0 {
		return 0
	}
	return Round2(bmr * activityFactor)
}

func CalculateTargetCalories(tdee float64, goal models.Goal) float64 {
	switch goal {
	case models.GoalLose:
		return Round2(tdee - loseDeficitKcal)
	case models.GoalGain:
		return Round2(tdee + gainSurplusKcal)
	default:
		return Round2(tdee)
	}
}

// ComputeEnergyTargets derives BMR, TDEE and the goal-adjusted calorie target.
// ok is false when age, weight, height or gender is missing; callers must then
// leave the stored values alone.
func ComputeEnergyTargets(p *models.Profile) (EnergyTargets, bool) {
	if p == nil || p.Age == 0 || p.WeightKg == 0 || p.HeightCm == 0 || p.Gender == "" {
		return EnergyTargets{}, false
	}
	bmr := CalculateBMR(p.Gender, p.Age, p.HeightCm, p.WeightKg)
	tdee := CalculateTDEE(bmr, p.ActivityFactor)
	return EnergyTargets{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: CalculateTargetCalories(tdee, p.Goal),
	}, true
}

// ApplyEnergyTargets writes freshly computed targets onto p. Every code path
// that creates or edits a profile calls it before saving.
func ApplyEnergyTargets(p *models.Profile) bool {
	t, ok := ComputeEnergyTargets(p)
	if !ok {
		return false
	}
	p.BMR = t.BMR
	p.TDEE = t.TDEE
	p.TargetCalories = t.TargetCalories
	return true
}

// AllocateMacros is a linear split of targetCalories by ratio, 4/4/9 kcal per gram.
func AllocateMacros(targetCalories float64, r MacroRatios) MacroGrams {
	if targetCalories == 0 {
		return MacroGrams{}
	}
	return MacroGrams{
		ProteinG: targetCalories * r.Protein / 100 / kcalPerGramProtein,
		CarbsG:   targetCalories * r.Carbs / 100 / kcalPerGramCarbs,
		FatsG:    targetCalories * r.Fats / 100 / kcalPerGramFat,
	}
}

// ProfileMacros allocates the profile's current target with its own ratios.
func ProfileMacros(p *models.Profile) MacroGrams {
	return AllocateMacros(p.TargetCalories, MacroRatios{
		Protein: p.ProteinRatio,
		Carbs:   p.CarbsRatio,
		Fats:    p.FatsRatio,
	})
}

// ScaleNutrition scales per-100g food values to amountGrams.
func ScaleNutrition(f *models.Food, amountGrams float64) NutritionSnapshot {
	m := amountGrams / 100
	return NutritionSnapshot{
		Calories: f.Calories * m,
		ProteinG: f.ProteinG * m,
		CarbsG:   f.CarbsG * m,
		FatsG:    f.FatsG * m,
	}
}

// SumMeals totals the snapshots of meals. An empty slice sums to zero.
func SumMeals(meals []models.MealLog) NutritionSnapshot {
	var s NutritionSnapshot
	for _, m := range meals {
		s.Calories += m.Calories
		s.ProteinG += m.ProteinG
		s.CarbsG += m.CarbsG
		s.FatsG += m.FatsG
	}
	return s
}

// Percent never divides by zero; a zero target reads as 0%.
func Percent(total, target float64) float64 {
	if target == 0 {
		return 0
	}
	return total / target * 100
}

// NewProgress rounds to one decimal. Remaining goes negative once over target.
func NewProgress(total, target float64) Progress {
	return Progress{
		Consumed:  Round1(total),
		Target:    Round1(target),
		Percent:   Round1(Percent(total, target)),
		Remaining: Round1(target - total),
	}
}

// DateOnly drops the clock part of t, keeping its calendar day, as UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SuggestMealType guesses the meal being logged from the hour of day.
func SuggestMealType(hour int) models.MealType {
	switch {
	case hour >= 6 && hour < 11:
		return models.MealBreakfast
	case hour >= 11 && hour < 15:
		return models.MealLunch
	case hour >= 17 && hour < 21:
		return models.MealDinner
	default:
		return models.MealSnack
	}
}
