package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
)

type Dashboard struct {
	Date              string                  `json:"date"`
	Profile           *models.Profile         `json:"profile"`
	Meals             []models.MealLog        `json:"meals"`
	Totals            utils.NutritionSnapshot `json:"totals"`
	Calories          utils.Progress          `json:"calories"`
	Protein           utils.Progress          `json:"protein"`
	Carbs             utils.Progress          `json:"carbs"`
	Fats              utils.Progress          `json:"fats"`
	Stats             *models.DailyStats      `json:"stats"`
	SuggestedMealType models.MealType         `json:"suggested_meal_type"`
}

type NutrientAverage struct {
	AvgConsumed float64 `json:"avg_consumed"`
	AvgTarget   float64 `json:"avg_target"`
	AvgPercent  float64 `json:"avg_percent"`
}

type StatsSummary struct {
	From        string                     `json:"from"`
	To          string                     `json:"to"`
	DaysCounted int                        `json:"days_counted"`
	Nutrients   map[string]NutrientAverage `json:"nutrients"`
}

type DashboardService struct {
	profiles *ProfileService
	meals    MealLogStore
	stats    *DailyStatsService
	store    DailyStatsStore
	now      func() time.Time
}

func NewDashboardService(profiles *ProfileService, meals MealLogStore, stats *DailyStatsService, store DailyStatsStore) *DashboardService {
	return &DashboardService{profiles: profiles, meals: meals, stats: stats, store: store, now: time.Now}
}

// Today makes sure the profile and today's stats row exist, then reports the
// day from the live meal list. Calories are measured against the profile's
// current target and macros against the stored row's targets.
func (s *DashboardService) Today(ctx context.Context, userID uint) (*Dashboard, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	today := utils.DateOnly(now)

	row, err := s.stats.Ensure(ctx, profile, today)
	if err != nil {
		return nil, err
	}
	meals, err := s.meals.FindByUserDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	sum := utils.SumMeals(meals)
	return &Dashboard{
		Date:    today.Format("2006-01-02"),
		Profile: profile,
		Meals:   meals,
		Totals: utils.NutritionSnapshot{
			Calories: utils.Round1(sum.Calories),
			ProteinG: utils.Round1(sum.ProteinG),
			CarbsG:   utils.Round1(sum.CarbsG),
			FatsG:    utils.Round1(sum.FatsG),
		},
		Calories:          utils.NewProgress(sum.Calories, profile.TargetCalories),
		Protein:           utils.NewProgress(sum.ProteinG, row.TargetProteinG),
		Carbs:             utils.NewProgress(sum.CarbsG, row.TargetCarbsG),
		Fats:              utils.NewProgress(sum.FatsG, row.TargetFatsG),
		Stats:             row,
		SuggestedMealType: utils.SuggestMealType(now.Hour()),
	}, nil
}

// Summary averages the stored days in [from, to]. Days without a row are not
// counted.
func (s *DashboardService) Summary(ctx context.Context, userID uint, from, to time.Time) (*StatsSummary, error) {
	from, to = utils.DateOnly(from), utils.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("to must not be before from: %w", utils.ErrValidation)
	}
	rows, err := s.store.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	type acc struct{ consumed, target float64 }
	sums := map[string]*acc{"calories": {}, "protein_g": {}, "carbs_g": {}, "fats_g": {}}
	for _, r := range rows {
		sums["calories"].consumed += r.TotalCalories
		sums["calories"].target += r.TargetCalories
		sums["protein_g"].consumed += r.TotalProteinG
		sums["protein_g"].target += r.TargetProteinG
		sums["carbs_g"].consumed += r.TotalCarbsG
		sums["carbs_g"].target += r.TargetCarbsG
		sums["fats_g"].consumed += r.TotalFatsG
		sums["fats_g"].target += r.TargetFatsG
	}

	out := &StatsSummary{
		From:        from.Format("2006-01-02"),
		To:          to.Format("2006-01-02"),
		DaysCounted: len(rows),
		Nutrients:   make(map[string]NutrientAverage, len(sums)),
	}
	for k, a := range sums {
		var avg NutrientAverage
		if n := float64(len(rows)); n > 0 {
			avg.AvgConsumed = utils.Round1(a.consumed / n)
			avg.AvgTarget = utils.Round1(a.target / n)
			avg.AvgPercent = utils.Round1(utils.Percent(a.consumed, a.target))
		}
		out.Nutrients[k] = avg
	}
	return out, nil
}
