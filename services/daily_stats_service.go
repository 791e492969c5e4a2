package services

import (
	"context"
	"errors"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
)

// DailyStatsService rebuilds the per-day rollup from meal logs. The row is a
// cache: Recompute can run any number of times with the same result.
type DailyStatsService struct {
	profiles ProfileStore
	meals    MealLogStore
	stats    DailyStatsStore
	alerts   *AlertBus
}

func NewDailyStatsService(profiles ProfileStore, meals MealLogStore, stats DailyStatsStore, alerts *AlertBus) *DailyStatsService {
	return &DailyStatsService{profiles: profiles, meals: meals, stats: stats, alerts: alerts}
}

// buildRow sums meals into a stats row carrying p's current targets.
func buildRow(p *models.Profile, date time.Time, meals []models.MealLog) *models.DailyStats {
	sum := utils.SumMeals(meals)
	row := &models.DailyStats{
		UserID:        p.UserID,
		Date:          date,
		TotalCalories: sum.Calories,
		TotalProteinG: sum.ProteinG,
		TotalCarbsG:   sum.CarbsG,
		TotalFatsG:    sum.FatsG,
		MealsLogged:   len(meals),
	}
	targetsFor(p, row)
	return row
}

func targetsFor(p *models.Profile, s *models.DailyStats) {
	m := utils.ProfileMacros(p)
	s.TargetCalories = p.TargetCalories
	s.TargetProteinG = m.ProteinG
	s.TargetCarbsG = m.CarbsG
	s.TargetFatsG = m.FatsG
}

// Recompute sums the day's meals, snapshots the profile's current targets and
// upserts the (user, date) row. A user without a profile gets nil, nil.
func (s *DailyStatsService) Recompute(ctx context.Context, userID uint, date time.Time) (*models.DailyStats, error) {
	date = utils.DateOnly(date)

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	meals, err := s.meals.FindByUserDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	var prevTotal float64
	if prev, err := s.stats.Find(ctx, userID, date); err == nil {
		prevTotal = prev.TotalCalories
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	row := buildRow(profile, date, meals)

	if err := s.stats.Upsert(ctx, row); err != nil {
		return nil, err
	}

	if s.alerts != nil {
		s.alerts.StatsUpdated(userID, row)
		s.alerts.CheckCalories(ctx, prevTotal, row)
	}
	return row, nil
}

// RecomputeRange rebuilds days consecutive days starting at from. Days with
// no profile are skipped.
func (s *DailyStatsService) RecomputeRange(ctx context.Context, userID uint, from time.Time, days int) ([]models.DailyStats, error) {
	var out []models.DailyStats
	for i := 0; i < days; i++ {
		row, err := s.Recompute(ctx, userID, from.AddDate(0, 0, i))
		if err != nil {
			return out, err
		}
		if row != nil {
			out = append(out, *row)
		}
	}
	return out, nil
}

// Ensure creates the row for date from that day's meals and the profile's
// targets unless one already exists, then returns the stored row.
func (s *DailyStatsService) Ensure(ctx context.Context, p *models.Profile, date time.Time) (*models.DailyStats, error) {
	date = utils.DateOnly(date)
	meals, err := s.meals.FindByUserDate(ctx, p.UserID, date)
	if err != nil {
		return nil, err
	}
	return s.stats.Ensure(ctx, buildRow(p, date, meals))
}

func (s *DailyStatsService) History(ctx context.Context, userID uint) ([]models.DailyStats, error) {
	return s.stats.ListByUser(ctx, userID)
}
