package models

import "time"

// DailyStats is a per-day rollup of MealLog rows. It is a cache: every field
// can be rebuilt from the day's meals and the profile's current targets.
type DailyStats struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"uniqueIndex:idx_stats_user_date;not null" json:"user_id"`
	Date   time.Time `gorm:"type:date;uniqueIndex:idx_stats_user_date;not null" json:"date"`

	TotalCalories float64 `json:"total_calories"`
	TotalProteinG float64 `json:"total_protein_g"`
	TotalCarbsG   float64 `json:"total_carbs_g"`
	TotalFatsG    float64 `json:"total_fats_g"`

	TargetCalories float64 `json:"target_calories"`
	TargetProteinG float64 `json:"target_protein_g"`
	TargetCarbsG   float64 `json:"target_carbs_g"`
	TargetFatsG    float64 `json:"target_fats_g"`

	MealsLogged int       `json:"meals_logged"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (DailyStats) TableName() string { return "daily_stats" }
