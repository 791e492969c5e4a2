package models

import (
	"time"

	"gorm.io/gorm"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MealLog is a nutrition snapshot taken when the meal was logged. The values
// are copied from the Food or Recipe and never recomputed from them later.
type MealLog struct {
	gorm.Model
	UserID   uint     `gorm:"index:idx_meal_user_date;not null" json:"user_id"`
	MealType MealType `gorm:"size:10;not null" json:"meal_type"`

	FoodID   *uint    `gorm:"index" json:"food_id,omitempty"`
	Food     *Food    `gorm:"constraint:OnDelete:SET NULL" json:"food,omitempty"`
	RecipeID *uint    `gorm:"index" json:"recipe_id,omitempty"`
	Recipe   *Recipe  `gorm:"constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
	AmountG  *float64 `json:"amount_g,omitempty"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`

	LoggedAt time.Time `json:"logged_at"`
	MealDate time.Time `gorm:"type:date;index:idx_meal_user_date;not null" json:"meal_date"`
}
