package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Recipe struct {
	gorm.Model
	UserID          uint           `gorm:"index" json:"user_id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	MealType        MealType       `gorm:"size:10" json:"meal_type"`
	Instructions    string         `gorm:"type:text" json:"instructions"`
	IngredientsData datatypes.JSON `json:"ingredients_data"`

	TotalCalories float64 `json:"total_calories"`
	TotalProteinG float64 `json:"total_protein_g"`
	TotalCarbsG   float64 `json:"total_carbs_g"`
	TotalFatsG    float64 `json:"total_fats_g"`

	PrepTimeMinutes int  `json:"prep_time_minutes"`
	Servings        int  `gorm:"default:1" json:"servings"`
	IsAIGenerated   bool `gorm:"default:true" json:"is_ai_generated"`
}
