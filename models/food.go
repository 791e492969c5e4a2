package models

import "gorm.io/gorm"

// Food is a reusable nutrition template, values per ServingSize (100g unless stated).
type Food struct {
	gorm.Model
	Name        string   `gorm:"size:200;not null;index" json:"name"`
	ServingSize string   `gorm:"size:50;default:100g" json:"serving_size"`
	Calories    float64  `json:"calories"`
	ProteinG    float64  `json:"protein_g"`
	CarbsG      float64  `json:"carbs_g"`
	FatsG       float64  `json:"fats_g"`
	FiberG      *float64 `json:"fiber_g,omitempty"`
	SugarG      *float64 `json:"sugar_g,omitempty"`
	SodiumMg    *float64 `json:"sodium_mg,omitempty"`
	Category    string   `gorm:"size:50" json:"category"`
	IsVerified  bool     `gorm:"default:false" json:"is_verified"`
	ImageURL    string   `json:"image_url,omitempty"`
	USDAID      string   `gorm:"size:32;index" json:"usda_id,omitempty"`
}
