package models

import "gorm.io/gorm"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Goal string

const (
	GoalMaintain Goal = "maintain"
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
)

func (g Goal) Valid() bool {
	switch g {
	case GoalMaintain, GoalLose, GoalGain:
		return true
	}
	return false
}

// ActivityFactors are the accepted TDEE multipliers, sedentary to very active.
var ActivityFactors = []float64{1.2, 1.375, 1.55, 1.725, 1.9}

// Profile holds one user's biometrics and the energy targets derived from them.
// BMR, TDEE and TargetCalories are cached values; see utils.ApplyEnergyTargets.
type Profile struct {
	gorm.Model
	UserID         uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Age            int     `json:"age"`
	Gender         Gender  `gorm:"size:10" json:"gender"`
	HeightCm       float64 `json:"height_cm"`
	WeightKg       float64 `json:"weight_kg"`
	ActivityFactor float64 `gorm:"default:1.2" json:"activity_factor"`
	Goal           Goal    `gorm:"size:10;default:maintain" json:"goal"`

	ProteinRatio float64 `gorm:"default:30" json:"protein_ratio"`
	CarbsRatio   float64 `gorm:"default:40" json:"carbs_ratio"`
	FatsRatio    float64 `gorm:"default:30" json:"fats_ratio"`

	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories float64 `json:"target_calories"`
}

// NewDefaultProfile is the profile a user gets before they edit anything.
func NewDefaultProfile(userID uint) *Profile {
	return &Profile{
		UserID:         userID,
		Age:            25,
		Gender:         GenderMale,
		HeightCm:       170,
		WeightKg:       70,
		ActivityFactor: 1.2,
		Goal:           GoalMaintain,
		ProteinRatio:   30,
		CarbsRatio:     40,
		FatsRatio:      30,
	}
}
