package utils

import (
	"fmt"

	"github.com/zachariahbioto-bot/Nutrition/models"
)

type BMIReading struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < 50 || weightKg < 20 {
		return 0, fmt.Errorf("height %.1fcm / weight %.1fkg: %w", heightCm, weightKg, ErrValidation)
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// ProfileBMI is nil when the profile's height or weight is not usable.
func ProfileBMI(p *models.Profile) *BMIReading {
	bmi, err := CalculateBMI(p.HeightCm, p.WeightKg)
	if err != nil {
		return nil
	}
	return &BMIReading{Value: Round1(bmi), Category: BMICategory(bmi)}
}
