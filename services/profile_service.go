package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
)

// ProfileInput is a partial edit; nil fields keep their stored value.
type ProfileInput struct {
	Age            *int           `json:"age"`
	Gender         *models.Gender `json:"gender"`
	HeightCm       *float64       `json:"height_cm"`
	WeightKg       *float64       `json:"weight_kg"`
	ActivityFactor *float64       `json:"activity_factor"`
	Goal           *models.Goal   `json:"goal"`
	ProteinRatio   *float64       `json:"protein_ratio"`
	CarbsRatio     *float64       `json:"carbs_ratio"`
	FatsRatio      *float64       `json:"fats_ratio"`
}

func (in ProfileInput) validate() error {
	switch {
	case in.Age != nil && (*in.Age < 1 || *in.Age > 120):
		return fmt.Errorf("age must be between 1 and 120: %w", utils.ErrValidation)
	case in.Gender != nil && *in.Gender != models.GenderMale && *in.Gender != models.GenderFemale:
		return fmt.Errorf("gender must be male or female: %w", utils.ErrValidation)
	case in.HeightCm != nil && *in.HeightCm < 50:
		return fmt.Errorf("height must be at least 50 cm: %w", utils.ErrValidation)
	case in.WeightKg != nil && *in.WeightKg < 20:
		return fmt.Errorf("weight must be at least 20 kg: %w", utils.ErrValidation)
	case in.ActivityFactor != nil && !utils.IsValidActivityFactor(*in.ActivityFactor):
		return fmt.Errorf("activity factor %v is not a supported level: %w", *in.ActivityFactor, utils.ErrValidation)
	case in.Goal != nil && !in.Goal.Valid():
		return fmt.Errorf("goal must be maintain, lose or gain: %w", utils.ErrValidation)
	}
	for _, r := range []*float64{in.ProteinRatio, in.CarbsRatio, in.FatsRatio} {
		if r != nil && (*r < 0 || *r > 100) {
			return fmt.Errorf("macro ratios must be between 0 and 100: %w", utils.ErrValidation)
		}
	}
	return nil
}

func (in ProfileInput) applyTo(p *models.Profile) {
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.HeightCm != nil {
		p.HeightCm = *in.HeightCm
	}
	if in.WeightKg != nil {
		p.WeightKg = *in.WeightKg
	}
	if in.ActivityFactor != nil {
		p.ActivityFactor = *in.ActivityFactor
	}
	if in.Goal != nil {
		p.Goal = *in.Goal
	}
	if in.ProteinRatio != nil {
		p.ProteinRatio = *in.ProteinRatio
	}
	if in.CarbsRatio != nil {
		p.CarbsRatio = *in.CarbsRatio
	}
	if in.FatsRatio != nil {
		p.FatsRatio = *in.FatsRatio
	}
}

type ProfileView struct {
	Profile *models.Profile   `json:"profile"`
	Targets utils.MacroGrams  `json:"targets"`
	BMI     *utils.BMIReading `json:"bmi,omitempty"`
}

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetOrCreate returns the user's profile, creating the default one on first use.
func (s *ProfileService) GetOrCreate(ctx context.Context, userID uint) (*models.Profile, error) {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	p = models.NewDefaultProfile(userID)
	utils.ApplyEnergyTargets(p)
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	in.applyTo(p)
	utils.ApplyEnergyTargets(p)
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) View(ctx context.Context, userID uint) (*ProfileView, error) {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := utils.ProfileMacros(p)
	return &ProfileView{
		Profile: p,
		Targets: utils.MacroGrams{
			ProteinG: utils.Round1(m.ProteinG),
			CarbsG:   utils.Round1(m.CarbsG),
			FatsG:    utils.Round1(m.FatsG),
		},
		BMI: utils.ProfileBMI(p),
	}, nil
}
