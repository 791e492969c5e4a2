package repository

import (
	"context"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var p models.Profile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err, "profile")
	}
	return &p, nil
}

// Save inserts p when it has no ID yet and updates every column otherwise.
func (r *ProfileRepository) Save(ctx context.Context, p *models.Profile) error {
	return r.DB.WithContext(ctx).Save(p).Error
}
