package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"gorm.io/gorm"
)

type FoodRepository struct {
	DB *gorm.DB
}

func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{DB: db}
}

func (r *FoodRepository) FindByID(ctx context.Context, id uint) (*models.Food, error) {
	var f models.Food
	if err := r.DB.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, notFound(err, "food")
	}
	return &f, nil
}

// SearchByName does a case-insensitive substring match on name.
func (r *FoodRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Food, error) {
	var foods []models.Food
	err := r.DB.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name").
		Limit(limit).
		Find(&foods).Error
	return foods, err
}

// ExistsByName compares names case-insensitively.
func (r *FoodRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var f models.Food
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *FoodRepository) Create(ctx context.Context, f *models.Food) error {
	return r.DB.WithContext(ctx).Create(f).Error
}
