package repository

import (
	"context"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"gorm.io/gorm"
)

type MealLogRepository struct {
	DB *gorm.DB
}

func NewMealLogRepository(db *gorm.DB) *MealLogRepository {
	return &MealLogRepository{DB: db}
}

func (r *MealLogRepository) Create(ctx context.Context, m *models.MealLog) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// FindByUserDate returns the meals logged for one calendar day, oldest first.
func (r *MealLogRepository) FindByUserDate(ctx context.Context, userID uint, date time.Time) ([]models.MealLog, error) {
	var meals []models.MealLog
	err := r.DB.WithContext(ctx).
		Preload("Food").
		Preload("Recipe").
		Where("user_id = ? AND meal_date = ?", userID, date).
		Order("logged_at").
		Find(&meals).Error
	return meals, err
}

func (r *MealLogRepository) FindForUser(ctx context.Context, userID, id uint) (*models.MealLog, error) {
	var m models.MealLog
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return nil, notFound(err, "meal")
	}
	return &m, nil
}

func (r *MealLogRepository) Delete(ctx context.Context, m *models.MealLog) error {
	return r.DB.WithContext(ctx).Delete(m).Error
}
