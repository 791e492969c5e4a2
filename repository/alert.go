package repository

import (
	"context"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"gorm.io/gorm"
)

type AlertRepository struct {
	DB *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{DB: db}
}

func (r *AlertRepository) Create(ctx context.Context, a *models.Alert) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
