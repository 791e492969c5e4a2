package repository

import (
	"context"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"gorm.io/gorm"
)

type DeviceRepository struct {
	DB *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{DB: db}
}

func (r *DeviceRepository) FindByTokenHash(ctx context.Context, userID uint, tokenHash string) (*models.UserDevice, error) {
	var d models.UserDevice
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND token_hash = ?", userID, tokenHash).
		First(&d).Error
	if err != nil {
		return nil, notFound(err, "device")
	}
	return &d, nil
}

func (r *DeviceRepository) Save(ctx context.Context, d *models.UserDevice) error {
	return r.DB.WithContext(ctx).Save(d).Error
}

func (r *DeviceRepository) ListEnabled(ctx context.Context, userID uint) ([]models.UserDevice, error) {
	var devices []models.UserDevice
	err := r.DB.WithContext(ctx).Where("user_id = ? AND enabled = ?", userID, true).Find(&devices).Error
	return devices, err
}

// SetEnabled flips the notification switch on all of the user's devices.
func (r *DeviceRepository) SetEnabled(ctx context.Context, userID uint, enabled bool) error {
	return r.DB.WithContext(ctx).
		Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
}
