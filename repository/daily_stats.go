package repository

import (
	"context"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyStatsRepository struct {
	DB *gorm.DB
}

func NewDailyStatsRepository(db *gorm.DB) *DailyStatsRepository {
	return &DailyStatsRepository{DB: db}
}

var statsConflict = []clause.Column{{Name: "user_id"}, {Name: "date"}}

// Upsert writes s in a single INSERT ... ON CONFLICT (user_id, date) DO UPDATE.
func (r *DailyStatsRepository) Upsert(ctx context.Context, s *models.DailyStats) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: statsConflict,
		DoUpdates: clause.AssignmentColumns([]string{
			"total_calories", "total_protein_g", "total_carbs_g", "total_fats_g",
			"target_calories", "target_protein_g", "target_carbs_g", "target_fats_g",
			"meals_logged", "updated_at",
		}),
	}).Create(s).Error
}

// Ensure inserts s only if no row exists for its (user_id, date), then
// returns whatever row is stored.
func (r *DailyStatsRepository) Ensure(ctx context.Context, s *models.DailyStats) (*models.DailyStats, error) {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   statsConflict,
		DoNothing: true,
	}).Create(s).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, s.UserID, s.Date)
}

func (r *DailyStatsRepository) Find(ctx context.Context, userID uint, date time.Time) (*models.DailyStats, error) {
	var s models.DailyStats
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&s).Error; err != nil {
		return nil, notFound(err, "daily stats")
	}
	return &s, nil
}

// ListByUser returns every stored day, newest first.
func (r *DailyStatsRepository) ListByUser(ctx context.Context, userID uint) ([]models.DailyStats, error) {
	var rows []models.DailyStats
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&rows).Error
	return rows, err
}

// ListRange returns the stored days between from and to inclusive, oldest first.
func (r *DailyStatsRepository) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyStats, error) {
	var rows []models.DailyStats
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}
