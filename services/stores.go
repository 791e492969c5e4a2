package services

import (
	"context"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/models"
)

// Store interfaces are satisfied by the gorm repositories in package repository.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
}

type ProfileStore interface {
	FindByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Save(ctx context.Context, p *models.Profile) error
}

type FoodStore interface {
	FindByID(ctx context.Context, id uint) (*models.Food, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.Food, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, f *models.Food) error
}

type MealLogStore interface {
	Create(ctx context.Context, m *models.MealLog) error
	FindByUserDate(ctx context.Context, userID uint, date time.Time) ([]models.MealLog, error)
	FindForUser(ctx context.Context, userID, id uint) (*models.MealLog, error)
	Delete(ctx context.Context, m *models.MealLog) error
}

type RecipeStore interface {
	Create(ctx context.Context, r *models.Recipe) error
	FindForUser(ctx context.Context, userID, id uint) (*models.Recipe, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Recipe, error)
	Delete(ctx context.Context, r *models.Recipe) error
}

type DailyStatsStore interface {
	Upsert(ctx context.Context, s *models.DailyStats) error
	Ensure(ctx context.Context, s *models.DailyStats) (*models.DailyStats, error)
	Find(ctx context.Context, userID uint, date time.Time) (*models.DailyStats, error)
	ListByUser(ctx context.Context, userID uint) ([]models.DailyStats, error)
	ListRange(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyStats, error)
}

type AlertStore interface {
	Create(ctx context.Context, a *models.Alert) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Alert, error)
}

type DeviceStore interface {
	FindByTokenHash(ctx context.Context, userID uint, tokenHash string) (*models.UserDevice, error)
	Save(ctx context.Context, d *models.UserDevice) error
	ListEnabled(ctx context.Context, userID uint) ([]models.UserDevice, error)
	SetEnabled(ctx context.Context, userID uint, enabled bool) error
}
