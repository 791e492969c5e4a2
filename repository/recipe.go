package repository

import (
	"context"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	DB *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{DB: db}
}

func (r *RecipeRepository) Create(ctx context.Context, rec *models.Recipe) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *RecipeRepository) FindForUser(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	var rec models.Recipe
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&rec).Error; err != nil {
		return nil, notFound(err, "recipe")
	}
	return &rec, nil
}

func (r *RecipeRepository) ListByUser(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	return recipes, err
}

// Delete clears recipe_id on every meal that references rec, then removes it.
// Meal snapshots are left as they were.
func (r *RecipeRepository) Delete(ctx context.Context, rec *models.Recipe) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MealLog{}).
			Where("recipe_id = ?", rec.ID).
			Update("recipe_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(rec).Error
	})
}
