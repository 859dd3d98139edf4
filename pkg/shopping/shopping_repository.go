package shopping

import (
	"context"

	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		GetCartLines(ctx context.Context, userID uuid.UUID) ([]*entities.RecipeIngredient, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

// GetCartLines reads the user's cart membership and all ingredient lines of
// the member recipes inside one transaction, so a concurrent cascade delete
// is observed either fully applied or not at all.
func (r *shoppingRepository) GetCartLines(ctx context.Context, userID uuid.UUID) ([]*entities.RecipeIngredient, error) {
	var lines []*entities.RecipeIngredient

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeIDs []uuid.UUID
		if err := tx.Model(&entities.ShoppingCart{}).
			Where("user_id = ?", userID).
			Pluck("recipe_id", &recipeIDs).Error; err != nil {
			return err
		}
		if len(recipeIDs) == 0 {
			return nil
		}

		return tx.
			Preload("Ingredient").
			Where("recipe_id IN ?", recipeIDs).
			Find(&lines).Error
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
