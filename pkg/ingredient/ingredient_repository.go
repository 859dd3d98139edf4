package ingredient

import (
	"context"

	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		Lookup(ctx context.Context, name, unit string) (*entities.Ingredient, error)
		GetByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error)
		Search(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error)
		BulkLoad(ctx context.Context, items []*entities.Ingredient) (int, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Lookup(ctx context.Context, name, unit string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", name, unit).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) Search(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	query := r.db.WithContext(ctx).Order("name asc")
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// BulkLoad inserts catalog entries inside one transaction, skipping rows
// whose (name, measurement_unit) pair already exists. Either every new row
// persists or none do.
func (r *ingredientRepository) BulkLoad(ctx context.Context, items []*entities.Ingredient) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var count int64
			if err := tx.Model(&entities.Ingredient{}).
				Where("name = ? AND measurement_unit = ?", item.Name, item.MeasurementUnit).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
