package ingredient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		Lookup(ctx context.Context, name, unit string) (domain.Ingredient, error)
		GetByID(ctx context.Context, id string) (domain.Ingredient, error)
		Search(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
		BulkLoad(ctx context.Context, records []domain.IngredientRecord) (int, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) Lookup(ctx context.Context, name, unit string) (domain.Ingredient, error) {
	ingredient, err := s.ingredientRepository.Lookup(ctx, name, unit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, domain.StorageError(err)
	}
	return toDomain(ingredient), nil
}

func (s *ingredientService) GetByID(ctx context.Context, id string) (domain.Ingredient, error) {
	ingredient, err := s.ingredientRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, domain.StorageError(err)
	}
	return toDomain(ingredient), nil
}

func (s *ingredientService) Search(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.Search(ctx, namePrefix)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	result := make([]domain.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, toDomain(ingredient))
	}
	return result, nil
}

// BulkLoad validates the batch, drops exact (name, unit) duplicates inside
// it, and hands the rest to the transactional repository load. Returns how
// many rows were actually inserted.
func (s *ingredientService) BulkLoad(ctx context.Context, records []domain.IngredientRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	seen := make(map[string]bool, len(records))
	items := make([]*entities.Ingredient, 0, len(records))
	for _, record := range records {
		name := strings.TrimSpace(record.Name)
		unit := strings.TrimSpace(record.MeasurementUnit)
		if name == "" {
			return 0, domain.NewValidationError("name", "must not be empty")
		}
		if unit == "" {
			return 0, domain.NewValidationError("measurement_unit", "must not be empty")
		}

		key := name + "\x00" + unit
		if seen[key] {
			continue
		}
		seen[key] = true

		now := time.Now()
		items = append(items, &entities.Ingredient{
			ID:              uuid.New(),
			Name:            name,
			MeasurementUnit: unit,
			Timestamp:       entities.Timestamp{CreatedAt: now, UpdatedAt: now},
		})
	}

	inserted, err := s.ingredientRepository.BulkLoad(ctx, items)
	if err != nil {
		return 0, domain.StorageError(err)
	}
	return inserted, nil
}

func toDomain(ingredient *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              ingredient.ID.String(),
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
