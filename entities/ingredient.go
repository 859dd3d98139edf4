package entities

import (
	"github.com/google/uuid"
)

// Ingredient is reference data: a canonical name plus its measurement unit.
// The (name, measurement_unit) pair is unique and rows are never updated.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"size:100;uniqueIndex:idx_ingredients_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:16;uniqueIndex:idx_ingredients_name_unit" json:"measurement_unit"`

	Timestamp
}
