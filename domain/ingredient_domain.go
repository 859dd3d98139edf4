package domain

import "errors"

var (
	MessageSuccessGetIngredients  = "success get ingredients"
	MessageSuccessLoadIngredients = "ingredients loaded successfully"

	MessageFailedGetIngredients  = "failed to get ingredients"
	MessageFailedLoadIngredients = "failed to load ingredients"

	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	// IngredientRecord is one catalog entry as it appears in the seed file.
	IngredientRecord struct {
		Name            string `json:"name" validate:"required,max=100"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=16"`
	}

	Ingredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
)
