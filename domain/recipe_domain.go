package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessGetLink         = "success get recipe link"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNotRecipeAuthor = errors.New("only the author can modify the recipe")
)

type (
	RecipeIngredientRequest struct {
		IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
		Amount       decimal.Decimal `json:"amount"`
	}

	SaveRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=256"`
		Text        string                    `json:"text" validate:"required"`
		ImageURL    string                    `json:"image_url"`
		CookingTime int                       `json:"cooking_time"`
		TagIDs      []string                  `json:"tags" validate:"dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients"`
	}

	RecipeIngredientLine struct {
		IngredientID    string          `json:"ingredient_id"`
		Name            string          `json:"name"`
		MeasurementUnit string          `json:"measurement_unit"`
		Amount          decimal.Decimal `json:"amount"`
	}

	Recipe struct {
		ID          string    `json:"id"`
		AuthorID    string    `json:"author_id"`
		Name        string    `json:"name"`
		Text        string    `json:"text"`
		ImageURL    string    `json:"image_url,omitempty"`
		CookingTime int       `json:"cooking_time"`
		CreatedAt   time.Time `json:"created_at"`
	}

	RecipeDetail struct {
		Recipe
		Tags        []Tag                  `json:"tags"`
		Ingredients []RecipeIngredientLine `json:"ingredients"`
	}

	// RecipeFilter narrows List the way the original API does: by author,
	// by the requesting user's favorites, or by their shopping cart.
	RecipeFilter struct {
		AuthorID    string
		FavoritedBy string
		InCartOf    string
		TagSlug     string
	}
)
