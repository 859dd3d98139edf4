package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;index" json:"author_id"`
	Name        string    `gorm:"size:256" json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	ImageURL    string    `json:"image_url,omitempty"`
	CookingTime int       `json:"cooking_time"`

	Author      *User              `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID" json:"tags,omitempty"`
	Timestamp
}

// RecipeIngredient is one line of a recipe. An ingredient appears at most
// once per recipe and the amount is kept as an exact decimal.
type RecipeIngredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recipe_tag" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recipe_tag" json:"tag_id"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}
